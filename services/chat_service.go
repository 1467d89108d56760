package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"adspot_server/models"
	"adspot_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ErrNotParticipant marks message sends by users outside the chat.
var ErrNotParticipant = errors.New("user is not a participant of this chat")

// defaultReplyDelay simulates the counterparty's response latency.
const defaultReplyDelay = time.Second

type ChatService struct {
	Dynamo     *DynamoService
	Scheduler  Scheduler
	ReplyDelay time.Duration
}

func NewChatService(dynamo *DynamoService) *ChatService {
	return &ChatService{
		Dynamo:     dynamo,
		Scheduler:  TimerScheduler{},
		ReplyDelay: defaultReplyDelay,
	}
}

// ChatSummary is a chat enriched with its connected listings.
type ChatSummary struct {
	models.Chat
	Adspaces []models.Adspace `json:"adspaces"`
}

// SendMessage stores a new message and returns it immediately. When the
// chat carries a listing context and the text matches a responder rule,
// the canned reply is scheduled for delayed, best-effort delivery as the
// other participant.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID, content string) (*models.Message, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if chatID == "" || content == "" {
		return nil, fmt.Errorf("%w: chatId and content are required", ErrInvalidInput)
	}

	chat, err := s.getChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}

	message := models.Message{
		ChatID:    chatID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		MessageID: uuid.NewString(),
		SenderID:  userID,
		Content:   content,
		IsRead:    false,
	}
	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	s.scheduleAutoReply(ctx, chat, userID, content)

	return &message, nil
}

// scheduleAutoReply evaluates the responder rules against the inbound
// text and, on a hit, defers delivery of the reply. Anything that goes
// wrong here is logged and dropped: the original send has its result
// already.
func (s *ChatService) scheduleAutoReply(ctx context.Context, chat *models.Chat, senderID, content string) {
	if len(chat.AdspaceIDs) == 0 {
		return
	}

	adspace, err := fetchAdspace(ctx, s.Dynamo, chat.AdspaceIDs[0])
	if err != nil {
		log.Printf("⚠️ No listing context for chat %s, skipping auto-reply: %v", chat.ChatID, err)
		return
	}

	reply, ok := FindAutoReply(content, *adspace)
	if !ok {
		return
	}

	responderID, err := chat.OtherParticipant(senderID)
	if err != nil {
		log.Printf("⚠️ Cannot resolve auto-reply author for chat %s: %v", chat.ChatID, err)
		return
	}

	chatID := chat.ChatID
	s.Scheduler.Schedule(s.ReplyDelay, func() {
		replyMessage := models.Message{
			ChatID:    chatID,
			CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
			MessageID: uuid.NewString(),
			SenderID:  responderID,
			Content:   reply,
			IsRead:    false,
		}
		// Fire and forget: the request path has already returned.
		if err := s.Dynamo.PutItem(context.Background(), models.MessagesTable, replyMessage); err != nil {
			log.Printf("❌ Failed to deliver auto-reply for chat %s: %v", chatID, err)
		}
	})
}

// GetMessagesByChatID fetches messages for a chat, newest first. The
// query reads the sort key descending so a limit trims the oldest
// messages, not the latest ones.
func (s *ChatService) GetMessagesByChatID(ctx context.Context, chatID string, limit int) ([]models.Message, error) {
	keyCondition := "#chatId = :chatId"
	expressionValues := map[string]types.AttributeValue{
		":chatId": &types.AttributeValueMemberS{Value: chatID},
	}
	expressionNames := map[string]string{
		"#chatId": "chatId",
	}

	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, int32(limit), true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	return messages, nil
}

// MarkMessagesAsRead flips isRead on the messages the user received.
// Messages the user sent themselves are left alone.
func (s *ChatService) MarkMessagesAsRead(ctx context.Context, chatID, userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}

	keyCondition := "#chatId = :chatId"
	expressionValues := map[string]types.AttributeValue{
		":chatId": &types.AttributeValueMemberS{Value: chatID},
	}
	expressionNames := map[string]string{
		"#chatId": "chatId",
	}

	items, err := s.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	for _, item := range items {
		if utils.ExtractString(item, "senderId") == userID {
			continue
		}
		createdAt := utils.ExtractString(item, "createdAt")
		if createdAt == "" {
			continue
		}

		key := map[string]types.AttributeValue{
			"chatId":    &types.AttributeValueMemberS{Value: chatID},
			"createdAt": &types.AttributeValueMemberS{Value: createdAt},
		}
		updateExpression := "SET isRead = :read"
		updateValues := map[string]types.AttributeValue{
			":read": &types.AttributeValueMemberBOOL{Value: true},
		}

		if _, err := s.Dynamo.UpdateItem(ctx, models.MessagesTable, updateExpression, key, updateValues, nil); err != nil {
			log.Printf("❌ Failed to mark message %s as read: %v", utils.ExtractString(item, "messageId"), err)
		}
	}

	return nil
}

// ListChats returns every chat the user participates in, each with its
// connected listings attached.
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]ChatSummary, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	var chats []models.Chat
	err := s.Dynamo.ScanWithFilter(ctx, models.ChatsTable, func(item map[string]types.AttributeValue) bool {
		for _, participant := range utils.ExtractStringList(item, "participants") {
			if participant == userID {
				return true
			}
		}
		return false
	}, &chats)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chats: %w", err)
	}

	summaries := make([]ChatSummary, 0, len(chats))
	for _, chat := range chats {
		summary := ChatSummary{Chat: chat}
		for _, adspaceID := range chat.AdspaceIDs {
			adspace, err := fetchAdspace(ctx, s.Dynamo, adspaceID)
			if err != nil {
				log.Printf("⚠️ Skipping adspace %s on chat %s: %v", adspaceID, chat.ChatID, err)
				continue
			}
			summary.Adspaces = append(summary.Adspaces, *adspace)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// GetChat returns a single chat with listings, or ErrItemNotFound.
func (s *ChatService) GetChat(ctx context.Context, chatID string) (*ChatSummary, error) {
	chat, err := s.getChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	summary := ChatSummary{Chat: *chat}
	for _, adspaceID := range chat.AdspaceIDs {
		adspace, err := fetchAdspace(ctx, s.Dynamo, adspaceID)
		if err != nil {
			continue
		}
		summary.Adspaces = append(summary.Adspaces, *adspace)
	}
	return &summary, nil
}

func (s *ChatService) getChat(ctx context.Context, chatID string) (*models.Chat, error) {
	item, err := s.Dynamo.GetItem(ctx, models.ChatsTable, map[string]types.AttributeValue{
		"chatId": &types.AttributeValueMemberS{Value: chatID},
	})
	if err != nil {
		return nil, err
	}

	var chat models.Chat
	if err := attributevalue.UnmarshalMap(item, &chat); err != nil {
		return nil, fmt.Errorf("failed to parse chat: %w", err)
	}
	return &chat, nil
}
