package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"adspot_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler queues tasks instead of firing timers so tests can
// flush deferred work deterministically.
type manualScheduler struct {
	delays []time.Duration
	tasks  []func()
}

func (m *manualScheduler) Schedule(delay time.Duration, task func()) {
	m.delays = append(m.delays, delay)
	m.tasks = append(m.tasks, task)
}

func (m *manualScheduler) Flush() {
	for _, task := range m.tasks {
		task()
	}
	m.tasks = nil
}

// chatFixture wires a ChatService over one chat and one listing. The
// returned puts slice captures every stored message.
func chatFixture(t *testing.T, chat models.Chat, adspace *models.Adspace) (*ChatService, *manualScheduler, *[]recordedPut) {
	t.Helper()

	puts := &[]recordedPut{}
	stub := &stubDynamoAPI{
		getItemFn: func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			switch *input.TableName {
			case models.ChatsTable:
				if input.Key["chatId"].(*types.AttributeValueMemberS).Value == chat.ChatID {
					return &dynamodb.GetItemOutput{Item: mustMarshal(t, chat)}, nil
				}
			case models.AdspacesTable:
				if adspace != nil && input.Key["adspaceId"].(*types.AttributeValueMemberS).Value == adspace.AdspaceID {
					return &dynamodb.GetItemOutput{Item: mustMarshal(t, *adspace)}, nil
				}
			}
			return &dynamodb.GetItemOutput{}, nil
		},
		putItemFn: func(input *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			*puts = append(*puts, recordedPut{Table: *input.TableName, Item: input.Item})
			return &dynamodb.PutItemOutput{}, nil
		},
	}

	scheduler := &manualScheduler{}
	svc := &ChatService{
		Dynamo:     &DynamoService{Client: stub},
		Scheduler:  scheduler,
		ReplyDelay: defaultReplyDelay,
	}
	return svc, scheduler, puts
}

func testChat() models.Chat {
	return models.Chat{
		ChatID:       "chat-1",
		Participants: []string{"advertiser-1", "owner-1"},
		AdspaceIDs:   []string{"ad-1"},
	}
}

func testAdspace() *models.Adspace {
	p := 80.0
	return &models.Adspace{AdspaceID: "ad-1", BusinessID: "biz-1", Name: "Ulotki przy ladzie", PricePerWeek: &p}
}

func TestSendMessageStoresAndReturnsMessage(t *testing.T) {
	svc, scheduler, puts := chatFixture(t, testChat(), testAdspace())

	message, err := svc.SendMessage(context.Background(), "advertiser-1", "chat-1", "Dzień dobry, ile to kosztuje?")

	require.NoError(t, err)
	assert.Equal(t, "chat-1", message.ChatID)
	assert.Equal(t, "advertiser-1", message.SenderID)
	assert.Equal(t, "Dzień dobry, ile to kosztuje?", message.Content)
	assert.False(t, message.IsRead)
	assert.NotEmpty(t, message.MessageID)
	assert.NotEmpty(t, message.CreatedAt)

	// Only the sender's message is stored synchronously; the canned
	// reply sits queued until the delay elapses.
	require.Len(t, *puts, 1)
	assert.Equal(t, models.MessagesTable, (*puts)[0].Table)
	require.Len(t, scheduler.tasks, 1)
	assert.Equal(t, defaultReplyDelay, scheduler.delays[0])
}

func TestSendMessageAutoReplyAuthoredByCounterparty(t *testing.T) {
	svc, scheduler, puts := chatFixture(t, testChat(), testAdspace())

	_, err := svc.SendMessage(context.Background(), "advertiser-1", "chat-1", "ile to kosztuje?")
	require.NoError(t, err)

	scheduler.Flush()

	require.Len(t, *puts, 2)
	var reply models.Message
	require.NoError(t, attributevalue.UnmarshalMap((*puts)[1].Item, &reply))
	assert.Equal(t, "chat-1", reply.ChatID)
	assert.Equal(t, "owner-1", reply.SenderID)
	assert.Contains(t, reply.Content, "80")
	assert.Contains(t, reply.Content, "Ulotki przy ladzie")
	assert.False(t, reply.IsRead)
}

func TestSendMessageNoRuleMatchStaysSilent(t *testing.T) {
	svc, scheduler, puts := chatFixture(t, testChat(), testAdspace())

	_, err := svc.SendMessage(context.Background(), "advertiser-1", "chat-1", "asdkjasd")
	require.NoError(t, err)

	assert.Empty(t, scheduler.tasks)
	scheduler.Flush()
	assert.Len(t, *puts, 1)
}

func TestSendMessageWithoutListingContextSkipsReply(t *testing.T) {
	chat := testChat()
	chat.AdspaceIDs = nil
	svc, scheduler, _ := chatFixture(t, chat, nil)

	_, err := svc.SendMessage(context.Background(), "advertiser-1", "chat-1", "ile to kosztuje?")

	require.NoError(t, err)
	assert.Empty(t, scheduler.tasks)
}

func TestSendMessageRejectsNonParticipant(t *testing.T) {
	svc, _, puts := chatFixture(t, testChat(), testAdspace())

	message, err := svc.SendMessage(context.Background(), "stranger-1", "chat-1", "ile to kosztuje?")

	assert.Nil(t, message)
	assert.ErrorIs(t, err, ErrNotParticipant)
	assert.Empty(t, *puts)
}

func TestSendMessageValidation(t *testing.T) {
	svc, _, _ := chatFixture(t, testChat(), testAdspace())

	_, err := svc.SendMessage(context.Background(), "", "chat-1", "hej")
	assert.ErrorIs(t, err, ErrMissingUserID)

	_, err = svc.SendMessage(context.Background(), "advertiser-1", "", "hej")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SendMessage(context.Background(), "advertiser-1", "chat-1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendMessageUnknownChat(t *testing.T) {
	svc, _, _ := chatFixture(t, testChat(), testAdspace())

	_, err := svc.SendMessage(context.Background(), "advertiser-1", "chat-missing", "hej")

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestAutoReplyDeliveryFailureIsSwallowed(t *testing.T) {
	// The reply fires after the request already returned, so a failed
	// store must not panic or surface anywhere.
	chat := testChat()
	adspace := testAdspace()

	var failPuts bool
	puts := &[]recordedPut{}
	stub := &stubDynamoAPI{
		getItemFn: func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			switch *input.TableName {
			case models.ChatsTable:
				return &dynamodb.GetItemOutput{Item: mustMarshal(t, chat)}, nil
			case models.AdspacesTable:
				return &dynamodb.GetItemOutput{Item: mustMarshal(t, *adspace)}, nil
			}
			return &dynamodb.GetItemOutput{}, nil
		},
		putItemFn: func(input *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			if failPuts {
				return nil, errors.New("table unavailable")
			}
			*puts = append(*puts, recordedPut{Table: *input.TableName, Item: input.Item})
			return &dynamodb.PutItemOutput{}, nil
		},
	}
	scheduler := &manualScheduler{}
	svc := &ChatService{Dynamo: &DynamoService{Client: stub}, Scheduler: scheduler, ReplyDelay: defaultReplyDelay}

	_, err := svc.SendMessage(context.Background(), "advertiser-1", "chat-1", "ile to kosztuje?")
	require.NoError(t, err)

	failPuts = true
	assert.NotPanics(t, scheduler.Flush)
	assert.Len(t, *puts, 1)
}

func TestMarkMessagesAsReadSkipsOwnMessages(t *testing.T) {
	messages := []models.Message{
		{ChatID: "chat-1", CreatedAt: "2025-03-01T10:00:00Z", MessageID: "m1", SenderID: "advertiser-1", Content: "hej"},
		{ChatID: "chat-1", CreatedAt: "2025-03-01T10:00:01Z", MessageID: "m2", SenderID: "owner-1", Content: "Cześć!"},
	}

	var updatedKeys []string
	stub := &stubDynamoAPI{
		queryFn: func(input *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			var items []map[string]types.AttributeValue
			for _, m := range messages {
				items = append(items, mustMarshal(t, m))
			}
			return &dynamodb.QueryOutput{Items: items}, nil
		},
		updateItemFn: func(input *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			updatedKeys = append(updatedKeys, input.Key["createdAt"].(*types.AttributeValueMemberS).Value)
			return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{}}, nil
		},
	}
	svc := &ChatService{Dynamo: &DynamoService{Client: stub}, Scheduler: &manualScheduler{}, ReplyDelay: defaultReplyDelay}

	err := svc.MarkMessagesAsRead(context.Background(), "chat-1", "advertiser-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-01T10:00:01Z"}, updatedKeys)
}

// messagesQueryStub answers Query the way DynamoDB does for a table
// keyed on chatId + createdAt: sort-key order ascending unless
// ScanIndexForward is false, with Limit applied before anything else.
func messagesQueryStub(t *testing.T, messages []models.Message) *stubDynamoAPI {
	t.Helper()
	return &stubDynamoAPI{
		queryFn: func(input *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			ordered := make([]models.Message, len(messages))
			copy(ordered, messages)
			sort.Slice(ordered, func(i, j int) bool {
				return ordered[i].CreatedAt < ordered[j].CreatedAt
			})
			if input.ScanIndexForward != nil && !*input.ScanIndexForward {
				for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
					ordered[i], ordered[j] = ordered[j], ordered[i]
				}
			}
			if input.Limit != nil && int(*input.Limit) < len(ordered) {
				ordered = ordered[:*input.Limit]
			}
			var items []map[string]types.AttributeValue
			for _, m := range ordered {
				items = append(items, mustMarshal(t, m))
			}
			return &dynamodb.QueryOutput{Items: items}, nil
		},
	}
}

func TestGetMessagesByChatIDNewestFirst(t *testing.T) {
	messages := []models.Message{
		{ChatID: "chat-1", CreatedAt: "2025-03-01T10:00:00Z", MessageID: "m1", SenderID: "advertiser-1"},
		{ChatID: "chat-1", CreatedAt: "2025-03-01T10:00:02Z", MessageID: "m3", SenderID: "owner-1"},
		{ChatID: "chat-1", CreatedAt: "2025-03-01T10:00:01Z", MessageID: "m2", SenderID: "advertiser-1"},
	}
	svc := &ChatService{Dynamo: &DynamoService{Client: messagesQueryStub(t, messages)}, Scheduler: &manualScheduler{}, ReplyDelay: defaultReplyDelay}

	got, err := svc.GetMessagesByChatID(context.Background(), "chat-1", 0)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "m3", got[0].MessageID)
	assert.Equal(t, "m2", got[1].MessageID)
	assert.Equal(t, "m1", got[2].MessageID)
}

func TestGetMessagesByChatIDLimitKeepsNewest(t *testing.T) {
	var messages []models.Message
	for i := 0; i < 6; i++ {
		messages = append(messages, models.Message{
			ChatID:    "chat-1",
			CreatedAt: fmt.Sprintf("2025-03-01T10:00:0%dZ", i),
			MessageID: fmt.Sprintf("m%d", i),
			SenderID:  "advertiser-1",
		})
	}
	svc := &ChatService{Dynamo: &DynamoService{Client: messagesQueryStub(t, messages)}, Scheduler: &manualScheduler{}, ReplyDelay: defaultReplyDelay}

	got, err := svc.GetMessagesByChatID(context.Background(), "chat-1", 3)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "m5", got[0].MessageID, "limit must keep the newest messages")
	assert.Equal(t, "m4", got[1].MessageID)
	assert.Equal(t, "m3", got[2].MessageID)
}

func TestListChatsFiltersByParticipant(t *testing.T) {
	chats := []models.Chat{
		{ChatID: "chat-1", Participants: []string{"advertiser-1", "owner-1"}, AdspaceIDs: []string{"ad-1"}},
		{ChatID: "chat-2", Participants: []string{"someone-else", "owner-2"}},
	}
	adspace := testAdspace()

	stub := &stubDynamoAPI{
		scanFn: func(input *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
			var items []map[string]types.AttributeValue
			for _, c := range chats {
				items = append(items, mustMarshal(t, c))
			}
			return &dynamodb.ScanOutput{Items: items}, nil
		},
		getItemFn: func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: mustMarshal(t, *adspace)}, nil
		},
	}
	svc := &ChatService{Dynamo: &DynamoService{Client: stub}, Scheduler: &manualScheduler{}, ReplyDelay: defaultReplyDelay}

	summaries, err := svc.ListChats(context.Background(), "advertiser-1")

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "chat-1", summaries[0].ChatID)
	require.Len(t, summaries[0].Adspaces, 1)
	assert.Equal(t, "ad-1", summaries[0].Adspaces[0].AdspaceID)
}
