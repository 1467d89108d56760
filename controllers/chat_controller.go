package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"adspot_server/services"
)

// ChatController struct
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleSendMessage stores a message and returns it immediately. Any
// auto-reply is delivered later, off the request path.
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string `json:"userId"`
		ChatID  string `json:"chatId"`
		Content string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, `{"error": "missing acting user id"}`, http.StatusUnauthorized)
		return
	}
	if request.ChatID == "" || request.Content == "" {
		http.Error(w, `{"error": "chatId and content are required"}`, http.StatusBadRequest)
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), request.UserID, request.ChatID, request.Content)
	if err != nil {
		log.Printf("❌ Failed to send message in chat %s: %v", request.ChatID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, message)
}

// HandleGetMessages fetches messages for a chat, newest first.
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	chatID := r.URL.Query().Get("chatId")
	if chatID == "" {
		http.Error(w, `{"error": "chatId is required"}`, http.StatusBadRequest)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	messages, err := c.ChatService.GetMessagesByChatID(r.Context(), chatID, limit)
	if err != nil {
		log.Printf("❌ Failed to fetch messages for chat %s: %v", chatID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// HandleMarkMessagesAsRead marks the messages the user received as read.
func (c *ChatController) HandleMarkMessagesAsRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ChatID string `json:"chatId"`
		UserID string `json:"userId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, `{"error": "missing acting user id"}`, http.StatusUnauthorized)
		return
	}

	if err := c.ChatService.MarkMessagesAsRead(r.Context(), request.ChatID, request.UserID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleListChats lists the chats the user participates in.
func (c *ChatController) HandleListChats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "missing acting user id"}`, http.StatusUnauthorized)
		return
	}

	chats, err := c.ChatService.ListChats(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Failed to list chats for %s: %v", userID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chats)
}

// HandleGetChat fetches a single chat with its connected listings.
func (c *ChatController) HandleGetChat(w http.ResponseWriter, r *http.Request) {
	chatID := r.URL.Query().Get("chatId")
	if chatID == "" {
		http.Error(w, `{"error": "chatId is required"}`, http.StatusBadRequest)
		return
	}

	chat, err := c.ChatService.GetChat(r.Context(), chatID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chat)
}
