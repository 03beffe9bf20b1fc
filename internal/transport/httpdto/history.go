package httpdto

import "eshika-chat/internal/domain"

// HistoryRequest is used for POST /api/history
type HistoryRequest struct {
	Email string `json:"email" binding:"required"`
}

type HistoryResponse struct {
	History []domain.ChatSummary `json:"history"`
}

// ChatRefRequest is used for POST /api/chat/load and /api/chat/delete
type ChatRefRequest struct {
	Email  string `json:"email" binding:"required"`
	ChatID string `json:"chatId" binding:"required"`
}

// RenameChatRequest is used for POST /api/chat/rename
type RenameChatRequest struct {
	Email    string `json:"email" binding:"required"`
	ChatID   string `json:"chatId" binding:"required"`
	NewTitle string `json:"newTitle"`
}

// PinChatRequest is used for POST /api/chat/pin. Without isPinned the pin is toggled.
type PinChatRequest struct {
	Email    string `json:"email" binding:"required"`
	ChatID   string `json:"chatId" binding:"required"`
	IsPinned *bool  `json:"isPinned,omitempty"`
}

type ChatResponse struct {
	Chat domain.Chat `json:"chat"`
}
