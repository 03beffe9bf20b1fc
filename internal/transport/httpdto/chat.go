package httpdto

import "eshika-chat/internal/gateway"

// SendMessageRequest is used for POST /chat
type SendMessageRequest struct {
	Message  string         `json:"message"`
	Email    string         `json:"email"`
	ChatID   string         `json:"chatId,omitempty"`
	Language string         `json:"language,omitempty"`
	Model    string         `json:"model,omitempty"`
	Image    *gateway.Image `json:"image,omitempty"`
}

// ReplyResponse answers POST /chat. Failures still carry a reply so the
// conversation shows a bot turn; chatId and title are set on success.
type ReplyResponse struct {
	Reply  string `json:"reply"`
	ChatID string `json:"chatId,omitempty"`
	Title  string `json:"title,omitempty"`
}
