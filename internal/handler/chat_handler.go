package handler

import (
	"errors"
	"net/http"

	"eshika-chat/internal/gateway"
	"eshika-chat/internal/services"
	"eshika-chat/internal/transport/httpdto"
	"eshika-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

const replyInternalError = "An internal server error occurred. Please try again."

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Send handles POST /chat. Every outcome, including failures, is answered
// with a reply string.
func (h *ChatHandler) Send(c *gin.Context) {
	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.ReplyResponse{Reply: "I couldn't read that request. 🧩"})
		return
	}

	ctx := logger.WithUserEmail(c.Request.Context(), req.Email)
	res, err := h.service.SendMessage(ctx, services.SendInput{
		Email:    req.Email,
		Message:  req.Message,
		ChatID:   req.ChatID,
		Language: req.Language,
		Model:    req.Model,
		Image:    req.Image,
	})
	if err != nil {
		writeReplyError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.ReplyResponse{
		Reply:  res.Reply,
		ChatID: res.ChatID,
		Title:  res.Title,
	})
}

func writeReplyError(c *gin.Context, err error) {
	var gwErr *gateway.GatewayError
	if errors.As(err, &gwErr) {
		c.JSON(gwErr.Status, httpdto.ReplyResponse{Reply: gwErr.Reply})
		return
	}

	status := services.HTTPStatus(err)
	reply := services.PublicMessage(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		reply = replyInternalError
	}
	c.JSON(status, httpdto.ReplyResponse{Reply: reply})
}
