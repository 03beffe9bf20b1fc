package handler

import (
	"net/http"

	"eshika-chat/internal/services"
	"eshika-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	history *services.HistoryService
	chats   *services.ChatService
}

func NewHistoryHandler(history *services.HistoryService, chats *services.ChatService) *HistoryHandler {
	return &HistoryHandler{history: history, chats: chats}
}

func (h *HistoryHandler) List(c *gin.Context) {
	var req httpdto.HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	history, err := h.history.List(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.HistoryResponse{History: history})
}

func (h *HistoryHandler) Load(c *gin.Context) {
	var req httpdto.ChatRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	chat, err := h.chats.LoadChat(c.Request.Context(), req.Email, req.ChatID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.ChatResponse{Chat: chat})
}

func (h *HistoryHandler) Rename(c *gin.Context) {
	var req httpdto.RenameChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	if err := h.history.Rename(c.Request.Context(), req.Email, req.ChatID, req.NewTitle); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse())
}

func (h *HistoryHandler) Delete(c *gin.Context) {
	var req httpdto.ChatRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	if err := h.history.Delete(c.Request.Context(), req.Email, req.ChatID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse())
}

func (h *HistoryHandler) Pin(c *gin.Context) {
	var req httpdto.PinChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	var err error
	if req.IsPinned != nil {
		err = h.history.SetPin(c.Request.Context(), req.Email, req.ChatID, *req.IsPinned)
	} else {
		err = h.history.TogglePin(c.Request.Context(), req.Email, req.ChatID)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse())
}
