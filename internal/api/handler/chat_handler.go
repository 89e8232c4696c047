package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cars-g/reporting-api/internal/api/metrics"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

// ChatHandler handles the support chat between users and admins.
type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// List handles GET /api/chat.
//
// @Summary      List chat messages visible to the caller
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 50, max 100)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  messagesResponse
// @Router       /api/chat [get]
func (h *ChatHandler) List(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return err
	}

	messages, err := h.service.List(c.Request().Context(), caller, ports.ListMessagesInput{Limit: limit, Offset: offset})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messagesResponse{Messages: messages})
}

// Send handles POST /api/chat.
//
// @Summary      Send a chat message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message text (1-1000 characters)"
// @Success      201   {object}  sendMessageResponse
// @Failure      400   {object}  map[string]any
// @Router       /api/chat [post]
func (h *ChatHandler) Send(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	msg, err := h.service.Send(c.Request().Context(), caller, req.Text)
	if err != nil {
		return err
	}
	metrics.MessagesSentTotal.WithLabelValues(strconv.FormatBool(msg.IsAdminReply)).Inc()

	return c.JSON(http.StatusCreated, sendMessageResponse{
		ID:              msg.ID,
		Text:            msg.Text,
		UserID:          msg.UserID,
		UserDisplayName: msg.UserDisplayName,
		UserRole:        msg.UserRole,
		IsAdminReply:    msg.IsAdminReply,
		CreatedAt:       msg.CreatedAt,
		Message:         "Message sent successfully",
	})
}

// Conversation handles GET /api/chat/conversation/:userId.
//
// @Summary      Messages sent by one user
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true   "User id"
// @Param        limit   query     int     false  "Number of messages (default 100)"
// @Success      200     {object}  messagesResponse
// @Failure      403     {object}  map[string]any
// @Router       /api/chat/conversation/{userId} [get]
func (h *ChatHandler) Conversation(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	messages, err := h.service.Conversation(c.Request().Context(), caller, c.Param("userId"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messagesResponse{Messages: messages})
}

// Conversations handles GET /api/chat/conversations.
//
// @Summary      One summary per user who has written to support
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  conversationsResponse
// @Failure      403  {object}  map[string]any
// @Router       /api/chat/conversations [get]
func (h *ChatHandler) Conversations(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	conversations, err := h.service.Conversations(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conversationsResponse{Conversations: conversations})
}

// Delete handles DELETE /api/chat/:messageId.
//
// @Summary      Delete a message
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        messageId  path      string  true  "Message id"
// @Success      200        {object}  messageResponse
// @Failure      403        {object}  map[string]any
// @Router       /api/chat/{messageId} [delete]
func (h *ChatHandler) Delete(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("messageId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Message deleted successfully"})
}

// MarkRead handles PUT /api/chat/:userId/read. Read state is not tracked.
//
// @Summary      Mark a conversation as read
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  messageResponse
// @Failure      403     {object}  map[string]any
// @Router       /api/chat/{userId}/read [put]
func (h *ChatHandler) MarkRead(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), caller, c.Param("userId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Messages marked as read"})
}
