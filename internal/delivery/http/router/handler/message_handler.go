package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"helios/internal/delivery/http/response"
	"helios/internal/errors"
	"helios/internal/usecase"
)

// MessageHandler accepts public contact-form submissions.
type MessageHandler struct {
	uc usecase.MessageUsecase
}

// NewMessageHandler is the constructor for MessageHandler, injected by Fx.
func NewMessageHandler(uc usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

// Submit accepts a contact-form message.
func (h *MessageHandler) Submit(c echo.Context) error {
	var input usecase.SubmitMessageInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	message, err := h.uc.SubmitMessage(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, message, "Message received")
}
