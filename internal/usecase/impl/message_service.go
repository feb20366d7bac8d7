package impl

import (
	"context"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	"helios/config"
	deliverycontext "helios/internal/delivery/context"
	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/repository"
	"helios/internal/domain/service"
	"helios/internal/errors"
	"helios/internal/realtime"
	"helios/internal/usecase"
)

// messageService implements the MessageUsecase interface.
type messageService struct {
	messageRepo repository.MessageRepository
	hub         *realtime.Hub
	notifier    service.NotificationService
	adminTopic  string
	logger      *slog.Logger
}

// MessageServiceParams holds dependencies for messageService, injected by Fx.
// Notifier is optional; without push credentials submissions still work.
type MessageServiceParams struct {
	fx.In

	MessageRepo repository.MessageRepository
	Hub         *realtime.Hub
	Notifier    service.NotificationService `optional:"true"`
	Config      *config.Config
	Logger      *slog.Logger
}

// NewMessageService is the constructor for messageService.
func NewMessageService(params MessageServiceParams) usecase.MessageUsecase {
	adminTopic := ""
	if params.Config != nil && params.Config.Firebase != nil {
		adminTopic = params.Config.Firebase.AdminTopic
	}

	return &messageService{
		messageRepo: params.MessageRepo,
		hub:         params.Hub,
		notifier:    params.Notifier,
		adminTopic:  adminTopic,
		logger:      params.Logger,
	}
}

func (srv *messageService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitMessage validates and persists a contact message, then notifies
// connected admin sessions over the hub and, when configured, by push.
func (srv *messageService) SubmitMessage(ctx context.Context, input usecase.SubmitMessageInput) (*entity.Message, error) {
	if err := validateSubmission(input); err != nil {
		return nil, err
	}

	message := &entity.Message{
		Name:            strings.TrimSpace(input.Name),
		Email:           strings.TrimSpace(input.Email),
		Phone:           strings.TrimSpace(input.Phone),
		ServiceInterest: strings.TrimSpace(input.ServiceInterest),
		Body:            strings.TrimSpace(input.Body),
		Status:          entity.MessageStatusNew,
	}
	if err := srv.messageRepo.Create(ctx, message); err != nil {
		return nil, errors.Wrap(err, "failed to create message")
	}

	srv.hub.Publish(realtime.Event{
		Topic:   realtime.TopicMessages,
		Kind:    realtime.KindCreated,
		Payload: message,
	})

	// Push delivery is best effort. The message is already stored and
	// visible in the inbox.
	if srv.notifier != nil && srv.adminTopic != "" {
		err := srv.notifier.SendTopicNotification(ctx, srv.adminTopic,
			"New contact message",
			message.Name+" asked about "+message.ServiceInterest,
			map[string]string{"messageId": message.ID.String()})
		if err != nil {
			srv.log(ctx).Warn("Push notification failed", slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Contact message received", slog.String("message_id", message.ID.String()))

	return message, nil
}

// validateSubmission enforces the contact-form required fields.
func validateSubmission(input usecase.SubmitMessageInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("name is required")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domainerrors.ErrValidationFailed.WrapMessage("a valid email is required")
	}
	if strings.TrimSpace(input.ServiceInterest) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("service interest is required")
	}
	if strings.TrimSpace(input.Body) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("message body is required")
	}

	return nil
}
