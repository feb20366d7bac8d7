package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/repository"
	"helios/internal/errors"
	"helios/internal/infra/persistence/model"
)

// messageRepository implements the domain MessageRepository interface using GORM.
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository is the constructor for messageRepository.
func NewMessageRepository(db *gorm.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

// Create persists a new contact message.
func (repo *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	messageM := fromMessageDomain(message)

	if err := repo.db.WithContext(ctx).Create(messageM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create message")
	}

	message.ID = messageM.ID
	message.CreatedAt = messageM.CreatedAt

	return nil
}

// ListAll retrieves all messages ordered by creation time descending.
func (repo *messageRepository) ListAll(ctx context.Context) ([]*entity.Message, error) {
	var models []*model.MessageModel
	err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	messages := make([]*entity.Message, 0, len(models))
	for _, m := range models {
		messages = append(messages, toMessageDomain(m))
	}

	return messages, nil
}

// FindByID retrieves a single message.
func (repo *messageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	var messageM model.MessageModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&messageM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMessageNotFound
		}

		return nil, errors.Wrap(err, "failed to find message")
	}

	return toMessageDomain(&messageM), nil
}

// UpdateStatus flips the read-state flag.
func (repo *messageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.MessageStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.MessageModel{}).
		Where("id = ?", id).
		Update("status", status.String())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update message status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMessageNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toMessageDomain(data *model.MessageModel) *entity.Message {
	if data == nil {
		return nil
	}

	return &entity.Message{
		ID:              data.ID,
		Name:            data.Name,
		Email:           data.Email,
		Phone:           data.Phone,
		ServiceInterest: data.ServiceInterest,
		Body:            data.Body,
		Status:          entity.MessageStatus(data.Status),
		CreatedAt:       data.CreatedAt,
	}
}

func fromMessageDomain(data *entity.Message) *model.MessageModel {
	if data == nil {
		return nil
	}

	status := data.Status
	if status == "" {
		status = entity.MessageStatusNew
	}

	return &model.MessageModel{
		ID:              data.ID,
		Name:            data.Name,
		Email:           data.Email,
		Phone:           data.Phone,
		ServiceInterest: data.ServiceInterest,
		Body:            data.Body,
		Status:          status.String(),
	}
}
