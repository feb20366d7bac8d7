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

// systemRepository implements the domain SystemRepository interface using GORM.
type systemRepository struct {
	db *gorm.DB
}

// NewSystemRepository is the constructor for systemRepository.
func NewSystemRepository(db *gorm.DB) repository.SystemRepository {
	return &systemRepository{db: db}
}

// ListByOwner retrieves every system owned by a user.
func (repo *systemRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.System, error) {
	var models []*model.SystemModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list systems")
	}

	systems := make([]*entity.System, 0, len(models))
	for _, m := range models {
		systems = append(systems, toSystemDomain(m))
	}

	return systems, nil
}

// FindByID retrieves a single system.
func (repo *systemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.System, error) {
	var systemM model.SystemModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&systemM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSystemNotFound
		}

		return nil, errors.Wrap(err, "failed to find system")
	}

	return toSystemDomain(&systemM), nil
}

// Create persists a new system.
func (repo *systemRepository) Create(ctx context.Context, system *entity.System) error {
	systemM := fromSystemDomain(system)

	if err := repo.db.WithContext(ctx).Create(systemM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create system")
	}

	system.ID = systemM.ID
	system.CreatedAt = systemM.CreatedAt

	return nil
}

// Delete removes a system.
func (repo *systemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.SystemModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete system")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSystemNotFound
	}

	return nil
}

// DeleteByOwner removes every system owned by a user.
func (repo *systemRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&model.SystemModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete systems")
	}

	return nil
}

// --- Mapper Functions ---

func toSystemDomain(data *model.SystemModel) *entity.System {
	if data == nil {
		return nil
	}

	return &entity.System{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Name:        data.Name,
		Type:        entity.SystemType(data.Type),
		Status:      entity.SystemStatus(data.Status),
		SiteID:      data.SiteID,
		Notes:       data.Notes,
		InstalledAt: data.InstalledAt,
		CreatedAt:   data.CreatedAt,
	}
}

func fromSystemDomain(data *entity.System) *model.SystemModel {
	if data == nil {
		return nil
	}

	return &model.SystemModel{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Name:        data.Name,
		Type:        data.Type.String(),
		Status:      data.Status.String(),
		SiteID:      data.SiteID,
		Notes:       data.Notes,
		InstalledAt: data.InstalledAt,
	}
}
