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

// siteRepository implements the domain SiteRepository interface using GORM.
type siteRepository struct {
	db *gorm.DB
}

// NewSiteRepository is the constructor for siteRepository.
func NewSiteRepository(db *gorm.DB) repository.SiteRepository {
	return &siteRepository{db: db}
}

// ListByOwner retrieves every site owned by a user.
func (repo *siteRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Site, error) {
	var models []*model.SiteModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sites")
	}

	sites := make([]*entity.Site, 0, len(models))
	for _, m := range models {
		sites = append(sites, toSiteDomain(m))
	}

	return sites, nil
}

// FindByID retrieves a single site.
func (repo *siteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	var siteM model.SiteModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&siteM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSiteNotFound
		}

		return nil, errors.Wrap(err, "failed to find site")
	}

	return toSiteDomain(&siteM), nil
}

// Create persists a new site.
func (repo *siteRepository) Create(ctx context.Context, site *entity.Site) error {
	siteM := fromSiteDomain(site)

	if err := repo.db.WithContext(ctx).Create(siteM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create site")
	}

	site.ID = siteM.ID
	site.CreatedAt = siteM.CreatedAt

	return nil
}

// Delete removes a site. Systems referencing it keep their dangling SiteID.
func (repo *siteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.SiteModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete site")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSiteNotFound
	}

	return nil
}

// CountByOwner counts a user's sites.
func (repo *siteRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.SiteModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count sites")
	}

	return count, nil
}

// DeleteByOwner removes every site owned by a user.
func (repo *siteRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&model.SiteModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete sites")
	}

	return nil
}

// --- Mapper Functions ---

func toSiteDomain(data *model.SiteModel) *entity.Site {
	if data == nil {
		return nil
	}

	return &entity.Site{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Name:        data.Name,
		Type:        entity.SiteType(data.Type),
		Address:     data.Address,
		City:        data.City,
		AccessNotes: data.AccessNotes,
		IsPrimary:   data.IsPrimary,
		CreatedAt:   data.CreatedAt,
	}
}

func fromSiteDomain(data *entity.Site) *model.SiteModel {
	if data == nil {
		return nil
	}

	return &model.SiteModel{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Name:        data.Name,
		Type:        data.Type.String(),
		Address:     data.Address,
		City:        data.City,
		AccessNotes: data.AccessNotes,
		IsPrimary:   data.IsPrimary,
	}
}
