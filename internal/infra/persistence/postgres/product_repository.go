package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/repository"
	"helios/internal/errors"
	"helios/internal/infra/persistence/model"
)

// productRepository implements the domain ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// List retrieves every catalog entry.
func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var models []*model.ProductModel
	if err := repo.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(models))
	for _, m := range models {
		products = append(products, toProductDomain(m))
	}

	return products, nil
}

// UpsertAll writes the given products in one batched operation, overwriting
// entries that share an ID.
func (repo *productRepository) UpsertAll(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}

	models := make([]*model.ProductModel, 0, len(products))
	for _, p := range products {
		models = append(models, fromProductDomain(p))
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&models).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert products")
	}

	return nil
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:                 data.ID,
		Title:              data.Title,
		Price:              data.Price,
		PriceWithoutPanels: data.PriceWithoutPanels,
		Category:           entity.ProductCategory(data.Category),
		Description:        data.Description,
		Usage:              data.Usage,
		Components:         data.Components,
		IsFeatured:         data.IsFeatured,
		LoadCapacity:       data.LoadCapacity,
		Badge:              data.Badge,
		ImageURL:           data.ImageURL,
		Stock:              data.Stock,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:                 data.ID,
		Title:              data.Title,
		Price:              data.Price,
		PriceWithoutPanels: data.PriceWithoutPanels,
		Category:           data.Category.String(),
		Description:        data.Description,
		Usage:              data.Usage,
		Components:         model.StringList(data.Components),
		IsFeatured:         data.IsFeatured,
		LoadCapacity:       data.LoadCapacity,
		Badge:              data.Badge,
		ImageURL:           data.ImageURL,
		Stock:              data.Stock,
	}
}
