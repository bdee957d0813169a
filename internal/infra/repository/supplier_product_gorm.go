package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type SupplierProductGormRepository struct {
	db *gorm.DB
}

func NewSupplierProductGormRepository(db *gorm.DB) *SupplierProductGormRepository {
	return &SupplierProductGormRepository{db: db}
}

// supplierIDが空なら全件
func (r *SupplierProductGormRepository) List(ctx context.Context, supplierID string) ([]model.SupplierProduct, error) {
	q := r.db.WithContext(ctx).Model(&model.SupplierProduct{})
	if supplierID != "" {
		q = q.Where("supplier_id = ?", supplierID)
	}

	var products []model.SupplierProduct
	if err := q.Order("product_name asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *SupplierProductGormRepository) FindByID(ctx context.Context, id string) (model.SupplierProduct, error) {
	var p model.SupplierProduct
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SupplierProduct{}, repo.ErrNotFound
	}
	if err != nil {
		return model.SupplierProduct{}, err
	}
	return p, nil
}

func (r *SupplierProductGormRepository) Create(ctx context.Context, p model.SupplierProduct) (model.SupplierProduct, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.SupplierProduct{}, err
	}
	return p, nil
}
