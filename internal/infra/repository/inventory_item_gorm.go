package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type InventoryItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewInventoryItemGormRepository(db *gorm.DB) *InventoryItemGormRepository {
	return &InventoryItemGormRepository{db: db}
}

// カテゴリ・仕入先の表示名付きで全件を返す
func (r *InventoryItemGormRepository) List(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem

	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *InventoryItemGormRepository) FindByID(ctx context.Context, id string) (model.InventoryItem, error) {
	var item model.InventoryItem

	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		Where("id = ?", id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.InventoryItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.InventoryItem{}, err
	}

	return item, nil
}

// アイテムの作成。SKU重複はErrDuplicateKey
func (r *InventoryItemGormRepository) Create(ctx context.Context, item model.InventoryItem) (model.InventoryItem, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		if isUniqueViolation(err) {
			return model.InventoryItem{}, repo.ErrDuplicateKey
		}
		return model.InventoryItem{}, err
	}
	return item, nil
}

// アイテムの更新
func (r *InventoryItemGormRepository) Update(ctx context.Context, item model.InventoryItem) error {
	res := r.db.WithContext(ctx).Model(&model.InventoryItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"name":        item.Name,
		"sku":         item.SKU,
		"category_id": item.CategoryID,
		"supplier_id": item.SupplierID,
		"stock":       item.Stock,
		"price":       item.Price,
	})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return repo.ErrDuplicateKey
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// アイテム削除。削除したレコードを返す
func (r *InventoryItemGormRepository) Delete(ctx context.Context, id string) (model.InventoryItem, error) {
	var item model.InventoryItem

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.InventoryItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.InventoryItem{}, err
	}

	if err := r.db.WithContext(ctx).Delete(&model.InventoryItem{}, "id = ?", id).Error; err != nil {
		return model.InventoryItem{}, err
	}

	return item, nil
}

// unique制約違反かどうか
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
