package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type InventoryStockGormRepository struct {
	db *gorm.DB
}

func NewInventoryStockGormRepository(db *gorm.DB) *InventoryStockGormRepository {
	return &InventoryStockGormRepository{db: db}
}

// 在庫が足りるときだけ減らす
func (r *InventoryStockGormRepository) DecreaseStockIfEnough(ctx context.Context, itemID string, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.InventoryItem{}).
		Where("id = ? AND stock >= ?", itemID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（キャンセル）
func (r *InventoryStockGormRepository) IncreaseStock(ctx context.Context, itemID string, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.InventoryItem{}).
		Where("id = ?", itemID).
		Update("stock", gorm.Expr("stock + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
