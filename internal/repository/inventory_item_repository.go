package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// SKU・emailの一意制約違反を統一
var ErrDuplicateKey = errors.New("duplicate key")

// 在庫アイテムの永続化（保存・取得）だけを約束。
type InventoryItemRepository interface {
	//カテゴリ・仕入先の表示名付きで全件を返す
	List(ctx context.Context) ([]model.InventoryItem, error)

	FindByID(ctx context.Context, id string) (model.InventoryItem, error)

	//SKU重複はErrDuplicateKey
	Create(ctx context.Context, item model.InventoryItem) (model.InventoryItem, error)

	Update(ctx context.Context, item model.InventoryItem) error

	//削除したレコードを返す。対象がなければErrNotFound
	Delete(ctx context.Context, id string) (model.InventoryItem, error)
}

// 在庫数の操作。注文確定トランザクションの中で使う。
type InventoryStockRepository interface {
	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, itemID string, qty int64) (bool, error)

	// 在庫戻し（キャンセルなど）
	IncreaseStock(ctx context.Context, itemID string, qty int64) error
}
