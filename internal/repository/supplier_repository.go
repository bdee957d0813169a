package repository

import (
	"app/internal/domain/model"
	"context"
)

// 仕入先を保存・取得する窓口
type SupplierRepository interface {
	List(ctx context.Context) ([]model.Supplier, error)

	FindByID(ctx context.Context, id string) (model.Supplier, error)

	Create(ctx context.Context, s model.Supplier) (model.Supplier, error)

	Update(ctx context.Context, s model.Supplier) error

	//ハード削除。依存するOrder/SupplierProductへのカスケードはしない
	Delete(ctx context.Context, id string) (model.Supplier, error)
}

type SupplierProductRepository interface {
	//supplierIDが空なら全件
	List(ctx context.Context, supplierID string) ([]model.SupplierProduct, error)
	FindByID(ctx context.Context, id string) (model.SupplierProduct, error)
	Create(ctx context.Context, p model.SupplierProduct) (model.SupplierProduct, error)
}
