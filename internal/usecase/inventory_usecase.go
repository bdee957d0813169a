package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type InventoryUsecase struct {
	itemRepo repo.InventoryItemRepository
}

// DI
func NewInventoryUsecase(itemRepo repo.InventoryItemRepository) *InventoryUsecase {
	return &InventoryUsecase{itemRepo: itemRepo}
}

// APIに返すアイテム。statusはここで導出する
type InventoryItemOutput struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	SKU          string            `json:"sku"`
	CategoryID   *string           `json:"category_id"`
	CategoryName string            `json:"category_name,omitempty"`
	SupplierID   *string           `json:"supplier_id"`
	SupplierName string            `json:"supplier_name,omitempty"`
	Stock        int64             `json:"stock"`
	Price        decimal.Decimal   `json:"price"`
	Status       model.StockStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type InventoryListOutput struct {
	Items []InventoryItemOutput `json:"items"`
	Total int                   `json:"total"`
}

func (u *InventoryUsecase) List(ctx context.Context) (InventoryListOutput, error) {
	items, err := u.itemRepo.List(ctx)
	if err != nil {
		return InventoryListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]InventoryItemOutput, 0, len(items))
	for _, it := range items {
		outs = append(outs, toInventoryItemOutput(it))
	}

	return InventoryListOutput{Items: outs, Total: len(outs)}, nil
}

func (u *InventoryUsecase) Get(ctx context.Context, id string) (InventoryItemOutput, error) {
	if id == "" {
		return InventoryItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.itemRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return InventoryItemOutput{}, NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return InventoryItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toInventoryItemOutput(item), nil
}

type CreateInventoryItemInput struct {
	Name       string
	SKU        string
	CategoryID string
	SupplierID *string
	Stock      int64
	Price      decimal.Decimal
}

func (u *InventoryUsecase) Create(ctx context.Context, in CreateInventoryItemInput) (InventoryItemOutput, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SKU) == "" || strings.TrimSpace(in.CategoryID) == "" {
		return InventoryItemOutput{}, NewHTTPError(http.StatusBadRequest, "name, sku, and category are required")
	}
	if in.Stock < 0 {
		return InventoryItemOutput{}, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if in.Price.IsNegative() {
		return InventoryItemOutput{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	categoryID := strings.TrimSpace(in.CategoryID)
	item := model.InventoryItem{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		SKU:        strings.TrimSpace(in.SKU),
		CategoryID: &categoryID,
		SupplierID: in.SupplierID,
		Stock:      in.Stock,
		Price:      in.Price,
	}

	created, err := u.itemRepo.Create(ctx, item)
	if errors.Is(err, repo.ErrDuplicateKey) {
		return InventoryItemOutput{}, NewHTTPError(http.StatusConflict, "sku already exists")
	}
	if err != nil {
		return InventoryItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toInventoryItemOutput(created), nil
}

// 部分更新の入力。nilのフィールドは触らない
type UpdateInventoryItemInput struct {
	Name       *string
	SKU        *string
	CategoryID *string
	SupplierID *string
	Stock      *int64
	Price      *decimal.Decimal
}

func (u *InventoryUsecase) Update(ctx context.Context, id string, in UpdateInventoryItemInput) (InventoryItemOutput, error) {
	if id == "" {
		return InventoryItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.itemRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return InventoryItemOutput{}, NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return InventoryItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//指定されたフィールドだけ上書き
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return InventoryItemOutput{}, NewHTTPError(http.StatusBadRequest, "name must not be empty")
		}
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.SKU != nil {
		if strings.TrimSpace(*in.SKU) == "" {
			return InventoryItemOutput{}, NewHTTPError(http.StatusBadRequest, "sku must not be empty")
		}
		item.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.CategoryID != nil {
		item.CategoryID = in.CategoryID
	}
	if in.SupplierID != nil {
		item.SupplierID = in.SupplierID
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return InventoryItemOutput{}, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
		}
		item.Stock = *in.Stock
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return InventoryItemOutput{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
		}
		item.Price = *in.Price
	}

	if err := u.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return InventoryItemOutput{}, NewHTTPError(http.StatusConflict, "sku already exists")
		}
		if errors.Is(err, repo.ErrNotFound) {
			return InventoryItemOutput{}, NewHTTPError(http.StatusNotFound, "item not found")
		}
		return InventoryItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//statusは出力時にstockから再導出される
	return toInventoryItemOutput(item), nil
}

func (u *InventoryUsecase) Delete(ctx context.Context, id string) (InventoryItemOutput, error) {
	if id == "" {
		return InventoryItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	deleted, err := u.itemRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return InventoryItemOutput{}, NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return InventoryItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toInventoryItemOutput(deleted), nil
}

func toInventoryItemOutput(it model.InventoryItem) InventoryItemOutput {
	out := InventoryItemOutput{
		ID:         it.ID,
		Name:       it.Name,
		SKU:        it.SKU,
		CategoryID: it.CategoryID,
		SupplierID: it.SupplierID,
		Stock:      it.Stock,
		Price:      it.Price,
		Status:     model.DeriveStockStatus(it.Stock),
		CreatedAt:  it.CreatedAt,
		UpdatedAt:  it.UpdatedAt,
	}
	if it.Category != nil {
		out.CategoryName = it.Category.Name
	}
	if it.Supplier != nil {
		out.SupplierName = it.Supplier.Name
	}
	return out
}
