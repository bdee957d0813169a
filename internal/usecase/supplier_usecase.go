package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SupplierUsecase struct {
	supplierRepo repo.SupplierRepository
	productRepo  repo.SupplierProductRepository
}

// DI
func NewSupplierUsecase(supplierRepo repo.SupplierRepository, productRepo repo.SupplierProductRepository) *SupplierUsecase {
	return &SupplierUsecase{supplierRepo: supplierRepo, productRepo: productRepo}
}

func (u *SupplierUsecase) List(ctx context.Context) ([]model.Supplier, error) {
	suppliers, err := u.supplierRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return suppliers, nil
}

func (u *SupplierUsecase) Get(ctx context.Context, id string) (model.Supplier, error) {
	if id == "" {
		return model.Supplier{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	s, err := u.supplierRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Supplier{}, NewHTTPError(http.StatusNotFound, "supplier not found")
	}
	if err != nil {
		return model.Supplier{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

type CreateSupplierInput struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Status        string
}

func (u *SupplierUsecase) Create(ctx context.Context, in CreateSupplierInput) (model.Supplier, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return model.Supplier{}, NewHTTPError(http.StatusBadRequest, "name and email are required")
	}

	//未指定ならActive
	status := model.SupplierStatusActive
	if in.Status != "" {
		parsed, ok := parseSupplierStatus(in.Status)
		if !ok {
			return model.Supplier{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		status = parsed
	}

	s := model.Supplier{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		Status:        status,
	}

	created, err := u.supplierRepo.Create(ctx, s)
	if err != nil {
		return model.Supplier{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 部分更新。nilのフィールドは触らない
type UpdateSupplierInput struct {
	Name          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	Status        *string
	Rating        *float64
}

func (u *SupplierUsecase) Update(ctx context.Context, id string, in UpdateSupplierInput) (model.Supplier, error) {
	if id == "" {
		return model.Supplier{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	s, err := u.supplierRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Supplier{}, NewHTTPError(http.StatusNotFound, "supplier not found")
	}
	if err != nil {
		return model.Supplier{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return model.Supplier{}, NewHTTPError(http.StatusBadRequest, "name must not be empty")
		}
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.ContactPerson != nil {
		s.ContactPerson = strings.TrimSpace(*in.ContactPerson)
	}
	if in.Email != nil {
		if strings.TrimSpace(*in.Email) == "" {
			return model.Supplier{}, NewHTTPError(http.StatusBadRequest, "email must not be empty")
		}
		s.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		s.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		s.Address = strings.TrimSpace(*in.Address)
	}
	if in.Status != nil {
		parsed, ok := parseSupplierStatus(*in.Status)
		if !ok {
			return model.Supplier{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		s.Status = parsed
	}
	if in.Rating != nil {
		s.Rating = in.Rating
	}

	if err := u.supplierRepo.Update(ctx, s); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Supplier{}, NewHTTPError(http.StatusNotFound, "supplier not found")
		}
		return model.Supplier{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return s, nil
}

// ハード削除。依存する注文・カタログ商品は残る（孤児FKは既知の課題）
func (u *SupplierUsecase) Delete(ctx context.Context, id string) (model.Supplier, error) {
	if id == "" {
		return model.Supplier{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	deleted, err := u.supplierRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Supplier{}, NewHTTPError(http.StatusNotFound, "supplier not found")
	}
	if err != nil {
		return model.Supplier{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return deleted, nil
}

// カタログ（仕入先商品）の一覧。supplierIDが空なら全件
func (u *SupplierUsecase) ListProducts(ctx context.Context, supplierID string) ([]model.SupplierProduct, error) {
	if supplierID != "" {
		if _, err := u.supplierRepo.FindByID(ctx, supplierID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, NewHTTPError(http.StatusNotFound, "supplier not found")
			}
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	products, err := u.productRepo.List(ctx, supplierID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

type CreateSupplierProductInput struct {
	SupplierID  string
	ProductName string
	Description string
	Price       *decimal.Decimal
}

// 管理者によるカタログ商品の登録
func (u *SupplierUsecase) CreateProduct(ctx context.Context, in CreateSupplierProductInput) (model.SupplierProduct, error) {
	if strings.TrimSpace(in.SupplierID) == "" || strings.TrimSpace(in.ProductName) == "" {
		return model.SupplierProduct{}, NewHTTPError(http.StatusBadRequest, "supplier_id and product_name are required")
	}

	if _, err := u.supplierRepo.FindByID(ctx, in.SupplierID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.SupplierProduct{}, NewHTTPError(http.StatusNotFound, "supplier not found")
		}
		return model.SupplierProduct{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p := model.SupplierProduct{
		ID:          uuid.NewString(),
		SupplierID:  in.SupplierID,
		ProductName: strings.TrimSpace(in.ProductName),
		Description: strings.TrimSpace(in.Description),
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return model.SupplierProduct{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
		}
		p.Price = decimal.NewNullDecimal(*in.Price)
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.SupplierProduct{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func parseSupplierStatus(s string) (model.SupplierStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return model.SupplierStatusActive, true
	case "inactive":
		return model.SupplierStatusInactive, true
	default:
		return "", false
	}
}
