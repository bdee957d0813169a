package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// HTTPErrorのstatusを確認する共通ヘルパ
func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
	}
}

// =====================
// Mocks（usecaseテスト共通）
// =====================

type ItemRepoMock struct{ mock.Mock }

func (m *ItemRepoMock) List(ctx context.Context) ([]model.InventoryItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.InventoryItem)
	return items, args.Error(1)
}

func (m *ItemRepoMock) FindByID(ctx context.Context, id string) (model.InventoryItem, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(model.InventoryItem)
	return it, args.Error(1)
}

func (m *ItemRepoMock) Create(ctx context.Context, item model.InventoryItem) (model.InventoryItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.InventoryItem)
	return created, args.Error(1)
}

func (m *ItemRepoMock) Update(ctx context.Context, item model.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ItemRepoMock) Delete(ctx context.Context, id string) (model.InventoryItem, error) {
	args := m.Called(ctx, id)
	deleted, _ := args.Get(0).(model.InventoryItem)
	return deleted, args.Error(1)
}

type StockRepoMock struct{ mock.Mock }

func (m *StockRepoMock) DecreaseStockIfEnough(ctx context.Context, itemID string, qty int64) (bool, error) {
	args := m.Called(ctx, itemID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *StockRepoMock) IncreaseStock(ctx context.Context, itemID string, qty int64) error {
	args := m.Called(ctx, itemID, qty)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	created, _ := args.Get(0).(model.Order)
	return created, args.Error(1)
}

func (m *OrderRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type SupplierRepoMock struct{ mock.Mock }

func (m *SupplierRepoMock) List(ctx context.Context) ([]model.Supplier, error) {
	args := m.Called(ctx)
	suppliers, _ := args.Get(0).([]model.Supplier)
	return suppliers, args.Error(1)
}

func (m *SupplierRepoMock) FindByID(ctx context.Context, id string) (model.Supplier, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Supplier)
	return s, args.Error(1)
}

func (m *SupplierRepoMock) Create(ctx context.Context, s model.Supplier) (model.Supplier, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(model.Supplier)
	return created, args.Error(1)
}

func (m *SupplierRepoMock) Update(ctx context.Context, s model.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SupplierRepoMock) Delete(ctx context.Context, id string) (model.Supplier, error) {
	args := m.Called(ctx, id)
	deleted, _ := args.Get(0).(model.Supplier)
	return deleted, args.Error(1)
}

type SupplierProductRepoMock struct{ mock.Mock }

func (m *SupplierProductRepoMock) List(ctx context.Context, supplierID string) ([]model.SupplierProduct, error) {
	args := m.Called(ctx, supplierID)
	products, _ := args.Get(0).([]model.SupplierProduct)
	return products, args.Error(1)
}

func (m *SupplierProductRepoMock) FindByID(ctx context.Context, id string) (model.SupplierProduct, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.SupplierProduct)
	return p, args.Error(1)
}

func (m *SupplierProductRepoMock) Create(ctx context.Context, p model.SupplierProduct) (model.SupplierProduct, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.SupplierProduct)
	return created, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) IncrementTokenVersion(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type RefreshTokenRepoMock struct{ mock.Mock }

func (m *RefreshTokenRepoMock) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	t, _ := args.Get(0).(*model.RefreshToken)
	return t, args.Error(1)
}

func (m *RefreshTokenRepoMock) MarkUsed(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) Revoke(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteAllByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// WithinTxは同じreposをそのまま渡すだけのスタブ
type txReposStub struct {
	orders           repo.OrderRepository
	orderItems       repo.OrderItemRepository
	items            repo.InventoryItemRepository
	stock            repo.InventoryStockRepository
	supplierProducts repo.SupplierProductRepository
	suppliers        repo.SupplierRepository
}

func (s *txReposStub) Orders() repo.OrderRepository                   { return s.orders }
func (s *txReposStub) OrderItems() repo.OrderItemRepository           { return s.orderItems }
func (s *txReposStub) Items() repo.InventoryItemRepository            { return s.items }
func (s *txReposStub) Stock() repo.InventoryStockRepository           { return s.stock }
func (s *txReposStub) SupplierProducts() repo.SupplierProductRepository { return s.supplierProducts }
func (s *txReposStub) Suppliers() repo.SupplierRepository             { return s.suppliers }

type txManagerStub struct {
	repos *txReposStub
}

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}
