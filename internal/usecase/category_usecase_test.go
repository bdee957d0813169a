package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CategoryRepoMock struct {
	mock.Mock
}

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]model.Category)
	return cats, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id string) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

func TestCategoryUsecase_Create_TrimsName(t *testing.T) {
	repoMock := new(CategoryRepoMock)
	uc := usecase.NewCategoryUsecase(repoMock)

	repoMock.On("Create", mock.Anything, mock.MatchedBy(func(c model.Category) bool {
		return c.Name == "Brakes" && c.ID != ""
	})).Return(model.Category{ID: "cat-1", Name: "Brakes"}, nil)

	out, err := uc.Create(context.Background(), "  Brakes  ")
	assert.NoError(t, err)
	assert.Equal(t, "Brakes", out.Name)

	repoMock.AssertExpectations(t)
}

func TestCategoryUsecase_Create_EmptyName(t *testing.T) {
	uc := usecase.NewCategoryUsecase(new(CategoryRepoMock))

	_, err := uc.Create(context.Background(), "   ")
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCategoryUsecase_Create_DuplicateConflict(t *testing.T) {
	repoMock := new(CategoryRepoMock)
	uc := usecase.NewCategoryUsecase(repoMock)

	repoMock.On("Create", mock.Anything, mock.Anything).Return(model.Category{}, repo.ErrDuplicateKey)

	_, err := uc.Create(context.Background(), "Brakes")
	assertHTTPStatus(t, err, http.StatusConflict)
}
