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
	"golang.org/x/crypto/bcrypt"
)

func TestAdminUserUsecase_Create_HashesPasswordAndAudits(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)
	uc := usecase.NewAdminUserUsecase(users, audit, &validatorStub{})

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//平文保存していないこと
		return u.Email == "new@example.com" &&
			u.PasswordHash != "secret-pass-1" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-pass-1")) == nil &&
			u.Role == model.RoleStaff &&
			u.Status == model.UserStatusActive
	})).Return(nil)

	audit.On("Create", mock.Anything, mock.MatchedBy(func(log model.AuditLog) bool {
		return log.EventType == model.AuditEventUserCreation && *log.UserID == "admin-1"
	})).Return(nil)

	out, err := uc.Create(context.Background(), "admin-1", usecase.CreateUserInput{
		Email: "new@example.com", Password: "secret-pass-1",
	}, "127.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", out.Email)

	users.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminUserUsecase_Create_DuplicateEmailConflict(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAdminUserUsecase(users, new(AuditRepoMock), &validatorStub{})

	users.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicateKey)

	_, err := uc.Create(context.Background(), "admin-1", usecase.CreateUserInput{
		Email: "dup@example.com", Password: "secret-pass-1",
	}, "")
	assertHTTPStatus(t, err, http.StatusConflict)
}

func TestAdminUserUsecase_UpdateStatus_DeactivateBumpsTokenVersion(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)
	uc := usecase.NewAdminUserUsecase(users, audit, &validatorStub{})

	users.On("FindByID", mock.Anything, "user-1").Return(&model.User{
		ID: "user-1", Email: "staff@example.com", Status: model.UserStatusActive,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Status == model.UserStatusInactive
	})).Return(nil)
	users.On("IncrementTokenVersion", mock.Anything, "user-1").Return(nil)

	audit.On("Create", mock.Anything, mock.MatchedBy(func(log model.AuditLog) bool {
		return log.EventType == model.AuditEventUserStatusUpdate
	})).Return(nil)

	out, err := uc.UpdateStatus(context.Background(), "admin-1", "user-1", "inactive", "")
	assert.NoError(t, err)
	assert.Equal(t, string(model.UserStatusInactive), out.Status)

	users.AssertExpectations(t)
}

func TestAdminUserUsecase_UpdateStatus_ActivateKeepsTokenVersion(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)
	uc := usecase.NewAdminUserUsecase(users, audit, &validatorStub{})

	users.On("FindByID", mock.Anything, "user-1").Return(&model.User{
		ID: "user-1", Status: model.UserStatusInactive,
	}, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.UpdateStatus(context.Background(), "admin-1", "user-1", "active", "")
	assert.NoError(t, err)

	users.AssertNotCalled(t, "IncrementTokenVersion", mock.Anything, mock.Anything)
}

func TestAdminUserUsecase_UpdateStatus_InvalidStatus(t *testing.T) {
	uc := usecase.NewAdminUserUsecase(new(UserRepoMock), new(AuditRepoMock), &validatorStub{})

	_, err := uc.UpdateStatus(context.Background(), "admin-1", "user-1", "suspended", "")
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestAdminUserUsecase_ForcePasswordReset_SetsFlag(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)
	uc := usecase.NewAdminUserUsecase(users, audit, &validatorStub{})

	users.On("FindByID", mock.Anything, "user-1").Return(&model.User{
		ID: "user-1", Status: model.UserStatusActive,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.PasswordResetRequired
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(log model.AuditLog) bool {
		return log.EventType == model.AuditEventPasswordResetForced
	})).Return(nil)

	_, err := uc.ForcePasswordReset(context.Background(), "admin-1", "user-1", "")
	assert.NoError(t, err)

	users.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminUserUsecase_ForceLogout_UnknownUser(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAdminUserUsecase(users, new(AuditRepoMock), &validatorStub{})

	users.On("IncrementTokenVersion", mock.Anything, "ghost").Return(repo.ErrUserNotFound)

	err := uc.ForceLogout(context.Background(), "admin-1", "ghost")
	assertHTTPStatus(t, err, http.StatusNotFound)
}
