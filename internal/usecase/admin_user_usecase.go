package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// 管理者だけが通るユーザー管理操作。
// ルート側でAdminRoleGuardを通すのが前提だが、usecaseでも操作者を要求する。
type AdminUserUsecase struct {
	users     repo.UserRepository
	auditRepo repo.AuditLogRepository
	validator AuthValidator
}

func NewAdminUserUsecase(users repo.UserRepository, auditRepo repo.AuditLogRepository, validator AuthValidator) *AdminUserUsecase {
	return &AdminUserUsecase{users: users, auditRepo: auditRepo, validator: validator}
}

func (u *AdminUserUsecase) List(ctx context.Context) ([]UserDTO, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]UserDTO, 0, len(users))
	for i := range users {
		outs = append(outs, toUserDTO(&users[i]))
	}
	return outs, nil
}

type CreateUserInput struct {
	Email    string
	Password string
	FullName string
	Role     string
	Status   string
}

func (u *AdminUserUsecase) Create(ctx context.Context, adminID string, in CreateUserInput, ip string) (UserDTO, error) {
	if adminID == "" {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.validator.ValidateCreateUser(ctx, in.Email, in.Password, in.Role, in.Status); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	role := model.RoleStaff
	if in.Role != "" {
		role = model.Role(strings.ToLower(in.Role))
	}
	status := model.UserStatusActive
	if in.Status != "" {
		status = model.UserStatus(strings.ToLower(in.Status))
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(pwHash),
		Role:         role,
		Status:       status,
	}
	if name := strings.TrimSpace(in.FullName); name != "" {
		user.FullName = &name
	}

	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return UserDTO{}, NewHTTPError(http.StatusConflict, "email already exists")
		}
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	writeAudit(ctx, u.auditRepo, model.AuditEventUserCreation, &adminID, &user.ID, nil, ip)

	return toUserDTO(user), nil
}

func (u *AdminUserUsecase) UpdateStatus(ctx context.Context, adminID string, targetUserID string, status string, ip string) (UserDTO, error) {
	if adminID == "" {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if targetUserID == "" {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	parsed := model.UserStatus(strings.ToLower(strings.TrimSpace(status)))
	if parsed != model.UserStatusActive && parsed != model.UserStatusInactive {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	user, err := u.users.FindByID(ctx, targetUserID)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, "user not found")
	}

	user.Status = parsed
	if err := u.users.Update(ctx, user); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//停止したユーザーのaccess tokenを失効させる
	if parsed == model.UserStatusInactive {
		_ = u.users.IncrementTokenVersion(ctx, targetUserID)
	}

	writeAudit(ctx, u.auditRepo, model.AuditEventUserStatusUpdate, &adminID, &targetUserID, map[string]interface{}{"status": string(parsed)}, ip)

	return toUserDTO(user), nil
}

// 次回ログイン時のパスワード変更を強制する
func (u *AdminUserUsecase) ForcePasswordReset(ctx context.Context, adminID string, targetUserID string, ip string) (UserDTO, error) {
	if adminID == "" {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if targetUserID == "" {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := u.users.FindByID(ctx, targetUserID)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, "user not found")
	}

	user.PasswordResetRequired = true
	if err := u.users.Update(ctx, user); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	writeAudit(ctx, u.auditRepo, model.AuditEventPasswordResetForced, &adminID, &targetUserID, nil, ip)

	return toUserDTO(user), nil
}

// 対象ユーザーのtoken_versionを+1して全access tokenを失効させる
func (u *AdminUserUsecase) ForceLogout(ctx context.Context, adminID string, targetUserID string) error {
	if adminID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if targetUserID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := u.users.IncrementTokenVersion(ctx, targetUserID); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 監査ログ一覧（フィルタ付き）
func (u *AdminUserUsecase) ListAuditLogs(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
