package model

import "time"

// 監査イベントの種類
type AuditEventType string

const (
	//ログイン成功。
	AuditEventUserLogin AuditEventType = "user_login"

	//ログアウト。
	AuditEventUserLogout AuditEventType = "user_logout"

	//管理者によるユーザー作成。
	AuditEventUserCreation AuditEventType = "user_creation"

	//管理者によるステータス変更。
	AuditEventUserStatusUpdate AuditEventType = "user_status_update"

	//管理者によるパスワードリセット強制。
	AuditEventPasswordResetForced AuditEventType = "password_reset_forced"
)

// 監査ログ。追記のみで、更新・削除はしない。
// 「誰が」「何を」「誰に対して」を残す。
type AuditLog struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	EventType AuditEventType `gorm:"type:varchar(50);not null;index" json:"event_type"`

	//操作したユーザー
	UserID *string `gorm:"type:uuid;index" json:"user_id"`

	//操作対象のユーザー（user_creationなど）
	TargetUserID *string `gorm:"type:uuid;index" json:"target_user_id"`

	//付帯情報。JSON文字列で保存する
	Details string `gorm:"type:text" json:"details"`

	IPAddress string    `gorm:"type:varchar(45)" json:"ip_address"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
