package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionReview AuditAction = "review"
)

// AuditLog: kapanış ve hakediş kayıtları üzerindeki kritik işlemlerin izi.
// before/after jsonb olarak saklanır, sadece okunur.
type AuditLog struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"index" json:"userId"`
	UserEmail   string      `gorm:"size:100" json:"userEmail"`
	EntityType  string      `gorm:"size:50;index" json:"entityType"`
	EntityID    string      `gorm:"size:36;index" json:"entityId"`
	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:500" json:"description"`
	BeforeData  string      `gorm:"type:jsonb" json:"-"`
	AfterData   string      `gorm:"type:jsonb" json:"-"`
	CreatedAt   time.Time   `json:"createdAt"`
}
