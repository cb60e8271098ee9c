package models

import "time"

type Employee struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName  string    `gorm:"size:100;not null" json:"firstName"`
	LastName   string    `gorm:"size:100;not null" json:"lastName"`
	TCNo       string    `gorm:"size:11;uniqueIndex;not null" json:"tcNo"`
	Email      string    `gorm:"size:100" json:"email"`
	Phone      string    `gorm:"size:20" json:"phone"`
	Department string    `gorm:"size:100" json:"department"`
	Position   string    `gorm:"size:100" json:"position"`
	StartDate  string    `gorm:"size:10;not null" json:"startDate"` // işe başlama, YYYY-MM-DD
	IsActive   bool      `gorm:"default:true" json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

type LeaveRequest struct {
	ID          string      `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID  string      `gorm:"type:uuid;index;not null" json:"employeeId"`
	LeaveType   string      `gorm:"size:20;not null" json:"leaveType"` // annual, unpaid, sick...
	StartDate   string      `gorm:"size:10;not null" json:"startDate"`
	EndDate     string      `gorm:"size:10;not null" json:"endDate"`
	TotalDays   int         `gorm:"not null" json:"totalDays"` // iş günü (hafta sonu hariç)
	Status      LeaveStatus `gorm:"size:20;index;not null" json:"status"`
	Description string      `gorm:"size:500" json:"description"`

	ReviewedBy      *uint      `json:"reviewedBy,omitempty"`
	ReviewedByEmail string     `gorm:"size:100" json:"reviewedByEmail,omitempty"`
	ReviewNotes     string     `gorm:"size:500" json:"reviewNotes,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`

	RequestedAt time.Time `json:"requestedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LeaveEntitlement: çalışanın yıl bazlı izin hakkı. usedDays/remainingDays
// güncellemeleri talep durumuyla aynı transaction içinde yapılır.
type LeaveEntitlement struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID    string    `gorm:"type:uuid;index:idx_entitlement_year;not null" json:"employeeId"`
	Year          int       `gorm:"index:idx_entitlement_year;not null" json:"year"`
	TotalDays     int       `gorm:"not null" json:"totalDays"`
	UsedDays      int       `gorm:"not null" json:"usedDays"`
	RemainingDays int       `gorm:"not null" json:"remainingDays"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
