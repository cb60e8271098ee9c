package models

import "time"

type SettlementKind string

const (
	SettlementDesk   SettlementKind = "desk"   // gişe
	SettlementDealer SettlementKind = "dealer" // bayi dolum
)

type SettlementStatus string

const (
	StatusDraft           SettlementStatus = "draft"
	StatusSubmitted       SettlementStatus = "submitted"
	StatusApproved        SettlementStatus = "approved"
	StatusRejected        SettlementStatus = "rejected"
	StatusPendingRevision SettlementStatus = "pending_revision"
	StatusRevised         SettlementStatus = "revised"
)

// SettlementRecord: bir (kullanıcı, tarih) çifti için günlük gişe/bayi hesap kapanışı.
// products, categoryCreditCards, payments, banknotes ve bankSentCash alanları
// istemciden geldiği şekliyle jsonb olarak saklanır; eski düz banknot formatı
// okuma sırasında kategorili formata dönüştürülür.
type SettlementRecord struct {
	ID     string           `gorm:"type:uuid;primaryKey"`
	Kind   SettlementKind   `gorm:"size:10;index:idx_settlement_key;not null"`
	Date   string           `gorm:"size:10;index:idx_settlement_key;not null"` // YYYY-MM-DD
	Status SettlementStatus `gorm:"size:20;index;not null"`

	SubmittedBy      uint   `gorm:"index:idx_settlement_key;not null"`
	SubmittedByEmail string `gorm:"size:100"`

	Products            string `gorm:"type:jsonb;not null"`
	CategoryCreditCards string `gorm:"type:jsonb;not null"`
	Payments            string `gorm:"type:jsonb;not null"`
	Banknotes           string `gorm:"type:jsonb"`
	BankSentCash        string `gorm:"type:jsonb"`

	// Hesaplanan toplamlar (kullanıcıdan alınmaz)
	TotalSales      float64 `gorm:"not null"`
	TotalCreditCard float64 `gorm:"not null"`
	TotalCash       float64 `gorm:"not null"`
	CashInRegister  float64 `gorm:"not null"`
	Difference      float64 `gorm:"not null"`

	// İnceleme alanları (review sonrası dolar)
	ReviewedBy      *uint
	ReviewedByEmail string `gorm:"size:100"`
	ReviewedByRole  string `gorm:"size:20"`
	ReviewNotes     string `gorm:"size:500"`
	ReviewAction    string `gorm:"size:20"`
	ReviewedAt      *time.Time

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
