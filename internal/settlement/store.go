package settlement

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"gise-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store: gişe/bayi hesap kapanış kayıtlarının kalıcılık ve sorgu katmanı.
// Her okuma yolundan dönen kayıt normalize edilmiş şekildedir.
type Store struct {
	db      *gorm.DB
	pricing Pricing
}

func NewStore(db *gorm.DB, pricing Pricing) *Store {
	return &Store{db: db, pricing: pricing}
}

// Actor: isteği yapan kullanıcının kimliği ve rolü.
type Actor struct {
	ID    uint
	Email string
	Role  models.UserRole
}

// Input: istemciden gelen kapanış verisi. banknotes ve bankSentCash opsiyoneldir,
// gelmezse türün varsayılan (sıfırlanmış) yapısı saklanır.
type Input struct {
	Date                string
	Products            map[string]float64
	CategoryCreditCards map[string]float64
	Payments            Payments
	Banknotes           json.RawMessage
	BankSentCash        json.RawMessage
}

type Filter struct {
	StartDate string
	EndDate   string
	Status    string // altı durumdan biri ya da "all"
}

// Record: çağırana dönen normalize edilmiş kayıt. Zaman damgaları ISO-8601.
type Record struct {
	ID                  string                  `json:"id"`
	Kind                models.SettlementKind   `json:"kind"`
	Date                string                  `json:"date"`
	Status              models.SettlementStatus `json:"status"`
	Products            map[string]float64      `json:"products"`
	CategoryCreditCards map[string]float64      `json:"categoryCreditCards"`
	Payments            Payments                `json:"payments"`
	Banknotes           CategorizedBanknotes    `json:"banknotes"`
	BankSentCash        BankSentCash            `json:"bankSentCash"`
	Totals              Totals                  `json:"totals"`
	SubmittedBy         uint                    `json:"submittedBy"`
	SubmittedByEmail    string                  `json:"submittedByEmail"`
	ReviewedBy          *uint                   `json:"reviewedBy,omitempty"`
	ReviewedByEmail     string                  `json:"reviewedByEmail,omitempty"`
	ReviewedByRole      string                  `json:"reviewedByRole,omitempty"`
	ReviewNotes         string                  `json:"reviewNotes,omitempty"`
	ReviewAction        string                  `json:"reviewAction,omitempty"`
	SubmittedAt         string                  `json:"submittedAt"`
	ReviewedAt          string                  `json:"reviewedAt,omitempty"`
	CreatedAt           string                  `json:"createdAt"`
	UpdatedAt           string                  `json:"updatedAt"`
}

func toRecord(m *models.SettlementRecord) Record {
	rec := Record{
		ID:                  m.ID,
		Kind:                m.Kind,
		Date:                m.Date,
		Status:              m.Status,
		Products:            map[string]float64{},
		CategoryCreditCards: map[string]float64{},
		Banknotes:           NormalizeBanknotes(m.Banknotes, m.Kind),
		BankSentCash:        NormalizeBankSentCash(m.BankSentCash, m.Kind),
		Totals: Totals{
			TotalSales:      m.TotalSales,
			TotalCreditCard: m.TotalCreditCard,
			TotalCash:       m.TotalCash,
			CashInRegister:  m.CashInRegister,
			Difference:      m.Difference,
		},
		SubmittedBy:      m.SubmittedBy,
		SubmittedByEmail: m.SubmittedByEmail,
		ReviewedBy:       m.ReviewedBy,
		ReviewedByEmail:  m.ReviewedByEmail,
		ReviewedByRole:   m.ReviewedByRole,
		ReviewNotes:      m.ReviewNotes,
		ReviewAction:     m.ReviewAction,
		SubmittedAt:      m.SubmittedAt.UTC().Format(time.RFC3339),
		CreatedAt:        m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        m.UpdatedAt.UTC().Format(time.RFC3339),
	}
	// Bozuk jsonb boş alan olarak döner ama sessiz kalmaz; saklanan
	// toplamlarla görünen girdiler ancak logdan eşleştirilebilir.
	if err := json.Unmarshal([]byte(m.Products), &rec.Products); err != nil {
		log.Printf("kayıt %s: products çözümlenemedi: %v", m.ID, err)
	}
	if err := json.Unmarshal([]byte(m.CategoryCreditCards), &rec.CategoryCreditCards); err != nil {
		log.Printf("kayıt %s: categoryCreditCards çözümlenemedi: %v", m.ID, err)
	}
	if err := json.Unmarshal([]byte(m.Payments), &rec.Payments); err != nil {
		log.Printf("kayıt %s: payments çözümlenemedi: %v", m.ID, err)
	}
	if m.ReviewedAt != nil {
		rec.ReviewedAt = m.ReviewedAt.UTC().Format(time.RFC3339)
	}
	return rec
}

// buildModel: girdiden jsonb kolonlarını ve hesaplanan toplamları hazırlar.
func (s *Store) buildModel(kind models.SettlementKind, actor Actor, in Input) (*models.SettlementRecord, error) {
	totals := CalculateTotals(kind, s.pricing, in.Products, in.CategoryCreditCards, in.Payments)

	products, err := json.Marshal(in.Products)
	if err != nil {
		return nil, err
	}
	creditCards, err := json.Marshal(in.CategoryCreditCards)
	if err != nil {
		return nil, err
	}
	payments, err := json.Marshal(in.Payments)
	if err != nil {
		return nil, err
	}

	banknotes := string(in.Banknotes)
	if banknotes == "" || banknotes == "null" {
		b, _ := json.Marshal(defaultBanknotes(kind))
		banknotes = string(b)
	}
	bankSent := string(in.BankSentCash)
	if bankSent == "" || bankSent == "null" {
		b, _ := json.Marshal(defaultBankSentCash(kind))
		bankSent = string(b)
	}

	now := time.Now()
	return &models.SettlementRecord{
		ID:                  uuid.NewString(),
		Kind:                kind,
		Date:                in.Date,
		SubmittedBy:         actor.ID,
		SubmittedByEmail:    actor.Email,
		Products:            string(products),
		CategoryCreditCards: string(creditCards),
		Payments:            string(payments),
		Banknotes:           banknotes,
		BankSentCash:        bankSent,
		TotalSales:          totals.TotalSales,
		TotalCreditCard:     totals.TotalCreditCard,
		TotalCash:           totals.TotalCash,
		CashInRegister:      totals.CashInRegister,
		Difference:          totals.Difference,
		SubmittedAt:         now,
	}, nil
}

// SaveDraft: (kullanıcı, tarih) için varsa taslağın üzerine yazar, yoksa
// yeni taslak oluşturur.
func (s *Store) SaveDraft(actor Actor, kind models.SettlementKind, in Input) (Record, error) {
	fresh, err := s.buildModel(kind, actor, in)
	if err != nil {
		return Record{}, err
	}
	fresh.Status = models.StatusDraft

	var existing models.SettlementRecord
	err = s.db.Where("kind = ? AND date = ? AND submitted_by = ? AND status = ?",
		kind, in.Date, actor.ID, models.StatusDraft).First(&existing).Error
	switch {
	case err == nil:
		fresh.ID = existing.ID
		fresh.CreatedAt = existing.CreatedAt
		if err := s.db.Save(fresh).Error; err != nil {
			return Record{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.Create(fresh).Error; err != nil {
			return Record{}, err
		}
	default:
		return Record{}, err
	}

	return toRecord(fresh), nil
}

// Submit: kaydı inceleme için teslim eder. Aynı tarih için aktif bir kayıt
// varsa ErrConflict döner. Varsa eski taslak, teslim edilen kayıtla aynı
// transaction içinde silinir.
func (s *Store) Submit(actor Actor, kind models.SettlementKind, in Input) (Record, error) {
	var count int64
	if err := s.db.Model(&models.SettlementRecord{}).
		Where("kind = ? AND date = ? AND submitted_by = ? AND status IN ?",
			kind, in.Date, actor.ID, ActiveStatuses(kind)).
		Count(&count).Error; err != nil {
		return Record{}, err
	}
	if count > 0 {
		return Record{}, ErrConflict
	}

	fresh, err := s.buildModel(kind, actor, in)
	if err != nil {
		return Record{}, err
	}
	fresh.Status = models.StatusSubmitted

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kind = ? AND date = ? AND submitted_by = ? AND status = ?",
			kind, in.Date, actor.ID, models.StatusDraft).
			Delete(&models.SettlementRecord{}).Error; err != nil {
			return err
		}
		return tx.Create(fresh).Error
	})
	if err != nil {
		// Ön kontrolü geçen eşzamanlı ikinci teslim unique index'e takılır.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Record{}, ErrConflict
		}
		return Record{}, err
	}

	return toRecord(fresh), nil
}

// List: rol bazlı satır filtresi (gişe sadece kendini görür), ardından durum
// ve tarih aralığı filtreleri. Taslaklar yalnızca açıkça istenirse listelenir.
// Sıralama tarihe göre azalan.
func (s *Store) List(actor Actor, kind models.SettlementKind, f Filter) ([]Record, error) {
	q := s.db.Where("kind = ?", kind)

	if actor.Role == models.RoleDesk {
		q = q.Where("submitted_by = ?", actor.ID)
	}

	switch f.Status {
	case "", "all":
		q = q.Where("status <> ?", models.StatusDraft)
	default:
		q = q.Where("status = ?", f.Status)
	}

	if f.StartDate != "" {
		q = q.Where("date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("date <= ?", f.EndDate)
	}

	var rows []models.SettlementRecord
	if err := q.Order("date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for i := range rows {
		records = append(records, toRecord(&rows[i]))
	}
	return records, nil
}

// Get: tek kayıt. Gişe rolü yalnızca kendi kaydını görebilir.
func (s *Store) Get(actor Actor, kind models.SettlementKind, id string) (Record, error) {
	var row models.SettlementRecord
	if err := s.db.Where("id = ? AND kind = ?", id, kind).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	if !OwnsOrPrivileged(actor.Role, actor.ID, &row) {
		return Record{}, ErrForbidden
	}

	return toRecord(&row), nil
}

// GetDraftByDate: kullanıcının o tarihli taslağı; yoksa (nil, nil).
func (s *Store) GetDraftByDate(actor Actor, kind models.SettlementKind, date string) (*Record, error) {
	var row models.SettlementRecord
	err := s.db.Where("kind = ? AND date = ? AND submitted_by = ? AND status = ?",
		kind, date, actor.ID, models.StatusDraft).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec := toRecord(&row)
	return &rec, nil
}

// Review: approve/reject/revise aksiyonunu uygular, inceleyen kimliğini yazar.
// Kayıt yalnızca submitted veya revised durumundayken incelenebilir.
func (s *Store) Review(actor Actor, kind models.SettlementKind, id string, action ReviewAction, notes string) (Record, error) {
	if !CanReview(actor.Role) {
		return Record{}, ErrForbidden
	}

	newStatus, ok := StatusForAction(action)
	if !ok {
		return Record{}, ErrInvalidState
	}

	var row models.SettlementRecord
	if err := s.db.Where("id = ? AND kind = ?", id, kind).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	if row.Status != models.StatusSubmitted && row.Status != models.StatusRevised {
		return Record{}, ErrInvalidState
	}

	now := time.Now()
	row.Status = newStatus
	row.ReviewedBy = &actor.ID
	row.ReviewedByEmail = actor.Email
	row.ReviewedByRole = string(actor.Role)
	row.ReviewNotes = notes
	row.ReviewAction = string(action)
	row.ReviewedAt = &now

	if err := s.db.Save(&row).Error; err != nil {
		return Record{}, err
	}

	return toRecord(&row), nil
}

// Update: revize bekleyen kaydı yeni girdiyle günceller, toplamları yeniden
// hesaplar ve durumu revised yapar.
func (s *Store) Update(actor Actor, kind models.SettlementKind, id string, in Input) (Record, error) {
	var row models.SettlementRecord
	if err := s.db.Where("id = ? AND kind = ?", id, kind).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	if !CanUpdateAs(actor.Role, actor.ID, &row) {
		return Record{}, ErrForbidden
	}
	if !CanUpdate(row.Status) {
		return Record{}, ErrInvalidState
	}

	fresh, err := s.buildModel(kind, Actor{ID: row.SubmittedBy, Email: row.SubmittedByEmail}, in)
	if err != nil {
		return Record{}, err
	}
	fresh.ID = row.ID
	fresh.CreatedAt = row.CreatedAt
	fresh.Status = models.StatusRevised
	fresh.ReviewedBy = row.ReviewedBy
	fresh.ReviewedByEmail = row.ReviewedByEmail
	fresh.ReviewedByRole = row.ReviewedByRole
	fresh.ReviewNotes = row.ReviewNotes
	fresh.ReviewAction = row.ReviewAction
	fresh.ReviewedAt = row.ReviewedAt

	if err := s.db.Save(fresh).Error; err != nil {
		return Record{}, err
	}

	return toRecord(fresh), nil
}

// Delete: yalnızca taslak, reddedilmiş, revize edilmiş veya revize bekleyen
// kayıtlar silinebilir; gişe rolü sadece kendi kaydını siler.
func (s *Store) Delete(actor Actor, kind models.SettlementKind, id string) error {
	var row models.SettlementRecord
	if err := s.db.Where("id = ? AND kind = ?", id, kind).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !CanDelete(row.Status) {
		return ErrInvalidState
	}
	if !OwnsOrPrivileged(actor.Role, actor.ID, &row) {
		return ErrForbidden
	}

	return s.db.Delete(&row).Error
}
