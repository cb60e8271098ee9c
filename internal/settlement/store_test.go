package settlement

import (
	"encoding/json"
	"testing"

	"gise-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SettlementRecord{}))

	return NewStore(db, DefaultPricing())
}

var (
	deskActor       = Actor{ID: 1, Email: "gise@ulasim.local", Role: models.RoleDesk}
	otherDeskActor  = Actor{ID: 2, Email: "gise2@ulasim.local", Role: models.RoleDesk}
	supervisorActor = Actor{ID: 9, Email: "amir@ulasim.local", Role: models.RoleSupervisor}
)

func sampleInput(date string) Input {
	return Input{
		Date:                date,
		Products:            map[string]float64{"dolum": 150, "tamKart": 20},
		CategoryCreditCards: map[string]float64{"dolum": 3530, "kart": 0},
		Payments:            Payments{GunbasiNakit: 720},
	}
}

func TestSubmitComputesTotals(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Submit(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusSubmitted, rec.Status)
	assert.Equal(t, 1150.0, rec.Totals.TotalSales)
	assert.Equal(t, 3530.0, rec.Totals.TotalCreditCard)
	assert.Equal(t, -2380.0, rec.Totals.TotalCash)
	assert.Equal(t, -1660.0, rec.Totals.CashInRegister)
	assert.NotEmpty(t, rec.ID)
	assert.NotEmpty(t, rec.SubmittedAt)
}

func TestSubmitDuplicateDateConflict(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Submit(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.NoError(t, err)

	_, err = store.Submit(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	assert.ErrorIs(t, err, ErrConflict)

	// Farklı kullanıcı ve farklı tür için çakışma yok.
	_, err = store.Submit(otherDeskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	assert.NoError(t, err)
	_, err = store.Submit(deskActor, models.SettlementDealer, Input{
		Date:     "2025-03-10",
		Products: map[string]float64{"bayiDolum": 100},
		CategoryCreditCards: map[string]float64{
			"dolum": 50,
		},
	})
	assert.NoError(t, err)
}

func TestSaveDraftUpsertsByDate(t *testing.T) {
	store := newTestStore(t)

	first, err := store.SaveDraft(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, first.Status)

	in := sampleInput("2025-03-10")
	in.Products["dolum"] = 999
	second, err := store.SaveDraft(deskActor, models.SettlementDesk, in)
	require.NoError(t, err)

	// Aynı taslak üzerine yazılır, yeni kayıt açılmaz.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 999.0, second.Products["dolum"])

	drafts, err := store.List(deskActor, models.SettlementDesk, Filter{Status: string(models.StatusDraft)})
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
}

func TestSubmitConsumesDraft(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveDraft(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.NoError(t, err)

	_, err = store.Submit(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.NoError(t, err)

	draft, err := store.GetDraftByDate(deskActor, models.SettlementDesk, "2025-03-10")
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestListRowFilterAndStatus(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Submit(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.NoError(t, err)
	_, err = store.Submit(otherDeskActor, models.SettlementDesk, sampleInput("2025-03-11"))
	require.NoError(t, err)
	_, err = store.SaveDraft(deskActor, models.SettlementDesk, sampleInput("2025-03-12"))
	require.NoError(t, err)

	// Gişe sadece kendi kayıtlarını görür; taslaklar varsayılan listede yok.
	mine, err := store.List(deskActor, models.SettlementDesk, Filter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, deskActor.ID, mine[0].SubmittedBy)

	// Yetkili roller herkesinkini görür, tarihe göre azalan.
	all, err := store.List(supervisorActor, models.SettlementDesk, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2025-03-11", all[0].Date)
	assert.Equal(t, "2025-03-10", all[1].Date)

	// Tarih aralığı filtresi.
	ranged, err := store.List(supervisorActor, models.SettlementDesk, Filter{StartDate: "2025-03-11", EndDate: "2025-03-11"})
	require.NoError(t, err)
	assert.Len(t, ranged, 1)
}

func TestGetOwnership(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Submit(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.NoError(t, err)

	_, err = store.Get(otherDeskActor, models.SettlementDesk, rec.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := store.Get(supervisorActor, models.SettlementDesk, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)

	_, err = store.Get(supervisorActor, models.SettlementDesk, "yok-boyle-kayit")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewFlow(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Submit(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.NoError(t, err)

	// Gişe rolü inceleme yapamaz.
	_, err = store.Review(deskActor, models.SettlementDesk, rec.ID, ActionApprove, "")
	assert.ErrorIs(t, err, ErrForbidden)

	reviewed, err := store.Review(supervisorActor, models.SettlementDesk, rec.ID, ActionRevise, "rakamlar tutmuyor")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingRevision, reviewed.Status)
	assert.Equal(t, "rakamlar tutmuyor", reviewed.ReviewNotes)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, supervisorActor.ID, *reviewed.ReviewedBy)

	// Revize bekleyen kayıt tekrar incelenemez.
	_, err = store.Review(supervisorActor, models.SettlementDesk, rec.ID, ActionApprove, "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateOnlyPendingRevision(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Submit(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.NoError(t, err)

	// submitted durumunda güncellenemez.
	_, err = store.Update(deskActor, models.SettlementDesk, rec.ID, sampleInput("2025-03-10"))
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = store.Review(supervisorActor, models.SettlementDesk, rec.ID, ActionRevise, "düzelt")
	require.NoError(t, err)

	// Başka gişe kullanıcısı güncelleyemez.
	_, err = store.Update(otherDeskActor, models.SettlementDesk, rec.ID, sampleInput("2025-03-10"))
	assert.ErrorIs(t, err, ErrForbidden)

	in := sampleInput("2025-03-10")
	in.Products["dolum"] = 200
	updated, err := store.Update(deskActor, models.SettlementDesk, rec.ID, in)
	require.NoError(t, err)

	assert.Equal(t, models.StatusRevised, updated.Status)
	assert.Equal(t, 200.0+20*50, updated.Totals.TotalSales)
	assert.Equal(t, rec.SubmittedBy, updated.SubmittedBy)
	assert.NotEmpty(t, updated.ReviewNotes)

	// Revize edilen kayıt tekrar incelenebilir.
	approved, err := store.Review(supervisorActor, models.SettlementDesk, updated.ID, ActionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
}

func TestDeleteRules(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Submit(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.NoError(t, err)

	// Teslim edilmiş kayıt silinemez.
	err = store.Delete(supervisorActor, models.SettlementDesk, rec.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = store.Review(supervisorActor, models.SettlementDesk, rec.ID, ActionReject, "eksik")
	require.NoError(t, err)

	// Reddedilmiş kaydı sahibi olmayan gişe silemez.
	err = store.Delete(otherDeskActor, models.SettlementDesk, rec.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, store.Delete(deskActor, models.SettlementDesk, rec.ID))

	_, err = store.Get(supervisorActor, models.SettlementDesk, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLegacyBanknotesNormalizedOnRead(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Submit(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.NoError(t, err)

	// Eski formatta saklanmış bir kaydı taklit et: düz banknot haritası,
	// bankSentCash yok.
	err = store.db.Model(&models.SettlementRecord{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"banknotes":      `{"b200":2,"b100":1}`,
			"bank_sent_cash": "",
		}).Error
	require.NoError(t, err)

	got, err := store.Get(supervisorActor, models.SettlementDesk, rec.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, got.Banknotes.Dolum.B200)
	assert.Equal(t, BanknoteCounts{}, got.Banknotes.Kart)
	require.NotNil(t, got.Banknotes.Vize)
	require.NotNil(t, got.BankSentCash.Vize)
	assert.Equal(t, 0.0, got.BankSentCash.TotalSent)

	// Saklanan veri dokunulmadan kalır.
	var raw models.SettlementRecord
	require.NoError(t, store.db.First(&raw, "id = ?", rec.ID).Error)
	assert.Equal(t, `{"b200":2,"b100":1}`, raw.Banknotes)
}

func TestSubmitDefaultsBanknotes(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Submit(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.NoError(t, err)

	assert.Equal(t, BanknoteCounts{}, rec.Banknotes.Dolum)
	require.NotNil(t, rec.Banknotes.Vize)

	// Açık banknot girdisi korunur.
	in := sampleInput("2025-03-11")
	in.Banknotes = json.RawMessage(`{"dolum":{"b200":3},"kart":{},"vize":{}}`)
	rec2, err := store.Submit(deskActor, models.SettlementDesk, in)
	require.NoError(t, err)
	assert.Equal(t, 3, rec2.Banknotes.Dolum.B200)
}

// Ön kontrol ile insert arasına giren eşzamanlı ikinci teslim, kısmi unique
// index'e takılır ve ErrConflict olarak dönmelidir. Yarış, create callback'i
// içinde rakip satırı aynı anahtara yazarak simüle edilir.
func TestSubmitRaceMapsUniqueViolationToConflict(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.db.Exec(`
		CREATE UNIQUE INDEX idx_settlement_active_unique
		ON settlement_records (submitted_by, date, kind)
		WHERE status IN ('submitted', 'approved')
		   OR (kind = 'dealer' AND status = 'revised')
	`).Error)

	raced := false
	err := store.db.Callback().Create().Before("gorm:create").Register("rakip_teslim", func(tx *gorm.DB) {
		if raced {
			return
		}
		raced = true

		rival, err := store.buildModel(models.SettlementDesk, deskActor, sampleInput("2025-03-10"))
		require.NoError(t, err)
		rival.Status = models.StatusSubmitted
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).Create(rival).Error)
	})
	require.NoError(t, err)

	_, err = store.Submit(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.ErrorIs(t, err, ErrConflict)
}

// Bozuk jsonb kolonu okuma yolunu düşürmez; alan boş map olarak döner,
// saklanan toplamlar korunur.
func TestGetToleratesCorruptProductsColumn(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Submit(deskActor, models.SettlementDesk, sampleInput("2025-03-10"))
	require.NoError(t, err)

	err = store.db.Model(&models.SettlementRecord{}).
		Where("id = ?", rec.ID).
		Update("products", "{bozuk").Error
	require.NoError(t, err)

	got, err := store.Get(supervisorActor, models.SettlementDesk, rec.ID)
	require.NoError(t, err)

	assert.Empty(t, got.Products)
	assert.Equal(t, rec.Totals.TotalSales, got.Totals.TotalSales)
}
