package hakedis

import (
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
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Hakedis{}, &models.HakedisReport{}, &models.Vehicle{}))

	return NewStore(db)
}

func seedFleet(t *testing.T, store *Store) {
	t.Helper()

	vehicles := []models.Vehicle{
		{ID: "v1", PlateNumber: "35 ABC 01", VehicleNumber: 101, RouteName: "Merkez-Sanayi", IBAN: "TR01", TaxID: "111"},
		{ID: "v2", PlateNumber: "35 ABC 02", VehicleNumber: 102, RouteName: "Merkez-Sanayi", IBAN: "TR02", TaxID: "222"},
		{ID: "v3", PlateNumber: "35 ABC 03", VehicleNumber: 103, RouteName: "Garaj-Hastane", IBAN: "TR03", TaxID: "333"},
	}
	require.NoError(t, store.db.Create(&vehicles).Error)
}

func TestCreateWeeklyFansOutPerVehicle(t *testing.T) {
	store := newTestStore(t)
	seedFleet(t, store)

	resp, err := store.Create(1, Input{
		Date:     "2025-03-10",
		Type:     models.HakedisWeekly,
		Routes:   map[string]float64{"merkez-sanayi": 1000},
		Vehicles: map[string]float64{"101": 50},
		Raporal:  2050,
		Sistem:   2000,
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, resp.Difference)

	var reports []models.HakedisReport
	require.NoError(t, store.db.Order("vehicle_number ASC").Find(&reports).Error)
	require.Len(t, reports, 2)

	// Hat tutarı hattaki her araca aynen yansır; araç bazlı ek tutar sadece
	// ilgili araca yazılır.
	assert.Equal(t, 101, reports[0].VehicleNumber)
	assert.Equal(t, 1000.0, reports[0].RouteAmount)
	assert.Equal(t, 50.0, reports[0].VehicleAmount)
	assert.Equal(t, 1050.0, reports[0].TotalAmount)

	assert.Equal(t, 102, reports[1].VehicleNumber)
	assert.Equal(t, 1000.0, reports[1].RouteAmount)
	assert.Equal(t, 0.0, reports[1].VehicleAmount)

	for _, r := range reports {
		assert.Equal(t, resp.ID, r.HakedisID)
		assert.Equal(t, models.HakedisWeekly, r.Type)
	}
}

func TestCreateCreditCardFoldsRouteIntoVehicleAmount(t *testing.T) {
	store := newTestStore(t)
	seedFleet(t, store)

	resp, err := store.Create(1, Input{
		Date:     "2025-03-10",
		Type:     models.HakedisCreditCard,
		Routes:   map[string]float64{"Garaj-Hastane": 400},
		Vehicles: map[string]float64{"103": 25},
		Raporal:  425,
		Sistem:   425,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	var reports []models.HakedisReport
	require.NoError(t, store.db.Find(&reports).Error)
	require.Len(t, reports, 1)

	assert.Equal(t, 0.0, reports[0].RouteAmount)
	assert.Equal(t, 425.0, reports[0].VehicleAmount)
	assert.Equal(t, 425.0, reports[0].TotalAmount)
}

func TestCreateVehicleOnlyAmountWithoutRoute(t *testing.T) {
	store := newTestStore(t)
	seedFleet(t, store)

	// 103'ün hattı routes'ta yok: ayrı satır olarak yazılır.
	_, err := store.Create(1, Input{
		Date:     "2025-03-10",
		Type:     models.HakedisWeekly,
		Routes:   map[string]float64{"merkez-sanayi": 1000},
		Vehicles: map[string]float64{"103": 75, "999": 10},
		Raporal:  0,
		Sistem:   0,
	})
	require.NoError(t, err)

	var reports []models.HakedisReport
	require.NoError(t, store.db.Order("vehicle_number ASC").Find(&reports).Error)
	require.Len(t, reports, 3)

	assert.Equal(t, 103, reports[2].VehicleNumber)
	assert.Equal(t, 0.0, reports[2].RouteAmount)
	assert.Equal(t, 75.0, reports[2].VehicleAmount)

	// Filoda olmayan araç numarası sessizce atlanır.
	for _, r := range reports {
		assert.NotEqual(t, 999, r.VehicleNumber)
	}
}

func TestUpdateRecalculatesDifference(t *testing.T) {
	store := newTestStore(t)
	seedFleet(t, store)

	resp, err := store.Create(1, Input{
		Date:    "2025-03-10",
		Type:    models.HakedisWeekly,
		Raporal: 100,
		Sistem:  80,
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, resp.Difference)

	newSistem := 95.0
	updated, err := store.UpdateFields(resp.ID, Update{Sistem: &newSistem})
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.Difference)

	// raporal/sistem değişmeden fark korunur.
	newDate := "2025-03-11"
	updated, err = store.UpdateFields(resp.ID, Update{Date: &newDate})
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.Difference)

	_, err = store.UpdateFields("yok", Update{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFilters(t *testing.T) {
	store := newTestStore(t)
	seedFleet(t, store)

	for _, in := range []Input{
		{Date: "2025-03-10", Type: models.HakedisWeekly},
		{Date: "2025-03-11", Type: models.HakedisCreditCard},
		{Date: "2025-03-12", Type: models.HakedisWeekly},
	} {
		_, err := store.Create(1, in)
		require.NoError(t, err)
	}

	all, err := store.List(Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-03-12", all[0].Date)

	weekly, err := store.List(Filter{Type: string(models.HakedisWeekly)})
	require.NoError(t, err)
	assert.Len(t, weekly, 2)

	ranged, err := store.List(Filter{StartDate: "2025-03-11", EndDate: "2025-03-11"})
	require.NoError(t, err)
	assert.Len(t, ranged, 1)
}

func TestWeeklySummaryGroupsByVehicle(t *testing.T) {
	store := newTestStore(t)
	seedFleet(t, store)

	_, err := store.Create(1, Input{
		Date:   "2025-03-10",
		Type:   models.HakedisWeekly,
		Routes: map[string]float64{"merkez-sanayi": 1000},
	})
	require.NoError(t, err)

	_, err = store.Create(1, Input{
		Date:   "2025-03-12",
		Type:   models.HakedisCreditCard,
		Routes: map[string]float64{"merkez-sanayi": 300},
	})
	require.NoError(t, err)

	summary, err := store.WeeklySummary("2025-03-10", "2025-03-14")
	require.NoError(t, err)

	require.Len(t, summary.Vehicles, 2)
	assert.Equal(t, 101, summary.Vehicles[0].VehicleNumber)
	assert.Equal(t, "TR01", summary.Vehicles[0].IBAN)
	assert.Equal(t, "111", summary.Vehicles[0].TaxID)
	assert.Equal(t, 1000.0, summary.Vehicles[0].Haftalik.TotalAmount)
	assert.Equal(t, 300.0, summary.Vehicles[0].KrediKarti.TotalAmount)
	assert.Equal(t, 1300.0, summary.Vehicles[0].GrandTotal)

	assert.Equal(t, 2000.0, summary.Summary.TotalHaftalik)
	assert.Equal(t, 600.0, summary.Summary.TotalKrediKarti)
	assert.Equal(t, 2600.0, summary.Summary.GrandTotal)
	assert.Equal(t, 2, summary.Summary.VehicleCount)

	// Aralık dışı tarih özete girmez.
	empty, err := store.WeeklySummary("2025-04-01", "2025-04-07")
	require.NoError(t, err)
	assert.Empty(t, empty.Vehicles)
	assert.Equal(t, 0.0, empty.Summary.GrandTotal)
}

func TestWeeklyExportBuildsWorkbook(t *testing.T) {
	store := newTestStore(t)
	seedFleet(t, store)

	_, err := store.Create(1, Input{
		Date:   "2025-03-10",
		Type:   models.HakedisWeekly,
		Routes: map[string]float64{"merkez-sanayi": 1000},
	})
	require.NoError(t, err)

	summary, err := store.WeeklySummary("2025-03-10", "2025-03-14")
	require.NoError(t, err)

	buf, err := BuildWeeklyXLSX(summary)
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
}
