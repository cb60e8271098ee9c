package settlement

import (
	"testing"

	"gise-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalsDesk(t *testing.T) {
	pricing := DefaultPricing()

	products := map[string]float64{"dolum": 150, "tamKart": 20}
	creditCards := map[string]float64{"dolum": 3530, "kart": 0}
	payments := Payments{GunbasiNakit: 720}

	totals := CalculateTotals(models.SettlementDesk, pricing, products, creditCards, payments)

	assert.Equal(t, 1150.0, totals.TotalSales)
	assert.Equal(t, 3530.0, totals.TotalCreditCard)
	assert.Equal(t, -2380.0, totals.TotalCash)
	assert.Equal(t, -1660.0, totals.CashInRegister)
	assert.Equal(t, -3100.0, totals.Difference)
}

func TestCalculateTotalsDealer(t *testing.T) {
	pricing := DefaultPricing()

	products := map[string]float64{"bayiDolum": 500, "bayiTamKart": 10, "posRulosu": 4}
	creditCards := map[string]float64{"dolum": 200, "kart": 100}
	payments := Payments{GunbasiNakit: 100, BankayaGonderilen: 400, ErtesiGuneBirakilan: 50}

	totals := CalculateTotals(models.SettlementDealer, pricing, products, creditCards, payments)

	// 500*1 + 10*50 + 4*5
	assert.Equal(t, 1020.0, totals.TotalSales)
	assert.Equal(t, 300.0, totals.TotalCreditCard)
	assert.Equal(t, 720.0, totals.TotalCash)
	assert.Equal(t, 1020.0+100-(300+400+50), totals.CashInRegister)
	assert.Equal(t, 1020.0-(100+300+400+50), totals.Difference)
}

func TestCalculateTotalsIgnoresUnknownCodes(t *testing.T) {
	pricing := DefaultPricing()

	products := map[string]float64{"dolum": 10, "bilinmeyenUrun": 99}
	totals := CalculateTotals(models.SettlementDesk, pricing, products, map[string]float64{}, Payments{})

	assert.Equal(t, 10.0, totals.TotalSales)
}

func TestCalculateTotalsDealerSkipsVizeCategories(t *testing.T) {
	pricing := DefaultPricing()

	// Bayi kaydında vize/kartKilifi kategorileri toplam dışı kalır.
	creditCards := map[string]float64{"dolum": 100, "kart": 50, "vize": 75, "kartKilifi": 10}
	totals := CalculateTotals(models.SettlementDealer, pricing, map[string]float64{}, creditCards, Payments{})

	assert.Equal(t, 150.0, totals.TotalCreditCard)
}

func TestCalculateTotalsRounding(t *testing.T) {
	pricing := Pricing{
		Desk: map[string]float64{"dolum": 0.1},
	}

	products := map[string]float64{"dolum": 3}
	totals := CalculateTotals(models.SettlementDesk, pricing, products, map[string]float64{}, Payments{})

	assert.Equal(t, 0.3, totals.TotalSales)
	assert.Equal(t, 0.3, totals.TotalCash)
}

func TestTotalsIdentities(t *testing.T) {
	pricing := DefaultPricing()
	products := map[string]float64{"dolum": 1234, "indirimliKart": 7, "serbestVize": 3}
	creditCards := map[string]float64{"dolum": 800, "kart": 120, "vize": 75}
	payments := Payments{GunbasiNakit: 500, BankayaGonderilen: 900, ErtesiGuneBirakilan: 250}

	totals := CalculateTotals(models.SettlementDesk, pricing, products, creditCards, payments)

	assert.InDelta(t, totals.TotalSales-totals.TotalCreditCard, totals.TotalCash, 0.001)
	assert.InDelta(t, totals.CashInRegister, totals.Difference+2*payments.GunbasiNakit, 0.001)
}
