package settlement

import (
	"math"

	"gise-backend/internal/models"
)

type Payments struct {
	GunbasiNakit        float64 `json:"gunbasiNakit"`
	BankayaGonderilen   float64 `json:"bankayaGonderilen"`
	ErtesiGuneBirakilan float64 `json:"ertesiGuneBirakilan"`
}

type Totals struct {
	TotalSales      float64 `json:"totalSales"`
	TotalCreditCard float64 `json:"totalCreditCard"`
	TotalCash       float64 `json:"totalCash"`
	CashInRegister  float64 `json:"cashInRegister"`
	Difference      float64 `json:"difference"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateTotals: teslim edilen adet ve tutarlardan türetilmiş toplamları
// hesaplar. Fiyat tablosunda olmayan ürün kodları 0 katkı yapar; eksik alanlar
// 0 sayılır. Yuvarlama her formülün sonunda bir kez, kuruş hassasiyetinde.
func CalculateTotals(kind models.SettlementKind, pricing Pricing, products, categoryCreditCards map[string]float64, payments Payments) Totals {
	table := pricing.Table(kind)

	var totalSales float64
	for code, unitPrice := range table {
		totalSales += products[code] * unitPrice
	}

	var totalCreditCard float64
	for _, category := range CreditCardCategories(kind) {
		totalCreditCard += categoryCreditCards[category]
	}

	totalCash := totalSales - totalCreditCard

	cashInRegister := payments.GunbasiNakit + totalSales -
		(totalCreditCard + payments.BankayaGonderilen + payments.ErtesiGuneBirakilan)

	difference := totalSales -
		(payments.GunbasiNakit + totalCreditCard + payments.BankayaGonderilen + payments.ErtesiGuneBirakilan)

	return Totals{
		TotalSales:      round2(totalSales),
		TotalCreditCard: round2(totalCreditCard),
		TotalCash:       round2(totalCash),
		CashInRegister:  round2(cashInRegister),
		Difference:      round2(difference),
	}
}
