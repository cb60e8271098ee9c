package settlement

import "gise-backend/internal/models"

// Pricing: tür bazlı ürün birim fiyat tabloları. Süreç başında yüklenir,
// sonrasında salt okunur; testler alternatif tablo enjekte edebilir.
type Pricing struct {
	Desk   map[string]float64
	Dealer map[string]float64
}

func DefaultPricing() Pricing {
	return Pricing{
		Desk: map[string]float64{
			"dolum":         1,
			"tamKart":       50,
			"indirimliKart": 100,
			"serbestKart":   100,
			"serbestVize":   75,
			"indirimliVize": 25,
			"kartKilifi":    10,
		},
		Dealer: map[string]float64{
			"bayiDolum":      1,
			"bayiTamKart":    50,
			"bayiKartKilifi": 10,
			"posRulosu":      5,
		},
	}
}

func (p Pricing) Table(kind models.SettlementKind) map[string]float64 {
	if kind == models.SettlementDealer {
		return p.Dealer
	}
	return p.Desk
}

// CreditCardCategories: tür için geçerli kredi kartı kategorileri.
// Bayi tarafında vize ve kart kılıfı kategorisi yoktur.
func CreditCardCategories(kind models.SettlementKind) []string {
	if kind == models.SettlementDealer {
		return []string{"dolum", "kart"}
	}
	return []string{"dolum", "kart", "vize", "kartKilifi"}
}

// HasVize: banknot ve bankaya gönderilen nakit ayrımında vize kategorisi
// sadece gişe kayıtlarında bulunur.
func HasVize(kind models.SettlementKind) bool {
	return kind == models.SettlementDesk
}
