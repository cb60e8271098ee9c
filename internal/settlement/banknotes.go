package settlement

// BanknoteCounts: sabit banknot/bozuk para setinin adetleri.
// b* banknot, c* bozuk para kodudur (c050 = 50 kuruş).
type BanknoteCounts struct {
	B200 int `json:"b200"`
	B100 int `json:"b100"`
	B50  int `json:"b50"`
	B20  int `json:"b20"`
	B10  int `json:"b10"`
	B5   int `json:"b5"`
	C1   int `json:"c1"`
	C050 int `json:"c050"`
}

func (b BanknoteCounts) total() float64 {
	return float64(b.B200)*200 +
		float64(b.B100)*100 +
		float64(b.B50)*50 +
		float64(b.B20)*20 +
		float64(b.B10)*10 +
		float64(b.B5)*5 +
		float64(b.C1)*1 +
		float64(b.C050)*0.50
}

// CategorizedBanknotes: kasadaki fiziksel paranın kategori bazlı sayımı.
// Vize kategorisi sadece gişe kayıtlarında bulunur.
type CategorizedBanknotes struct {
	Dolum BanknoteCounts  `json:"dolum"`
	Kart  BanknoteCounts  `json:"kart"`
	Vize  *BanknoteCounts `json:"vize,omitempty"`
}

// BanknoteTotal: sayılan fiziksel paranın TL karşılığı. Hesaplanan nakit
// toplamlarıyla çapraz kontrol için kullanılır.
func BanknoteTotal(b CategorizedBanknotes) float64 {
	total := b.Dolum.total() + b.Kart.total()
	if b.Vize != nil {
		total += b.Vize.total()
	}
	return total
}

// BankSentCash: kategori bazlı bankaya fiilen gönderilen nakit beyanı.
type BankSentCash struct {
	Dolum     float64  `json:"dolum"`
	Kart      float64  `json:"kart"`
	Vize      *float64 `json:"vize,omitempty"`
	TotalSent float64  `json:"totalSent"`
}
