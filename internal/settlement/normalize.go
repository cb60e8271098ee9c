package settlement

import (
	"encoding/json"

	"gise-backend/internal/models"
)

// Eski kayıtlar banknotes alanını kategorisiz düz bir harita olarak sakladı,
// bankSentCash alanı ise hiç yoktu. Bu dönüşümler her okuma yolunda uygulanır,
// saklanan veriyi asla değiştirmez ve idempotenttir.

// NormalizeBanknotes: saklanan jsonb içeriğini kategorili formata getirir.
// Önce kategorili format denenir; "dolum" anahtarı yoksa düz format kabul
// edilip tamamı dolum kategorisi sayılır, kart (ve gişe için vize) sıfırlanır.
func NormalizeBanknotes(raw string, kind models.SettlementKind) CategorizedBanknotes {
	result := defaultBanknotes(kind)

	if raw == "" || raw == "null" {
		return result
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return result
	}

	if _, categorized := probe["dolum"]; categorized {
		var parsed CategorizedBanknotes
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return result
		}
		if HasVize(kind) && parsed.Vize == nil {
			parsed.Vize = &BanknoteCounts{}
		}
		if !HasVize(kind) {
			parsed.Vize = nil
		}
		return parsed
	}

	// Düz eski format: tüm adetler dolum kategorisine taşınır.
	var flat BanknoteCounts
	if err := json.Unmarshal([]byte(raw), &flat); err != nil {
		return result
	}
	result.Dolum = flat
	return result
}

// NormalizeBankSentCash: alan hiç yoksa sıfırlarla doldurur; varsa tür için
// geçerli kategorileri garanti eder.
func NormalizeBankSentCash(raw string, kind models.SettlementKind) BankSentCash {
	result := defaultBankSentCash(kind)

	if raw == "" || raw == "null" {
		return result
	}

	var parsed BankSentCash
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return result
	}
	if HasVize(kind) && parsed.Vize == nil {
		zero := 0.0
		parsed.Vize = &zero
	}
	if !HasVize(kind) {
		parsed.Vize = nil
	}
	return parsed
}

func defaultBanknotes(kind models.SettlementKind) CategorizedBanknotes {
	b := CategorizedBanknotes{}
	if HasVize(kind) {
		b.Vize = &BanknoteCounts{}
	}
	return b
}

func defaultBankSentCash(kind models.SettlementKind) BankSentCash {
	s := BankSentCash{}
	if HasVize(kind) {
		zero := 0.0
		s.Vize = &zero
	}
	return s
}
