package settlement

import (
	"encoding/json"
	"testing"

	"gise-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBanknotesLegacyFlat(t *testing.T) {
	raw := `{"b200":2,"b100":1,"b50":0,"b20":3,"b10":0,"b5":1,"c1":4,"c050":2}`

	got := NormalizeBanknotes(raw, models.SettlementDesk)

	// Düz adetler dolum kategorisine taşınır, diğerleri sıfır.
	assert.Equal(t, 2, got.Dolum.B200)
	assert.Equal(t, 1, got.Dolum.B100)
	assert.Equal(t, 3, got.Dolum.B20)
	assert.Equal(t, BanknoteCounts{}, got.Kart)
	require.NotNil(t, got.Vize)
	assert.Equal(t, BanknoteCounts{}, *got.Vize)

	assert.Equal(t, 2*200+100+3*20+5+4+1.0, BanknoteTotal(got))
}

func TestNormalizeBanknotesCategorizedPassthrough(t *testing.T) {
	raw := `{"dolum":{"b200":1},"kart":{"b50":2},"vize":{"b10":5}}`

	got := NormalizeBanknotes(raw, models.SettlementDesk)

	assert.Equal(t, 1, got.Dolum.B200)
	assert.Equal(t, 2, got.Kart.B50)
	require.NotNil(t, got.Vize)
	assert.Equal(t, 5, got.Vize.B10)
}

func TestNormalizeBanknotesIdempotent(t *testing.T) {
	raw := `{"b200":2,"b100":1}`

	first := NormalizeBanknotes(raw, models.SettlementDesk)
	encoded, err := json.Marshal(first)
	require.NoError(t, err)

	second := NormalizeBanknotes(string(encoded), models.SettlementDesk)
	assert.Equal(t, first, second)
}

func TestNormalizeBanknotesDealerHasNoVize(t *testing.T) {
	raw := `{"dolum":{"b100":1},"kart":{"b5":1},"vize":{"b200":9}}`

	got := NormalizeBanknotes(raw, models.SettlementDealer)

	assert.Nil(t, got.Vize)
	assert.Equal(t, 105.0, BanknoteTotal(got))
}

func TestNormalizeBanknotesEmptyAndInvalid(t *testing.T) {
	for _, raw := range []string{"", "null", "not-json"} {
		got := NormalizeBanknotes(raw, models.SettlementDesk)
		assert.Equal(t, BanknoteCounts{}, got.Dolum, raw)
		require.NotNil(t, got.Vize, raw)
	}

	dealer := NormalizeBanknotes("", models.SettlementDealer)
	assert.Nil(t, dealer.Vize)
}

func TestNormalizeBankSentCash(t *testing.T) {
	missing := NormalizeBankSentCash("", models.SettlementDesk)
	require.NotNil(t, missing.Vize)
	assert.Equal(t, 0.0, missing.TotalSent)

	raw := `{"dolum":1200,"kart":300,"totalSent":1500}`
	desk := NormalizeBankSentCash(raw, models.SettlementDesk)
	assert.Equal(t, 1200.0, desk.Dolum)
	require.NotNil(t, desk.Vize)
	assert.Equal(t, 0.0, *desk.Vize)

	dealer := NormalizeBankSentCash(raw, models.SettlementDealer)
	assert.Nil(t, dealer.Vize)
	assert.Equal(t, 1500.0, dealer.TotalSent)
}
