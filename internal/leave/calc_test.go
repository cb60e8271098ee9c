package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnualLeaveDaysBySeniority(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 14, AnnualLeaveDays("2023-01-01", now)) // ~2 yıl
	assert.Equal(t, 20, AnnualLeaveDays("2015-06-01", now)) // ~10 yıl
	assert.Equal(t, 26, AnnualLeaveDays("2005-01-01", now)) // 20+ yıl
	assert.Equal(t, 14, AnnualLeaveDays("bozuk-tarih", now))
}

func TestWorkdaysExcludesWeekends(t *testing.T) {
	// 2025-03-10 Pazartesi, 2025-03-16 Pazar: 5 iş günü.
	days, err := Workdays("2025-03-10", "2025-03-16")
	require.NoError(t, err)
	assert.Equal(t, 5, days)

	// Tek gün, hafta içi.
	days, err = Workdays("2025-03-12", "2025-03-12")
	require.NoError(t, err)
	assert.Equal(t, 1, days)

	// Sadece hafta sonu.
	days, err = Workdays("2025-03-15", "2025-03-16")
	require.NoError(t, err)
	assert.Equal(t, 0, days)

	// İki hafta.
	days, err = Workdays("2025-03-10", "2025-03-21")
	require.NoError(t, err)
	assert.Equal(t, 10, days)

	_, err = Workdays("bozuk", "2025-03-16")
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	assert.True(t, overlaps("2025-03-10", "2025-03-14", "2025-03-14", "2025-03-20"))
	assert.True(t, overlaps("2025-03-10", "2025-03-20", "2025-03-12", "2025-03-13"))
	assert.False(t, overlaps("2025-03-10", "2025-03-14", "2025-03-15", "2025-03-20"))
}
