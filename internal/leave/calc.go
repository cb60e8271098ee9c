package leave

import "time"

// AnnualLeaveDays: kıdeme göre yıllık izin hakkı (İş Kanunu md. 53).
func AnnualLeaveDays(startDate string, now time.Time) int {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 14
	}
	yearsWorked := now.Sub(start).Hours() / (24 * 365)

	switch {
	case yearsWorked < 5:
		return 14
	case yearsWorked < 15:
		return 20
	default:
		return 26
	}
}

// Workdays: iki tarih arasındaki iş günü sayısı, cumartesi/pazar hariç,
// iki uç da dahil.
func Workdays(startDate, endDate string) (int, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0, err
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0, err
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			count++
		}
	}
	return count, nil
}

// overlaps: iki kapalı tarih aralığı kesişiyor mu (string karşılaştırma,
// ISO tarih formatı sıralamayı korur).
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && bStart <= aEnd
}
