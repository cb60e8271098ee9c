package hakedis

import (
	"sort"

	"gise-backend/internal/models"
)

type AmountBucket struct {
	RouteAmount   float64 `json:"routeAmount"`
	VehicleAmount float64 `json:"vehicleAmount"`
	TotalAmount   float64 `json:"totalAmount"`
}

// VehicleSummary: bankaya gönderim için araç başına haftalık toplamlar.
type VehicleSummary struct {
	VehicleNumber int          `json:"vehicleNumber"`
	PlateNumber   string       `json:"plateNumber"`
	RouteName     string       `json:"routeName"`
	IBAN          string       `json:"iban"`
	TaxID         string       `json:"taxId"`
	Haftalik      AmountBucket `json:"haftalik"`
	KrediKarti    AmountBucket `json:"krediKarti"`
	GrandTotal    float64      `json:"grandTotal"`
}

type SummaryTotals struct {
	TotalHaftalik   float64 `json:"totalHaftalik"`
	TotalKrediKarti float64 `json:"totalKrediKarti"`
	GrandTotal      float64 `json:"grandTotal"`
	VehicleCount    int     `json:"vehicleCount"`
}

type WeeklySummary struct {
	StartDate string           `json:"startDate"`
	EndDate   string           `json:"endDate"`
	Summary   SummaryTotals    `json:"summary"`
	Vehicles  []VehicleSummary `json:"vehicles"`
}

// WeeklySummary: tarih aralığındaki rapor satırlarını araç bazında gruplar,
// HAFTALIK ve KREDI_KARTI toplamlarını ayrıştırır.
func (s *Store) WeeklySummary(startDate, endDate string) (*WeeklySummary, error) {
	var reports []models.HakedisReport
	if err := s.db.Where("date >= ? AND date <= ?", startDate, endDate).Find(&reports).Error; err != nil {
		return nil, err
	}

	var fleet []models.Vehicle
	if err := s.db.Find(&fleet).Error; err != nil {
		return nil, err
	}
	bankInfo := make(map[int]models.Vehicle, len(fleet))
	for _, v := range fleet {
		bankInfo[v.VehicleNumber] = v
	}

	grouped := make(map[int]*VehicleSummary)
	for _, r := range reports {
		vs, ok := grouped[r.VehicleNumber]
		if !ok {
			info := bankInfo[r.VehicleNumber]
			vs = &VehicleSummary{
				VehicleNumber: r.VehicleNumber,
				PlateNumber:   r.PlateNumber,
				RouteName:     r.RouteName,
				IBAN:          info.IBAN,
				TaxID:         info.TaxID,
			}
			grouped[r.VehicleNumber] = vs
		}

		switch r.Type {
		case models.HakedisWeekly:
			vs.Haftalik.RouteAmount += r.RouteAmount
			vs.Haftalik.VehicleAmount += r.VehicleAmount
			vs.Haftalik.TotalAmount += r.TotalAmount
		case models.HakedisCreditCard:
			vs.KrediKarti.RouteAmount += r.RouteAmount
			vs.KrediKarti.VehicleAmount += r.VehicleAmount
			vs.KrediKarti.TotalAmount += r.TotalAmount
		}
		vs.GrandTotal = vs.Haftalik.TotalAmount + vs.KrediKarti.TotalAmount
	}

	vehicles := make([]VehicleSummary, 0, len(grouped))
	for _, vs := range grouped {
		vehicles = append(vehicles, *vs)
	}
	sort.Slice(vehicles, func(i, j int) bool {
		return vehicles[i].VehicleNumber < vehicles[j].VehicleNumber
	})

	totals := SummaryTotals{VehicleCount: len(vehicles)}
	for _, vs := range vehicles {
		totals.TotalHaftalik += vs.Haftalik.TotalAmount
		totals.TotalKrediKarti += vs.KrediKarti.TotalAmount
		totals.GrandTotal += vs.GrandTotal
	}

	return &WeeklySummary{
		StartDate: startDate,
		EndDate:   endDate,
		Summary:   totals,
		Vehicles:  vehicles,
	}, nil
}
