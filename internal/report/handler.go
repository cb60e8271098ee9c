package report

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"gise-backend/internal/database"
	"gise-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DateRangeTotals struct {
	TotalRaporal    float64 `json:"totalRaporal"`
	TotalSystem     float64 `json:"totalSystem"`
	TotalDifference float64 `json:"totalDifference"`
	RecordCount     int     `json:"recordCount"`
}

type dateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// GET /api/reports/date-range?startDate=&endDate=&type=
func DateRangeReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startDate, endDate := c.Query("startDate"), c.Query("endDate")
		if startDate == "" || endDate == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Başlangıç ve bitiş tarihi gereklidir")
		}
		if startDate > endDate {
			return fiber.NewError(fiber.StatusBadRequest, "Başlangıç tarihi bitiş tarihinden sonra olamaz")
		}

		query := database.DB.
			Where("date >= ? AND date <= ?", startDate, endDate).
			Order("date DESC")
		if v := c.Query("type"); v != "" {
			query = query.Where("type = ?", v)
		}

		var records []models.DailyRecord
		if err := query.Find(&records).Error; err != nil {
			return err
		}

		totals := DateRangeTotals{RecordCount: len(records)}
		for _, r := range records {
			totals.TotalRaporal += r.Raporal
			totals.TotalSystem += r.Sistem
			totals.TotalDifference += r.Difference
		}

		return c.JSON(fiber.Map{
			"records":   records,
			"totals":    totals,
			"dateRange": dateRange{StartDate: startDate, EndDate: endDate},
		})
	}
}

// DailyAggregate: araç veya hat raporunda gün başına toplanmış satır.
type DailyAggregate struct {
	Date          string               `json:"date"`
	VehicleNumber int                  `json:"vehicleNumber,omitempty"`
	PlateNumber   string               `json:"plateNumber,omitempty"`
	RouteName     string               `json:"routeName,omitempty"`
	RouteAmount   float64              `json:"routeAmount"`
	VehicleAmount float64              `json:"vehicleAmount"`
	TotalAmount   float64              `json:"totalAmount"`
	VehicleCount  int                  `json:"vehicleCount,omitempty"`
	Types         []models.HakedisType `json:"types"`
}

func appendType(types []models.HakedisType, t models.HakedisType) []models.HakedisType {
	for _, existing := range types {
		if existing == t {
			return types
		}
	}
	return append(types, t)
}

func sortByDateDesc(rows []DailyAggregate) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
}

// GET /api/reports/vehicle/:vehicleNumber?startDate=&endDate=
func VehicleReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		vehicleNumber, err := strconv.Atoi(c.Params("vehicleNumber"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Araç numarası geçersiz")
		}
		startDate, endDate := c.Query("startDate"), c.Query("endDate")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "vehicle_number = ?", vehicleNumber).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Araç bulunamadı")
			}
			return err
		}

		query := database.DB.Where("vehicle_number = ?", vehicleNumber)
		if startDate != "" {
			query = query.Where("date >= ?", startDate)
		}
		if endDate != "" {
			query = query.Where("date <= ?", endDate)
		}
		var reports []models.HakedisReport
		if err := query.Find(&reports).Error; err != nil {
			return err
		}

		byDate := make(map[string]*DailyAggregate)
		for _, r := range reports {
			agg, ok := byDate[r.Date]
			if !ok {
				agg = &DailyAggregate{
					Date:          r.Date,
					VehicleNumber: r.VehicleNumber,
					PlateNumber:   r.PlateNumber,
					RouteName:     r.RouteName,
				}
				byDate[r.Date] = agg
			}
			agg.RouteAmount += r.RouteAmount
			agg.VehicleAmount += r.VehicleAmount
			agg.TotalAmount += r.TotalAmount
			agg.Types = appendType(agg.Types, r.Type)
		}

		rows := make([]DailyAggregate, 0, len(byDate))
		var totalAmount, totalRouteAmount, totalVehicleAmount float64
		for _, agg := range byDate {
			rows = append(rows, *agg)
			totalAmount += agg.TotalAmount
			totalRouteAmount += agg.RouteAmount
			totalVehicleAmount += agg.VehicleAmount
		}
		sortByDateDesc(rows)

		return c.JSON(fiber.Map{
			"vehicle": fiber.Map{
				"vehicleNumber": vehicle.VehicleNumber,
				"plateNumber":   vehicle.PlateNumber,
				"routeName":     vehicle.RouteName,
				"driverName":    vehicle.DriverName,
			},
			"reports": rows,
			"summary": fiber.Map{
				"totalAmount":        totalAmount,
				"totalRouteAmount":   totalRouteAmount,
				"totalVehicleAmount": totalVehicleAmount,
				"reportCount":        len(rows),
				"startDate":          startDate,
				"endDate":            endDate,
			},
			"message": fmt.Sprintf("%d numaralı araç için rapor başarıyla getirildi", vehicle.VehicleNumber),
		})
	}
}

// GET /api/reports/route/:routeName?startDate=&endDate=
func RouteReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		routeName := c.Params("routeName")
		startDate, endDate := c.Query("startDate"), c.Query("endDate")

		var vehicles []models.Vehicle
		if err := database.DB.Where("route_name = ?", routeName).Find(&vehicles).Error; err != nil {
			return err
		}

		query := database.DB.Where("route_name = ?", routeName)
		if startDate != "" {
			query = query.Where("date >= ?", startDate)
		}
		if endDate != "" {
			query = query.Where("date <= ?", endDate)
		}
		var reports []models.HakedisReport
		if err := query.Find(&reports).Error; err != nil {
			return err
		}

		byDate := make(map[string]*DailyAggregate)
		for _, r := range reports {
			agg, ok := byDate[r.Date]
			if !ok {
				agg = &DailyAggregate{Date: r.Date}
				byDate[r.Date] = agg
			}
			agg.RouteAmount += r.RouteAmount
			agg.VehicleAmount += r.VehicleAmount
			agg.TotalAmount += r.TotalAmount
			agg.VehicleCount++
			agg.Types = appendType(agg.Types, r.Type)
		}

		rows := make([]DailyAggregate, 0, len(byDate))
		var totalAmount, totalRouteAmount, totalVehicleAmount float64
		for _, agg := range byDate {
			rows = append(rows, *agg)
			totalAmount += agg.TotalAmount
			totalRouteAmount += agg.RouteAmount
			totalVehicleAmount += agg.VehicleAmount
		}
		sortByDateDesc(rows)

		return c.JSON(fiber.Map{
			"routeName": routeName,
			"vehicles":  vehicles,
			"reports":   rows,
			"summary": fiber.Map{
				"totalAmount":        totalAmount,
				"totalRouteAmount":   totalRouteAmount,
				"totalVehicleAmount": totalVehicleAmount,
				"recordCount":        len(rows),
				"vehicleCount":       len(vehicles),
				"startDate":          startDate,
				"endDate":            endDate,
			},
		})
	}
}

type summaryBucket struct {
	Records    int     `json:"records"`
	Raporal    float64 `json:"raporal"`
	Sistem     float64 `json:"sistem"`
	Difference float64 `json:"difference"`
}

func (b *summaryBucket) add(h models.Hakedis) {
	b.Records++
	b.Raporal += h.Raporal
	b.Sistem += h.Sistem
	b.Difference += h.Difference
}

// GET /api/reports/summary?startDate=&endDate= — hakediş kayıtları üzerinden
// toplam / haftalık / kredi kartı kırılımı.
func SummaryReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startDate, endDate := c.Query("startDate"), c.Query("endDate")

		query := database.DB.Model(&models.Hakedis{})
		if startDate != "" {
			query = query.Where("date >= ?", startDate)
		}
		if endDate != "" {
			query = query.Where("date <= ?", endDate)
		}

		var rows []models.Hakedis
		if err := query.Find(&rows).Error; err != nil {
			return err
		}

		var total, weekly, creditCard summaryBucket
		for _, h := range rows {
			total.add(h)
			switch h.Type {
			case models.HakedisWeekly:
				weekly.add(h)
			case models.HakedisCreditCard:
				creditCard.add(h)
			}
		}

		rangeOut := dateRange{StartDate: startDate, EndDate: endDate}
		if rangeOut.StartDate == "" {
			rangeOut.StartDate = "N/A"
		}
		if rangeOut.EndDate == "" {
			rangeOut.EndDate = "N/A"
		}

		return c.JSON(fiber.Map{
			"total":      total,
			"weekly":     weekly,
			"creditCard": creditCard,
			"dateRange":  rangeOut,
		})
	}
}
