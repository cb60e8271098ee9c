package hakedis

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"gise-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("hakediş bulunamadı")

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

type Input struct {
	Date     string
	Type     models.HakedisType
	Routes   map[string]float64 // hat adı -> tutar
	Vehicles map[string]float64 // araç no -> tutar
	Raporal  float64
	Sistem   float64
}

type Update struct {
	Date     *string
	Type     *models.HakedisType
	Routes   map[string]float64
	Vehicles map[string]float64
	Raporal  *float64
	Sistem   *float64
}

type Filter struct {
	Type      string
	StartDate string
	EndDate   string
}

// Response: jsonb kolonları çözülmüş hakediş.
type Response struct {
	models.Hakedis
	Routes   map[string]float64 `json:"routes"`
	Vehicles map[string]float64 `json:"vehicles"`
}

func toResponse(h models.Hakedis) (Response, error) {
	resp := Response{Hakedis: h, Routes: map[string]float64{}, Vehicles: map[string]float64{}}
	if h.Routes != "" {
		if err := json.Unmarshal([]byte(h.Routes), &resp.Routes); err != nil {
			return Response{}, err
		}
	}
	if h.Vehicles != "" {
		if err := json.Unmarshal([]byte(h.Vehicles), &resp.Vehicles); err != nil {
			return Response{}, err
		}
	}
	return resp, nil
}

// Create: hakediş kaydını ve araç başına rapor satırlarını tek transaction
// içinde yazar. Hat tutarları hattaki her araca yansır; araç bazlı ek tutarlar
// HAFTALIK'ta vehicleAmount, KREDI_KARTI'nda toplam tutara eklenir. Hattı
// işlenmemiş araçların tutarı ayrı rapor satırı olarak yazılır.
func (s *Store) Create(createdBy uint, in Input) (*Response, error) {
	if in.Routes == nil {
		in.Routes = map[string]float64{}
	}
	if in.Vehicles == nil {
		in.Vehicles = map[string]float64{}
	}

	routesJSON, err := json.Marshal(in.Routes)
	if err != nil {
		return nil, err
	}
	vehiclesJSON, err := json.Marshal(in.Vehicles)
	if err != nil {
		return nil, err
	}

	entry := models.Hakedis{
		ID:         uuid.NewString(),
		Date:       in.Date,
		Type:       in.Type,
		Routes:     string(routesJSON),
		Vehicles:   string(vehiclesJSON),
		Raporal:    in.Raporal,
		Sistem:     in.Sistem,
		Difference: in.Raporal - in.Sistem,
		CreatedBy:  createdBy,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		var fleet []models.Vehicle
		if err := tx.Find(&fleet).Error; err != nil {
			return err
		}

		byRoute := make(map[string][]models.Vehicle)
		byNumber := make(map[string]models.Vehicle)
		for _, v := range fleet {
			key := strings.ToLower(v.RouteName)
			byRoute[key] = append(byRoute[key], v)
			byNumber[strconv.Itoa(v.VehicleNumber)] = v
		}

		reports := fanOut(entry, in, byRoute, byNumber)
		if len(reports) == 0 {
			return nil
		}
		return tx.Create(&reports).Error
	})
	if err != nil {
		return nil, err
	}

	resp, err := toResponse(entry)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// fanOut: hakedişi rapor satırlarına açar.
func fanOut(entry models.Hakedis, in Input, byRoute map[string][]models.Vehicle, byNumber map[string]models.Vehicle) []models.HakedisReport {
	var reports []models.HakedisReport

	for routeName, routeAmount := range in.Routes {
		vehiclesOnRoute := byRoute[strings.ToLower(routeName)]
		for _, v := range vehiclesOnRoute {
			var routeShare, vehicleShare float64
			extra := in.Vehicles[strconv.Itoa(v.VehicleNumber)]

			switch in.Type {
			case models.HakedisWeekly:
				routeShare = routeAmount
				vehicleShare = extra
			case models.HakedisCreditCard:
				// Kredi kartında hat tutarı da araç tutarına yazılır.
				vehicleShare = routeAmount + extra
			}

			reports = append(reports, models.HakedisReport{
				ID:            uuid.NewString(),
				HakedisID:     entry.ID,
				Date:          entry.Date,
				VehicleNumber: v.VehicleNumber,
				PlateNumber:   v.PlateNumber,
				RouteName:     v.RouteName,
				RouteAmount:   routeShare,
				VehicleAmount: vehicleShare,
				TotalAmount:   routeShare + vehicleShare,
				Type:          entry.Type,
			})
		}
	}

	// Hattı işlenmemiş araçlara ait ek tutarlar.
	for number, amount := range in.Vehicles {
		v, ok := byNumber[number]
		if !ok {
			continue
		}
		processed := false
		for routeName := range in.Routes {
			if strings.EqualFold(routeName, v.RouteName) {
				processed = true
				break
			}
		}
		if processed {
			continue
		}
		reports = append(reports, models.HakedisReport{
			ID:            uuid.NewString(),
			HakedisID:     entry.ID,
			Date:          entry.Date,
			VehicleNumber: v.VehicleNumber,
			PlateNumber:   v.PlateNumber,
			RouteName:     v.RouteName,
			RouteAmount:   0,
			VehicleAmount: amount,
			TotalAmount:   amount,
			Type:          entry.Type,
		})
	}

	return reports
}

func (s *Store) List(filter Filter) ([]Response, error) {
	query := s.db.Model(&models.Hakedis{}).Order("date DESC")
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.StartDate != "" {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("date <= ?", filter.EndDate)
	}

	var rows []models.Hakedis
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Response, 0, len(rows))
	for _, row := range rows {
		resp, err := toResponse(row)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *Store) Get(id string) (*Response, error) {
	var row models.Hakedis
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp, err := toResponse(row)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateFields: sadece gönderilen alanları günceller; raporal veya sistem
// değişirse fark yeniden hesaplanır.
func (s *Store) UpdateFields(id string, upd Update) (*Response, error) {
	var row models.Hakedis
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if upd.Date != nil {
		row.Date = *upd.Date
	}
	if upd.Type != nil {
		row.Type = *upd.Type
	}
	if upd.Routes != nil {
		raw, err := json.Marshal(upd.Routes)
		if err != nil {
			return nil, err
		}
		row.Routes = string(raw)
	}
	if upd.Vehicles != nil {
		raw, err := json.Marshal(upd.Vehicles)
		if err != nil {
			return nil, err
		}
		row.Vehicles = string(raw)
	}
	if upd.Raporal != nil {
		row.Raporal = *upd.Raporal
	}
	if upd.Sistem != nil {
		row.Sistem = *upd.Sistem
	}
	if upd.Raporal != nil || upd.Sistem != nil {
		row.Difference = row.Raporal - row.Sistem
	}

	if err := s.db.Save(&row).Error; err != nil {
		return nil, err
	}
	resp, err := toResponse(row)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Store) Delete(id string) error {
	result := s.db.Delete(&models.Hakedis{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
