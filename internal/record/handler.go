package record

import (
	"encoding/json"
	"errors"
	"time"

	"gise-backend/internal/auth"
	"gise-backend/internal/database"
	"gise-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordRequest struct {
	Date     *string            `json:"date"`
	Type     *string            `json:"type"`
	Routes   map[string]float64 `json:"routes"`
	Vehicles map[string]float64 `json:"vehicles"`
	Raporal  *float64           `json:"raporal"`
	Sistem   *float64           `json:"sistem"`
}

// Response: jsonb kolonları çözülmüş günlük kayıt.
type Response struct {
	models.DailyRecord
	Routes   map[string]float64 `json:"routes"`
	Vehicles map[string]float64 `json:"vehicles"`
}

func toResponse(r models.DailyRecord) (Response, error) {
	resp := Response{DailyRecord: r, Routes: map[string]float64{}, Vehicles: map[string]float64{}}
	if r.Routes != "" {
		if err := json.Unmarshal([]byte(r.Routes), &resp.Routes); err != nil {
			return Response{}, err
		}
	}
	if r.Vehicles != "" {
		if err := json.Unmarshal([]byte(r.Vehicles), &resp.Vehicles); err != nil {
			return Response{}, err
		}
	}
	return resp, nil
}

func validType(raw string) bool {
	switch models.HakedisType(raw) {
	case models.HakedisWeekly, models.HakedisCreditCard:
		return true
	}
	return false
}

// POST /api/records
func CreateRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, _, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body RecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Date == nil || *body.Date == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih gereklidir")
		}
		if _, err := time.Parse("2006-01-02", *body.Date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
		}
		if body.Type == nil || !validType(*body.Type) {
			return fiber.NewError(fiber.StatusBadRequest, "Kayıt tipi \"HAFTALIK\" veya \"KREDI_KARTI\" olmalıdır")
		}
		// Kredi kartı kayıtları araç bazında girilir.
		if models.HakedisType(*body.Type) == models.HakedisCreditCard && len(body.Vehicles) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Kredi kartı tipi için araç değerleri gereklidir")
		}

		if body.Routes == nil {
			body.Routes = map[string]float64{}
		}
		if body.Vehicles == nil {
			body.Vehicles = map[string]float64{}
		}
		routesJSON, err := json.Marshal(body.Routes)
		if err != nil {
			return err
		}
		vehiclesJSON, err := json.Marshal(body.Vehicles)
		if err != nil {
			return err
		}

		var raporal, sistem float64
		if body.Raporal != nil {
			raporal = *body.Raporal
		}
		if body.Sistem != nil {
			sistem = *body.Sistem
		}

		rec := models.DailyRecord{
			ID:         uuid.NewString(),
			Date:       *body.Date,
			Type:       models.HakedisType(*body.Type),
			Routes:     string(routesJSON),
			Vehicles:   string(vehiclesJSON),
			Raporal:    raporal,
			Sistem:     sistem,
			Difference: raporal - sistem,
			CreatedBy:  userID,
		}
		if err := database.DB.Create(&rec).Error; err != nil {
			return err
		}

		resp, err := toResponse(rec)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// GET /api/records?startDate=&endDate=&type=
func ListRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.DailyRecord{}).Order("date DESC")
		if v := c.Query("startDate"); v != "" {
			query = query.Where("date >= ?", v)
		}
		if v := c.Query("endDate"); v != "" {
			query = query.Where("date <= ?", v)
		}
		if v := c.Query("type"); v != "" {
			query = query.Where("type = ?", v)
		}

		var rows []models.DailyRecord
		if err := query.Find(&rows).Error; err != nil {
			return err
		}

		out := make([]Response, 0, len(rows))
		for _, row := range rows {
			resp, err := toResponse(row)
			if err != nil {
				return err
			}
			out = append(out, resp)
		}
		return c.JSON(out)
	}
}

// GET /api/records/:id
func GetRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var row models.DailyRecord
		if err := database.DB.First(&row, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Kayıt bulunamadı")
			}
			return err
		}
		resp, err := toResponse(row)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}

// GET /api/records/date/:date
func ListRecordsByDateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.DailyRecord
		err := database.DB.
			Where("date = ?", c.Params("date")).
			Order("created_at DESC").
			Find(&rows).Error
		if err != nil {
			return err
		}

		out := make([]Response, 0, len(rows))
		for _, row := range rows {
			resp, err := toResponse(row)
			if err != nil {
				return err
			}
			out = append(out, resp)
		}
		return c.JSON(out)
	}
}

// PUT /api/records/:id — raporal/sistem değişirse fark yeniden hesaplanır
func UpdateRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var row models.DailyRecord
		if err := database.DB.First(&row, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Kayıt bulunamadı")
			}
			return err
		}

		if body.Date != nil {
			if _, err := time.Parse("2006-01-02", *body.Date); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
			}
			row.Date = *body.Date
		}
		if body.Type != nil {
			if !validType(*body.Type) {
				return fiber.NewError(fiber.StatusBadRequest, "Kayıt tipi \"HAFTALIK\" veya \"KREDI_KARTI\" olmalıdır")
			}
			row.Type = models.HakedisType(*body.Type)
		}
		if body.Routes != nil {
			raw, err := json.Marshal(body.Routes)
			if err != nil {
				return err
			}
			row.Routes = string(raw)
		}
		if body.Vehicles != nil {
			raw, err := json.Marshal(body.Vehicles)
			if err != nil {
				return err
			}
			row.Vehicles = string(raw)
		}
		if body.Raporal != nil {
			row.Raporal = *body.Raporal
		}
		if body.Sistem != nil {
			row.Sistem = *body.Sistem
		}
		if body.Raporal != nil || body.Sistem != nil {
			row.Difference = row.Raporal - row.Sistem
		}

		if err := database.DB.Save(&row).Error; err != nil {
			return err
		}
		resp, err := toResponse(row)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}

// DELETE /api/records/:id
func DeleteRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := database.DB.Delete(&models.DailyRecord{}, "id = ?", c.Params("id"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Kayıt bulunamadı")
		}
		return c.JSON(fiber.Map{"id": c.Params("id")})
	}
}
