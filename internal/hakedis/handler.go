package hakedis

import (
	"errors"
	"fmt"
	"time"

	"gise-backend/internal/auth"
	"gise-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateRequest struct {
	Date     string             `json:"date"`
	Type     string             `json:"type"`
	Routes   map[string]float64 `json:"routes"`
	Vehicles map[string]float64 `json:"vehicles"`
	Raporal  float64            `json:"raporal"`
	Sistem   float64            `json:"sistem"`
}

type UpdateRequest struct {
	Date     *string            `json:"date"`
	Type     *string            `json:"type"`
	Routes   map[string]float64 `json:"routes"`
	Vehicles map[string]float64 `json:"vehicles"`
	Raporal  *float64           `json:"raporal"`
	Sistem   *float64           `json:"sistem"`
}

func parseType(raw string) (models.HakedisType, error) {
	switch models.HakedisType(raw) {
	case models.HakedisWeekly, models.HakedisCreditCard:
		return models.HakedisType(raw), nil
	}
	return "", fiber.NewError(fiber.StatusBadRequest, "Hakediş tipi \"HAFTALIK\" veya \"KREDI_KARTI\" olmalıdır")
}

// POST /api/hakedis
func CreateHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, _, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Date == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih gereklidir")
		}
		if _, err := time.Parse("2006-01-02", body.Date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
		}
		hakedisType, err := parseType(body.Type)
		if err != nil {
			return err
		}

		resp, err := store.Create(userID, Input{
			Date:     body.Date,
			Type:     hakedisType,
			Routes:   body.Routes,
			Vehicles: body.Vehicles,
			Raporal:  body.Raporal,
			Sistem:   body.Sistem,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// GET /api/hakedis?type=&startDate=&endDate=
func ListHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := store.List(Filter{
			Type:      c.Query("type"),
			StartDate: c.Query("startDate"),
			EndDate:   c.Query("endDate"),
		})
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/hakedis/:id
func GetHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp, err := store.Get(c.Params("id"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Hakediş bulunamadı")
			}
			return err
		}
		return c.JSON(resp)
	}
}

// PUT /api/hakedis/:id
func UpdateHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		upd := Update{
			Date:     body.Date,
			Routes:   body.Routes,
			Vehicles: body.Vehicles,
			Raporal:  body.Raporal,
			Sistem:   body.Sistem,
		}
		if body.Type != nil {
			hakedisType, err := parseType(*body.Type)
			if err != nil {
				return err
			}
			upd.Type = &hakedisType
		}
		if body.Date != nil {
			if _, err := time.Parse("2006-01-02", *body.Date); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
			}
		}

		resp, err := store.UpdateFields(c.Params("id"), upd)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Hakediş bulunamadı")
			}
			return err
		}
		return c.JSON(resp)
	}
}

// DELETE /api/hakedis/:id
func DeleteHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.Delete(c.Params("id")); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Hakediş bulunamadı")
			}
			return err
		}
		return c.JSON(fiber.Map{"message": "Hakediş başarıyla silindi"})
	}
}

// GET /api/hakedis/weekly/summary?startDate=&endDate=
func WeeklySummaryHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		startDate, endDate := c.Query("startDate"), c.Query("endDate")
		if startDate == "" || endDate == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Başlangıç ve bitiş tarihi gereklidir")
		}

		summary, err := store.WeeklySummary(startDate, endDate)
		if err != nil {
			return err
		}
		return c.JSON(summary)
	}
}

// GET /api/hakedis/weekly/summary/export — banka gönderim dosyası (xlsx)
func WeeklyExportHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		startDate, endDate := c.Query("startDate"), c.Query("endDate")
		if startDate == "" || endDate == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Başlangıç ve bitiş tarihi gereklidir")
		}

		summary, err := store.WeeklySummary(startDate, endDate)
		if err != nil {
			return err
		}

		buf, err := BuildWeeklyXLSX(summary)
		if err != nil {
			return err
		}

		filename := fmt.Sprintf("haftalik-hakedis-%s-%s.xlsx", startDate, endDate)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		return c.Send(buf.Bytes())
	}
}
