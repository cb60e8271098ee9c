package settlement

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gise-backend/internal/audit"
	"gise-backend/internal/auth"
	"gise-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SubmitRequest struct {
	Date                string             `json:"date"`
	Products            map[string]float64 `json:"products"`
	CategoryCreditCards map[string]float64 `json:"categoryCreditCards"`
	Payments            *Payments          `json:"payments"`
	Banknotes           json.RawMessage    `json:"banknotes"`
	BankSentCash        json.RawMessage    `json:"bankSentCash"`
}

type ReviewRequest struct {
	Action string `json:"action"` // approve | reject | revise
	Notes  string `json:"notes"`
}

func currentActor(c *fiber.Ctx) (Actor, error) {
	userID, email, role, err := auth.CurrentUser(c)
	if err != nil {
		return Actor{}, err
	}
	return Actor{ID: userID, Email: email, Role: role}, nil
}

// parseInput: zorunlu alan ve tarih formatı kontrolü. Validasyon katmanı
// atlansa bile eksik alt nesneler boş/sıfır kabul edilir.
func parseInput(body SubmitRequest) (Input, error) {
	if body.Date == "" {
		return Input{}, fiber.NewError(fiber.StatusBadRequest, "Tarih gereklidir")
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		return Input{}, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
	}
	if body.Products == nil {
		return Input{}, fiber.NewError(fiber.StatusBadRequest, "Ürün bilgileri gereklidir")
	}
	if body.CategoryCreditCards == nil {
		return Input{}, fiber.NewError(fiber.StatusBadRequest, "Kredi kartı bilgileri gereklidir")
	}
	if body.Payments == nil {
		return Input{}, fiber.NewError(fiber.StatusBadRequest, "Ödeme bilgileri gereklidir")
	}

	return Input{
		Date:                body.Date,
		Products:            body.Products,
		CategoryCreditCards: body.CategoryCreditCards,
		Payments:            *body.Payments,
		Banknotes:           body.Banknotes,
		BankSentCash:        body.BankSentCash,
	}, nil
}

// mapError: store hatalarını HTTP durumlarına çevirir.
func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Kayıt bulunamadı")
	case errors.Is(err, ErrConflict):
		return fiber.NewError(fiber.StatusConflict, "Bu tarih için zaten teslim edilmiş bir kayıt var")
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, "Bu kayıt üzerinde yetkiniz yok")
	case errors.Is(err, ErrInvalidState):
		return fiber.NewError(fiber.StatusBadRequest, "Kayıt bu durumda bu işleme izin vermiyor")
	}
	return err
}

// POST /api/desk/save — taslak kaydet (sadece gişe akışında)
func SaveDraftHandler(store *Store, kind models.SettlementKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := currentActor(c)
		if err != nil {
			return err
		}

		var body SubmitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in, err := parseInput(body)
		if err != nil {
			return err
		}

		rec, err := store.SaveDraft(actor, kind, in)
		if err != nil {
			return mapError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// POST /api/desk/submit, /api/bayi-dolum/submit
func SubmitHandler(store *Store, kind models.SettlementKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := currentActor(c)
		if err != nil {
			return err
		}

		var body SubmitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in, err := parseInput(body)
		if err != nil {
			return err
		}

		rec, err := store.Submit(actor, kind, in)
		if err != nil {
			return mapError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// GET /api/desk/submitted?startDate=&endDate=&status=
func ListHandler(store *Store, kind models.SettlementKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := currentActor(c)
		if err != nil {
			return err
		}

		f := Filter{
			StartDate: c.Query("startDate"),
			EndDate:   c.Query("endDate"),
			Status:    c.Query("status"),
		}

		records, err := store.List(actor, kind, f)
		if err != nil {
			return mapError(err)
		}

		return c.JSON(records)
	}
}

// GET /api/desk/submitted/:id
func GetHandler(store *Store, kind models.SettlementKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := currentActor(c)
		if err != nil {
			return err
		}

		rec, err := store.Get(actor, kind, c.Params("id"))
		if err != nil {
			return mapError(err)
		}

		return c.JSON(rec)
	}
}

// GET /api/desk/draft/:date — taslak yoksa null döner
func GetDraftHandler(store *Store, kind models.SettlementKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := currentActor(c)
		if err != nil {
			return err
		}

		date := c.Params("date")
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
		}

		rec, err := store.GetDraftByDate(actor, kind, date)
		if err != nil {
			return mapError(err)
		}

		return c.JSON(rec)
	}
}

// PATCH /api/desk/submitted/:id/review
func ReviewHandler(store *Store, kind models.SettlementKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := currentActor(c)
		if err != nil {
			return err
		}

		var body ReviewRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		action := ReviewAction(body.Action)
		if _, ok := StatusForAction(action); !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz aksiyon. \"approve\", \"reject\" veya \"revise\" olmalıdır")
		}

		rec, err := store.Review(actor, kind, c.Params("id"), action, body.Notes)
		if err != nil {
			return mapError(err)
		}

		if err := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserEmail:   actor.Email,
			EntityType:  string(kind) + "_settlement",
			EntityID:    rec.ID,
			Action:      models.AuditActionReview,
			Description: fmt.Sprintf("Kapanış incelendi: %s (%s)", rec.Date, body.Action),
			After:       rec,
		}); err != nil {
			log.Printf("audit log yazılamadı: %v", err)
		}

		return c.JSON(rec)
	}
}

// PUT /api/desk/submitted/:id — sadece pending_revision durumunda
func UpdateHandler(store *Store, kind models.SettlementKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := currentActor(c)
		if err != nil {
			return err
		}

		var body SubmitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in, err := parseInput(body)
		if err != nil {
			return err
		}

		rec, err := store.Update(actor, kind, c.Params("id"), in)
		if err != nil {
			return mapError(err)
		}

		return c.JSON(rec)
	}
}

// DELETE /api/desk/submitted/:id
func DeleteHandler(store *Store, kind models.SettlementKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := currentActor(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		// Silmeden önce mevcut halini al, log'a before olarak düşsün.
		var before any
		if rec, err := store.Get(actor, kind, id); err == nil {
			before = rec
		}

		if err := store.Delete(actor, kind, id); err != nil {
			return mapError(err)
		}

		if err := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserEmail:   actor.Email,
			EntityType:  string(kind) + "_settlement",
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "Kapanış kaydı silindi",
			Before:      before,
		}); err != nil {
			log.Printf("audit log yazılamadı: %v", err)
		}

		return c.JSON(fiber.Map{"id": id})
	}
}
