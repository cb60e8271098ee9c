package leave

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gise-backend/internal/audit"
	"gise-backend/internal/auth"
	"gise-backend/internal/database"
	"gise-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EmployeeRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	TCNo       *string `json:"tcNo"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	StartDate  *string `json:"startDate"`
	IsActive   *bool   `json:"isActive"`
}

func (r EmployeeRequest) toInput() (EmployeeInput, map[string]bool) {
	in := EmployeeInput{IsActive: r.IsActive}
	fields := map[string]bool{}
	set := func(key string, dst *string, src *string) {
		if src != nil {
			*dst = *src
			fields[key] = true
		}
	}
	set("firstName", &in.FirstName, r.FirstName)
	set("lastName", &in.LastName, r.LastName)
	set("tcNo", &in.TCNo, r.TCNo)
	set("email", &in.Email, r.Email)
	set("phone", &in.Phone, r.Phone)
	set("department", &in.Department, r.Department)
	set("position", &in.Position, r.Position)
	set("startDate", &in.StartDate, r.StartDate)
	if r.IsActive != nil {
		fields["isActive"] = true
	}
	return in, fields
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Kayıt bulunamadı")
	case errors.Is(err, ErrConflict):
		return fiber.NewError(fiber.StatusConflict, "Bu tarih aralığında zaten izin kaydı var")
	case errors.Is(err, ErrQuotaExceeded), errors.Is(err, ErrInvalidState):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}

// GET /api/leave/employees
func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var employees []models.Employee
		if err := database.DB.Order("first_name ASC").Find(&employees).Error; err != nil {
			return err
		}
		return c.JSON(employees)
	}
}

// GET /api/leave/employees/:id
func GetEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Çalışan bulunamadı")
			}
			return err
		}
		return c.JSON(emp)
	}
}

// POST /api/leave/employees
func CreateEmployeeHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body EmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.FirstName == nil || body.LastName == nil || body.TCNo == nil || body.StartDate == nil ||
			*body.FirstName == "" || *body.LastName == "" || *body.TCNo == "" || *body.StartDate == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ad, soyad, TC No ve işe başlama tarihi zorunludur")
		}
		if _, err := time.Parse("2006-01-02", *body.StartDate); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
		}

		in, _ := body.toInput()
		emp, err := store.CreateEmployee(in)
		if err != nil {
			if errors.Is(err, ErrConflict) {
				return fiber.NewError(fiber.StatusConflict, "Bu TC No ile kayıtlı çalışan zaten mevcut")
			}
			return mapError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(emp)
	}
}

// PUT /api/leave/employees/:id
func UpdateEmployeeHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body EmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.StartDate != nil {
			if _, err := time.Parse("2006-01-02", *body.StartDate); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
			}
		}

		in, fields := body.toInput()
		emp, err := store.UpdateEmployee(c.Params("id"), in, fields)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(emp)
	}
}

// DELETE /api/leave/employees/:id — soft delete
func DeleteEmployeeHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.DeactivateEmployee(c.Params("id")); err != nil {
			return mapError(err)
		}
		return c.JSON(fiber.Map{"id": c.Params("id")})
	}
}

type LeaveRequestBody struct {
	EmployeeID  string `json:"employeeId"`
	LeaveType   string `json:"leaveType"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// POST /api/leave/requests
func CreateRequestHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LeaveRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.EmployeeID == "" || body.LeaveType == "" || body.StartDate == "" || body.EndDate == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Çalışan, izin tipi, başlangıç ve bitiş tarihi zorunludur")
		}

		req, err := store.CreateRequest(RequestInput{
			EmployeeID:  body.EmployeeID,
			LeaveType:   body.LeaveType,
			StartDate:   body.StartDate,
			EndDate:     body.EndDate,
			Description: body.Description,
		})
		if err != nil {
			return mapError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(req)
	}
}

// GET /api/leave/requests?employeeId=&status=&year=
func ListRequestsHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := store.ListRequests(RequestFilter{
			EmployeeID: c.Query("employeeId"),
			Status:     c.Query("status"),
			Year:       c.Query("year"),
		})
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

type ReviewRequestBody struct {
	Action string `json:"action"` // approve | reject
	Notes  string `json:"notes"`
}

// PATCH /api/leave/requests/:id/review
func ReviewRequestHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, email, _, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body ReviewRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Action != "approve" && body.Action != "reject" {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz aksiyon. \"approve\" veya \"reject\" olmalıdır")
		}

		req, err := store.Review(c.Params("id"), body.Action == "approve", userID, email, body.Notes)
		if err != nil {
			return mapError(err)
		}

		if err := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserEmail:   email,
			EntityType:  "leave_request",
			EntityID:    req.ID,
			Action:      models.AuditActionReview,
			Description: fmt.Sprintf("İzin talebi incelendi (%s)", body.Action),
			After:       req,
		}); err != nil {
			log.Printf("audit log yazılamadı: %v", err)
		}

		return c.JSON(req)
	}
}

// PATCH /api/leave/requests/:id/cancel
func CancelRequestHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, email, _, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if err := store.Cancel(id); err != nil {
			return mapError(err)
		}

		if err := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserEmail:   email,
			EntityType:  "leave_request",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "İzin talebi iptal edildi",
		}); err != nil {
			log.Printf("audit log yazılamadı: %v", err)
		}

		return c.JSON(fiber.Map{"id": id})
	}
}

// GET /api/leave/entitlements?year= ve /api/leave/entitlements/:employeeId?year=
func ListEntitlementsHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := store.ListEntitlements(c.Params("employeeId"), c.Query("year"))
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}
