package vehicle

import (
	"gise-backend/internal/database"
	"gise-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VehicleRequest struct {
	PlateNumber   *string `json:"plateNumber"`
	VehicleNumber *int    `json:"vehicleNumber"`
	RouteName     *string `json:"routeName"`
	DriverName    *string `json:"driverName"`
	OwnerName     *string `json:"ownerName"`
	IBAN          *string `json:"iban"`
	TaxID         *string `json:"taxId"`
	ContactInfo   *string `json:"contactInfo"`
}

// GET /api/vehicles
func ListVehiclesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vehicles []models.Vehicle
		if err := database.DB.Order("created_at DESC").Find(&vehicles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Araçlar getirilemedi")
		}
		return c.JSON(vehicles)
	}
}

// GET /api/vehicles/route/:routeName
func ListVehiclesByRouteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vehicles []models.Vehicle
		if err := database.DB.Where("route_name = ?", c.Params("routeName")).
			Order("vehicle_number ASC").Find(&vehicles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Araçlar getirilemedi")
		}
		return c.JSON(vehicles)
	}
}

// GET /api/vehicles/:id
func GetVehicleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Araç bulunamadı")
		}
		return c.JSON(vehicle)
	}
}

// POST /api/vehicles
func CreateVehicleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body VehicleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.PlateNumber == nil || *body.PlateNumber == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Plaka numarası gereklidir")
		}
		if body.VehicleNumber == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Araç numarası gereklidir")
		}

		var count int64
		database.DB.Model(&models.Vehicle{}).Where("plate_number = ?", *body.PlateNumber).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu plaka numarası zaten kayıtlı")
		}
		database.DB.Model(&models.Vehicle{}).Where("vehicle_number = ?", *body.VehicleNumber).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu araç numarası zaten kayıtlı")
		}

		vehicle := models.Vehicle{
			ID:            uuid.NewString(),
			PlateNumber:   *body.PlateNumber,
			VehicleNumber: *body.VehicleNumber,
		}
		if body.RouteName != nil {
			vehicle.RouteName = *body.RouteName
		}
		if body.DriverName != nil {
			vehicle.DriverName = *body.DriverName
		}
		if body.OwnerName != nil {
			vehicle.OwnerName = *body.OwnerName
		}
		if body.IBAN != nil {
			vehicle.IBAN = *body.IBAN
		}
		if body.TaxID != nil {
			vehicle.TaxID = *body.TaxID
		}
		if body.ContactInfo != nil {
			vehicle.ContactInfo = *body.ContactInfo
		}

		if err := database.DB.Create(&vehicle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Araç oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(vehicle)
	}
}

// PUT /api/vehicles/:id
func UpdateVehicleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body VehicleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Araç bulunamadı")
		}

		if body.PlateNumber != nil && *body.PlateNumber != vehicle.PlateNumber {
			var count int64
			database.DB.Model(&models.Vehicle{}).Where("plate_number = ?", *body.PlateNumber).Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict, "Bu plaka numarası zaten kayıtlı")
			}
			vehicle.PlateNumber = *body.PlateNumber
		}
		if body.VehicleNumber != nil && *body.VehicleNumber != vehicle.VehicleNumber {
			var count int64
			database.DB.Model(&models.Vehicle{}).Where("vehicle_number = ?", *body.VehicleNumber).Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict, "Bu araç numarası zaten kayıtlı")
			}
			vehicle.VehicleNumber = *body.VehicleNumber
		}
		if body.RouteName != nil {
			vehicle.RouteName = *body.RouteName
		}
		if body.DriverName != nil {
			vehicle.DriverName = *body.DriverName
		}
		if body.OwnerName != nil {
			vehicle.OwnerName = *body.OwnerName
		}
		if body.IBAN != nil {
			vehicle.IBAN = *body.IBAN
		}
		if body.TaxID != nil {
			vehicle.TaxID = *body.TaxID
		}
		if body.ContactInfo != nil {
			vehicle.ContactInfo = *body.ContactInfo
		}

		if err := database.DB.Save(&vehicle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Araç güncellenemedi")
		}

		return c.JSON(vehicle)
	}
}

// DELETE /api/vehicles/:id
func DeleteVehicleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Araç bulunamadı")
		}

		if err := database.DB.Delete(&vehicle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Araç silinemedi")
		}

		return c.JSON(fiber.Map{"id": vehicle.ID})
	}
}
