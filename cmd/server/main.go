package main

import (
	"log"
	"strings"

	"gise-backend/internal/audit"
	"gise-backend/internal/auth"
	"gise-backend/internal/config"
	"gise-backend/internal/database"
	"gise-backend/internal/hakedis"
	"gise-backend/internal/leave"
	"gise-backend/internal/models"
	"gise-backend/internal/record"
	"gise-backend/internal/report"
	"gise-backend/internal/settlement"
	"gise-backend/internal/user"
	"gise-backend/internal/vehicle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	settlementStore := settlement.NewStore(database.DB, settlement.DefaultPricing())
	hakedisStore := hakedis.NewStore(database.DB)
	leaveStore := leave.NewStore(database.DB)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den temizle
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK"})
	})

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/verify", auth.VerifyHandler())

	// Kullanıcı yönetimi (sadece admin)
	users := protected.Group("/users")
	users.Use(auth.RequireRole(models.RoleAdmin))
	users.Get("/", user.ListUsersHandler())
	users.Get("/:id", user.GetUserHandler())
	users.Post("/", user.CreateUserHandler())
	users.Put("/:id", user.UpdateUserHandler())
	users.Delete("/:id", user.DeleteUserHandler())

	// Araçlar
	vehicles := protected.Group("/vehicles")
	vehicles.Get("/", vehicle.ListVehiclesHandler())
	vehicles.Get("/route/:routeName", vehicle.ListVehiclesByRouteHandler())
	vehicles.Get("/:id", vehicle.GetVehicleHandler())
	vehicles.Post("/", auth.RequireRole(models.RoleAdmin, models.RoleSupervisor), vehicle.CreateVehicleHandler())
	vehicles.Put("/:id", auth.RequireRole(models.RoleAdmin, models.RoleSupervisor), vehicle.UpdateVehicleHandler())
	vehicles.Delete("/:id", auth.RequireRole(models.RoleAdmin), vehicle.DeleteVehicleHandler())

	// Gişe gün sonu kayıtları
	desk := protected.Group("/desk")
	desk.Post("/save", auth.RequireRole(models.RoleDesk), settlement.SaveDraftHandler(settlementStore, models.SettlementDesk))
	desk.Post("/submit", auth.RequireRole(models.RoleDesk), settlement.SubmitHandler(settlementStore, models.SettlementDesk))
	desk.Get("/submitted", settlement.ListHandler(settlementStore, models.SettlementDesk))
	desk.Get("/draft/:date", auth.RequireRole(models.RoleDesk), settlement.GetDraftHandler(settlementStore, models.SettlementDesk))
	desk.Get("/submitted/:id", settlement.GetHandler(settlementStore, models.SettlementDesk))
	desk.Patch("/submitted/:id/review",
		auth.RequireRole(models.RoleAdmin, models.RoleSupervisor, models.RoleResponsible),
		settlement.ReviewHandler(settlementStore, models.SettlementDesk))
	desk.Put("/submitted/:id",
		auth.RequireRole(models.RoleAdmin, models.RoleSupervisor, models.RoleDesk),
		settlement.UpdateHandler(settlementStore, models.SettlementDesk))
	desk.Put("/:id",
		auth.RequireRole(models.RoleAdmin, models.RoleSupervisor, models.RoleDesk),
		settlement.UpdateHandler(settlementStore, models.SettlementDesk))
	desk.Delete("/submitted/:id", settlement.DeleteHandler(settlementStore, models.SettlementDesk))

	// Bayi dolum kayıtları (taslak akışı yok)
	bayi := protected.Group("/bayi-dolum")
	bayi.Post("/submit", auth.RequireRole(models.RoleDesk), settlement.SubmitHandler(settlementStore, models.SettlementDealer))
	bayi.Get("/submitted", settlement.ListHandler(settlementStore, models.SettlementDealer))
	bayi.Get("/submitted/:id", settlement.GetHandler(settlementStore, models.SettlementDealer))
	bayi.Patch("/submitted/:id/review",
		auth.RequireRole(models.RoleAdmin, models.RoleSupervisor, models.RoleResponsible),
		settlement.ReviewHandler(settlementStore, models.SettlementDealer))
	bayi.Put("/submitted/:id",
		auth.RequireRole(models.RoleAdmin, models.RoleSupervisor, models.RoleDesk),
		settlement.UpdateHandler(settlementStore, models.SettlementDealer))
	bayi.Put("/:id",
		auth.RequireRole(models.RoleAdmin, models.RoleSupervisor, models.RoleDesk),
		settlement.UpdateHandler(settlementStore, models.SettlementDealer))
	bayi.Delete("/submitted/:id", settlement.DeleteHandler(settlementStore, models.SettlementDealer))

	// Hakediş
	hakedisRoutes := protected.Group("/hakedis")
	hakedisRoutes.Get("/weekly/summary", hakedis.WeeklySummaryHandler(hakedisStore))
	hakedisRoutes.Get("/weekly/summary/export", hakedis.WeeklyExportHandler(hakedisStore))
	hakedisRoutes.Get("/", hakedis.ListHandler(hakedisStore))
	hakedisRoutes.Get("/:id", hakedis.GetHandler(hakedisStore))
	hakedisRoutes.Post("/",
		auth.RequireRole(models.RoleAdmin, models.RoleSupervisor, models.RoleResponsible),
		hakedis.CreateHandler(hakedisStore))
	hakedisRoutes.Put("/:id",
		auth.RequireRole(models.RoleAdmin, models.RoleSupervisor),
		hakedis.UpdateHandler(hakedisStore))
	hakedisRoutes.Delete("/:id", auth.RequireRole(models.RoleAdmin), hakedis.DeleteHandler(hakedisStore))

	// Günlük kayıtlar
	records := protected.Group("/records")
	records.Get("/", auth.RequireRole(models.RoleAdmin, models.RoleSupervisor), record.ListRecordsHandler())
	records.Get("/date/:date", auth.RequireRole(models.RoleAdmin, models.RoleSupervisor), record.ListRecordsByDateHandler())
	records.Get("/:id", auth.RequireRole(models.RoleAdmin, models.RoleSupervisor), record.GetRecordHandler())
	records.Post("/",
		auth.RequireRole(models.RoleAdmin, models.RoleSupervisor, models.RoleDesk),
		record.CreateRecordHandler())
	records.Put("/:id", auth.RequireRole(models.RoleAdmin, models.RoleSupervisor), record.UpdateRecordHandler())
	records.Delete("/:id", auth.RequireRole(models.RoleAdmin), record.DeleteRecordHandler())

	// Raporlar
	reports := protected.Group("/reports")
	reports.Use(auth.RequireRole(models.RoleAdmin, models.RoleSupervisor))
	reports.Get("/date-range", report.DateRangeReportHandler())
	reports.Get("/summary", report.SummaryReportHandler())
	reports.Get("/vehicle/:vehicleNumber", report.VehicleReportHandler())
	reports.Get("/route/:routeName", report.RouteReportHandler())

	// İşlem izleri (sadece admin)
	protected.Get("/audit-logs", auth.RequireRole(models.RoleAdmin), audit.ListAuditLogsHandler())

	// İzin yönetimi (sadece admin)
	leaveRoutes := protected.Group("/leave")
	leaveRoutes.Use(auth.RequireRole(models.RoleAdmin))
	leaveRoutes.Get("/employees", leave.ListEmployeesHandler())
	leaveRoutes.Get("/employees/:id", leave.GetEmployeeHandler())
	leaveRoutes.Post("/employees", leave.CreateEmployeeHandler(leaveStore))
	leaveRoutes.Put("/employees/:id", leave.UpdateEmployeeHandler(leaveStore))
	leaveRoutes.Delete("/employees/:id", leave.DeleteEmployeeHandler(leaveStore))
	leaveRoutes.Get("/requests", leave.ListRequestsHandler(leaveStore))
	leaveRoutes.Post("/requests", leave.CreateRequestHandler(leaveStore))
	leaveRoutes.Patch("/requests/:id/review", leave.ReviewRequestHandler(leaveStore))
	leaveRoutes.Patch("/requests/:id/cancel", leave.CancelRequestHandler(leaveStore))
	leaveRoutes.Get("/entitlements/:employeeId", leave.ListEntitlementsHandler(leaveStore))
	leaveRoutes.Get("/entitlements", leave.ListEntitlementsHandler(leaveStore))

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
