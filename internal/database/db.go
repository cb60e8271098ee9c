package database

import (
	"log"

	"gise-backend/internal/config"
	"gise-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError olmadan unique index ihlalleri sürücüye özgü ham hata
	// olarak döner ve store katmanındaki ErrDuplicatedKey eşlemesi çalışmaz.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.SettlementRecord{},
		&models.Hakedis{},
		&models.HakedisReport{},
		&models.Vehicle{},
		&models.DailyRecord{},
		&models.Employee{},
		&models.LeaveRequest{},
		&models.LeaveEntitlement{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	// Aynı (kullanıcı, tarih, tür) için ikinci bir aktif kaydı veritabanı
	// seviyesinde engelle. Uygulamadaki ön kontrol iki eşzamanlı submit'te
	// yarışabilir; kesin sınır bu index. revised yalnızca bayi akışında
	// aktif sayılır.
	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_settlement_active_unique
		ON settlement_records (submitted_by, date, kind)
		WHERE status IN ('submitted', 'approved')
		   OR (kind = 'dealer' AND status = 'revised')
	`).Error; err != nil {
		log.Fatalf("settlement unique index oluşturulamadı: %v", err)
	}

	// Taslaklar için de tek kayıt: save-draft zaten upsert yapıyor,
	// index eşzamanlı iki taslak yazımını engeller.
	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_settlement_draft_unique
		ON settlement_records (submitted_by, date, kind)
		WHERE status = 'draft'
	`).Error; err != nil {
		log.Fatalf("settlement draft index oluşturulamadı: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
