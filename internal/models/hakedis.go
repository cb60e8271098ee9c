package models

import "time"

type HakedisType string

const (
	HakedisWeekly     HakedisType = "HAFTALIK"
	HakedisCreditCard HakedisType = "KREDI_KARTI"
)

// Hakedis: hat/araç bazlı dönemsel hakediş kaydı. difference = raporal - sistem.
type Hakedis struct {
	ID         string      `gorm:"type:uuid;primaryKey" json:"id"`
	Date       string      `gorm:"size:10;index;not null" json:"date"`
	Type       HakedisType `gorm:"size:20;index;not null" json:"type"`
	Routes     string      `gorm:"type:jsonb" json:"-"` // hat adı -> tutar
	Vehicles   string      `gorm:"type:jsonb" json:"-"` // araç no -> tutar
	Raporal    float64     `gorm:"not null" json:"raporal"`
	Sistem     float64     `gorm:"not null" json:"sistem"`
	Difference float64     `gorm:"not null" json:"difference"`
	CreatedBy  uint        `json:"createdBy"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// HakedisReport: hakediş oluşturulurken araç başına üretilen rapor satırı.
// Aynı hakedişin satırları tek transaction içinde yazılır.
type HakedisReport struct {
	ID            string      `gorm:"type:uuid;primaryKey" json:"id"`
	HakedisID     string      `gorm:"type:uuid;index;not null" json:"hakedisId"`
	Date          string      `gorm:"size:10;index;not null" json:"date"`
	VehicleNumber int         `gorm:"index;not null" json:"vehicleNumber"`
	PlateNumber   string      `gorm:"size:20" json:"plateNumber"`
	RouteName     string      `gorm:"size:100;index" json:"routeName"`
	RouteAmount   float64     `gorm:"not null" json:"routeAmount"`
	VehicleAmount float64     `gorm:"not null" json:"vehicleAmount"`
	TotalAmount   float64     `gorm:"not null" json:"totalAmount"`
	Type          HakedisType `gorm:"size:20;not null" json:"type"`
	CreatedAt     time.Time   `json:"createdAt"`
}
