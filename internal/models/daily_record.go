package models

import "time"

// DailyRecord: günlük raporal/sistem karşılaştırma kaydı (hakedişten bağımsız giriş).
type DailyRecord struct {
	ID         string      `gorm:"type:uuid;primaryKey" json:"id"`
	Date       string      `gorm:"size:10;index;not null" json:"date"`
	Type       HakedisType `gorm:"size:20;index;not null" json:"type"`
	Routes     string      `gorm:"type:jsonb" json:"-"`
	Vehicles   string      `gorm:"type:jsonb" json:"-"`
	Raporal    float64     `gorm:"not null" json:"raporal"`
	Sistem     float64     `gorm:"not null" json:"sistem"`
	Difference float64     `gorm:"not null" json:"difference"`
	CreatedBy  uint        `json:"createdBy"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
