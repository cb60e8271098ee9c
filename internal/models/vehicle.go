package models

import "time"

type Vehicle struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	PlateNumber   string    `gorm:"size:20;uniqueIndex;not null" json:"plateNumber"`
	VehicleNumber int       `gorm:"uniqueIndex;not null" json:"vehicleNumber"`
	RouteName     string    `gorm:"size:100;index" json:"routeName"`
	DriverName    string    `gorm:"size:100" json:"driverName"`
	OwnerName     string    `gorm:"size:100" json:"ownerName"`
	IBAN          string    `gorm:"size:34" json:"iban"`
	TaxID         string    `gorm:"size:20" json:"taxId"`
	ContactInfo   string    `gorm:"size:255" json:"contactInfo"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
