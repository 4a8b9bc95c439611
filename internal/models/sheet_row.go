package models

import "time"

// SheetRow is how the postgres store keeps one spreadsheet row.
type SheetRow struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"`
	Sheet     string   `gorm:"index"`
	Cells     []string `gorm:"type:text;serializer:json"`
	CreatedAt time.Time
}
