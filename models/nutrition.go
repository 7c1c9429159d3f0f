// models/nutrition.go
package models

import "time"

// Meal is one logged nutrition entry.
type Meal struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Name     string    `gorm:"not null;size:200" json:"name"`
	Calories int       `gorm:"default:0" json:"calories"`
	ProteinG float64   `gorm:"default:0" json:"protein_g"`
	CarbsG   float64   `gorm:"default:0" json:"carbs_g"`
	FatG     float64   `gorm:"default:0" json:"fat_g"`
	LoggedAt time.Time `gorm:"not null;index" json:"logged_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (Meal) TableName() string {
	return "meals"
}
