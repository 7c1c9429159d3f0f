// models/entry.go
package models

import "time"

// BodyEntry kinds. Weight entries may carry a goal-achieved flag set by the
// caller when the logged value reaches the user's configured weight goal.
const (
	EntryWeight       = "weight"
	EntryMeasurements = "measurements"
	EntryDaily        = "daily"
)

// BodyEntry is one body-progress record: a weigh-in, a set of tape
// measurements, or a free-form daily check-in.
type BodyEntry struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Kind         string  `gorm:"not null;size:20;index" json:"kind"`
	WeightKg     float64 `gorm:"default:0" json:"weight_kg,omitempty"`
	ChestCm      float64 `gorm:"default:0" json:"chest_cm,omitempty"`
	WaistCm      float64 `gorm:"default:0" json:"waist_cm,omitempty"`
	HipsCm       float64 `gorm:"default:0" json:"hips_cm,omitempty"`
	Note         string  `gorm:"type:text" json:"note,omitempty"`
	GoalAchieved bool    `gorm:"default:false" json:"goal_achieved"`

	CreatedAt time.Time `json:"created_at"`
}

func (BodyEntry) TableName() string {
	return "body_entries"
}
