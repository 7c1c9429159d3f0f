// models/program.go
package models

import "time"

// Program is a trainer-created training plan members can subscribe to.
type Program struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TrainerID   uint   `gorm:"not null;index" json:"trainer_id"`
	Trainer     *User  `json:"trainer,omitempty" gorm:"foreignKey:TrainerID"`
	Title       string `gorm:"not null;size:200" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Weeks       int    `gorm:"default:4" json:"weeks"`
	Level       string `gorm:"size:20;default:'beginner'" json:"level"` // beginner, intermediate, advanced
	IsPublished bool   `gorm:"default:true;index" json:"is_published"`

	SubscriberCount int `gorm:"default:0" json:"subscriber_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subscription enrolls a member in a program.
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_sub_pair" json:"user_id"`
	ProgramID uint      `gorm:"not null;uniqueIndex:idx_sub_pair" json:"program_id"`
	Program   *Program  `json:"program,omitempty" gorm:"foreignKey:ProgramID"`
	StartedAt time.Time `json:"started_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (Program) TableName() string      { return "programs" }
func (Subscription) TableName() string { return "subscriptions" }
