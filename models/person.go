package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person — ведущий или гость эфира. TelegramAccount хранится без ведущей "@".
type Person struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	TelegramAccount *string   `gorm:"size:255" json:"telegram_account"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Person) TableName() string {
	return "people"
}

func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
