package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Program — передача. HostID указывает на постоянного ведущего (может отсутствовать).
// Slug выводится из названия, если не задан явно, и используется в публичных URL.
type Program struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	HostID      *uuid.UUID `gorm:"type:uuid" json:"host_id"`
	Host        *Person    `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Slug        string     `gorm:"size:32;not null;index" json:"slug"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Program) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
