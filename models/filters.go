package models

import (
	"time"

	"github.com/google/uuid"
)

// UserFilters хранит сериализованное состояние фильтров списков для
// пользователя. Одна строка на пользователя, содержимое — JSON: при
// десериализации неизвестные поля игнорируются, отсутствующие берут
// значения по умолчанию, поэтому схему состояния можно менять свободно.
type UserFilters struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	State     string    `gorm:"type:text;not null" json:"state"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
