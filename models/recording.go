package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordingType string

const (
	TypeLive    RecordingType = "live"
	TypePodcast RecordingType = "podcast"
)

type RecordingStatus string

const (
	StatusPublished RecordingStatus = "published"
	StatusHidden    RecordingStatus = "hidden"
)

type PersonRole string

const (
	RoleHost  PersonRole = "host"
	RoleGuest PersonRole = "guest"
)

// Recording — один выпуск (аудиофайл), центральная сущность архива.
type Recording struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProgramID    uuid.UUID       `gorm:"type:uuid;not null" json:"program_id"`
	Program      *Program        `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	EpisodeTitle string          `gorm:"size:255;not null" json:"episode_title"`
	Description  *string         `gorm:"type:text" json:"description"`
	Type         RecordingType   `gorm:"type:varchar(20);not null" json:"type"`
	ReleaseDate  time.Time       `gorm:"not null" json:"release_date"`
	Duration     *int            `json:"duration"` // секунды
	Status       RecordingStatus `gorm:"type:varchar(20);not null" json:"status"`
	Keywords     *string         `gorm:"type:text" json:"keywords"` // через запятую
	FileURL      string          `gorm:"type:text;not null" json:"file_url"`
	AddedAt      time.Time       `gorm:"autoCreateTime" json:"added_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Recording) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecordingGenre — связка запись/жанр (многие-ко-многим).
type RecordingGenre struct {
	RecordingID uuid.UUID  `gorm:"type:uuid;primaryKey" json:"recording_id"`
	GenreID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"genre_id"`
	Recording   *Recording `gorm:"foreignKey:RecordingID;constraint:OnDelete:CASCADE" json:"-"`
	Genre       *Genre     `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE" json:"-"`
}

// RecordingPerson — связка запись/человек с ролью. Составной ключ
// (recording_id, person_id) не даёт одному человеку быть в записи дважды,
// то есть одновременно ведущим и гостем.
type RecordingPerson struct {
	RecordingID uuid.UUID  `gorm:"type:uuid;primaryKey" json:"recording_id"`
	PersonID    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"person_id"`
	Role        PersonRole `gorm:"type:varchar(10);not null" json:"role"`
	Recording   *Recording `gorm:"foreignKey:RecordingID;constraint:OnDelete:CASCADE" json:"-"`
	Person      *Person    `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"-"`
}
