package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sukalov/radioznb-admin/models"
)

var (
	ErrHostGuestOverlap  = errors.New("человек не может быть одновременно ведущим и гостем")
	ErrRecordingNotFound = errors.New("запись не найдена")
)

// RecordingFormData — полный набор полей формы записи. Списки связей
// задаются целиком: при обновлении прежние связи заменяются, а не сливаются.
type RecordingFormData struct {
	ProgramID    uuid.UUID              `json:"program_id" binding:"required"`
	EpisodeTitle string                 `json:"episode_title" binding:"required"`
	Description  *string                `json:"description"`
	Type         models.RecordingType   `json:"type" binding:"required,oneof=live podcast"`
	ReleaseDate  time.Time              `json:"release_date" binding:"required"`
	Duration     *int                   `json:"duration"`
	Status       models.RecordingStatus `json:"status" binding:"required,oneof=published hidden"`
	Keywords     *string                `json:"keywords"`
	FileURL      string                 `json:"file_url" binding:"required"`
	GenreIDs     []uuid.UUID            `json:"genre_ids"`
	Hosts        []uuid.UUID            `json:"hosts"`
	Guests       []uuid.UUID            `json:"guests"`
}

// RecordingForForm — форма в том виде, в котором её ждёт редактор:
// скалярные поля записи плюс три списка связей.
type RecordingForForm struct {
	Recording models.Recording `json:"recording"`
	GenreIDs  []uuid.UUID      `json:"genre_ids"`
	Hosts     []uuid.UUID      `json:"hosts"`
	Guests    []uuid.UUID      `json:"guests"`
}

func validateHostGuestOverlap(form RecordingFormData) error {
	seen := make(map[uuid.UUID]struct{}, len(form.Hosts)+len(form.Guests))
	for _, id := range form.Hosts {
		seen[id] = struct{}{}
	}
	for _, id := range form.Guests {
		seen[id] = struct{}{}
	}
	if len(seen) != len(form.Hosts)+len(form.Guests) {
		return ErrHostGuestOverlap
	}
	return nil
}

func insertRelations(tx *gorm.DB, recordingID uuid.UUID, form RecordingFormData) error {
	if len(form.GenreIDs) > 0 {
		rows := make([]models.RecordingGenre, 0, len(form.GenreIDs))
		for _, genreID := range form.GenreIDs {
			rows = append(rows, models.RecordingGenre{
				RecordingID: recordingID,
				GenreID:     genreID,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}

	if len(form.Hosts) > 0 {
		rows := make([]models.RecordingPerson, 0, len(form.Hosts))
		for _, personID := range form.Hosts {
			rows = append(rows, models.RecordingPerson{
				RecordingID: recordingID,
				PersonID:    personID,
				Role:        models.RoleHost,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}

	if len(form.Guests) > 0 {
		rows := make([]models.RecordingPerson, 0, len(form.Guests))
		for _, personID := range form.Guests {
			rows = append(rows, models.RecordingPerson{
				RecordingID: recordingID,
				PersonID:    personID,
				Role:        models.RoleGuest,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}

	return nil
}

// CreateRecordingWithRelations создаёт запись вместе с жанрами и людьми.
// Валидация ролей выполняется до любых операций с базой, все вставки
// идут в одной транзакции: при сбое на связях запись не остаётся висеть.
func CreateRecordingWithRelations(db *gorm.DB, form RecordingFormData) (uuid.UUID, error) {
	if err := validateHostGuestOverlap(form); err != nil {
		return uuid.Nil, err
	}

	recording := models.Recording{
		ProgramID:    form.ProgramID,
		EpisodeTitle: form.EpisodeTitle,
		Description:  form.Description,
		Type:         form.Type,
		ReleaseDate:  form.ReleaseDate,
		Duration:     form.Duration,
		Status:       form.Status,
		Keywords:     form.Keywords,
		FileURL:      form.FileURL,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recording).Error; err != nil {
			return err
		}
		return insertRelations(tx, recording.ID, form)
	})
	if err != nil {
		return uuid.Nil, err
	}

	return recording.ID, nil
}

// UpdateRecordingWithRelations обновляет запись и полностью заменяет её
// связи: все прежние строки в обеих связках удаляются и вставляются
// заново из формы. Пустой список оставляет таблицу связей пустой.
func UpdateRecordingWithRelations(db *gorm.DB, id uuid.UUID, form RecordingFormData) error {
	if err := validateHostGuestOverlap(form); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var recording models.Recording
		if err := tx.First(&recording, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordingNotFound
			}
			return err
		}

		updates := map[string]any{
			"program_id":    form.ProgramID,
			"episode_title": form.EpisodeTitle,
			"description":   form.Description,
			"type":          form.Type,
			"release_date":  form.ReleaseDate,
			"duration":      form.Duration,
			"status":        form.Status,
			"keywords":      form.Keywords,
			"file_url":      form.FileURL,
		}
		if err := tx.Model(&models.Recording{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("recording_id = ?", id).Delete(&models.RecordingGenre{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recording_id = ?", id).Delete(&models.RecordingPerson{}).Error; err != nil {
			return err
		}

		return insertRelations(tx, id, form)
	})
}

// GetRecordingForForm возвращает запись со связями в форме для редактора.
func GetRecordingForForm(db *gorm.DB, id uuid.UUID) (*RecordingForForm, error) {
	var recording models.Recording
	if err := db.First(&recording, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordingNotFound
		}
		return nil, err
	}

	var genreRows []models.RecordingGenre
	if err := db.Where("recording_id = ?", id).Find(&genreRows).Error; err != nil {
		return nil, err
	}

	var personRows []models.RecordingPerson
	if err := db.Where("recording_id = ?", id).Find(&personRows).Error; err != nil {
		return nil, err
	}

	form := RecordingForForm{
		Recording: recording,
		GenreIDs:  make([]uuid.UUID, 0, len(genreRows)),
		Hosts:     []uuid.UUID{},
		Guests:    []uuid.UUID{},
	}
	for _, row := range genreRows {
		form.GenreIDs = append(form.GenreIDs, row.GenreID)
	}
	for _, row := range personRows {
		switch row.Role {
		case models.RoleHost:
			form.Hosts = append(form.Hosts, row.PersonID)
		case models.RoleGuest:
			form.Guests = append(form.Guests, row.PersonID)
		}
	}

	return &form, nil
}

// DeleteRecordingWithRelations удаляет запись одним запросом,
// строки связей подчищает каскад на уровне базы.
func DeleteRecordingWithRelations(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&models.Recording{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordingNotFound
	}
	return nil
}
