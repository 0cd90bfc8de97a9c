package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sukalov/radioznb-admin/models"
	"github.com/sukalov/radioznb-admin/services"
	"github.com/sukalov/radioznb-admin/utils"
)

// GET /api/recordings
// Список записей в том виде, в котором его показывает админка: сама запись
// плюс название передачи, имена участников одной строкой и ид жанров.
// Поддерживает ?status=published|hidden, а с ?filtered=1 применяет
// сохранённые фильтры пользователя.
func GetRecordings(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Recording{}).Preload("Program")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var recordings []models.Recording
	if err := query.Order("release_date desc").Find(&recordings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить записи"})
		return
	}

	items := make([]services.RecordingListItem, 0, len(recordings))
	for _, rec := range recordings {
		item := services.RecordingListItem{Recording: rec}
		if rec.Program != nil {
			item.ProgramName = rec.Program.Name
		}

		var names []string
		err := db.Model(&models.RecordingPerson{}).
			Select("people.name").
			Joins("JOIN people ON people.id = recording_people.person_id").
			Where("recording_people.recording_id = ?", rec.ID).
			Scan(&names).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить участников"})
			return
		}
		item.PeopleNames = strings.Join(names, ", ")

		var genreIDs []uuid.UUID
		err = db.Model(&models.RecordingGenre{}).
			Select("genre_id").
			Where("recording_id = ?", rec.ID).
			Scan(&genreIDs).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить жанры"})
			return
		}
		item.GenreIDs = genreIDs
		if item.GenreIDs == nil {
			item.GenreIDs = []uuid.UUID{}
		}

		items = append(items, item)
	}

	state, err := savedFilterState(c, db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить фильтры"})
		return
	}
	if state != nil {
		items = services.FilterRecordings(items, *state)
	}

	c.JSON(http.StatusOK, items)
}

// GET /api/recordings/:id — запись со связями в форме редактора
func GetRecordingForForm(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	form, err := services.GetRecordingForForm(db, id)
	if err != nil {
		if errors.Is(err, services.ErrRecordingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить запись"})
		return
	}
	c.JSON(http.StatusOK, form)
}

// GET /api/recordings/:id/people — участники записи с именами и ролями
func GetPeopleForRecording(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	type recordingPerson struct {
		PersonID        uuid.UUID         `json:"person_id"`
		Name            string            `json:"name"`
		TelegramAccount *string           `json:"telegram_account"`
		Role            models.PersonRole `json:"role"`
	}

	var rows []recordingPerson
	err = db.Model(&models.RecordingPerson{}).
		Select("recording_people.person_id, people.name, people.telegram_account, recording_people.role").
		Joins("JOIN people ON people.id = recording_people.person_id").
		Where("recording_people.recording_id = ?", id).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить участников"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// При двухфазной загрузке файл уходит в хранилище напрямую с клиента,
// и сервер его байтов не видел. Если длительность не пришла в форме,
// пробуем посчитать её по файлу; поле nullable, так что неудача пробы
// запись не блокирует.
func fillDurationFromFile(form *services.RecordingFormData) {
	if form.Duration != nil || form.FileURL == "" {
		return
	}
	if dur, err := services.MP3DurationFromURL(form.FileURL); err == nil {
		seconds := int(dur)
		form.Duration = &seconds
	}
}

// POST /api/admin/recordings
func CreateRecording(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var form services.RecordingFormData
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fillDurationFromFile(&form)

	id, err := services.CreateRecordingWithRelations(db, form)
	if err != nil {
		if errors.Is(err, services.ErrHostGuestOverlap) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось создать запись", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/admin/recordings/:id
func UpdateRecording(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	var form services.RecordingFormData
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fillDurationFromFile(&form)

	if err := services.UpdateRecordingWithRelations(db, id, form); err != nil {
		switch {
		case errors.Is(err, services.ErrHostGuestOverlap):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrRecordingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось обновить запись", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "обновили"})
}

// DELETE /api/admin/recordings/:id
// Вместе с записью удаляется и её файл в хранилище. Файл удаляем первым:
// запись без файла бесполезна, а файл-сирота без записи ещё и не виден.
func DeleteRecording(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	var rec models.Recording
	if err := db.First(&rec, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrRecordingNotFound.Error()})
		return
	}

	if err := utils.DeleteFileFromSupabase(rec.FileURL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось удалить файл из хранилища", "details": err.Error()})
		return
	}

	if err := services.DeleteRecordingWithRelations(db, id); err != nil {
		if errors.Is(err, services.ErrRecordingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось удалить запись"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "запись удалена"})
}
