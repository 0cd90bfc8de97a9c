package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sukalov/radioznb-admin/config"
	"github.com/sukalov/radioznb-admin/models"
	"github.com/sukalov/radioznb-admin/services"
)

type PersonInput struct {
	Name            string  `json:"name" binding:"required"`
	TelegramAccount *string `json:"telegram_account"`
}

// Телеграм-аккаунты хранятся без "@", даже если пользователь ввёл его в форме.
func normalizeTelegram(account *string) *string {
	if account == nil {
		return nil
	}
	trimmed := strings.TrimPrefix(strings.TrimSpace(*account), "@")
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// GET /api/people
// С ?filtered=1 к списку применяются сохранённые фильтры пользователя.
func GetPeople(c *gin.Context) {
	var people []models.Person
	if err := config.DB.Find(&people).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить людей"})
		return
	}

	state, err := savedFilterState(c, config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить фильтры"})
		return
	}
	if state != nil {
		people = services.FilterPeople(people, *state)
	}

	c.JSON(http.StatusOK, people)
}

// GET /api/people/:id
func GetPersonByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	var person models.Person
	if err := config.DB.First(&person, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "человек не найден"})
		return
	}
	c.JSON(http.StatusOK, person)
}

// GET /api/people/:id/recordings — записи, в которых человек участвовал
func GetRecordingsForPerson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	type personRecording struct {
		RecordingID  uuid.UUID         `json:"recording_id"`
		EpisodeTitle string            `json:"episode_title"`
		ReleaseDate  string            `json:"release_date"`
		Status       string            `json:"status"`
		Role         models.PersonRole `json:"role"`
	}

	var rows []personRecording
	err = config.DB.Model(&models.RecordingPerson{}).
		Select("recording_people.recording_id, recordings.episode_title, recordings.release_date, recordings.status, recording_people.role").
		Joins("JOIN recordings ON recordings.id = recording_people.recording_id").
		Where("recording_people.person_id = ?", id).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить записи"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// POST /api/admin/people
func CreatePerson(c *gin.Context) {
	var input PersonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person := models.Person{
		Name:            input.Name,
		TelegramAccount: normalizeTelegram(input.TelegramAccount),
	}
	if err := config.DB.Create(&person).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось создать человека"})
		return
	}
	c.JSON(http.StatusCreated, person)
}

// PUT /api/admin/people/:id
func UpdatePerson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	var input PersonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var person models.Person
	if err := config.DB.First(&person, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "человек не найден"})
		return
	}

	updates := map[string]any{
		"name":             input.Name,
		"telegram_account": normalizeTelegram(input.TelegramAccount),
	}
	if err := config.DB.Model(&person).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось обновить человека"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "обновили"})
}

// DELETE /api/admin/people/:id — жёсткое удаление, строки связей с записями
// подчищает каскад.
func DeletePerson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	if err := config.DB.Delete(&models.Person{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось удалить человека"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "человек удалён"})
}
