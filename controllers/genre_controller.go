package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sukalov/radioznb-admin/config"
	"github.com/sukalov/radioznb-admin/models"
	"github.com/sukalov/radioznb-admin/services"
)

type GenreInput struct {
	Name string `json:"name" binding:"required"`
}

// GET /api/genres
// С ?filtered=1 к списку применяются сохранённые фильтры пользователя.
func GetGenres(c *gin.Context) {
	var genres []models.Genre
	if err := config.DB.Find(&genres).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить жанры"})
		return
	}

	state, err := savedFilterState(c, config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить фильтры"})
		return
	}
	if state != nil {
		genres = services.FilterGenres(genres, *state)
	}

	c.JSON(http.StatusOK, genres)
}

// GET /api/genres/:id
func GetGenreByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	var genre models.Genre
	if err := config.DB.First(&genre, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "жанр не найден"})
		return
	}
	c.JSON(http.StatusOK, genre)
}

// GET /api/genres/:id/recordings
func GetRecordingsForGenre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	type genreRecording struct {
		RecordingID  uuid.UUID `json:"recording_id"`
		EpisodeTitle string    `json:"episode_title"`
		ReleaseDate  string    `json:"release_date"`
		Status       string    `json:"status"`
	}

	var rows []genreRecording
	err = config.DB.Model(&models.RecordingGenre{}).
		Select("recording_genres.recording_id, recordings.episode_title, recordings.release_date, recordings.status").
		Joins("JOIN recordings ON recordings.id = recording_genres.recording_id").
		Where("recording_genres.genre_id = ?", id).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить записи"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// POST /api/admin/genres
func CreateGenre(c *gin.Context) {
	var input GenreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre := models.Genre{Name: input.Name}
	if err := config.DB.Create(&genre).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось создать жанр"})
		return
	}
	c.JSON(http.StatusCreated, genre)
}

// PUT /api/admin/genres/:id
func UpdateGenre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	var input GenreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var genre models.Genre
	if err := config.DB.First(&genre, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "жанр не найден"})
		return
	}

	if err := config.DB.Model(&genre).Update("name", input.Name).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось обновить жанр"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "обновили"})
}

// DELETE /api/admin/genres/:id
func DeleteGenre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	if err := config.DB.Delete(&models.Genre{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось удалить жанр"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "жанр удалён"})
}
