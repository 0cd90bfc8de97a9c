package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sukalov/radioznb-admin/config"
	"github.com/sukalov/radioznb-admin/models"
	"github.com/sukalov/radioznb-admin/services"
	"github.com/sukalov/radioznb-admin/utils"
)

type ProgramInput struct {
	Name        string     `json:"name" binding:"required"`
	Description *string    `json:"description"`
	HostID      *uuid.UUID `json:"host_id"`
	Slug        string     `json:"slug"`
}

// GET /api/programs
// С ?filtered=1 к списку применяются сохранённые фильтры пользователя.
func GetPrograms(c *gin.Context) {
	var programs []models.Program
	if err := config.DB.Preload("Host").Find(&programs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить передачи"})
		return
	}

	state, err := savedFilterState(c, config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить фильтры"})
		return
	}
	if state != nil {
		programs = services.FilterPrograms(programs, *state)
	}

	c.JSON(http.StatusOK, programs)
}

// GET /api/programs/:id
func GetProgramByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	var program models.Program
	if err := config.DB.Preload("Host").First(&program, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "передача не найдена"})
		return
	}
	c.JSON(http.StatusOK, program)
}

// GET /api/programs/slug/:slug
func GetProgramBySlug(c *gin.Context) {
	var program models.Program
	if err := config.DB.Preload("Host").First(&program, "slug = ?", c.Param("slug")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "передача не найдена"})
		return
	}
	c.JSON(http.StatusOK, program)
}

// GET /api/programs/:id/recordings
func GetRecordingsByProgram(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	var recordings []models.Recording
	if err := config.DB.Where("program_id = ?", id).Find(&recordings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить записи"})
		return
	}
	c.JSON(http.StatusOK, recordings)
}

// POST /api/admin/programs
func CreateProgram(c *gin.Context) {
	var input ProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.GenerateSlug(input.Name, utils.DefaultSlugLength)
	}

	program := models.Program{
		Name:        input.Name,
		Description: input.Description,
		HostID:      input.HostID,
		Slug:        slug,
	}
	if err := config.DB.Create(&program).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось создать передачу"})
		return
	}
	c.JSON(http.StatusCreated, program)
}

// PUT /api/admin/programs/:id
func UpdateProgram(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	var input ProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var program models.Program
	if err := config.DB.First(&program, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "передача не найдена"})
		return
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.GenerateSlug(input.Name, utils.DefaultSlugLength)
	}

	updates := map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"host_id":     input.HostID,
		"slug":        slug,
	}
	if err := config.DB.Model(&program).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось обновить передачу"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "обновили"})
}

// DELETE /api/admin/programs/:id
func DeleteProgram(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return
	}

	if err := config.DB.Delete(&models.Program{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось удалить передачу"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "передача удалена"})
}
