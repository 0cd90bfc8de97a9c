package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sukalov/radioznb-admin/services"
)

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "пользователь не определён"})
		return uuid.Nil, false
	}
	return id, true
}

// savedFilterState возвращает сохранённые фильтры текущего пользователя,
// если запрос пришёл с ?filtered=1. Без параметра списки отдаются как есть.
func savedFilterState(c *gin.Context, db *gorm.DB) (*services.FilterState, error) {
	if v := c.Query("filtered"); v != "1" && v != "true" {
		return nil, nil
	}
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		state := services.DefaultFilterState()
		return &state, nil
	}
	state, err := services.LoadFilterState(db, id)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// GET /api/filters — сохранённое состояние фильтров текущего пользователя.
// Если ничего не сохранено, возвращаются значения по умолчанию.
func GetFilters(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	state, err := services.LoadFilterState(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить фильтры"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// PUT /api/filters
func SaveFilters(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var state services.FilterState
	if err := c.ShouldBindJSON(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.SaveFilterState(db, userID, state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось сохранить фильтры"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// POST /api/filters/reset
func ResetFilters(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	state := services.DefaultFilterState()
	if err := services.SaveFilterState(db, userID, state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось сбросить фильтры"})
		return
	}
	c.JSON(http.StatusOK, state)
}
