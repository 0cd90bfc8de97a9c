package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sukalov/radioznb-admin/services"
	"github.com/sukalov/radioznb-admin/utils"
)

// POST /api/admin/recordings/upload
// Принимает multipart-поле "file" с mp3, кладёт его в хранилище и
// возвращает публичный URL плюс посчитанную длительность в секундах.
// Повторов нет: при сбое пользователь загружает файл заново.
func UploadRecordingFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "нет прикреплённого файла"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !services.IsMP3(fileHeader.Filename, contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "файл должен быть в формате mp3"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось прочитать файл"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось прочитать файл"})
		return
	}

	duration, err := services.MP3DurationFromBytes(data)
	if err != nil {
		// битый mp3 лучше отклонить до загрузки в хранилище
		c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось прочитать mp3", "details": err.Error()})
		return
	}

	filename := uuid.New().String() + ".mp3"
	fileURL, err := utils.UploadAudioToSupabase(data, filename, "audio/mpeg")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить файл в хранилище", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file_url": fileURL,
		"duration": int(duration),
	})
}

// GET /api/admin/upload-link?filename=<имя>
// Двухфазный сценарий: клиент получает подписанный URL и сам делает PUT
// с байтами файла, затем сохраняет public_url в форме записи.
func GetUploadLink(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		filename = uuid.New().String() + ".mp3"
	}
	if !services.IsMP3(filename, "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "файл должен быть в формате mp3"})
		return
	}

	uploadURL, publicURL, err := utils.CreateUploadLink(filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось получить ссылку для загрузки", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": uploadURL,
		"public_url": publicURL,
	})
}
