package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sukalov/radioznb-admin/controllers"
	"github.com/sukalov/radioznb-admin/middleware"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Чтение доступно любому вошедшему пользователю
	read := api.Group("")
	{
		read.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))

		read.GET("/people", controllers.GetPeople)
		read.GET("/people/:id", controllers.GetPersonByID)
		read.GET("/people/:id/recordings", controllers.GetRecordingsForPerson)

		read.GET("/programs", controllers.GetPrograms)
		read.GET("/programs/:id", controllers.GetProgramByID)
		read.GET("/programs/slug/:slug", controllers.GetProgramBySlug)
		read.GET("/programs/:id/recordings", controllers.GetRecordingsByProgram)

		read.GET("/genres", controllers.GetGenres)
		read.GET("/genres/:id", controllers.GetGenreByID)
		read.GET("/genres/:id/recordings", controllers.GetRecordingsForGenre)

		read.GET("/recordings", controllers.GetRecordings)
		read.GET("/recordings/:id", controllers.GetRecordingForForm)
		read.GET("/recordings/:id/people", controllers.GetPeopleForRecording)

		read.GET("/filters", controllers.GetFilters)
		read.PUT("/filters", controllers.SaveFilters)
		read.POST("/filters/reset", controllers.ResetFilters)
	}

	// Любая мутация контента требует роль admin — проверка на сервере,
	// а не только спрятанные кнопки в интерфейсе.
	admin := api.Group("/admin")
	{
		admin.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db), middleware.RequireRoles("admin"))

		admin.GET("/users", controllers.GetUsers)
		admin.POST("/users", controllers.CreateUser)
		admin.PUT("/users/:id", controllers.UpdateUser)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		admin.POST("/people", controllers.CreatePerson)
		admin.PUT("/people/:id", controllers.UpdatePerson)
		admin.DELETE("/people/:id", controllers.DeletePerson)

		admin.POST("/programs", controllers.CreateProgram)
		admin.PUT("/programs/:id", controllers.UpdateProgram)
		admin.DELETE("/programs/:id", controllers.DeleteProgram)

		admin.POST("/genres", controllers.CreateGenre)
		admin.PUT("/genres/:id", controllers.UpdateGenre)
		admin.DELETE("/genres/:id", controllers.DeleteGenre)

		admin.POST("/recordings", controllers.CreateRecording)
		admin.PUT("/recordings/:id", controllers.UpdateRecording)
		admin.DELETE("/recordings/:id", controllers.DeleteRecording)

		admin.POST("/recordings/upload", controllers.UploadRecordingFile)
		admin.GET("/upload-link", controllers.GetUploadLink)
	}

	return r
}
