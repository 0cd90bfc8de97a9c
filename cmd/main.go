package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sukalov/radioznb-admin/config"
	"github.com/sukalov/radioznb-admin/routes"
)

func main() {
	// .env для локальной разработки, в проде переменные приходят из окружения
	if err := godotenv.Load(); err != nil {
		log.Println("файл .env не найден")
	}

	config.InitDB()

	r := gin.Default()

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r = routes.SetupRouter(r, config.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("server running at port " + port)
	r.Run(":" + port)
}
