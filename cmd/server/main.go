package main

import (
	"log"

	"github.com/M-Imran22/byte-battle-quize-app/internal/buzzer"
	"github.com/M-Imran22/byte-battle-quize-app/internal/config"
	"github.com/M-Imran22/byte-battle-quize-app/internal/database"
	"github.com/M-Imran22/byte-battle-quize-app/internal/handlers"
	"github.com/M-Imran22/byte-battle-quize-app/internal/middleware"
	"github.com/M-Imran22/byte-battle-quize-app/internal/services"
	"github.com/M-Imran22/byte-battle-quize-app/internal/ws"

	_ "github.com/M-Imran22/byte-battle-quize-app/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Byte Battle Quiz API
// @version         1.0
// @description     Quiz competition backend with realtime buzzer coordination
// @host            localhost:3000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	registry := ws.NewRegistry()
	hub := ws.NewHub(registry)
	arbiter := buzzer.NewArbiter(db)

	authService := services.NewAuthService(db, cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
	teamService := services.NewTeamService(db)
	questionService := services.NewQuestionService(db)
	matchService := services.NewMatchService(db)

	authHandler := handlers.NewAuthHandler(authService)
	teamHandler := handlers.NewTeamHandler(teamService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	matchHandler := handlers.NewMatchHandler(matchService, hub)
	buzzerHandler := handlers.NewBuzzerHandler(registry, hub, arbiter, authService, db)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/buzzer", buzzerHandler.HandleWebSocket)

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/refresh_token", authHandler.Refresh)

		api.GET("/public/teams/:matchId", matchHandler.PublicTeams)

		team := api.Group("/team")
		team.Use(middleware.JWTAuth(authService))
		{
			team.POST("", teamHandler.CreateTeam)
			team.GET("", teamHandler.ListTeams)
			team.GET("/:id", teamHandler.GetTeam)
			team.PUT("/:id", teamHandler.UpdateTeam)
			team.DELETE("/:id", teamHandler.DeleteTeam)
		}

		question := api.Group("/question")
		question.Use(middleware.JWTAuth(authService))
		{
			question.POST("", questionHandler.CreateQuestion)
			question.GET("", questionHandler.ListQuestions)
			question.GET("/types", questionHandler.ListQuestionTypes)
			question.GET("/:id", questionHandler.GetQuestion)
			question.PUT("/:id", questionHandler.UpdateQuestion)
			question.DELETE("/:id", questionHandler.DeleteQuestion)
		}

		match := api.Group("/match")
		match.Use(middleware.JWTAuth(authService))
		{
			match.POST("", matchHandler.CreateMatch)
			match.GET("", matchHandler.ListMatches)
			match.GET("/:id", matchHandler.GetMatch)
			match.PUT("/:id", matchHandler.UpdateMatch)
			match.DELETE("/:id", matchHandler.DeleteMatch)
			match.PUT("/:id/start", matchHandler.StartMatch)
			match.GET("/:id/current-question", matchHandler.CurrentQuestion)
			match.PUT("/:id/next-question", matchHandler.NextQuestion)
			match.PUT("/:id/update_score", matchHandler.UpdateScore)
			match.GET("/:id/winner", matchHandler.Winner)
		}

		buzz := api.Group("/buzzer")
		buzz.Use(middleware.JWTAuth(authService))
		{
			buzz.GET("", buzzerHandler.CurrentRound)
			buzz.GET("/history", buzzerHandler.PressHistory)
			buzz.POST("/reset", buzzerHandler.ResetBuzzers)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
