package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/matchplay-api/internal/config"
	"github.com/yourusername/matchplay-api/internal/handler"
	"github.com/yourusername/matchplay-api/internal/middleware"
	pgRepo "github.com/yourusername/matchplay-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/matchplay-api/internal/repository/redis"
	"github.com/yourusername/matchplay-api/internal/service"
	"github.com/yourusername/matchplay-api/pkg/auth"
	"github.com/yourusername/matchplay-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	matchRepo := pgRepo.NewMatchRepo(db)
	gameRepo := pgRepo.NewGameRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	reactionRepo := pgRepo.NewReactionRepo(db)
	rankingRepo := pgRepo.NewRankingRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис администратора
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Отправка приглашений: Resend либо no-op, если e-mail выключен
	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.Enabled {
		resendService, err := service.NewResendEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Server.BaseURL)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
		emailService = resendService
	}

	// Инициализируем сервисы
	userService := service.NewUserService(userRepo)
	matchService := service.NewMatchService(db, matchRepo, gameRepo, questionRepo, cacheRepo, emailService)
	rankingService := service.NewRankingService(rankingRepo, reactionRepo)
	playService := service.NewPlayService(db, matchRepo, reactionRepo, rankingRepo, userService)

	// Инициализируем обработчики
	adminHandler := handler.NewAdminHandler(jwtService, cfg.Admin)
	matchHandler := handler.NewMatchHandler(matchService, rankingService)
	playHandler := handler.NewPlayHandler(playService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	// В production (GIN_MODE=release): не доверяем прокси (защита от IP spoofing)
	// В development: доверяем localhost
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Прохождение матчей
		playGroup := api.Group("/play")
		playGroup.Use(rateLimiter.Limit(middleware.PlayRateLimitConfig()))
		{
			playGroup.GET("/:uhash", playHandler.Land)
			playGroup.POST("/code", playHandler.CodeEntry)
			playGroup.POST("/sign", playHandler.Sign)
			playGroup.POST("/start", playHandler.Start)
			playGroup.POST("/next", playHandler.Next)
		}

		// Администрирование
		admin := api.Group("/admin")
		{
			admin.POST("/login", rateLimiter.Limit(middleware.AdminLoginRateLimitConfig()), adminHandler.Login)

			authed := admin.Group("")
			authed.Use(authMiddleware.RequireAdmin())
			{
				matches := authed.Group("/matches")
				{
					matches.POST("", matchHandler.CreateMatch)
					matches.GET("", matchHandler.ListMatches)

					matchWithID := matches.Group("/:id")
					matchWithID.Use(middleware.ExtractUintParam("id", "matchID")) // Применяем middleware
					{
						matchWithID.GET("", matchHandler.GetMatch)
						matchWithID.PUT("", matchHandler.UpdateMatch)
						matchWithID.DELETE("", matchHandler.DeleteMatch)
						matchWithID.POST("/games", matchHandler.AddGame)
						matchWithID.POST("/yaml", matchHandler.ImportYAML)
						matchWithID.POST("/invite", matchHandler.Invite)
						matchWithID.GET("/rankings", matchHandler.GetRankings)
						matchWithID.GET("/rankings/export", matchHandler.ExportRankings)
						matchWithID.GET("/stats", matchHandler.GetMatchStats)
					}
				}

				games := authed.Group("/games/:gameID")
				games.Use(middleware.ExtractUintParam("gameID", "gameID"))
				{
					games.POST("/questions", matchHandler.AddQuestion)
					games.POST("/questions/import", matchHandler.ImportTemplateQuestions)
				}

				questions := authed.Group("/questions")
				{
					questions.POST("", matchHandler.CreateTemplateQuestion)
					questions.GET("", matchHandler.ListTemplateQuestions)

					questionWithID := questions.Group("/:questionID")
					questionWithID.Use(middleware.ExtractUintParam("questionID", "questionID"))
					{
						questionWithID.PUT("", matchHandler.UpdateQuestion)
					}
				}
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
