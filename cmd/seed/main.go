package main

import (
	"flag"
	"log"
	"os"

	"github.com/yourusername/matchplay-api/internal/config"
	pgRepo "github.com/yourusername/matchplay-api/internal/repository/postgres"
	"github.com/yourusername/matchplay-api/internal/service"
	"github.com/yourusername/matchplay-api/pkg/database"
)

// Загружает YAML-фикстуру с играми и вопросами в существующий или
// новый матч. Используется для локальной разработки и демо-стендов.
//
//	go run ./cmd/seed -file fixtures/demo.yaml -name "Demo match"
func main() {
	filePath := flag.String("file", "", "путь к YAML-файлу матча")
	matchName := flag.String("name", "", "имя создаваемого матча (пусто — сгенерировать)")
	restricted := flag.Bool("restricted", false, "создать ограниченный матч")
	withCode := flag.Bool("code", false, "выдать матчу четырёхзначный код вместо хэша")
	flag.Parse()

	if *filePath == "" {
		log.Println("Использование: seed -file <match.yaml> [-name <имя>] [-restricted] [-code]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Не удалось прочитать файл %s: %v", *filePath, err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("Не удалось подключиться к базе: %v", err)
	}
	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("Не удалось применить миграции: %v", err)
	}

	matchRepo := pgRepo.NewMatchRepo(db)
	gameRepo := pgRepo.NewGameRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)

	// Кеш и почта здесь не нужны: код не резервируем через Redis,
	// приглашения не отправляем
	matchService := service.NewMatchService(db, matchRepo, gameRepo, questionRepo, nil, &service.NoopEmailService{})

	match, err := matchService.CreateMatch(service.CreateMatchInput{
		Name:         *matchName,
		WithCode:     *withCode,
		IsRestricted: *restricted,
	})
	if err != nil {
		log.Fatalf("Не удалось создать матч: %v", err)
	}

	match, err = matchService.ImportYAML(match.ID, data)
	if err != nil {
		log.Fatalf("Не удалось импортировать YAML: %v", err)
	}

	log.Printf("Матч %d (%s) загружен: %d игр", match.ID, match.Name, len(match.Games))
	if match.UHash != nil {
		log.Printf("Ссылка: /play/%s", *match.UHash)
	}
	if match.Code != nil {
		log.Printf("Код входа: %s", *match.Code)
	}
	if match.Password != nil {
		log.Printf("Пароль: %s", *match.Password)
	}
}
