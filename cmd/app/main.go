package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"parceltrack/cmd"
	httpin "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/adapters/out/postgres/sessionrepo"
	"parceltrack/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB, configs)

	var redisClient *redis.Client
	if configs.SessionStore == "redis" {
		redisClient = redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	}

	root := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)

	jobManager := jobs.NewJobManager(
		root.CreatePurgeStaleSessionsCommandHandler(), root.SessionTTL(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		SessionStore:           goDotEnvVariable("SESSION_STORE"),
		RedisAddr:              goDotEnvVariable("REDIS_ADDR"),
		SessionTTLMinutes:      goDotEnvInt("SESSION_TTL_MINUTES", 60),
		PublicBaseURL:          goDotEnvVariable("PUBLIC_BASE_URL"),
		StrictTerminalStatuses: goDotEnvBool("STRICT_TERMINAL_STATUSES"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvInt(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func goDotEnvBool(key string) bool {
	value, _ := strconv.ParseBool(goDotEnvVariable(key))
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB, configs cmd.Config) {
	models := []any{&parcelrepo.ParcelDTO{}, &parcelrepo.CheckpointDTO{}}
	if configs.SessionStore != "redis" {
		models = append(models, &sessionrepo.SessionDTO{}, &sessionrepo.SessionScanDTO{})
	}
	if err := gormDB.AutoMigrate(models...); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	server := httpin.NewServer(
		root.CreateCreateParcelCommandHandler(),
		root.CreateScanParcelCommandHandler(),
		root.CreateStartSessionCommandHandler(),
		root.CreateJoinSessionCommandHandler(),
		root.CreateConnectSessionCommandHandler(),
		root.CreateEndSessionCommandHandler(),
		root.CreateGetParcelQueryHandler(),
		root.CreateGetSessionQueryHandler(),
		root.CreateLabelRenderer(),
		root.PublicBaseURL(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
