package main

import (
	"net/http"
	"os"
	"strings"

	"society-app/internal/service"
	"society-app/internal/store"
	"society-app/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	onLambda := os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
	if !onLambda {
		_ = godotenv.Load(".env", ".env.local")
	}

	logger := newLogger()
	defer logger.Sync()

	appStore, err := newStore(logger)
	if err != nil {
		logger.Fatal("store init failed", zap.Error(err))
	}

	svc := service.New(appStore, logger)
	server := web.NewServer(svc, logger)
	handler := server.Routes()

	if onLambda {
		logger.Info("starting in lambda mode")
		adapter := httpadapter.New(handler)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	addr := strings.TrimSpace(os.Getenv("ADDR"))
	if addr == "" {
		addr = ":8080"
	}
	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	var logger *zap.Logger
	var err error
	if os.Getenv("APP") == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// newStore picks the persistence backend from the environment: Postgres
// when POSTGRES_DSN is set, a SQLite file when DB_PATH is set, plain JSON
// files when DATA_DIR is set, and an in-memory store otherwise.
func newStore(logger *zap.Logger) (store.Store, error) {
	if dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN")); dsn != "" {
		logger.Info("using postgres store")
		return store.NewPostgresStore(dsn, store.PostgresOptions{
			MigrationsDir: os.Getenv("POSTGRES_MIGRATIONS_DIR"),
		})
	}
	if dbPath := strings.TrimSpace(os.Getenv("DB_PATH")); dbPath != "" {
		logger.Info("using sqlite store", zap.String("path", dbPath))
		return store.NewSQLiteStore(dbPath, store.SQLiteOptions{
			MigrationsDir: os.Getenv("DB_MIGRATIONS_DIR"),
		})
	}
	if dataDir := strings.TrimSpace(os.Getenv("DATA_DIR")); dataDir != "" {
		logger.Info("using file store", zap.String("dir", dataDir))
		return store.NewFileStore(dataDir)
	}
	logger.Info("using in-memory store")
	return store.NewMemoryStore(), nil
}
