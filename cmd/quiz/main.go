package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/aliskhannn/termquiz/internal/config"
	"github.com/aliskhannn/termquiz/internal/delivery/cli"
	"github.com/aliskhannn/termquiz/internal/logger"
	"github.com/aliskhannn/termquiz/internal/repository"
	"github.com/aliskhannn/termquiz/internal/schema"
	"github.com/aliskhannn/termquiz/internal/service"
	"github.com/aliskhannn/termquiz/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Print(err)
		return cli.ExitError
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Print(err)
		return cli.ExitError
	}
	defer func() { _ = lg.Sync() }()

	lg.Debug("config loaded",
		zap.String("env", cfg.Env),
		zap.String("questions_path", cfg.QuestionsPath),
		zap.String("schema_path", cfg.SchemaPath),
	)

	// Initialize storage and the schema validator.
	store := storage.NewOsFileStorage()

	var validator repository.DocumentValidator
	if cfg.SchemaPath == "" {
		embedded, err := schema.Default()
		if err != nil {
			lg.Error("compile embedded schema", zap.Error(err))
			return cli.ExitError
		}
		validator = embedded
	} else {
		validator = schema.NewFileValidator(store.Fs(), cfg.SchemaPath)
	}

	// Initialize repositories and services.
	questionRepo := repository.NewQuestionRepository(store, validator, cfg.QuestionsPath, lg)

	quizService := service.NewQuizService(questionRepo, lg, nil)
	questionService := service.NewQuestionService(questionRepo, lg)

	handler := cli.NewHandler(
		lg,
		quizService,
		questionService,
		os.Stdin,
		os.Stdout,
		os.Stderr,
		cli.Options{NoColor: cfg.NoColor},
	)

	return handler.Run(context.Background(), os.Args[1:])
}
