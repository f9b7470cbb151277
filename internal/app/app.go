package app

import (
	"context"
	"fmt"

	"taskClient/internal/apiclient"
	"taskClient/internal/config"
	"taskClient/internal/logger"
	"taskClient/internal/service"

	"go.uber.org/zap"
)

type App struct {
	config    *config.Config
	client    *apiclient.Client
	service   *service.TaskService
	shutdowns []func() // run in reverse order by Shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// Init builds the logger, the API client and the task service. Extra client
// options are applied after the configured ones.
func (a *App) Init(ctx context.Context, opts ...apiclient.Option) (*App, error) {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Sync()
	})

	clientOpts := append([]apiclient.Option{apiclient.WithLogger(logger.L())}, opts...)
	client, err := apiclient.New(a.config.API.BaseURL, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	a.client = client
	a.service = service.NewTaskService(client)

	logger.L().Debug("App: initialized", zap.String("api_url", client.BaseURL()))
	return a, nil
}

func (a *App) Client() *apiclient.Client {
	return a.client
}

func (a *App) Service() *service.TaskService {
	return a.service
}

func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
