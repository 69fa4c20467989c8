// Package app собирает зависимости одной команды CLI: настройки, логгер,
// источник ключей, сборщик ввода, рендерер, метрики и клиент провайдера.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/magabrotheeeer/mollie-cli/internal/config"
	"github.com/magabrotheeeer/mollie-cli/internal/credentials"
	"github.com/magabrotheeeer/mollie-cli/internal/input"
	"github.com/magabrotheeeer/mollie-cli/internal/lib/sl"
	"github.com/magabrotheeeer/mollie-cli/internal/metrics"
	"github.com/magabrotheeeer/mollie-cli/internal/models"
	"github.com/magabrotheeeer/mollie-cli/internal/paymentprovider"
	"github.com/magabrotheeeer/mollie-cli/internal/render"
)

const pushTimeout = 5 * time.Second

// Options — глобальные флаги и потоки команды.
type Options struct {
	ConfigPath      string
	CredentialsPath string
	Test            bool
	Debug           bool
	NoColor         bool
	Version         string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// App хранит зависимости одного запуска.
type App struct {
	Config    *config.Config
	Log       *slog.Logger
	Mode      models.Mode
	Resolver  *credentials.Resolver
	Collector *input.Collector
	Renderer  *render.Renderer
	Metrics   *metrics.Metrics

	userAgent string
}

// New загружает настройки и создаёт зависимости. Ключ API читается позже, в Client.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := cfg.SlogLevel()
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(opts.Err, &slog.HandlerOptions{Level: level}))

	credentialsPath := cfg.CredentialsPath
	if opts.CredentialsPath != "" {
		credentialsPath = config.ExpandHome(opts.CredentialsPath)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "mol/" + opts.Version
	}

	mode := models.ModeFromFlag(opts.Test)
	logger.Debug("settings loaded",
		sl.Mode(mode),
		slog.String("credentials_path", credentialsPath),
		slog.String("settings", cfg.String()),
	)

	return &App{
		Config:    cfg,
		Log:       logger,
		Mode:      mode,
		Resolver:  credentials.NewResolver(credentialsPath, logger),
		Collector: input.New(input.NewTerminal(opts.In, opts.Out), logger),
		Renderer:  render.New(opts.Out, logger, cfg.CheckoutBaseURL(), colored(opts)),
		Metrics:   metrics.New(),
		userAgent: userAgent,
	}, nil
}

// colored включает цвет только для терминала и без --no-color.
func colored(opts Options) bool {
	if opts.NoColor || color.NoColor {
		return false
	}
	return opts.Out == os.Stdout
}

// Client читает ключ для выбранного режима и создаёт клиент провайдера.
func (a *App) Client() (*paymentprovider.Client, error) {
	const op = "app.Client"

	token, err := a.Resolver.Resolve(a.Mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return paymentprovider.NewClient(a.Config.BaseURL(), token, paymentprovider.Options{
		Timeout:   a.Config.Timeout,
		UserAgent: a.userAgent,
		Recorder:  a.Metrics,
	}, a.Log), nil
}

// Finish отправляет метрики команды в Pushgateway, если он настроен.
// Ошибка отправки только логируется: результат команды уже выведен.
func (a *App) Finish(ctx context.Context, command string) {
	const op = "app.Finish"
	if a.Config.PushgatewayURL == "" {
		return
	}
	log := a.Log.With(slog.String("op", op))

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
	defer cancel()

	if err := a.Metrics.Push(ctx, a.Config.PushgatewayURL, a.Config.Job, command); err != nil {
		log.Warn("failed to push metrics", sl.Err(err))
		return
	}
	log.Debug("metrics pushed", slog.String("command", command))
}
