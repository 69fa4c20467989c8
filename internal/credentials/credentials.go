// Package credentials выбирает ключ API Mollie для текущего режима (live/test).
//
// Ключ берётся из переменной окружения MOLLIE_LIVE_API_KEY / MOLLIE_TEST_API_KEY,
// а если она не задана, из TOML-файла вида
//
//	[keys]
//	live = "live_..."
//	test = "test_..."
//
// Путь к файлу передаётся явно при создании Resolver. Ключ другого режима
// никогда не подставляется вместо отсутствующего.
package credentials

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/magabrotheeeer/mollie-cli/internal/lib/sl"
	"github.com/magabrotheeeer/mollie-cli/internal/models"
)

// Переменные окружения с ключами.
const (
	LiveKeyEnv = "MOLLIE_LIVE_API_KEY"
	TestKeyEnv = "MOLLIE_TEST_API_KEY"
)

var (
	// ErrConfigUnreadable — файл с ключами не удалось прочитать.
	ErrConfigUnreadable = errors.New("credentials file is unreadable")
	// ErrConfigMalformed — файл прочитан, но не соответствует формату.
	ErrConfigMalformed = errors.New("credentials file is malformed")
	// ErrMissingCredential — для выбранного режима ключ не задан.
	ErrMissingCredential = errors.New("missing API key")
)

// MissingCredentialError сообщает, для какого режима не найден ключ.
type MissingCredentialError struct {
	Mode models.Mode
	Path string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("no API key configured for %s mode: set keys.%s in %s or %s",
		e.Mode, e.Mode, e.Path, envFor(e.Mode))
}

// Is позволяет сравнивать ошибку с ErrMissingCredential через errors.Is.
func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// Keys — ключи API по режимам.
type Keys struct {
	Live string `toml:"live"`
	Test string `toml:"test"`
}

// File — содержимое файла с ключами.
type File struct {
	Keys Keys `toml:"keys"`
}

type envKeys struct {
	Live string `env:"MOLLIE_LIVE_API_KEY"`
	Test string `env:"MOLLIE_TEST_API_KEY"`
}

// Resolver выбирает ключ API. Только читает окружение и файл.
type Resolver struct {
	path string
	log  *slog.Logger
}

// NewResolver создаёт Resolver, читающий ключи из файла path.
func NewResolver(path string, log *slog.Logger) *Resolver {
	return &Resolver{
		path: path,
		log:  log,
	}
}

// Path возвращает путь к файлу с ключами.
func (r *Resolver) Path() string {
	return r.path
}

// Resolve возвращает bearer-токен для режима mode.
func (r *Resolver) Resolve(mode models.Mode) (string, error) {
	const op = "credentials.Resolve"
	log := r.log.With(slog.String("op", op), sl.Mode(mode))

	var env envKeys
	if err := cleanenv.ReadEnv(&env); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if key := Keys(env).forMode(mode); key != "" {
		log.Debug("API key taken from environment", slog.String("env", envFor(mode)))
		return key, nil
	}

	file, err := r.load()
	if err != nil {
		log.Debug("failed to load credentials file", slog.String("path", r.path), sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	key := file.Keys.forMode(mode)
	if key == "" {
		return "", &MissingCredentialError{Mode: mode, Path: r.path}
	}
	log.Debug("API key taken from credentials file", slog.String("path", r.path))
	return key, nil
}

func (r *Resolver) load() (*File, error) {
	if r.path == "" {
		return nil, fmt.Errorf("%w: no path configured", ErrConfigUnreadable)
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigUnreadable, err)
	}

	var file File
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigMalformed, r.path, err)
	}
	return &file, nil
}

func (k Keys) forMode(mode models.Mode) string {
	switch mode {
	case models.ModeLive:
		return strings.TrimSpace(k.Live)
	case models.ModeTest:
		return strings.TrimSpace(k.Test)
	default:
		return ""
	}
}

func envFor(mode models.Mode) string {
	if mode == models.ModeTest {
		return TestKeyEnv
	}
	return LiveKeyEnv
}
