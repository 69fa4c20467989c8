// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — единообразно формировать структурированные поля лога:
// ошибки, режим ключа API и HTTP-статусы ответов провайдера.
package sl

import (
	"log/slog"

	"github.com/magabrotheeeer/mollie-cli/internal/models"
)

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
// Для nil возвращается пустая строка, чтобы логирование никогда не паниковало.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Mode возвращает атрибут с режимом ключа (live/test).
func Mode(m models.Mode) slog.Attr {
	return slog.String("mode", string(m))
}

// Status возвращает атрибут с HTTP-статусом ответа.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}
