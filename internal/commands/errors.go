package commands

import (
	"errors"
	"fmt"

	"github.com/magabrotheeeer/mollie-cli/internal/credentials"
	"github.com/magabrotheeeer/mollie-cli/internal/input"
	"github.com/magabrotheeeer/mollie-cli/internal/paymentprovider"
)

// Коды выхода.
const (
	ExitOK      = 0
	ExitFailure = 1
	// ExitAborted — ввод прерван пользователем, как при SIGINT в shell.
	ExitAborted = 130
)

// ExitCode выбирает код выхода для ошибки команды.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, input.ErrInputAborted):
		return ExitAborted
	default:
		return ExitFailure
	}
}

// Message превращает ошибку конвейера в сообщение для пользователя.
func Message(err error) string {
	var (
		missing   *credentials.MissingCredentialError
		apiErr    *paymentprovider.APIError
		transport *paymentprovider.TransportError
		decode    *paymentprovider.DecodeError
	)

	switch {
	case errors.As(err, &missing):
		return missing.Error()
	case errors.Is(err, input.ErrInputAborted):
		return "input aborted, nothing was sent"
	case errors.As(err, &apiErr):
		msg := fmt.Sprintf("Mollie responded with %d %s", apiErr.Status, apiErr.Title)
		if apiErr.Detail != "" {
			msg += ": " + apiErr.Detail
		}
		if apiErr.Field != "" {
			msg += fmt.Sprintf(" (field %s)", apiErr.Field)
		}
		return msg
	case errors.As(err, &transport):
		return fmt.Sprintf("could not reach Mollie: %v", transport.Err)
	case errors.As(err, &decode):
		return fmt.Sprintf("unexpected response from Mollie with status %d: %v", decode.Status, decode.Err)
	default:
		return err.Error()
	}
}
