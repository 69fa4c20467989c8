package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/magabrotheeeer/mollie-cli/internal/input"
	"github.com/magabrotheeeer/mollie-cli/internal/lib/sl"
	"github.com/magabrotheeeer/mollie-cli/internal/models"
	"github.com/magabrotheeeer/mollie-cli/internal/render"
)

func newPaymentsCmd(build builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Create, inspect and cancel payments",
	}
	cmd.AddCommand(
		newPaymentsCreateCmd(build),
		newPaymentsGetCmd(build),
		newPaymentsCancelCmd(build),
	)
	return cmd
}

// paymentValueFlags — флаги с данными платежа. Webhook URL в их число не входит:
// он задаётся только флагом и в интерактивном режиме.
var paymentValueFlags = []string{"currency", "amount", "description", "redirect-url"}

// useInteractive решает, спрашивать ли данные платежа. Явный --interactive главнее;
// иначе любой заданный флаг с данными платежа переключает команду на сборку из флагов.
func useInteractive(flags *pflag.FlagSet, interactive bool) bool {
	if flags.Changed("interactive") {
		return interactive
	}
	for _, name := range paymentValueFlags {
		if flags.Changed(name) {
			return false
		}
	}
	return interactive
}

func newPaymentsCreateCmd(build builder) *cobra.Command {
	var (
		interactive  bool
		values       input.PaymentValues
		withResponse bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			const op = "commands.payments.create"

			a, err := build(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			defer a.Finish(ctx, cmd.CommandPath())
			log := a.Log.With(slog.String("op", op), sl.Mode(a.Mode))

			client, err := a.Client()
			if err != nil {
				return err
			}

			var req *models.PaymentRequest
			if useInteractive(cmd.Flags(), interactive) {
				req, err = a.Collector.CollectPayment(ctx, values.WebhookURL)
			} else {
				req, err = a.Collector.FromValues(values)
			}
			if err != nil {
				return err
			}

			payment, err := client.CreatePayment(ctx, req)
			if err != nil {
				log.Debug("create payment failed", sl.Err(err))
				return fmt.Errorf("%s: %w", op, err)
			}
			log.Info("payment created", slog.String("id", payment.ID))

			if err := a.Renderer.Payment("Created payment", payment, render.Options{WithRawResponse: withResponse}); err != nil {
				return err
			}
			a.Renderer.CheckoutHint(payment)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&interactive, "interactive", "i", true, "ask for the payment details (off when any of --currency, --amount, --description, --redirect-url is set)")
	f.StringVar(&values.Currency, "currency", input.DefaultCurrency, "ISO 4217 currency code")
	f.StringVar(&values.Amount, "amount", input.DefaultAmount, "amount, rounded to two decimals")
	f.StringVar(&values.Description, "description", input.DefaultDescription, "payment description")
	f.StringVar(&values.RedirectURL, "redirect-url", input.DefaultRedirectURL, "URL the customer returns to after paying")
	f.StringVar(&values.WebhookURL, "webhook-url", "", "URL notified about status changes")
	f.BoolVar(&withResponse, "with-response", false, "also print the raw API response")
	return cmd
}

func newPaymentsGetCmd(build builder) *cobra.Command {
	var withResponse bool

	cmd := &cobra.Command{
		Use:   "get <payment_id>",
		Short: "Show a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const op = "commands.payments.get"

			a, err := build(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			defer a.Finish(ctx, cmd.CommandPath())

			client, err := a.Client()
			if err != nil {
				return err
			}
			id, err := a.Collector.PaymentID(args[0])
			if err != nil {
				return err
			}

			payment, err := client.GetPayment(ctx, id)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			return a.Renderer.Payment("Payment", payment, render.Options{WithRawResponse: withResponse})
		},
	}

	cmd.Flags().BoolVar(&withResponse, "with-response", false, "also print the raw API response")
	return cmd
}

// Отмена уже отменённого или неотменяемого платежа приходит от провайдера
// обычной ошибкой API и выводится так же, как любая другая.
func newPaymentsCancelCmd(build builder) *cobra.Command {
	var withResponse bool

	cmd := &cobra.Command{
		Use:   "cancel <payment_id>",
		Short: "Cancel a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const op = "commands.payments.cancel"

			a, err := build(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			defer a.Finish(ctx, cmd.CommandPath())
			log := a.Log.With(slog.String("op", op), sl.Mode(a.Mode))

			client, err := a.Client()
			if err != nil {
				return err
			}
			id, err := a.Collector.PaymentID(args[0])
			if err != nil {
				return err
			}

			payment, err := client.CancelPayment(ctx, id)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			log.Info("payment canceled", slog.String("id", payment.ID))
			return a.Renderer.Payment("Canceled payment", payment, render.Options{WithRawResponse: withResponse})
		},
	}

	cmd.Flags().BoolVar(&withResponse, "with-response", false, "also print the raw API response")
	return cmd
}
