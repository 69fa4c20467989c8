package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/mollie-cli/internal/lib/sl"
	"github.com/magabrotheeeer/mollie-cli/internal/render"
)

func newBalancesCmd(build builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Work with balances",
	}
	cmd.AddCommand(newBalancesListCmd(build))
	return cmd
}

func newBalancesListCmd(build builder) *cobra.Command {
	var (
		limit        int
		from         string
		withResponse bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List balances of the organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			const op = "commands.balances.list"

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
			params, err := a.Collector.BalanceQuery(limit, from)
			if err != nil {
				return err
			}

			list, err := client.ListBalances(ctx, params)
			if err != nil {
				log.Debug("list balances failed", sl.Err(err))
				return fmt.Errorf("%s: %w", op, err)
			}
			return a.Renderer.Balances(list, render.Options{WithRawResponse: withResponse})
		},
	}

	f := cmd.Flags()
	f.IntVar(&limit, "limit", 0, "number of balances per page (1-250, 0 for the provider default)")
	f.StringVar(&from, "from", "", "balance ID to start the page from")
	f.BoolVar(&withResponse, "with-response", false, "also print the raw API response")
	return cmd
}
