// Package commands описывает команды CLI mol на cobra.
// Каждая команда проходит один конвейер: ключ API, сбор ввода, запрос к провайдеру, вывод.
// Первая же ошибка прерывает конвейер и превращается в сообщение и код выхода.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/mollie-cli/internal/app"
	"github.com/magabrotheeeer/mollie-cli/internal/config"
)

// Version подставляется при сборке через -ldflags "-X .../internal/commands.Version=...".
var Version = "dev"

type globalFlags struct {
	configPath      string
	credentialsPath string
	test            bool
	debug           bool
	noColor         bool
}

// builder создаёт зависимости для запущенной команды.
type builder func(cmd *cobra.Command) (*app.App, error)

// NewRootCmd создаёт корневую команду со всеми подкомандами.
func NewRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "mol",
		Short:         "Command-line client for the Mollie payments API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "settings file (YAML), defaults to $"+config.ConfigPathEnv)
	pf.StringVar(&flags.credentialsPath, "credentials", "", "credentials file (TOML), defaults to ~/.mol/conf.toml")
	pf.BoolVar(&flags.test, "test", false, "use the test API key instead of the live one")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	build := func(cmd *cobra.Command) (*app.App, error) {
		return app.New(app.Options{
			ConfigPath:      flags.configPath,
			CredentialsPath: flags.credentialsPath,
			Test:            flags.test,
			Debug:           flags.debug,
			NoColor:         flags.noColor,
			Version:         Version,
			In:              cmd.InOrStdin(),
			Out:             cmd.OutOrStdout(),
			Err:             cmd.ErrOrStderr(),
		})
	}

	root.AddCommand(
		newBalancesCmd(build),
		newPaymentsCmd(build),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mol version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mol %s\n", Version)
		},
	}
}

// Run выполняет команду с аргументами args и возвращает код выхода.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "Error: %s\n", Message(err))
		return ExitCode(err)
	}
	return ExitOK
}

// Execute запускает CLI с аргументами процесса и завершает процесс с кодом команды.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
