// Interactive currency converter.
//
// Running the binary with no arguments starts the prompt loop; type or
// select "exit" to leave.
package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"go-currency-converter/config"
	"go-currency-converter/exchange"
	"go-currency-converter/logging"
	"go-currency-converter/prompt"
	"go-currency-converter/rates"
	"go-currency-converter/session"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "An error occurred:", err)
		os.Exit(1)
	}
}

// app what every command needs once flags and config are resolved
type app struct {
	cfg    *config.Config
	logger log.Logger
	table  *rates.Table
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "converter",
		Short:         "Convert amounts between currencies interactively",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConverter(cmd)
		},
	}
	root.PersistentFlags().String("config", "", "config file path (default: ./converter.yaml if present)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error, none)")

	root.AddCommand(newRatesCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	table, err := cfg.RateTable()
	if err != nil {
		return fmt.Errorf("failed to load rates: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.table = table
	return nil
}

func (a *app) runConverter(cmd *cobra.Command) error {
	logger := a.logger
	level.Debug(logger).Log("msg", "starting converter", "base", a.table.Base(), "currencies", len(a.table.Codes()))

	var svc exchange.Service
	svc = exchange.NewService(a.table)
	svc = exchange.NewLoggingService(log.With(logger, "component", "exchange"), svc)

	out := cmd.OutOrStdout()
	ctrl := prompt.New(cmd.InOrStdin(), out, a.table.Codes())
	s := session.New(ctrl, svc, out, log.With(logger, "component", "session"))

	if err := s.Run(cmd.Context()); err != nil {
		level.Error(logger).Log("msg", "converter failed", "err", err)
		return err
	}
	return nil
}

// --- Rates Command ---

func newRatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "List supported currencies and their rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, e := range a.table.Entries() {
				suffix := ""
				if e.Code == a.table.Base() {
					suffix = "  (base)"
				}
				fmt.Fprintf(out, "%-5s %v%s\n", e.Code, float64(e.Rate), suffix)
			}
			return nil
		},
	}
}

// --- Version Command ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "converter %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}
