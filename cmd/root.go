package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cinema-booking-cli/config"
	"cinema-booking-cli/console"
	"cinema-booking-cli/logging"
	"cinema-booking-cli/service"
	"cinema-booking-cli/store"
	"cinema-booking-cli/tui"
)

const appName = "cinema-booking"

// NewRootCommand builds the command tree. Running it without a subcommand
// starts a booking session.
func NewRootCommand(version string, commit string) *cobra.Command {
	cfg := config.Default()

	root := &cobra.Command{
		Use:   appName,
		Short: "Book movie tickets from the terminal",
		Long: `Pick a movie, pick a showtime and reserve seats on the seat map.
Bookings live in memory and are gone when the session ends.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			if err := cfg.ApplyEnv(os.LookupEnv, cmd.Flags().Changed); err != nil {
				return err
			}
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, cfg)
		},
	}
	cfg.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newMoviesCommand(&cfg),
		newCatalogCommand(),
		newVersionCommand(version, commit),
	)
	return root
}

// Execute runs the root command against the process arguments.
func Execute(version string, commit string) error {
	return NewRootCommand(version, commit).ExecuteContext(context.Background())
}

func runSession(cmd *cobra.Command, cfg config.Config) error {
	logOut := cmd.ErrOrStderr()
	if cfg.TUI {
		// the alternate screen owns the terminal
		logOut = io.Discard
	}
	logger, closeLog, err := newLogger(cfg, logOut)
	if err != nil {
		return err
	}
	defer closeLog()

	booker, err := newBooker(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.TUI {
		_, err := tea.NewProgram(tui.New(booker), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	}

	out := cmd.OutOrStdout()
	in := newInput(cfg, cmd.InOrStdin(), out)
	return console.NewController(booker, in, out, console.WithStyles(stylesFor(out))).Run(cmd.Context())
}

func newBooker(cfg config.Config, logger *logrus.Logger) (*service.Booker, error) {
	catalog, source, err := store.ResolveCatalog(cfg.CatalogPath, cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if source == "" {
		source = "built-in"
	}
	logger.WithFields(logrus.Fields{
		"source": source,
		"movies": catalog.Len(),
		"rows":   cfg.Rows,
		"cols":   cfg.Cols,
	}).Debug("catalog ready")

	return service.NewBooker(catalog,
		service.WithMaxAttempts(cfg.MaxAttempts),
		service.WithLogger(logger),
	), nil
}

func newLogger(cfg config.Config, fallback io.Writer) (*logrus.Logger, func(), error) {
	if cfg.LogFile == "" {
		logger, err := logging.New(cfg.LogLevel, fallback)
		return logger, func() {}, err
	}
	f, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open log file: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, f)
	if err != nil {
		_ = f.Close()
		return nil, func() {}, err
	}
	return logger, func() { _ = f.Close() }, nil
}

// newInput uses promptui on an interactive terminal and a token scanner
// for anything else.
func newInput(cfg config.Config, in io.Reader, out io.Writer) console.Input {
	if !cfg.Plain && isTerminal(in) && isTerminal(out) {
		return &console.PromptInput{}
	}
	return console.NewScanInput(in, out)
}

func stylesFor(out io.Writer) console.Styles {
	if isTerminal(out) {
		return console.DefaultStyles()
	}
	return console.PlainStyles()
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
