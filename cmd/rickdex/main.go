package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rickdex/cmd/rickdex/browse"
	"rickdex/internal/api"
	"rickdex/internal/config"
	"rickdex/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Logger
var logger = zap.NewNop()

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	apiURL     string
	timeout    time.Duration
	verbose    bool

	cfg          *config.Config
	resolvedPath string
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "rickdex",
		Short: "rickdex - terminal browser for the Rick and Morty character catalog",
		Long: `rickdex browses the characters of the Rick and Morty API.

Run without arguments in a terminal to start the interactive browser.
When output is redirected, the first page is printed as a table instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return browse.Run(cmd.Context(), g.client(), g.cfg, g.resolvedPath)
			}
			return runList(cmd.Context(), g, cmd.OutOrStdout(), listOptions{page: 1})
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&g.apiURL, "api-url", "", "API base URL (or set RICKDEX_API_URL env)")
	rootCmd.PersistentFlags().DurationVar(&g.timeout, "timeout", 0, "HTTP request timeout")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose logging to the log file")

	rootCmd.AddCommand(newBrowseCmd(g))
	rootCmd.AddCommand(newListCmd(g))
	rootCmd.AddCommand(newGetCmd(g))
	return rootCmd
}

func newBrowseCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Start the interactive character browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return browse.Run(cmd.Context(), g.client(), g.cfg, g.resolvedPath)
		},
	}
}

// setup loads configuration, applies flag overrides and starts logging.
func (g *globalOptions) setup(cmd *cobra.Command) error {
	// A missing .env is not an error.
	_ = godotenv.Load()

	path := g.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if g.apiURL != "" {
		cfg.API.BaseURL = g.apiURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.API.Timeout = g.timeout.String()
	}
	if g.verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = logging.Get(logging.CategoryBoot)
	logger.Debug("command starting",
		zap.String("command", cmd.CommandPath()),
		zap.String("config", path),
		zap.String("api", cfg.API.BaseURL))

	g.cfg = cfg
	g.resolvedPath = path
	return nil
}

func (g *globalOptions) client() *api.Client {
	return api.NewClient(g.cfg.API.BaseURL,
		api.WithTimeout(g.cfg.GetTimeout()),
		api.WithUserAgent(g.cfg.API.UserAgent),
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
