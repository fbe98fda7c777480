// Package main provides the CLI entrypoint for touchtype.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/touchtype/internal/config"
	"github.com/verte-zerg/touchtype/internal/metrics"
	"github.com/verte-zerg/touchtype/internal/model"
	"github.com/verte-zerg/touchtype/internal/sentences"
	"github.com/verte-zerg/touchtype/internal/session"
	"github.com/verte-zerg/touchtype/internal/timeout"
	"github.com/verte-zerg/touchtype/internal/tui"
)

const debugEnv = "TOUCHTYPE_DEBUG"

var (
	practiceTimeout       time.Duration
	practiceCheckInterval time.Duration
	practicePreview       int
	practiceSentences     string
	practiceSeed          int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "touchtype",
		Short:         "Touch typing practice",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}
	addPracticeFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSentencesCmd())

	return rootCmd
}

func addPracticeFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&practiceTimeout, "timeout", timeout.DefaultLimit, "end a session after this long")
	cmd.Flags().DurationVar(&practiceCheckInterval, "check-interval", timeout.DefaultInterval, "how often the timeout is checked")
	cmd.Flags().IntVar(&practicePreview, "preview", session.DefaultPreviewLen, "number of upcoming characters to show")
	cmd.Flags().StringVar(&practiceSentences, "sentences", "", "file with one practice sentence per line")
	cmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed for sentence selection (0: time-based)")
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	pool, err := loadPool(cfg)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("touchtype needs an interactive terminal")
	}

	closeLog, err := setupDebugLog()
	if err != nil {
		return err
	}
	defer closeLog()

	picker := sentences.NewSeeded(pool, cfg.Seed)
	m := tui.NewModel(cfg, picker)
	program := tea.NewProgram(m, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if fm, ok := final.(*tui.Model); ok {
		if s := fm.Session(); s.Submitted {
			if err := metrics.RenderSummary(cmd.OutOrStdout(), s.Result, s.KeyPresses); err != nil {
				return fmt.Errorf("failed to write summary: %w", err)
			}
		}
	}
	return nil
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyDurationConfig(cmd, "timeout", &practiceTimeout, fileCfg.Practice.Timeout); err != nil {
		return model.Config{}, err
	}
	if err := applyDurationConfig(cmd, "check-interval", &practiceCheckInterval, fileCfg.Practice.CheckInterval); err != nil {
		return model.Config{}, err
	}
	applyIntConfig(cmd, "preview", &practicePreview, fileCfg.Practice.Preview)
	applyStringConfig(cmd, "sentences", &practiceSentences, fileCfg.Practice.Sentences)
	applyInt64Config(cmd, "seed", &practiceSeed, fileCfg.Practice.Seed)

	cfg := model.Config{
		Timeout:       practiceTimeout,
		CheckInterval: practiceCheckInterval,
		PreviewLen:    practicePreview,
		SentencesPath: practiceSentences,
		Seed:          practiceSeed,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func loadPool(cfg model.Config) ([]string, error) {
	if cfg.SentencesPath == "" {
		return sentences.Default(), nil
	}
	pool, err := sentences.LoadFile(cfg.SentencesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentences from %s: %w", cfg.SentencesPath, err)
	}
	return pool, nil
}

// setupDebugLog routes the standard logger to a file named by
// TOUCHTYPE_DEBUG, or discards it since the terminal belongs to the TUI.
func setupDebugLog() (func(), error) {
	path := strings.TrimSpace(os.Getenv(debugEnv))
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "touchtype")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close debug log: %v\n", cerr)
		}
	}, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newSentencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentences",
		Short: "List practice sentences",
		Args:  cobra.NoArgs,
		RunE:  runSentencesCmd,
	}
	cmd.Flags().StringVar(&practiceSentences, "sentences", "", "file with one practice sentence per line")
	return cmd
}

func runSentencesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "sentences", &practiceSentences, fileCfg.Practice.Sentences)
	pool, err := loadPool(model.Config{SentencesPath: practiceSentences})
	if err != nil {
		return err
	}
	for i, s := range pool {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", i+1, s); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	d, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = d
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# touchtype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# timeout = %q           # End a session after this long
# check-interval = %q    # How often the timeout is checked
# preview = %d            # Number of upcoming characters to show
# sentences = ""          # File with one practice sentence per line (default: built-in)
# seed = 0                # Random seed for sentence selection (0: time-based)
`,
		timeout.DefaultLimit.String(),
		timeout.DefaultInterval.String(),
		session.DefaultPreviewLen,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Timeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	if cfg.CheckInterval <= 0 {
		return fmt.Errorf("--check-interval must be > 0")
	}
	if cfg.CheckInterval > cfg.Timeout {
		return fmt.Errorf("--check-interval must not exceed --timeout")
	}
	if cfg.PreviewLen <= 0 {
		return fmt.Errorf("--preview must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
