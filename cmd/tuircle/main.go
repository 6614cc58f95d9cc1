// Package main provides the CLI entrypoint for tuircle.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuircle/internal/config"
	"github.com/verte-zerg/tuircle/internal/generator"
	"github.com/verte-zerg/tuircle/internal/geometry"
	"github.com/verte-zerg/tuircle/internal/journal"
	"github.com/verte-zerg/tuircle/internal/model"
	"github.com/verte-zerg/tuircle/internal/scoring"
	"github.com/verte-zerg/tuircle/internal/session"
	"github.com/verte-zerg/tuircle/internal/sound"
	"github.com/verte-zerg/tuircle/internal/stats"
	"github.com/verte-zerg/tuircle/internal/store"
	"github.com/verte-zerg/tuircle/internal/tui"
)

const (
	defaultMode        = "deviation"
	defaultMinRadius   = 70.0
	defaultClosure     = 60.0
	defaultDotRadius   = 3.0
	defaultWidth       = 600.0
	defaultHeight      = 600.0
	defaultAttempts    = 20
	defaultJitter      = 4.0
	defaultCurveWindow = 5
)

var (
	gameMode      string
	gameMinRadius float64
	gameClosure   float64
	gameDotRadius float64
	gameWidth     float64
	gameHeight    float64
	gameSound     bool

	simAttempts int
	simSeed     int64
	simJitter   float64
	simLast     int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuircle",
		Short:         "Draw a perfect circle in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGameCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&gameMode, "mode", defaultMode, "scoring mode: deviation or endpoint")
	flags.Float64Var(&gameMinRadius, "min-radius", defaultMinRadius, "smallest accepted mean radius")
	flags.Float64Var(&gameClosure, "closure", defaultClosure, "max distance between first and last point (deviation mode)")
	flags.Float64Var(&gameDotRadius, "dot-radius", defaultDotRadius, "radius of the center dot a stroke must not touch")
	flags.Float64Var(&gameWidth, "width", defaultWidth, "logical canvas width")
	flags.Float64Var(&gameHeight, "height", defaultHeight, "logical canvas height")
	rootCmd.Flags().BoolVar(&gameSound, "sound", false, "play sound cues")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSimulateCmd())

	return rootCmd
}

// loadGameConfig overlays the config file onto the scoring and canvas flags
// the user did not set. Sound is left to the commands that play it.
func loadGameConfig(cmd *cobra.Command) (model.Config, config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &gameMode, fileCfg.Game.Mode)
	applyFloatConfig(cmd, "min-radius", &gameMinRadius, fileCfg.Game.MinRadius)
	applyFloatConfig(cmd, "closure", &gameClosure, fileCfg.Game.Closure)
	applyFloatConfig(cmd, "dot-radius", &gameDotRadius, fileCfg.Game.DotRadius)
	applyFloatConfig(cmd, "width", &gameWidth, fileCfg.Canvas.Width)
	applyFloatConfig(cmd, "height", &gameHeight, fileCfg.Canvas.Height)

	cfg := model.Config{
		Mode:      gameMode,
		MinRadius: gameMinRadius,
		Closure:   gameClosure,
		DotRadius: gameDotRadius,
		Width:     gameWidth,
		Height:    gameHeight,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, config.FileConfig{}, err
	}
	return cfg, fileCfg, nil
}

// playConfig extends loadGameConfig with the root command's --sound flag.
func playConfig(cmd *cobra.Command) (model.Config, error) {
	cfg, fileCfg, err := loadGameConfig(cmd)
	if err != nil {
		return model.Config{}, err
	}
	applyBoolConfig(cmd, "sound", &gameSound, fileCfg.Game.Sound)
	cfg.Sound = gameSound
	return cfg, nil
}

func runGameCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := playConfig(cmd)
	if err != nil {
		return err
	}
	sessCfg, err := sessionConfig(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close journal: %v\n", cerr)
		}
	}()

	player := newPlayer(cfg.Sound)
	defer player.Close()

	m := tui.NewModel(sessCfg, st, player)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newPlayer(enabled bool) sound.Player {
	if !enabled {
		return sound.Nop{}
	}
	mgr, err := sound.NewManager()
	if err != nil {
		logErrf("sound disabled: %v\n", err)
		return sound.Nop{}
	}
	return mgr
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
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
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

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Score synthetic strokes and print the report",
		Args:  cobra.NoArgs,
		RunE:  runSimulateCmd,
	}
	cmd.Flags().IntVar(&simAttempts, "attempts", defaultAttempts, "number of synthetic attempts")
	cmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed (0 uses the current time)")
	cmd.Flags().Float64Var(&simJitter, "jitter", defaultJitter, "max radial noise per sample")
	cmd.Flags().IntVar(&simLast, "last", 0, "only list the last N attempts")
	return cmd
}

func runSimulateCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadGameConfig(cmd)
	if err != nil {
		return err
	}
	if simAttempts <= 0 {
		return fmt.Errorf("--attempts must be > 0")
	}
	if simJitter < 0 {
		return fmt.Errorf("--jitter must be >= 0")
	}
	sessCfg, err := sessionConfig(cfg)
	if err != nil {
		return err
	}
	gen := generator.New()
	if simSeed != 0 {
		gen = generator.NewWithSeed(simSeed)
	}
	out := cmd.OutOrStdout()
	return simulate(cmd.Context(), out, sessCfg, gen, simAttempts, simJitter, simLast, stats.ShouldUseColor(out))
}

func simulate(ctx context.Context, w io.Writer, cfg session.Config, gen *generator.Generator, attempts int, jitter float64, last int, useColor bool) error {
	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close journal: %v\n", cerr)
		}
	}()

	var journalErr error
	ctrl := session.New(cfg, journal.New(st, func(err error) {
		if journalErr == nil {
			journalErr = err
		}
	}))
	for i := 0; i < attempts; i++ {
		play(ctrl, syntheticStroke(gen, cfg, jitter))
	}
	if journalErr != nil {
		return journalErr
	}

	report, err := stats.BuildReport(ctx, st, model.HistoryConfig{Last: last, CurveWindow: defaultCurveWindow})
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := stats.RenderSummary(w, report, useColor); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderHistory(w, report.Attempts, useColor); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// play replays a stroke as press, moves and release.
func play(ctrl *session.Controller, stroke geometry.Stroke) {
	if len(stroke) == 0 {
		return
	}
	ctrl.PointerDown(stroke[0])
	for _, p := range stroke[1:] {
		ctrl.PointerMove(p)
	}
	ctrl.PointerUp()
}

// syntheticStroke mostly draws loops around the center, with a share of
// strokes that exercise each rejection.
func syntheticStroke(gen *generator.Generator, cfg session.Config, jitter float64) geometry.Stroke {
	c := cfg.Center
	maxR := min(cfg.Width, cfg.Height)/2 - jitter - 1
	r := cfg.MinRadius + 10 + gen.Float64()*max(1, maxR-cfg.MinRadius-10)
	n := 60 + gen.Intn(120)
	switch roll := gen.Intn(10); {
	case roll < 5:
		return gen.Circle(c, r, n, jitter)
	case roll < 7:
		return gen.Wobble(c, r, r*0.05*(1+gen.Float64()), 3+gen.Intn(4), n)
	case roll == 7:
		return gen.Circle(c, cfg.MinRadius*0.5, n, 0)
	case roll == 8:
		return gen.Arc(c, r, 0, 200, n, jitter)
	default:
		offset := geometry.Pt(c.X+r, c.Y)
		return gen.Circle(offset, r*0.4, n, jitter)
	}
}

func sessionConfig(cfg model.Config) (session.Config, error) {
	mode, err := scoring.ParseMode(cfg.Mode)
	if err != nil {
		return session.Config{}, fmt.Errorf("invalid --mode: %w", err)
	}
	return session.Config{
		Width:            cfg.Width,
		Height:           cfg.Height,
		Center:           geometry.Pt(cfg.Width/2, cfg.Height/2),
		MinRadius:        cfg.MinRadius,
		ClosureThreshold: cfg.Closure,
		DotRadius:        cfg.DotRadius,
		Mode:             mode,
	}, nil
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuircle configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# mode = %q       # Scoring mode: deviation or endpoint
# min-radius = %.0f         # Smallest accepted mean radius
# closure = %.0f            # Max gap between first and last point (deviation mode)
# dot-radius = %.0f          # Center dot radius a stroke must not touch
# sound = false            # Play sound cues

[canvas]
# width = %.0f             # Logical canvas width
# height = %.0f            # Logical canvas height
`,
		defaultMode,
		defaultMinRadius,
		defaultClosure,
		defaultDotRadius,
		defaultWidth,
		defaultHeight,
	)
}

func validateConfig(cfg model.Config) error {
	if _, err := scoring.ParseMode(cfg.Mode); err != nil {
		return fmt.Errorf("--mode: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("--width and --height must be > 0")
	}
	if cfg.MinRadius < 0 {
		return fmt.Errorf("--min-radius must be >= 0")
	}
	if cfg.Closure < 0 {
		return fmt.Errorf("--closure must be >= 0")
	}
	if cfg.DotRadius < 0 {
		return fmt.Errorf("--dot-radius must be >= 0")
	}
	if cfg.MinRadius*2 > min(cfg.Width, cfg.Height) {
		return fmt.Errorf("--min-radius does not fit on a %.0fx%.0f canvas", cfg.Width, cfg.Height)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
