// Package cli implements the redstone-calc CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/rcliao/redstone-calc/internal/calc"
	"github.com/rcliao/redstone-calc/internal/config"
	"github.com/rcliao/redstone-calc/internal/logs"
	"github.com/rcliao/redstone-calc/internal/progress"
	"github.com/rcliao/redstone-calc/internal/settings"
	"github.com/rcliao/redstone-calc/internal/slots"
	"github.com/rcliao/redstone-calc/internal/store"
	"github.com/rcliao/redstone-calc/internal/voice"
)

var (
	dataDir     string
	backendFlag string
	formatFlag  string
	logLevel    string
	envFile     string
)

// RootCmd is the top-level command. Without a subcommand it opens the REPL.
var RootCmd = &cobra.Command{
	Use:   "redstone-calc",
	Short: "A keypad calculator with memory slots and spoken feedback",
	Long: "A keypad calculator for the terminal. Keys in, display out. " +
		"Results carry a small random offset and are capped at 250.",
	Run: runRepl,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Data directory (default: $REDSTONE_DATA_DIR or ~/.redstone-calc)")
	RootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Slots backend: text or sqlite (default: $REDSTONE_SLOTS_BACKEND or text)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file read before the environment")
}

// app is everything one command invocation needs.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	settings *settings.Manager
	db       *store.SQLiteStore
	slots    *slots.Store
	voice    *voice.Queue
	machine  *calc.Machine
	delay    progress.Delay

	logCloser io.Closer
	closeOnce sync.Once
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if backendFlag != "" {
		cfg.SlotsBackend = backendFlag
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, cfg.Validate()
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	logger, logCloser, err := logs.New(cmd.ErrOrStderr(), logs.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	db, err := store.NewSQLiteStore(cfg.DBPath())
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	var backend store.Backend = store.NewTextFile(cfg.SlotsPath())
	if cfg.SlotsBackend == config.BackendSQLite {
		backend = db
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		settings:  settings.Open(cfg.SettingsPath(), logger),
		db:        db,
		slots:     slots.New(backend, logger),
		delay:     progress.Delay{Steps: cfg.ProgressSteps, Interval: cfg.ProgressInterval},
		logCloser: logCloser,
	}
	a.slots.Load(cmd.Context())
	a.voice = voice.NewQueue(cmd.Context(), voice.DefaultSpeaker(cfg.SpeechCommand), a.settings.VoiceEnabled(), logger)
	a.machine = calc.New(calc.Options{
		Slots:     a.slots,
		Announcer: a.voice,
		Recorder:  db,
		Logger:    logger,
	})
	logger.Debug("opened", "data_dir", cfg.DataDir, "backend", cfg.SlotsBackend, "slots", a.slots.Len())
	return a, nil
}

func (a *app) Close() {
	a.closeOnce.Do(func() {
		a.voice.Close()
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close store", "error", err)
		}
		a.logCloser.Close()
	})
}

// exitErr releases the app before exiting, since deferred calls do not run.
func (a *app) exitErr(msg string, err error) {
	a.Close()
	exitErr(msg, err)
}

func mustOpenApp(cmd *cobra.Command) *app {
	a, err := openApp(cmd)
	if err != nil {
		exitErr("open", err)
	}
	return a
}

// userMessage converts an operation error into the text shown on the display.
func userMessage(err error) string {
	var slotErr *calc.SlotError
	switch {
	case errors.As(err, &slotErr) && slotErr.Op == "delete":
		return fmt.Sprintf("无法删除第 %d 个数值", slotErr.Index)
	case errors.As(err, &slotErr):
		return fmt.Sprintf("没有保存第 %d 个数值", slotErr.Index)
	case errors.Is(err, calc.ErrEvaluation):
		return "计算错误"
	case errors.Is(err, calc.ErrInsufficientCompute):
		return "算力不够"
	case errors.Is(err, slots.ErrNoSlot):
		return "没有这个数值"
	case errors.Is(err, slots.ErrNotANumber):
		return "不是数字"
	default:
		return err.Error()
	}
}

// statusFor is the progress label after an evaluation.
func statusFor(err error) string {
	switch {
	case err == nil:
		return progress.StatusDone
	case errors.Is(err, calc.ErrInsufficientCompute):
		return progress.StatusCapacity
	default:
		return progress.StatusError
	}
}

func jsonOutput() bool { return formatFlag == "json" }

func printJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

var osExit = os.Exit

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	osExit(1)
}
