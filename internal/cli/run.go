package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdp/qrterminal/v3"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/cache"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/config"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/format"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/metrics"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/runner"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/session"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/sink"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/tui"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/validator"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/wa"
)

// RunOptions carries the already-resolved inputs of one validation run.
type RunOptions struct {
	SessionName string
	InputPath   string
	ConfigPath  string
	Debug       bool
	Headless    bool
	// MetricsAddr overrides the configured metrics listen address.
	MetricsAddr string
}

// RunValidation executes a single batch validation run end to end: open the
// credential store, bring the session up, stream the input file through the
// validate-and-record loop.
func RunValidation(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.MetricsAddr != "" {
		cfg.MetricsAddr = opts.MetricsAddr
	}

	// Setup failures abort before any output file exists.
	if !wa.ValidSessionName(opts.SessionName) {
		return fmt.Errorf("invalid session name %q: use letters, digits, - or _", opts.SessionName)
	}
	if err := checkInputPath(opts.InputPath); err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	mtr := metrics.New()
	if cfg.MetricsAddr != "" {
		go mtr.Serve(sigCtx, cfg.MetricsAddr, logger)
	}

	client, err := wa.Open(sigCtx, opts.SessionName, cfg.StoreDir, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	mgr := session.NewManager(opts.SessionName, client,
		session.WithLogger(logger),
		session.WithReconnectDelay(cfg.ReconnectDelay.Std()),
		session.WithStateHook(mtr.ObserveState),
	)
	go presentPairingCodes(mgr, opts.SessionName, opts.Headless)

	if err := mgr.Initialize(sigCtx); err != nil {
		return err
	}
	defer mgr.Close()

	input, err := os.Open(opts.InputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer input.Close()

	out, err := sink.Open(opts.InputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	logger.Info("writing results", "path", out.Path())

	r := buildRunner(cfg, mgr, client, logger, mtr, opts.Headless)

	records, runErr := r.Run(sigCtx, mgr, input, out)
	logCompletion(logger, len(records), out.Path(), runErr, sigCtx)

	return handleExecutionError(runErr)
}

// buildRunner assembles the formatter, validator, cache and progress wiring.
func buildRunner(cfg config.Config, mgr *session.Manager, dir session.Directory, logger *slog.Logger, mtr *metrics.Metrics, headless bool) *runner.Runner {
	fmtr := format.New(format.RegionPolicy{
		Trunk:  cfg.Format.TrunkPrefix,
		Prefix: cfg.Format.CountryPrefix,
		Marker: cfg.Format.MobileMarker,
	})
	v := validator.New(dir, mgr.IsReady, validator.WithLogger(logger))

	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithMetrics(mtr),
	}
	if cfg.RedisAddr != "" {
		store := cache.New(cfg.RedisAddr, cfg.RedisPassword, 0, cache.WithTTL(cfg.CacheTTL.Std()))
		runnerOpts = append(runnerOpts, runner.WithCache(store))
	}
	if !headless {
		runnerOpts = append(runnerOpts, runner.WithProgress(func(index int, out validator.Outcome) {
			fmt.Println(tui.ResultLine(index, out.Address, out.Exists, out.Reason))
		}))
	}

	return runner.New(fmtr, v, runnerOpts...)
}

// presentPairingCodes renders each pairing token as a scannable code.
func presentPairingCodes(mgr *session.Manager, sessionName string, headless bool) {
	for code := range mgr.PairingCodes() {
		if headless {
			fmt.Printf("pairing code: %s\n", code)
			continue
		}
		tui.PrintPairingHint(sessionName)
		qrterminal.GenerateHalfBlock(code, qrterminal.L, os.Stdout)
	}
}

// checkInputPath rejects missing or non-text inputs before any output file
// is created.
func checkInputPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input file %s does not exist", path)
		}
		return fmt.Errorf("failed to inspect input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input %s is a directory, expected a .txt file", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".txt") {
		return fmt.Errorf("input %s is not a .txt file", path)
	}
	return nil
}

func logCompletion(logger *slog.Logger, count int, outPath string, err error, sigCtx *SignalContext) {
	switch {
	case err == nil:
		logger.Info("run complete", "records", count, "output", outPath)
	case isInterrupted(err) || sigCtx.Signal() != nil:
		logger.Warn("run interrupted, partial output preserved",
			"records", count, "output", outPath, "signal", sigCtx.Signal())
	case err != nil:
		logger.Error("run failed", "records", count, "err", err)
	}
}
