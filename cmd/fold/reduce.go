package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/born-ml/fold/internal/algorithm"
	"github.com/born-ml/fold/internal/backend/sequential"
	"github.com/born-ml/fold/internal/backend/threaded"
	"github.com/born-ml/fold/internal/backend/webgpu"
	"github.com/born-ml/fold/internal/execution"
	"github.com/born-ml/fold/internal/kernel"
	"github.com/born-ml/fold/internal/logger"
)

const (
	nFlag             = "n"
	targetFlag        = "target"
	workersFlag       = "workers"
	lanesPerBlockFlag = "lanes-per-block"
	maxBlocksFlag     = "max-blocks"
	relaxedFlag       = "relaxed"
	queueFlag         = "queue"
	opFlag            = "op"
	dtypeFlag         = "dtype"
	logLevelFlag      = "log-level"
	logFormatFlag     = "log-format"
	metricsAddrFlag   = "metrics-addr"
)

var errUnknownOption = errors.New("unknown option")

// reduceConfig is the viper view of the reduce flags.
type reduceConfig struct {
	Execution execution.Config `mapstructure:",squash"`

	N           int    `mapstructure:"n"`
	Target      string `mapstructure:"target"`
	Workers     int    `mapstructure:"workers"`
	Queue       string `mapstructure:"queue"`
	Op          string `mapstructure:"op"`
	DType       string `mapstructure:"dtype"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

func newReduceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reduce",
		Short: "Reduce the sequence 1..n and print the result",
		Args:  cobra.NoArgs,
		RunE:  runReduce,
	}

	defaults := execution.DefaultConfig()
	flags := cmd.Flags()
	flags.Int(nFlag, 100, "number of elements")
	flags.String(targetFlag, "threaded", "execution target: sequential, threaded or webgpu")
	flags.Int(workersFlag, 0, "blocks executing at the same time on the threaded target (0 = one per CPU)")
	flags.Int(lanesPerBlockFlag, defaults.LanesPerBlock, "lanes per block")
	flags.Int(maxBlocksFlag, defaults.MaxBlocks, "grid size cap (0 = no cap)")
	flags.Bool(relaxedFlag, true, "combine block partials in any order")
	flags.String(queueFlag, "blocking", "queue mode: blocking or non-blocking")
	flags.String(opFlag, "sum", "reduction: sum, prod, min or max")
	flags.String(dtypeFlag, "int64", "element type: int32, int64, float32 or float64")
	flags.String(logLevelFlag, "info", "log level: none, debug, info, warn or error")
	flags.String(logFormatFlag, "text", "log format: text or json")
	flags.String(metricsAddrFlag, "", "serve Prometheus metrics on this address while the command runs")

	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		flags := cmd.Flags()
		for key, name := range map[string]string{
			"n":                nFlag,
			"target":           targetFlag,
			"workers":          workersFlag,
			"lanes_per_block":  lanesPerBlockFlag,
			"max_blocks":       maxBlocksFlag,
			"relaxed_ordering": relaxedFlag,
			"queue":            queueFlag,
			"op":               opFlag,
			"dtype":            dtypeFlag,
			"log_level":        logLevelFlag,
			"log_format":       logFormatFlag,
			"metrics_addr":     metricsAddrFlag,
		} {
			mustBindPFlag(key, flags.Lookup(name))
		}
	}

	return cmd
}

func runReduce(cmd *cobra.Command, _ []string) error {
	var cfg reduceConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.N < 0 {
		return fmt.Errorf("%w: n must not be negative, got %d", errUnknownOption, cfg.N)
	}

	log, err := logger.NewLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.MetricsAddr != "" {
		stop := serveMetrics(cfg.MetricsAddr, log)
		defer stop()
	}

	target, err := newTarget(cfg)
	if err != nil {
		return err
	}
	if closer, ok := target.(interface{ Close() }); ok {
		defer closer.Close()
	}

	mode, err := parseMode(cfg.Queue)
	if err != nil {
		return err
	}
	execCtx, err := execution.NewDefaultContext(target, mode)
	if err != nil {
		return err
	}
	defer execCtx.Close()

	ex, err := execution.NewExecutor(execCtx, cfg.Execution, execution.WithLogger(log))
	if err != nil {
		return err
	}
	p := execution.NewPolicy(ex, cfg.Execution.RelaxedOrdering)

	log.Info("reduce",
		zap.Int("n", cfg.N),
		zap.String("target", target.Name()),
		zap.String("op", cfg.Op),
		zap.String("dtype", cfg.DType),
	)

	start := time.Now()
	var result string
	switch cfg.DType {
	case "int32":
		result, err = reduceSequence[int32](cmd.Context(), p, cfg)
	case "int64":
		result, err = reduceSequence[int64](cmd.Context(), p, cfg)
	case "float32":
		result, err = reduceSequence[float32](cmd.Context(), p, cfg)
	case "float64":
		result, err = reduceSequence[float64](cmd.Context(), p, cfg)
	default:
		err = fmt.Errorf("%w: dtype %q", errUnknownOption, cfg.DType)
	}
	if err != nil {
		return err
	}

	log.Debug("reduce done", zap.Duration("elapsed", time.Since(start)))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
	return err
}

func reduceSequence[T kernel.Number](ctx context.Context, p execution.Policy, cfg reduceConfig) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	data := make(algorithm.Slice[T], cfg.N)
	for i := range data {
		data[i] = T(i + 1)
	}

	var (
		v   T
		ok  = true
		err error
	)
	switch cfg.Op {
	case "sum":
		v, err = algorithm.Sum(ctx, p, data)
	case "prod":
		v, err = algorithm.Reduce(ctx, p, data, T(1), kernel.Prod[T])
	case "min":
		v, ok, err = algorithm.Min(ctx, p, data)
	case "max":
		v, ok, err = algorithm.Max(ctx, p, data)
	default:
		return "", fmt.Errorf("%w: op %q", errUnknownOption, cfg.Op)
	}
	if err != nil {
		return "", err
	}
	if !ok {
		return "empty", nil
	}
	return fmt.Sprint(v), nil
}

func newTarget(cfg reduceConfig) (kernel.Target, error) {
	switch cfg.Target {
	case "sequential":
		return sequential.New(), nil
	case "threaded":
		return threaded.New(threaded.Config{Workers: cfg.Workers, MaxBlocks: cfg.Execution.MaxBlocks}), nil
	case "webgpu":
		t, err := webgpu.New()
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: target %q", errUnknownOption, cfg.Target)
	}
}

func parseMode(s string) (execution.Mode, error) {
	switch s {
	case "blocking":
		return execution.Blocking, nil
	case "non-blocking":
		return execution.NonBlocking, nil
	default:
		return 0, fmt.Errorf("%w: queue %q", errUnknownOption, s)
	}
}

func serveMetrics(addr string, log logger.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
