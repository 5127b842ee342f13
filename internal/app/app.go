package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/skillcoder/replica-alerter/internal/adapters/outbound/k8s"
	"github.com/skillcoder/replica-alerter/internal/adapters/outbound/pagerduty"
	"github.com/skillcoder/replica-alerter/internal/config"
	"github.com/skillcoder/replica-alerter/internal/httpserver"
	"github.com/skillcoder/replica-alerter/internal/infra/cronparser"
	"github.com/skillcoder/replica-alerter/internal/infra/shutdown"
	"github.com/skillcoder/replica-alerter/internal/logic/monitor"
	"github.com/skillcoder/replica-alerter/internal/watch"
)

type App struct {
	logger  *slog.Logger
	cfg     *config.Config
	monitor *monitor.Service
}

// New creates a new application instance with all dependencies wired.
func New(logger *slog.Logger, cfg *config.Config) (*App, error) {
	entries, err := loadWatchEntries(cfg)
	if err != nil {
		return nil, fmt.Errorf("load watch list: %w", err)
	}

	index, err := watch.NewIndex(entries)
	if err != nil {
		return nil, fmt.Errorf("build watch index: %w", err)
	}

	kubeConfig, err := buildKubeConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}

	repo := k8s.New(logger, clientset, cfg.TargetNamespace, cfg.RequestTimeout)

	notifier := pagerduty.New(
		logger,
		cfg.PagerDutyToken,
		cfg.PagerDutyRoutingKey,
		"",
		cfg.RequestTimeout,
	)

	monitorService := monitor.New(
		logger,
		repo,
		notifier,
		index,
		cronparser.New(),
		cfg.Interval,
	)

	logger.Info("replica-alerter configured",
		"watchEntries", index.Size(),
		"targetNamespace", cfg.TargetNamespace,
		"interval", cfg.Interval,
		"runOnce", cfg.RunOnce(),
	)

	return &App{
		logger:  logger,
		cfg:     cfg,
		monitor: monitorService,
	}, nil
}

// Run executes the application: a single pass in run-once mode, or the
// interval loop with health and metrics servers until a signal arrives.
func (a *App) Run(originCtx context.Context, signals <-chan os.Signal) error {
	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	go shutdown.New(a.logger, signals).HandleSignals(ctx, cancel)

	if a.cfg.RunOnce() {
		a.monitor.RunOnceCommand(ctx)

		return nil
	}

	return a.runLoop(ctx)
}

func (a *App) runLoop(ctx context.Context) error {
	httpServer := httpserver.New(a.logger, a.monitor, a.cfg.HTTPPort)
	metricsServer := httpserver.NewMetricsServer(a.logger, a.cfg.MetricsPort)

	if err := metricsServer.Start(ctx); err != nil {
		return fmt.Errorf("start metrics server: %w", err)
	}

	if err := httpServer.Start(ctx); err != nil {
		return fmt.Errorf("start http server: %w", err)
	}

	if err := a.monitor.Start(ctx); err != nil {
		return fmt.Errorf("start monitor: %w", err)
	}

	a.logger.InfoContext(ctx, "replica-alerter running")

	<-ctx.Done()

	return shutdown.GracefulShutdown(ctx, a.logger, []shutdown.Shutdowner{
		metricsServer,
		httpServer,
		a.monitor,
	})
}

func loadWatchEntries(cfg *config.Config) ([]watch.Entry, error) {
	if cfg.WatchJSON != "" {
		return watch.Parse([]byte(cfg.WatchJSON))
	}

	return watch.LoadFile(cfg.WatchFile)
}

// buildKubeConfig prefers an explicitly configured kubeconfig, then the
// in-cluster service account, then the clientcmd defaults.
func buildKubeConfig(cfg *config.Config) (*rest.Config, error) {
	if cfg.KubeConfig != "" || cfg.KubeMaster != "" {
		kubeConfig, err := clientcmd.BuildConfigFromFlags(cfg.KubeMaster, cfg.KubeConfig)
		if err != nil {
			return nil, fmt.Errorf("kubeconfig: %w", err)
		}

		return kubeConfig, nil
	}

	if kubeConfig, err := rest.InClusterConfig(); err == nil {
		return kubeConfig, nil
	}

	kubeConfig, err := clientcmd.BuildConfigFromFlags("", "")
	if err != nil {
		return nil, fmt.Errorf("default config: %w", err)
	}

	return kubeConfig, nil
}
