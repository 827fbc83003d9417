package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/robfig/cron/v3"

	"epdtoday/internal/config"
	"epdtoday/internal/display"
	"epdtoday/internal/ics"
	appLog "epdtoday/internal/log"
	"epdtoday/internal/model"
)

type flagConfig struct {
	configPath string
	url        string
	insecure   bool
	once       bool
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI overrides.
	if flags.url != "" {
		conf.URL = flags.url
	}
	if flags.insecure {
		conf.InsecureTLS = true
	}

	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))
	appLog.Info("epdtoday starting",
		"refresh", conf.RefreshCron,
		"rows", conf.Rows,
		"tail_bytes", conf.TailBytes,
		"timeout_seconds", conf.TimeoutSeconds,
		"insecure_tls", conf.InsecureTLS,
		"once", flags.once,
	)

	if conf.URL == "" {
		appLog.Error("no calendar url configured", errors.New("url is empty"),
			"config_path", flags.configPath)
		os.Exit(1)
	}

	provider := ics.NewHTTPProvider(ics.Options{
		URL:         conf.URL,
		InsecureTLS: conf.InsecureTLS,
		Timeout:     time.Duration(conf.TimeoutSeconds) * time.Second,
		TailBytes:   conf.TailBytes,
		UIRows:      conf.Rows,
	})
	sink := display.NewConsoleSink(os.Stdout)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	if flags.once {
		if err := refresh(ctx, provider, sink, conf.Rows); err != nil {
			appLog.Error("refresh failed", err)
			os.Exit(1)
		}
		return
	}

	sched := cron.New()
	if _, err := sched.AddFunc(conf.RefreshCron, func() {
		if err := refresh(ctx, provider, sink, conf.Rows); err != nil {
			appLog.Error("refresh failed", err)
		}
	}); err != nil {
		appLog.Error("invalid refresh schedule", err, "refresh", conf.RefreshCron)
		os.Exit(1)
	}
	sched.Start()

	// Paint once at startup instead of waiting for the first tick.
	if err := refresh(ctx, provider, sink, conf.Rows); err != nil {
		appLog.Error("refresh failed", err)
	}

	<-ctx.Done()
	<-sched.Stop().Done()
	appLog.Info("epdtoday exiting")
}

// refresh runs one fetch-and-show cycle. Transient transport errors are
// retried a few times before the cycle is given up; a failed cycle leaves
// the previous display contents alone.
func refresh(ctx context.Context, provider ics.Provider, sink display.Sink, rows int) error {
	buf := make([]model.Row, rows)

	n, err := retry.DoWithData(
		func() (int, error) {
			return provider.ReadToday(ctx, buf)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(2*time.Second),
		retry.OnRetry(func(attempt uint, err error) {
			appLog.Error("calendar fetch failed, retrying", err, "attempt", attempt+1)
		}),
	)
	if err != nil {
		return err
	}

	appLog.Info("agenda refreshed", "rows", n)
	return sink.Show(ctx, buf[:n])
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/epdtoday/config.yaml", "Path to config file")
	flag.StringVar(&cfg.url, "url", "", "Calendar URL (overrides config if set)")
	flag.BoolVar(&cfg.insecure, "insecure", false, "Skip TLS certificate verification")
	flag.BoolVar(&cfg.once, "once", false, "Run one fetch+show cycle and exit")

	flag.Parse()

	return cfg
}
