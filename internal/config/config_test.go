package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/replica-alerter/internal/config"
)

const testWatchList = `[{"namespace":"prod","name":"web"}]`

// setRequired sets the minimum env a successful Load needs.
func setRequired(t *testing.T) {
	t.Helper()

	t.Setenv("REPLICA_ALERTER_PAGERDUTY_TOKEN", "token")
	t.Setenv("REPLICA_ALERTER_PAGERDUTY_ROUTING_KEY", "routing-key")
	t.Setenv("REPLICA_ALERTER_WATCH_JSON", testWatchList)
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "token", cfg.PagerDutyToken)
	require.Equal(t, "routing-key", cfg.PagerDutyRoutingKey)
	require.Equal(t, testWatchList, cfg.WatchJSON)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, "8080", cfg.HTTPPort)
	require.Equal(t, "9090", cfg.MetricsPort)
	require.Equal(t, time.Duration(0), cfg.Interval)
	require.True(t, cfg.RunOnce())
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

// clearFallbacks blanks the bare fallback keys so ambient env cannot leak in.
func clearFallbacks(t *testing.T) {
	t.Helper()

	t.Setenv("PAGERDUTY_TOKEN", "")
	t.Setenv("PAGERDUTY_ROUTING_KEY", "")
	t.Setenv("WATCH_JSON", "")
}

func TestLoad_RequiredValues(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		clearFallbacks(t)
		t.Setenv("REPLICA_ALERTER_WATCH_JSON", testWatchList)

		_, err := config.Load()
		require.ErrorIs(t, err, config.ErrMissingCredentials)
	})

	t.Run("missing routing key", func(t *testing.T) {
		clearFallbacks(t)
		t.Setenv("REPLICA_ALERTER_PAGERDUTY_TOKEN", "token")
		t.Setenv("REPLICA_ALERTER_WATCH_JSON", testWatchList)

		_, err := config.Load()
		require.ErrorIs(t, err, config.ErrMissingCredentials)
	})

	t.Run("missing watch list", func(t *testing.T) {
		clearFallbacks(t)
		t.Setenv("REPLICA_ALERTER_PAGERDUTY_TOKEN", "token")
		t.Setenv("REPLICA_ALERTER_PAGERDUTY_ROUTING_KEY", "routing-key")

		_, err := config.Load()
		require.ErrorIs(t, err, config.ErrMissingWatchList)
	})

	t.Run("watch file satisfies watch list requirement", func(t *testing.T) {
		t.Setenv("REPLICA_ALERTER_PAGERDUTY_TOKEN", "token")
		t.Setenv("REPLICA_ALERTER_PAGERDUTY_ROUTING_KEY", "routing-key")
		t.Setenv("REPLICA_ALERTER_WATCH_FILE", "/etc/replica-alerter/watch.yaml")

		cfg, err := config.Load()
		require.NoError(t, err)
		require.Equal(t, "/etc/replica-alerter/watch.yaml", cfg.WatchFile)
	})
}

func TestLoad_Fallbacks(t *testing.T) {
	t.Run("bare keys are honored", func(t *testing.T) {
		t.Setenv("PAGERDUTY_TOKEN", "bare-token")
		t.Setenv("PAGERDUTY_ROUTING_KEY", "bare-key")
		t.Setenv("WATCH_JSON", testWatchList)
		t.Setenv("TARGET_NAMESPACE", "prod")

		cfg, err := config.Load()
		require.NoError(t, err)
		require.Equal(t, "bare-token", cfg.PagerDutyToken)
		require.Equal(t, "bare-key", cfg.PagerDutyRoutingKey)
		require.Equal(t, "prod", cfg.TargetNamespace)
	})

	t.Run("prefixed keys win over bare keys", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PAGERDUTY_TOKEN", "bare-token")

		cfg, err := config.Load()
		require.NoError(t, err)
		require.Equal(t, "token", cfg.PagerDutyToken)
	})
}

type durationCase struct {
	name         string
	giveInterval string
	giveTimeout  string
	wantErr      bool
	wantInterval time.Duration
	wantTimeout  time.Duration
}

func TestLoad_Durations(t *testing.T) {
	tests := []durationCase{
		{
			name:         "interval with units",
			giveInterval: "5m",
			wantInterval: 5 * time.Minute,
			wantTimeout:  30 * time.Second,
		},
		{
			name:         "interval below minimum",
			giveInterval: "10s",
			wantErr:      true,
		},
		{
			name:         "interval not a duration",
			giveInterval: "300",
			wantErr:      true,
		},
		{
			name:        "request timeout override",
			giveTimeout: "10s",
			wantTimeout: 10 * time.Second,
		},
		{
			name:        "request timeout below minimum",
			giveTimeout: "100ms",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)

			if tt.giveInterval != "" {
				t.Setenv("REPLICA_ALERTER_INTERVAL", tt.giveInterval)
			}

			if tt.giveTimeout != "" {
				t.Setenv("REPLICA_ALERTER_REQUEST_TIMEOUT", tt.giveTimeout)
			}

			cfg, err := config.Load()
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantInterval, cfg.Interval)
			require.Equal(t, tt.wantTimeout, cfg.RequestTimeout)
		})
	}
}
