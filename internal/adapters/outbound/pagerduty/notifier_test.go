package pagerduty_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/replica-alerter/internal/adapters/outbound/pagerduty"
	"github.com/skillcoder/replica-alerter/internal/logic/monitor"
)

type capturedEvent struct {
	RoutingKey string `json:"routing_key"`
	Action     string `json:"event_action"`
	DedupKey   string `json:"dedup_key"`
	Payload    *struct {
		Summary   string          `json:"summary"`
		Severity  string          `json:"severity"`
		Source    string          `json:"source"`
		Component string          `json:"component"`
		Group     string          `json:"group"`
		Class     string          `json:"class"`
		Details   json.RawMessage `json:"custom_details"`
	} `json:"payload"`
}

func newEventsServer(t *testing.T, status int, captured *capturedEvent) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"status":"success","dedup_key":"` + captured.DedupKey + `","message":""}`))
	}))
}

func testEvent() monitor.AlertEvent {
	return monitor.AlertEvent{
		ResourceKey:  "prod/web",
		ResourceType: monitor.TypeDeployment,
		DedupKey:     "k8s-zero-replicas-prod/web",
		Action:       monitor.ActionTrigger,
		Metric: monitor.Metric{
			Name:              "web",
			Namespace:         "prod",
			Type:              monitor.TypeDeployment,
			DesiredReplicas:   3,
			AvailableReplicas: 0,
			Timestamp:         time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestNotifier_TriggerCommand(t *testing.T) {
	t.Parallel()

	var captured capturedEvent

	server := newEventsServer(t, http.StatusAccepted, &captured)
	defer server.Close()

	notifier := pagerduty.New(slog.Default(), "token", "routing-key", server.URL, 5*time.Second)

	err := notifier.TriggerCommand(t.Context(), testEvent())
	require.NoError(t, err)

	require.Equal(t, "routing-key", captured.RoutingKey)
	require.Equal(t, "trigger", captured.Action)
	require.Equal(t, "k8s-zero-replicas-prod/web", captured.DedupKey)

	require.NotNil(t, captured.Payload)
	require.Equal(t, "Kubernetes deployment prod/web has 0 available replicas", captured.Payload.Summary)
	require.Equal(t, "critical", captured.Payload.Severity)
	require.Equal(t, "k8s-replica-alerter", captured.Payload.Source)
	require.Equal(t, "prod/web", captured.Payload.Component)
	require.Equal(t, "kubernetes", captured.Payload.Group)
	require.Equal(t, "replica_failure", captured.Payload.Class)

	var details monitor.Metric
	require.NoError(t, json.Unmarshal(captured.Payload.Details, &details))
	require.Equal(t, "web", details.Name)
	require.Equal(t, int32(3), details.DesiredReplicas)
}

func TestNotifier_ResolveCommand(t *testing.T) {
	t.Parallel()

	var captured capturedEvent

	server := newEventsServer(t, http.StatusAccepted, &captured)
	defer server.Close()

	notifier := pagerduty.New(slog.Default(), "token", "routing-key", server.URL, 5*time.Second)

	event := testEvent()
	event.Action = monitor.ActionResolve

	err := notifier.ResolveCommand(t.Context(), event)
	require.NoError(t, err)

	require.Equal(t, "resolve", captured.Action)
	require.Equal(t, "k8s-zero-replicas-prod/web", captured.DedupKey)
	require.Nil(t, captured.Payload)
}

func TestNotifier_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"status":"invalid event","message":"bad routing key"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	notifier := pagerduty.New(slog.Default(), "token", "routing-key", server.URL, 5*time.Second)

	err := notifier.TriggerCommand(t.Context(), testEvent())
	require.Error(t, err)
}
