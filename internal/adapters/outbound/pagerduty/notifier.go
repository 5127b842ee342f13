package pagerduty

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	pd "github.com/PagerDuty/go-pagerduty"

	"github.com/skillcoder/replica-alerter/internal/logic/monitor"
)

const (
	eventSource   = "k8s-replica-alerter"
	eventSeverity = "critical"
	eventGroup    = "kubernetes"
	eventClass    = "replica_failure"
)

type notifier struct {
	logger     *slog.Logger
	client     *pd.Client
	routingKey string
}

// New creates a PagerDuty notifier over the Events API v2. endpoint overrides
// the events API base URL and is meant for tests; pass "" in production.
func New(
	logger *slog.Logger,
	authToken,
	routingKey,
	endpoint string,
	timeout time.Duration,
) monitor.Notifier {
	var opts []pd.ClientOptions
	if endpoint != "" {
		opts = append(opts, pd.WithV2EventsAPIEndpoint(endpoint))
	}

	client := pd.NewClient(authToken, opts...)
	client.HTTPClient = &http.Client{Timeout: timeout}

	return &notifier{
		logger:     logger,
		client:     client,
		routingKey: routingKey,
	}
}

var _ monitor.Notifier = (*notifier)(nil)

// TriggerCommand sends a trigger event carrying the full metric record as
// custom details, so the incident itself is enough to diagnose from.
func (n *notifier) TriggerCommand(ctx context.Context, event monitor.AlertEvent) error {
	v2Event := &pd.V2Event{
		RoutingKey: n.routingKey,
		Action:     string(monitor.ActionTrigger),
		DedupKey:   event.DedupKey,
		Payload: &pd.V2Payload{
			Summary: fmt.Sprintf(
				"Kubernetes %s %s has 0 available replicas",
				event.ResourceType,
				event.ResourceKey,
			),
			Severity:  eventSeverity,
			Source:    eventSource,
			Component: event.ResourceKey,
			Group:     eventGroup,
			Class:     eventClass,
			Details:   event.Metric,
		},
	}

	if _, err := n.client.ManageEventWithContext(ctx, v2Event); err != nil {
		return fmt.Errorf("send trigger event: %w", err)
	}

	return nil
}

// ResolveCommand sends a resolve event. Only the dedup key travels; the
// endpoint correlates it with the earlier trigger.
func (n *notifier) ResolveCommand(ctx context.Context, event monitor.AlertEvent) error {
	v2Event := &pd.V2Event{
		RoutingKey: n.routingKey,
		Action:     string(monitor.ActionResolve),
		DedupKey:   event.DedupKey,
	}

	if _, err := n.client.ManageEventWithContext(ctx, v2Event); err != nil {
		return fmt.Errorf("send resolve event: %w", err)
	}

	return nil
}
