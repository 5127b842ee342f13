package monitor

import (
	"context"
	"time"
)

// Repository is the port interface for cluster queries.
// Implementations are provided by adapters in the outbound layer.
type Repository interface {
	ListDeploymentsQuery(ctx context.Context) ([]Deployment, error)
	ListReplicaSetsQuery(ctx context.Context) ([]ReplicaSet, error)
	ListDaemonSetsQuery(ctx context.Context) ([]DaemonSet, error)
	ListStatefulSetsQuery(ctx context.Context) ([]StatefulSet, error)
	ListCronJobsQuery(ctx context.Context) ([]CronJob, error)

	ListJobsQuery(ctx context.Context, namespace string) ([]Job, error)
	ListPodsQuery(ctx context.Context, namespace string) ([]Pod, error)
}

// Notifier is the port interface for the incident-management endpoint.
type Notifier interface {
	TriggerCommand(ctx context.Context, event AlertEvent) error
	ResolveCommand(ctx context.Context, event AlertEvent) error
}

// Watcher answers scope queries for collected resources.
type Watcher interface {
	IsWatched(kind, namespace, name string) bool
	HasNamespace(namespace string) bool
}

// Scheduler computes the next occurrence of a cron schedule.
type Scheduler interface {
	NextAfter(spec, tz string, after time.Time) (time.Time, error)
}
