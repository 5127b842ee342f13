package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/skillcoder/replica-alerter/internal/infra/metrics"
)

// collectResult is one kind's collection outcome. A failed kind carries its
// reason instead of raising; the orchestrator logs it and moves on so a single
// kind can never abort the whole run.
type collectResult struct {
	kind    ResourceType
	metrics []Metric
	err     error
}

func (s *Service) collectAll(ctx context.Context) []Metric {
	results := []collectResult{
		s.collectDeployments(ctx),
		s.collectReplicaSets(ctx),
		s.collectDaemonSets(ctx),
		s.collectStatefulSets(ctx),
		s.collectCronJobs(ctx),
	}

	var all []Metric

	for _, result := range results {
		if result.err != nil {
			s.logger.ErrorContext(ctx, "collector failed",
				"kind", result.kind,
				"reason", result.err,
			)
			metrics.RecordCollectFailure(string(result.kind))

			continue
		}

		metrics.RecordResourcesCollected(string(result.kind), len(result.metrics))
		all = append(all, result.metrics...)
	}

	return all
}

func (s *Service) collectDeployments(ctx context.Context) collectResult {
	deployments, err := s.repo.ListDeploymentsQuery(ctx)
	if err != nil {
		return collectResult{kind: TypeDeployment, err: fmt.Errorf("list deployments: %w", err)}
	}

	now := time.Now()
	out := make([]Metric, 0, len(deployments))

	for i := range deployments {
		deployment := deployments[i]
		if !s.watcher.IsWatched(string(TypeDeployment), deployment.Namespace, deployment.Name) {
			continue
		}

		out = append(out, Metric{
			Name:              deployment.Name,
			Namespace:         deployment.Namespace,
			Type:              TypeDeployment,
			DesiredReplicas:   deployment.DesiredReplicas,
			AvailableReplicas: deployment.AvailableReplicas,
			ReadyReplicas:     deployment.ReadyReplicas,
			Timestamp:         now,
		})

		s.logger.InfoContext(ctx, "deployment collected",
			"namespace", deployment.Namespace,
			"name", deployment.Name,
			"available", deployment.AvailableReplicas,
			"desired", deployment.DesiredReplicas,
		)
	}

	return collectResult{kind: TypeDeployment, metrics: out}
}

func (s *Service) collectReplicaSets(ctx context.Context) collectResult {
	replicaSets, err := s.repo.ListReplicaSetsQuery(ctx)
	if err != nil {
		return collectResult{kind: TypeReplicaSet, err: fmt.Errorf("list replicasets: %w", err)}
	}

	now := time.Now()
	out := make([]Metric, 0, len(replicaSets))

	for i := range replicaSets {
		replicaSet := replicaSets[i]

		// Wider match than other kinds: an explicit replicaset entry
		// matches, and so does any replicaset in a mentioned namespace.
		if !s.watcher.IsWatched(string(TypeReplicaSet), replicaSet.Namespace, replicaSet.Name) &&
			!s.watcher.HasNamespace(replicaSet.Namespace) {
			continue
		}

		// Scaled to zero, usually a superseded revision.
		if replicaSet.DesiredReplicas == 0 {
			continue
		}

		out = append(out, Metric{
			Name:              replicaSet.Name,
			Namespace:         replicaSet.Namespace,
			Type:              TypeReplicaSet,
			DesiredReplicas:   replicaSet.DesiredReplicas,
			AvailableReplicas: replicaSet.AvailableReplicas,
			ReadyReplicas:     replicaSet.ReadyReplicas,
			Timestamp:         now,
		})
	}

	return collectResult{kind: TypeReplicaSet, metrics: out}
}

func (s *Service) collectDaemonSets(ctx context.Context) collectResult {
	daemonSets, err := s.repo.ListDaemonSetsQuery(ctx)
	if err != nil {
		return collectResult{kind: TypeDaemonSet, err: fmt.Errorf("list daemonsets: %w", err)}
	}

	now := time.Now()
	out := make([]Metric, 0, len(daemonSets))

	for i := range daemonSets {
		daemonSet := daemonSets[i]
		if !s.watcher.IsWatched(string(TypeDaemonSet), daemonSet.Namespace, daemonSet.Name) {
			continue
		}

		out = append(out, Metric{
			Name:      daemonSet.Name,
			Namespace: daemonSet.Namespace,
			Type:      TypeDaemonSet,
			// A daemonset has no availableReplicas; numberReady stands in.
			DesiredReplicas:   daemonSet.DesiredNumberScheduled,
			AvailableReplicas: daemonSet.NumberReady,
			ReadyReplicas:     daemonSet.NumberReady,
			Timestamp:         now,
			DaemonSet: &DaemonSetDetail{
				CurrentNumberScheduled: daemonSet.CurrentNumberScheduled,
				UpdatedNumberScheduled: daemonSet.UpdatedNumberScheduled,
				NumberMisscheduled:     daemonSet.NumberMisscheduled,
			},
		})

		s.logger.InfoContext(ctx, "daemonset collected",
			"namespace", daemonSet.Namespace,
			"name", daemonSet.Name,
			"ready", daemonSet.NumberReady,
			"desired", daemonSet.DesiredNumberScheduled,
			"current", daemonSet.CurrentNumberScheduled,
			"updated", daemonSet.UpdatedNumberScheduled,
			"misscheduled", daemonSet.NumberMisscheduled,
		)
	}

	return collectResult{kind: TypeDaemonSet, metrics: out}
}

func (s *Service) collectStatefulSets(ctx context.Context) collectResult {
	statefulSets, err := s.repo.ListStatefulSetsQuery(ctx)
	if err != nil {
		return collectResult{kind: TypeStatefulSet, err: fmt.Errorf("list statefulsets: %w", err)}
	}

	now := time.Now()
	out := make([]Metric, 0, len(statefulSets))

	for i := range statefulSets {
		statefulSet := statefulSets[i]
		if !s.watcher.IsWatched(string(TypeStatefulSet), statefulSet.Namespace, statefulSet.Name) {
			continue
		}

		out = append(out, Metric{
			Name:      statefulSet.Name,
			Namespace: statefulSet.Namespace,
			Type:      TypeStatefulSet,
			// readyReplicas stands in for available here as well.
			DesiredReplicas:   statefulSet.DesiredReplicas,
			AvailableReplicas: statefulSet.ReadyReplicas,
			ReadyReplicas:     statefulSet.ReadyReplicas,
			Timestamp:         now,
			StatefulSet: &StatefulSetDetail{
				CurrentReplicas: statefulSet.CurrentReplicas,
				UpdatedReplicas: statefulSet.UpdatedReplicas,
			},
		})

		s.logger.InfoContext(ctx, "statefulset collected",
			"namespace", statefulSet.Namespace,
			"name", statefulSet.Name,
			"ready", statefulSet.ReadyReplicas,
			"desired", statefulSet.DesiredReplicas,
		)
	}

	return collectResult{kind: TypeStatefulSet, metrics: out}
}

func (s *Service) collectCronJobs(ctx context.Context) collectResult {
	cronJobs, err := s.repo.ListCronJobsQuery(ctx)
	if err != nil {
		return collectResult{kind: TypeCronJob, err: fmt.Errorf("list cronjobs: %w", err)}
	}

	now := time.Now()
	out := make([]Metric, 0, len(cronJobs))

	for i := range cronJobs {
		cronJob := cronJobs[i]
		if !s.watcher.IsWatched(string(TypeCronJob), cronJob.Namespace, cronJob.Name) {
			continue
		}

		out = append(out, s.cronJobMetric(ctx, cronJob, now))
	}

	return collectResult{kind: TypeCronJob, metrics: out}
}

// cronJobMetric encodes schedule health into the uniform replica shape:
// desired is 1 unless suspended, available is 1 only when the schedule is
// healthy. Healthy means not suspended, at least one recorded success, and no
// failed owned jobs or pods right now.
func (s *Service) cronJobMetric(ctx context.Context, cronJob CronJob, now time.Time) Metric {
	logger := s.logger.With("namespace", cronJob.Namespace, "name", cronJob.Name)

	var desired int32
	if !cronJob.Suspended {
		desired = 1
	}

	failedJobs, failedPods := s.cronJobFailures(ctx, logger, cronJob)

	healthy := !cronJob.Suspended &&
		cronJob.LastSuccessfulTime != nil &&
		failedJobs == 0 &&
		failedPods == 0

	var available int32
	if healthy {
		available = 1
	}

	detail := &CronJobDetail{
		Suspended:          cronJob.Suspended,
		Schedule:           cronJob.Schedule,
		LastSuccessfulTime: cronJob.LastSuccessfulTime,
		FailedJobs:         failedJobs,
		FailedPods:         failedPods,
	}

	if cronJob.Schedule != "" {
		next, err := s.scheduler.NextAfter(cronJob.Schedule, cronJob.TimeZone, now)
		if err != nil {
			logger.WarnContext(ctx, "failed to parse cronjob schedule", "reason", err)
		} else {
			detail.NextScheduledTime = &next
		}
	}

	logger.InfoContext(ctx, "cronjob collected",
		"enabled", !cronJob.Suspended,
		"lastSuccess", cronJob.LastSuccessfulTime,
		"failedJobs", failedJobs,
		"failedPods", failedPods,
		"available", available,
	)

	return Metric{
		Name:              cronJob.Name,
		Namespace:         cronJob.Namespace,
		Type:              TypeCronJob,
		DesiredReplicas:   desired,
		AvailableReplicas: available,
		ReadyReplicas:     available,
		Timestamp:         now,
		CronJob:           detail,
	}
}

// cronJobFailures counts failed owned jobs and failed/unknown pods of those
// jobs. Listing errors are warnings, not failures: an infrastructure hiccup in
// the health check itself must not trigger an alert.
func (s *Service) cronJobFailures(
	ctx context.Context,
	logger *slog.Logger,
	cronJob CronJob,
) (failedJobs, failedPods int) {
	jobs, err := s.repo.ListJobsQuery(ctx, cronJob.Namespace)
	if err != nil {
		logger.WarnContext(ctx, "failed to list jobs for cronjob", "reason", err)

		return 0, 0
	}

	ownedJobs := make(map[string]struct{})

	for i := range jobs {
		job := jobs[i]
		for _, ref := range job.OwnerReferences {
			if ref.Kind != cronJobOwnerKind || ref.Name != cronJob.Name {
				continue
			}

			ownedJobs[job.Name] = struct{}{}

			if job.Failed > 0 {
				failedJobs++
			}
		}
	}

	if len(ownedJobs) == 0 {
		return failedJobs, 0
	}

	pods, err := s.repo.ListPodsQuery(ctx, cronJob.Namespace)
	if err != nil {
		logger.WarnContext(ctx, "failed to list pods for cronjob", "reason", err)

		return failedJobs, 0
	}

	for i := range pods {
		pod := pods[i]

		jobName, ok := pod.Labels[jobNameLabel]
		if !ok {
			continue
		}

		if _, owned := ownedJobs[jobName]; !owned {
			continue
		}

		switch strings.ToLower(pod.Phase) {
		case podPhaseFailed, podPhaseUnknown:
			failedPods++
		}
	}

	return failedJobs, failedPods
}
