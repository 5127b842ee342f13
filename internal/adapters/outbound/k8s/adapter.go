package k8s

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/skillcoder/replica-alerter/internal/logic/monitor"
)

type adapter struct {
	logger    *slog.Logger
	clientset kubernetes.Interface
	// namespace restricts all-kind listings; empty means all namespaces.
	namespace string
	timeout   time.Duration
}

// New creates a new K8s adapter.
func New(
	logger *slog.Logger,
	clientset kubernetes.Interface,
	namespace string,
	timeout time.Duration,
) monitor.Repository {
	return &adapter{
		logger:    logger,
		clientset: clientset,
		namespace: namespace,
		timeout:   timeout,
	}
}

var _ monitor.Repository = (*adapter)(nil)

func (a *adapter) ListDeploymentsQuery(ctx context.Context) ([]monitor.Deployment, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	list, err := a.clientset.AppsV1().Deployments(a.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list deployments: %w", err)
	}

	out := make([]monitor.Deployment, 0, len(list.Items))
	for i := range list.Items {
		out = append(out, toDomainDeployment(&list.Items[i]))
	}

	return out, nil
}

func (a *adapter) ListReplicaSetsQuery(ctx context.Context) ([]monitor.ReplicaSet, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	list, err := a.clientset.AppsV1().ReplicaSets(a.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list replicasets: %w", err)
	}

	out := make([]monitor.ReplicaSet, 0, len(list.Items))
	for i := range list.Items {
		out = append(out, toDomainReplicaSet(&list.Items[i]))
	}

	return out, nil
}

func (a *adapter) ListDaemonSetsQuery(ctx context.Context) ([]monitor.DaemonSet, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	list, err := a.clientset.AppsV1().DaemonSets(a.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list daemonsets: %w", err)
	}

	out := make([]monitor.DaemonSet, 0, len(list.Items))
	for i := range list.Items {
		out = append(out, toDomainDaemonSet(&list.Items[i]))
	}

	return out, nil
}

func (a *adapter) ListStatefulSetsQuery(ctx context.Context) ([]monitor.StatefulSet, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	list, err := a.clientset.AppsV1().StatefulSets(a.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list statefulsets: %w", err)
	}

	out := make([]monitor.StatefulSet, 0, len(list.Items))
	for i := range list.Items {
		out = append(out, toDomainStatefulSet(&list.Items[i]))
	}

	return out, nil
}

func (a *adapter) ListCronJobsQuery(ctx context.Context) ([]monitor.CronJob, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	list, err := a.clientset.BatchV1().CronJobs(a.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list cronjobs: %w", err)
	}

	out := make([]monitor.CronJob, 0, len(list.Items))
	for i := range list.Items {
		out = append(out, toDomainCronJob(&list.Items[i]))
	}

	return out, nil
}

func (a *adapter) ListJobsQuery(ctx context.Context, namespace string) ([]monitor.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	list, err := a.clientset.BatchV1().Jobs(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	out := make([]monitor.Job, 0, len(list.Items))
	for i := range list.Items {
		out = append(out, toDomainJob(&list.Items[i]))
	}

	return out, nil
}

func (a *adapter) ListPodsQuery(ctx context.Context, namespace string) ([]monitor.Pod, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	list, err := a.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list pods: %w", err)
	}

	out := make([]monitor.Pod, 0, len(list.Items))
	for i := range list.Items {
		out = append(out, toDomainPod(&list.Items[i]))
	}

	return out, nil
}
