package monitor

import "time"

// ResourceType identifies the workload kind a Metric was collected from.
type ResourceType string

const (
	TypeDeployment  ResourceType = "deployment"
	TypeReplicaSet  ResourceType = "replicaset"
	TypeDaemonSet   ResourceType = "daemonset"
	TypeStatefulSet ResourceType = "statefulset"
	TypeCronJob     ResourceType = "cronjob"
)

// Metric is the uniform health record every collector produces. It is created
// fresh each run, consumed once by evaluation and then discarded.
//
// AvailableReplicas is this system's capacity-confirmed count, which is not
// always the API object's own availableReplicas field: DaemonSets report
// numberReady here and StatefulSets report readyReplicas. CronJobs encode
// health as 0/1 in both desired and available.
type Metric struct {
	Name              string       `json:"name"`
	Namespace         string       `json:"namespace"`
	Type              ResourceType `json:"type"`
	DesiredReplicas   int32        `json:"desired_replicas"`
	AvailableReplicas int32        `json:"available_replicas"`
	ReadyReplicas     int32        `json:"ready_replicas"`
	Timestamp         time.Time    `json:"timestamp"`

	DaemonSet   *DaemonSetDetail   `json:"daemonset,omitempty"`
	StatefulSet *StatefulSetDetail `json:"statefulset,omitempty"`
	CronJob     *CronJobDetail     `json:"cronjob,omitempty"`
}

// DaemonSetDetail carries scheduling diagnostics for daemonset metrics.
type DaemonSetDetail struct {
	CurrentNumberScheduled int32 `json:"current_number_scheduled"`
	UpdatedNumberScheduled int32 `json:"updated_number_scheduled"`
	NumberMisscheduled     int32 `json:"number_misscheduled"`
}

// StatefulSetDetail carries rollout diagnostics for statefulset metrics.
type StatefulSetDetail struct {
	CurrentReplicas int32 `json:"current_replicas"`
	UpdatedReplicas int32 `json:"updated_replicas"`
}

// CronJobDetail carries the inputs of the cronjob health decision.
type CronJobDetail struct {
	Suspended          bool       `json:"suspended"`
	Schedule           string     `json:"schedule,omitempty"`
	LastSuccessfulTime *time.Time `json:"last_successful_time,omitempty"`
	NextScheduledTime  *time.Time `json:"next_scheduled_time,omitempty"`
	FailedJobs         int        `json:"failed_jobs"`
	FailedPods         int        `json:"failed_pods"`
}

// Domain views of cluster objects returned by the Repository port.

type Deployment struct {
	Name              string
	Namespace         string
	DesiredReplicas   int32
	AvailableReplicas int32
	ReadyReplicas     int32
}

type ReplicaSet struct {
	Name              string
	Namespace         string
	DesiredReplicas   int32
	AvailableReplicas int32
	ReadyReplicas     int32
}

type DaemonSet struct {
	Name                   string
	Namespace              string
	DesiredNumberScheduled int32
	NumberReady            int32
	CurrentNumberScheduled int32
	UpdatedNumberScheduled int32
	NumberMisscheduled     int32
}

type StatefulSet struct {
	Name            string
	Namespace       string
	DesiredReplicas int32
	ReadyReplicas   int32
	CurrentReplicas int32
	UpdatedReplicas int32
}

type CronJob struct {
	Name               string
	Namespace          string
	Schedule           string
	TimeZone           string
	Suspended          bool
	LastSuccessfulTime *time.Time
}

// OwnerReference identifies a controlling object of a Job.
type OwnerReference struct {
	Kind string
	Name string
}

type Job struct {
	Name            string
	Namespace       string
	OwnerReferences []OwnerReference
	Failed          int32
}

type Pod struct {
	Name      string
	Namespace string
	Labels    map[string]string
	Phase     string
}

// AlertAction is the direction of an alert event.
type AlertAction string

const (
	ActionTrigger AlertAction = "trigger"
	ActionResolve AlertAction = "resolve"
)

// AlertEvent is one classified alert, ephemeral to a single run. The dedup key
// is identical for the trigger and the resolve of the same resource; the
// incident endpoint correlates the two through it.
type AlertEvent struct {
	ResourceKey  string
	ResourceType ResourceType
	DedupKey     string
	Action       AlertAction
	Metric       Metric
}

// RunSummary reports the outcome of one collection/evaluation/dispatch pass.
type RunSummary struct {
	CompletedAt      time.Time `json:"completedAt"`
	MetricsCollected int       `json:"metricsCollected"`
	TriggersSent     int       `json:"triggersSent"`
	ResolvesSent     int       `json:"resolvesSent"`
	DispatchFailures int       `json:"dispatchFailures"`
}
