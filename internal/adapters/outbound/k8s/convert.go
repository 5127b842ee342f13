package k8s

import (
	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/skillcoder/replica-alerter/internal/logic/monitor"
)

func toDomainDeployment(deployment *appsv1.Deployment) monitor.Deployment {
	return monitor.Deployment{
		Name:              deployment.Name,
		Namespace:         deployment.Namespace,
		DesiredReplicas:   int32Value(deployment.Spec.Replicas),
		AvailableReplicas: deployment.Status.AvailableReplicas,
		ReadyReplicas:     deployment.Status.ReadyReplicas,
	}
}

func toDomainReplicaSet(replicaSet *appsv1.ReplicaSet) monitor.ReplicaSet {
	return monitor.ReplicaSet{
		Name:              replicaSet.Name,
		Namespace:         replicaSet.Namespace,
		DesiredReplicas:   int32Value(replicaSet.Spec.Replicas),
		AvailableReplicas: replicaSet.Status.AvailableReplicas,
		ReadyReplicas:     replicaSet.Status.ReadyReplicas,
	}
}

func toDomainDaemonSet(daemonSet *appsv1.DaemonSet) monitor.DaemonSet {
	return monitor.DaemonSet{
		Name:                   daemonSet.Name,
		Namespace:              daemonSet.Namespace,
		DesiredNumberScheduled: daemonSet.Status.DesiredNumberScheduled,
		NumberReady:            daemonSet.Status.NumberReady,
		CurrentNumberScheduled: daemonSet.Status.CurrentNumberScheduled,
		UpdatedNumberScheduled: daemonSet.Status.UpdatedNumberScheduled,
		NumberMisscheduled:     daemonSet.Status.NumberMisscheduled,
	}
}

func toDomainStatefulSet(statefulSet *appsv1.StatefulSet) monitor.StatefulSet {
	return monitor.StatefulSet{
		Name:            statefulSet.Name,
		Namespace:       statefulSet.Namespace,
		DesiredReplicas: int32Value(statefulSet.Spec.Replicas),
		ReadyReplicas:   statefulSet.Status.ReadyReplicas,
		CurrentReplicas: statefulSet.Status.CurrentReplicas,
		UpdatedReplicas: statefulSet.Status.UpdatedReplicas,
	}
}

func toDomainCronJob(cronJob *batchv1.CronJob) monitor.CronJob {
	out := monitor.CronJob{
		Name:      cronJob.Name,
		Namespace: cronJob.Namespace,
		Schedule:  cronJob.Spec.Schedule,
	}

	if cronJob.Spec.TimeZone != nil {
		out.TimeZone = *cronJob.Spec.TimeZone
	}

	if cronJob.Spec.Suspend != nil {
		out.Suspended = *cronJob.Spec.Suspend
	}

	if cronJob.Status.LastSuccessfulTime != nil {
		lastSuccess := cronJob.Status.LastSuccessfulTime.Time
		out.LastSuccessfulTime = &lastSuccess
	}

	return out
}

func toDomainJob(job *batchv1.Job) monitor.Job {
	owners := make([]monitor.OwnerReference, 0, len(job.OwnerReferences))
	for _, ref := range job.OwnerReferences {
		owners = append(owners, monitor.OwnerReference{
			Kind: ref.Kind,
			Name: ref.Name,
		})
	}

	return monitor.Job{
		Name:            job.Name,
		Namespace:       job.Namespace,
		OwnerReferences: owners,
		Failed:          job.Status.Failed,
	}
}

func toDomainPod(pod *corev1.Pod) monitor.Pod {
	return monitor.Pod{
		Name:      pod.Name,
		Namespace: pod.Namespace,
		Labels:    pod.Labels,
		Phase:     string(pod.Status.Phase),
	}
}

func int32Value(v *int32) int32 {
	if v == nil {
		return 0
	}

	return *v
}
