package monitor

const (
	// DedupKeyPrefix prefixes every dedup key sent to the incident endpoint.
	// Changing it orphans any incident triggered under the old format.
	DedupKeyPrefix = "k8s-zero-replicas-"

	// jobNameLabel is the label the job controller stamps on pods it creates.
	jobNameLabel = "job-name"

	// cronJobOwnerKind matches owner references of jobs created by a cronjob.
	cronJobOwnerKind = "CronJob"

	podPhaseFailed  = "failed"
	podPhaseUnknown = "unknown"
)
