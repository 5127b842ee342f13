package monitor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/replica-alerter/internal/logic/monitor"
)

type normalizeCase struct {
	name string
	give string
	want string
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []normalizeCase{
		{
			name: "hash suffix stripped",
			give: "api-7f8b9c",
			want: "api",
		},
		{
			name: "no suffix unchanged",
			give: "api",
			want: "api",
		},
		{
			name: "already normalized stays normalized",
			give: "api",
			want: "api",
		},
		{
			name: "only one segment stripped",
			give: "web-frontend-6d4cf56d",
			want: "web-frontend",
		},
		{
			name: "empty name unchanged",
			give: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, monitor.NormalizeName(tt.give))
		})
	}
}

type evaluateCase struct {
	name         string
	giveMetric   monitor.Metric
	wantTriggers int
	wantResolves int
	wantDedupKey string
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []evaluateCase{
		{
			name: "desired zero is silent",
			giveMetric: monitor.Metric{
				Name: "web", Namespace: "prod", Type: monitor.TypeDeployment,
				DesiredReplicas: 0, AvailableReplicas: 0,
			},
		},
		{
			name: "zero available triggers",
			giveMetric: monitor.Metric{
				Name: "web", Namespace: "prod", Type: monitor.TypeDeployment,
				DesiredReplicas: 3, AvailableReplicas: 0,
			},
			wantTriggers: 1,
			wantDedupKey: "k8s-zero-replicas-prod/web",
		},
		{
			name: "available resolves",
			giveMetric: monitor.Metric{
				Name: "web", Namespace: "prod", Type: monitor.TypeDeployment,
				DesiredReplicas: 3, AvailableReplicas: 1,
			},
			wantResolves: 1,
			wantDedupKey: "k8s-zero-replicas-prod/web",
		},
		{
			name: "generated suffix normalized into the key",
			giveMetric: monitor.Metric{
				Name: "web-6d4cf56d", Namespace: "prod", Type: monitor.TypeReplicaSet,
				DesiredReplicas: 2, AvailableReplicas: 0,
			},
			wantTriggers: 1,
			wantDedupKey: "k8s-zero-replicas-prod/web",
		},
		{
			name: "suspended cronjob encoded as desired zero is silent",
			giveMetric: monitor.Metric{
				Name: "backup", Namespace: "prod", Type: monitor.TypeCronJob,
				DesiredReplicas: 0, AvailableReplicas: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			triggers, resolves := monitor.Evaluate([]monitor.Metric{tt.giveMetric})

			require.Len(t, triggers, tt.wantTriggers)
			require.Len(t, resolves, tt.wantResolves)

			if tt.wantTriggers == 1 {
				require.Equal(t, tt.wantDedupKey, triggers[0].DedupKey)
				require.Equal(t, monitor.ActionTrigger, triggers[0].Action)
			}

			if tt.wantResolves == 1 {
				require.Equal(t, tt.wantDedupKey, resolves[0].DedupKey)
				require.Equal(t, monitor.ActionResolve, resolves[0].Action)
			}
		})
	}
}

func TestEvaluate_TriggerAndResolveShareDedupKey(t *testing.T) {
	t.Parallel()

	down := monitor.Metric{
		Name: "api-7f8b9c", Namespace: "prod", Type: monitor.TypeReplicaSet,
		DesiredReplicas: 2, AvailableReplicas: 0,
	}
	// Same workload after a redeploy under a different generated suffix.
	up := monitor.Metric{
		Name: "api-00ff11", Namespace: "prod", Type: monitor.TypeReplicaSet,
		DesiredReplicas: 2, AvailableReplicas: 2,
	}

	triggers, _ := monitor.Evaluate([]monitor.Metric{down})
	_, resolves := monitor.Evaluate([]monitor.Metric{up})

	require.Len(t, triggers, 1)
	require.Len(t, resolves, 1)
	require.Equal(t, triggers[0].DedupKey, resolves[0].DedupKey)
	require.Equal(t, "prod/api", triggers[0].ResourceKey)
}

func TestEvaluate_ResourceKeyFormat(t *testing.T) {
	t.Parallel()

	metric := monitor.Metric{
		Name: "postgres", Namespace: "db", Type: monitor.TypeStatefulSet,
		DesiredReplicas: 3, AvailableReplicas: 3,
	}

	_, resolves := monitor.Evaluate([]monitor.Metric{metric})
	require.Len(t, resolves, 1)
	require.Equal(t, "db/postgres", resolves[0].ResourceKey)
	require.Equal(t, monitor.TypeStatefulSet, resolves[0].ResourceType)
}
