package config

import "time"

// Env key constants. All alerter configuration env vars use REPLICA_ALERTER_
// prefix; duration values support explicit units (e.g. 5m, 40s, 2h). The bare
// fallback keys match what the original deployment manifests already export.

// PagerDuty REST API token. Required.
const envKeyPagerDutyToken = "REPLICA_ALERTER_PAGERDUTY_TOKEN"

// PagerDuty Events API v2 routing key. Required.
const envKeyPagerDutyRoutingKey = "REPLICA_ALERTER_PAGERDUTY_ROUTING_KEY"

// Inline watch-list document (JSON or YAML list of {kind?, namespace, name}).
const envKeyWatchJSON = "REPLICA_ALERTER_WATCH_JSON"

// Path to a watch-list document on disk. Ignored when the inline list is set.
const envKeyWatchFile = "REPLICA_ALERTER_WATCH_FILE"

// Restrict all cluster queries to one namespace. Empty lists all namespaces.
const envKeyTargetNamespace = "REPLICA_ALERTER_TARGET_NAMESPACE"

// Path to kubeconfig file. If unset, KUBECONFIG is used as fallback; when
// neither is set the in-cluster config is tried first.
const envKeyKubeConfig = "REPLICA_ALERTER_KUBECONFIG"

// Kubernetes API server URL. If unset, KUBERNETES_MASTER is used as fallback.
const envKeyKubeMaster = "REPLICA_ALERTER_KUBE_MASTER"

// Log level: debug, info, warn, error.
const envKeyLogLevel = "REPLICA_ALERTER_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "REPLICA_ALERTER_LOG_FORMAT"

// Port for health/readiness HTTP server (interval mode only).
const envKeyHTTPPort = "REPLICA_ALERTER_HTTP_PORT"

// Port for Prometheus metrics, GET /metrics (interval mode only).
const envKeyMetricsPort = "REPLICA_ALERTER_METRICS_PORT"

// Pass interval. Unset or 0 runs a single pass and exits, which is the
// intended mode when scheduled externally. Units: s, m, h (e.g. 300s, 5m).
const (
	envKeyInterval = "REPLICA_ALERTER_INTERVAL"
	envMinInterval = 30 * time.Second
)

// Timeout for each outbound call (cluster query, alert send).
const (
	envKeyRequestTimeout     = "REPLICA_ALERTER_REQUEST_TIMEOUT"
	envMinRequestTimeout     = time.Second
	envDefaultRequestTimeout = 30 * time.Second
)

// Standard keys used as fallback when REPLICA_ALERTER_* are unset.
const (
	envKeyPagerDutyTokenFallback      = "PAGERDUTY_TOKEN"
	envKeyPagerDutyRoutingKeyFallback = "PAGERDUTY_ROUTING_KEY"
	envKeyWatchJSONFallback           = "WATCH_JSON"
	envKeyTargetNamespaceFallback     = "TARGET_NAMESPACE"
	envKeyKubeConfigFallback          = "KUBECONFIG"
	envKeyKubeMasterFallback          = "KUBERNETES_MASTER"
)
