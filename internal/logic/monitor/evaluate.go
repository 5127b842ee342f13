package monitor

import "regexp"

// trailingHashPattern matches one generated name suffix, e.g. the pod-template
// hash a deployment appends to its replicasets.
var trailingHashPattern = regexp.MustCompile(`-[a-zA-Z0-9]+$`)

// NormalizeName strips a single trailing -<alphanumeric> segment so that the
// resource identity stays stable across redeployments that change the
// generated suffix. Names without such a segment are returned unchanged.
func NormalizeName(name string) string {
	return trailingHashPattern.ReplaceAllString(name, "")
}

// Evaluate classifies metrics into trigger and resolve events. The rule is
// uniform across kinds because each collector already mapped "desired" and
// "available" to capacity required vs capacity present:
//
//   - desired == 0: no event either way (scaled to zero, suspended schedule)
//   - available == 0: trigger
//   - otherwise: resolve
//
// Name normalization is applied exactly once, before the resource key and the
// dedup key are derived, so both sides of a trigger/resolve pair use the same
// key regardless of which generated suffix the resource carried at the time.
func Evaluate(metrics []Metric) (triggers, resolves []AlertEvent) {
	for i := range metrics {
		metric := metrics[i]

		if metric.DesiredReplicas == 0 {
			continue
		}

		metric.Name = NormalizeName(metric.Name)
		resourceKey := metric.Namespace + "/" + metric.Name

		event := AlertEvent{
			ResourceKey:  resourceKey,
			ResourceType: metric.Type,
			DedupKey:     DedupKeyPrefix + resourceKey,
			Metric:       metric,
		}

		if metric.AvailableReplicas == 0 {
			event.Action = ActionTrigger
			triggers = append(triggers, event)

			continue
		}

		event.Action = ActionResolve
		resolves = append(resolves, event)
	}

	return triggers, resolves
}
