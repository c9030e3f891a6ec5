// Package metrics holds the process-wide Prometheus collectors served on
// /metrics. Collectors register with the default registry at init; callers
// use the Record* helpers rather than touching label values directly.
package metrics
