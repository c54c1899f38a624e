// Package telemetry adapts vivaldi.MetricsCollector to Prometheus and to
// armon/go-metrics, the metrics library used across the HashiCorp stack.
//
//	collector := telemetry.NewPrometheusCollector(prometheus.DefaultRegisterer)
//	client := vivaldi.NewClient[vector.Dimension3](vivaldi.WithMetricsCollector(collector))
package telemetry
