// Package metrics provides the observability hooks for sync runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics stay optional:
//
//	syncer := vaultsync.New(cfg) // NoopRecorder
//	syncer = vaultsync.New(cfg, vaultsync.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// A sync is a short-lived process, so PrometheusRecorder exposes its registry
// through WriteTextfile for the node_exporter textfile collector instead of
// serving HTTP.
package metrics
