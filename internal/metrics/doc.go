// Package metrics provides build and preview metrics for pagebuilder.
//
// Components receive a Recorder through dependency injection. The one-shot
// build command uses NoopRecorder; the preview server swaps in a
// PrometheusRecorder and exposes it via HTTPHandler:
//
//	reg := prometheus.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	p := pipeline.New(cfg, pipeline.WithRecorder(recorder))
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
