/*
Package observability provides Prometheus instrumentation for the field extractor.

It counts records by variant, source and outcome, times the transformations and
tracks how STDIN sections end, so a long-running server (fieldprint serve) can be
scraped on /metrics.
*/
package observability
