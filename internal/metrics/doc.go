// Package metrics instruments prime computation runs. Metrics records job
// lifecycle counters in a private Prometheus registry and can dump them in
// the text exposition format; MemoryCollector samples runtime memory for the
// detailed CLI report.
package metrics
