package metrics

import "time"

// RecordHarvestJob records one harvest job run. Status should be "started",
// "success", or "failure".
func RecordHarvestJob(status string) {
	HarvestJobsTotal.WithLabelValues(status).Inc()
}

// RecordHarvestDuration records the end-to-end duration of a harvest job.
func RecordHarvestDuration(duration time.Duration) {
	HarvestJobDuration.Observe(duration.Seconds())
}

// RecordSearchResults records how many candidates a query returned.
func RecordSearchResults(query string, count int) {
	SearchResultsTotal.WithLabelValues(query).Add(float64(count))
}

// RecordItemIngested records one news item created in storage.
func RecordItemIngested() {
	ItemsIngestedTotal.Inc()
}

// RecordItemDuplicated records one candidate skipped by the dedup gate.
func RecordItemDuplicated() {
	ItemsDuplicatedTotal.Inc()
}

// RecordGenerationCall records the outcome of a single generation backend
// call. Kind is "summary" or a lowercased CEFR level.
func RecordGenerationCall(kind string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	GenerationCallsTotal.WithLabelValues(kind, status).Inc()
	GenerationDuration.Observe(duration.Seconds())
}
