package jibriqueue

// BusyStatus says whether a worker is currently processing a job.
type BusyStatus string

const (
	// StatusIdle means the worker has no job and can accept one.
	StatusIdle BusyStatus = "idle"
	// StatusBusy means the worker is processing a job.
	StatusBusy BusyStatus = "busy"
)

// HealthStatus is the worker's self-reported health.
type HealthStatus string

const (
	// Healthy means the worker considers itself fit for work.
	Healthy HealthStatus = "healthy"
	// Unhealthy means the worker should not be handed jobs.
	Unhealthy HealthStatus = "unhealthy"
)

// WorkerState is a worker's current status as reported by the caller on
// every publish. It is transient: the tracker persists nothing beyond the
// derived idle presence record.
type WorkerState struct {
	WorkerID string       `json:"worker_id"`
	Busy     BusyStatus   `json:"busy"`
	Health   HealthStatus `json:"health"`
}

// Available reports whether this state makes the worker claimable:
// idle and healthy.
func (s WorkerState) Available() bool {
	return s.Busy == StatusIdle && s.Health == Healthy
}
