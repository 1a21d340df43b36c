package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamForecastRequest = "stream:analytics:forecast"
	StreamForecastDone    = "stream:analytics:forecast:done"
)

// ForecastJobEvent requests an asynchronous forecast for one municipality/vaccine series.
type ForecastJobEvent struct {
	JobID     uuid.UUID `json:"job_id"`
	Municipio string    `json:"municipio"`
	Vaccine   string    `json:"vaccine"`
}

// Validate reports whether the event carries enough to run a job.
func (e *ForecastJobEvent) Validate() bool {
	return e.JobID != uuid.Nil && e.Municipio != "" && e.Vaccine != ""
}

// ForecastDoneEvent is published once a job finishes, successfully or not.
type ForecastDoneEvent struct {
	JobID     uuid.UUID `json:"job_id"`
	Municipio string    `json:"municipio"`
	Vaccine   string    `json:"vaccine"`
	Forecast  *Forecast `json:"forecast,omitempty"`
	Error     string    `json:"error,omitempty"`
	ErrorCode string    `json:"error_code,omitempty"`
}

// StreamMessage is a raw entry read from a Redis Stream.
type StreamMessage struct {
	ID   string
	Data string
}
