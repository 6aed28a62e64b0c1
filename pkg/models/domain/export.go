package domain

import "time"

// RenderedTable is the tabular projection of one export run.
type RenderedTable struct {
	Headers []string
	Rows    [][]string

	// MinDate/MaxDate track the earliest and latest order creation timestamp
	// seen across all rows, independent of the selected columns. Nil when no
	// row carried a parsable timestamp.
	MinDate *time.Time
	MaxDate *time.Time
}

// Artifact is a rendered export document. Bytes holds the in-memory content;
// Path is set only after the artifact has been persisted to disk.
type Artifact struct {
	Format   FileFormat
	Filename string
	Bytes    []byte
	Path     string
}

// DeliveryResult reports the outcome of the two delivery sinks.
type DeliveryResult struct {
	FilePersisted bool
	EmailSent     bool
}

// StageNote records a degradation inside a pipeline stage. The run still
// completes; callers inspect notes to see what fell back or failed.
type StageNote struct {
	Stage string
	Err   error
}

// RunResult summarizes one pipeline run.
type RunResult struct {
	RunID    string
	Records  int
	Headers  []string
	Artifact *Artifact
	Delivery DeliveryResult
	Skipped  bool // module disabled or no matching orders
	Degraded []StageNote
}
