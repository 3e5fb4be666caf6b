// Package config defines the canonical, JSON-serializable configuration
// model for a load run. It is intentionally small, explicit, and free of
// third-party dependencies so a run can be described by flags or by a JSON
// file and passed through the program without glue code.
package config

// Config describes one load run.
type Config struct {
	// Job names the run for metrics labeling and log lines. Defaults to
	// "arxiv_load" when left empty.
	Job string `json:"job"`

	// InputPath is the NDJSON metadata dump to load.
	InputPath string `json:"input_path"`

	// OutputPath is the destination SQLite file. Ignored when Storage.Kind
	// is not "sqlite" or Storage.DSN is set explicitly.
	OutputPath string `json:"output_path"`

	// BatchSize is the number of records per processing batch. Must be >= 1.
	BatchSize int `json:"batch_size"`

	// AllowExisting permits loading into a destination that already exists,
	// replaying on top of prior rows; duplicate keys are dropped by the
	// conflict-handling append. Off by default: a fresh load into an
	// existing file is usually a mistake.
	AllowExisting bool `json:"allow_existing"`

	// Storage selects and configures the destination backend.
	Storage Storage `json:"storage"`
}

// Storage selects the destination backend.
type Storage struct {
	// Kind selects the backend implementation: "sqlite" (default) or
	// "postgres".
	Kind string `json:"kind"`

	// DSN overrides the connection string. For SQLite it defaults to
	// OutputPath; for Postgres it is required.
	DSN string `json:"dsn"`
}

// DefaultBatchSize is used when the caller does not set a batch size.
const DefaultBatchSize = 10000

// StorageDSN resolves the effective connection string: an explicit DSN wins,
// otherwise the SQLite backend falls back to the output path.
func (c Config) StorageDSN() string {
	if c.Storage.DSN != "" {
		return c.Storage.DSN
	}
	if c.Storage.Kind == "sqlite" {
		return c.OutputPath
	}
	return ""
}
