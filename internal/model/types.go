package model

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// NewVersionedRecord stamps the current schema and codec versions.
func NewVersionedRecord() VersionedRecord {
	return VersionedRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
	}
}

// RunRecord summarizes one completed evolution run.
type RunRecord struct {
	VersionedRecord
	RunID          string  `json:"run_id"`
	Problem        string  `json:"problem"`
	Seed           int64   `json:"seed"`
	PopulationSize int     `json:"population_size"`
	SurvivalRate   float64 `json:"survival_rate"`
	Generations    int     `json:"generations"`
	Evaluations    int     `json:"evaluations"`
	BestFitness    float64 `json:"best_fitness"`
	CreatedAtUTC   string  `json:"created_at_utc"`
}

// GenerationDiagnostics aggregates one generation's population statistics.
type GenerationDiagnostics struct {
	Generation  int     `json:"generation"`
	BestFitness float64 `json:"best_fitness"`
	MeanFitness float64 `json:"mean_fitness"`
	MinFitness  float64 `json:"min_fitness"`
	Unique      int     `json:"unique"`
	DurationMS  float64 `json:"duration_ms"`
}
