package internal

import "time"

type RunRecord struct {
	ID           string    `json:"id"`
	ServiceName  string    `json:"service_name"`
	Endpoint     string    `json:"endpoint"`
	SourceLang   string    `json:"source_lang"`
	TargetLang   string    `json:"target_lang"`
	Dataset      string    `json:"dataset"`
	RequestCount int       `json:"request_count"`
	TotalMs      float64   `json:"total_ms"`
	MeanMs       float64   `json:"mean_ms"`
	MinMs        float64   `json:"min_ms"`
	MaxMs        float64   `json:"max_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

type MeasurementRecord struct {
	RunID          string  `json:"run_id"`
	Seq            int     `json:"seq"`
	SourceText     string  `json:"source_text"`
	TranslatedText string  `json:"translated_text"`
	LatencyMs      float64 `json:"latency_ms"`
}
