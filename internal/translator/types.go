package translator

import (
	"context"
	"encoding/json"
	"time"
)

type ServiceConfig struct {
	Credentials string        `mapstructure:"credentials" json:"credentials"`
	Endpoint    string        `mapstructure:"endpoint" json:"endpoint"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
	ProjectID   string        `mapstructure:"project_id" json:"project_id"`
}

type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// ServiceResult holds one completed translation call. Raw keeps the
// unparsed response body so callers can echo it without interpreting it.
type ServiceResult struct {
	ServiceName    string          `json:"service_name"`
	TranslatedText string          `json:"translated_text"`
	SourceLang     string          `json:"source_lang"`
	TargetLang     string          `json:"target_lang"`
	Latency        time.Duration   `json:"latency"`
	Raw            json.RawMessage `json:"raw,omitempty"`
	Error          string          `json:"error,omitempty"`
}

type TranslationService interface {
	Name() string
	Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error)
	IsAvailable(ctx context.Context) error
}
