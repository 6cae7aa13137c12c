package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is where the self-hosted translation server listens.
const DefaultEndpoint = "http://127.0.0.1:3000/translate"

// LocalService talks to the self-hosted llama.cpp translation server.
// The server exposes a single POST route taking the text and a language
// pair and returning the translated text.
type LocalService struct {
	endpoint string
	client   *http.Client
}

func NewLocalService(endpoint string) *LocalService {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &LocalService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *LocalService) Name() string {
	return "local"
}

func (s *LocalService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	endpoint := s.endpoint
	if cfg.Endpoint != "" {
		endpoint = cfg.Endpoint
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		result.Error = fmt.Sprintf("failed to marshal request: %v", err)
		return result, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		return result, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read response: %v", err)
		return result, err
	}

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Sprintf("server returned status %d: %s", resp.StatusCode, string(body))
		return result, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var serverResp struct {
		TranslatedText string `json:"translated_text"`
		SourceLang     string `json:"source_lang"`
		TargetLang     string `json:"target_lang"`
	}
	if err := json.Unmarshal(body, &serverResp); err != nil {
		result.Error = fmt.Sprintf("failed to decode response: %v", err)
		return result, err
	}

	result.TranslatedText = serverResp.TranslatedText
	result.SourceLang = serverResp.SourceLang
	result.TargetLang = serverResp.TargetLang
	result.Raw = json.RawMessage(body)

	return result, nil
}

func (s *LocalService) IsAvailable(ctx context.Context) error {
	req, _ := http.NewRequestWithContext(ctx, "OPTIONS", s.endpoint, nil)
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("translation server not available: %v", err)
	}
	defer resp.Body.Close()
	return nil
}
