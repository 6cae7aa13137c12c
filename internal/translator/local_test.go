package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLocalService_Translate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"translated_text": "Привіт, світе!",
			"source_lang":     "en",
			"target_lang":     "uk",
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := &LocalService{
		endpoint: server.URL,
		client:   server.Client(),
	}

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello, world!",
		SourceLang: "en",
		TargetLang: "uk",
	})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if result.TranslatedText != "Привіт, світе!" {
		t.Errorf("expected 'Привіт, світе!', got %q", result.TranslatedText)
	}
	if result.SourceLang != "en" || result.TargetLang != "uk" {
		t.Errorf("expected en/uk langs, got %s/%s", result.SourceLang, result.TargetLang)
	}
	if len(result.Raw) == 0 {
		t.Error("expected raw response body to be retained")
	}
	if result.Latency <= 0 {
		t.Error("expected positive latency")
	}
}

func TestLocalService_Translate_RequestBody(t *testing.T) {
	var got TranslateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"translated_text": "ok"})
	}))
	defer server.Close()

	svc := &LocalService{
		endpoint: server.URL,
		client:   server.Client(),
	}

	_, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Як справи?",
		SourceLang: "uk",
		TargetLang: "en",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Text != "Як справи?" {
		t.Errorf("expected text 'Як справи?', got %q", got.Text)
	}
	if got.SourceLang != "uk" || got.TargetLang != "en" {
		t.Errorf("expected uk/en langs, got %s/%s", got.SourceLang, got.TargetLang)
	}
}

func TestLocalService_Translate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Something went wrong"))
	}))
	defer server.Close()

	svc := &LocalService{
		endpoint: server.URL,
		client:   server.Client(),
	}

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "uk",
	})

	if err == nil {
		t.Error("expected error for non-OK status")
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if result.Error == "" {
		t.Error("expected error message in result")
	}
}

func TestLocalService_Translate_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	svc := &LocalService{
		endpoint: server.URL,
		client:   server.Client(),
	}

	_, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "uk",
	})

	if err == nil {
		t.Error("expected error for malformed response body")
	}
}

func TestLocalService_Translate_ConfigEndpointOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"translated_text": "ok"})
	}))
	defer server.Close()

	svc := &LocalService{
		endpoint: "http://localhost:19999/translate",
		client:   server.Client(),
	}

	_, err := svc.Translate(context.Background(), ServiceConfig{Endpoint: server.URL}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "uk",
	})
	if err != nil {
		t.Errorf("expected config endpoint to be used, got error: %v", err)
	}
}

func TestLocalService_IsAvailable_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := &LocalService{
		endpoint: server.URL,
		client:   server.Client(),
	}

	if err := svc.IsAvailable(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLocalService_IsAvailable_NotRunning(t *testing.T) {
	svc := NewLocalService("http://localhost:19999/translate")

	if err := svc.IsAvailable(context.Background()); err == nil {
		t.Error("expected error when server not available")
	}
}

func TestLocalService_Name(t *testing.T) {
	svc := NewLocalService("")

	if svc.Name() != "local" {
		t.Errorf("expected 'local', got %q", svc.Name())
	}
}

func TestLocalService_DefaultEndpoint(t *testing.T) {
	svc := NewLocalService("")

	if svc.endpoint != DefaultEndpoint {
		t.Errorf("expected default endpoint %q, got %q", DefaultEndpoint, svc.endpoint)
	}
}

func TestGoogleService_Name(t *testing.T) {
	svc := NewGoogleService()

	if svc.Name() != "google" {
		t.Errorf("expected 'google', got %q", svc.Name())
	}
}

func TestGoogleService_Translate_InvalidTargetLang(t *testing.T) {
	svc := NewGoogleService()

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "not-a-lang-code",
	})

	if err == nil {
		t.Error("expected error for invalid target language")
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if result.Error == "" {
		t.Error("expected error message in result")
	}
}
