package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestStaticSource_Sentences(t *testing.T) {
	src := NewStaticSource([]string{"one", "two", "three"})

	got, err := src.Sentences(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(got))
	}
	if got[0] != "one" || got[1] != "two" || got[2] != "three" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestStaticSource_Restartable(t *testing.T) {
	src := NewStaticSource([]string{"a", "b"})

	first, err := src.Sentences(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first[0] = "mutated"

	second, err := src.Sentences(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second[0] != "a" || second[1] != "b" {
		t.Errorf("expected same sequence on re-read, got %v", second)
	}
}

func TestSmokePasses(t *testing.T) {
	passes := SmokePasses()

	if len(passes) != 2 {
		t.Fatalf("expected 2 passes, got %d", len(passes))
	}
	if passes[0].SourceLang != "en" || passes[0].TargetLang != "uk" {
		t.Errorf("expected first pass en→uk, got %s→%s", passes[0].SourceLang, passes[0].TargetLang)
	}
	if passes[1].SourceLang != "uk" || passes[1].TargetLang != "en" {
		t.Errorf("expected second pass uk→en, got %s→%s", passes[1].SourceLang, passes[1].TargetLang)
	}

	first, err := passes[0].Source.Sentences(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 10 {
		t.Errorf("expected 10 sentences in first pass, got %d", len(first))
	}
	if first[0] != "Привіт, світе!" {
		t.Errorf("unexpected first sentence: %q", first[0])
	}

	second, err := passes[1].Source.Sentences(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 10 {
		t.Errorf("expected 10 sentences in second pass, got %d", len(second))
	}
	if second[0] != "Hello, world!" {
		t.Errorf("unexpected first sentence: %q", second[0])
	}
}

func TestCSVSource_Sentences(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.csv")
	content := "id,sentence\n1,Перше речення.\n2,Друге речення.\n3,Третє речення.\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write CSV: %v", err)
	}

	src := NewCSVSource(path, "sentence")

	got, err := src.Sentences(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(got))
	}
	if got[0] != "Перше речення." || got[2] != "Третє речення." {
		t.Errorf("unexpected sentences: %v", got)
	}
}

func TestCSVSource_DefaultColumn(t *testing.T) {
	src := NewCSVSource("data.csv", "")

	if src.Column != DefaultColumn {
		t.Errorf("expected default column %q, got %q", DefaultColumn, src.Column)
	}
}

func TestCSVSource_SkipsEmptyCells(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.csv")
	content := "sentence\nfirst\n\nsecond\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write CSV: %v", err)
	}

	src := NewCSVSource(path, "sentence")

	got, err := src.Sentences(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 sentences, got %d: %v", len(got), got)
	}
}

func TestCSVSource_MissingFile(t *testing.T) {
	src := NewCSVSource("/nonexistent/data.csv", "sentence")

	_, err := src.Sentences(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestCSVSource_MissingColumn(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.csv")
	if err := os.WriteFile(path, []byte("id,text\n1,hello\n"), 0644); err != nil {
		t.Fatalf("failed to write CSV: %v", err)
	}

	src := NewCSVSource(path, "sentence")

	_, err := src.Sentences(context.Background())
	if err == nil {
		t.Fatal("expected error for missing column")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestRemoteCSVSource_Sentences(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("sentence\nПерше.\nДруге.\n"))
	}))
	defer server.Close()

	src := NewRemoteCSVSource(server.URL, "sentence")
	src.Client = server.Client()

	got, err := src.Sentences(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(got))
	}
	if got[0] != "Перше." {
		t.Errorf("unexpected first sentence: %q", got[0])
	}
}

func TestRemoteCSVSource_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	src := NewRemoteCSVSource(server.URL, "sentence")
	src.Client = server.Client()

	_, err := src.Sentences(context.Background())
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestRemoteCSVSource_Unreachable(t *testing.T) {
	src := NewRemoteCSVSource("http://localhost:19999/data.csv", "sentence")
	src.Client = &http.Client{}

	_, err := src.Sentences(context.Background())
	if err == nil {
		t.Fatal("expected error for unreachable host")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestRemoteCSVSource_Defaults(t *testing.T) {
	src := NewRemoteCSVSource("", "")

	if src.URL != DefaultDatasetURL {
		t.Errorf("expected default URL, got %q", src.URL)
	}
	if src.Column != DefaultColumn {
		t.Errorf("expected default column, got %q", src.Column)
	}
}
