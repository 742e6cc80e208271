package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
	if Named("pipeline") == nil {
		t.Fatal("named logger is nil")
	}
}

func TestLoggerTextOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().Info(context.Background(), "dispatch", String("url", "/employees/"), Int("status", 200))

	out := buf.String()
	if !strings.Contains(out, "msg=dispatch") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "url=/employees/") {
		t.Errorf("expected url field in output, got %q", out)
	}
	if !strings.Contains(out, "logger_test.go") {
		t.Errorf("expected caller source in output, got %q", out)
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithWriter(&buf), WithFormat(FormatJSON))
	if err := SetLevelString("info"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Named("transport").Warn(context.Background(), "slow", Duration("elapsed", 2*time.Second), Bool("timeout", false))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	group, ok := rec["transport"].(map[string]any)
	if !ok {
		t.Fatalf("expected transport group, got %v", rec)
	}
	if group["elapsed"] != "2s" {
		t.Errorf("expected elapsed=2s, got %v", group["elapsed"])
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithWriter(&buf))

	if err := SetLevelString("warn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = SetLevelString("info") }()

	l.Info(context.Background(), "hidden")
	l.Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info/debug to be filtered, got %q", buf.String())
	}

	l.Error(context.Background(), "shown", Error(errors.New("boom")))
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("expected error output, got %q", buf.String())
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error(context.Background(), "discarded")
	l.Named("x").Info(context.TODO(), "discarded")
}
