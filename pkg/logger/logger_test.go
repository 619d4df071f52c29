package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize text logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithFormat("json")); err != nil {
		t.Fatalf("failed to initialize json logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithFormat("xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithFormat("json"), WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	Named("engine").Info(context.Background(), "phase simulated", String("phase", "day"), Int("events", 7))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "phase simulated" {
		t.Errorf("unexpected msg: %v", entry["msg"])
	}
	if entry["logger"] != "engine" {
		t.Errorf("unexpected logger name: %v", entry["logger"])
	}
	if entry["phase"] != "day" {
		t.Errorf("unexpected phase: %v", entry["phase"])
	}
	src, _ := entry["source"].(string)
	if !strings.Contains(src, "logger_test.go") {
		t.Errorf("source should point at the caller, got %q", src)
	}
}

func TestLoggerFieldKinds(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithFormat("json"), WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().Info(context.Background(), "batch finished",
		Float64("mean_days", 4.5),
		Duration("elapsed", 2*time.Second),
		Strings("top_killers", []string{"Cato", "Clove"}),
		Bool("won", true),
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	if entry["mean_days"] != 4.5 {
		t.Errorf("unexpected mean_days: %v", entry["mean_days"])
	}
	if entry["elapsed"] != float64(2*time.Second) {
		t.Errorf("unexpected elapsed: %v", entry["elapsed"])
	}
	names, _ := entry["top_killers"].([]any)
	if len(names) != 2 || names[0] != "Cato" || names[1] != "Clove" {
		t.Errorf("unexpected top_killers: %v", entry["top_killers"])
	}
	if entry["won"] != true {
		t.Errorf("unexpected won: %v", entry["won"])
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	ctx := context.Background()

	Get().Debug(ctx, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info level, got %q", buf.String())
	}

	if err := SetLevelString("debug"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Get().Debug(ctx, "visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("debug entry missing: %q", buf.String())
	}

	for _, lvl := range []string{"info", "WARN", "warning", "error", ""} {
		if err := SetLevelString(lvl); err != nil {
			t.Errorf("level %q: unexpected error %v", lvl, err)
		}
	}
	if err := SetLevelString("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info(context.Background(), "dropped", String("k", "v"))
	if l.Named("x") == nil {
		t.Fatal("named nop logger is nil")
	}
}
