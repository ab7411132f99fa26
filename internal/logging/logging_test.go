package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  zerolog.Level
	}{
		{name: "empty defaults to info", input: "", want: zerolog.InfoLevel},
		{name: "info", input: "info", want: zerolog.InfoLevel},
		{name: "debug", input: "debug", want: zerolog.DebugLevel},
		{name: "trace", input: "trace", want: zerolog.TraceLevel},
		{name: "warn", input: "warn", want: zerolog.WarnLevel},
		{name: "warning alias", input: "warning", want: zerolog.WarnLevel},
		{name: "error", input: "error", want: zerolog.ErrorLevel},
		{name: "fatal", input: "fatal", want: zerolog.FatalLevel},
		{name: "disabled", input: "disabled", want: zerolog.Disabled},
		{name: "mixed case with spaces", input: "  DeBuG  ", want: zerolog.DebugLevel},
		{name: "unknown falls back to info", input: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSelectWriter(t *testing.T) {
	if w := selectWriter("json"); w != os.Stderr {
		t.Errorf("selectWriter(json) = %#v, want os.Stderr", w)
	}
	if _, ok := selectWriter("console").(zerolog.ConsoleWriter); !ok {
		t.Error("selectWriter(console) did not return a console writer")
	}
	// Unknown formats fall back to plain JSON output.
	if w := selectWriter("xml"); w != os.Stderr {
		t.Errorf("selectWriter(xml) = %#v, want os.Stderr", w)
	}
}

func TestWithRequestID(t *testing.T) {
	ctx, id := WithRequestID(context.Background(), "req-42")
	if id != "req-42" {
		t.Fatalf("expected supplied ID to be kept, got %q", id)
	}
	if got := RequestIDFrom(ctx); got != "req-42" {
		t.Fatalf("RequestIDFrom = %q, want req-42", got)
	}

	_, generated := WithRequestID(context.Background(), "   ")
	if strings.TrimSpace(generated) == "" {
		t.Fatal("expected a generated ID for blank input")
	}

	ctx2, id2 := WithRequestID(nil, "")
	if ctx2 == nil || id2 == "" {
		t.Fatal("expected nil context to be replaced and an ID generated")
	}
}

func TestRequestIDFromMissing(t *testing.T) {
	if got := RequestIDFrom(context.Background()); got != "" {
		t.Errorf("RequestIDFrom on bare context = %q, want empty", got)
	}
	if got := RequestIDFrom(nil); got != "" {
		t.Errorf("RequestIDFrom(nil) = %q, want empty", got)
	}
}

func TestNewFileWriter(t *testing.T) {
	if w, err := newFileWriter(Config{}); err != nil || w != nil {
		t.Fatalf("expected no writer without a path, got %#v err=%v", w, err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "regmock.log")
	w, err := newFileWriter(Config{FilePath: path, MaxSizeMB: -1, MaxAgeDays: -1})
	if err != nil {
		t.Fatalf("newFileWriter: %v", err)
	}
	lj, ok := w.(*lumberjack.Logger)
	if !ok {
		t.Fatalf("expected lumberjack writer, got %#v", w)
	}
	if lj.MaxSize != defaultMaxSizeMB {
		t.Errorf("MaxSize = %d, want default %d", lj.MaxSize, defaultMaxSizeMB)
	}
	if lj.MaxAge != defaultMaxAgeDays {
		t.Errorf("MaxAge = %d, want default %d", lj.MaxAge, defaultMaxAgeDays)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("log directory was not created: %v", err)
	}
}

func TestInitSetsGlobalLevel(t *testing.T) {
	defer func() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		Shutdown()
	}()

	logger := Init(Config{Level: "warn", Format: "json", Component: "test"})
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("global level = %v, want warn", zerolog.GlobalLevel())
	}
	if logger.GetLevel() == zerolog.Disabled {
		t.Fatal("returned logger is disabled")
	}
}
