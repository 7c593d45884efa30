package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestInjectFieldsAppearInContextLogs(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, slog.LevelDebug)

	ctx := InjectFields(context.Background(), Fields{"request_id": "r-1"})
	ctx = InjectFields(ctx, Fields{"stage": "extract"})

	log.InfoContext(ctx, "hello", "k", "v")

	out := buf.String()
	for _, want := range []string{"msg=hello", "k=v", "request_id=r-1", "stage=extract"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output %q", want, out)
		}
	}
}

func TestInjectFieldsDoesNotMutateParent(t *testing.T) {
	parent := InjectFields(context.Background(), Fields{"a": 1})
	_ = InjectFields(parent, Fields{"a": 2, "b": 3})

	fields := FieldsFrom(parent)
	if fields["a"] != 1 {
		t.Errorf("expected parent field a=1, got %v", fields["a"])
	}
	if _, ok := fields["b"]; ok {
		t.Error("expected parent to have no field b")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
