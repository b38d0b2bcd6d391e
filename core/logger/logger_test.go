package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestInitReplacesEarlyDefaults(t *testing.T) {
	// Boot order: something logs before the configured Init runs. The
	// configured level must still apply afterwards.
	Debug("early boot line")

	Init("debug", "text")
	if !get().Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug level was ignored after an earlier log call")
	}

	Init("error", "json")
	if get().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("later Init did not raise the level")
	}
	if _, ok := get().Handler().(*slog.JSONHandler); !ok {
		t.Errorf("json format not applied, handler is %T", get().Handler())
	}

	Init("info", "text")
}

func TestDefaultWithoutInit(t *testing.T) {
	l := get()
	if l == nil {
		t.Fatal("get returned nil logger")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("default level should be info, debug was enabled")
	}
}
