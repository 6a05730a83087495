package logging

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"json to stdout", Config{Level: "debug", Format: "json", Output: "stdout"}, false},
		{"bad level falls back to info", Config{Level: "loud", Format: "json"}, false},
		{"file output", Config{Format: "json", Output: filepath.Join(t.TempDir(), "pricing.log")}, false},
		{"unknown format", Config{Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := Build(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatal("Expected a logger")
			}
		})
	}
}

func TestGlobalHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(InitializeDefault)

	Debug("debug")
	Info("info")
	Warn("clamped", Decimal("percent", decimal.RequireFromString("100")))
	Error("error")
	With(zap.String("tenant", "a")).Info("scoped")

	if logs.Len() != 5 {
		t.Fatalf("Expected 5 entries, got %d", logs.Len())
	}
	warn := logs.FilterMessage("clamped").All()
	if len(warn) != 1 || warn[0].ContextMap()["percent"] != "100" {
		t.Errorf("Expected decimal field rendered as string, got %+v", warn)
	}
}

func TestSetLoggerNil(t *testing.T) {
	SetLogger(nil)
	t.Cleanup(InitializeDefault)

	// Nop logger must accept calls
	Info("ignored")
	Sync()
}
