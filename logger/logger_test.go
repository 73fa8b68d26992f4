package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		verbosity  int
		jsonOutput bool
	}{
		{name: "JSON output mode", verbosity: 0, jsonOutput: true},
		{name: "Console output mode", verbosity: 0, jsonOutput: false},
		{name: "Console debug mode", verbosity: 2, jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			if err := Initialize(tt.verbosity, tt.jsonOutput); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			if Logger == nil {
				t.Fatal("Initialize() did not set global Logger")
			}
			if JSONOutput != tt.jsonOutput {
				t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}
			if Verbosity != tt.verbosity {
				t.Errorf("Initialize() Verbosity = %d, want %d", Verbosity, tt.verbosity)
			}
		})
	}
}

func TestConsoleOutputRespectsVerbosity(t *testing.T) {
	var buf bytes.Buffer
	prev := output
	output = &buf
	t.Cleanup(func() { output = prev })

	if err := Initialize(VerbosityUser, false); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	Infow("hidden at default verbosity")
	Logger.Warnw("shown at default verbosity", FieldURL, "https://a.b")
	Cleanup()

	got := buf.String()
	if strings.Contains(got, "hidden at default verbosity") {
		t.Errorf("info message leaked at verbosity 0: %q", got)
	}
	if !strings.Contains(got, "shown at default verbosity") {
		t.Errorf("warn message missing: %q", got)
	}
	if !strings.Contains(got, "https://a.b") {
		t.Errorf("structured field missing: %q", got)
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityAll, zapcore.DebugLevel},
		{9, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		if got := VerbosityToLevel(tt.verbosity); got != tt.want {
			t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestShouldOutput(t *testing.T) {
	tests := []struct {
		verbosity int
		category  OutputCategory
		want      bool
	}{
		{0, OutputOperationInfo, false},
		{1, OutputOperationInfo, true},
		{1, OutputConfig, true},
		{1, OutputTiming, false},
		{0, OutputHTTPCalls, false},
		{2, OutputTiming, true},
		{2, OutputInternalOp, false},
		{3, OutputInternalOp, true},
		{2, OutputHTTPCalls, true},
		{2, OutputRequestBody, false},
		{4, OutputRequestBody, true},
		{3, OutputCategory(999), false},
		{4, OutputCategory(999), true},
	}

	for _, tt := range tests {
		if got := ShouldOutput(tt.verbosity, tt.category); got != tt.want {
			t.Errorf("ShouldOutput(%d, %d) = %v, want %v", tt.verbosity, tt.category, got, tt.want)
		}
	}
}

func TestDebugwRespectsVerbosity(t *testing.T) {
	var buf bytes.Buffer
	prev := output
	output = &buf
	t.Cleanup(func() { output = prev })

	if err := Initialize(VerbosityInfo, false); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	Debugw("debug at -v")
	Infow("info at -v", FieldFile, "/etc/cronstorm/config.toml")
	Cleanup()

	got := buf.String()
	if strings.Contains(got, "debug at -v") {
		t.Errorf("debug message leaked at verbosity 1: %q", got)
	}
	if !strings.Contains(got, "/etc/cronstorm/config.toml") {
		t.Errorf("info message missing: %q", got)
	}

	buf.Reset()
	if err := Initialize(VerbosityDebug, false); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	Debugw("debug at -vv")
	Cleanup()
	if !strings.Contains(buf.String(), "debug at -vv") {
		t.Errorf("debug message missing at verbosity 2: %q", buf.String())
	}
}
