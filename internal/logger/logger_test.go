package logger

import (
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	tests := []struct {
		in   zerolog.Level
		want tracelog.LogLevel
	}{
		{zerolog.TraceLevel, tracelog.LogLevelTrace},
		{zerolog.DebugLevel, tracelog.LogLevelDebug},
		{zerolog.InfoLevel, tracelog.LogLevelInfo},
		{zerolog.WarnLevel, tracelog.LogLevelWarn},
		{zerolog.ErrorLevel, tracelog.LogLevelError},
		{zerolog.Disabled, tracelog.LogLevelNone},
	}

	for _, tt := range tests {
		if got := GetPgxTraceLogLevel(tt.in); got != tt.want {
			t.Errorf("GetPgxTraceLogLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNilLoggerService(t *testing.T) {
	var ls *LoggerService
	if ls.GetApplication() != nil {
		t.Error("nil service returned an application")
	}
	ls.Shutdown()
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	base := zerolog.Nop()
	got := WithTraceContext(base, nil)
	if got.GetLevel() != base.GetLevel() {
		t.Errorf("level changed to %v", got.GetLevel())
	}
}
