package logging

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetReplacesGlobalLogger(t *testing.T) {
	original := Logger()
	defer Set(original)

	replacement := zerolog.New(os.Stderr).Level(zerolog.InfoLevel)
	Set(replacement)

	if got := Logger().GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("Logger().GetLevel() = %v, want %v", got, zerolog.InfoLevel)
	}
}

func TestDefaultLoggerIsDisabled(t *testing.T) {
	original := Logger()
	defer Set(original)

	Set(zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.Disabled))
	if got := Logger().GetLevel(); got != zerolog.Disabled {
		t.Fatalf("default Logger().GetLevel() = %v, want Disabled", got)
	}
}
