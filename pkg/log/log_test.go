package log_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/log"
)

func TestGetLoggerWithName_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)

	logger := log.GetLoggerWithName("evaluation")
	logger.Info().Str(log.OperationKey, "fit").Msg("fit complete")

	out := buf.String()
	if !strings.Contains(out, `"`+log.ComponentKey+`":"evaluation"`) {
		t.Errorf("log line missing component tag: %s", out)
	}
	if !strings.Contains(out, `"`+log.OperationKey+`":"fit"`) {
		t.Errorf("log line missing operation attribute: %s", out)
	}
	if !strings.Contains(out, "fit complete") {
		t.Errorf("log line missing message: %s", out)
	}
}

func TestSetOutput_RedirectsRoot(t *testing.T) {
	var first, second bytes.Buffer

	log.SetOutput(&first)
	firstLogger := log.GetLogger()
	firstLogger.Info().Msg("one")

	log.SetOutput(&second)
	secondLogger := log.GetLogger()
	secondLogger.Info().Msg("two")

	if !strings.Contains(first.String(), "one") || strings.Contains(first.String(), "two") {
		t.Errorf("first buffer = %q", first.String())
	}
	if !strings.Contains(second.String(), "two") {
		t.Errorf("second buffer = %q", second.String())
	}
}
