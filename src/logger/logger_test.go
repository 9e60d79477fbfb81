package logger

import (
	"bytes"
	"testing"
)

func TestConsoleLogger_StreamRouting(t *testing.T) {
	var out, errs bytes.Buffer
	log := NewConsoleLoggerTo(&out, &errs)

	log.Info("build %s: %s", "777", "EXECUTING")
	log.Debug("retrying in %s", "10s")
	log.Error("build %s timed out", "777")

	wantOut := "[INFO] build 777: EXECUTING\n[DEBUG] retrying in 10s\n"
	if out.String() != wantOut {
		t.Errorf("out = %q, want %q", out.String(), wantOut)
	}
	wantErr := "[ERROR] build 777 timed out\n"
	if errs.String() != wantErr {
		t.Errorf("err = %q, want %q", errs.String(), wantErr)
	}
}

func TestConsoleLogger_SeparateStreamsPerLogger(t *testing.T) {
	var first, second bytes.Buffer
	a := NewConsoleLoggerTo(&first, &first)
	b := NewConsoleLoggerTo(&second, &second)

	a.Info("build %s: %s", "111", "COMPLETED")
	b.Info("build %s: %s", "222", "FAILED")

	if got := first.String(); got != "[INFO] build 111: COMPLETED\n" {
		t.Errorf("first stream = %q", got)
	}
	if got := second.String(); got != "[INFO] build 222: FAILED\n" {
		t.Errorf("second stream = %q", got)
	}
}
