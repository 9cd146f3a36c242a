package logutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelsAndPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo, "host").WithPrefix("flowchart")
	l.Debug("hidden")
	l.Info("resized to %d", 800)
	l.Error("boom")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line leaked: %q", out)
	}
	if !strings.Contains(out, "INFO [host/flowchart] resized to 800") {
		t.Errorf("missing info line: %q", out)
	}
	if !strings.Contains(out, "ERROR [host/flowchart] boom") {
		t.Errorf("missing error line: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("buffers must not get colour codes: %q", out)
	}
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, LevelDebug, "").Dump("export failed", "a\nb\n")
	if n := strings.Count(buf.String(), "WARN"); n != 3 {
		t.Errorf("Dump wrote %d warn lines, want 3:\n%s", n, buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{"debug": LevelDebug, "WARN": LevelWarn, "error": LevelError, "": LevelInfo, "bogus": LevelInfo}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
