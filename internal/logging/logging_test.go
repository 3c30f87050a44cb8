package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]Format{"": FormatText, "TEXT": FormatText, " json ": FormatJSON} {
		got, err := ParseFormat(raw)
		if err != nil {
			t.Fatalf("ParseFormat(%q) error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q)=%q, want %q", raw, got, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("ParseFormat(xml) error=nil, want error")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]Level{"": LevelInfo, "debug": LevelDebug, "WARNING": LevelWarn, "error": LevelError} {
		got, err := ParseLevel(raw)
		if err != nil {
			t.Fatalf("ParseLevel(%q) error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q)=%s, want %s", raw, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("ParseLevel(loud) error=nil, want error")
	}
}

func TestJSONLoggerWritesStructuredLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewWithWriter(FormatJSON, &buf)
	l.Infof("loaded %s", "openapidist.yaml")

	var fields map[string]any
	if err := json.Unmarshal(buf.Bytes(), &fields); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, buf.String())
	}
	if fields["level"] != "info" {
		t.Fatalf("level=%v, want info", fields["level"])
	}
	if fields["msg"] != "loaded openapidist.yaml" {
		t.Fatalf("msg=%v, want %q", fields["msg"], "loaded openapidist.yaml")
	}
	if fields["component"] != "apidocs" {
		t.Fatalf("component=%v, want apidocs", fields["component"])
	}
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewWithWriter(FormatText, &buf)
	l.SetLevel(LevelWarn)
	l.Infof("hidden")
	l.Debugf("hidden")
	l.Warnf("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("output=%q, want no info/debug lines", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("output=%q, want warn line", out)
	}
}
