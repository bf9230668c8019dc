package monitoring

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	Logf("sweep done")
	if !called {
		t.Error("custom logger was not called")
	}

	SetLogger(nil)
	Logf("must not panic")
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	logf := WriterLogger(&buf, "pvtlab: ")
	logf("points=%d", 50)

	out := buf.String()
	if !strings.HasPrefix(out, "pvtlab: ") || !strings.Contains(out, "points=50") {
		t.Errorf("unexpected log line %q", out)
	}
}
