package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
)

func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	if IsVerbose() {
		t.Error("expected verbose to be false")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestVerboseOnlyLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("drive %s", "d1") }, "[DEBUG] drive d1\n"},
		{"info", func() { Info("%d sites", 3) }, "[INFO] 3 sites\n"},
		{"section", func() { Section("Federated Search") }, "\n=== Federated Search ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			if got := buf.String(); got != tt.want {
				t.Errorf("unexpected output: %q", got)
			}

			buf = capture(t, false)
			tt.log()
			if buf.Len() > 0 {
				t.Errorf("expected no output when not verbose, got %q", buf.String())
			}
		})
	}
}

func TestWarnAndError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Warn("site %s skipped", "s1")
	Error("failed: %v", "boom")

	want := "[WARN] site s1 skipped\n[ERROR] failed: boom\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	buf := capture(t, true)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetVerbose(true)
		}()
		go func(n int) {
			defer wg.Done()
			Warn("message %d", n)
		}(i)
	}
	wg.Wait()

	if got := strings.Count(buf.String(), "[WARN]"); got != 20 {
		t.Errorf("expected 20 warnings, got %d", got)
	}
}
