package utils

import (
	"context"
	"strings"
	"testing"
)

func TestShellRunner(t *testing.T) {
	t.Run("captures output", func(t *testing.T) {
		r := &ShellRunner{}
		out, err := r.Run(context.Background(), "sh", "-c", "echo hello")
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if strings.TrimSpace(out) != "hello" {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("wraps failure with command and output", func(t *testing.T) {
		r := &ShellRunner{}
		_, err := r.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
		if err == nil {
			t.Fatal("Run() should fail")
		}
		if !strings.Contains(err.Error(), "oops") {
			t.Errorf("expected stderr in error, got: %v", err)
		}
	})
}

func TestLookPath(t *testing.T) {
	if err := LookPath("sh"); err != nil {
		t.Fatalf("sh should always be present: %v", err)
	}

	err := LookPath("definitely-not-a-real-tool-xyz")
	if err == nil {
		t.Fatal("expected an error for a missing tool")
	}
	if !strings.Contains(err.Error(), "definitely-not-a-real-tool-xyz") {
		t.Errorf("error should name the missing tool: %v", err)
	}
}
