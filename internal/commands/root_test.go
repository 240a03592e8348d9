// internal/commands/root_test.go
package matboard

import (
	"bytes"
	"strings"
	"testing"
)

// TestRootCmd verifies running the root command with an invalid subcommand reports an error.
func TestRootCmd(t *testing.T) {
	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	rootCmd.SetArgs([]string{"nonexistent"})
	_, err := rootCmd.ExecuteC()

	if err == nil {
		t.Error("Expected an error for a nonexistent command, but got none")
	}

	expected := "unknown command \"nonexistent\" for \"matboard\""
	if !strings.Contains(b.String(), expected) {
		t.Errorf("Expected output to contain '%s', but got '%s'", expected, b.String())
	}
}

func TestListCommandsSkipsCompletion(t *testing.T) {
	var b bytes.Buffer
	runListCommands(&b, rootCmd)
	out := b.String()

	for _, want := range []string{"matboard", "  matboard table", "    matboard show model", "    matboard list columns"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in command list; got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "completion") {
		t.Fatalf("expected completion commands to be hidden; got:\n%s", out)
	}
}
