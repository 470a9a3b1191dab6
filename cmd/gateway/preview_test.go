package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		previewOut = ""
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestPreviewEmail_List(t *testing.T) {
	out, err := runCommand(t, "preview-email")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "enquiry_notification") {
		t.Errorf("output = %q, want the enquiry template listed", out)
	}
}

func TestPreviewEmail_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.html")

	if _, err := runCommand(t, "preview-email", "enquiry_notification", "--out", path); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	html, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(html), "Jane Doe") {
		t.Error("preview missing sample data")
	}
}

func TestPreviewEmail_Unknown(t *testing.T) {
	if _, err := runCommand(t, "preview-email", "nope"); err == nil {
		t.Error("expected error for unknown template")
	}
}
