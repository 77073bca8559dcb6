package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eringen/urbandash"
)

func TestRunCheckReportsMissing(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "CAH_PM25.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := urbandash.Config{AssetRoot: root}

	var out bytes.Buffer
	if err := runCheck(&out, cfg, false); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "ok       "+filepath.Join(root, "CAH_PM25.png")) {
		t.Errorf("present asset not reported:\n%s", got)
	}
	if !strings.Contains(got, "5 missing") {
		t.Errorf("expected 5 missing, got:\n%s", got)
	}
}

func TestRunCheckStrict(t *testing.T) {
	cfg := urbandash.Config{AssetRoot: t.TempDir()}
	var out bytes.Buffer
	err := runCheck(&out, cfg, true)
	if !errors.Is(err, errMissingAssets) {
		t.Fatalf("expected errMissingAssets, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "urbandash dev\n" {
		t.Errorf("version output = %q", got)
	}
}
