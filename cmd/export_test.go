package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xvierd/fokus/internal/domain"
)

func TestExportCmd_CSVToStdout(t *testing.T) {
	env := newEnv(t)
	env.seed(t, domain.History{"2024-03-01": 30, "2024-02-01": 20})

	stdout, _, err := env.run(t, "export")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	want := "day,minutes\n2024-03-01,30\n2024-02-01,20\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestExportCmd_JSON(t *testing.T) {
	env := newEnv(t)
	env.seed(t, domain.History{"2024-03-01": 30, "2024-02-01": 20})

	stdout, _, err := env.run(t, "export", "--format", "json")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(stdout, `"total_minutes": 50`) {
		t.Errorf("json output missing total:\n%s", stdout)
	}
}

func TestExportCmd_YAMLToFile(t *testing.T) {
	env := newEnv(t)
	env.seed(t, domain.History{"2024-03-01": 30})
	out := filepath.Join(t.TempDir(), "history.yaml")

	stdout, stderr, err := env.run(t, "export", "--format", "yaml", "--output", out)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty when writing a file, got %q", stdout)
	}
	if !strings.Contains(stderr, "Exported 1 day(s)") {
		t.Errorf("stderr = %q", stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "day: \"2024-03-01\"") && !strings.Contains(string(data), "day: 2024-03-01") {
		t.Errorf("yaml output missing day:\n%s", data)
	}
}

func TestExportCmd_UnknownFormat(t *testing.T) {
	env := newEnv(t)

	if _, _, err := env.run(t, "export", "--format", "xml"); err == nil {
		t.Fatal("expected an error for xml")
	}
}
