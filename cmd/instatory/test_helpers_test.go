package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	dataDir    string
	dbPath     string
	configPath string
}

func setupCLITestEnv(t *testing.T, visionURL string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("OPENAI_API_KEY", "")

	env := &cliTestEnv{
		baseDir:    base,
		dataDir:    filepath.Join(base, "data"),
		dbPath:     filepath.Join(base, "database.sqlite3"),
		configPath: filepath.Join(base, "config.toml"),
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "[paths]\ndata_dir = %q\ndatabase_path = %q\nlog_dir = %q\n\n",
		env.dataDir, env.dbPath, filepath.Join(base, "logs"))
	fmt.Fprintf(&buf, "[vision]\napi_key = \"test-key\"\nmodel = \"test-model\"\n")
	if visionURL != "" {
		fmt.Fprintf(&buf, "base_url = %q\n", visionURL)
	}
	fmt.Fprintf(&buf, "\n[logging]\nformat = \"console\"\nlevel = \"error\"\n")

	if err := os.WriteFile(env.configPath, []byte(buf.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (e *cliTestEnv) uploadsDir() string {
	return filepath.Join(e.dataDir, "images", "uploads")
}

func (e *cliTestEnv) writeUpload(t *testing.T, rel string) string {
	t.Helper()
	path := filepath.Join(e.uploadsDir(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir uploads: %v", err)
	}
	if err := os.WriteFile(path, []byte("not-a-real-image"), 0o644); err != nil {
		t.Fatalf("write upload: %v", err)
	}
	return path
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
