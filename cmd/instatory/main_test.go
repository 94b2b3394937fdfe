package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testRecord = `{
	"name": "Beaded Necklace",
	"description": ["Hand-strung glass beads"],
	"category": "Beads",
	"material": "Glass",
	"color": "Multicolor",
	"dimensions": "18 in",
	"origin_source": "Kenya",
	"import_cost": 4.5,
	"retail_price": 18,
	"key_tags": ["beads", "necklace"]
}`

func newVisionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRootWithoutFlagOnlyInitializesCatalog(t *testing.T) {
	env := setupCLITestEnv(t, "")

	if _, _, err := runCLI(t, env); err != nil {
		t.Fatalf("bare invocation failed: %v", err)
	}
	if _, err := os.Stat(env.dbPath); err != nil {
		t.Fatalf("database not created: %v", err)
	}
	if _, err := os.Stat(env.uploadsDir()); err != nil {
		t.Fatalf("uploads dir not created: %v", err)
	}
}

func TestProcessImagesCatalogsAndArchives(t *testing.T) {
	server := newVisionServer(t, testRecord)
	env := setupCLITestEnv(t, server.URL)
	source := env.writeUpload(t, "shelf/necklace.jpg")

	out, _, err := runCLI(t, env, "--process-images")
	if err != nil {
		t.Fatalf("process run failed: %v", err)
	}
	requireContains(t, out, "1 cataloged")
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Fatalf("source image should be archived away: %v", err)
	}

	out, _, err = runCLI(t, env, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list failed: %v", err)
	}
	requireContains(t, out, "Beaded Necklace")
	requireContains(t, out, "1 product(s)")

	out, _, err = runCLI(t, env, "catalog", "show", "1")
	if err != nil {
		t.Fatalf("catalog show failed: %v", err)
	}
	requireContains(t, out, "Hand-strung glass beads")
	requireContains(t, out, filepath.Join("shelf", "necklace.jpg"))
}

func TestCatalogListEmpty(t *testing.T) {
	env := setupCLITestEnv(t, "")
	if _, _, err := runCLI(t, env); err != nil {
		t.Fatalf("init run failed: %v", err)
	}
	out, _, err := runCLI(t, env, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list failed: %v", err)
	}
	requireContains(t, out, "Catalog is empty")
}

func TestCatalogShowUnknownID(t *testing.T) {
	env := setupCLITestEnv(t, "")
	if _, _, err := runCLI(t, env); err != nil {
		t.Fatalf("init run failed: %v", err)
	}
	if _, _, err := runCLI(t, env, "catalog", "show", "42"); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestCheckCommandPassesWithHealthyBackend(t *testing.T) {
	server := newVisionServer(t, `{"ok":true}`)
	env := setupCLITestEnv(t, server.URL)

	out, _, err := runCLI(t, env, "check")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	requireContains(t, out, "All checks passed")
}

func TestCheckCommandFailsWithoutKey(t *testing.T) {
	env := setupCLITestEnv(t, "")
	// Rewrite the config without a key so the vision check must fail.
	content, err := os.ReadFile(env.configPath)
	if err != nil {
		t.Fatal(err)
	}
	replaced := strings.Replace(string(content), `api_key = "test-key"`, `api_key = ""`, 1)
	if err := os.WriteFile(env.configPath, []byte(replaced), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, env, "check")
	if err == nil {
		t.Fatal("expected check to fail without an API key")
	}
	requireContains(t, out, "[ERROR]")
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t, "")

	target := filepath.Join(env.baseDir, "fresh", "config.toml")
	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	out, _, err = runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, `api_key = '(set)'`)
}
