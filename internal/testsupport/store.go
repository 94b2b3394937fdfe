package testsupport

import (
	"context"
	"encoding/json"
	"testing"

	"instatory/internal/catalog"
	"instatory/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// CompleteDraft decodes a fully populated draft with the given name. The
// remaining fields carry fixed filler values.
func CompleteDraft(t testing.TB, name string) *catalog.Draft {
	t.Helper()

	payload := map[string]any{
		"name":          name,
		"description":   []string{"Handwoven", "Fair trade"},
		"category":      "Bowls",
		"material":      "Carved wood",
		"color":         "Brown",
		"dimensions":    "10x10x4 in",
		"origin_source": "Ghana",
		"import_cost":   12.5,
		"retail_price":  38.0,
		"key_tags":      []string{"bowl", "wood", "handmade"},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal draft payload: %v", err)
	}
	draft, err := catalog.DecodeDraft(encoded)
	if err != nil {
		t.Fatalf("decode draft: %v", err)
	}
	return draft
}

// InsertProduct inserts a complete draft keyed by imageRef and returns the id.
func InsertProduct(t testing.TB, store *catalog.Store, name, imageRef string) int64 {
	t.Helper()

	id, err := store.Insert(context.Background(), CompleteDraft(t, name), imageRef)
	if err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return id
}
