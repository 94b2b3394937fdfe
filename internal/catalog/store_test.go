package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"instatory/internal/catalog"
	"instatory/internal/testsupport"
)

func TestInsertAndGet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	id := testsupport.InsertProduct(t, store, "Carved Bowl", "inventory/20240101-000000/bowl.jpg")
	if id == 0 {
		t.Fatal("expected assigned id")
	}

	product, err := store.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if product == nil || product.Name != "Carved Bowl" {
		t.Fatalf("unexpected product: %#v", product)
	}
	if product.ImageURL != "inventory/20240101-000000/bowl.jpg" {
		t.Fatalf("unexpected reference: %q", product.ImageURL)
	}
	if product.ImportCost == nil || *product.ImportCost != 12.5 {
		t.Fatalf("unexpected import cost: %v", product.ImportCost)
	}
	if product.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be recorded")
	}
}

func TestListValuesNormalized(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	id := testsupport.InsertProduct(t, store, "Woven Fan", "ref-1")

	product, err := store.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got := strings.Split(product.Description, "\n"); len(got) != 2 {
		t.Fatalf("expected 2 description segments, got %#v", got)
	}
	if got := strings.Split(product.KeyTags, ", "); len(got) != 3 {
		t.Fatalf("expected 3 tag segments, got %#v", got)
	}
}

func TestInsertRejectsMissingField(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	payload := []byte(`{"name":"Incomplete","description":"x","category":"Bowls","material":"wood",
        "color":"brown","dimensions":"small","origin_source":"Ghana","import_cost":1,"retail_price":2}`)
	draft, err := catalog.DecodeDraft(payload)
	if err != nil {
		t.Fatalf("DecodeDraft failed: %v", err)
	}

	_, err = store.Insert(context.Background(), draft, "ref-missing")
	var missing *catalog.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != "key_tags" {
		t.Fatalf("unexpected missing field: %q", missing.Field)
	}

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no rows after rejected insert, got %d", count)
	}
}

func TestExistingReferencesAndExists(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.InsertProduct(t, store, "A", "ref-a")
	testsupport.InsertProduct(t, store, "B", "ref-b")

	refs, err := store.ExistingReferences(ctx)
	if err != nil {
		t.Fatalf("ExistingReferences failed: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d", len(refs))
	}
	if _, ok := refs["ref-a"]; !ok {
		t.Fatal("expected ref-a in snapshot")
	}

	exists, err := store.Exists(ctx, "ref-b")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Fatal("expected ref-b to exist")
	}
	exists, err = store.Exists(ctx, "ref-c")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Fatal("ref-c should not exist")
	}
}

func TestDuplicateReferenceRejectedByConstraint(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.InsertProduct(t, store, "First", "ref-dup")
	if _, err := store.Insert(context.Background(), testsupport.CompleteDraft(t, "Second"), "ref-dup"); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestReopenPreservesRows(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.InsertProduct(t, store, "Persisted", "ref-persist")
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	exists, err := reopened.Exists(context.Background(), "ref-persist")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Fatal("expected reference to survive reopen")
	}
}

func TestListOrdersByID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.InsertProduct(t, store, "One", "ref-1")
	testsupport.InsertProduct(t, store, "Two", "ref-2")

	products, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(products) != 2 || products[0].Name != "One" || products[1].Name != "Two" {
		t.Fatalf("unexpected list: %#v", products)
	}
}

func TestNullPricesStoredAsNull(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	payload := map[string]any{
		"name":          "No Prices",
		"description":   "plain",
		"category":      "Beads",
		"material":      "glass",
		"color":         "blue",
		"dimensions":    "small",
		"origin_source": "Kenya",
		"import_cost":   "null",
		"retail_price":  nil,
		"key_tags":      "beads",
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	draft, err := catalog.DecodeDraft(encoded)
	if err != nil {
		t.Fatalf("DecodeDraft failed: %v", err)
	}

	id, err := store.Insert(context.Background(), draft, "ref-null")
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	product, err := store.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if product.ImportCost != nil || product.RetailPrice != nil {
		t.Fatalf("expected null prices, got %v / %v", product.ImportCost, product.RetailPrice)
	}
}
