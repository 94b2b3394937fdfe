package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const productColumns = `id, name, description, image_url, category, material, color,
    dimensions, origin_source, import_cost, retail_price, key_tags, created_at`

// ExistingReferences returns the set of image references already cataloged.
// The ingest pipeline loads this once per run as its dedup snapshot.
func (s *Store) ExistingReferences(ctx context.Context) (map[string]struct{}, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT image_url FROM products WHERE image_url IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("query references: %w", err)
	}
	defer rows.Close()

	refs := make(map[string]struct{})
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		refs[ref] = struct{}{}
	}
	return refs, rows.Err()
}

// Exists reports whether any record already carries this image reference.
func (s *Store) Exists(ctx context.Context, imageRef string) (bool, error) {
	ctx = ensureContext(ctx)
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM products WHERE image_url = ?`, imageRef,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check reference: %w", err)
	}
	return count > 0, nil
}

// Insert validates the draft, normalizes list-valued fields, and writes one
// new row keyed by imageRef. The returned error wraps MissingFieldError when
// the draft is incomplete, which is distinct from a storage failure.
func (s *Store) Insert(ctx context.Context, draft *Draft, imageRef string) (int64, error) {
	if draft == nil {
		return 0, errors.New("draft is nil")
	}
	if err := draft.Validate(); err != nil {
		return 0, fmt.Errorf("validate record: %w", err)
	}

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO products (
            name, description, image_url, category, material, color,
            dimensions, origin_source, import_cost, retail_price, key_tags, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		draft.Name,
		draft.Description.Join("\n"),
		imageRef,
		draft.Category,
		draft.Material,
		draft.Color,
		draft.Dimensions,
		draft.OriginSource,
		draft.ImportCost.nullable(),
		draft.RetailPrice.nullable(),
		draft.KeyTags.Join(", "),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// GetByID fetches a product by identifier. Returns nil when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Product, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// List returns all products ordered by identifier.
func (s *Store) List(ctx context.Context) ([]*Product, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// Count returns the number of cataloged products.
func (s *Store) Count(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (*Product, error) {
	var (
		product      Product
		name         sql.NullString
		description  sql.NullString
		imageURL     sql.NullString
		category     sql.NullString
		material     sql.NullString
		color        sql.NullString
		dimensions   sql.NullString
		originSource sql.NullString
		importCost   sql.NullFloat64
		retailPrice  sql.NullFloat64
		keyTags      sql.NullString
		createdAt    sql.NullString
	)

	if err := scanner.Scan(
		&product.ID, &name, &description, &imageURL, &category, &material, &color,
		&dimensions, &originSource, &importCost, &retailPrice, &keyTags, &createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	product.Name = name.String
	product.Description = description.String
	product.ImageURL = imageURL.String
	product.Category = category.String
	product.Material = material.String
	product.Color = color.String
	product.Dimensions = dimensions.String
	product.OriginSource = originSource.String
	product.KeyTags = keyTags.String
	if importCost.Valid {
		value := importCost.Float64
		product.ImportCost = &value
	}
	if retailPrice.Valid {
		value := retailPrice.Float64
		product.RetailPrice = &value
	}
	if createdAt.Valid {
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt.String); err == nil {
			product.CreatedAt = parsed
		}
	}
	return &product, nil
}
