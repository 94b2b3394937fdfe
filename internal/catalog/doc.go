// Package catalog persists product records extracted from inventory images
// in SQLite and owns the record shapes on either side of that boundary.
//
// The Store manages the database connection, schema creation, and the
// additive column check that upgrades older databases in place. Draft is the
// pre-insert record decoded from model output, with flexible JSON types for
// fields the model returns inconsistently (string-or-list values, nullable
// prices). Records are insert-only: nothing in the system updates or deletes
// a cataloged product.
//
// Treat this package as the single source of truth for catalog semantics;
// when adding columns, extend schema.sql and the additive column list
// together.
package catalog
