// Package services defines the shared error taxonomy used by pipeline
// components and external service clients.
//
// Errors are tagged with sentinel markers (validation, transient, external
// service, configuration) via Wrap so the ingest loop can decide whether a
// failure affects only the current image or the whole run.
package services
