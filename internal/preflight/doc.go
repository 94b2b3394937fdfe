// Package preflight provides readiness checks for the external services
// and filesystem paths an ingestion run depends on.
//
// The CLI "instatory check" command runs RunAll and renders the results
// before any images are touched, so a bad API key or missing directory
// surfaces immediately instead of mid-batch.
package preflight
