// Package imaging converts image files into the transport-safe form the
// vision backend accepts: whole-file base64 with an extension-derived MIME
// type, rendered as a data URL. It also owns the eligibility rules for which
// upload files count as images.
package imaging
