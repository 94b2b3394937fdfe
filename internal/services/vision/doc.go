// Package vision extracts structured product records from inventory images
// via an OpenAI-compatible chat-completion endpoint.
//
// One request is sent per image: a fixed system role, the ten-field
// instruction block with the allowed category labels, and the image inlined
// as a data URL at reduced fidelity. The response text is parsed into a
// catalog.Draft.
//
// # Retry behaviour
//
// Requests retry on HTTP 408/429/5xx (honoring Retry-After), network errors,
// and empty completions, with randomized exponential backoff (base 1s, cap
// 40s, up to 6 attempts by default). Context cancellation aborts retries
// immediately. An exhausted retry budget surfaces as an extraction failure
// for the single image; callers skip and continue.
//
// # JSON repair
//
// Models do not reliably honor "JSON only" instructions. Parsing strips
// fenced code blocks and extracts the outermost object before giving up, and
// applies single-quote normalization only as a last resort so legitimate
// apostrophes in valid payloads are preserved.
package vision
