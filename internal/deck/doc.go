// Package deck holds the per-field value containers filled by the deck parser.
//
// An Item collects the raw values read from one record field in the order they
// were encountered, and remembers whether any of them was substituted from a
// keyword default. A NumericItem additionally carries the unit factors declared
// for the field and converts its raw values into SI units on first request.
//
// # Lifecycle
//
// Items are built during a single parse pass (Append*, AppendUnitFactor) and
// read afterwards. The normalized cache is filled on the first successful call
// to NormalizedValue or NormalizedValues and is never recomputed. Appending to
// an item after that point leaves the cache stale: the extra values have no
// normalized counterpart and previously cached entries keep their old factors.
// Callers that depend on normalized data must finish building first.
//
// # Concurrency
//
// All methods are safe for concurrent use. The first normalized read takes the
// write lock so concurrent readers never compute the cache twice.
package deck
