// Package fetcher downloads web pages for URL ingestion.
//
// Requests share a token bucket so a burst of add-url calls cannot hammer a
// site, and a 429 response pauses every later request until Retry-After.
package fetcher
