// Package httputil downloads remote dataset files.
//
// # Overview
//
// A road network may be published on a web server instead of the local
// disk. [Client] fetches such files with:
//
//   - Automatic retry with exponential backoff for network errors, 5xx
//     responses and 429 rate limiting
//   - An optional response cache backed by any [cache.Cache], so repeated
//     runs do not download the same file again
//
// Usage:
//
//	c := httputil.NewClient(fileCache, 24*time.Hour, logger)
//	data, err := c.Fetch(ctx, "https://example.com/Locations.csv")
//
// Cached entries are keyed by URL. They are removed with
// `routeplanner cache clear` or expire after the TTL.
package httputil
