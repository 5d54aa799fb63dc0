package assetcache

import "time"

// Asset is one financial-instrument record. It is created once by the data
// generator, stored in the backing store and never mutated afterwards, so it
// is passed around by value.
type Asset struct {
	ID          string    `json:"assetId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cusip       string    `json:"cusip"`
	BloombergID string    `json:"bloombergId"`
	Isin        string    `json:"isin"`
	Sedol       string    `json:"sedol"`
	CreatedAt   time.Time `json:"createdTimestamp"`
	MarketValue float64   `json:"marketValue"`
	Currency    string    `json:"currency"`
}

// BatchRequest is an ordered list of identifiers plus the sub-batch size that
// controls how the request is fanned out over the worker pool. Repeated
// identifiers are resolved, and counted, once per occurrence.
type BatchRequest struct {
	IDs          []string
	SubBatchSize int
}

// PartialResponse carries the outcome of a single sub-batch.
type PartialResponse struct {
	Assets    []Asset
	Found     int
	Requested int
	Instance  string
	Elapsed   time.Duration
}

// Result is one element of the ResolveBatch stream. Err is set only when the
// sub-batch failed or the caller went away; Response is then meaningless.
type Result struct {
	Response PartialResponse
	Err      error
}
