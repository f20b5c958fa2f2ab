package integration

// SubmitResult reports the outcome of a single order submission
type SubmitResult struct {
	Submitted bool   `json:"submitted"`
	Duplicate bool   `json:"duplicate"`
	Message   string `json:"message,omitempty"`
}

// SubmitPendingStats reports the outcome of a pending-orders submission run
type SubmitPendingStats struct {
	Total     int `json:"total"`
	Submitted int `json:"submitted"`
	Failed    int `json:"failed"`
}

// StatusSyncStats reports the outcome of an order status polling run
type StatusSyncStats struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

// AutoMapStats reports the outcome of a barcode auto-mapping run
type AutoMapStats struct {
	Articles  int      `json:"articles"`
	Created   int      `json:"created"`
	Refreshed int      `json:"refreshed"`
	Unmatched []string `json:"unmatched,omitempty"`
}

// StockSyncStats reports the outcome of a stock push run
type StockSyncStats struct {
	Articles int `json:"articles"`
	Pushed   int `json:"pushed"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

// MappingStats reports catalog mapping coverage
type MappingStats struct {
	TotalVariants  int64 `json:"total_variants"`
	MappedVariants int64 `json:"mapped_variants"`
}

// BackfillStats reports the outcome of a storefront order backfill
type BackfillStats struct {
	Pages    int `json:"pages"`
	Ingested int `json:"ingested"`
	Failed   int `json:"failed"`
}
