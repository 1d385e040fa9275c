package dto

// ImportRequest carries the decoded rows for one table. The engine is
// agnostic to the transport format; callers parse CSV/XLSX elsewhere and
// submit flat field-maps.
type ImportRequest struct {
	Rows []map[string]interface{} `json:"rows" binding:"required"`
}

// ImportResult is the full per-batch accounting: how many rows were written
// and one message per failed row. A batch never aborts; errors are
// row-scoped.
type ImportResult struct {
	BatchID          string   `json:"batchId"`
	Table            string   `json:"table"`
	RecordsProcessed int      `json:"recordsProcessed"`
	Errors           []string `json:"errors"`
}

// ImportOrderResponse documents the required parent-before-child table order
// for multi-table import sessions.
type ImportOrderResponse struct {
	Tables []string `json:"tables"`
}
