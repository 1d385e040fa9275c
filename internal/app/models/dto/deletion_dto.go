package dto

// BlockedDeleteResponse reports the direct dependents that stopped a safe
// delete, so the operator can make an informed forced-delete decision.
type BlockedDeleteResponse struct {
	Entity     string           `json:"entity"`
	Dependents map[string]int64 `json:"dependents"`
}

// ForceDeleteResult reports how many rows each table lost during a cascade.
type ForceDeleteResult struct {
	Entity  string           `json:"entity"`
	ID      int64            `json:"id"`
	Deleted map[string]int64 `json:"deleted"`
}
