package models

// College is the tenancy root; every other entity is reachable from exactly
// one college.
type College struct {
	ID   int64  `json:"id" db:"id"`
	Code string `json:"code" db:"code" binding:"required"`
	Name string `json:"name" db:"name" binding:"required"`
}
