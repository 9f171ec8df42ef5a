package tenant

import (
	"errors"

	"gorm.io/gorm"
)

// ErrInvalidScope means a query was built without a complete (org, client)
// pair. That is a programming-contract bug in the caller, surfaced early
// instead of silently widening the query.
var ErrInvalidScope = errors.New("tenant scope requires both orgid and clientid")

// Scope is the (organization, client) pair that partitions all business
// data. Every read and write of tenant-owned rows must carry one.
type Scope struct {
	OrgID    int
	ClientID int
}

// Valid requires both halves of the pair; partial scope is never accepted.
func (s Scope) Valid() bool {
	return s.OrgID > 0 && s.ClientID > 0
}

// Scoped narrows a query to one tenant. Callers must have checked
// Scope.Valid first; repositories do this via Require.
func Scoped(db *gorm.DB, s Scope) *gorm.DB {
	return db.Where("orgid = ? AND clientid = ?", s.OrgID, s.ClientID)
}

// Active excludes soft-deleted rows from the query.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("isactive = ?", true)
}

// Require returns ErrInvalidScope for incomplete scopes so repositories can
// reject unscoped access before touching the store.
func Require(s Scope) error {
	if !s.Valid() {
		return ErrInvalidScope
	}
	return nil
}
