package customer

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// GroupStore resolves customer group ids to their group codes. Resolved names
// are cached for the lifetime of the store; group codes do not change within
// an export run.
type GroupStore struct {
	db *sql.DB

	mu    sync.RWMutex
	cache map[int64]string
}

func NewGroupStore(db *sql.DB) (*GroupStore, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GroupStore{db: db, cache: make(map[int64]string)}, nil
}

const groupQuery = `SELECT customer_group_code FROM customer_group WHERE customer_group_id = $1`

// GroupName returns the group code for the id. Unknown ids are an error; the
// formatter falls back to the raw id on failure.
func (s *GroupStore) GroupName(ctx context.Context, groupID int64) (string, error) {
	s.mu.RLock()
	name, ok := s.cache[groupID]
	s.mu.RUnlock()
	if ok {
		return name, nil
	}

	if err := s.db.QueryRowContext(ctx, groupQuery, groupID).Scan(&name); err != nil {
		return "", fmt.Errorf("customer group %d lookup failed: %w", groupID, err)
	}

	s.mu.Lock()
	s.cache[groupID] = name
	s.mu.Unlock()
	return name, nil
}
