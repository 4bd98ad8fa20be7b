package repository

import (
	"github.com/oklog/ulid/v2"
)

// newID returns a lexicographically time-ordered identifier
func newID() string {
	return ulid.Make().String()
}
