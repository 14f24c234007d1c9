package utils

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a 26-character ULID: sortable by creation time and unique
// enough that a collision on the session token column is not a practical
// concern.
func NewID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewSessionToken returns the opaque token shared by everyone at a table.
func NewSessionToken() string {
	return NewID()
}
