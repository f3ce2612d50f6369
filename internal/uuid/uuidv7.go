// Package uuid generates the time-ordered identifiers used for users and transactions.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string for the current instant.
//
// Layout: 48-bit Unix milliseconds, 4-bit version (7), 12 random bits,
// 2-bit variant (10), 62 random bits.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns a UUIDv7 string whose timestamp prefix is t.
func NewAt(t time.Time) string {
	var id googleuuid.UUID

	binary.BigEndian.PutUint64(id[0:8], uint64(t.UnixMilli())<<16)

	if _, err := rand.Read(id[6:]); err != nil {
		// crypto/rand should not fail; fall back to a random v4 id
		return googleuuid.New().String()
	}

	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return id.String()
}

// IsValid reports whether s parses as a UUID of any version.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}

// Timestamp extracts the millisecond timestamp from a UUIDv7 string.
func Timestamp(s string) (time.Time, bool) {
	id, err := googleuuid.Parse(s)
	if err != nil || id.Version() != 7 {
		return time.Time{}, false
	}
	ms := binary.BigEndian.Uint64(id[0:8]) >> 16
	return time.UnixMilli(int64(ms)), true
}
