package model

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"time"
)

// IDLength is the length of an entity id in hex characters.
const IDLength = 24

var idPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// ErrInvalidID reports an id that is not a 24-character hex string.
var ErrInvalidID = errors.New("invalid id format")

// NewID returns a new 24-character hex id.
// Layout is a 4-byte big-endian unix timestamp followed by 8 random bytes,
// so lexical order roughly follows creation order.
func NewID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(b[4:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// NormalizeID returns the canonical (lowercase) form of an id.
// Owner comparisons must always run on normalized ids.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// IsValidID reports whether id is a well-formed 24-character hex string
// after normalization.
func IsValidID(id string) bool {
	return idPattern.MatchString(NormalizeID(id))
}

// checkID adapts IsValidID to an ozzo validation rule.
func checkID(value interface{}) error {
	s, _ := value.(string)
	if !IsValidID(s) {
		return ErrInvalidID
	}
	return nil
}
