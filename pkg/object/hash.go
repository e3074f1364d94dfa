package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// RawHashSize is the digest length in bytes, as embedded in tree payloads.
	RawHashSize = sha1.Size
	// HexHashSize is the digest length in hex characters, as used in object
	// paths and commit headers.
	HexHashSize = RawHashSize * 2
)

// HashBytes computes the raw SHA-1 hash of data and returns it as a
// lowercase hex-encoded Hash.
func HashBytes(data []byte) Hash {
	sum := sha1.Sum(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashObject computes the SHA-1 of the envelope "type len\0content". This is
// the name a loose object file with that type and payload is stored under.
func HashObject(objType ObjectType, data []byte) Hash {
	header := fmt.Sprintf("%s %d\x00", objType, len(data))
	h := sha1.New()
	h.Write([]byte(header))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// ParseHash validates s as an object name: exactly 40 hex characters.
// Uppercase input is accepted and normalized to lowercase.
func ParseHash(s string) (Hash, error) {
	if len(s) != HexHashSize {
		return "", fmt.Errorf("%w: %q (want %d hex characters)", ErrBadHash, s, HexHashSize)
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadHash, s)
	}
	return Hash(strings.ToLower(s)), nil
}

// Short returns the abbreviated form used in human-readable output.
func (h Hash) Short() string {
	if len(h) < 8 {
		return string(h)
	}
	return string(h[:8])
}
