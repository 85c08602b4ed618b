// Package id issues the public, prefixed identifiers (cmp_xxx, usr_xxx)
// exposed instead of database row IDs.
package id

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	DefaultLength = 12
)

const (
	PrefixComplaint = "cmp"
	PrefixUser      = "usr"
)

// Generate returns length random base62 characters. Bytes that would bias
// the distribution are rejected and redrawn.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	const limit = 256 - 256%len(alphabet)
	out := make([]byte, 0, length)
	buf := make([]byte, length*2)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

func withPrefix(prefix string) (string, error) {
	s, err := Generate(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

func NewComplaintSID() (string, error) {
	return withPrefix(PrefixComplaint)
}

func NewUserSID() (string, error) {
	return withPrefix(PrefixUser)
}

// ValidatePrefix checks that sid is prefix, an underscore, then one or
// more base62 characters.
func ValidatePrefix(sid, prefix string) error {
	got, rest, ok := strings.Cut(sid, "_")
	if !ok {
		return fmt.Errorf("invalid id %q: missing prefix", sid)
	}
	if got != prefix {
		return fmt.Errorf("invalid id %q: expected prefix %s, got %s", sid, prefix, got)
	}
	if rest == "" {
		return fmt.Errorf("invalid id %q: empty body", sid)
	}
	for i := 0; i < len(rest); i++ {
		if strings.IndexByte(alphabet, rest[i]) < 0 {
			return fmt.Errorf("invalid id %q: unexpected character %q", sid, rest[i])
		}
	}
	return nil
}
