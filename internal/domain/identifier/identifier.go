// Package identifier mints the identifiers used at creation time: sequential
// per-year invoice numbers, opaque share tokens for public invoice links, and
// short prefixed entity IDs.
package identifier

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	invoiceNumberPrefix = "INV"
	sequenceDigits      = 4
	shareTokenBytes     = 8 // 16 hex characters
)

// NextInvoiceNumber returns the invoice number that follows lastNumber within
// the given calendar year, formatted INV{year}{4-digit sequence}. The
// sequence widens past 9999; its four digits are a minimum width. lastNumber
// is the highest existing number for that year, or empty when
// the year has none yet; a number from a different year is ignored and the
// sequence restarts at 0001. Sequences are monotonic only: numbers freed by
// deleted invoices are never reused.
func NextInvoiceNumber(year int, lastNumber string) (string, error) {
	prefix := fmt.Sprintf("%s%d", invoiceNumberPrefix, year)

	seq := 1
	if strings.HasPrefix(lastNumber, prefix) {
		tail := strings.TrimPrefix(lastNumber, prefix)
		n, err := strconv.Atoi(tail)
		if err != nil {
			return "", fmt.Errorf("malformed invoice number %q: %w", lastNumber, err)
		}
		seq = n + 1
	}

	return fmt.Sprintf("%s%0*d", prefix, sequenceDigits, seq), nil
}

// NewShareToken returns a 16-character hex token from a cryptographically
// strong source, suitable for use as a public URL path segment. The token is
// generated once per invoice and persisted; look-ups reuse the stored value.
func NewShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NewEntityID returns a short identifier: the prefix letter followed by
// digits derived from the current time plus a random component. Zero digits
// are remapped to random nonzero digits, so generated IDs never contain '0'.
// That remap is carried over from the system this replaces; it costs a little
// entropy but existing IDs already have the shape. Uniqueness is
// probabilistic, the UNIQUE column constraint is the real guard.
func NewEntityID(prefix rune) string {
	now := time.Now().UnixMilli() % 1_000_000_000

	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	random := (int(buf[0])<<16 | int(buf[1])<<8 | int(buf[2])) % 10_000

	digits := []byte(fmt.Sprintf("%09d%04d", now, random))
	for i, d := range digits {
		if d == '0' {
			digits[i] = nonzeroDigit()
		}
	}

	return string(prefix) + string(digits)
}

func nonzeroDigit() byte {
	var b [1]byte
	_, _ = rand.Read(b[:])
	return '1' + b[0]%9
}
