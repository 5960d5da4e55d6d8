package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var billNumberPattern = regexp.MustCompile(`^BILL-\d{8}-[A-Z0-9]{6}$`)

func TestGenerateBillNumber_Format(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	n := generateBillNumber(now)

	assert.Regexp(t, billNumberPattern, n)
	assert.Contains(t, n, "-20260831-")
}

func TestGenerateBillNumber_Varies(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[generateBillNumber(now)] = true
	}

	// 200 draws from a 36^6 space; a repeat means the suffix is broken.
	assert.Len(t, seen, 200)
}
