package services

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/Akibsaiyad14/clothsbillingandinventory/config"
)

// billNumberAttempts bounds the collision-retry loop. The suffix space is
// 36^6 per day, so a second attempt is already rare and five failures mean
// something is very wrong.
const billNumberAttempts = 5

const billSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const billSuffixLength = 6

// generateBillNumber produces a candidate like BILL-20260831-7KQ2ZD:
// fixed prefix, current date, and a random uppercase-alphanumeric suffix.
// Uniqueness is best-effort here; the caller verifies against the store and
// the bills table carries a unique index as the final arbiter.
// Variable so tests can force collisions.
var generateBillNumber = func(now time.Time) string {
	suffix := make([]byte, billSuffixLength)
	_, _ = rand.Read(suffix)
	for i, b := range suffix {
		suffix[i] = billSuffixAlphabet[int(b)%len(billSuffixAlphabet)]
	}

	return fmt.Sprintf("%s-%s-%s", config.BillPrefix(), now.Format("20060102"), suffix)
}
