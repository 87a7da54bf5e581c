package services

import (
	"fmt"
	"math/rand"
	"time"
)

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderNumber returns ORD-<last six digits of unix ms>-<four base36 chars>.
// Collisions are possible; the orders table enforces uniqueness and placement
// retries with a fresh number.
func GenerateOrderNumber(now time.Time) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = orderNumberAlphabet[rand.Intn(len(orderNumberAlphabet))]
	}
	return fmt.Sprintf("ORD-%06d-%s", now.UnixMilli()%1_000_000, suffix)
}
