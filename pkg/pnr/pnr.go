package pnr

import (
	"strings"

	"github.com/google/uuid"
)

// Length is the fixed length of every PNR.
const Length = 10

// Generate produces a booking reference derived from a freshly generated
// UUID, so no storage round trip is needed. The tickets.pnr_number UNIQUE
// constraint backstops the negligible collision probability: a duplicate
// insert fails the surrounding transaction.
func Generate() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:Length])
}
