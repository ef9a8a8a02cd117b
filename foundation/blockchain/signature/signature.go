// Package signature provides helper functions for producing the digests the
// ledger uses to link blocks together.
package signature

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Hash returns a unique string for the value. The value is serialized with
// its object keys in sorted order so the digest only depends on the field
// values and never on how the value was put together.
func Hash(value any) string {
	data, err := Canonical(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// Canonical returns the JSON encoding of the value with every object's keys
// sorted lexicographically at every level of nesting.
func Canonical(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	// Decoding into the generic form turns every object into a map. The
	// encoder always writes map keys in sorted order. Numbers are kept as
	// their original text so no precision is lost on the round trip.
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()

	var generic any
	if err := d.Decode(&generic); err != nil {
		return nil, err
	}

	return json.Marshal(generic)
}
