package rct

import "fmt"

// CtKey pairs a destination key with a Pedersen commitment mask. Dest is
// either a one-time output key (real spend) or a decoy member; Mask commits
// to the member's amount.
type CtKey struct {
	Dest PublicKey
	Mask PublicKey
}

// CtKeyV is an ordered sequence of committed keys, e.g. one decoy set.
type CtKeyV []CtKey

// Ring is one decoy set per transaction input. Row i is the candidate set
// for input i; exactly one row member is the genuine spend.
type Ring []CtKeyV

// CtKeyFromBytes assembles a CtKey from raw dest and mask material.
func CtKeyFromBytes(dest, mask []byte) (CtKey, error) {
	d, err := PublicKeyFromBytes(dest)
	if err != nil {
		return CtKey{}, fmt.Errorf("dest: %w", err)
	}
	m, err := PublicKeyFromBytes(mask)
	if err != nil {
		return CtKey{}, fmt.Errorf("mask: %w", err)
	}
	return CtKey{Dest: d, Mask: m}, nil
}

// Validate checks the ring against its spend-index vector: one index per
// row, every row non-empty, every index within its row.
func (r Ring) Validate(spendIndices []uint32) error {
	if len(spendIndices) != len(r) {
		return fmt.Errorf("%w: %d rings but %d spend indices", ErrShapeMismatch, len(r), len(spendIndices))
	}
	for i, row := range r {
		if len(row) == 0 {
			return fmt.Errorf("%w: ring %d is empty", ErrShapeMismatch, i)
		}
		if int(spendIndices[i]) >= len(row) {
			return fmt.Errorf("%w: spend index %d out of range for ring %d of size %d",
				ErrShapeMismatch, spendIndices[i], i, len(row))
		}
	}
	return nil
}
