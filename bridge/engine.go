// Package bridge marshals caller-supplied byte material into the rct data
// model and drives an external ring-signature engine: key-image derivation,
// full signature construction, and the reverse path that reassembles a
// signature from its serialized leaf fields.
package bridge

import (
	"errors"
	"fmt"

	"RingCT-Bridge/rct"
)

// ErrSigningFailed marks a rejection reported by the engine (unbalanced
// amounts, invalid ring, out-of-range spend index). The engine's reason is
// carried in the wrapped message; this layer never retries.
var ErrSigningFailed = errors.New("signing failed")

// RangeProofVariant selects the range-proof format the engine produces. The
// numeric encoding is an engine convention; this layer forwards the value
// verbatim. The padded variants yield legacy multi-layer ring signatures,
// the compact variant yields linkable compact signatures.
type RangeProofVariant uint8

const (
	RangeProofPaddedV1 RangeProofVariant = iota + 1
	RangeProofPaddedV2
	RangeProofCompact
)

func (v RangeProofVariant) String() string {
	switch v {
	case RangeProofPaddedV1:
		return "padded-v1"
	case RangeProofPaddedV2:
		return "padded-v2"
	case RangeProofCompact:
		return "compact"
	default:
		return fmt.Sprintf("range-proof-variant(%d)", uint8(v))
	}
}

// SignParams is the fully marshaled input handed to the engine's simple
// (per-input blinding factor) signing routine. All vectors are already
// shape-checked by the builder; Secrets runs parallel to SpendKeys, whose
// Dest fields hold the computed public counterparts.
type SignParams struct {
	PrefixHash   rct.Hash
	Secrets      []rct.SecretKey
	SpendKeys    rct.CtKeyV
	Destinations []rct.PublicKey
	AmountKeys   []rct.Hash
	Ring         rct.Ring
	SpendIndices []uint32
	InAmounts    []rct.Amount
	OutAmounts   []rct.Amount
	Fee          rct.Amount
	Variant      RangeProofVariant
}

// Engine is the external ring-signature engine boundary. Implementations
// own all curve arithmetic and proof math; they must be safe for concurrent
// use. This layer trusts the engine to reject cryptographically invalid
// inputs and performs no scalar-range or on-curve checks of its own.
type Engine interface {
	// DeriveKeyImage computes I = x·Hp(P) for secret x and public P.
	DeriveKeyImage(secret rct.SecretKey, public rct.PublicKey) (rct.KeyImage, error)

	// PublicFromSecret computes the public counterpart of a secret scalar.
	PublicFromSecret(secret rct.SecretKey) (rct.PublicKey, error)

	// SignSimple produces a complete signature aggregate, or fails without
	// partial output if the amounts do not balance or the ring is invalid.
	SignSimple(p SignParams) (*rct.Sig, error)
}
