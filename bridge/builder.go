package bridge

import (
	"fmt"

	"RingCT-Bridge/rct"
)

// SpendKeyBytes is one caller-supplied spend input: the one-time secret key
// and the Pedersen commitment mask of the output being spent.
type SpendKeyBytes struct {
	Secret []byte
	Mask   []byte
}

// RingMemberBytes is one decoy-set member: destination key and commitment.
type RingMemberBytes struct {
	Dest []byte
	Mask []byte
}

// BuildInput carries the raw material for one signing call. Vector lengths
// must agree: SpendKeys, Ring, SpendIndices and InAmounts per input;
// Destinations, AmountKeys and OutAmounts per output.
type BuildInput struct {
	PrefixHash   []byte
	SpendKeys    []SpendKeyBytes
	Destinations [][]byte
	AmountKeys   [][]byte
	Ring         [][]RingMemberBytes
	SpendIndices []uint32
	InAmounts    []rct.Amount
	OutAmounts   []rct.Amount
	Fee          rct.Amount
}

// Builder marshals raw byte vectors into the rct model and invokes the
// engine's simple signing routine. Engine and range-proof variant are
// explicit; there is no ambient default backend.
type Builder struct {
	Engine  Engine
	Variant RangeProofVariant
}

// BuildSimple validates every field length and vector shape, computes each
// spend key's public counterpart so a mismatched key/mask pair cannot pass
// through unchecked, assembles the ring, and hands the whole batch to the
// engine. Engine rejections surface as ErrSigningFailed; nothing partial is
// ever returned.
func (b Builder) BuildSimple(in BuildInput) (*rct.Sig, error) {
	if b.Engine == nil {
		return nil, fmt.Errorf("%w: no engine configured", ErrSigningFailed)
	}
	p := SignParams{
		SpendIndices: in.SpendIndices,
		InAmounts:    in.InAmounts,
		OutAmounts:   in.OutAmounts,
		Fee:          in.Fee,
		Variant:      b.Variant,
	}
	var err error
	if p.PrefixHash, err = rct.HashFromBytes(in.PrefixHash); err != nil {
		return nil, fmt.Errorf("prefix hash: %w", err)
	}

	nIn := len(in.SpendKeys)
	if len(in.Ring) != nIn || len(in.SpendIndices) != nIn || len(in.InAmounts) != nIn {
		return nil, fmt.Errorf("%w: %d spend keys, %d rings, %d spend indices, %d input amounts",
			rct.ErrShapeMismatch, nIn, len(in.Ring), len(in.SpendIndices), len(in.InAmounts))
	}
	nOut := len(in.Destinations)
	if len(in.AmountKeys) != nOut || len(in.OutAmounts) != nOut {
		return nil, fmt.Errorf("%w: %d destinations, %d amount keys, %d output amounts",
			rct.ErrShapeMismatch, nOut, len(in.AmountKeys), len(in.OutAmounts))
	}

	p.Secrets = make([]rct.SecretKey, nIn)
	p.SpendKeys = make(rct.CtKeyV, nIn)
	for i, sk := range in.SpendKeys {
		if p.Secrets[i], err = rct.SecretKeyFromBytes(sk.Secret); err != nil {
			return nil, fmt.Errorf("spend key %d: %w", i, err)
		}
		// The public half is recomputed from the secret rather than taken
		// from the caller, then paired with the caller's mask.
		pub, err := b.Engine.PublicFromSecret(p.Secrets[i])
		if err != nil {
			return nil, fmt.Errorf("spend key %d: %w: %v", i, ErrSigningFailed, err)
		}
		mask, err := rct.PublicKeyFromBytes(sk.Mask)
		if err != nil {
			return nil, fmt.Errorf("spend key %d mask: %w", i, err)
		}
		p.SpendKeys[i] = rct.CtKey{Dest: pub, Mask: mask}
	}

	p.Destinations = make([]rct.PublicKey, nOut)
	p.AmountKeys = make([]rct.Hash, nOut)
	for i := range in.Destinations {
		if p.Destinations[i], err = rct.PublicKeyFromBytes(in.Destinations[i]); err != nil {
			return nil, fmt.Errorf("destination %d: %w", i, err)
		}
		if p.AmountKeys[i], err = rct.HashFromBytes(in.AmountKeys[i]); err != nil {
			return nil, fmt.Errorf("amount key %d: %w", i, err)
		}
	}

	p.Ring = make(rct.Ring, nIn)
	for i, row := range in.Ring {
		p.Ring[i] = make(rct.CtKeyV, len(row))
		for v, member := range row {
			if p.Ring[i][v], err = rct.CtKeyFromBytes(member.Dest, member.Mask); err != nil {
				return nil, fmt.Errorf("ring[%d][%d]: %w", i, v, err)
			}
		}
	}
	if err := p.Ring.Validate(in.SpendIndices); err != nil {
		return nil, err
	}

	sig, err := b.Engine.SignSimple(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	if err := sig.Validate(); err != nil {
		return nil, fmt.Errorf("engine returned malformed aggregate: %w", err)
	}
	return sig, nil
}
