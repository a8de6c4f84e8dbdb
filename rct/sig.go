package rct

import "fmt"

// Prunable is the section of a signature that verifiers may discard after
// checking: per-input pseudo-output commitments, the aggregated range
// proofs, and one ring-signature proof per input.
type Prunable struct {
	PseudoOuts   []PublicKey
	Bulletproofs []Bulletproof
	RingSigs     []RingSigProof
}

// Sig is the full RingCT signature aggregate. EcdhInfo and OutPk run in
// output order; the prunable vectors run in input order. Aggregates are
// built once, by the builder or the reconstructor, and not mutated after.
type Sig struct {
	EcdhInfo []EcdhTuple
	OutPk    []CtKey
	P        Prunable
}

// Variant reports the ring-signature scheme the aggregate carries, or 0 for
// an aggregate with no inputs.
func (s *Sig) Variant() ProofVariant {
	if len(s.P.RingSigs) == 0 {
		return 0
	}
	return s.P.RingSigs[0].Variant
}

// Outputs reports the number of transaction outputs covered.
func (s *Sig) Outputs() int { return len(s.OutPk) }

// Inputs reports the number of transaction inputs covered.
func (s *Sig) Inputs() int { return len(s.P.RingSigs) }

// Validate enforces the aggregate invariants: ecdhInfo and outPk cover the
// same outputs, pseudo-outs and ring signatures cover the same inputs, every
// nested proof is well shaped, and a single proof variant is used
// throughout.
func (s *Sig) Validate() error {
	if len(s.EcdhInfo) != len(s.OutPk) {
		return fmt.Errorf("%w: %d ecdh tuples but %d output keys",
			ErrShapeMismatch, len(s.EcdhInfo), len(s.OutPk))
	}
	if len(s.P.PseudoOuts) != len(s.P.RingSigs) {
		return fmt.Errorf("%w: %d pseudo outs but %d ring signatures",
			ErrShapeMismatch, len(s.P.PseudoOuts), len(s.P.RingSigs))
	}
	for i := range s.P.Bulletproofs {
		if err := s.P.Bulletproofs[i].Validate(); err != nil {
			return fmt.Errorf("bulletproof %d: %w", i, err)
		}
	}
	variant := ProofVariant(0)
	for i := range s.P.RingSigs {
		p := &s.P.RingSigs[i]
		if err := p.Validate(); err != nil {
			return fmt.Errorf("ring signature %d: %w", i, err)
		}
		if variant == 0 {
			variant = p.Variant
		} else if p.Variant != variant {
			return fmt.Errorf("%w: ring signature %d is %s but aggregate is %s",
				ErrShapeMismatch, i, p.Variant, variant)
		}
	}
	return nil
}
