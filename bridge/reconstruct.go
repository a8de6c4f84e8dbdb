package bridge

import (
	"fmt"

	"RingCT-Bridge/rct"
)

// BulletproofVectors holds the parallel per-batch field vectors for the
// range proofs: index b addresses batch b across every field. L and R add a
// per-round dimension.
type BulletproofVectors struct {
	A, S, T1, T2 [][]byte
	Taux, Mu     [][]byte
	L, R         [][][]byte
	Aa, Bb, Tt   [][]byte
}

func (v *BulletproofVectors) batches() (int, error) {
	n := len(v.A)
	for _, f := range []struct {
		name string
		l    int
	}{
		{"S", len(v.S)}, {"T1", len(v.T1)}, {"T2", len(v.T2)},
		{"taux", len(v.Taux)}, {"mu", len(v.Mu)},
		{"L", len(v.L)}, {"R", len(v.R)},
		{"a", len(v.Aa)}, {"b", len(v.Bb)}, {"t", len(v.Tt)},
	} {
		if f.l != n {
			return 0, fmt.Errorf("%w: %d A vectors but %d %s vectors",
				rct.ErrShapeMismatch, n, f.l, f.name)
		}
	}
	return n, nil
}

// MgVectors holds the Variant-A fields: SS[i] is input i's response matrix
// (ring member rows, signing-layer columns) and CC[i] its challenge.
type MgVectors struct {
	SS [][][][]byte
	CC [][]byte
}

// ClsagVectors holds the Variant-B fields per input.
type ClsagVectors struct {
	S  [][][]byte
	C1 [][]byte
	D  [][]byte
}

// ReconstructInput carries every leaf field of a signature aggregate.
// Exactly one of Mg or Clsag must be set; the populated one selects the
// proof variant for the whole aggregate.
type ReconstructInput struct {
	EcdhAmounts  [][]byte
	OutPkMasks   [][]byte
	Bulletproofs BulletproofVectors
	Mg           *MgVectors
	Clsag        *ClsagVectors
	PseudoOuts   [][]byte
}

// Reconstruct reassembles a complete aggregate from independently supplied
// byte vectors. This is structural assembly only: no engine call, no
// cryptographic checks. Every field is copied, so the result round-trips
// byte-for-byte against the inputs, and the aggregate's shape invariants
// are enforced before it is returned.
func Reconstruct(in ReconstructInput) (*rct.Sig, error) {
	if (in.Mg == nil) == (in.Clsag == nil) {
		return nil, fmt.Errorf("%w: exactly one ring-signature field set must be supplied",
			rct.ErrShapeMismatch)
	}
	if len(in.EcdhAmounts) != len(in.OutPkMasks) {
		return nil, fmt.Errorf("%w: %d ecdh amounts but %d output masks",
			rct.ErrShapeMismatch, len(in.EcdhAmounts), len(in.OutPkMasks))
	}

	s := &rct.Sig{}
	s.EcdhInfo = make([]rct.EcdhTuple, len(in.EcdhAmounts))
	for i, b := range in.EcdhAmounts {
		amount, err := rct.EncryptedAmountFromBytes(b)
		if err != nil {
			return nil, fmt.Errorf("ecdh amount %d: %w", i, err)
		}
		s.EcdhInfo[i].Amount = amount
	}
	s.OutPk = make([]rct.CtKey, len(in.OutPkMasks))
	for i, b := range in.OutPkMasks {
		mask, err := rct.PublicKeyFromBytes(b)
		if err != nil {
			return nil, fmt.Errorf("output mask %d: %w", i, err)
		}
		s.OutPk[i].Mask = mask
	}

	nbp, err := in.Bulletproofs.batches()
	if err != nil {
		return nil, err
	}
	s.P.Bulletproofs = make([]rct.Bulletproof, nbp)
	for b := 0; b < nbp; b++ {
		bp, err := rct.BulletproofFromBytes(rct.BulletproofFields{
			A: in.Bulletproofs.A[b], S: in.Bulletproofs.S[b],
			T1: in.Bulletproofs.T1[b], T2: in.Bulletproofs.T2[b],
			Taux: in.Bulletproofs.Taux[b], Mu: in.Bulletproofs.Mu[b],
			L: in.Bulletproofs.L[b], R: in.Bulletproofs.R[b],
			Aa: in.Bulletproofs.Aa[b], Bb: in.Bulletproofs.Bb[b], Tt: in.Bulletproofs.Tt[b],
		})
		if err != nil {
			return nil, fmt.Errorf("bulletproof %d: %w", b, err)
		}
		s.P.Bulletproofs[b] = bp
	}

	switch {
	case in.Mg != nil:
		if len(in.Mg.CC) != len(in.Mg.SS) {
			return nil, fmt.Errorf("%w: %d ss matrices but %d cc scalars",
				rct.ErrShapeMismatch, len(in.Mg.SS), len(in.Mg.CC))
		}
		s.P.RingSigs = make([]rct.RingSigProof, len(in.Mg.SS))
		for i := range in.Mg.SS {
			proof, err := rct.NewMgProof(in.Mg.SS[i], in.Mg.CC[i])
			if err != nil {
				return nil, fmt.Errorf("mg proof %d: %w", i, err)
			}
			s.P.RingSigs[i] = proof
		}
	case in.Clsag != nil:
		if len(in.Clsag.C1) != len(in.Clsag.S) || len(in.Clsag.D) != len(in.Clsag.S) {
			return nil, fmt.Errorf("%w: %d s vectors, %d c1 scalars, %d D keys",
				rct.ErrShapeMismatch, len(in.Clsag.S), len(in.Clsag.C1), len(in.Clsag.D))
		}
		s.P.RingSigs = make([]rct.RingSigProof, len(in.Clsag.S))
		for i := range in.Clsag.S {
			proof, err := rct.NewClsagProof(in.Clsag.S[i], in.Clsag.C1[i], in.Clsag.D[i])
			if err != nil {
				return nil, fmt.Errorf("clsag proof %d: %w", i, err)
			}
			s.P.RingSigs[i] = proof
		}
	}

	s.P.PseudoOuts = make([]rct.PublicKey, len(in.PseudoOuts))
	for i, b := range in.PseudoOuts {
		out, err := rct.PublicKeyFromBytes(b)
		if err != nil {
			return nil, fmt.Errorf("pseudo out %d: %w", i, err)
		}
		s.P.PseudoOuts[i] = out
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
