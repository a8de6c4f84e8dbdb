package rct

import "fmt"

// Bulletproof is one aggregated range proof batching the commitments of a
// set of outputs: the commitment vector V, the round commitments A, S, T1,
// T2, the challenge responses Taux and Mu, the log-sized inner-product
// vectors L and R, and the final scalars Aa, Bb, Tt (a, b, t in the
// reference format; renamed to keep them exported).
type Bulletproof struct {
	V          []PublicKey
	A, S       PublicKey
	T1, T2     PublicKey
	Taux, Mu   SecretKey
	L, R       []PublicKey
	Aa, Bb, Tt SecretKey
}

// BulletproofFields is the raw-byte form of one proof batch, as supplied by
// a caller replaying an externally produced signature.
type BulletproofFields struct {
	A, S, T1, T2 []byte
	Taux, Mu     []byte
	L, R         [][]byte
	Aa, Bb, Tt   []byte
}

// BulletproofFromBytes assembles one proof from its leaf fields. Every
// scalar/point must be exactly 32 bytes and L and R must have equal length.
func BulletproofFromBytes(f BulletproofFields) (Bulletproof, error) {
	var bp Bulletproof
	var err error
	fixed := []struct {
		name string
		src  []byte
		dst  *[KeySize]byte
	}{
		{"A", f.A, (*[KeySize]byte)(&bp.A)},
		{"S", f.S, (*[KeySize]byte)(&bp.S)},
		{"T1", f.T1, (*[KeySize]byte)(&bp.T1)},
		{"T2", f.T2, (*[KeySize]byte)(&bp.T2)},
		{"taux", f.Taux, (*[KeySize]byte)(&bp.Taux)},
		{"mu", f.Mu, (*[KeySize]byte)(&bp.Mu)},
		{"a", f.Aa, (*[KeySize]byte)(&bp.Aa)},
		{"b", f.Bb, (*[KeySize]byte)(&bp.Bb)},
		{"t", f.Tt, (*[KeySize]byte)(&bp.Tt)},
	}
	for _, s := range fixed {
		if err = check32(s.src, "bulletproof "+s.name); err != nil {
			return Bulletproof{}, err
		}
		copy(s.dst[:], s.src)
	}
	if len(f.L) != len(f.R) {
		return Bulletproof{}, fmt.Errorf("%w: len(L)=%d len(R)=%d", ErrShapeMismatch, len(f.L), len(f.R))
	}
	bp.L = make([]PublicKey, len(f.L))
	bp.R = make([]PublicKey, len(f.R))
	for i := range f.L {
		if bp.L[i], err = PublicKeyFromBytes(f.L[i]); err != nil {
			return Bulletproof{}, fmt.Errorf("L[%d]: %w", i, err)
		}
		if bp.R[i], err = PublicKeyFromBytes(f.R[i]); err != nil {
			return Bulletproof{}, fmt.Errorf("R[%d]: %w", i, err)
		}
	}
	return bp, nil
}

// Validate checks the proof's internal shape.
func (bp *Bulletproof) Validate() error {
	if len(bp.L) != len(bp.R) {
		return fmt.Errorf("%w: len(L)=%d len(R)=%d", ErrShapeMismatch, len(bp.L), len(bp.R))
	}
	return nil
}
