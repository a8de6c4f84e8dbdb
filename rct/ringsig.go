package rct

import "fmt"

// ProofVariant tags which prunable ring-signature scheme an aggregate
// carries. The two variants are never mixed within one signature.
type ProofVariant uint8

const (
	// ProofVariantMg is the legacy multi-layer signature (MLSAG-style).
	ProofVariantMg ProofVariant = iota + 1
	// ProofVariantClsag is the compact linkable signature.
	ProofVariantClsag
)

func (v ProofVariant) String() string {
	switch v {
	case ProofVariantMg:
		return "mg"
	case ProofVariantClsag:
		return "clsag"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// MgSig is the legacy multi-layer proof for one input: a response matrix SS
// with one row per ring member and one column per signing layer, plus the
// challenge scalar CC.
type MgSig struct {
	SS [][]SecretKey
	CC SecretKey
}

// ClsagSig is the compact linkable proof for one input: one response scalar
// per ring member, the initial challenge C1, and the commitment-offset key D.
type ClsagSig struct {
	S  []SecretKey
	C1 SecretKey
	D  PublicKey
}

// RingSigProof is the tagged union over the two prunable proof variants.
// Exactly one branch is populated, matching Variant.
type RingSigProof struct {
	Variant ProofVariant
	Mg      *MgSig
	Clsag   *ClsagSig
}

// NewMgProof builds a Variant-A proof from raw response rows and the
// challenge. Rows must form a rectangular matrix of 32-byte scalars.
func NewMgProof(ss [][][]byte, cc []byte) (RingSigProof, error) {
	mg := MgSig{SS: make([][]SecretKey, len(ss))}
	layers := -1
	for i, row := range ss {
		if layers < 0 {
			layers = len(row)
		} else if len(row) != layers {
			return RingSigProof{}, fmt.Errorf("%w: ss row %d has %d layers, want %d",
				ErrShapeMismatch, i, len(row), layers)
		}
		mg.SS[i] = make([]SecretKey, len(row))
		for j, s := range row {
			sk, err := SecretKeyFromBytes(s)
			if err != nil {
				return RingSigProof{}, fmt.Errorf("ss[%d][%d]: %w", i, j, err)
			}
			mg.SS[i][j] = sk
		}
	}
	var err error
	if mg.CC, err = SecretKeyFromBytes(cc); err != nil {
		return RingSigProof{}, fmt.Errorf("cc: %w", err)
	}
	return RingSigProof{Variant: ProofVariantMg, Mg: &mg}, nil
}

// NewClsagProof builds a Variant-B proof from raw response scalars, the
// initial challenge and the commitment offset.
func NewClsagProof(s [][]byte, c1, d []byte) (RingSigProof, error) {
	cl := ClsagSig{S: make([]SecretKey, len(s))}
	for i, b := range s {
		sk, err := SecretKeyFromBytes(b)
		if err != nil {
			return RingSigProof{}, fmt.Errorf("s[%d]: %w", i, err)
		}
		cl.S[i] = sk
	}
	var err error
	if cl.C1, err = SecretKeyFromBytes(c1); err != nil {
		return RingSigProof{}, fmt.Errorf("c1: %w", err)
	}
	if cl.D, err = PublicKeyFromBytes(d); err != nil {
		return RingSigProof{}, fmt.Errorf("D: %w", err)
	}
	return RingSigProof{Variant: ProofVariantClsag, Clsag: &cl}, nil
}

// RingSize reports how many ring members the proof covers.
func (p *RingSigProof) RingSize() int {
	switch p.Variant {
	case ProofVariantMg:
		return len(p.Mg.SS)
	case ProofVariantClsag:
		return len(p.Clsag.S)
	default:
		return 0
	}
}

// Validate checks the tag against the populated branch and the branch's own
// shape (rectangular SS matrix for Variant A).
func (p *RingSigProof) Validate() error {
	switch p.Variant {
	case ProofVariantMg:
		if p.Mg == nil || p.Clsag != nil {
			return fmt.Errorf("%w: mg proof tag with wrong branch populated", ErrShapeMismatch)
		}
		layers := -1
		for i, row := range p.Mg.SS {
			if layers < 0 {
				layers = len(row)
			} else if len(row) != layers {
				return fmt.Errorf("%w: ss row %d has %d layers, want %d",
					ErrShapeMismatch, i, len(row), layers)
			}
		}
		return nil
	case ProofVariantClsag:
		if p.Clsag == nil || p.Mg != nil {
			return fmt.Errorf("%w: clsag proof tag with wrong branch populated", ErrShapeMismatch)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown proof variant %d", ErrShapeMismatch, p.Variant)
	}
}
