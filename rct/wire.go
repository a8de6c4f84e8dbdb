package rct

import (
	"bytes"
	"fmt"

	"RingCT-Bridge/measure"
)

// Wire type bytes, following the reference numbering: 3 for the legacy
// multi-layer format (full ecdh tuples), 5 for the compact linkable format
// (8-byte ecdh amounts only, mask derived by the receiver).
const (
	wireTypeMg    = 3
	wireTypeClsag = 5
)

// Serialize encodes the aggregate: type byte, ecdh tuples, output masks,
// then the prunable section (range proofs, ring signatures, pseudo outs).
// Vector lengths are varint-prefixed so the buffer is self-describing. The
// aggregate must validate; shape errors surface before any byte is written.
func (s *Sig) Serialize() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	variant := s.Variant()
	var buf []byte
	switch variant {
	case ProofVariantMg:
		buf = appendVarint(buf, wireTypeMg)
	case ProofVariantClsag:
		buf = appendVarint(buf, wireTypeClsag)
	default:
		return nil, fmt.Errorf("%w: aggregate has no ring signatures", ErrShapeMismatch)
	}

	buf = appendVarint(buf, uint64(len(s.EcdhInfo)))
	for i := range s.EcdhInfo {
		if variant == ProofVariantMg {
			buf = append(buf, s.EcdhInfo[i].Mask[:]...)
		}
		buf = append(buf, s.EcdhInfo[i].Amount[:]...)
	}
	buf = appendVarint(buf, uint64(len(s.OutPk)))
	for i := range s.OutPk {
		buf = append(buf, s.OutPk[i].Mask[:]...)
	}
	baseLen := len(buf)

	buf = appendVarint(buf, uint64(len(s.P.Bulletproofs)))
	for i := range s.P.Bulletproofs {
		buf = appendBulletproof(buf, &s.P.Bulletproofs[i])
	}
	buf = appendVarint(buf, uint64(len(s.P.RingSigs)))
	for i := range s.P.RingSigs {
		buf = appendRingSig(buf, &s.P.RingSigs[i])
	}
	buf = appendVarint(buf, uint64(len(s.P.PseudoOuts)))
	for i := range s.P.PseudoOuts {
		buf = append(buf, s.P.PseudoOuts[i][:]...)
	}

	if measure.Enabled {
		measure.Global.Add("rct/wire/base", uint64(baseLen))
		measure.Global.Add("rct/wire/prunable", uint64(len(buf)-baseLen))
	}
	return buf, nil
}

func appendBulletproof(buf []byte, bp *Bulletproof) []byte {
	buf = appendVarint(buf, uint64(len(bp.V)))
	for i := range bp.V {
		buf = append(buf, bp.V[i][:]...)
	}
	buf = append(buf, bp.A[:]...)
	buf = append(buf, bp.S[:]...)
	buf = append(buf, bp.T1[:]...)
	buf = append(buf, bp.T2[:]...)
	buf = append(buf, bp.Taux[:]...)
	buf = append(buf, bp.Mu[:]...)
	buf = appendVarint(buf, uint64(len(bp.L)))
	for i := range bp.L {
		buf = append(buf, bp.L[i][:]...)
	}
	buf = appendVarint(buf, uint64(len(bp.R)))
	for i := range bp.R {
		buf = append(buf, bp.R[i][:]...)
	}
	buf = append(buf, bp.Aa[:]...)
	buf = append(buf, bp.Bb[:]...)
	buf = append(buf, bp.Tt[:]...)
	return buf
}

func appendRingSig(buf []byte, p *RingSigProof) []byte {
	switch p.Variant {
	case ProofVariantMg:
		buf = appendVarint(buf, uint64(len(p.Mg.SS)))
		layers := 0
		if len(p.Mg.SS) > 0 {
			layers = len(p.Mg.SS[0])
		}
		buf = appendVarint(buf, uint64(layers))
		for i := range p.Mg.SS {
			for j := range p.Mg.SS[i] {
				buf = append(buf, p.Mg.SS[i][j][:]...)
			}
		}
		buf = append(buf, p.Mg.CC[:]...)
	case ProofVariantClsag:
		buf = appendVarint(buf, uint64(len(p.Clsag.S)))
		for i := range p.Clsag.S {
			buf = append(buf, p.Clsag.S[i][:]...)
		}
		buf = append(buf, p.Clsag.C1[:]...)
		buf = append(buf, p.Clsag.D[:]...)
	}
	return buf
}

// ParseSig decodes a buffer produced by Serialize. Truncated or oversized
// buffers are rejected; the returned aggregate validates.
func ParseSig(buf []byte) (*Sig, error) {
	r := bytes.NewReader(buf)
	typ, err := readVarint(r)
	if err != nil {
		return nil, err
	}
	var variant ProofVariant
	switch typ {
	case wireTypeMg:
		variant = ProofVariantMg
	case wireTypeClsag:
		variant = ProofVariantClsag
	default:
		return nil, fmt.Errorf("%w: unknown signature type %d", ErrShapeMismatch, typ)
	}

	s := &Sig{}
	n, err := readVarint(r)
	if err != nil {
		return nil, err
	}
	if err := checkCount(r, n, AmountSize); err != nil {
		return nil, err
	}
	s.EcdhInfo = make([]EcdhTuple, n)
	for i := range s.EcdhInfo {
		if variant == ProofVariantMg {
			if err := readFixed(r, s.EcdhInfo[i].Mask[:], "ecdh mask"); err != nil {
				return nil, err
			}
		}
		if err := readFixed(r, s.EcdhInfo[i].Amount[:], "ecdh amount"); err != nil {
			return nil, err
		}
	}
	if n, err = readVarint(r); err != nil {
		return nil, err
	}
	if err := checkCount(r, n, KeySize); err != nil {
		return nil, err
	}
	s.OutPk = make([]CtKey, n)
	for i := range s.OutPk {
		if err := readFixed(r, s.OutPk[i].Mask[:], "output mask"); err != nil {
			return nil, err
		}
	}

	if n, err = readVarint(r); err != nil {
		return nil, err
	}
	if err := checkCount(r, n, KeySize); err != nil {
		return nil, err
	}
	s.P.Bulletproofs = make([]Bulletproof, n)
	for i := range s.P.Bulletproofs {
		if err := readBulletproof(r, &s.P.Bulletproofs[i]); err != nil {
			return nil, fmt.Errorf("bulletproof %d: %w", i, err)
		}
	}
	if n, err = readVarint(r); err != nil {
		return nil, err
	}
	if err := checkCount(r, n, KeySize); err != nil {
		return nil, err
	}
	s.P.RingSigs = make([]RingSigProof, n)
	for i := range s.P.RingSigs {
		if err := readRingSig(r, &s.P.RingSigs[i], variant); err != nil {
			return nil, fmt.Errorf("ring signature %d: %w", i, err)
		}
	}
	if n, err = readVarint(r); err != nil {
		return nil, err
	}
	if err := checkCount(r, n, KeySize); err != nil {
		return nil, err
	}
	s.P.PseudoOuts = make([]PublicKey, n)
	for i := range s.P.PseudoOuts {
		if err := readFixed(r, s.P.PseudoOuts[i][:], "pseudo out"); err != nil {
			return nil, err
		}
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after signature", ErrInvalidFieldLength, r.Len())
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func readFixed(r *bytes.Reader, dst []byte, field string) error {
	if n, err := r.Read(dst); err != nil || n != len(dst) {
		return fmt.Errorf("%w: truncated %s", ErrInvalidFieldLength, field)
	}
	return nil
}

// checkCount rejects a vector count that cannot fit in the remaining buffer,
// so a corrupt count never drives a huge allocation.
func checkCount(r *bytes.Reader, n uint64, elemSize int) error {
	if n > uint64(r.Len())/uint64(elemSize) {
		return fmt.Errorf("%w: count %d exceeds remaining buffer", ErrInvalidFieldLength, n)
	}
	return nil
}

func readBulletproof(r *bytes.Reader, bp *Bulletproof) error {
	n, err := readVarint(r)
	if err != nil {
		return err
	}
	if err := checkCount(r, n, KeySize); err != nil {
		return err
	}
	bp.V = make([]PublicKey, n)
	for i := range bp.V {
		if err := readFixed(r, bp.V[i][:], "V"); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		name string
		dst  []byte
	}{
		{"A", bp.A[:]}, {"S", bp.S[:]}, {"T1", bp.T1[:]}, {"T2", bp.T2[:]},
		{"taux", bp.Taux[:]}, {"mu", bp.Mu[:]},
	} {
		if err := readFixed(r, f.dst, f.name); err != nil {
			return err
		}
	}
	if n, err = readVarint(r); err != nil {
		return err
	}
	if err := checkCount(r, n, KeySize); err != nil {
		return err
	}
	bp.L = make([]PublicKey, n)
	for i := range bp.L {
		if err := readFixed(r, bp.L[i][:], "L"); err != nil {
			return err
		}
	}
	if n, err = readVarint(r); err != nil {
		return err
	}
	if err := checkCount(r, n, KeySize); err != nil {
		return err
	}
	bp.R = make([]PublicKey, n)
	for i := range bp.R {
		if err := readFixed(r, bp.R[i][:], "R"); err != nil {
			return err
		}
	}
	if len(bp.L) != len(bp.R) {
		return fmt.Errorf("%w: len(L)=%d len(R)=%d", ErrShapeMismatch, len(bp.L), len(bp.R))
	}
	for _, f := range []struct {
		name string
		dst  []byte
	}{
		{"a", bp.Aa[:]}, {"b", bp.Bb[:]}, {"t", bp.Tt[:]},
	} {
		if err := readFixed(r, f.dst, f.name); err != nil {
			return err
		}
	}
	return nil
}

func readRingSig(r *bytes.Reader, p *RingSigProof, variant ProofVariant) error {
	p.Variant = variant
	switch variant {
	case ProofVariantMg:
		rows, err := readVarint(r)
		if err != nil {
			return err
		}
		layers, err := readVarint(r)
		if err != nil {
			return err
		}
		if err := checkCount(r, rows, KeySize); err != nil {
			return err
		}
		if err := checkCount(r, layers, KeySize); err != nil {
			return err
		}
		if err := checkCount(r, rows*layers, KeySize); err != nil {
			return err
		}
		mg := &MgSig{SS: make([][]SecretKey, rows)}
		for i := range mg.SS {
			mg.SS[i] = make([]SecretKey, layers)
			for j := range mg.SS[i] {
				if err := readFixed(r, mg.SS[i][j][:], "ss"); err != nil {
					return err
				}
			}
		}
		if err := readFixed(r, mg.CC[:], "cc"); err != nil {
			return err
		}
		p.Mg = mg
	case ProofVariantClsag:
		n, err := readVarint(r)
		if err != nil {
			return err
		}
		if err := checkCount(r, n, KeySize); err != nil {
			return err
		}
		cl := &ClsagSig{S: make([]SecretKey, n)}
		for i := range cl.S {
			if err := readFixed(r, cl.S[i][:], "s"); err != nil {
				return err
			}
		}
		if err := readFixed(r, cl.C1[:], "c1"); err != nil {
			return err
		}
		if err := readFixed(r, cl.D[:], "D"); err != nil {
			return err
		}
		p.Clsag = cl
	}
	return nil
}
