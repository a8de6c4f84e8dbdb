package bridge_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/tuneinsight/lattigo/v4/utils"

	"RingCT-Bridge/bridge"
	"RingCT-Bridge/rct"
)

type leafRand struct {
	t    *testing.T
	prng utils.PRNG
}

func newLeafRand(t *testing.T, seed string) *leafRand {
	t.Helper()
	prng, err := utils.NewKeyedPRNG([]byte(seed))
	if err != nil {
		t.Fatalf("keyed prng: %v", err)
	}
	return &leafRand{t: t, prng: prng}
}

func (l *leafRand) bytes(n int) []byte {
	b := make([]byte, n)
	if _, err := l.prng.Read(b); err != nil {
		l.t.Fatalf("prng read: %v", err)
	}
	return b
}

func (l *leafRand) keys(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = l.bytes(rct.KeySize)
	}
	return out
}

// reconstructFixture builds the leaf vectors for nIn inputs, nOut outputs,
// ring size 3, one bulletproof batch with 7 rounds.
func reconstructFixture(t *testing.T, seed string, nIn, nOut int, mg bool) bridge.ReconstructInput {
	t.Helper()
	l := newLeafRand(t, seed)
	in := bridge.ReconstructInput{
		Bulletproofs: bridge.BulletproofVectors{
			A: l.keys(1), S: l.keys(1), T1: l.keys(1), T2: l.keys(1),
			Taux: l.keys(1), Mu: l.keys(1),
			L: [][][]byte{l.keys(7)}, R: [][][]byte{l.keys(7)},
			Aa: l.keys(1), Bb: l.keys(1), Tt: l.keys(1),
		},
	}
	for o := 0; o < nOut; o++ {
		in.EcdhAmounts = append(in.EcdhAmounts, l.bytes(rct.AmountSize))
		in.OutPkMasks = append(in.OutPkMasks, l.bytes(rct.KeySize))
	}
	if mg {
		v := &bridge.MgVectors{}
		for i := 0; i < nIn; i++ {
			rows := make([][][]byte, 3)
			for r := range rows {
				rows[r] = l.keys(2)
			}
			v.SS = append(v.SS, rows)
			v.CC = append(v.CC, l.bytes(rct.KeySize))
		}
		in.Mg = v
	} else {
		v := &bridge.ClsagVectors{}
		for i := 0; i < nIn; i++ {
			v.S = append(v.S, l.keys(3))
			v.C1 = append(v.C1, l.bytes(rct.KeySize))
			v.D = append(v.D, l.bytes(rct.KeySize))
		}
		in.Clsag = v
	}
	for i := 0; i < nIn; i++ {
		in.PseudoOuts = append(in.PseudoOuts, l.bytes(rct.KeySize))
	}
	return in
}

func TestReconstructMgShapes(t *testing.T) {
	in := reconstructFixture(t, "recon-mg", 2, 2, true)
	sig, err := bridge.Reconstruct(in)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if sig.Variant() != rct.ProofVariantMg {
		t.Fatalf("variant = %v, want mg", sig.Variant())
	}
	if len(sig.P.RingSigs) != 2 {
		t.Fatalf("ring signatures = %d, want 2", len(sig.P.RingSigs))
	}
	for i, p := range sig.P.RingSigs {
		if len(p.Mg.SS) != 3 {
			t.Fatalf("proof %d: ss rows = %d, want 3", i, len(p.Mg.SS))
		}
	}
}

func TestReconstructClsagShapes(t *testing.T) {
	in := reconstructFixture(t, "recon-clsag", 2, 2, false)
	sig, err := bridge.Reconstruct(in)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if sig.Variant() != rct.ProofVariantClsag {
		t.Fatalf("variant = %v, want clsag", sig.Variant())
	}
	for i, p := range sig.P.RingSigs {
		if len(p.Clsag.S) != 3 {
			t.Fatalf("proof %d: s = %d scalars, want 3", i, len(p.Clsag.S))
		}
	}
}

// Re-extracting every leaf from the reconstructed aggregate must match the
// input byte-for-byte.
func TestReconstructRoundTripIdentity(t *testing.T) {
	in := reconstructFixture(t, "recon-ident", 2, 2, true)
	sig, err := bridge.Reconstruct(in)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	for o := range in.EcdhAmounts {
		if !bytes.Equal(sig.EcdhInfo[o].Amount.Bytes(), in.EcdhAmounts[o]) {
			t.Fatalf("ecdh amount %d changed", o)
		}
		if !bytes.Equal(sig.OutPk[o].Mask.Bytes(), in.OutPkMasks[o]) {
			t.Fatalf("output mask %d changed", o)
		}
	}
	bp := sig.P.Bulletproofs[0]
	if !bytes.Equal(bp.A.Bytes(), in.Bulletproofs.A[0]) ||
		!bytes.Equal(bp.Taux.Bytes(), in.Bulletproofs.Taux[0]) ||
		!bytes.Equal(bp.Tt.Bytes(), in.Bulletproofs.Tt[0]) {
		t.Fatal("bulletproof scalar changed")
	}
	for i := range bp.L {
		if !bytes.Equal(bp.L[i].Bytes(), in.Bulletproofs.L[0][i]) ||
			!bytes.Equal(bp.R[i].Bytes(), in.Bulletproofs.R[0][i]) {
			t.Fatalf("bulletproof round %d changed", i)
		}
	}
	for i, p := range sig.P.RingSigs {
		for r := range p.Mg.SS {
			for c := range p.Mg.SS[r] {
				if !bytes.Equal(p.Mg.SS[r][c].Bytes(), in.Mg.SS[i][r][c]) {
					t.Fatalf("ss[%d][%d][%d] changed", i, r, c)
				}
			}
		}
		if !bytes.Equal(p.Mg.CC.Bytes(), in.Mg.CC[i]) {
			t.Fatalf("cc[%d] changed", i)
		}
		if !bytes.Equal(sig.P.PseudoOuts[i].Bytes(), in.PseudoOuts[i]) {
			t.Fatalf("pseudo out %d changed", i)
		}
	}

	// Inputs are copied, not aliased: mutating a source buffer afterwards
	// must not reach into the aggregate.
	in.PseudoOuts[0][0] ^= 0xff
	if sig.P.PseudoOuts[0][0] == in.PseudoOuts[0][0] {
		t.Fatal("aggregate aliases caller memory")
	}
}

func TestReconstructVariantSelection(t *testing.T) {
	both := reconstructFixture(t, "recon-both", 1, 1, true)
	both.Clsag = &bridge.ClsagVectors{}
	if _, err := bridge.Reconstruct(both); !errors.Is(err, rct.ErrShapeMismatch) {
		t.Fatalf("both variants: err = %v, want ErrShapeMismatch", err)
	}

	neither := reconstructFixture(t, "recon-neither", 1, 1, true)
	neither.Mg = nil
	if _, err := bridge.Reconstruct(neither); !errors.Is(err, rct.ErrShapeMismatch) {
		t.Fatalf("no variant: err = %v, want ErrShapeMismatch", err)
	}
}

func TestReconstructParallelLengthChecks(t *testing.T) {
	in := reconstructFixture(t, "recon-parallel", 1, 1, true)
	in.Bulletproofs.Mu = nil
	if _, err := bridge.Reconstruct(in); !errors.Is(err, rct.ErrShapeMismatch) {
		t.Fatalf("missing mu: err = %v, want ErrShapeMismatch", err)
	}

	in = reconstructFixture(t, "recon-parallel", 1, 1, true)
	in.Bulletproofs.L[0] = in.Bulletproofs.L[0][:6]
	if _, err := bridge.Reconstruct(in); !errors.Is(err, rct.ErrShapeMismatch) {
		t.Fatalf("short L: err = %v, want ErrShapeMismatch", err)
	}

	in = reconstructFixture(t, "recon-parallel", 1, 1, true)
	in.Mg.CC = in.Mg.CC[:0]
	if _, err := bridge.Reconstruct(in); !errors.Is(err, rct.ErrShapeMismatch) {
		t.Fatalf("missing cc: err = %v, want ErrShapeMismatch", err)
	}

	in = reconstructFixture(t, "recon-parallel", 1, 2, true)
	in.OutPkMasks = in.OutPkMasks[:1]
	if _, err := bridge.Reconstruct(in); !errors.Is(err, rct.ErrShapeMismatch) {
		t.Fatalf("ecdh/outPk mismatch: err = %v, want ErrShapeMismatch", err)
	}
}

func TestReconstructFieldLengths(t *testing.T) {
	in := reconstructFixture(t, "recon-lengths", 1, 1, false)
	in.OutPkMasks[0] = in.OutPkMasks[0][:31]
	if _, err := bridge.Reconstruct(in); !errors.Is(err, rct.ErrInvalidFieldLength) {
		t.Fatalf("31-byte mask: err = %v, want ErrInvalidFieldLength", err)
	}

	in = reconstructFixture(t, "recon-lengths", 1, 1, false)
	in.EcdhAmounts[0] = append(in.EcdhAmounts[0], 0)
	if _, err := bridge.Reconstruct(in); !errors.Is(err, rct.ErrInvalidFieldLength) {
		t.Fatalf("9-byte amount: err = %v, want ErrInvalidFieldLength", err)
	}

	in = reconstructFixture(t, "recon-lengths", 1, 1, false)
	in.Clsag.D[0] = in.Clsag.D[0][:31]
	if _, err := bridge.Reconstruct(in); !errors.Is(err, rct.ErrInvalidFieldLength) {
		t.Fatalf("short D: err = %v, want ErrInvalidFieldLength", err)
	}
}

// A reconstructed aggregate and a wire round trip of it agree, which is how
// externally produced vectors get fed to a verifier.
func TestReconstructThenSerialize(t *testing.T) {
	sig, err := bridge.Reconstruct(reconstructFixture(t, "recon-wire", 2, 2, false))
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	buf, err := sig.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	back, err := rct.ParseSig(buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	buf2, err := back.Serialize()
	if err != nil {
		t.Fatalf("serialize again: %v", err)
	}
	if !bytes.Equal(buf, buf2) {
		t.Fatal("wire round trip is not stable")
	}
}
