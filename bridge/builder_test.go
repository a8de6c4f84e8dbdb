package bridge_test

import (
	"errors"
	"testing"

	"github.com/tuneinsight/lattigo/v4/utils"

	"RingCT-Bridge/bridge"
	"RingCT-Bridge/rct"
	"RingCT-Bridge/stubengine"
)

// buildFixture assembles a balanced single-input call: ring size 3, spend at
// index 1, two outputs, fee making the amounts balance.
func buildFixture(t *testing.T, seed string) bridge.BuildInput {
	t.Helper()
	prng, err := utils.NewKeyedPRNG([]byte(seed))
	if err != nil {
		t.Fatalf("keyed prng: %v", err)
	}
	key := func() []byte {
		b := make([]byte, rct.KeySize)
		if _, err := prng.Read(b); err != nil {
			t.Fatalf("prng read: %v", err)
		}
		return b
	}
	ring := make([]bridge.RingMemberBytes, 3)
	for i := range ring {
		ring[i] = bridge.RingMemberBytes{Dest: key(), Mask: key()}
	}
	return bridge.BuildInput{
		PrefixHash:   key(),
		SpendKeys:    []bridge.SpendKeyBytes{{Secret: key(), Mask: key()}},
		Destinations: [][]byte{key(), key()},
		AmountKeys:   [][]byte{key(), key()},
		Ring:         [][]bridge.RingMemberBytes{ring},
		SpendIndices: []uint32{1},
		InAmounts:    []rct.Amount{1000},
		OutAmounts:   []rct.Amount{600, 390},
		Fee:          10,
	}
}

func TestBuildSimpleShapes(t *testing.T) {
	b := bridge.Builder{Engine: stubengine.Engine{}, Variant: bridge.RangeProofPaddedV2}
	sig, err := b.BuildSimple(buildFixture(t, "build-shapes"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := sig.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if sig.Outputs() != 2 {
		t.Fatalf("outputs = %d, want 2", sig.Outputs())
	}
	if len(sig.EcdhInfo) != 2 {
		t.Fatalf("ecdh tuples = %d, want 2", len(sig.EcdhInfo))
	}
	if len(sig.P.PseudoOuts) != 1 {
		t.Fatalf("pseudo outs = %d, want 1", len(sig.P.PseudoOuts))
	}
	if len(sig.P.RingSigs) != 1 {
		t.Fatalf("ring signatures = %d, want 1", len(sig.P.RingSigs))
	}
	if sig.Variant() != rct.ProofVariantMg {
		t.Fatalf("variant = %v, want mg for the padded format", sig.Variant())
	}
	if got := sig.P.RingSigs[0].RingSize(); got != 3 {
		t.Fatalf("proof ring size = %d, want 3", got)
	}
}

func TestBuildSimpleCompactVariant(t *testing.T) {
	b := bridge.Builder{Engine: stubengine.Engine{}, Variant: bridge.RangeProofCompact}
	sig, err := b.BuildSimple(buildFixture(t, "build-compact"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sig.Variant() != rct.ProofVariantClsag {
		t.Fatalf("variant = %v, want clsag for the compact format", sig.Variant())
	}
	cl := sig.P.RingSigs[0].Clsag
	if cl == nil || len(cl.S) != 3 {
		t.Fatalf("clsag proof = %+v, want 3 response scalars", cl)
	}
}

func TestBuildSimpleDeterministic(t *testing.T) {
	b := bridge.Builder{Engine: stubengine.Engine{}, Variant: bridge.RangeProofPaddedV2}
	first, err := b.BuildSimple(buildFixture(t, "build-det"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	second, err := b.BuildSimple(buildFixture(t, "build-det"))
	if err != nil {
		t.Fatalf("build again: %v", err)
	}
	bufA, err := first.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	bufB, err := second.Serialize()
	if err != nil {
		t.Fatalf("serialize again: %v", err)
	}
	if string(bufA) != string(bufB) {
		t.Fatal("identical inputs produced different signatures")
	}
}

func TestBuildSimpleUnbalancedAmounts(t *testing.T) {
	b := bridge.Builder{Engine: stubengine.Engine{}, Variant: bridge.RangeProofPaddedV2}
	in := buildFixture(t, "build-unbalanced")
	in.Fee = 11
	if _, err := b.BuildSimple(in); !errors.Is(err, bridge.ErrSigningFailed) {
		t.Fatalf("unbalanced: err = %v, want ErrSigningFailed", err)
	}
}

func TestBuildSimpleFieldLengths(t *testing.T) {
	b := bridge.Builder{Engine: stubengine.Engine{}, Variant: bridge.RangeProofPaddedV2}

	in := buildFixture(t, "build-lengths")
	in.PrefixHash = in.PrefixHash[:31]
	if _, err := b.BuildSimple(in); !errors.Is(err, rct.ErrInvalidFieldLength) {
		t.Fatalf("short prefix: err = %v, want ErrInvalidFieldLength", err)
	}

	in = buildFixture(t, "build-lengths")
	in.SpendKeys[0].Secret = append(in.SpendKeys[0].Secret, 0)
	if _, err := b.BuildSimple(in); !errors.Is(err, rct.ErrInvalidFieldLength) {
		t.Fatalf("33-byte secret: err = %v, want ErrInvalidFieldLength", err)
	}

	in = buildFixture(t, "build-lengths")
	in.Ring[0][2].Mask = in.Ring[0][2].Mask[:31]
	if _, err := b.BuildSimple(in); !errors.Is(err, rct.ErrInvalidFieldLength) {
		t.Fatalf("short ring mask: err = %v, want ErrInvalidFieldLength", err)
	}
}

func TestBuildSimpleShapeMismatches(t *testing.T) {
	b := bridge.Builder{Engine: stubengine.Engine{}, Variant: bridge.RangeProofPaddedV2}

	in := buildFixture(t, "build-mismatch")
	in.SpendIndices = []uint32{3}
	if _, err := b.BuildSimple(in); !errors.Is(err, rct.ErrShapeMismatch) {
		t.Fatalf("index out of range: err = %v, want ErrShapeMismatch", err)
	}

	in = buildFixture(t, "build-mismatch")
	in.InAmounts = append(in.InAmounts, 5)
	if _, err := b.BuildSimple(in); !errors.Is(err, rct.ErrShapeMismatch) {
		t.Fatalf("extra input amount: err = %v, want ErrShapeMismatch", err)
	}

	in = buildFixture(t, "build-mismatch")
	in.AmountKeys = in.AmountKeys[:1]
	if _, err := b.BuildSimple(in); !errors.Is(err, rct.ErrShapeMismatch) {
		t.Fatalf("missing amount key: err = %v, want ErrShapeMismatch", err)
	}
}

func TestBuildSimpleNoEngine(t *testing.T) {
	b := bridge.Builder{Variant: bridge.RangeProofPaddedV2}
	if _, err := b.BuildSimple(buildFixture(t, "build-noengine")); !errors.Is(err, bridge.ErrSigningFailed) {
		t.Fatalf("no engine: err = %v, want ErrSigningFailed", err)
	}
}
