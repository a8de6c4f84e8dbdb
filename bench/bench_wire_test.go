package bench

import (
	"testing"

	"RingCT-Bridge/bridge"
	"RingCT-Bridge/rct"
	"RingCT-Bridge/stubengine"
)

func benchSig(b *testing.B, variant bridge.RangeProofVariant) *rct.Sig {
	b.Helper()
	builder := bridge.Builder{Engine: stubengine.Engine{}, Variant: variant}
	key := make([]byte, rct.KeySize)
	ring := make([]bridge.RingMemberBytes, 11)
	for i := range ring {
		ring[i] = bridge.RingMemberBytes{Dest: key, Mask: key}
	}
	sig, err := builder.BuildSimple(bridge.BuildInput{
		PrefixHash:   key,
		SpendKeys:    []bridge.SpendKeyBytes{{Secret: key, Mask: key}},
		Destinations: [][]byte{key, key},
		AmountKeys:   [][]byte{key, key},
		Ring:         [][]bridge.RingMemberBytes{ring},
		SpendIndices: []uint32{4},
		InAmounts:    []rct.Amount{1000},
		OutAmounts:   []rct.Amount{500, 400},
		Fee:          100,
	})
	if err != nil {
		b.Fatalf("build: %v", err)
	}
	return sig
}

func BenchmarkSerializeMg(b *testing.B) {
	sig := benchSig(b, bridge.RangeProofPaddedV2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sig.Serialize(); err != nil {
			b.Fatalf("serialize: %v", err)
		}
	}
}

func BenchmarkSerializeClsag(b *testing.B) {
	sig := benchSig(b, bridge.RangeProofCompact)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sig.Serialize(); err != nil {
			b.Fatalf("serialize: %v", err)
		}
	}
}

func BenchmarkParseClsag(b *testing.B) {
	sig := benchSig(b, bridge.RangeProofCompact)
	buf, err := sig.Serialize()
	if err != nil {
		b.Fatalf("serialize: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rct.ParseSig(buf); err != nil {
			b.Fatalf("parse: %v", err)
		}
	}
}

func BenchmarkBuildSimple(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		benchSig(b, bridge.RangeProofCompact)
	}
}
