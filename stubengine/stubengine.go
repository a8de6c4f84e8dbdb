// Package stubengine is a deterministic, shape-faithful stand-in for a real
// ring-signature engine. Every output is squeezed from a SHAKE-256
// transcript of the call inputs, so identical calls yield identical
// aggregates with the exact vector shapes a real engine would produce. The
// proofs are NOT cryptographically valid and must never be used outside
// tests and offline size analysis.
package stubengine

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"golang.org/x/crypto/sha3"

	"RingCT-Bridge/bridge"
	"RingCT-Bridge/rct"
)

// Engine implements bridge.Engine deterministically.
type Engine struct{}

// expand squeezes 32 bytes from a SHAKE-256 transcript keyed by label.
func expand(label string, parts ...[]byte) [32]byte {
	h := sha3.NewShake256()
	h.Write([]byte(label))
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	h.Read(out[:])
	return out
}

func index(i int) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(i))
	return buf[:]
}

// DeriveKeyImage returns a transcript-derived stand-in for I = x·Hp(P).
func (Engine) DeriveKeyImage(secret rct.SecretKey, public rct.PublicKey) (rct.KeyImage, error) {
	return rct.KeyImage(expand("key-image", secret[:], public[:])), nil
}

// PublicFromSecret returns a transcript-derived stand-in for xG.
func (Engine) PublicFromSecret(secret rct.SecretKey) (rct.PublicKey, error) {
	return rct.PublicKey(expand("public-from-secret", secret[:])), nil
}

// SignSimple mimics the real engine's contract: it rejects unbalanced
// amounts and bad rings, then emits an aggregate whose shapes match the
// requested variant (one padded range-proof batch over all outputs, one
// ring-signature proof per input, one pseudo-out per input).
func (e Engine) SignSimple(p bridge.SignParams) (*rct.Sig, error) {
	nIn := len(p.Secrets)
	nOut := len(p.Destinations)
	if err := p.Ring.Validate(p.SpendIndices); err != nil {
		return nil, err
	}
	var inSum, outSum rct.Amount
	for _, a := range p.InAmounts {
		inSum += a
	}
	for _, a := range p.OutAmounts {
		outSum += a
	}
	if inSum != outSum+p.Fee {
		return nil, fmt.Errorf("amounts do not balance: inputs %d, outputs %d, fee %d",
			inSum, outSum, p.Fee)
	}

	var variant rct.ProofVariant
	switch p.Variant {
	case bridge.RangeProofPaddedV1, bridge.RangeProofPaddedV2:
		variant = rct.ProofVariantMg
	case bridge.RangeProofCompact:
		variant = rct.ProofVariantClsag
	default:
		return nil, fmt.Errorf("unknown range-proof variant %d", p.Variant)
	}
	domain := p.Variant.String()

	s := &rct.Sig{}
	s.EcdhInfo = make([]rct.EcdhTuple, nOut)
	s.OutPk = make([]rct.CtKey, nOut)
	for o := 0; o < nOut; o++ {
		pad := expand("ecdh-pad", p.AmountKeys[o][:], index(o))
		amount := p.OutAmounts[o].Bytes()
		for b := 0; b < rct.AmountSize; b++ {
			s.EcdhInfo[o].Amount[b] = amount[b] ^ pad[b]
		}
		if variant == rct.ProofVariantMg {
			s.EcdhInfo[o].Mask = rct.Hash(expand("ecdh-mask", p.AmountKeys[o][:], index(o)))
		}
		s.OutPk[o] = rct.CtKey{
			Dest: p.Destinations[o],
			Mask: rct.PublicKey(expand("out-commit", p.AmountKeys[o][:], amount)),
		}
	}

	s.P.PseudoOuts = make([]rct.PublicKey, nIn)
	for i := 0; i < nIn; i++ {
		s.P.PseudoOuts[i] = rct.PublicKey(expand("pseudo-out", p.PrefixHash[:], index(i)))
	}

	s.P.Bulletproofs = []rct.Bulletproof{e.rangeProof(domain, p.PrefixHash, s.OutPk)}

	s.P.RingSigs = make([]rct.RingSigProof, nIn)
	for i := 0; i < nIn; i++ {
		s.P.RingSigs[i] = ringSig(variant, p.PrefixHash, len(p.Ring[i]), i)
	}
	return s, nil
}

// Signing layers per ring member in the legacy multi-layer format: one for
// the one-time key, one for the commitment.
const mgLayers = 2

func (Engine) rangeProof(domain string, prefix rct.Hash, outPk []rct.CtKey) rct.Bulletproof {
	// Pad the batch to the next power of two, as the padded proof formats do.
	padded := 1
	for padded < len(outPk) {
		padded <<= 1
	}
	rounds := 6 + bits.Len(uint(padded)) - 1

	bp := rct.Bulletproof{
		A:    rct.PublicKey(expand(domain, prefix[:], []byte("A"))),
		S:    rct.PublicKey(expand(domain, prefix[:], []byte("S"))),
		T1:   rct.PublicKey(expand(domain, prefix[:], []byte("T1"))),
		T2:   rct.PublicKey(expand(domain, prefix[:], []byte("T2"))),
		Taux: rct.SecretKey(expand(domain, prefix[:], []byte("taux"))),
		Mu:   rct.SecretKey(expand(domain, prefix[:], []byte("mu"))),
		Aa:   rct.SecretKey(expand(domain, prefix[:], []byte("a"))),
		Bb:   rct.SecretKey(expand(domain, prefix[:], []byte("b"))),
		Tt:   rct.SecretKey(expand(domain, prefix[:], []byte("t"))),
	}
	bp.V = make([]rct.PublicKey, len(outPk))
	for i := range outPk {
		bp.V[i] = outPk[i].Mask
	}
	bp.L = make([]rct.PublicKey, rounds)
	bp.R = make([]rct.PublicKey, rounds)
	for i := 0; i < rounds; i++ {
		bp.L[i] = rct.PublicKey(expand(domain, prefix[:], []byte("L"), index(i)))
		bp.R[i] = rct.PublicKey(expand(domain, prefix[:], []byte("R"), index(i)))
	}
	return bp
}

func ringSig(variant rct.ProofVariant, prefix rct.Hash, ringSize, input int) rct.RingSigProof {
	switch variant {
	case rct.ProofVariantMg:
		mg := &rct.MgSig{
			SS: make([][]rct.SecretKey, ringSize),
			CC: rct.SecretKey(expand("mg-cc", prefix[:], index(input))),
		}
		for r := 0; r < ringSize; r++ {
			mg.SS[r] = make([]rct.SecretKey, mgLayers)
			for l := 0; l < mgLayers; l++ {
				mg.SS[r][l] = rct.SecretKey(expand("mg-ss", prefix[:], index(input), index(r), index(l)))
			}
		}
		return rct.RingSigProof{Variant: rct.ProofVariantMg, Mg: mg}
	default:
		cl := &rct.ClsagSig{
			S:  make([]rct.SecretKey, ringSize),
			C1: rct.SecretKey(expand("clsag-c1", prefix[:], index(input))),
			D:  rct.PublicKey(expand("clsag-D", prefix[:], index(input))),
		}
		for r := 0; r < ringSize; r++ {
			cl.S[r] = rct.SecretKey(expand("clsag-s", prefix[:], index(input), index(r)))
		}
		return rct.RingSigProof{Variant: rct.ProofVariantClsag, Clsag: cl}
	}
}
