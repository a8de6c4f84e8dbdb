// Package rct defines the in-memory data model for RingCT signatures: the
// fixed-width key containers, committed keys, decoy rings, range proofs, the
// two prunable ring-signature proof variants, and the top-level aggregate.
// It performs no curve arithmetic; cryptographic validity is the signing
// engine's concern. What this package does enforce, strictly, is shape: every
// 32-byte field is exactly 32 bytes, every parallel vector family has equal
// lengths, and no aggregate ever mixes proof variants.
package rct

import (
	"encoding/binary"
	"fmt"
)

const (
	// KeySize is the byte width of every scalar and point container.
	KeySize = 32
	// AmountSize is the byte width of an encoded transaction amount.
	AmountSize = 8
)

// Key is a generic 32-byte curve element, scalar or point.
type Key [KeySize]byte

// SecretKey is a 32-byte scalar.
type SecretKey [KeySize]byte

// PublicKey is a 32-byte compressed point.
type PublicKey [KeySize]byte

// KeyImage is the 32-byte double-spend tag I = x·Hp(P).
type KeyImage [KeySize]byte

// Hash is a 32-byte digest.
type Hash [KeySize]byte

func check32(b []byte, field string) error {
	if len(b) != KeySize {
		return fmt.Errorf("%w: %s is %d bytes, want %d", ErrInvalidFieldLength, field, len(b), KeySize)
	}
	return nil
}

// KeyFromBytes copies b into a Key. b must be exactly 32 bytes.
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if err := check32(b, "key"); err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

// SecretKeyFromBytes copies b into a SecretKey. b must be exactly 32 bytes.
func SecretKeyFromBytes(b []byte) (SecretKey, error) {
	var k SecretKey
	if err := check32(b, "secret key"); err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

// PublicKeyFromBytes copies b into a PublicKey. b must be exactly 32 bytes.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var k PublicKey
	if err := check32(b, "public key"); err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

// KeyImageFromBytes copies b into a KeyImage. b must be exactly 32 bytes.
func KeyImageFromBytes(b []byte) (KeyImage, error) {
	var k KeyImage
	if err := check32(b, "key image"); err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

// HashFromBytes copies b into a Hash. b must be exactly 32 bytes.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if err := check32(b, "hash"); err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

// Bytes returns a fresh copy of the key material.
func (k Key) Bytes() []byte       { return append([]byte(nil), k[:]...) }
func (k SecretKey) Bytes() []byte { return append([]byte(nil), k[:]...) }
func (k PublicKey) Bytes() []byte { return append([]byte(nil), k[:]...) }
func (k KeyImage) Bytes() []byte  { return append([]byte(nil), k[:]...) }
func (h Hash) Bytes() []byte      { return append([]byte(nil), h[:]...) }

// Amount is a transaction value in atomic units.
type Amount uint64

// Bytes returns the 8-byte little-endian encoding of a.
func (a Amount) Bytes() []byte {
	var buf [AmountSize]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(a))
	return buf[:]
}

// AmountFromBytes decodes an 8-byte little-endian amount.
func AmountFromBytes(b []byte) (Amount, error) {
	if len(b) != AmountSize {
		return 0, fmt.Errorf("%w: amount is %d bytes, want %d", ErrInvalidFieldLength, len(b), AmountSize)
	}
	return Amount(binary.LittleEndian.Uint64(b)), nil
}

// EncryptedAmount is the 8-byte masked amount of an ECDH tuple. The mask it
// was encrypted under is not recoverable at this layer.
type EncryptedAmount [AmountSize]byte

// EncryptedAmountFromBytes copies b. b must be exactly 8 bytes.
func EncryptedAmountFromBytes(b []byte) (EncryptedAmount, error) {
	var e EncryptedAmount
	if len(b) != AmountSize {
		return e, fmt.Errorf("%w: encrypted amount is %d bytes, want %d", ErrInvalidFieldLength, len(b), AmountSize)
	}
	copy(e[:], b)
	return e, nil
}

// Bytes returns a fresh copy of the masked amount.
func (e EncryptedAmount) Bytes() []byte { return append([]byte(nil), e[:]...) }
