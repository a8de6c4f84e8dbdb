package bridge

import (
	"fmt"

	"RingCT-Bridge/rct"
)

// Deriver computes key images through an explicit engine. No default
// backend exists; callers pick the engine per instance.
type Deriver struct {
	Engine Engine
}

// KeyPairBytes is one (secret, public) input to batch derivation.
type KeyPairBytes struct {
	Secret []byte
	Public []byte
}

// DeriveKeyImage validates the 32-byte inputs and delegates to the engine.
// Identical inputs always yield identical images.
func (d Deriver) DeriveKeyImage(secret, public []byte) (rct.KeyImage, error) {
	sk, err := rct.SecretKeyFromBytes(secret)
	if err != nil {
		return rct.KeyImage{}, err
	}
	pk, err := rct.PublicKeyFromBytes(public)
	if err != nil {
		return rct.KeyImage{}, err
	}
	img, err := d.Engine.DeriveKeyImage(sk, pk)
	if err != nil {
		return rct.KeyImage{}, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	return img, nil
}

// DeriveKeyImages derives one image per pair, in order. The whole batch
// fails on the first bad pair; no partial result is returned.
func (d Deriver) DeriveKeyImages(pairs []KeyPairBytes) ([]rct.KeyImage, error) {
	images := make([]rct.KeyImage, len(pairs))
	for i, p := range pairs {
		img, err := d.DeriveKeyImage(p.Secret, p.Public)
		if err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
		images[i] = img
	}
	return images, nil
}
