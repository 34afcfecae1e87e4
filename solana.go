// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"github.com/mr-tron/base58"
)

// solanaAddress derives a Solana address: the base58 encoding of the raw
// ed25519 public key at a SLIP-0010 path.
func (d *deriver) solanaAddress(path Path) (string, error) {
	pub, err := d.ed25519PublicKey(path)
	if err != nil {
		return "", err
	}
	return base58.Encode(pub), nil
}

// solanaPrivateKey returns the 32-byte ed25519 key seed at the path.
func (d *deriver) solanaPrivateKey(path Path) ([]byte, error) {
	return slip10Derive(d.seed, path)
}
