// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// suiSchemeEd25519 is the signature scheme flag prepended to the public
// key before hashing, per the Sui address spec.
const suiSchemeEd25519 = 0x00

// suiAddress derives a Sui address: 0x-prefixed hex of the blake2b-256
// hash over the ed25519 scheme flag followed by the public key.
func (d *deriver) suiAddress(path Path) (string, error) {
	pub, err := d.ed25519PublicKey(path)
	if err != nil {
		return "", err
	}
	payload := make([]byte, 0, 1+len(pub))
	payload = append(payload, suiSchemeEd25519)
	payload = append(payload, pub...)
	sum := blake2b.Sum256(payload)
	return "0x" + hex.EncodeToString(sum[:]), nil
}

// suiPrivateKey returns the 32-byte ed25519 key seed at the path.
func (d *deriver) suiPrivateKey(path Path) ([]byte, error) {
	return slip10Derive(d.seed, path)
}
