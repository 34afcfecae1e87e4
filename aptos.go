// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// aptosSchemeSingleEd25519 is the authentication key scheme identifier
// appended to the public key before hashing (single-key ed25519).
const aptosSchemeSingleEd25519 = 0x00

// aptosAddress derives an Aptos address: 0x-prefixed hex of the sha3-256
// authentication key over the ed25519 public key and the single-key
// scheme byte.
func (d *deriver) aptosAddress(path Path) (string, error) {
	pub, err := d.ed25519PublicKey(path)
	if err != nil {
		return "", err
	}
	payload := make([]byte, 0, len(pub)+1)
	payload = append(payload, pub...)
	payload = append(payload, aptosSchemeSingleEd25519)
	sum := sha3.Sum256(payload)
	return "0x" + hex.EncodeToString(sum[:]), nil
}

// aptosPrivateKey returns the 32-byte ed25519 key seed at the path.
func (d *deriver) aptosPrivateKey(path Path) ([]byte, error) {
	return slip10Derive(d.seed, path)
}
