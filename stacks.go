// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
)

// stacksAddress derives a mainnet Stacks address: c32check over the
// hash160 of the compressed secp256k1 public key, version byte 22, giving
// the familiar "SP..." form.
func (d *deriver) stacksAddress(path Path) (string, error) {
	master, err := d.secMaster()
	if err != nil {
		return "", err
	}
	key, err := deriveBIP32(master, path)
	if err != nil {
		return "", err
	}
	_, pub := btcec.PrivKeyFromBytes(key.Key)
	pubKeyHash := btcutil.Hash160(pub.SerializeCompressed())
	addr, err := c32Address(stacksMainnetSingleSig, pubKeyHash)
	if err != nil {
		return "", fmt.Errorf("encode stacks address at %s: %w", path, err)
	}
	return addr, nil
}

// stacksPrivateKey returns the raw 32-byte secp256k1 scalar at the path.
func (d *deriver) stacksPrivateKey(path Path) ([]byte, error) {
	master, err := d.secMaster()
	if err != nil {
		return nil, err
	}
	key, err := deriveBIP32(master, path)
	if err != nil {
		return nil, err
	}
	return key.Key, nil
}
