// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// BIP43 purpose values selecting the Bitcoin address encoding.
const (
	purposeBIP44 = 44 // legacy P2PKH (1...)
	purposeBIP84 = 84 // native segwit P2WPKH (bc1...)
)

// bitcoinAddress derives a mainnet Bitcoin address. The path's purpose
// component picks the encoding: 84' yields bech32 P2WPKH, 44' yields
// base58check P2PKH.
func (d *deriver) bitcoinAddress(path Path) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("empty bitcoin derivation path")
	}

	key, err := d.bitcoinKey(path)
	if err != nil {
		return "", err
	}
	pub, err := key.ECPubKey()
	if err != nil {
		return "", fmt.Errorf("public key at %s: %w", path, err)
	}
	pubKeyHash := btcutil.Hash160(pub.SerializeCompressed())

	switch path[0].Index {
	case purposeBIP84:
		addr, err := btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, &chaincfg.MainNetParams)
		if err != nil {
			return "", fmt.Errorf("encode segwit address at %s: %w", path, err)
		}
		return addr.EncodeAddress(), nil
	case purposeBIP44:
		addr, err := btcutil.NewAddressPubKeyHash(pubKeyHash, &chaincfg.MainNetParams)
		if err != nil {
			return "", fmt.Errorf("encode legacy address at %s: %w", path, err)
		}
		return addr.EncodeAddress(), nil
	default:
		return "", fmt.Errorf("unsupported bitcoin purpose %d'", path[0].Index)
	}
}

// bitcoinPrivateKey returns the raw 32-byte secp256k1 scalar at the path.
func (d *deriver) bitcoinPrivateKey(path Path) ([]byte, error) {
	key, err := d.bitcoinKey(path)
	if err != nil {
		return nil, err
	}
	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("private key at %s: %w", path, err)
	}
	return priv.Serialize(), nil
}

func (d *deriver) bitcoinKey(path Path) (*hdkeychain.ExtendedKey, error) {
	key, err := d.btcMaster()
	if err != nil {
		return nil, err
	}
	for _, c := range path {
		index := c.Index
		if c.Hardened {
			index += hdkeychain.HardenedKeyStart
		}
		key, err = key.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("derive child %d of %s: %w", c.Index, path, err)
		}
	}
	return key, nil
}
