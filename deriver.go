// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"crypto/ed25519"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip32"

	hdwallet "github.com/stephenlacy/go-ethereum-hdwallet"
)

// deriver walks derivation paths against one BIP39 seed. The per-curve
// master keys are built lazily and cached for the lifetime of a single
// Derive call; a deriver is not safe for concurrent use.
type deriver struct {
	seed []byte

	eth *hdwallet.Wallet       // EVM, BIP32 via go-ethereum accounts
	btc *hdkeychain.ExtendedKey // Bitcoin, BIP32 mainnet
	sec *bip32.Key              // Stacks, raw BIP32
}

func newDeriver(seed []byte) *deriver {
	return &deriver{seed: seed}
}

// address derives and encodes the address for one instantiated path.
func (d *deriver) address(family Family, path Path) (string, error) {
	switch family {
	case FamilyEVM:
		return d.evmAddress(path)
	case FamilySolana:
		return d.solanaAddress(path)
	case FamilyBitcoin:
		return d.bitcoinAddress(path)
	case FamilyStacks:
		return d.stacksAddress(path)
	case FamilySui:
		return d.suiAddress(path)
	case FamilyAptos:
		return d.aptosAddress(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFamily, family)
	}
}

// ed25519PublicKey derives the ed25519 public key at a SLIP-0010 path.
func (d *deriver) ed25519PublicKey(path Path) (ed25519.PublicKey, error) {
	keySeed, err := slip10Derive(d.seed, path)
	if err != nil {
		return nil, err
	}
	priv := ed25519.NewKeyFromSeed(keySeed)
	return priv.Public().(ed25519.PublicKey), nil
}

// ethWallet lazily opens the BIP32 tree used for EVM derivation.
func (d *deriver) ethWallet() (*hdwallet.Wallet, error) {
	if d.eth == nil {
		w, err := hdwallet.NewFromSeed(d.seed)
		if err != nil {
			return nil, fmt.Errorf("could not build EVM wallet from seed: %w", err)
		}
		d.eth = w
	}
	return d.eth, nil
}

// btcMaster lazily builds the Bitcoin mainnet extended master key.
func (d *deriver) btcMaster() (*hdkeychain.ExtendedKey, error) {
	if d.btc == nil {
		master, err := hdkeychain.NewMaster(d.seed, &chaincfg.MainNetParams)
		if err != nil {
			return nil, fmt.Errorf("could not build bitcoin master key: %w", err)
		}
		d.btc = master
	}
	return d.btc, nil
}

// secMaster lazily builds the raw BIP32 master key used for Stacks.
func (d *deriver) secMaster() (*bip32.Key, error) {
	if d.sec == nil {
		master, err := bip32.NewMasterKey(d.seed)
		if err != nil {
			return nil, fmt.Errorf("could not build secp256k1 master key: %w", err)
		}
		d.sec = master
	}
	return d.sec, nil
}

// deriveBIP32 walks a path on a raw bip32 key, applying the hardened
// offset per component.
func deriveBIP32(master *bip32.Key, path Path) (*bip32.Key, error) {
	key := master
	for _, c := range path {
		index := c.Index
		if c.Hardened {
			index += bip32.FirstHardenedChild
		}
		child, err := key.NewChildKey(index)
		if err != nil {
			return nil, fmt.Errorf("derive child %d of %s: %w", c.Index, path, err)
		}
		key = child
	}
	return key, nil
}
