// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	hdwallet "github.com/stephenlacy/go-ethereum-hdwallet"
)

// evmAddress derives the EIP-55 checksummed hex address at the given
// path. One address serves every EVM chain; they all share the keccak256
// based encoding.
func (d *deriver) evmAddress(path Path) (string, error) {
	account, err := d.evmAccount(path)
	if err != nil {
		return "", err
	}
	return account.Address.Hex(), nil
}

// evmPrivateKey returns the raw 32-byte secp256k1 scalar at the path.
// Callers own the hygiene of the returned bytes.
func (d *deriver) evmPrivateKey(path Path) ([]byte, error) {
	wallet, err := d.ethWallet()
	if err != nil {
		return nil, err
	}
	account, err := d.evmAccount(path)
	if err != nil {
		return nil, err
	}
	key, err := wallet.PrivateKeyBytes(account)
	if err != nil {
		return nil, fmt.Errorf("private key at %s: %w", path, err)
	}
	return key, nil
}

func (d *deriver) evmAccount(path Path) (accounts.Account, error) {
	wallet, err := d.ethWallet()
	if err != nil {
		return accounts.Account{}, err
	}
	derivationPath, err := hdwallet.ParseDerivationPath(path.String())
	if err != nil {
		return accounts.Account{}, fmt.Errorf("parse %s: %w", path, err)
	}
	account, err := wallet.Derive(derivationPath, false)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("derive %s: %w", path, err)
	}
	return account, nil
}
