// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Endpoints holds the public API base URLs the balance layer talks to.
// Every field can be overridden from a YAML file for self-hosted nodes or
// alternative providers.
type Endpoints struct {
	EVM     string `yaml:"evm"`
	Solana  string `yaml:"solana"`
	Bitcoin string `yaml:"bitcoin"`
	Stacks  string `yaml:"stacks"`
	Sui     string `yaml:"sui"`
	Aptos   string `yaml:"aptos"`
	Price   string `yaml:"price"`
}

// DefaultEndpoints returns the public endpoints used when no config file
// is given.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		EVM:     "https://cloudflare-eth.com",
		Solana:  "https://api.mainnet-beta.solana.com",
		Bitcoin: "https://mempool.space/api",
		Stacks:  "https://api.hiro.so",
		Sui:     "https://fullnode.mainnet.sui.io",
		Aptos:   "https://fullnode.mainnet.aptoslabs.com",
		Price:   "https://api.coingecko.com/api/v3",
	}
}

// LoadEndpoints reads endpoint overrides from a YAML file. Fields left
// empty in the file keep their defaults.
func LoadEndpoints(path string) (Endpoints, error) {
	e := DefaultEndpoints()
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return e, fmt.Errorf("could not read endpoints config: %w", err)
	}
	var overrides Endpoints
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return e, fmt.Errorf("could not parse endpoints config: %w", err)
	}
	if overrides.EVM != "" {
		e.EVM = overrides.EVM
	}
	if overrides.Solana != "" {
		e.Solana = overrides.Solana
	}
	if overrides.Bitcoin != "" {
		e.Bitcoin = overrides.Bitcoin
	}
	if overrides.Stacks != "" {
		e.Stacks = overrides.Stacks
	}
	if overrides.Sui != "" {
		e.Sui = overrides.Sui
	}
	if overrides.Aptos != "" {
		e.Aptos = overrides.Aptos
	}
	if overrides.Price != "" {
		e.Price = overrides.Price
	}
	return e, nil
}

// Checker returns the balance checker for one family, or nil for an
// unknown family.
func (e Endpoints) Checker(family Family) Checker {
	switch family {
	case FamilyEVM:
		return NewEVMChecker(e.EVM)
	case FamilySolana:
		return NewSolanaChecker(e.Solana)
	case FamilyBitcoin:
		return NewBitcoinChecker(e.Bitcoin)
	case FamilyStacks:
		return NewStacksChecker(e.Stacks)
	case FamilySui:
		return NewSuiChecker(e.Sui)
	case FamilyAptos:
		return NewAptosChecker(e.Aptos)
	default:
		return nil
	}
}
