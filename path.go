// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package seedscan derives cryptocurrency addresses from a single BIP39
// mnemonic across multiple chain families and checks them for balances.
//
// The derivation engine is pure: for a fixed mnemonic and address count it
// produces the same address set byte for byte, with no randomness, no
// clock and no network access. Balance checking is a separate, optional
// layer that only ever sees the derived public addresses.
package seedscan

import (
	"fmt"
	"strconv"
	"strings"
)

// Family identifies a chain ecosystem sharing one derivation and address
// encoding scheme. All EVM chains count as a single family.
type Family string

// The six supported chain families.
const (
	FamilyEVM     Family = "evm"
	FamilySolana  Family = "solana"
	FamilyBitcoin Family = "bitcoin"
	FamilyStacks  Family = "stacks"
	FamilySui     Family = "sui"
	FamilyAptos   Family = "aptos"
)

// Families returns the supported families in their canonical order.
func Families() []Family {
	return []Family{FamilyEVM, FamilySolana, FamilyBitcoin, FamilyStacks, FamilySui, FamilyAptos}
}

// NativeSymbol returns the ticker of the family's native asset.
func (f Family) NativeSymbol() string {
	switch f {
	case FamilyEVM:
		return "ETH"
	case FamilySolana:
		return "SOL"
	case FamilyBitcoin:
		return "BTC"
	case FamilyStacks:
		return "STX"
	case FamilySui:
		return "SUI"
	case FamilyAptos:
		return "APT"
	default:
		return ""
	}
}

// Curve selects the key derivation scheme a family uses.
type Curve int

const (
	// CurveSecp256k1 uses BIP32 hierarchical derivation.
	CurveSecp256k1 Curve = iota

	// CurveEd25519 uses SLIP-0010 hierarchical derivation. Only hardened
	// child keys can be derived on this curve.
	CurveEd25519
)

// Component is one level of a hierarchical derivation path.
type Component struct {
	Index    uint32
	Hardened bool
}

// Path is a fully instantiated derivation path, root first.
type Path []Component

// String renders the path in the usual m/44'/60'/0'/0/0 notation.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, c := range p {
		b.WriteString("/")
		b.WriteString(strconv.FormatUint(uint64(c.Index), 10))
		if c.Hardened {
			b.WriteString("'")
		}
	}
	return b.String()
}

// ParsePath parses a derivation path like "m/44'/60'/0'/0/5". Apostrophes
// mark hardened components.
func ParsePath(s string) (Path, error) {
	if s != "m" && !strings.HasPrefix(s, "m/") {
		return nil, fmt.Errorf("invalid derivation path %q: must start with m/", s)
	}
	if s == "m" {
		return Path{}, nil
	}

	parts := strings.Split(s[2:], "/")
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("invalid derivation path %q: empty component", s)
		}
		hardened := false
		if strings.HasSuffix(part, "'") {
			hardened = true
			part = strings.TrimSuffix(part, "'")
		}
		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid derivation path component %q: %w", part, err)
		}
		if index >= hardenedOffset {
			return nil, fmt.Errorf("derivation path component %d out of range", index)
		}
		path = append(path, Component{Index: uint32(index), Hardened: hardened})
	}
	return path, nil
}

// hardenedOffset is the BIP32 hardened key offset (2^31).
const hardenedOffset = 0x80000000

// Template is a parameterized derivation path with a single %d slot for
// the address index, e.g. "m/44'/60'/0'/0/%d".
type Template string

// Instantiate substitutes the address index into the template.
func (t Template) Instantiate(index uint32) (Path, error) {
	if !strings.Contains(string(t), "%d") {
		return nil, fmt.Errorf("template %q has no %%d index slot", t)
	}
	return ParsePath(fmt.Sprintf(string(t), index))
}

// Scheme describes how one family derives and encodes addresses. The
// template order is fixed: it determines output ordering, and the first
// template is the family's primary path for private key access.
//
// Multiple templates per family replicate the slightly different hardening
// conventions wallet applications adopted over time; trying each one
// maximizes the chance of matching what a real wallet would have derived.
type Scheme struct {
	Family    Family
	Curve     Curve
	Templates []Template
}

// DefaultSchemes returns the built-in path tables for all six families.
// The result is a fresh slice; callers may filter or reorder it before
// handing it to NewEngine.
func DefaultSchemes() []Scheme {
	return []Scheme{
		{
			Family:    FamilyEVM,
			Curve:     CurveSecp256k1,
			Templates: []Template{"m/44'/60'/0'/0/%d"},
		},
		{
			Family:    FamilySolana,
			Curve:     CurveEd25519,
			Templates: []Template{"m/44'/501'/%d'/0'"},
		},
		{
			Family: FamilyBitcoin,
			Curve:  CurveSecp256k1,
			Templates: []Template{
				"m/84'/0'/0'/0/%d", // native segwit (bc1...)
				"m/44'/0'/0'/0/%d", // legacy P2PKH (1...)
			},
		},
		{
			Family:    FamilyStacks,
			Curve:     CurveSecp256k1,
			Templates: []Template{"m/44'/5757'/0'/0/%d"},
		},
		{
			Family: FamilySui,
			Curve:  CurveEd25519,
			Templates: []Template{
				"m/44'/784'/%d'/0'/0'",
				"m/44'/784'/0'/0'/%d'",
				"m/44'/784'/0'/0/%d", // unhardened tail, always skipped on ed25519
			},
		},
		{
			Family: FamilyAptos,
			Curve:  CurveEd25519,
			Templates: []Template{
				"m/44'/637'/%d'/0'/0'",
				"m/44'/637'/0'/0'/%d'",
			},
		},
	}
}

// SchemeFor returns the default scheme for a family.
func SchemeFor(family Family) (Scheme, bool) {
	for _, s := range DefaultSchemes() {
		if s.Family == family {
			return s, true
		}
	}
	return Scheme{}, false
}
