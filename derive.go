// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFamily is returned when an address or key is requested for
// a family the engine has no registered scheme for.
var ErrUnsupportedFamily = errors.New("unsupported chain family")

// AddressSet maps each family to its ordered sequence of unique derived
// addresses. Order is generation order; duplicates produced by different
// templates of the same family keep the first occurrence. The set is the
// engine's whole contract with the balance checkers.
type AddressSet map[Family][]string

// Candidate is the result of one (template, index) derivation attempt.
// Either Address is set or Err records why the candidate was skipped.
// Keeping the skip reason explicit lets callers and tests see exactly
// which candidates dropped out instead of hiding it.
type Candidate struct {
	Family  Family
	Path    string
	Index   uint32
	Address string
	Err     error
}

// Skipped reports whether this candidate failed derivation.
func (c Candidate) Skipped() bool {
	return c.Err != nil
}

// Engine derives addresses from a mnemonic using a fixed table of path
// schemes. The zero-dependency core: no I/O, no clock, no randomness.
// Engines are stateless and safe for concurrent use.
type Engine struct {
	schemes []Scheme
}

// NewEngine builds an engine over the given schemes, or over
// DefaultSchemes when none are given. Passing an explicit scheme list is
// the extension point: add a template or a family without touching the
// engine.
func NewEngine(schemes ...Scheme) *Engine {
	if len(schemes) == 0 {
		schemes = DefaultSchemes()
	}
	return &Engine{schemes: schemes}
}

// Derive produces the deduplicated address set for the first count
// indices of every registered family. An invalid mnemonic fails the whole
// call with no partial output; a single failing candidate is skipped and
// never aborts its family.
func (e *Engine) Derive(mnemonic string, count int) (AddressSet, error) {
	candidates, err := e.DeriveCandidates(mnemonic, count)
	if err != nil {
		return nil, err
	}

	set := make(AddressSet, len(e.schemes))
	seen := make(map[Family]map[string]bool, len(e.schemes))
	for _, s := range e.schemes {
		set[s.Family] = []string{}
		seen[s.Family] = make(map[string]bool)
	}

	for _, c := range candidates {
		if c.Skipped() || seen[c.Family][c.Address] {
			continue
		}
		seen[c.Family][c.Address] = true
		set[c.Family] = append(set[c.Family], c.Address)
	}
	return set, nil
}

// DeriveCandidates runs the same walk as Derive but returns every
// candidate, including skipped ones and duplicates, in generation order:
// for each family, for each index, templates in declared order.
func (e *Engine) DeriveCandidates(mnemonic string, count int) ([]Candidate, error) {
	seed, err := MnemonicToSeed(mnemonic)
	if err != nil {
		return nil, err
	}
	d := newDeriver(seed)

	var candidates []Candidate
	for _, scheme := range e.schemes {
		for index := 0; index < count; index++ {
			for _, tmpl := range scheme.Templates {
				candidates = append(candidates, deriveCandidate(d, scheme, tmpl, uint32(index)))
			}
		}
	}
	return candidates, nil
}

func deriveCandidate(d *deriver, scheme Scheme, tmpl Template, index uint32) Candidate {
	c := Candidate{Family: scheme.Family, Index: index}
	path, err := tmpl.Instantiate(index)
	if err != nil {
		c.Err = err
		return c
	}
	c.Path = path.String()
	c.Address, c.Err = d.address(scheme.Family, path)
	return c
}

// privateKeyFuncs dispatches private key derivation per family. The
// enum-keyed table keeps family coverage in one place; a family missing
// here fails with ErrUnsupportedFamily rather than silently misbehaving.
var privateKeyFuncs = map[Family]func(*deriver, Path) ([]byte, error){
	FamilyEVM:     (*deriver).evmPrivateKey,
	FamilySolana:  (*deriver).solanaPrivateKey,
	FamilyBitcoin: (*deriver).bitcoinPrivateKey,
	FamilyStacks:  (*deriver).stacksPrivateKey,
	FamilySui:     (*deriver).suiPrivateKey,
	FamilyAptos:   (*deriver).aptosPrivateKey,
}

// PrivateKey derives the private key material for a family's primary
// template at the given index. It exists as a seam for balance checkers
// that must sign a read query; the caller assumes responsibility for not
// persisting, logging or transmitting the result. Nothing in this package
// ever serializes it.
func (e *Engine) PrivateKey(mnemonic string, family Family, index uint32) ([]byte, error) {
	var scheme *Scheme
	for i := range e.schemes {
		if e.schemes[i].Family == family {
			scheme = &e.schemes[i]
			break
		}
	}
	if scheme == nil || len(scheme.Templates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFamily, family)
	}
	fn, ok := privateKeyFuncs[family]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFamily, family)
	}

	seed, err := MnemonicToSeed(mnemonic)
	if err != nil {
		return nil, err
	}
	path, err := scheme.Templates[0].Instantiate(index)
	if err != nil {
		return nil, err
	}
	return fn(newDeriver(seed), path)
}
