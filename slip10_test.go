// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/matryer/is"
)

// TestSLIP10_MasterNode pins the ed25519 master node against the SLIP-0010
// test vector for seed 000102030405060708090a0b0c0d0e0f.
func TestSLIP10_MasterNode(t *testing.T) {
	is := is.New(t)

	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	is.NoErr(err)

	node := slip10Master(seed)
	is.Equal(hex.EncodeToString(node.key), "2b4be7f19ee27bbf30c667b642d5f4aa69fd169872f8fc3059c08ebae2eb19e7")
	is.Equal(hex.EncodeToString(node.chainCode), "90046a93de5380a72b5e45010748567d5ea02bbf6522f979e05c0d8d8ca9fffb")
}

// TestSLIP10_HardenedChild pins the m/0' node from the same vector.
func TestSLIP10_HardenedChild(t *testing.T) {
	is := is.New(t)

	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	is.NoErr(err)

	path, err := ParsePath("m/0'")
	is.NoErr(err)
	key, err := slip10Derive(seed, path)
	is.NoErr(err)
	is.Equal(hex.EncodeToString(key), "68e0fe46dfb67e368c75379acec591dad19df3cde26e63b93a8e704f1dade7a3")

	node := slip10Master(seed)
	child, err := node.child(0, true)
	is.NoErr(err)
	is.Equal(hex.EncodeToString(child.chainCode), "8b59aa11380b624e81507a27fedda59fea6d0b779a778918a2fd3590e16e9c69")
}

// TestSLIP10_UnhardenedRejected verifies ed25519 derivation refuses
// unhardened components anywhere in the path.
func TestSLIP10_UnhardenedRejected(t *testing.T) {
	is := is.New(t)

	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	is.NoErr(err)

	node := slip10Master(seed)
	_, err = node.child(0, false)
	is.True(errors.Is(err, ErrHardenedOnly))

	path, err := ParsePath("m/44'/784'/0'/0/0")
	is.NoErr(err)
	_, err = slip10Derive(seed, path)
	is.True(errors.Is(err, ErrHardenedOnly))
}

// TestSLIP10_Deterministic verifies the walk is pure.
func TestSLIP10_Deterministic(t *testing.T) {
	is := is.New(t)

	seed, err := MnemonicToSeed(testMnemonic12)
	is.NoErr(err)
	path, err := ParsePath("m/44'/501'/0'/0'")
	is.NoErr(err)

	a, err := slip10Derive(seed, path)
	is.NoErr(err)
	b, err := slip10Derive(seed, path)
	is.NoErr(err)
	is.Equal(a, b)
	is.Equal(len(a), 32)
}
