// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

// TestC32Address_BurnAddress pins the encoder against the well-known Stacks
// burn address: version 22 over twenty zero bytes.
func TestC32Address_BurnAddress(t *testing.T) {
	is := is.New(t)

	addr, err := c32Address(stacksMainnetSingleSig, make([]byte, 20))
	is.NoErr(err)
	is.Equal(addr, "SP000000000000000000002Q6VF78")
}

// TestC32Address_Shape checks prefix and alphabet membership for a
// non-trivial payload.
func TestC32Address_Shape(t *testing.T) {
	is := is.New(t)

	hash := make([]byte, 20)
	for i := range hash {
		hash[i] = byte(i*7 + 1)
	}
	addr, err := c32Address(stacksMainnetSingleSig, hash)
	is.NoErr(err)
	is.True(strings.HasPrefix(addr, "SP"))
	for _, r := range addr[1:] {
		is.True(strings.ContainsRune(c32Alphabet, r))
	}
}

// TestC32Address_BadPayload rejects payloads that are not 20 bytes.
func TestC32Address_BadPayload(t *testing.T) {
	is := is.New(t)

	_, err := c32Address(stacksMainnetSingleSig, make([]byte, 19))
	is.True(err != nil)
	_, err = c32Address(stacksMainnetSingleSig, make([]byte, 21))
	is.True(err != nil)
	_, err = c32Address(32, make([]byte, 20)) // version out of alphabet range
	is.True(err != nil)
}

// TestC32Encode_LeadingZeros preserves each leading zero byte as one '0'.
func TestC32Encode_LeadingZeros(t *testing.T) {
	is := is.New(t)

	is.Equal(c32Encode([]byte{}), "")
	is.Equal(c32Encode([]byte{0}), "0")
	is.Equal(c32Encode([]byte{0, 0, 1}), "001")
	is.Equal(c32Encode([]byte{31}), "Z")
	is.Equal(c32Encode([]byte{1, 0}), "80") // 256 = 8*32 + 0
}
