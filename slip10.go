// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrHardenedOnly is returned when a path asks for an unhardened child on
// the ed25519 curve. SLIP-0010 only defines hardened derivation for
// ed25519; candidates hitting this are skipped, not fatal.
var ErrHardenedOnly = errors.New("ed25519 derivation supports hardened components only")

// slip10MasterKeySalt is the fixed HMAC key for the ed25519 master node,
// as defined by SLIP-0010.
const slip10MasterKeySalt = "ed25519 seed"

// slip10Node is one node of the SLIP-0010 ed25519 key tree. The key field
// is the 32-byte seed for ed25519.NewKeyFromSeed, not the expanded private
// key.
type slip10Node struct {
	key       []byte
	chainCode []byte
}

// slip10Master derives the ed25519 master node from a BIP39 seed.
func slip10Master(seed []byte) slip10Node {
	mac := hmac.New(sha512.New, []byte(slip10MasterKeySalt))
	mac.Write(seed)
	sum := mac.Sum(nil)
	return slip10Node{key: sum[:32], chainCode: sum[32:]}
}

// child derives a hardened child node. SLIP-0010 ed25519 has no concept of
// unhardened children, so hardened must be true.
func (n slip10Node) child(index uint32, hardened bool) (slip10Node, error) {
	if !hardened {
		return slip10Node{}, ErrHardenedOnly
	}

	data := make([]byte, 0, 1+32+4)
	data = append(data, 0x00)
	data = append(data, n.key...)
	data = binary.BigEndian.AppendUint32(data, index+hardenedOffset)

	mac := hmac.New(sha512.New, n.chainCode)
	mac.Write(data)
	sum := mac.Sum(nil)
	return slip10Node{key: sum[:32], chainCode: sum[32:]}, nil
}

// slip10Derive walks a full path from the BIP39 seed and returns the
// 32-byte ed25519 key seed at the leaf.
func slip10Derive(seed []byte, path Path) ([]byte, error) {
	node := slip10Master(seed)
	for _, c := range path {
		var err error
		node, err = node.child(c.Index, c.Hardened)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", path, err)
		}
	}
	return node.key, nil
}
