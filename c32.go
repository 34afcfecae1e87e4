// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"crypto/sha256"
	"fmt"
	"math/big"
)

// c32Alphabet is the Crockford-style base32 alphabet used by Stacks
// c32check addresses. It drops I, L, O and U to avoid misreads.
const c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// stacksMainnetSingleSig is the c32check version byte for mainnet
// single-sig (P2PKH-style) Stacks addresses. It maps to the 'P' in the
// familiar "SP..." prefix.
const stacksMainnetSingleSig = 22

// c32Checksum is the first four bytes of a double SHA-256 over the version
// byte followed by the payload.
func c32Checksum(version byte, data []byte) []byte {
	buf := make([]byte, 0, 1+len(data))
	buf = append(buf, version)
	buf = append(buf, data...)
	first := sha256.Sum256(buf)
	second := sha256.Sum256(first[:])
	return second[:4]
}

// c32Encode encodes bytes in the c32 alphabet. The value is encoded as a
// big integer; each leading zero byte of the input is preserved as a
// single leading '0' character, matching the reference c32 encoder.
func c32Encode(data []byte) string {
	zeros := 0
	for zeros < len(data) && data[zeros] == 0 {
		zeros++
	}

	n := new(big.Int).SetBytes(data)
	base := big.NewInt(int64(len(c32Alphabet)))
	mod := new(big.Int)

	var digits []byte
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		digits = append(digits, c32Alphabet[mod.Int64()])
	}

	out := make([]byte, 0, zeros+len(digits))
	for i := 0; i < zeros; i++ {
		out = append(out, '0')
	}
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
	}
	return string(out)
}

// c32Address builds a c32check address from a version byte and a 20-byte
// hash160 payload, e.g. "SP..." for mainnet single-sig.
func c32Address(version byte, hash160 []byte) (string, error) {
	if len(hash160) != 20 {
		return "", fmt.Errorf("c32 address payload must be 20 bytes, got %d", len(hash160))
	}
	if int(version) >= len(c32Alphabet) {
		return "", fmt.Errorf("c32 version %d out of range", version)
	}
	payload := make([]byte, 0, len(hash160)+4)
	payload = append(payload, hash160...)
	payload = append(payload, c32Checksum(version, hash160)...)
	return "S" + string(c32Alphabet[version]) + c32Encode(payload), nil
}
