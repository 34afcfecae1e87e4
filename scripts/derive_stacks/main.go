// derive_stacks derives the first Stacks (SP...) address from a BIP39 mnemonic
// for testing.
//
// Usage:
//
//	go run ./scripts/derive_stacks "your 24 word seed phrase here"
//
// Or with stdin:
//
//	echo "your 24 word seed phrase" | go run ./scripts/derive_stacks
//
// Note: This derives the mainnet single-sig address (version 22) at
// m/44'/5757'/0'/0/0, matching what Leather and Xverse produce for the
// first account.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/complex-gh/seedscan"
)

func main() {
	var mnemonic string

	if len(os.Args) > 1 {
		mnemonic = strings.Join(os.Args[1:], " ")
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			mnemonic = strings.TrimSpace(scanner.Text())
		}
	}

	if mnemonic == "" {
		fmt.Fprintln(os.Stderr, "Usage: derive_stacks \"24 word seed phrase\"")
		fmt.Fprintln(os.Stderr, "   or: echo \"seed phrase\" | derive_stacks")
		os.Exit(1)
	}

	engine := seedscan.NewEngine()
	set, err := engine.Derive(seedscan.NormalizeMnemonic(mnemonic), 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addrs := set[seedscan.FamilyStacks]
	if len(addrs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no address derived")
		os.Exit(1)
	}
	fmt.Println(addrs[0])
}
