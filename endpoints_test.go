// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

// TestLoadEndpoints_PartialOverride keeps defaults for fields the config
// file leaves out.
func TestLoadEndpoints_PartialOverride(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "endpoints.yaml")
	config := "evm: https://eth.example.com\nbitcoin: https://btc.example.com/api\n"
	is.NoErr(os.WriteFile(path, []byte(config), 0o600))

	e, err := LoadEndpoints(path)
	is.NoErr(err)
	is.Equal(e.EVM, "https://eth.example.com")
	is.Equal(e.Bitcoin, "https://btc.example.com/api")
	is.Equal(e.Solana, DefaultEndpoints().Solana)
	is.Equal(e.Price, DefaultEndpoints().Price)
}

// TestLoadEndpoints_MissingFile fails with the defaults still usable.
func TestLoadEndpoints_MissingFile(t *testing.T) {
	is := is.New(t)

	e, err := LoadEndpoints(filepath.Join(t.TempDir(), "nope.yaml"))
	is.True(err != nil)
	is.Equal(e, DefaultEndpoints())
}

// TestLoadEndpoints_BadYAML rejects malformed config.
func TestLoadEndpoints_BadYAML(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "endpoints.yaml")
	is.NoErr(os.WriteFile(path, []byte("evm: [unclosed"), 0o600))

	_, err := LoadEndpoints(path)
	is.True(err != nil)
}

// TestEndpoints_Checker dispatches one checker per family.
func TestEndpoints_Checker(t *testing.T) {
	is := is.New(t)

	e := DefaultEndpoints()
	for _, f := range Families() {
		c := e.Checker(f)
		is.True(c != nil)
		is.Equal(c.Family(), f)
		is.Equal(c.Symbol(), f.NativeSymbol())
	}
	is.True(e.Checker(Family("dogecoin")) == nil)
}
