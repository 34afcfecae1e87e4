// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matryer/is"
)

// fastRetry keeps tests quick while still exercising the retry loop.
func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

// rpcHandler builds a JSON-RPC 2.0 test handler dispatching on method name.
func rpcHandler(t *testing.T, results map[string]any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad rpc request: %v", err)
			return
		}
		result, ok := results[req.Method]
		if !ok {
			t.Errorf("unexpected rpc method %q", req.Method)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"result":  result,
		})
	}
}

// TestFormatUnits covers the fixed-point rendering used by all checkers.
func TestFormatUnits(t *testing.T) {
	is := is.New(t)

	wei, _ := new(big.Int).SetString("1000000000000000000", 10)
	is.Equal(formatUnits(wei, 18), "1")
	is.Equal(formatUnits(big.NewInt(0), 18), "0")
	is.Equal(formatUnits(nil, 8), "0")
	is.Equal(formatUnits(big.NewInt(150000000), 8), "1.5")
	is.Equal(formatUnits(big.NewInt(1), 8), "0.00000001")
	is.Equal(formatUnits(big.NewInt(123), 0), "123")
	is.Equal(formatUnits(big.NewInt(1234567), 6), "1.234567")
}

// TestParseHexUint parses EVM quantity encoding.
func TestParseHexUint(t *testing.T) {
	is := is.New(t)

	n, err := parseHexUint("0xde0b6b3a7640000")
	is.NoErr(err)
	is.Equal(n.String(), "1000000000000000000")

	n, err = parseHexUint("0x0")
	is.NoErr(err)
	is.Equal(n.Sign(), 0)

	n, err = parseHexUint("0x")
	is.NoErr(err)
	is.Equal(n.Sign(), 0)

	_, err = parseHexUint("0xzz")
	is.True(err != nil)
}

// TestEVMChecker checks balance and nonce probing over JSON-RPC.
func TestEVMChecker(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(rpcHandler(t, map[string]any{
		"eth_getBalance":          "0xde0b6b3a7640000", // 1 ETH
		"eth_getTransactionCount": "0x5",
	}))
	defer srv.Close()

	c := NewEVMChecker(srv.URL)
	is.Equal(c.Family(), FamilyEVM)
	is.Equal(c.Symbol(), "ETH")

	b, err := c.Check(context.Background(), "0x9858EfFD232B4033E47d90003D41EC34EcaEda94")
	is.NoErr(err)
	is.Equal(b.Native, "1")
	is.Equal(b.Symbol, "ETH")
	is.True(b.HasActivity)
}

// TestEVMChecker_EmptyAccount treats zero balance and zero nonce as
// inactive.
func TestEVMChecker_EmptyAccount(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(rpcHandler(t, map[string]any{
		"eth_getBalance":          "0x0",
		"eth_getTransactionCount": "0x0",
	}))
	defer srv.Close()

	b, err := NewEVMChecker(srv.URL).Check(context.Background(), "0x0000000000000000000000000000000000000001")
	is.NoErr(err)
	is.Equal(b.Native, "0")
	is.True(!b.HasActivity)
}

// TestSolanaChecker checks lamport balance and signature probing.
func TestSolanaChecker(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(rpcHandler(t, map[string]any{
		"getBalance":              map[string]any{"value": 1500000000},
		"getSignaturesForAddress": []map[string]any{{"signature": "abc"}},
	}))
	defer srv.Close()

	b, err := NewSolanaChecker(srv.URL).Check(context.Background(), "11111111111111111111111111111111")
	is.NoErr(err)
	is.Equal(b.Native, "1.5")
	is.Equal(b.Symbol, "SOL")
	is.True(b.HasActivity)
}

// TestBitcoinChecker checks the mempool.space address summary parsing.
func TestBitcoinChecker(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/address/bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu")
		fmt.Fprint(w, `{"chain_stats":{"funded_txo_sum":250000000,"spent_txo_sum":100000000,"tx_count":7}}`)
	}))
	defer srv.Close()

	b, err := NewBitcoinChecker(srv.URL).Check(context.Background(), "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu")
	is.NoErr(err)
	is.Equal(b.Native, "1.5")
	is.Equal(b.Symbol, "BTC")
	is.True(b.HasActivity)
}

// TestStacksChecker checks the Hiro STX balance parsing.
func TestStacksChecker(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"balance":"2500000","total_received":"2500000"}`)
	}))
	defer srv.Close()

	b, err := NewStacksChecker(srv.URL).Check(context.Background(), "SP000000000000000000002Q6VF78")
	is.NoErr(err)
	is.Equal(b.Native, "2.5")
	is.Equal(b.Symbol, "STX")
	is.True(b.HasActivity)
}

// TestSuiChecker checks the fullnode suix_getBalance parsing.
func TestSuiChecker(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(rpcHandler(t, map[string]any{
		"suix_getBalance": map[string]any{"totalBalance": "3000000000", "coinObjectCount": 2},
	}))
	defer srv.Close()

	b, err := NewSuiChecker(srv.URL).Check(context.Background(), "0x"+"00"+"11")
	is.NoErr(err)
	is.Equal(b.Native, "3")
	is.Equal(b.Symbol, "SUI")
	is.True(b.HasActivity)
}

// TestAptosChecker parses the fullnode coin balance endpoint.
func TestAptosChecker(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `250000000`)
	}))
	defer srv.Close()

	b, err := NewAptosChecker(srv.URL).Check(context.Background(), "0xabc")
	is.NoErr(err)
	is.Equal(b.Native, "2.5")
	is.Equal(b.Symbol, "APT")
	is.True(b.HasActivity)
}

// TestAptosChecker_NotFound treats a 404 as an empty account, not an error.
func TestAptosChecker_NotFound(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error_code":"account_not_found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	b, err := NewAptosChecker(srv.URL).Check(context.Background(), "0xdef")
	is.NoErr(err)
	is.Equal(b.Native, "0")
	is.True(!b.HasActivity)
}

// TestWithRetry_ServerErrors retries 5xx responses until success.
func TestWithRetry_ServerErrors(t *testing.T) {
	is := is.New(t)

	var calls int32
	fn := func() (string, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return "", &httpStatusError{StatusCode: http.StatusServiceUnavailable, URL: "test"}
		}
		return "ok", nil
	}

	result, err := withRetry(context.Background(), fastRetry(), fn)
	is.NoErr(err)
	is.Equal(result, "ok")
	is.Equal(atomic.LoadInt32(&calls), int32(3))
}

// TestWithRetry_ClientErrorNotRetried gives up immediately on 4xx.
func TestWithRetry_ClientErrorNotRetried(t *testing.T) {
	is := is.New(t)

	var calls int32
	_, err := withRetry(context.Background(), fastRetry(), func() (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", &httpStatusError{StatusCode: http.StatusBadRequest, URL: "test"}
	})

	var statusErr *httpStatusError
	is.True(errors.As(err, &statusErr))
	is.Equal(statusErr.StatusCode, http.StatusBadRequest)
	is.Equal(atomic.LoadInt32(&calls), int32(1))
}

// TestWithRetry_Exhausted returns the last error after MaxAttempts.
func TestWithRetry_Exhausted(t *testing.T) {
	is := is.New(t)

	var calls int32
	_, err := withRetry(context.Background(), fastRetry(), func() (int, error) {
		atomic.AddInt32(&calls, 1)
		return 0, &httpStatusError{StatusCode: http.StatusInternalServerError, URL: "test"}
	})
	is.True(err != nil)
	is.Equal(atomic.LoadInt32(&calls), int32(3))
}

// TestWithRetry_ContextCancelled stops between attempts when the context
// is done.
func TestWithRetry_ContextCancelled(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := withRetry(ctx, fastRetry(), func() (int, error) {
		return 0, &httpStatusError{StatusCode: http.StatusInternalServerError, URL: "test"}
	})
	is.True(errors.Is(err, context.Canceled))
}

// TestCheckAddresses_ErrorsBecomeRecords converts per-address failures into
// records instead of aborting the run.
func TestCheckAddresses_ErrorsBecomeRecords(t *testing.T) {
	is := is.New(t)

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "nope", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"chain_stats":{"funded_txo_sum":100000000,"spent_txo_sum":0,"tx_count":1}}`)
	}))
	defer srv.Close()

	c := NewBitcoinChecker(srv.URL)
	results := CheckAddresses(context.Background(), c, []string{"addr1", "addr2"}, 0, nil)
	is.Equal(len(results), 2)

	is.Equal(results[0].Address, "addr1")
	is.True(results[0].Error != "")
	is.True(!results[0].HasActivity)

	is.Equal(results[1].Address, "addr2")
	is.Equal(results[1].Error, "")
	is.Equal(results[1].Native, "1")
	is.True(results[1].HasActivity)
}

// TestCheckAddresses_USDValuation multiplies native balances by the cached
// spot price.
func TestCheckAddresses_USDValuation(t *testing.T) {
	is := is.New(t)

	chain := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chain_stats":{"funded_txo_sum":200000000,"spent_txo_sum":0,"tx_count":3}}`)
	}))
	defer chain.Close()

	prices := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/simple/price")
		fmt.Fprint(w, `{"bitcoin":{"usd":50000},"ethereum":{"usd":3000},"solana":{"usd":150},"blockstack":{"usd":2},"sui":{"usd":4},"aptos":{"usd":10}}`)
	}))
	defer prices.Close()

	feed := NewPriceFeed(prices.URL)
	is.NoErr(feed.Fetch(context.Background()))
	is.Equal(feed.USD("BTC"), 50000.0)
	is.Equal(feed.USD("UNKNOWN"), 0.0)

	results := CheckAddresses(context.Background(), NewBitcoinChecker(chain.URL), []string{"addr"}, 0, feed)
	is.Equal(len(results), 1)
	is.Equal(results[0].USDValue, 100000.0) // 2 BTC at 50k
}
