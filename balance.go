// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// TokenBalance is one non-native token held by an address.
type TokenBalance struct {
	Symbol  string `json:"symbol"`
	Balance string `json:"balance"`
}

// Balance is the per-address record the checkers produce. Native amounts
// are decimal strings in display units so report output stays byte
// stable. Only public addresses ever appear here.
type Balance struct {
	Address     string         `json:"address"`
	Native      string         `json:"nativeBalance"`
	Symbol      string         `json:"nativeSymbol"`
	Tokens      []TokenBalance `json:"tokens"`
	HasActivity bool           `json:"hasActivity"`
	USDValue    float64        `json:"usdValue"`
	Error       string         `json:"error,omitempty"`
}

// Checker queries one chain family's public API for a single address.
type Checker interface {
	Family() Family
	Symbol() string
	Check(ctx context.Context, address string) (Balance, error)
}

// CheckAddresses runs a checker sequentially over an address list with a
// fixed delay between calls, converting per-address failures into records
// with the Error field set. Prices may be nil to skip USD valuation.
func CheckAddresses(ctx context.Context, c Checker, addresses []string, delay time.Duration, prices *PriceFeed) []Balance {
	results := make([]Balance, 0, len(addresses))
	for i, addr := range addresses {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				results = append(results, Balance{Address: addr, Symbol: c.Symbol(), Tokens: []TokenBalance{}, Error: ctx.Err().Error()})
				continue
			case <-time.After(delay):
			}
		}

		record, err := c.Check(ctx, addr)
		if err != nil {
			log.Warn().Str("family", string(c.Family())).Str("address", addr).Err(err).Msg("balance check failed")
			record = Balance{Address: addr, Symbol: c.Symbol(), Tokens: []TokenBalance{}, Error: err.Error()}
		} else if prices != nil {
			if amount, perr := strconv.ParseFloat(record.Native, 64); perr == nil {
				record.USDValue = amount * prices.USD(c.Symbol())
			}
		}
		log.Debug().Str("family", string(c.Family())).Str("address", addr).
			Str("balance", record.Native).Bool("active", record.HasActivity).Msg("checked address")
		results = append(results, record)
	}
	return results
}

// formatUnits renders a raw integer chain amount as a decimal string in
// display units, trimming trailing zeros.
func formatUnits(amount *big.Int, decimals int) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}
	s := amount.String()
	if decimals == 0 {
		return s
	}
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}
	cut := len(s) - decimals
	whole, frac := s[:cut], s[cut:]
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

// apiClient is the shared HTTP plumbing for all checkers.
type apiClient struct {
	client *http.Client
	retry  RetryConfig
}

func newAPIClient() apiClient {
	return apiClient{
		client: &http.Client{Timeout: 15 * time.Second},
		retry:  DefaultRetryConfig(),
	}
}

// getJSON fetches a URL and decodes the JSON body into out.
func (a apiClient) getJSON(ctx context.Context, url string, out any) error {
	_, err := withRetry(ctx, a.retry, func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to create GET request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := a.client.Do(req)
		if err != nil {
			return struct{}{}, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body) //nolint:errcheck
			return struct{}{}, &httpStatusError{StatusCode: resp.StatusCode, URL: url}
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return struct{}{}, fmt.Errorf("could not decode response: %w", err)
		}
		return struct{}{}, nil
	})
	return err
}

// rpcCall performs a JSON-RPC 2.0 request and returns the raw result.
func (a apiClient) rpcCall(ctx context.Context, endpoint, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return nil, fmt.Errorf("could not encode %s request: %w", method, err)
	}

	return withRetry(ctx, a.retry, func() (json.RawMessage, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create POST request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := a.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body) //nolint:errcheck
			return nil, &httpStatusError{StatusCode: resp.StatusCode, URL: endpoint}
		}

		var rpcResp struct {
			Result json.RawMessage `json:"result"`
			Error  *struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
			return nil, fmt.Errorf("could not decode %s response: %w", method, err)
		}
		if rpcResp.Error != nil {
			return nil, fmt.Errorf("%s: rpc error %d: %s", method, rpcResp.Error.Code, rpcResp.Error.Message)
		}
		return rpcResp.Result, nil
	})
}

// parseHexUint parses an 0x-prefixed hex quantity as returned by EVM
// JSON-RPC endpoints.
func parseHexUint(s string) (*big.Int, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return big.NewInt(0), nil
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex quantity %q", s)
	}
	return n, nil
}

// evmChecker queries an EVM JSON-RPC endpoint.
type evmChecker struct {
	apiClient
	endpoint string
}

// NewEVMChecker builds a checker over an EVM JSON-RPC endpoint.
func NewEVMChecker(endpoint string) Checker {
	return &evmChecker{apiClient: newAPIClient(), endpoint: endpoint}
}

func (c *evmChecker) Family() Family { return FamilyEVM }
func (c *evmChecker) Symbol() string { return FamilyEVM.NativeSymbol() }

func (c *evmChecker) Check(ctx context.Context, address string) (Balance, error) {
	var balanceHex string
	raw, err := c.rpcCall(ctx, c.endpoint, "eth_getBalance", address, "latest")
	if err != nil {
		return Balance{}, err
	}
	if err := json.Unmarshal(raw, &balanceHex); err != nil {
		return Balance{}, fmt.Errorf("eth_getBalance: %w", err)
	}
	wei, err := parseHexUint(balanceHex)
	if err != nil {
		return Balance{}, fmt.Errorf("eth_getBalance: %w", err)
	}

	var nonceHex string
	raw, err = c.rpcCall(ctx, c.endpoint, "eth_getTransactionCount", address, "latest")
	if err != nil {
		return Balance{}, err
	}
	if err := json.Unmarshal(raw, &nonceHex); err != nil {
		return Balance{}, fmt.Errorf("eth_getTransactionCount: %w", err)
	}
	nonce, err := parseHexUint(nonceHex)
	if err != nil {
		return Balance{}, fmt.Errorf("eth_getTransactionCount: %w", err)
	}

	return Balance{
		Address:     address,
		Native:      formatUnits(wei, 18),
		Symbol:      c.Symbol(),
		Tokens:      []TokenBalance{},
		HasActivity: wei.Sign() > 0 || nonce.Sign() > 0,
	}, nil
}

// solanaChecker queries a Solana JSON-RPC endpoint.
type solanaChecker struct {
	apiClient
	endpoint string
}

// NewSolanaChecker builds a checker over a Solana JSON-RPC endpoint.
func NewSolanaChecker(endpoint string) Checker {
	return &solanaChecker{apiClient: newAPIClient(), endpoint: endpoint}
}

func (c *solanaChecker) Family() Family { return FamilySolana }
func (c *solanaChecker) Symbol() string { return FamilySolana.NativeSymbol() }

func (c *solanaChecker) Check(ctx context.Context, address string) (Balance, error) {
	raw, err := c.rpcCall(ctx, c.endpoint, "getBalance", address)
	if err != nil {
		return Balance{}, err
	}
	var balanceResp struct {
		Value uint64 `json:"value"`
	}
	if err := json.Unmarshal(raw, &balanceResp); err != nil {
		return Balance{}, fmt.Errorf("getBalance: %w", err)
	}
	lamports := new(big.Int).SetUint64(balanceResp.Value)

	raw, err = c.rpcCall(ctx, c.endpoint, "getSignaturesForAddress", address, map[string]any{"limit": 1})
	if err != nil {
		return Balance{}, err
	}
	var signatures []json.RawMessage
	if err := json.Unmarshal(raw, &signatures); err != nil {
		return Balance{}, fmt.Errorf("getSignaturesForAddress: %w", err)
	}

	return Balance{
		Address:     address,
		Native:      formatUnits(lamports, 9),
		Symbol:      c.Symbol(),
		Tokens:      []TokenBalance{},
		HasActivity: len(signatures) > 0,
	}, nil
}

// bitcoinChecker queries a mempool.space compatible REST API.
type bitcoinChecker struct {
	apiClient
	endpoint string
}

// NewBitcoinChecker builds a checker over a mempool.space style API base
// URL (ending in /api).
func NewBitcoinChecker(endpoint string) Checker {
	return &bitcoinChecker{apiClient: newAPIClient(), endpoint: endpoint}
}

func (c *bitcoinChecker) Family() Family { return FamilyBitcoin }
func (c *bitcoinChecker) Symbol() string { return FamilyBitcoin.NativeSymbol() }

func (c *bitcoinChecker) Check(ctx context.Context, address string) (Balance, error) {
	var resp struct {
		ChainStats struct {
			FundedTxoSum int64 `json:"funded_txo_sum"`
			SpentTxoSum  int64 `json:"spent_txo_sum"`
			TxCount      int64 `json:"tx_count"`
		} `json:"chain_stats"`
	}
	url := fmt.Sprintf("%s/address/%s", c.endpoint, address)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return Balance{}, err
	}

	sats := big.NewInt(resp.ChainStats.FundedTxoSum - resp.ChainStats.SpentTxoSum)
	return Balance{
		Address:     address,
		Native:      formatUnits(sats, 8),
		Symbol:      c.Symbol(),
		Tokens:      []TokenBalance{},
		HasActivity: resp.ChainStats.TxCount > 0,
	}, nil
}

// stacksChecker queries a Hiro compatible Stacks API.
type stacksChecker struct {
	apiClient
	endpoint string
}

// NewStacksChecker builds a checker over a Hiro style API base URL.
func NewStacksChecker(endpoint string) Checker {
	return &stacksChecker{apiClient: newAPIClient(), endpoint: endpoint}
}

func (c *stacksChecker) Family() Family { return FamilyStacks }
func (c *stacksChecker) Symbol() string { return FamilyStacks.NativeSymbol() }

func (c *stacksChecker) Check(ctx context.Context, address string) (Balance, error) {
	var resp struct {
		Balance       string `json:"balance"`
		TotalReceived string `json:"total_received"`
	}
	url := fmt.Sprintf("%s/extended/v1/address/%s/stx", c.endpoint, address)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return Balance{}, err
	}

	micro, ok := new(big.Int).SetString(resp.Balance, 10)
	if !ok {
		return Balance{}, fmt.Errorf("invalid stx balance %q", resp.Balance)
	}
	return Balance{
		Address:     address,
		Native:      formatUnits(micro, 6),
		Symbol:      c.Symbol(),
		Tokens:      []TokenBalance{},
		HasActivity: resp.TotalReceived != "" && resp.TotalReceived != "0",
	}, nil
}

// suiChecker queries a Sui fullnode JSON-RPC endpoint.
type suiChecker struct {
	apiClient
	endpoint string
}

// NewSuiChecker builds a checker over a Sui fullnode endpoint.
func NewSuiChecker(endpoint string) Checker {
	return &suiChecker{apiClient: newAPIClient(), endpoint: endpoint}
}

func (c *suiChecker) Family() Family { return FamilySui }
func (c *suiChecker) Symbol() string { return FamilySui.NativeSymbol() }

func (c *suiChecker) Check(ctx context.Context, address string) (Balance, error) {
	raw, err := c.rpcCall(ctx, c.endpoint, "suix_getBalance", address)
	if err != nil {
		return Balance{}, err
	}
	var resp struct {
		TotalBalance    string `json:"totalBalance"`
		CoinObjectCount int    `json:"coinObjectCount"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Balance{}, fmt.Errorf("suix_getBalance: %w", err)
	}

	mist, ok := new(big.Int).SetString(resp.TotalBalance, 10)
	if !ok {
		return Balance{}, fmt.Errorf("invalid sui balance %q", resp.TotalBalance)
	}
	return Balance{
		Address:     address,
		Native:      formatUnits(mist, 9),
		Symbol:      c.Symbol(),
		Tokens:      []TokenBalance{},
		HasActivity: resp.CoinObjectCount > 0,
	}, nil
}

// aptosChecker queries an Aptos fullnode REST API.
type aptosChecker struct {
	apiClient
	endpoint string
}

// NewAptosChecker builds a checker over an Aptos fullnode base URL.
func NewAptosChecker(endpoint string) Checker {
	return &aptosChecker{apiClient: newAPIClient(), endpoint: endpoint}
}

func (c *aptosChecker) Family() Family { return FamilyAptos }
func (c *aptosChecker) Symbol() string { return FamilyAptos.NativeSymbol() }

func (c *aptosChecker) Check(ctx context.Context, address string) (Balance, error) {
	var octasStr json.Number
	url := fmt.Sprintf("%s/v1/accounts/%s/balance/0x1::aptos_coin::AptosCoin", c.endpoint, address)
	err := c.getJSON(ctx, url, &octasStr)
	if err != nil {
		// Accounts with no on-chain footprint 404; that is a normal
		// empty result, not a failure.
		var statusErr *httpStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return Balance{Address: address, Native: "0", Symbol: c.Symbol(), Tokens: []TokenBalance{}}, nil
		}
		return Balance{}, err
	}

	octas, ok := new(big.Int).SetString(octasStr.String(), 10)
	if !ok {
		return Balance{}, fmt.Errorf("invalid aptos balance %q", octasStr)
	}
	return Balance{
		Address:     address,
		Native:      formatUnits(octas, 8),
		Symbol:      c.Symbol(),
		Tokens:      []TokenBalance{},
		HasActivity: true, // the account resource exists on chain
	}, nil
}
