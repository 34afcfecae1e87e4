// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// coingeckoIDs maps native symbols to CoinGecko asset ids.
var coingeckoIDs = map[string]string{
	"ETH": "ethereum",
	"SOL": "solana",
	"BTC": "bitcoin",
	"STX": "blockstack",
	"SUI": "sui",
	"APT": "aptos",
}

// PriceFeed fetches USD spot prices for the native assets in one batched
// call and caches them for the process lifetime. A failed fetch degrades
// USD values to zero instead of failing the audit.
type PriceFeed struct {
	apiClient
	endpoint string

	mu     sync.RWMutex
	prices map[string]float64
}

// NewPriceFeed builds a feed over a CoinGecko compatible API base URL.
func NewPriceFeed(endpoint string) *PriceFeed {
	return &PriceFeed{
		apiClient: newAPIClient(),
		endpoint:  endpoint,
		prices:    make(map[string]float64),
	}
}

// Fetch loads prices for all supported symbols.
func (f *PriceFeed) Fetch(ctx context.Context) error {
	ids := make([]string, 0, len(coingeckoIDs))
	for _, id := range coingeckoIDs {
		ids = append(ids, id)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", "usd")

	var resp map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := f.getJSON(ctx, f.endpoint+"/simple/price?"+query.Encode(), &resp); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for symbol, id := range coingeckoIDs {
		if entry, ok := resp[id]; ok {
			f.prices[symbol] = entry.USD
		}
	}
	log.Debug().Int("assets", len(f.prices)).Msg("fetched spot prices")
	return nil
}

// USD returns the cached price for a symbol, or zero when unknown.
func (f *PriceFeed) USD(symbol string) float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.prices[symbol]
}
