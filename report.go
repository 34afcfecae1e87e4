// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedscan

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ReportTotals summarizes an audit run.
type ReportTotals struct {
	Addresses int     `json:"addresses"`
	Active    int     `json:"activeAddresses"`
	USDValue  float64 `json:"usdValue"`
}

// Report aggregates the per-family balance records of one audit run. It
// carries only public addresses and balances; no seed or key material is
// ever part of it.
type Report struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	Families    map[Family][]Balance `json:"families"`
	Totals      ReportTotals         `json:"totals"`
}

// NewReport returns an empty report stamped with the current time.
func NewReport() *Report {
	return &Report{
		GeneratedAt: time.Now().UTC(),
		Families:    make(map[Family][]Balance),
	}
}

// Add records one family's balance results and updates the totals.
func (r *Report) Add(family Family, balances []Balance) {
	r.Families[family] = append(r.Families[family], balances...)
	for _, b := range balances {
		r.Totals.Addresses++
		if b.HasActivity {
			r.Totals.Active++
		}
		r.Totals.USDValue += b.USDValue
	}
}

// AddAddresses records derived addresses for a family without balance
// data, for offline runs that still want a persisted report.
func (r *Report) AddAddresses(family Family, symbol string, addresses []string) {
	balances := make([]Balance, 0, len(addresses))
	for _, addr := range addresses {
		balances = append(balances, Balance{Address: addr, Symbol: symbol, Tokens: []TokenBalance{}})
	}
	r.Add(family, balances)
}

// WriteJSON persists the report with owner-only permissions.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}
	return nil
}
