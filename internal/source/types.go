// Package source reads and writes ledger backup files.
package source

import "encoding/json"

// ExportVersion is written into every export file.
const ExportVersion = 1

// RawExport is the on-disk backup format.
type RawExport struct {
	Version      int              `json:"version"`
	ExportedAt   string           `json:"exportedAt,omitempty"`
	Profile      *RawProfile      `json:"profile,omitempty"`
	Transactions []RawTransaction `json:"transactions"`

	// Browser storage dumps keep each value under its storage key, either
	// as an object or as a JSON-encoded string.
	LegacyProfile      json.RawMessage `json:"finflex_profile,omitempty"`
	LegacyTransactions json.RawMessage `json:"finflex_transactions,omitempty"`
}

// RawProfile mirrors model.Profile with the field names used in backups.
type RawProfile struct {
	Name                      string  `json:"name"`
	MonthlyIncome             float64 `json:"monthlyIncome"`
	FixedCosts                float64 `json:"fixedCosts"`
	YearlySavingsGoal         float64 `json:"yearlySavingsGoal"`
	TargetMonthlyContribution float64 `json:"targetMonthlyContribution"`
	SavingsRatio              float64 `json:"savingsRatio"`
	RiskAppetite              string  `json:"riskAppetite,omitempty"`
}

// RawTransaction is one ledger entry; Timestamp is unix milliseconds.
type RawTransaction struct {
	ID        string  `json:"id"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
	IsFixed   bool    `json:"isFixed"`
	Timestamp int64   `json:"timestamp"`
	Note      string  `json:"note,omitempty"`
}

// DiscoveredFile is a backup found while scanning a directory.
type DiscoveredFile struct {
	Path    string
	ModTime int64 // unix nanoseconds
	Size    int64
}
