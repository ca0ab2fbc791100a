package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

// ParseResult holds the contents of one backup file.
type ParseResult struct {
	Path         string
	Profile      *model.Profile
	Transactions []model.Transaction
	ParseErrors  int   // entries skipped as invalid
	Err          error // set when the file as a whole could not be read
}

// ParseFile reads the backup at path.
func ParseFile(path string) ParseResult {
	f, err := os.Open(path) //nolint:gosec // path is supplied by the user on purpose
	if err != nil {
		return ParseResult{Path: path, Err: fmt.Errorf("opening %s: %w", path, err)}
	}
	defer func() { _ = f.Close() }()

	res := Parse(f)
	res.Path = path
	return res
}

// Parse decodes a backup. Invalid transactions are skipped and counted.
func Parse(r io.Reader) ParseResult {
	var raw RawExport
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return ParseResult{Err: fmt.Errorf("decoding backup: %w", err)}
	}

	var res ParseResult
	if raw.Profile == nil && len(raw.LegacyProfile) > 0 {
		var p RawProfile
		if err := decodeLegacy(raw.LegacyProfile, &p); err != nil {
			return ParseResult{Err: fmt.Errorf("decoding finflex_profile: %w", err)}
		}
		raw.Profile = &p
	}
	if len(raw.Transactions) == 0 && len(raw.LegacyTransactions) > 0 {
		if err := decodeLegacy(raw.LegacyTransactions, &raw.Transactions); err != nil {
			return ParseResult{Err: fmt.Errorf("decoding finflex_transactions: %w", err)}
		}
	}

	if raw.Profile != nil {
		p, err := raw.Profile.toModel()
		if err != nil {
			return ParseResult{Err: err}
		}
		res.Profile = &p
	}

	res.Transactions = make([]model.Transaction, 0, len(raw.Transactions))
	for _, rt := range raw.Transactions {
		tx, err := rt.toModel()
		if err != nil {
			res.ParseErrors++
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}
	return res
}

// decodeLegacy unmarshals v from either a JSON value or a JSON string that
// itself holds the value.
func decodeLegacy(data json.RawMessage, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		data = []byte(inner)
	}
	return json.Unmarshal(data, v)
}

func (rp RawProfile) toModel() (model.Profile, error) {
	p := model.Profile{
		Name:                      rp.Name,
		MonthlyIncome:             rp.MonthlyIncome,
		FixedCosts:                rp.FixedCosts,
		YearlySavingsGoal:         rp.YearlySavingsGoal,
		TargetMonthlyContribution: rp.TargetMonthlyContribution,
		SavingsRatio:              rp.SavingsRatio,
	}
	if rp.RiskAppetite != "" {
		risk, err := model.ParseRiskAppetite(rp.RiskAppetite)
		if err != nil {
			return model.Profile{}, err
		}
		p.RiskAppetite = risk
	}
	return p, p.Validate()
}

func (rt RawTransaction) toModel() (model.Transaction, error) {
	if rt.Timestamp <= 0 {
		return model.Transaction{}, errors.New("missing timestamp")
	}
	cat, err := model.StoredCategory(rt.Category, rt.IsFixed)
	if err != nil {
		return model.Transaction{}, err
	}
	tx := model.Transaction{
		ID:        rt.ID,
		Amount:    rt.Amount,
		Category:  cat,
		IsFixed:   rt.IsFixed,
		Timestamp: time.UnixMilli(rt.Timestamp),
		Note:      rt.Note,
	}
	return tx, tx.Validate()
}

func fromModel(tx model.Transaction) RawTransaction {
	return RawTransaction{
		ID:        tx.ID,
		Amount:    tx.Amount,
		Category:  tx.Category.Name(),
		IsFixed:   tx.IsFixed,
		Timestamp: tx.Timestamp.UnixMilli(),
		Note:      tx.Note,
	}
}
