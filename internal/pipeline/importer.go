package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/source"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/store"
)

// ImportResult holds the merged contents of a set of backups.
type ImportResult struct {
	Profile      *model.Profile
	Transactions []model.Transaction
	TotalFiles   int
	ParsedFiles  int
	FileErrors   int
	ParseErrors  int
	Duplicates   int
}

// ProgressFunc is called as files are parsed.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// ResolvePaths expands directories into the backups they contain.
func ResolvePaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		files, err := source.ScanDir(arg)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", arg, err)
		}
		for _, f := range files {
			paths = append(paths, f.Path)
		}
	}
	return paths, nil
}

// Import parses paths with a bounded worker pool and merges them in order:
// for a repeated transaction ID or profile, the later file wins.
func Import(ctx context.Context, paths []string, workers int, progressFn ProgressFunc) (*ImportResult, error) {
	res := &ImportResult{TotalFiles: len(paths)}
	if len(paths) == 0 {
		return res, nil
	}

	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	parsed := make([]source.ParseResult, len(paths))
	var processed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range paths {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parsed[i] = source.ParseFile(paths[i])
			n := processed.Add(1)
			if progressFn != nil {
				progressFn(int(n), len(paths))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]int)
	for _, pr := range parsed {
		if pr.Err != nil {
			res.FileErrors++
			continue
		}
		res.ParsedFiles++
		res.ParseErrors += pr.ParseErrors
		if pr.Profile != nil {
			res.Profile = pr.Profile
		}
		for _, tx := range pr.Transactions {
			if idx, ok := byID[tx.ID]; ok {
				res.Transactions[idx] = tx
				res.Duplicates++
				continue
			}
			byID[tx.ID] = len(res.Transactions)
			res.Transactions = append(res.Transactions, tx)
		}
	}
	return res, nil
}

// Apply writes an import into repo. The imported profile replaces the
// stored one only when overwriteProfile is set or none is stored yet.
func Apply(ctx context.Context, repo store.Repository, res *ImportResult, overwriteProfile bool, log logrus.FieldLogger) error {
	if res.Profile != nil {
		_, err := repo.LoadProfile(ctx)
		if err != nil && !errors.Is(err, store.ErrNoProfile) {
			return err
		}
		if overwriteProfile || err != nil {
			if err := repo.SaveProfile(ctx, *res.Profile); err != nil {
				return err
			}
			log.WithField("component", "import").Info("profile imported")
		}
	}
	if err := repo.SaveTransactions(ctx, res.Transactions); err != nil {
		return fmt.Errorf("saving imported transactions: %w", err)
	}
	log.WithFields(logrus.Fields{
		"component":    "import",
		"files":        res.ParsedFiles,
		"transactions": len(res.Transactions),
		"skipped":      res.ParseErrors,
	}).Info("import applied")
	return nil
}
