// Package scheduler runs the recurrence batch: it scans every owner's
// recurring transactions, materializes the occurrences that have come
// due, persists them, and records each one in the audit log.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/budgetwise-dev/budgetwise/internal/audit"
	"github.com/budgetwise-dev/budgetwise/internal/ledger"
	"github.com/budgetwise-dev/budgetwise/internal/model"
	"github.com/budgetwise-dev/budgetwise/internal/recurrence"
)

// DefaultSpec fires the batch daily at midnight.
const DefaultSpec = "0 0 * * *"

// Runner executes recurrence batches against a store. dataRoot locates
// the audit log; empty disables audit logging (memory-backed runs).
type Runner struct {
	store    ledger.Store
	dataRoot string
	log      logrus.FieldLogger
}

// New creates a Runner. A nil log falls back to the standard logger.
func New(store ledger.Store, dataRoot string, log logrus.FieldLogger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{store: store, dataRoot: dataRoot, log: log}
}

// Result summarizes one batch run.
type Result struct {
	Owners  int
	Scanned int
	Created []model.Transaction
	Skipped int
}

// Run executes one recurrence batch as of now. Each series contributes
// at most one new occurrence per run; the audit log's (definition,
// bucket) pairs guard against refiring within the same period even if
// the store was restored from an older snapshot.
func (r *Runner) Run(ctx context.Context, now time.Time) (Result, error) {
	owners, err := r.store.Owners(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("listing owners: %w", err)
	}

	seen := map[string]bool{}
	if r.dataRoot != "" {
		logged, err := audit.Read(r.dataRoot)
		if err != nil {
			return Result{}, fmt.Errorf("reading recurrence log: %w", err)
		}
		seen = audit.SeenBuckets(logged)
	}

	res := Result{Owners: len(owners)}
	var entries []audit.Entry

	for _, owner := range owners {
		recurring, err := r.store.Transactions(ctx, owner, ledger.Filter{RecurringOnly: true})
		if err != nil {
			return res, fmt.Errorf("loading recurring transactions for owner %d: %w", owner, err)
		}

		anchors := latestPerSeries(recurring)
		res.Scanned += len(anchors)

		for _, m := range recurrence.Process(anchors, now) {
			bucket := recurrence.Bucket(m.Definition, now)
			if seen[audit.Key(m.Definition.ID, bucket)] {
				res.Skipped++
				continue
			}

			tx := m.New
			if err := r.store.AddTransaction(ctx, &tx); err != nil {
				return res, fmt.Errorf("materializing occurrence of %s: %w", m.Definition.ID, err)
			}
			res.Created = append(res.Created, tx)
			seen[audit.Key(m.Definition.ID, bucket)] = true
			entries = append(entries, audit.Entry{
				Timestamp:     now,
				OwnerID:       owner,
				DefinitionID:  m.Definition.ID,
				TransactionID: tx.ID,
				Bucket:        bucket,
			})

			r.log.WithFields(logrus.Fields{
				"owner":      owner,
				"definition": m.Definition.ID,
				"created":    tx.ID,
				"bucket":     bucket,
				"amount":     tx.Amount.StringFixed(2),
			}).Info("materialized recurring transaction")
		}
	}

	if r.dataRoot != "" && len(entries) > 0 {
		if err := audit.Append(r.dataRoot, entries); err != nil {
			return res, fmt.Errorf("appending recurrence log: %w", err)
		}
	}
	return res, nil
}

// StartDaemon schedules Run on the given cron spec and starts the
// scheduler. The caller owns the returned cron and stops it on
// shutdown.
func (r *Runner) StartDaemon(spec string) (*cron.Cron, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		res, err := r.Run(context.Background(), time.Now())
		if err != nil {
			r.log.WithError(err).Error("recurrence batch failed")
			return
		}
		r.log.WithFields(logrus.Fields{
			"owners":  res.Owners,
			"scanned": res.Scanned,
			"created": len(res.Created),
			"skipped": res.Skipped,
		}).Info("recurrence batch finished")
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling recurrence batch %q: %w", spec, err)
	}
	c.Start()
	r.log.WithField("spec", spec).Info("recurrence daemon started")
	return c, nil
}

// latestPerSeries reduces an owner's recurring transactions to one
// anchor per series, the most recent occurrence. A series is identified
// by category, pattern, and description with the recurring prefix
// stripped, so the definition and its materialized copies collapse
// together.
func latestPerSeries(txs []model.Transaction) []model.Transaction {
	latest := make(map[string]model.Transaction)
	for _, tx := range txs {
		key := seriesKey(tx)
		cur, ok := latest[key]
		if !ok || tx.Date.After(cur.Date) {
			latest[key] = tx
		}
	}
	out := make([]model.Transaction, 0, len(latest))
	for _, tx := range latest {
		out = append(out, tx)
	}
	return out
}

func seriesKey(tx model.Transaction) string {
	desc := strings.TrimPrefix(tx.Description, recurrence.Prefix)
	return strconv.Itoa(tx.CategoryID) + "|" + string(tx.Recurrence) + "|" + desc
}
