// Package audit keeps an append-only CSV log of recurrence
// materializations under <dataRoot>/logs/recurrence-log.csv.
package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the recurrence log.
type Entry struct {
	Timestamp     time.Time
	OwnerID       int
	DefinitionID  string
	TransactionID string
	Bucket        string
	CommitHash    string
}

// Header is the CSV header for recurrence-log.csv.
const Header = "timestamp,owner_id,definition_id,transaction_id,bucket,commit_hash"

const (
	numFields        = 6
	logDir           = "logs"
	logFile          = "logs/recurrence-log.csv"
	colTimestamp     = 0
	colOwnerID       = 1
	colDefinitionID  = 2
	colTransactionID = 3
	colBucket        = 4
	colCommitHash    = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colOwnerID] = strconv.Itoa(e.OwnerID)
	row[colDefinitionID] = e.DefinitionID
	row[colTransactionID] = e.TransactionID
	row[colBucket] = e.Bucket
	row[colCommitHash] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	owner, err := strconv.Atoi(record[colOwnerID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing owner_id %q: %w", record[colOwnerID], err)
	}

	return Entry{
		Timestamp:     ts,
		OwnerID:       owner,
		DefinitionID:  record[colDefinitionID],
		TransactionID: record[colTransactionID],
		Bucket:        record[colBucket],
		CommitHash:    record[colCommitHash],
	}, nil
}

// Append writes entries to <dataRoot>/logs/recurrence-log.csv, creating
// the file and header if needed.
func Append(dataRoot string, entries []Entry) error {
	dir := filepath.Join(dataRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dataRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening recurrence log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <dataRoot>/logs/recurrence-log.csv.
// Returns an empty slice if the file does not exist.
func Read(dataRoot string) ([]Entry, error) {
	path := filepath.Join(dataRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening recurrence log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// SeenBuckets returns the set of (definition, bucket) pairs already
// materialized, keyed by Key. It is the duplicate guard consulted
// before firing a definition again in the same period.
func SeenBuckets(entries []Entry) map[string]bool {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[Key(e.DefinitionID, e.Bucket)] = true
	}
	return seen
}

// Key builds the duplicate-guard key for a definition and period bucket.
func Key(definitionID, bucket string) string {
	return definitionID + "|" + bucket
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading recurrence log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
