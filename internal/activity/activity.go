// Package activity records what happened during a session: the message
// feed shown to the user after each action. The feed lives in memory
// for the session and is written out only when explicitly downloaded.
package activity

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Entry is one recorded action.
type Entry struct {
	Timestamp time.Time
	Action    string // "add", "edit", "import", ...
	Details   string
	TxnID     int64 // transaction involved, 0 if none
}

// Header is the CSV header for an activity download.
const Header = "timestamp,action,details,transaction_id"

const (
	numFields    = 4
	colTimestamp = 0
	colAction    = 1
	colDetails   = 2
	colTxnID     = 3
)

// Log is the in-memory session feed.
type Log struct {
	entries []Entry
}

// NewLog creates an empty feed.
func NewLog() *Log {
	return &Log{}
}

// Append records an entry.
func (l *Log) Append(e Entry) {
	l.entries = append(l.entries, e)
}

// Entries returns a copy of the feed, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Reset clears the feed.
func (l *Log) Reset() {
	l.entries = nil
}

// WriteCSV serializes the feed for download, header included.
func (l *Log) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range l.entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = e.Action
	row[colDetails] = e.Details
	if e.TxnID != 0 {
		row[colTxnID] = strconv.FormatInt(e.TxnID, 10)
	}
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

	var txnID int64
	if record[colTxnID] != "" {
		txnID, err = strconv.ParseInt(record[colTxnID], 10, 64)
		if err != nil {
			return Entry{}, fmt.Errorf("parsing transaction_id %q: %w", record[colTxnID], err)
		}
	}

	return Entry{
		Timestamp: ts,
		Action:    record[colAction],
		Details:   record[colDetails],
		TxnID:     txnID,
	}, nil
}
