package domain

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	jsoniter "github.com/json-iterator/go"
)

// MaxHistoryEntries bounds the persisted scan history.
const MaxHistoryEntries = 10

// HistoryTimeLayout is the ISO-8601 layout used when writing entry timestamps.
const HistoryTimeLayout = "2006-01-02T15:04:05.000000Z07:00"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HistoryEntry is one successful lookup in the scan history.
type HistoryEntry struct {
	Barcode   string      `json:"barcode"`
	Product   ProductInfo `json:"product"`
	Timestamp time.Time   `json:"timestamp"` // local clock at lookup time
}

type historyEntryJSON struct {
	Barcode   string      `json:"barcode"`
	Product   ProductInfo `json:"product"`
	Timestamp string      `json:"timestamp"`
}

func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(historyEntryJSON{
		Barcode:   e.Barcode,
		Product:   e.Product,
		Timestamp: e.Timestamp.Format(HistoryTimeLayout),
	})
}

// UnmarshalJSON accepts any ISO-8601 style timestamp; values without a zone
// (as written by older releases) are read in the local time zone.
func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	var raw historyEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var ts time.Time
	if raw.Timestamp != "" {
		t, err := dateparse.ParseLocal(raw.Timestamp)
		if err != nil {
			return fmt.Errorf("history entry %q: bad timestamp %q: %w", raw.Barcode, raw.Timestamp, err)
		}
		ts = t
	}
	*e = HistoryEntry{
		Barcode:   raw.Barcode,
		Product:   raw.Product.Clone(),
		Timestamp: ts,
	}
	return nil
}
