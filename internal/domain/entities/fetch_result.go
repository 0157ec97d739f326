package entities

import (
	"encoding/json"
	"strconv"
)

const (
	bytesPerUnit     = 1024
	sizeDecimals     = 2
	zeroBytesDisplay = "0 Bytes"
)

//nolint:gochecknoglobals // read-only unit table
var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// FetchResult is the metadata recorded for one successfully fetched file.
type FetchResult struct {
	SrcPath   string `json:"srcPath"`
	DestPath  string `json:"destPath"`
	Repo      string `json:"repo"`
	Ref       string `json:"ref"`
	Size      int64  `json:"size"`
	HumanSize string `json:"humanSize"`
	SHA256    string `json:"sha256"`
	TimeTaken int64  `json:"timeTaken"` // milliseconds
}

// FormatBytes renders a byte count with the largest unit that keeps the
// mantissa in [1, 1024), rounded to two decimals ("1.5 KB", "0 Bytes").
func FormatBytes(size int64) string {
	if size <= 0 {
		return zeroBytesDisplay
	}

	value := float64(size)
	unit := 0
	for value >= bytesPerUnit && unit < len(sizeUnits)-1 {
		value /= bytesPerUnit
		unit++
	}

	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(value, 'f', sizeDecimals, 64), 64)
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[unit]
}

// BatchResult is the outcome of one run: either every result in input order
// or the single failure that aborted the batch, never a mix of both.
type BatchResult struct {
	results []FetchResult
	err     error
}

// NewBatchSuccess wraps the complete, ordered result list.
func NewBatchSuccess(results []FetchResult) BatchResult {
	if results == nil {
		results = []FetchResult{}
	}
	return BatchResult{results: results}
}

// NewBatchFailure wraps the failure that aborted the batch.
func NewBatchFailure(err error) BatchResult {
	return BatchResult{err: err}
}

// Succeeded reports whether every fetch completed.
func (b BatchResult) Succeeded() bool { return b.err == nil }

// Results returns the ordered results, or nil for a failed batch.
func (b BatchResult) Results() []FetchResult { return b.results }

// Err returns the failure cause, or nil for a successful batch.
func (b BatchResult) Err() error { return b.err }

// MarshalJSON encodes a successful batch as its result array.
func (b BatchResult) MarshalJSON() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return json.Marshal(b.results)
}
