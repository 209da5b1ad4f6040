// Package report loads and summarizes the JSON log written by dircap check.
package report

import (
	"encoding/json"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/alvinking254/dircap/internal/domain"
)

// Load reads the JSON log at path. A missing file, an unreadable file and
// malformed JSON all yield nil: a broken log must never stop the alert
// email from going out, so no error escapes this layer.
func Load(path string) any {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	return payload
}

// Summarize normalizes the two accepted log shapes into a tally, a list
// of warning strings and a list of check records.
//
// Shape 1, verbose object:
//
//	{"summary": {"ok":..,"warn":..,"over":..}, "warnings":[...], "results":[...]}
//
// Shape 2, flat list of records:
//
//	[{"name":..,"status":..}, ...]
//
// Anything else yields an all-zero summary and empty lists. Entries in
// "results" that are not objects are discarded.
func Summarize(payload any) (domain.Summary, []string, []domain.Result) {
	var summary domain.Summary
	var warnings []string
	var results []domain.Result

	switch p := payload.(type) {
	case map[string]any:
		if s, ok := p["summary"].(map[string]any); ok {
			summary.OK = toCount(s["ok"])
			summary.Warn = toCount(s["warn"])
			summary.Over = toCount(s["over"])
		}
		if w, ok := p["warnings"].([]any); ok {
			warnings = toWarnings(w)
		}
		if r, ok := p["results"].([]any); ok {
			results = toResults(r)
		}
	case []any:
		results = toResults(p)
	}

	// A zero tally next to non-empty results means the log carried no
	// usable summary (flat shape, or a verbose shape contradicting
	// itself); recount from the records so the alert is not read as
	// all-clear.
	if summary.IsZero() && len(results) > 0 {
		for _, r := range results {
			switch r.Status {
			case domain.StatusOK:
				summary.OK++
			case domain.StatusWarn:
				summary.Warn++
			case domain.StatusOver:
				summary.Over++
			}
		}
	}

	return summary, warnings, results
}

func toResults(entries []any) []domain.Result {
	var results []domain.Result
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		results = append(results, domain.Result{
			Name:       stringify(m["name"]),
			Path:       stringify(m["path"]),
			PctUsed:    stringify(m["pct_used"]),
			Status:     stringify(m["status"]),
			UsedBytes:  toBytes(m["used_bytes"]),
			LimitBytes: toBytes(m["limit_bytes"]),
		})
	}
	return results
}

func toWarnings(entries []any) []string {
	var warnings []string
	for _, e := range entries {
		if e == nil {
			continue
		}
		if s := stringify(e); strings.TrimSpace(s) != "" {
			warnings = append(warnings, s)
		}
	}
	return warnings
}

// stringify renders a JSON scalar the way it appeared in the log, so
// pct_used 91 prints as "91" and 91.5 as "91.5". Absent values render
// as the empty string.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// toCount coerces a tally counter to an int. Numbers and numeric strings
// count; null and anything else mean zero.
func toCount(v any) int {
	switch x := v.(type) {
	case float64:
		return int(x)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return n
		}
	}
	return 0
}

// toBytes accepts only integer-valued numbers; the byte suffix in the
// email is shown solely when both byte fields are present integers.
func toBytes(v any) *int64 {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return nil
	}
	n := int64(f)
	return &n
}
