package dataset

import "strings"

// RawRecord is one parsed row of delimited input, all values textual,
// keyed by header name.
type RawRecord map[string]string

// Record is a row after coercion.
type Record map[string]Value

// Dataset is an ordered sequence of records. The raw dataset preserves the
// source row order; derived datasets carry whatever order produced them.
type Dataset []Record

// Normalize coerces every field of every row independently. Output length
// and order match the input, and ragged rows simply yield partial records.
// The input is not touched.
func Normalize(raw []RawRecord) Dataset {
	out := make(Dataset, len(raw))
	for i, rr := range raw {
		rec := make(Record, len(rr))
		for k, v := range rr {
			rec[k] = Coerce(v)
		}
		out[i] = rec
	}
	return out
}

// DefaultExcludedKeys hides common row-identifier columns from axis
// selection. Overridable via the excluded_keys config.
var DefaultExcludedKeys = []string{"id", "user_id"}

// SelectableKeys filters the header down to the columns a user may pick as
// an axis key. Matching is a case-insensitive exact comparison; excluded
// columns stay present in the records, they are only hidden from selection.
func SelectableKeys(header []string, excluded []string) []string {
	out := make([]string, 0, len(header))
	for _, h := range header {
		if matchFold(excluded, h) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func matchFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
