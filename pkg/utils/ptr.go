package utils

import "strconv"

func StringPtr(s string) *string    { return &s }
func Uint64Ptr(v uint64) *uint64    { return &v }
func Float64Ptr(v float64) *float64 { return &v }

// ParseUint64Slice converts string ids from the query string, dropping
// anything unparsable.
func ParseUint64Slice(strs []string) ([]uint64, error) {
	out := make([]uint64, 0, len(strs))
	for _, s := range strs {
		if s == "" {
			continue
		}
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			out = append(out, v)
		}
	}
	return out, nil
}
