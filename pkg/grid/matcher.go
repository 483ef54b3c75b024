package grid

import "strings"

// HeaderIndex maps configured field names to header columns.
// It is built once per table and is safe for concurrent reads.
type HeaderIndex struct {
	headers    []string
	normalized []string
	exact      map[string]int
}

// NewHeaderIndex normalizes every header cell once.
func NewHeaderIndex(headers []string) *HeaderIndex {
	h := &HeaderIndex{
		headers:    make([]string, len(headers)),
		normalized: make([]string, len(headers)),
		exact:      make(map[string]int, len(headers)),
	}
	for i, raw := range headers {
		h.headers[i] = strings.TrimSpace(raw)
		n := Normalize(raw)
		h.normalized[i] = n
		if n == "" {
			continue
		}
		if _, seen := h.exact[n]; !seen {
			h.exact[n] = i
		}
	}
	return h
}

// Len returns the number of header columns.
func (h *HeaderIndex) Len() int { return len(h.headers) }

// Header returns the trimmed header text of a column.
func (h *HeaderIndex) Header(col int) string {
	if col < 0 || col >= len(h.headers) {
		return ""
	}
	return h.headers[col]
}

// Headers returns the trimmed header texts.
func (h *HeaderIndex) Headers() []string {
	out := make([]string, len(h.headers))
	copy(out, h.headers)
	return out
}

// Match resolves a field name by symmetric containment of normalized texts:
// the keyword inside the header or the header inside the keyword.
// The leftmost matching column wins. Blank headers and keywords never match.
func (h *HeaderIndex) Match(keyword string) (int, bool) {
	key := Normalize(keyword)
	if key == "" {
		return -1, false
	}
	for col, n := range h.normalized {
		if n == "" {
			continue
		}
		if strings.Contains(n, key) || strings.Contains(key, n) {
			return col, true
		}
	}
	return -1, false
}

// MatchExact resolves a field name only when its normalized form equals a
// normalized header.
func (h *HeaderIndex) MatchExact(keyword string) (int, bool) {
	key := Normalize(keyword)
	if key == "" {
		return -1, false
	}
	col, ok := h.exact[key]
	if !ok {
		return -1, false
	}
	return col, true
}

// MatchAll resolves every keyword with Match. It fails as a whole when any
// keyword has no column.
func (h *HeaderIndex) MatchAll(keywords []string) ([]int, bool) {
	cols := make([]int, 0, len(keywords))
	for _, k := range keywords {
		col, ok := h.Match(k)
		if !ok {
			return nil, false
		}
		cols = append(cols, col)
	}
	return cols, true
}

// Column resolves a trimmed header text verbatim, without normalization.
func (h *HeaderIndex) Column(header string) (int, bool) {
	header = strings.TrimSpace(header)
	for i, v := range h.headers {
		if v != "" && v == header {
			return i, true
		}
	}
	return -1, false
}
