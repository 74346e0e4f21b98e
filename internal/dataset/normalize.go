package dataset

// normalize.go handles column-name normalization for uploaded files.
//
// Uploads arrive with headers like "Order ID" or "Sub-Category"; downstream
// code wants stable snake_case keys. Normalization is: trim, lowercase,
// spaces and hyphens to underscores, then a synonym lookup for headers that
// datasets commonly spell differently ("customer" vs "customer_name").
// The whole transform is idempotent.

import (
	"strconv"
	"strings"
)

// DefaultSynonyms maps normalized header spellings to their canonical names.
// Extendable via configuration; these cover the common retail-dataset cases.
func DefaultSynonyms() map[string]string {
	return map[string]string{
		"subcategory": "sub_category",
		"customer":    "customer_name",
		"orderid":     "order_id",
	}
}

// Normalizer rewrites raw column headers into canonical names.
type Normalizer struct {
	synonyms map[string]string
}

// NewNormalizer creates a Normalizer. Entries in extra override or extend the
// defaults; keys are matched after base normalization.
func NewNormalizer(extra map[string]string) *Normalizer {
	syn := DefaultSynonyms()
	for k, v := range extra {
		syn[NormalizeName(k)] = NormalizeName(v)
	}
	return &Normalizer{synonyms: syn}
}

// Normalize applies base normalization and the synonym map to a header.
func (n *Normalizer) Normalize(name string) string {
	key := NormalizeName(name)
	if canonical, ok := n.synonyms[key]; ok {
		return canonical
	}
	return key
}

// NormalizeHeaders normalizes a full header row, deduplicating collisions by
// suffixing _2, _3, ... so every column keeps a unique name.
func (n *Normalizer) NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	seen := make(map[string]int, len(headers))
	for i, h := range headers {
		name := n.Normalize(h)
		seen[name]++
		if seen[name] > 1 {
			name = name + "_" + strconv.Itoa(seen[name])
		}
		out[i] = name
	}
	return out
}

// NormalizeName applies the base transform: trim, lowercase, and spaces or
// hyphens to underscores. Idempotent.
func NormalizeName(name string) string {
	s := strings.TrimSpace(name)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
