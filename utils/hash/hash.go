package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// volatileKeys are transport metadata fields stripped before hashing so a
// functionally identical retry hashes the same even when they differ.
var volatileKeys = map[string]struct{}{
	"timestamp":    {},
	"requested_at": {},
	"created_at":   {},
	"request_id":   {},
	"trace_id":     {},
}

// Payload produces a stable SHA-256 hex digest of an arbitrary JSON-serializable
// payload. Object keys are emitted in sorted order, volatile fields are stripped
// and arrays of objects are sorted by a stable key, so field order and line-item
// order do not change the digest.
func Payload(payload interface{}) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", err
	}

	canonical, err := json.Marshal(normalize(decoded))
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			if _, volatile := volatileKeys[k]; volatile {
				continue
			}
			out[k] = normalize(val)
		}
		return out
	case []interface{}:
		items := make([]interface{}, len(t))
		for i, e := range t {
			items[i] = normalize(e)
		}
		sort.SliceStable(items, func(i, j int) bool {
			return sortKey(items[i]) < sortKey(items[j])
		})
		return items
	default:
		return v
	}
}

// sortKey gives each array element a stable ordering key. Line items sort by
// (product_id, variant_sku); anything else falls back to its full encoding.
func sortKey(v interface{}) string {
	m, ok := v.(map[string]interface{})
	if !ok {
		raw, _ := json.Marshal(v)
		return string(raw)
	}
	if pid, found := m["product_id"]; found {
		sku := m["variant_sku"]
		return fmt.Sprintf("%v|%v", pid, sku)
	}
	raw, _ := json.Marshal(m)
	return string(raw)
}
