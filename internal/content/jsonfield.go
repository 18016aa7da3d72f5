package content

import "encoding/json"

// JSON-valued columns are stored as serialized text. Reads are defensive:
// a NULL or malformed value degrades to the field's documented fallback
// (empty slice, zero Dimensions) instead of surfacing a parse error.
// Writes normalize empty values back to NULL.

// decodeStringList parses a JSON array column. NULL (valid=false) and
// unparseable text both yield an empty, non-nil slice.
func decodeStringList(raw string, valid bool) []string {
	if !valid || raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// encodeStringList serializes a string slice for storage. Empty and nil
// slices map to NULL so the column round-trips per the contract.
func encodeStringList(v []string) *string {
	if len(v) == 0 {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// decodeDimensions parses a JSON object column, degrading to the zero
// struct on NULL or malformed input.
func decodeDimensions(raw string, valid bool) Dimensions {
	if !valid || raw == "" {
		return Dimensions{}
	}
	var out Dimensions
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return Dimensions{}
	}
	return out
}

// encodeDimensions serializes dimensions for storage, mapping the zero
// struct to NULL.
func encodeDimensions(d Dimensions) *string {
	if d.IsZero() {
		return nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}
