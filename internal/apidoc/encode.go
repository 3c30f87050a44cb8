package apidoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/goccy/go-yaml"
)

// renderJSON writes the decoded tree as compact JSON, keeping mapping keys in
// source order. Infinite and NaN floats become null, as JSON.stringify does.
func renderJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case yaml.MapSlice:
		buf.WriteByte('{')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeMember(buf, fmt.Sprint(item.Key), item.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeMember(buf, k, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case map[any]any:
		return encodeValue(buf, normalize(val))
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case float64:
		if math.IsInf(val, 0) || math.IsNaN(val) {
			buf.WriteString("null")
			return nil
		}
	case float32:
		if math.IsInf(float64(val), 0) || math.IsNaN(float64(val)) {
			buf.WriteString("null")
			return nil
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func encodeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return encodeValue(buf, value)
}
