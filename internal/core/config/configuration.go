package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Configuration maps configuration keys to their resolved values.
// The zero value is an empty configuration ready to use.
type Configuration struct {
	values map[string]Value
}

// New creates an empty configuration
func New() *Configuration {
	return &Configuration{values: make(map[string]Value)}
}

// Defaults creates a configuration holding the default of every
// recognized key.
func Defaults() *Configuration {
	cfg := New()
	for _, spec := range recognizedKeys {
		cfg.values[spec.Name] = spec.Default
	}
	return cfg
}

// Get returns the value stored for key
func (c *Configuration) Get(key string) (Value, bool) {
	if c == nil || c.values == nil {
		return Value{}, false
	}
	v, ok := c.values[key]
	return v, ok
}

// Set stores value under key, replacing any previous value
func (c *Configuration) Set(key string, value Value) {
	if c.values == nil {
		c.values = make(map[string]Value)
	}
	c.values[key] = value
}

// Delete removes key
func (c *Configuration) Delete(key string) {
	delete(c.values, key)
}

// Keys returns the stored keys in ascending order
func (c *Configuration) Keys() []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.values))
}

// Len returns the number of stored keys
func (c *Configuration) Len() int {
	if c == nil {
		return 0
	}
	return len(c.values)
}

// Clone returns an independent copy
func (c *Configuration) Clone() *Configuration {
	out := New()
	if c != nil {
		maps.Copy(out.values, c.values)
	}
	return out
}

// Equal reports whether both configurations hold the same keys and values
func (c *Configuration) Equal(other *Configuration) bool {
	if c.Len() != other.Len() {
		return false
	}
	for key, v := range c.values {
		ov, ok := other.Get(key)
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// MarshalJSON writes booleans and strings natively and sets as sorted arrays
// of strings. Object keys come out sorted, so equal configurations always
// produce identical bytes.
func (c *Configuration) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, c.Len())
	for _, key := range c.Keys() {
		v := c.values[key]
		switch v.kind {
		case KindString:
			out[key] = v.text
		case KindBool:
			out[key] = v.flag
		case KindSet:
			items := v.Items()
			if items == nil {
				items = []string{}
			}
			out[key] = items
		default:
			return nil, fmt.Errorf("cannot encode key %q: value has shape %s", key, v.Shape())
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts any JSON object. Values whose shape matches no Kind
// are kept as KindInvalid so Validate can report them.
func (c *Configuration) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("configuration must be a JSON object: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("configuration must be a JSON object, got null")
	}

	values := make(map[string]Value, len(raw))
	for key, msg := range raw {
		values[key] = decodeValue(msg)
	}
	c.values = values
	return nil
}

func decodeValue(msg json.RawMessage) Value {
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return InvalidValue("malformed")
	}

	switch t := v.(type) {
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case []any:
		items := make([]string, 0, len(t))
		for _, elem := range t {
			s, ok := elem.(string)
			if !ok {
				return InvalidValue("array with non-string items")
			}
			items = append(items, s)
		}
		return SetValue(items...)
	case nil:
		return InvalidValue("null")
	case json.Number:
		return InvalidValue("number")
	case map[string]any:
		return InvalidValue("object")
	default:
		return InvalidValue(fmt.Sprintf("%T", t))
	}
}
