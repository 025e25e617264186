package veconfig

import (
	"strconv"
	"strings"

	units "github.com/docker/go-units"
)

// Value is either Numeric or Text.
type Value interface {
	Kind() Kind
	String() string
}

// Numeric is the value of a numeric key.
type Numeric uint64

// Text is the value of a text key.
type Text string

func (Numeric) Kind() Kind { return KindNumeric }

func (v Numeric) String() string { return strconv.FormatUint(uint64(v), 10) }

func (Text) Kind() Kind { return KindText }

func (v Text) String() string { return string(v) }

// Entry is one key-value pair of a Config.
type Entry struct {
	Key   Key
	Value Value
}

// Config is an insertion-ordered set of VE parameters.
// Each key appears at most once, so a Config never holds more than NumKeys
// entries. Keys omitted from a request keep their current value on the
// daemon side, or the default if there is none.
//
// The zero value is an empty Config ready to use.
type Config struct {
	slots [NumKeys]Value // nil = absent
	order []Key
}

// New returns an empty Config.
func New() *Config {
	return &Config{order: make([]Key, 0, NumKeys)}
}

// Append adds a numeric entry. It returns false and leaves c unchanged if
// key is not numeric, is already present, or c is full.
func (c *Config) Append(key Key, value uint64) bool {
	return c.add(key, Numeric(value))
}

// AppendText adds a text entry. It returns false and leaves c unchanged if
// key is not a text key, is already present, or c is full.
func (c *Config) AppendText(key Key, value string) bool {
	// Detach from the caller's backing memory.
	return c.add(key, Text(strings.Clone(value)))
}

func (c *Config) add(key Key, v Value) bool {
	if !key.Valid() || key.Kind() != v.Kind() {
		return false
	}
	if c.slots[key] != nil || len(c.order) >= NumKeys {
		return false
	}
	c.slots[key] = v
	c.order = append(c.order, key)
	return true
}

// Extract returns the value of a numeric key. A text key is reported as
// absent even when present.
func (c *Config) Extract(key Key) (uint64, bool) {
	if c == nil || !key.Valid() {
		return 0, false
	}
	v, ok := c.slots[key].(Numeric)
	return uint64(v), ok
}

// ExtractText returns the value of a text key. A numeric key is reported as
// absent even when present.
func (c *Config) ExtractText(key Key) (string, bool) {
	if c == nil || !key.Valid() {
		return "", false
	}
	v, ok := c.slots[key].(Text)
	return string(v), ok
}

// Has reports whether key is present regardless of kind.
func (c *Config) Has(key Key) bool {
	return c != nil && key.Valid() && c.slots[key] != nil
}

// Len returns the number of entries.
func (c *Config) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Entries returns a copy of the entries in insertion order.
func (c *Config) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, Entry{Key: k, Value: c.slots[k]})
	}
	return out
}

// Reset drops every entry together with the strings c owns.
// Strings returned by ExtractText before Reset must not be relied upon to
// reflect c afterwards.
func (c *Config) Reset() {
	c.slots = [NumKeys]Value{}
	c.order = c.order[:0]
}

// String renders c as "key=value" pairs in insertion order; byte-sized
// values are printed in binary units.
func (c *Config) String() string {
	parts := make([]string, 0, c.Len())
	for _, e := range c.Entries() {
		val := e.Value.String()
		if n, ok := e.Value.(Numeric); ok && e.Key.IsBytes() {
			val = units.BytesSize(float64(n))
		}
		parts = append(parts, e.Key.String()+"="+val)
	}
	return strings.Join(parts, " ")
}
