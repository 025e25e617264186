// Package wire converts VE configs to and from the bus representation.
//
// A config travels as an array of fixed-shape tuples (tag, numeric, text),
// D-Bus signature a(qts). Only one of numeric/text is meaningful per tuple,
// chosen by the tag's kind; the other is zero on the way out and ignored on
// the way in. Replies always start with an int32 status.
package wire

import (
	"context"
	"errors"
	"fmt"

	"github.com/projecteru2/core/log"

	"github.com/projecteru2/vcmmd/errcode"
	"github.com/projecteru2/vcmmd/veconfig"
)

const (
	// EntrySignature is the D-Bus signature of one Entry.
	EntrySignature = "(qts)"
	// ConfigSignature is the D-Bus signature of an encoded config.
	ConfigSignature = "a" + EntrySignature
)

// ErrDuplicateTag is the cause of a decode that met the same known tag twice.
var ErrDuplicateTag = errors.New("wire: duplicate config tag in reply")

// Entry is one config tuple on the wire. Field order defines the D-Bus
// struct layout and must not change.
type Entry struct {
	Tag   uint16
	Value uint64
	Text  string
}

// Encode flattens c into wire tuples in insertion order.
// A nil config encodes as an empty array.
func Encode(c *veconfig.Config) []Entry {
	out := make([]Entry, 0, c.Len())
	for _, e := range c.Entries() {
		we := Entry{Tag: e.Key.Tag()}
		switch v := e.Value.(type) {
		case veconfig.Numeric:
			we.Value = uint64(v)
		case veconfig.Text:
			we.Text = string(v)
		}
		out = append(out, we)
	}
	return out
}

// DecodeConfig interprets a config-carrying reply. A non-zero status is
// returned as the matching service error and no config is built. Tags this
// client does not know are skipped; a repeated known tag fails the whole
// decode with a ConnectionFailed error wrapping ErrDuplicateTag.
func DecodeConfig(ctx context.Context, status int32, entries []Entry) (*veconfig.Config, error) {
	if err := errcode.FromStatus(status); err != nil {
		return nil, err
	}
	logger := log.WithFunc("wire.DecodeConfig")

	c := veconfig.New()
	for i, we := range entries {
		key, ok := veconfig.KeyFromTag(we.Tag)
		if !ok {
			logger.Debugf(ctx, "skip unknown config tag %d at %d", we.Tag, i)
			continue
		}
		var added bool
		if key.Kind() == veconfig.KindText {
			added = c.AppendText(key, we.Text)
		} else {
			added = c.Append(key, we.Value)
		}
		if added {
			continue
		}
		c.Reset()
		return nil, errcode.Wrap(errcode.ConnectionFailed, fmt.Errorf("%w: %s (tag %d)", ErrDuplicateTag, key, we.Tag))
	}
	return c, nil
}
