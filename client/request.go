package client

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/projecteru2/vcmmd/errcode"
	"github.com/projecteru2/vcmmd/veconfig"
	"github.com/projecteru2/vcmmd/wire"
)

// ErrInvalidString is the cause of a NoMemory error for a string the bus
// cannot carry (invalid UTF-8 or an embedded NUL).
var ErrInvalidString = errors.New("string not representable on the bus")

// checkString rejects strings that would fail to marshal.
func checkString(what, s string) error {
	if !utf8.ValidString(s) || strings.IndexByte(s, 0) >= 0 {
		return errcode.Wrap(errcode.NoMemory, fmt.Errorf("%s %q: %w", what, s, ErrInvalidString))
	}
	return nil
}

// encodeConfig validates and flattens cfg for a request.
func encodeConfig(cfg *veconfig.Config) ([]wire.Entry, error) {
	entries := wire.Encode(cfg)
	for _, e := range entries {
		if err := checkString("config value", e.Text); err != nil {
			return nil, err
		}
	}
	return entries, nil
}
