package veconfig

import (
	"fmt"
	"strconv"
	"strings"

	units "github.com/docker/go-units"

	"github.com/projecteru2/vcmmd/types"
)

// Parse builds a Config from a comma-separated "key=value" list, e.g.
//
//	guarantee=512M,limit=2G,swap=0,node_list=0-1,guarantee_type=permanent
//
// Byte-sized keys accept sizes understood by units.RAMInBytes. A piece
// made only of digits and "-" continues the previous value, so list values
// keep their commas: "cpu_list=0-3,8,limit=1G". Any other piece must be a
// key=value pair. Entries keep the order they are written in.
func Parse(s string) (*Config, error) {
	c := New()
	s = strings.TrimSpace(s)
	if s == "" {
		return c, nil
	}
	for _, item := range splitItems(s) {
		name, raw, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("invalid config item %q: expected key=value", item)
		}
		key, err := ParseKey(name)
		if err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(raw)
		if key.Kind() == KindText {
			if !c.AppendText(key, raw) {
				return nil, fmt.Errorf("duplicate config key %s", key)
			}
			continue
		}
		n, err := parseNumeric(key, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", key, raw, err)
		}
		if !c.Append(key, n) {
			return nil, fmt.Errorf("duplicate config key %s", key)
		}
	}
	return c, nil
}

func parseNumeric(key Key, raw string) (uint64, error) {
	switch {
	case key.IsBytes():
		n, err := units.RAMInBytes(raw)
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, fmt.Errorf("negative size")
		}
		return uint64(n), nil
	case key == KeyGuaranteeType:
		switch strings.ToLower(raw) {
		case "auto":
			return types.GuaranteeAuto, nil
		case "permanent":
			return types.GuaranteePermanent, nil
		}
	}
	return strconv.ParseUint(raw, 10, 64)
}

func splitItems(s string) []string {
	var items []string
	for _, piece := range strings.Split(s, ",") {
		piece = strings.TrimSpace(piece)
		if len(items) > 0 && isListPiece(piece) {
			items[len(items)-1] += "," + piece
			continue
		}
		items = append(items, piece)
	}
	return items
}

func isListPiece(piece string) bool {
	if piece == "" {
		return false
	}
	for _, r := range piece {
		if (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
