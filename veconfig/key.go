package veconfig

import (
	"fmt"
	"strings"
)

// Key identifies a VE config parameter. Its numeric value is the wire tag:
// new keys are appended, never renumbered.
type Key uint16

const (
	// KeyGuarantee is the best-effort memory protection, in bytes. A VE is
	// always given at least this much unless the host is in real trouble.
	KeyGuarantee Key = iota
	// KeyLimit is the maximal amount of host memory a VE may use, in bytes.
	// Must be >= guarantee.
	KeyLimit
	// KeySwap is the hard limit on host swap usage, in bytes.
	KeySwap
	// KeyVRAM is the video memory size of a VM, in bytes.
	KeyVRAM
	// KeyNodeList is the NUMA node list the VE is bound to, e.g. "0-1".
	KeyNodeList
	// KeyCPUList is the CPU list the VE is bound to, e.g. "0-3,8".
	KeyCPUList
	// KeyGuaranteeType selects how the guarantee is honoured,
	// see types.GuaranteeAuto and types.GuaranteePermanent.
	KeyGuaranteeType

	// NumKeys is the number of known keys and the capacity of a Config.
	NumKeys = int(iota)
)

// Kind is the value kind of a key.
type Kind uint8

const (
	KindNumeric Kind = iota
	KindText
)

func (k Kind) String() string {
	if k == KindText {
		return "text"
	}
	return "numeric"
}

type keyInfo struct {
	name  string
	kind  Kind
	bytes bool // numeric value is a byte count
}

var keyTable = [NumKeys]keyInfo{
	KeyGuarantee:     {name: "guarantee", kind: KindNumeric, bytes: true},
	KeyLimit:         {name: "limit", kind: KindNumeric, bytes: true},
	KeySwap:          {name: "swap", kind: KindNumeric, bytes: true},
	KeyVRAM:          {name: "vram", kind: KindNumeric, bytes: true},
	KeyNodeList:      {name: "node_list", kind: KindText},
	KeyCPUList:       {name: "cpu_list", kind: KindText},
	KeyGuaranteeType: {name: "guarantee_type", kind: KindNumeric},
}

// Valid reports whether k is part of the known key set.
func (k Key) Valid() bool { return int(k) < NumKeys }

// Kind returns the value kind of k. Unknown keys report KindNumeric;
// check Valid first.
func (k Key) Kind() Kind {
	if !k.Valid() {
		return KindNumeric
	}
	return keyTable[k].kind
}

// Tag returns the stable wire tag of k.
func (k Key) Tag() uint16 { return uint16(k) }

// IsBytes reports whether the numeric value of k is a byte count.
func (k Key) IsBytes() bool { return k.Valid() && keyTable[k].bytes }

func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", uint16(k))
	}
	return keyTable[k].name
}

// KeyFromTag resolves a wire tag. Unknown tags return false.
func KeyFromTag(tag uint16) (Key, bool) {
	k := Key(tag)
	return k, k.Valid()
}

// ParseKey resolves a key by name; dashes and underscores are equivalent.
func ParseKey(name string) (Key, error) {
	n := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for i := range keyTable {
		if keyTable[i].name == n {
			return Key(i), nil //nolint:gosec
		}
	}
	return 0, fmt.Errorf("unknown config key %q", name)
}

// Keys returns all known keys in tag order.
func Keys() []Key {
	keys := make([]Key, NumKeys)
	for i := range keys {
		keys[i] = Key(i) //nolint:gosec
	}
	return keys
}
