package veconfig

import (
	"testing"
)

func TestAppendRejectsDuplicateKey(t *testing.T) {
	c := New()
	if !c.Append(KeyGuarantee, 100) {
		t.Fatal("append guarantee rejected")
	}
	if !c.Append(KeyLimit, 200) {
		t.Fatal("append limit rejected")
	}
	if c.Append(KeyGuarantee, 50) {
		t.Fatal("second guarantee append accepted")
	}

	got := c.Entries()
	want := []Entry{
		{Key: KeyGuarantee, Value: Numeric(100)},
		{Key: KeyLimit, Value: Numeric(200)},
	}
	if len(got) != len(want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %v, want %v", i, got[i], want[i])
		}
	}
	if v, ok := c.Extract(KeyGuarantee); !ok || v != 100 {
		t.Fatalf("guarantee = %d,%v, want 100,true", v, ok)
	}
}

func TestAppendUniquenessAcrossKinds(t *testing.T) {
	c := New()
	for round := 0; round < 3; round++ {
		for _, k := range Keys() {
			if k.Kind() == KindText {
				c.AppendText(k, "0-1")
			} else {
				c.Append(k, uint64(round))
			}
		}
	}
	if c.Len() != NumKeys {
		t.Fatalf("len = %d, want %d", c.Len(), NumKeys)
	}
	seen := map[Key]int{}
	for _, e := range c.Entries() {
		seen[e.Key]++
	}
	for k, n := range seen {
		if n != 1 {
			t.Fatalf("key %s appears %d times", k, n)
		}
	}
	for _, k := range Keys() {
		if k.Kind() == KindNumeric {
			if v, _ := c.Extract(k); v != 0 {
				t.Fatalf("%s = %d, first append must win", k, v)
			}
		}
	}
}

func TestAppendRejectsKindMismatch(t *testing.T) {
	c := New()
	if c.AppendText(KeyLimit, "1G") {
		t.Fatal("text append for numeric key accepted")
	}
	if c.Append(KeyNodeList, 1) {
		t.Fatal("numeric append for text key accepted")
	}
	if c.Append(Key(NumKeys), 1) {
		t.Fatal("append for unknown key accepted")
	}
	if c.Len() != 0 {
		t.Fatalf("len = %d after rejected appends", c.Len())
	}
}

func TestExtractKindFidelity(t *testing.T) {
	c := New()
	c.AppendText(KeyCPUList, "0-3")
	c.Append(KeyVRAM, 64<<20)
	c.AppendText(KeyNodeList, "1")
	c.Append(KeySwap, 0)

	for _, k := range Keys() {
		switch k.Kind() {
		case KindNumeric:
			if _, ok := c.ExtractText(k); ok {
				t.Fatalf("ExtractText(%s) reported present", k)
			}
		case KindText:
			if _, ok := c.Extract(k); ok {
				t.Fatalf("Extract(%s) reported present", k)
			}
		}
	}
	if s, ok := c.ExtractText(KeyCPUList); !ok || s != "0-3" {
		t.Fatalf("cpu_list = %q,%v", s, ok)
	}
	if v, ok := c.Extract(KeySwap); !ok || v != 0 {
		t.Fatalf("swap = %d,%v", v, ok)
	}
	if _, ok := c.Extract(KeyLimit); ok {
		t.Fatal("limit reported present")
	}
}

func TestAppendTextCopiesInput(t *testing.T) {
	buf := []byte("0-1")
	c := New()
	c.AppendText(KeyNodeList, string(buf))
	buf[0] = '9'
	if s, _ := c.ExtractText(KeyNodeList); s != "0-1" {
		t.Fatalf("node_list = %q, want 0-1", s)
	}
}

func TestReset(t *testing.T) {
	c := New()
	c.Append(KeyGuarantee, 1)
	c.AppendText(KeyNodeList, "0")
	c.Reset()
	if c.Len() != 0 || c.Has(KeyGuarantee) || c.Has(KeyNodeList) {
		t.Fatalf("config not empty after reset: %s", c)
	}
	if !c.Append(KeyGuarantee, 2) {
		t.Fatal("append after reset rejected")
	}
}

func TestZeroValueAndNil(t *testing.T) {
	var c Config
	if !c.Append(KeyLimit, 1) {
		t.Fatal("zero value Config rejected append")
	}
	var nilConf *Config
	if nilConf.Len() != 0 || nilConf.Entries() != nil || nilConf.Has(KeyLimit) {
		t.Fatal("nil Config must look empty")
	}
	if _, ok := nilConf.Extract(KeyLimit); ok {
		t.Fatal("nil Config extract reported present")
	}
}

func TestString(t *testing.T) {
	c := New()
	c.Append(KeyLimit, 1<<30)
	c.AppendText(KeyNodeList, "0-1")
	c.Append(KeyGuaranteeType, 1)
	if got, want := c.String(), "limit=1GiB node_list=0-1 guarantee_type=1"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
