package utils

import (
	"testing"

	"github.com/openkh-tools/mdlx_browser/config"
)

func TestBytesToString(t *testing.T) {
	tests := []struct {
		in      []byte
		out     string
		wantErr bool
	}{
		{[]byte("MODL"), "MODL", false},
		{[]byte{'A', 0, 0, 0}, "A", false},
		{[]byte{0, 0, 0, 0}, "", false},
		{[]byte{'A', 'B', 0xff, 0}, "", true},
	}
	for _, test := range tests {
		s, err := BytesToString(test.in)
		if (err != nil) != test.wantErr {
			t.Errorf("BytesToString(% x) error = %v; wantErr %v", test.in, err, test.wantErr)
			continue
		}
		if !test.wantErr && s != test.out {
			t.Errorf("BytesToString(% x) = %q; expected %q", test.in, s, test.out)
		}
	}
}

func TestBytesToStringCharmap(t *testing.T) {
	if err := config.SetEncoding("Windows 1252"); err != nil {
		t.Fatalf("SetEncoding: %v", err)
	}
	defer config.SetEncoding("")

	s, err := BytesToString([]byte{0xe9, 0, 0, 0})
	if err != nil {
		t.Fatalf("BytesToString with charmap: %v", err)
	}
	if s != "é" {
		t.Errorf("BytesToString(0xe9) = %q; expected %q", s, "é")
	}
}

func TestStringToBytesBuffer(t *testing.T) {
	bs, err := StringToBytesBuffer("AB", 4)
	if err != nil {
		t.Fatalf("StringToBytesBuffer: %v", err)
	}
	if string(bs) != "AB\x00\x00" {
		t.Errorf("StringToBytesBuffer(\"AB\", 4) = % x", bs)
	}

	if _, err := StringToBytesBuffer("TOOLONG", 4); err == nil {
		t.Error("StringToBytesBuffer with oversize name should error")
	}
}
