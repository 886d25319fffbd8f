package bar

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
)

func buildHeader(magic string, count uint32) []byte {
	buf := make([]byte, HEADER_SIZE)
	copy(buf[0:4], magic)
	binary.LittleEndian.PutUint32(buf[4:8], count)
	return buf
}

func buildEntry(kind, dup uint16, name string, offset, size uint32) []byte {
	buf := make([]byte, ENTRY_SIZE)
	binary.LittleEndian.PutUint16(buf[0:2], kind)
	binary.LittleEndian.PutUint16(buf[2:4], dup)
	copy(buf[4:8], name)
	binary.LittleEndian.PutUint32(buf[8:12], offset)
	binary.LittleEndian.PutUint32(buf[12:16], size)
	return buf
}

func TestParseEmptyArchive(t *testing.T) {
	b, err := NewFromData(buildHeader("BAR\x01", 0))
	if err != nil {
		t.Fatalf("NewFromData: %v", err)
	}
	if len(b.Entries) != 0 {
		t.Errorf("len(Entries) = %d; expected 0", len(b.Entries))
	}
	if string(b.Magic[:]) != "BAR\x01" {
		t.Errorf("Magic = % x; expected BAR\\x01", b.Magic)
	}
}

func TestParseArbitraryMagic(t *testing.T) {
	// the magic is opaque, any 4 bytes are accepted
	if _, err := NewFromData(buildHeader("\x00\xff\x01\x02", 0)); err != nil {
		t.Errorf("NewFromData with unusual magic: %v", err)
	}
}

func TestParseTruncatedHeader(t *testing.T) {
	if _, err := NewFromData(make([]byte, 15)); !errors.Is(err, ErrTruncated) {
		t.Errorf("15 byte buffer: err = %v; expected ErrTruncated", err)
	}
}

func TestParseTruncatedEntryTable(t *testing.T) {
	buf := append(buildHeader("BAR\x01", 2), buildEntry(4, 0, "MODL", 48, 0)...)
	if _, err := NewFromData(buf); !errors.Is(err, ErrTruncated) {
		t.Errorf("short entry table: err = %v; expected ErrTruncated", err)
	}
}

func TestParseEntryRangeOutsideBuffer(t *testing.T) {
	buf := append(buildHeader("BAR\x01", 1), buildEntry(4, 0, "MODL", 32, 100)...)
	if _, err := NewFromData(buf); !errors.Is(err, ErrTruncated) {
		t.Errorf("out of range entry: err = %v; expected ErrTruncated", err)
	}
}

func TestParseInvalidName(t *testing.T) {
	entry := buildEntry(4, 0, "", 32, 0)
	copy(entry[4:8], []byte{0xff, 0xfe, 0x00, 0x00})
	buf := append(buildHeader("BAR\x01", 1), entry...)
	if _, err := NewFromData(buf); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("non-ascii name: err = %v; expected ErrInvalidEncoding", err)
	}
}

func TestEntryByKindFirstMatchWins(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef, 0x11, 0x22}
	buf := buildHeader("BAR\x01", 3)
	buf = append(buf, buildEntry(7, 0, "TEX", 64, 2)...)
	buf = append(buf, buildEntry(4, 0, "MODL", 64, 4)...)
	buf = append(buf, buildEntry(4, 1, "MOD2", 68, 2)...)
	buf = append(buf, payload...)

	b, err := NewFromData(buf)
	if err != nil {
		t.Fatalf("NewFromData: %v", err)
	}

	e := b.EntryByKind(4)
	if e == nil {
		t.Fatal("EntryByKind(4) = nil")
	}
	if e.Name != "MODL" || e.Duplicate != 0 {
		t.Errorf("EntryByKind(4) = %+v; expected first MODL entry", e)
	}
	if !bytes.Equal(b.Data(e), payload[0:4]) {
		t.Errorf("Data = % x; expected % x", b.Data(e), payload[0:4])
	}

	all := b.EntriesByKind(4)
	if len(all) != 2 {
		t.Fatalf("len(EntriesByKind(4)) = %d; expected 2", len(all))
	}
	if all[1].Duplicate != 1 || !bytes.Equal(b.Data(all[1]), payload[4:6]) {
		t.Errorf("second model entry = %+v data % x", all[1], b.Data(all[1]))
	}

	if b.EntryByKind(9) != nil {
		t.Error("EntryByKind(9) should be nil")
	}
}

func TestModelDataMissing(t *testing.T) {
	b, err := NewFromData(buildHeader("BAR\x01", 0))
	if err != nil {
		t.Fatalf("NewFromData: %v", err)
	}
	if _, err := b.ModelData(); !errors.Is(err, ErrNoModelEntry) {
		t.Errorf("ModelData on empty archive: err = %v; expected ErrNoModelEntry", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	var magic [4]byte
	copy(magic[:], "BAR\x01")

	src := []EntrySource{
		{Kind: 4, Duplicate: 0, Name: "MODL", Data: []byte{1, 2, 3}},
		{Kind: 7, Duplicate: 0, Name: "TEX", Data: []byte{4, 5}},
		{Kind: 7, Duplicate: 1, Name: "TEX", Data: nil},
	}

	data, err := Marshal(magic, src)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	b, err := NewFromData(data)
	if err != nil {
		t.Fatalf("NewFromData: %v", err)
	}
	if len(b.Entries) != len(src) {
		t.Fatalf("len(Entries) = %d; expected %d", len(b.Entries), len(src))
	}
	for i, s := range src {
		e := &b.Entries[i]
		if e.Kind != s.Kind || e.Duplicate != s.Duplicate || e.Name != s.Name {
			t.Errorf("entry %d = %+v; expected %+v", i, e, s)
		}
		if !bytes.Equal(b.Data(e), s.Data) {
			t.Errorf("entry %d data = % x; expected % x", i, b.Data(e), s.Data)
		}
	}

	remarshaled, err := b.Marshal()
	if err != nil {
		t.Fatalf("(*Bar).Marshal: %v", err)
	}
	if !bytes.Equal(remarshaled, data) {
		t.Error("(*Bar).Marshal did not reproduce the original buffer")
	}
}
