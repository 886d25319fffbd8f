package bar

import (
	"github.com/pkg/errors"

	"github.com/openkh-tools/mdlx_browser/pack"
	"github.com/openkh-tools/mdlx_browser/utils"
)

const (
	HEADER_SIZE = 16
	ENTRY_SIZE  = 16
	NAME_SIZE   = 4
)

// Entry kinds seen in retail archives. Only the model blob is decoded;
// textures, meshes and animations pass through as raw ranges.
const (
	KIND_MODEL         uint16 = 0x04
	KIND_MODEL_TEXTURE uint16 = 0x07
	KIND_MOTION        uint16 = 0x09
)

var (
	ErrTruncated       = errors.New("buffer truncated")
	ErrInvalidEncoding = errors.New("entry name encoding invalid")
	ErrNoModelEntry    = errors.New("archive has no model entry")
)

type Entry struct {
	Kind      uint16
	Duplicate uint16
	Name      string
	Offset    uint32
	Size      uint32
}

// Bar is a parsed container. It keeps a reference to the original buffer;
// entry payloads are views into it, never copies.
type Bar struct {
	Magic   [4]byte
	Entries []Entry

	data []byte
}

// NewFromData parses the container table of contents. The magic is kept
// but not validated, the game engine itself does not check it. Entries
// whose byte range falls outside the buffer are rejected so that Data
// can never slice out of bounds.
func NewFromData(buf []byte) (*Bar, error) {
	if len(buf) < HEADER_SIZE {
		return nil, errors.Wrapf(ErrTruncated, "bar: %d byte buffer, header needs %d", len(buf), HEADER_SIZE)
	}

	c := utils.NewCursor(buf)
	b := &Bar{data: buf}
	copy(b.Magic[:], c.Bytes(4))
	count := c.U32()
	c.Skip(8)

	if int64(HEADER_SIZE)+int64(count)*ENTRY_SIZE > int64(len(buf)) {
		return nil, errors.Wrapf(ErrTruncated, "bar: %d entries need %d bytes, have %d",
			count, HEADER_SIZE+int64(count)*ENTRY_SIZE, len(buf))
	}

	b.Entries = make([]Entry, count)
	for i := range b.Entries {
		e := &b.Entries[i]
		e.Kind = c.U16()
		e.Duplicate = c.U16()

		name, err := utils.BytesToString(c.Bytes(NAME_SIZE))
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidEncoding, "bar: entry %d: %v", i, err)
		}
		e.Name = name

		e.Offset = c.U32()
		e.Size = c.U32()

		if int64(e.Offset)+int64(e.Size) > int64(len(buf)) {
			return nil, errors.Wrapf(ErrTruncated, "bar: entry %d %q range [0x%x:0x%x] outside %d byte buffer",
				i, e.Name, e.Offset, int64(e.Offset)+int64(e.Size), len(buf))
		}
	}
	if err := c.Err(); err != nil {
		return nil, errors.Wrapf(ErrTruncated, "bar: entry table: %v", err)
	}

	return b, nil
}

// EntryByKind returns the first entry with the given kind, nil when the
// archive has none. Later duplicates are reachable via EntriesByKind.
func (b *Bar) EntryByKind(kind uint16) *Entry {
	for i := range b.Entries {
		if b.Entries[i].Kind == kind {
			return &b.Entries[i]
		}
	}
	return nil
}

func (b *Bar) EntriesByKind(kind uint16) []*Entry {
	var result []*Entry
	for i := range b.Entries {
		if b.Entries[i].Kind == kind {
			result = append(result, &b.Entries[i])
		}
	}
	return result
}

func (b *Bar) Data(e *Entry) []byte {
	return b.data[e.Offset : e.Offset+e.Size]
}

// ModelData returns the payload of the first model entry.
func (b *Bar) ModelData() ([]byte, error) {
	e := b.EntryByKind(KIND_MODEL)
	if e == nil {
		return nil, errors.WithStack(ErrNoModelEntry)
	}
	return b.Data(e), nil
}

type File interface{}

type FileLoader func(e *Entry, data []byte) (File, error)

var gHandlers map[uint16]FileLoader = make(map[uint16]FileLoader, 0)

func SetHandler(kind uint16, ldr FileLoader) {
	gHandlers[kind] = ldr
}

// CallHandler decodes a single entry with the loader registered for its
// kind.
func (b *Bar) CallHandler(e *Entry) (File, error) {
	h, ex := gHandlers[e.Kind]
	if !ex {
		return nil, errors.Errorf("Cannot find handler for entry kind 0x%.2x (%s)", e.Kind, e.Name)
	}
	instance, err := h(e, b.Data(e))
	if err != nil {
		return nil, errors.Wrapf(err, "Handler for kind 0x%.2x failed", e.Kind)
	}
	return instance, nil
}

func init() {
	pack.SetHandler(".MDLX", func(name string, data []byte) (interface{}, error) {
		return NewFromData(data)
	})
	pack.SetHandler(".BAR", func(name string, data []byte) (interface{}, error) {
		return NewFromData(data)
	})
}
