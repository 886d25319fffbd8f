package bar

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/openkh-tools/mdlx_browser/utils"
)

// EntrySource is one entry to be written by Marshal. Offsets are assigned
// sequentially after the table, payloads are not aligned or deduplicated.
type EntrySource struct {
	Kind      uint16
	Duplicate uint16
	Name      string
	Data      []byte
}

func Marshal(magic [4]byte, entries []EntrySource) ([]byte, error) {
	total := int64(HEADER_SIZE) + int64(len(entries))*ENTRY_SIZE
	for _, e := range entries {
		total += int64(len(e.Data))
	}
	if total > int64(^uint32(0)) {
		return nil, errors.Errorf("Archive of %d bytes does not fit in u32 offsets", total)
	}

	buf := make([]byte, total)
	copy(buf[0:4], magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(entries)))

	dataOffset := uint32(HEADER_SIZE + len(entries)*ENTRY_SIZE)
	for i, e := range entries {
		record := buf[HEADER_SIZE+i*ENTRY_SIZE:]
		binary.LittleEndian.PutUint16(record[0:2], e.Kind)
		binary.LittleEndian.PutUint16(record[2:4], e.Duplicate)

		name, err := utils.StringToBytesBuffer(e.Name, NAME_SIZE)
		if err != nil {
			return nil, errors.Wrapf(err, "Entry %d", i)
		}
		copy(record[4:8], name)

		binary.LittleEndian.PutUint32(record[8:12], dataOffset)
		binary.LittleEndian.PutUint32(record[12:16], uint32(len(e.Data)))

		copy(buf[dataOffset:], e.Data)
		dataOffset += uint32(len(e.Data))
	}

	return buf, nil
}

// Marshal rebuilds the container from its parsed form, re-packing entry
// payloads back to back.
func (b *Bar) Marshal() ([]byte, error) {
	entries := make([]EntrySource, len(b.Entries))
	for i := range b.Entries {
		e := &b.Entries[i]
		entries[i] = EntrySource{
			Kind:      e.Kind,
			Duplicate: e.Duplicate,
			Name:      e.Name,
			Data:      b.Data(e),
		}
	}
	return Marshal(b.Magic, entries)
}
