package utils

import (
	"strings"

	"github.com/openkh-tools/mdlx_browser/config"

	"github.com/pkg/errors"
	"golang.org/x/text/transform"
)

// BytesToString decodes a fixed-size NUL-padded name field. Bytes are
// decoded with the configured charmap when one is set, strict ascii
// otherwise. Trailing NULs are stripped after decoding.
func BytesToString(bs []byte) (string, error) {
	var s string
	if cm := config.GetEncoding(); cm != nil {
		decoded, _, err := transform.Bytes(cm.NewDecoder(), bs)
		if err != nil {
			return "", errors.Wrapf(err, "Failed to decode % x", bs)
		}
		s = string(decoded)
	} else {
		for _, b := range bs {
			if b >= 0x80 {
				return "", errors.Errorf("Byte 0x%.2x in % x is not ascii", b, bs)
			}
		}
		s = string(bs)
	}
	return strings.TrimRight(s, "\x00"), nil
}

// StringToBytesBuffer is the inverse: name encoded with the configured
// charmap and NUL-padded to bufSize. Names longer than the buffer error
// instead of being silently cut.
func StringToBytesBuffer(s string, bufSize int) ([]byte, error) {
	bs := []byte(s)
	if cm := config.GetEncoding(); cm != nil {
		encoded, _, err := transform.Bytes(cm.NewEncoder(), bs)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to encode %q", s)
		}
		bs = encoded
	} else {
		for _, b := range bs {
			if b >= 0x80 {
				return nil, errors.Errorf("Byte 0x%.2x in %q is not ascii", b, s)
			}
		}
	}
	if len(bs) > bufSize {
		return nil, errors.Errorf("Name %q does not fit in %d bytes", s, bufSize)
	}
	r := make([]byte, bufSize)
	copy(r, bs)
	return r, nil
}
