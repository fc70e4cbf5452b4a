package keytab

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/kdctools/keytab/internal/errs"
)

// Encode serializes the keytab to its on-disk bytes: the 2-byte version,
// then each entry's 4-byte payload size followed by the payload itself.
// Holes are never re-emitted.
func (k Keytab) Encode() []byte {
	version := k.FileFormatVersion
	if version == 0 {
		version = FileFormatVersion
	}
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, version)

	for _, e := range k.Entries {
		payload := encodeEntryPayload(e)
		sizeHdr := make([]byte, 4)
		binary.BigEndian.PutUint32(sizeHdr, uint32(int32(len(payload))))
		buf = append(buf, sizeHdr...)
		buf = append(buf, payload...)
	}
	return buf
}

// Decode parses a keytab file's bytes. Entries with a positive size prefix
// are parsed; entries with a size <= 0 are holes and are skipped over
// |size| bytes, never negated onto the cursor (spec §9: the original
// source's bug was advancing the cursor by a raw negative size).
func Decode(data []byte) (Keytab, error) {
	if len(data) < 2 {
		return Keytab{}, fmt.Errorf("%w: keytab header truncated", errs.ErrTruncatedFile)
	}
	version := binary.BigEndian.Uint16(data[0:2])
	if version != FileFormatVersion {
		return Keytab{}, fmt.Errorf("%w: got 0x%04x, want 0x%04x", errs.ErrBadVersion, version, uint16(FileFormatVersion))
	}

	cursor := 2
	var entries []KeytabEntry
	for cursor < len(data) {
		if len(data)-cursor < 4 {
			return Keytab{}, fmt.Errorf("%w: entry size prefix truncated", errs.ErrTruncatedFile)
		}
		size := int32(binary.BigEndian.Uint32(data[cursor : cursor+4]))
		cursor += 4

		if size > 0 {
			n := int(size)
			if len(data)-cursor < n {
				return Keytab{}, fmt.Errorf("%w: entry payload truncated (want %d bytes, have %d)", errs.ErrTruncatedFile, n, len(data)-cursor)
			}
			entry, err := decodeEntryPayload(data[cursor : cursor+n])
			if err != nil {
				return Keytab{}, err
			}
			entries = append(entries, entry)
			cursor += n
			continue
		}

		// Hole: skip abs(size) bytes. size == 0 would never advance the
		// cursor and can only occur in a corrupt file, so treat it as
		// truncation rather than loop forever.
		n := int(-size)
		if n == 0 || cursor+n > len(data) {
			return Keytab{}, fmt.Errorf("%w: invalid hole size", errs.ErrTruncatedFile)
		}
		slog.Debug("keytab decode: skipping hole", "bytes", n)
		cursor += n
	}

	return Keytab{FileFormatVersion: version, Entries: entries}, nil
}

func encodeCOS(c CountedOctetString) []byte {
	buf := make([]byte, 2+len(c.Data))
	binary.BigEndian.PutUint16(buf, uint16(len(c.Data)))
	copy(buf[2:], c.Data)
	return buf
}

func decodeCOS(b []byte, kind OctetKind) (CountedOctetString, int, error) {
	if len(b) < 2 {
		return CountedOctetString{}, 0, fmt.Errorf("%w: counted string length truncated", errs.ErrTruncatedFile)
	}
	n := int(binary.BigEndian.Uint16(b[0:2]))
	if len(b)-2 < n {
		return CountedOctetString{}, 0, fmt.Errorf("%w: counted string data truncated", errs.ErrTruncatedFile)
	}
	data := make([]byte, n)
	copy(data, b[2:2+n])
	return CountedOctetString{Data: data, Kind: kind}, 2 + n, nil
}

func encodeEntryPayload(e KeytabEntry) []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, uint16(len(e.Components)))

	buf = append(buf, encodeCOS(e.Realm)...)
	for _, c := range e.Components {
		buf = append(buf, encodeCOS(c)...)
	}

	tail := make([]byte, 9)
	binary.BigEndian.PutUint32(tail[0:4], e.NameType)
	binary.BigEndian.PutUint32(tail[4:8], e.Timestamp)
	tail[8] = e.Vno8
	buf = append(buf, tail...)

	keyHdr := make([]byte, 2)
	binary.BigEndian.PutUint16(keyHdr, e.Key.KeyType)
	buf = append(buf, keyHdr...)
	buf = append(buf, encodeCOS(e.Key.Key)...)

	vno := make([]byte, 4)
	binary.BigEndian.PutUint32(vno, e.Vno)
	buf = append(buf, vno...)

	return buf
}

func decodeEntryPayload(b []byte) (KeytabEntry, error) {
	var e KeytabEntry
	if len(b) < 2 {
		return e, fmt.Errorf("%w: entry num_components truncated", errs.ErrTruncatedFile)
	}
	numComponents := int(binary.BigEndian.Uint16(b[0:2]))
	off := 2

	realm, n, err := decodeCOS(b[off:], Text)
	if err != nil {
		return e, err
	}
	e.Realm = realm
	off += n

	e.Components = make([]CountedOctetString, 0, numComponents)
	for i := 0; i < numComponents; i++ {
		comp, n, err := decodeCOS(b[off:], Text)
		if err != nil {
			return e, err
		}
		e.Components = append(e.Components, comp)
		off += n
	}

	if len(b)-off < 9 {
		return e, fmt.Errorf("%w: entry fixed fields truncated", errs.ErrTruncatedFile)
	}
	e.NameType = binary.BigEndian.Uint32(b[off : off+4])
	e.Timestamp = binary.BigEndian.Uint32(b[off+4 : off+8])
	e.Vno8 = b[off+8]
	off += 9

	if len(b)-off < 2 {
		return e, fmt.Errorf("%w: keyblock key_type truncated", errs.ErrTruncatedFile)
	}
	e.Key.KeyType = binary.BigEndian.Uint16(b[off : off+2])
	off += 2

	keyData, n, err := decodeCOS(b[off:], Hex)
	if err != nil {
		return e, err
	}
	e.Key.Key = keyData
	off += n

	switch len(b) - off {
	case 4:
		e.Vno = binary.BigEndian.Uint32(b[off : off+4])
	case 0:
		// Trailing vno is optional; tolerate its absence per spec §6.1.
		e.Vno = uint32(e.Vno8)
	default:
		return e, fmt.Errorf("%w: unexpected trailing bytes after keyblock", errs.ErrTruncatedFile)
	}

	return e, nil
}
