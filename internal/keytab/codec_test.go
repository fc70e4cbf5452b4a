package keytab

import (
	"bytes"
	"testing"
)

func sampleEntry() KeytabEntry {
	return KeytabEntry{
		Realm:      NewText("EXAMPLE.COM"),
		Components: []CountedOctetString{NewText("alice")},
		NameType:   1,
		Timestamp:  0,
		Vno8:       1,
		Key: Keyblock{
			KeyType: 18,
			Key:     NewHex(make([]byte, 32)),
		},
		Vno: 1,
	}
}

func TestRoundTrip(t *testing.T) {
	kt := New()
	kt.Entries = []KeytabEntry{sampleEntry(), {
		Realm:      NewText("OTHER.EXAMPLE"),
		Components: []CountedOctetString{NewText("svc"), NewText("host")},
		NameType:   1,
		Timestamp:  1700000000,
		Vno8:       3,
		Key: Keyblock{
			KeyType: 17,
			Key:     NewHex([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}),
		},
		Vno: 3,
	}}

	encoded := kt.Encode()
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.Entries) != len(kt.Entries) {
		t.Fatalf("entry count = %d, want %d", len(decoded.Entries), len(kt.Entries))
	}
	for i := range kt.Entries {
		want := kt.Entries[i]
		got := decoded.Entries[i]
		if got.Principal() != want.Principal() {
			t.Errorf("entry %d principal = %q, want %q", i, got.Principal(), want.Principal())
		}
		if got.NameType != want.NameType || got.Timestamp != want.Timestamp || got.Vno != want.Vno {
			t.Errorf("entry %d fixed fields mismatch: %+v vs %+v", i, got, want)
		}
		if got.Key.KeyType != want.Key.KeyType || !bytes.Equal(got.Key.Key.Data, want.Key.Key.Data) {
			t.Errorf("entry %d key mismatch", i)
		}
	}

	reEncoded := decoded.Encode()
	if !bytes.Equal(encoded, reEncoded) {
		t.Fatalf("Decode(Encode(K)) did not round-trip byte-for-byte")
	}
}

func TestEntrySizePrefixMatchesPayloadLength(t *testing.T) {
	kt := New()
	kt.Entries = []KeytabEntry{sampleEntry()}
	encoded := kt.Encode()

	payload := encodeEntryPayload(kt.Entries[0])
	sizeField := int32(binaryBE32(encoded[2:6]))
	if int(sizeField) != len(payload) {
		t.Fatalf("size field = %d, want %d (actual payload length)", sizeField, len(payload))
	}
}

func binaryBE32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func TestDecodeBadVersion(t *testing.T) {
	data := []byte{0x01, 0x02, 0, 0, 0, 0}
	if _, err := Decode(data); err == nil {
		t.Fatal("expected a bad-version error")
	}
}

func TestDecodeTruncated(t *testing.T) {
	kt := New()
	kt.Entries = []KeytabEntry{sampleEntry()}
	encoded := kt.Encode()

	if _, err := Decode(encoded[:len(encoded)-3]); err == nil {
		t.Fatal("expected a truncated-file error")
	}
}

func TestDecodeSkipsHoles(t *testing.T) {
	kt := New()
	kt.Entries = []KeytabEntry{sampleEntry()}
	entryBytes := kt.Encode()

	// version header + a 5-byte hole (size = -5) + the real entry.
	var buf bytes.Buffer
	buf.Write(entryBytes[:2])
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFB}) // int32(-5) big-endian
	buf.Write(make([]byte, 5))
	buf.Write(entryBytes[2:])

	decoded, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode with hole: %v", err)
	}
	if len(decoded.Entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(decoded.Entries))
	}
}

func TestCountedOctetStringInvariant(t *testing.T) {
	cos := NewText("hello")
	encoded := encodeCOS(cos)
	if int(encoded[0])<<8|int(encoded[1]) != len(cos.Data) {
		t.Fatalf("encoded length prefix does not match len(Data)")
	}
}
