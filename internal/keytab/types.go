// Package keytab implements the MIT-style keytab binary format: a
// variable-length, length-prefixed sequence of entries binding Kerberos
// principals to symmetric keys (spec §3, §4.5, §6.1).
package keytab

// OctetKind controls only how a CountedOctetString renders as text
// (Text vs. Hex); it is never serialized.
type OctetKind int

const (
	// Text marks a counted octet string that holds UTF-8 text (realm,
	// principal components).
	Text OctetKind = iota
	// Hex marks a counted octet string that holds opaque key material,
	// rendered as hex for display.
	Hex
)

// CountedOctetString is a u16-length-prefixed byte string. Its encoded
// length is always len(Data); there is no separately stored length field
// to drift out of sync.
type CountedOctetString struct {
	Data []byte
	Kind OctetKind
}

// NewText builds a Text-kind CountedOctetString from a string.
func NewText(s string) CountedOctetString {
	return CountedOctetString{Data: []byte(s), Kind: Text}
}

// NewHex builds a Hex-kind CountedOctetString from raw key bytes.
func NewHex(b []byte) CountedOctetString {
	return CountedOctetString{Data: b, Kind: Hex}
}

// String renders the data according to Kind: as text if Kind is Text, as
// upper-case hex otherwise.
func (c CountedOctetString) String() string {
	if c.Kind == Text {
		return string(c.Data)
	}
	return hexUpper(c.Data)
}

// Keyblock is an encryption-type tag paired with raw key material.
type Keyblock struct {
	KeyType uint16
	Key     CountedOctetString
}

// KeytabEntry binds one principal (realm + components) to a Keyblock at a
// given key version. NumComponents and the on-disk "size" prefix are
// always derived from Components/the encoded payload, never stored
// separately, per the source's "size computed from a heuristic" bug this
// tool fixes (spec §9).
type KeytabEntry struct {
	Realm      CountedOctetString
	Components []CountedOctetString
	NameType   uint32
	Timestamp  uint32 // seconds since Unix epoch
	Vno8       uint8  // low byte of Vno
	Key        Keyblock
	Vno        uint32
}

// Principal renders "comp1/comp2/...@REALM" the way `keytab read` prints
// it.
func (e KeytabEntry) Principal() string {
	s := ""
	for i, c := range e.Components {
		if i > 0 {
			s += "/"
		}
		s += string(c.Data)
	}
	return s + "@" + string(e.Realm.Data)
}

// FileFormatVersion is the only version this codec understands.
const FileFormatVersion = 0x0502

// Keytab is an ordered sequence of entries plus the file format version
// header. Entry order is preserved across Decode(Encode(k)).
type Keytab struct {
	FileFormatVersion uint16
	Entries           []KeytabEntry
}

// New returns an empty Keytab with the standard file format version.
func New() Keytab {
	return Keytab{FileFormatVersion: FileFormatVersion}
}
