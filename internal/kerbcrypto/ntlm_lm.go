package kerbcrypto

import (
	"strings"
	"unicode/utf16"

	"github.com/kdctools/keytab/internal/bitstring"
)

// lmMagic is the fixed DES-ECB plaintext used by the LAN Manager hash
// ("KGS!@#$%").
var lmMagic = []byte("KGS!@#$%")

// NTLMStringToKey implements the rc4-hmac (NTLM) string-to-key: MD4 of the
// password encoded as little-endian UTF-16, no BOM and no terminator.
func NTLMStringToKey(password string) []byte {
	return MD4Sum(utf16LEBytes(password))
}

// LMStringToKey implements the legacy LAN Manager hash: upper-case the
// ASCII password, pad/truncate to 14 bytes, split into two 7-byte halves,
// expand each to a DES key by inserting parity placeholder bits, and
// encrypt the fixed plaintext "KGS!@#$%" with each half.
func LMStringToKey(password string) ([]byte, error) {
	upper := strings.ToUpper(password)
	padded := make([]byte, 14)
	copy(padded, []byte(upper))
	if len(upper) > 14 {
		padded = []byte(upper)[:14]
	}

	key1 := bitstring.Expand7To8(padded[:7])
	key2 := bitstring.Expand7To8(padded[7:])

	h1, err := DESECBEncrypt(key1, lmMagic)
	if err != nil {
		return nil, err
	}
	h2, err := DESECBEncrypt(key2, lmMagic)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 16)
	out = append(out, h1...)
	out = append(out, h2...)
	return out, nil
}

// utf16LEBytes encodes s as little-endian UTF-16 code units with no BOM.
func utf16LEBytes(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		out[i*2] = byte(u)
		out[i*2+1] = byte(u >> 8)
	}
	return out
}
