package kerbcrypto

import (
	"log/slog"

	"github.com/kdctools/keytab/internal/bitstring"
)

// DefaultAESIterations is the RFC 3962 default PBKDF2 iteration count. The
// source this tool grew out of hard-coded an iteration count of 1; that was
// a bug, not a deliberate choice, so this package defaults to 4096 and lets
// callers override it.
const DefaultAESIterations = 4096

var zeroIV16 = make([]byte, 16)

// AES128StringToKey implements aes128-cts-hmac-sha1-96 string-to-key
// (RFC 3962): PBKDF2-HMAC-SHA1 the password/salt into a 16-byte base key,
// then run it through the DK("kerberos") construction.
func AES128StringToKey(password, salt string, iterations int) ([]byte, error) {
	tkey := PBKDF2HMACSHA1([]byte(password), []byte(salt), iterations, 16)
	slog.Debug("aes128 string-to-key: pbkdf2", "key", hexStr(tkey))

	folded := bitstring.NFold([]byte("kerberos"), 128)
	slog.Debug("aes128 string-to-key: nfold", "value", hexStr(folded))

	key, err := AES128CBCEncryptNoPad(tkey, zeroIV16, folded)
	if err != nil {
		return nil, err
	}
	return key[:16], nil
}

// AES256StringToKey implements aes256-cts-hmac-sha1-96 string-to-key: a
// 32-byte PBKDF2 base key, then a two-block DK("kerberos") chain where the
// first ciphertext block is re-encrypted (under the same zero IV) to
// produce the remaining 16 bytes of key material.
func AES256StringToKey(password, salt string, iterations int) ([]byte, error) {
	tkey := PBKDF2HMACSHA1([]byte(password), []byte(salt), iterations, 32)
	slog.Debug("aes256 string-to-key: pbkdf2", "key", hexStr(tkey))

	folded := bitstring.NFold([]byte("kerberos"), 128)
	slog.Debug("aes256 string-to-key: nfold", "value", hexStr(folded))

	block1, err := AES256CBCEncryptNoPad(tkey, zeroIV16, folded)
	if err != nil {
		return nil, err
	}
	block2, err := AES256CBCEncryptNoPad(tkey, zeroIV16, block1[:16])
	if err != nil {
		return nil, err
	}
	key := make([]byte, 0, 32)
	key = append(key, block1[:16]...)
	key = append(key, block2[:16]...)
	return key, nil
}
