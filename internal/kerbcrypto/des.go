package kerbcrypto

import (
	"log/slog"

	"github.com/kdctools/keytab/internal/bitstring"
)

// DESStringToKey implements the des-cbc-md5 string-to-key procedure from
// RFC 3961 §6.2: fan-fold the password||salt into a 56-bit key, correct its
// parity and weakness, self-encrypt the input under that key, then
// parity/weakness-correct the last ciphertext block to produce the final
// 8-byte key.
func DESStringToKey(password, salt string) ([]byte, error) {
	b := append([]byte(password), []byte(salt)...)
	padded := zeroPad(b, 8)

	k0 := bitstring.FanFold(padded)
	k0 = correctKey(k0)
	slog.Debug("des string-to-key: folded key", "key", hexStr(k0))

	ciphertext, err := DESCBCEncryptZeroPad(k0, k0, padded)
	if err != nil {
		return nil, err
	}
	k1 := ciphertext[len(ciphertext)-8:]
	k1 = correctKey(k1)
	slog.Debug("des string-to-key: derived key", "key", hexStr(k1))
	return k1, nil
}

// correctKey applies DES parity and perturbs the key if it lands on one of
// the 16 weak/semi-weak keys.
func correctKey(key []byte) []byte {
	key = bitstring.AddParity(key)
	if bitstring.IsWeak(key) {
		key = bitstring.CorrectWeak(key)
	}
	return key
}
