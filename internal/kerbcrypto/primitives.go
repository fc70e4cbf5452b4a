// Package kerbcrypto adapts the stdlib and golang.org/x/crypto block
// cipher, digest, and KDF primitives into the thin deterministic wrappers
// the Kerberos/NTLM derivation engine is built on, then composes them into
// the five string-to-key entry points.
package kerbcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/hmac"
	"crypto/sha1"
	"fmt"

	"golang.org/x/crypto/md4" //nolint:staticcheck // MD4 is mandated by NTLM, not a choice.
	"golang.org/x/crypto/pbkdf2"
)

// DESECBEncrypt encrypts plaintext (which must be a multiple of 8 bytes)
// under an 8-byte DES key in ECB mode with no padding.
func DESECBEncrypt(key, plaintext []byte) ([]byte, error) {
	block, err := des.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("des-ecb: %w", err)
	}
	if len(plaintext)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("des-ecb: plaintext length %d is not a multiple of the block size", len(plaintext))
	}
	out := make([]byte, len(plaintext))
	for off := 0; off < len(plaintext); off += block.BlockSize() {
		block.Encrypt(out[off:off+block.BlockSize()], plaintext[off:off+block.BlockSize()])
	}
	return out, nil
}

// DESCBCEncryptZeroPad zero-pads plaintext up to a multiple of the DES
// block size and encrypts it under key/iv in CBC mode.
func DESCBCEncryptZeroPad(key, iv, plaintext []byte) ([]byte, error) {
	block, err := des.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("des-cbc: %w", err)
	}
	padded := zeroPad(plaintext, block.BlockSize())
	out := make([]byte, len(padded))
	cbc := cipher.NewCBCEncrypter(block, iv)
	cbc.CryptBlocks(out, padded)
	return out, nil
}

// AES128CBCEncryptNoPad encrypts block-aligned plaintext under a 16-byte
// AES-128 key in CBC mode with no padding.
func AES128CBCEncryptNoPad(key, iv, plaintext []byte) ([]byte, error) {
	return aesCBCNoPad(key, iv, plaintext)
}

// AES256CBCEncryptNoPad encrypts block-aligned plaintext under a 32-byte
// AES-256 key in CBC mode with no padding.
func AES256CBCEncryptNoPad(key, iv, plaintext []byte) ([]byte, error) {
	return aesCBCNoPad(key, iv, plaintext)
}

func aesCBCNoPad(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes-cbc: %w", err)
	}
	if len(plaintext)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("aes-cbc: plaintext length %d is not a multiple of the block size", len(plaintext))
	}
	out := make([]byte, len(plaintext))
	cbc := cipher.NewCBCEncrypter(block, iv)
	cbc.CryptBlocks(out, plaintext)
	return out, nil
}

func zeroPad(b []byte, blockSize int) []byte {
	rem := len(b) % blockSize
	if rem == 0 {
		out := make([]byte, len(b))
		copy(out, b)
		return out
	}
	out := make([]byte, len(b)+blockSize-rem)
	copy(out, b)
	return out
}

// MD4Sum returns the MD4 digest of data.
func MD4Sum(data []byte) []byte {
	h := md4.New()
	h.Write(data)
	return h.Sum(nil)
}

// HMACSHA1 returns HMAC-SHA1(key, data).
func HMACSHA1(key, data []byte) []byte {
	mac := hmac.New(sha1.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// PBKDF2HMACSHA1 derives keyLen bytes from password/salt using PBKDF2 with
// HMAC-SHA1 as the pseudorandom function.
func PBKDF2HMACSHA1(password, salt []byte, iterations, keyLen int) []byte {
	return pbkdf2.Key(password, salt, iterations, keyLen, sha1.New)
}
