package kerbcrypto

import "encoding/hex"

func hexStr(b []byte) string {
	return hex.EncodeToString(b)
}
