package kerbcrypto

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/kdctools/keytab/internal/bitstring"
)

func TestDESStringToKeyVector(t *testing.T) {
	key, err := DESStringToKey("password", "ATHENA.MIT.EDUraeburn")
	if err != nil {
		t.Fatalf("DESStringToKey: %v", err)
	}
	want := "CBC22FAE235298E3"
	if got := strings.ToUpper(hex.EncodeToString(key)); got != want {
		t.Fatalf("des string-to-key = %s, want %s", got, want)
	}
}

func TestDESStringToKeyNeverWeak(t *testing.T) {
	// Spot-check a handful of inputs; the correction path is exercised even
	// though none of these happen to land on a weak key.
	for _, pw := range []string{"password", "", "a", "correct horse battery staple"} {
		key, err := DESStringToKey(pw, "SALT")
		if err != nil {
			t.Fatalf("DESStringToKey(%q): %v", pw, err)
		}
		if len(key) != 8 {
			t.Fatalf("key length = %d, want 8", len(key))
		}
		if bitstring.IsWeak(key) {
			t.Fatalf("DESStringToKey(%q) = %X, a weak key", pw, key)
		}
	}
}

func TestAES128StringToKeyVector(t *testing.T) {
	key, err := AES128StringToKey("password", "ATHENA.MIT.EDUraeburn", 1)
	if err != nil {
		t.Fatalf("AES128StringToKey: %v", err)
	}
	want := "42263C6E89F4FC28B8DF68EE09799F15"
	if got := strings.ToUpper(hex.EncodeToString(key)); got != want {
		t.Fatalf("aes128 string-to-key = %s, want %s", got, want)
	}
}

func TestAES256StringToKeyVector(t *testing.T) {
	key, err := AES256StringToKey("password", "ATHENA.MIT.EDUraeburn", 1)
	if err != nil {
		t.Fatalf("AES256StringToKey: %v", err)
	}
	want := "FE697B52BC0D3CE14432BA036A92E65BBB52280990A2FA27883998D72AF30161"
	if got := strings.ToUpper(hex.EncodeToString(key)); got != want {
		t.Fatalf("aes256 string-to-key = %s, want %s", got, want)
	}
}

func TestNTLMStringToKeyVector(t *testing.T) {
	key := NTLMStringToKey("password")
	want := "8846F7EAEE8FB117AD06BDD830B7586C"
	if got := strings.ToUpper(hex.EncodeToString(key)); got != want {
		t.Fatalf("ntlm string-to-key = %s, want %s", got, want)
	}
	if len(key) != 16 {
		t.Fatalf("ntlm key length = %d, want 16", len(key))
	}
}

func TestLMStringToKeyVector(t *testing.T) {
	key, err := LMStringToKey("password")
	if err != nil {
		t.Fatalf("LMStringToKey: %v", err)
	}
	want := "E52CAC67419A9A224A3B108F3FA6CB6D"
	if got := strings.ToUpper(hex.EncodeToString(key)); got != want {
		t.Fatalf("lm string-to-key = %s, want %s", got, want)
	}
}

func TestLMStringToKeyCaseInsensitive(t *testing.T) {
	lower, err := LMStringToKey("password")
	if err != nil {
		t.Fatalf("LMStringToKey(lower): %v", err)
	}
	upper, err := LMStringToKey("PASSWORD")
	if err != nil {
		t.Fatalf("LMStringToKey(upper): %v", err)
	}
	if hex.EncodeToString(lower) != hex.EncodeToString(upper) {
		t.Fatalf("LM hash should be case-insensitive: %X vs %X", lower, upper)
	}
}

func TestRegistryAllOrderProducesVectors(t *testing.T) {
	want := map[string]string{
		"aes128": "42263C6E89F4FC28B8DF68EE09799F15",
		"aes256": "FE697B52BC0D3CE14432BA036A92E65BBB52280990A2FA27883998D72AF30161",
		"des":    "CBC22FAE235298E3",
		"ntlm":   "8846F7EAEE8FB117AD06BDD830B7586C",
		"lm":     "E52CAC67419A9A224A3B108F3FA6CB6D",
	}
	for _, name := range AllOrder {
		algo, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", name, err)
		}
		key, err := algo.StringToKey("password", "ATHENA.MIT.EDUraeburn", 1)
		if err != nil {
			t.Fatalf("%s StringToKey: %v", name, err)
		}
		if got := strings.ToUpper(hex.EncodeToString(key)); got != want[name] {
			t.Fatalf("%s = %s, want %s", name, got, want[name])
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("does-not-exist"); err == nil {
		t.Fatal("expected an error for an unknown algorithm")
	}
}
