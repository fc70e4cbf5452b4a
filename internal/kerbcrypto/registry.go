package kerbcrypto

import "fmt"

// Algorithm is one of the six string-to-key families the derive command
// can run. The family members share no state, so each is just a function
// value rather than a type in a deeper hierarchy.
type Algorithm struct {
	// Tag is printed as the "[TAG]" prefix of a derive line.
	Tag string
	// RequiresSalt is true for the families whose string-to-key takes a
	// salt (aes128, aes256, des); rc4/ntlm/lm ignore it.
	RequiresSalt bool
	derive       func(password, salt string, iterations int) ([]byte, error)
}

// StringToKey runs the algorithm's string-to-key procedure.
func (a Algorithm) StringToKey(password, salt string, iterations int) ([]byte, error) {
	return a.derive(password, salt, iterations)
}

// Algorithms maps each of the six derive subcommand target names to its
// algorithm. It is a map and carries no order; --all uses AllOrder.
var Algorithms = map[string]Algorithm{
	"des": {
		Tag:          "DES",
		RequiresSalt: true,
		derive: func(password, salt string, _ int) ([]byte, error) {
			return DESStringToKey(password, salt)
		},
	},
	"aes128": {
		Tag:          "AES128",
		RequiresSalt: true,
		derive: func(password, salt string, iterations int) ([]byte, error) {
			return AES128StringToKey(password, salt, iterations)
		},
	},
	"aes256": {
		Tag:          "AES256",
		RequiresSalt: true,
		derive: func(password, salt string, iterations int) ([]byte, error) {
			return AES256StringToKey(password, salt, iterations)
		},
	},
	"rc4": {
		Tag: "RC4/NTLM",
		derive: func(password, _ string, _ int) ([]byte, error) {
			return NTLMStringToKey(password), nil
		},
	},
	"ntlm": {
		Tag: "NTLM",
		derive: func(password, _ string, _ int) ([]byte, error) {
			return NTLMStringToKey(password), nil
		},
	},
	"lm": {
		Tag: "LM",
		derive: func(password, _ string, _ int) ([]byte, error) {
			return LMStringToKey(password)
		},
	},
}

// AllOrder is the fixed iteration order for --all: rc4 is omitted since its
// string-to-key is byte-for-byte the same procedure as ntlm and would just
// print a duplicate line.
var AllOrder = []string{"aes128", "aes256", "des", "ntlm", "lm"}

// Lookup returns the named algorithm or a typed error if it isn't one of
// the six supported families.
func Lookup(name string) (Algorithm, error) {
	a, ok := Algorithms[name]
	if !ok {
		return Algorithm{}, fmt.Errorf("unknown key-derivation algorithm %q", name)
	}
	return a, nil
}
