// Package reftable holds the static, process-lifetime lookup tables for
// Kerberos encryption-type and principal-type identifiers. Tables are
// built once at package init and are read-only afterward, so no
// synchronization is needed.
package reftable

import (
	"fmt"
	"strconv"
)

// Item is one row of a reference table: a canonical name, an optional
// short alias, and the registered numeric id.
type Item struct {
	Name      string
	ShortName string // empty if the type has no short alias
	ID        uint8
}

// Table is a total lookup over a fixed set of Items by id, name, or short
// name.
type Table struct {
	items []Item
}

// Lookup finds the Item matching query against any of id (decimal), name,
// or short name. It returns an error if nothing matches.
func (t Table) Lookup(query string) (Item, error) {
	for _, it := range t.items {
		if it.Name == query || (it.ShortName != "" && it.ShortName == query) {
			return it, nil
		}
		if id, err := strconv.ParseUint(query, 10, 8); err == nil && uint8(id) == it.ID {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("%q is not a known type in this table", query)
}

// LookupID finds the Item with the given numeric id.
func (t Table) LookupID(id uint8) (Item, error) {
	for _, it := range t.items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("id %d is not a known type in this table", id)
}

// EncryptionTypes enumerates the Kerberos encryption-type registry
// (RFC 3961 §8) relevant to string-to-key and keytab key-type fields, plus
// the CMS/Env OIDs that keytabs occasionally carry in the key_type field.
var EncryptionTypes = Table{items: []Item{
	{Name: "des-cbc-crc", ShortName: "des-crc", ID: 1},
	{Name: "des-cbc-md4", ShortName: "des-md4", ID: 2},
	{Name: "des-cbc-md5", ShortName: "des-md5", ID: 3},
	{Name: "des3-cbc-md5", ShortName: "des3-md5", ID: 5},
	{Name: "des3-cbc-sha1", ShortName: "des3-sha1", ID: 7},
	{Name: "dsaWithSHA1-CmsOID", ID: 9},
	{Name: "md5WithRSAEncryption-CmsOID", ID: 10},
	{Name: "sha1WithRSAEncryption-CmsOID", ID: 11},
	{Name: "rc2CBC-EnvOID", ID: 12},
	{Name: "rsaEncryption-EnvOID", ID: 13},
	{Name: "rsaES-OAEP-ENV-OID", ID: 14},
	{Name: "des-ede3-cbc-Env-OID", ID: 15},
	{Name: "des3-cbc-sha1-kd", ID: 16},
	{Name: "aes128-cts-hmac-sha1-96", ShortName: "aes128", ID: 17},
	{Name: "aes256-cts-hmac-sha1-96", ShortName: "aes256", ID: 18},
	{Name: "rc4-hmac", ID: 23},
	{Name: "rc4-hmac-exp", ID: 24},
	{Name: "subkey-keymaterial", ID: 65},
}}

// PrincipalTypes enumerates the Kerberos name-type registry fields a
// keytab entry's name_type can carry.
var PrincipalTypes = Table{items: []Item{
	{Name: "krb5_nt_principal", ShortName: "principal", ID: 1},
}}
