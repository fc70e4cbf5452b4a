// Package csvload builds KeytabEntry values from the headerless CSV table
// format described in spec §4.6/§6.2: principal,etype,key_hex[,kind[,timestamp[,version]]].
package csvload

import (
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/kdctools/keytab/internal/errs"
	"github.com/kdctools/keytab/internal/keytab"
	"github.com/kdctools/keytab/internal/reftable"
)

// row is the typed shape a single CSV record decodes into. mapstructure's
// weakly-typed decoding handles the string->uint coercion for timestamp
// and version, which arrive as plain CSV text.
type row struct {
	Principal string `mapstructure:"principal"`
	Etype     string `mapstructure:"etype"`
	KeyHex    string `mapstructure:"key_hex"`
	Kind      string `mapstructure:"kind"`
	Timestamp uint32 `mapstructure:"timestamp"`
	Version   uint32 `mapstructure:"version"`
}

const defaultKind = "krb5_nt_principal"

// NowFunc returns the current wall-clock time as Unix seconds; it is a
// variable so tests can pin it instead of depending on real time.
var NowFunc = func() uint32 { return uint32(time.Now().Unix()) }

// LoadEntries reads every row from r and builds one KeytabEntry per row.
func LoadEntries(r io.Reader) ([]keytab.KeytabEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var entries []keytab.KeytabEntry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrCSV, err)
		}
		if len(record) == 0 {
			continue
		}
		entry, err := entryFromRecord(record)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func entryFromRecord(record []string) (keytab.KeytabEntry, error) {
	if len(record) < 3 {
		return keytab.KeytabEntry{}, fmt.Errorf("%w: row has %d fields, need at least 3 (principal,etype,key_hex)", errs.ErrCSV, len(record))
	}

	fields := map[string]interface{}{
		"principal": record[0],
		"etype":     record[1],
		"key_hex":   record[2],
		"kind":      defaultKind,
		"timestamp": NowFunc(),
		"version":   uint32(0),
	}
	if len(record) > 3 && record[3] != "" {
		fields["kind"] = record[3]
	}
	if len(record) > 4 && record[4] != "" {
		fields["timestamp"] = record[4]
	}
	if len(record) > 5 && record[5] != "" {
		fields["version"] = record[5]
	}

	var r row
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &r,
	})
	if err != nil {
		return keytab.KeytabEntry{}, fmt.Errorf("%w: %v", errs.ErrCSV, err)
	}
	if err := dec.Decode(fields); err != nil {
		return keytab.KeytabEntry{}, fmt.Errorf("%w: %v", errs.ErrCSV, err)
	}

	return buildEntry(r.Principal, r.Etype, r.KeyHex, r.Kind, r.Timestamp, r.Version)
}

// buildEntry is the single entry-construction path shared by the CSV
// loader and the CLI's single-row `keytab create` flags, so the two
// input paths can never drift (spec §4 SUPPLEMENTED FEATURES).
func buildEntry(principal, etypeName, keyHex, kindName string, timestamp, version uint32) (keytab.KeytabEntry, error) {
	realmPart, components, err := splitPrincipal(principal)
	if err != nil {
		return keytab.KeytabEntry{}, err
	}

	et, err := reftable.EncryptionTypes.Lookup(etypeName)
	if err != nil {
		return keytab.KeytabEntry{}, fmt.Errorf("%w: %v", errs.ErrUnknownType, err)
	}
	nt, err := reftable.PrincipalTypes.Lookup(kindName)
	if err != nil {
		return keytab.KeytabEntry{}, fmt.Errorf("%w: %v", errs.ErrUnknownType, err)
	}

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return keytab.KeytabEntry{}, fmt.Errorf("%w: %v", errs.ErrInvalidHex, err)
	}

	comps := make([]keytab.CountedOctetString, len(components))
	for i, c := range components {
		comps[i] = keytab.NewText(c)
	}

	return keytab.KeytabEntry{
		Realm:      keytab.NewText(realmPart),
		Components: comps,
		NameType:   uint32(nt.ID),
		Timestamp:  timestamp,
		Vno8:       byte(version),
		Key: keytab.Keyblock{
			KeyType: uint16(et.ID),
			Key:     keytab.NewHex(key),
		},
		Vno: version,
	}, nil
}

// BuildEntry is the exported form of buildEntry used by the CLI's
// `keytab create` single-row flags.
func BuildEntry(principal, etypeName, keyHex, kindName string, timestamp, version uint32) (keytab.KeytabEntry, error) {
	return buildEntry(principal, etypeName, keyHex, kindName, timestamp, version)
}

// splitPrincipal splits "comp1/comp2/...@REALM" once on the last '@' into
// a realm and a '/'-separated component list.
func splitPrincipal(principal string) (realm string, components []string, err error) {
	at := strings.LastIndex(principal, "@")
	if at < 0 {
		return "", nil, fmt.Errorf("%w: principal %q has no @REALM", errs.ErrCSV, principal)
	}
	compPart, realmPart := principal[:at], principal[at+1:]
	if compPart == "" || realmPart == "" {
		return "", nil, fmt.Errorf("%w: principal %q is missing a component or realm", errs.ErrCSV, principal)
	}
	return realmPart, strings.Split(compPart, "/"), nil
}
