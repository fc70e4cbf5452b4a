package cmd

import (
	"time"

	"github.com/kdctools/keytab/internal/reftable"
)

func principalTypeName(id uint32) (string, error) {
	item, err := reftable.PrincipalTypes.LookupID(uint8(id))
	if err != nil {
		return "", err
	}
	return item.Name, nil
}

func encryptionTypeName(id uint16) (string, error) {
	item, err := reftable.EncryptionTypes.LookupID(uint8(id))
	if err != nil {
		return "", err
	}
	return item.Name, nil
}

// formatTimestamp renders seconds-since-epoch as an RFC 2822 timestamp
// (equivalent to Go's RFC1123Z layout), matching spec §6.3.
func formatTimestamp(sec uint32) string {
	return time.Unix(int64(sec), 0).UTC().Format(time.RFC1123Z)
}
