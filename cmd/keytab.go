package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kdctools/keytab/internal/csvload"
	"github.com/kdctools/keytab/internal/errs"
	"github.com/kdctools/keytab/internal/keytab"
)

var keytabCmd = &cobra.Command{
	Use:   "keytab",
	Short: "Work with keytab files",
}

var keytabCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a keytab file from a CSV table or a single principal/key pair",
	RunE:  runKeytabCreate,
}

var keytabReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Display the parsed contents of a keytab file",
	RunE:  runKeytabRead,
}

func init() {
	rootCmd.AddCommand(keytabCmd)
	keytabCmd.AddCommand(keytabCreateCmd, keytabReadCmd)

	keytabCreateCmd.Flags().StringP("outfile", "o", "", "path to write the keytab file to")
	keytabCreateCmd.Flags().StringP("infile", "i", "", "CSV file of principal,etype,key_hex[,kind[,timestamp[,version]]] rows")
	keytabCreateCmd.Flags().StringP("principal", "p", "", "principal, e.g. alice@EXAMPLE.COM")
	keytabCreateCmd.Flags().StringP("etype", "e", "", "encryption type name or id (see reftable)")
	keytabCreateCmd.Flags().StringP("key", "k", "", "hex-encoded key material")
	keytabCreateCmd.Flags().StringP("name-type", "n", "", "principal name-type name or id")
	keytabCreateCmd.Flags().Uint32P("timestamp", "t", 0, "entry timestamp, seconds since Unix epoch")
	keytabCreateCmd.Flags().Uint32P("version", "v", 0, "key version number (vno)")
	_ = keytabCreateCmd.MarkFlagRequired("outfile")
	_ = viper.BindPFlags(keytabCreateCmd.Flags())

	keytabReadCmd.Flags().StringP("infile", "i", "", "keytab file to read")
	_ = keytabReadCmd.MarkFlagRequired("infile")
	_ = viper.BindPFlags(keytabReadCmd.Flags())
}

func runKeytabCreate(cmd *cobra.Command, args []string) error {
	outfile := viper.GetString("outfile")
	// "infile" is also a keytab read flag, whose BindPFlags call runs later
	// and takes viper's "infile" key, so read this command's flag.
	infile, _ := cmd.Flags().GetString("infile")

	var entries []keytab.KeytabEntry
	if infile != "" {
		f, err := os.Open(infile)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrIO, err)
		}
		defer f.Close()
		entries, err = csvload.LoadEntries(f)
		if err != nil {
			return err
		}
	} else {
		principal := viper.GetString("principal")
		etype := viper.GetString("etype")
		key := viper.GetString("key")
		nameType := viper.GetString("name-type")
		if principal == "" || etype == "" || key == "" || nameType == "" {
			return fmt.Errorf("%w: -p/-e/-k/-n are all required unless -i is given", errs.ErrMissingArg)
		}
		entry, err := csvload.BuildEntry(principal, etype, key, nameType, viper.GetUint32("timestamp"), viper.GetUint32("version"))
		if err != nil {
			return err
		}
		entries = []keytab.KeytabEntry{entry}
	}

	kt := keytab.New()
	kt.Entries = entries

	if err := os.WriteFile(outfile, kt.Encode(), 0o600); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	return nil
}

func runKeytabRead(cmd *cobra.Command, args []string) error {
	infile := viper.GetString("infile")
	data, err := os.ReadFile(infile)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	kt, err := keytab.Decode(data)
	if err != nil {
		return err
	}

	for i, e := range kt.Entries {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		printEntry(cmd, e)
	}
	return nil
}

func printEntry(cmd *cobra.Command, e keytab.KeytabEntry) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Principal: %s\n", e.Principal())
	nameType, err := principalTypeName(e.NameType)
	if err != nil {
		nameType = fmt.Sprintf("unknown (%d)", e.NameType)
	}
	fmt.Fprintf(out, "Name Type: %s\n", nameType)
	etypeName, err := encryptionTypeName(e.Key.KeyType)
	if err != nil {
		etypeName = fmt.Sprintf("unknown (%d)", e.Key.KeyType)
	} else {
		etypeName = fmt.Sprintf("%s (%d)", etypeName, e.Key.KeyType)
	}
	fmt.Fprintf(out, "Type: %s\n", etypeName)
	fmt.Fprintf(out, "Vno: %d\n", e.Vno)
	fmt.Fprintf(out, "Timestamp: %s\n", formatTimestamp(e.Timestamp))
	fmt.Fprintf(out, "Key: %s\n", hex.EncodeToString(e.Key.Key.Data))
}
