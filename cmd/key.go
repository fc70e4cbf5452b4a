package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kdctools/keytab/internal/errs"
	"github.com/kdctools/keytab/internal/kerbcrypto"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Derive keys and hashes used in Kerberos and Windows authentication",
}

var keyDeriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive a key or password hash from a password (and salt)",
	RunE:  runKeyDerive,
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyDeriveCmd)

	keyDeriveCmd.Flags().StringP("etype", "e", "", "aes128|aes256|des|rc4|ntlm|lm")
	keyDeriveCmd.Flags().StringP("salt", "s", "", "salt (required for aes128/aes256/des)")
	keyDeriveCmd.Flags().StringP("password", "p", "", "password to derive from")
	keyDeriveCmd.Flags().Bool("all", false, "derive with every salt-based and saltless algorithm")
	keyDeriveCmd.Flags().Int("iterations", kerbcrypto.DefaultAESIterations, "PBKDF2 iteration count for the AES families")
	_ = keyDeriveCmd.MarkFlagRequired("password")
	_ = viper.BindPFlags(keyDeriveCmd.Flags())
}

func runKeyDerive(cmd *cobra.Command, args []string) error {
	password := viper.GetString("password")
	salt := viper.GetString("salt")
	// "etype" is also a keytab create flag, and keytab.go's BindPFlags
	// rebinds viper's "etype" key to that one, so read this command's flag.
	etype, _ := cmd.Flags().GetString("etype")
	all := viper.GetBool("all")
	iterations := viper.GetInt("iterations")

	if !all && etype == "" {
		return fmt.Errorf("%w: one of -e/--etype or --all is required", errs.ErrMissingArg)
	}
	if all && salt == "" {
		return fmt.Errorf("%w: --all requires --salt", errs.ErrMissingArg)
	}

	names := []string{etype}
	if all {
		names = kerbcrypto.AllOrder
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		algo, err := kerbcrypto.Lookup(strings.ToLower(name))
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrUnknownType, err)
		}
		if algo.RequiresSalt && salt == "" {
			return fmt.Errorf("%w: %s requires --salt", errs.ErrMissingArg, name)
		}
		key, err := algo.StringToKey(password, salt, iterations)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "[%s] %s\n", algo.Tag, strings.ToUpper(hex.EncodeToString(key)))
	}
	return nil
}
