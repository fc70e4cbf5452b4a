package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"hermannm.dev/devlog"
)

var (
	verboseCount int
	logLevel     slog.LevelVar
)

var rootCmd = &cobra.Command{
	Use:   "keytab",
	Short: "Derive Kerberos/NTLM keys and read/build MIT-style keytab files",
	Long: `keytab derives the symmetric keys and password-equivalent hashes
used by Kerberos (DES/AES) and legacy Windows authentication (NTLM/LM),
and reads or builds MIT-style keytab files that bind principals to such
keys.`,
}

// Execute adds all child commands to the root command and runs it. It is
// called once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	slog.SetDefault(slog.New(devlog.NewHandler(os.Stdout, &devlog.Options{
		Level: &logLevel,
	})))

	rootCmd.PersistentFlags().CountVar(&verboseCount, "verbose", "increase logging verbosity (repeatable)")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	cobra.OnInitialize(func() {
		switch viper.GetInt("verbose") {
		case 0:
			logLevel.Set(slog.LevelWarn)
		case 1:
			logLevel.Set(slog.LevelInfo)
		default:
			logLevel.Set(slog.LevelDebug)
		}
	})
}
