// Package cmd defines and implements the CLI commands for the summarybot
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// newRootCmd creates and configures the root command. Flags that mirror
// config keys are bound to viper so they override file and environment
// values.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarybot",
		Short: "A bot that summarizes linked articles on a federated board.",
		Long: `summarybot watches the post feed of a Lemmy-compatible instance,
downloads the article behind every new link post, condenses it to its
highest-scoring sentences, and publishes the result as a comment when the
summary is worth reading.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./summarybot.yaml if present)")
	flags.CountP("verbose", "v", "increase log verbosity")
	flags.String("domain", "", "instance domain to connect to")
	flags.String("username", "", "bot account username")
	flags.String("password", "", "bot account password")
	flags.Int("sleep", 0, "seconds to sleep between cycles")

	v := viper.GetViper()
	v.BindPFlag("logging.verbosity", flags.Lookup("verbose"))  //nolint:errcheck
	v.BindPFlag("instance.domain", flags.Lookup("domain"))     //nolint:errcheck
	v.BindPFlag("instance.username", flags.Lookup("username")) //nolint:errcheck
	v.BindPFlag("instance.password", flags.Lookup("password")) //nolint:errcheck
	v.BindPFlag("bot.sleep_seconds", flags.Lookup("sleep"))    //nolint:errcheck

	cmd.AddCommand(newRunCmd())
	return cmd
}

// configPath resolves the config file to load: the --config flag wins, then
// a summarybot.yaml in the working directory, then none.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat("summarybot.yaml"); err == nil {
		return "summarybot.yaml"
	}
	return ""
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
