package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlags makes viper answer keys from the flags of the same name, so a
// flag given on the command line beats the environment and config file.
func bindFlags(flags *pflag.FlagSet, keys ...string) {
	for _, key := range keys {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(key)))
	}
}
