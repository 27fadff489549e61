package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// newRootCommand lets subcommands read flags from the command line,
// environment variables prefixed with FOLD, or fold.yaml (in that order).
func newRootCommand() *cobra.Command {
	viper.SetConfigName("fold")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("FOLD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for _, path := range []string{"/etc/fold", "$HOME/.fold", "."} {
		viper.AddConfigPath(path)
	}
	_ = viper.ReadInConfig()

	return &cobra.Command{
		Use:           "fold",
		Short:         "Parallel reduce and map on sequential, threaded and WebGPU targets",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
}

// mustBindPFlag binds key to a cobra flag and panics if the binding fails.
func mustBindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}
