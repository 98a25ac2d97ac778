// Package cli is the truthlens operator command line
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment overrides, e.g. TRUTHLENS_SEED
const EnvPrefix = "TRUTHLENS"

type app struct {
	v       *viper.Viper
	cfgFile string
	out     io.Writer
	errOut  io.Writer
	now     func() time.Time
}

// NewRootCmd builds the command tree against its own viper instance
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	return newRootCmd(out, errOut, time.Now)
}

func newRootCmd(out, errOut io.Writer, now func() time.Time) *cobra.Command {
	a := &app{v: viper.New(), out: out, errOut: errOut, now: now}

	root := &cobra.Command{
		Use:   "truthlens",
		Short: "TruthLens - article credibility scoring from the command line",
		Long: `truthlens runs the same scoring engine and source sampler the API uses,
without a server, a cache or a database.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (TRUTHLENS_*)
3. Config file (~/.truthlens/config.yaml)
4. Defaults`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.truthlens/config.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	_ = a.v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(a.versionCmd(), a.scoreCmd(), a.configCmd())
	return root
}

// Execute runs the CLI against the process streams
func Execute() error {
	return NewRootCmd(os.Stdout, os.Stderr).Execute()
}

func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(filepath.Join(home, ".truthlens"))
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("config")
	}

	a.v.SetEnvPrefix(EnvPrefix)
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		// a missing default file is fine, a named one is not
		if a.cfgFile != "" {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
		return nil
	}
	if a.v.GetBool("verbose") {
		fmt.Fprintf(a.errOut, "Using config file: %s\n", a.v.ConfigFileUsed())
	}
	return nil
}
