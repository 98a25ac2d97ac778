package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect truthlens configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if used := a.v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(a.errOut, "Configuration file: %s\n", used)
			} else {
				fmt.Fprintln(a.errOut, "No configuration file found (using defaults)")
			}
			b, err := yaml.Marshal(a.v.AllSettings())
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = a.out.Write(b)
			return err
		},
	})
	return cmd
}
