package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"srcpack/internal/version"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := version.Get()
		if versionShort {
			fmt.Println(v.Version)
		} else {
			fmt.Println(v.String())
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print the version number only")
	rootCmd.AddCommand(versionCmd)
}
