// Package commands implements the buildcfg command tree.
package commands

import "github.com/spf13/cobra"

// Register adds every buildcfg command to root
func Register(root *cobra.Command) {
	root.AddCommand(GetConfigCmd)
	root.AddCommand(ListConfigsCmd)
	root.AddCommand(DefaultsCmd)
	root.AddCommand(ShowCmd)
	root.AddCommand(CmdlineCmd)
	root.AddCommand(CheckCmd)
	root.AddCommand(AmCmd)
	root.AddCommand(VersionCmd)
}
