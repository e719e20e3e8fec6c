// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zcash/hashkit"
	"github.com/zcash/hashkit/common"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display hashkit version",
	Long:  `Display hashkit version and the supported algorithms.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "hashkit version", common.Version)
		for _, a := range hashkit.Algorithms() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-7s digest %2d bytes, block %3d bytes\n", a, a.Size(), a.BlockSize())
		}
	},
}
