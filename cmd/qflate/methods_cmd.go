// cmd/qflate/methods_cmd.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qflate/qflate/pkg/codec"
)

func methodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List registered compression methods",
		Run: func(cmd *cobra.Command, args []string) {
			for _, info := range codec.Registered() {
				fmt.Printf("0x%02x  %s\n", info.Method, info.Name)
			}
		},
	}
}
