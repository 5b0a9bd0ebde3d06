// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nih-reporter/internal/tools"
)

var callCmd = &cobra.Command{
	Use:   "call <tool> [json-arguments|-]",
	Short: "Invoke a tool by name and print its result",
	Long: `Call runs one tool exactly as the MCP server would and prints the text
result. Arguments are a JSON object given inline or read from stdin with "-".
Use --list to print the registered tool names.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runCall,
}

func runCall(cmd *cobra.Command, args []string) error {
	reg := tools.NewRegistry(newService(loadConfig()))

	if list, _ := cmd.Flags().GetBool("list"); list || len(args) == 0 {
		for _, t := range reg.Tools() {
			fmt.Fprintln(os.Stdout, t.Name)
		}
		return nil
	}

	var raw []byte
	if len(args) == 2 {
		if args[1] == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading arguments from stdin: %w", err)
			}
			raw = data
		} else {
			raw = []byte(args[1])
		}
	}

	out, err := reg.Call(context.Background(), args[0], raw)
	if errors.Is(err, tools.ErrUnknownTool) {
		return err
	}
	text, isError := tools.Render(out, err)
	fmt.Fprintln(os.Stdout, text)
	if isError {
		return fmt.Errorf("tool %s failed", args[0])
	}
	return nil
}

func init() {
	callCmd.Flags().Bool("list", false, "list registered tools")
	rootCmd.AddCommand(callCmd)
}
