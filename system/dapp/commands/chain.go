// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// ChainCmd chain command
func ChainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Step counter of local ledger",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		AdvanceCmd(),
		HeightCmd(),
	)
	return cmd
}

// AdvanceCmd advance step counter
func AdvanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Advance the step counter",
		Run:   Run(advance),
	}
	cmd.Flags().Int64P("steps", "n", 1, "number of steps")
	return cmd
}

func advance(cmd *cobra.Command, node *Node, args []string) error {
	n, _ := cmd.Flags().GetInt64("steps")
	if n <= 0 {
		return fmt.Errorf("steps must be positive")
	}
	if err := node.Advance(n); err != nil {
		return err
	}
	fmt.Println(node.Height())
	return nil
}

// HeightCmd current step
func HeightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "height",
		Short: "Current step",
		Run: Run(func(cmd *cobra.Command, node *Node, args []string) error {
			fmt.Println(node.Height())
			return nil
		}),
	}
}

// MetricsCmd metrics command
func MetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Counters accumulated by previous commands",
		Run:   Run(showMetrics),
	}
}

func showMetrics(cmd *cobra.Command, node *Node, args []string) error {
	total, err := node.LoadMetrics()
	if err != nil {
		return err
	}
	names := make([]string, 0, len(total))
	for name := range total {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-24s %d\n", name, total[name])
	}
	return nil
}
