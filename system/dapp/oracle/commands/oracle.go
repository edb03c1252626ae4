// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/33cn/roulette/system/dapp/commands"
	oty "github.com/33cn/roulette/system/dapp/oracle/types"
	"github.com/spf13/cobra"
)

// OracleCmd oracle command
func OracleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oracle",
		Short: "Entropy feeds",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		CreateFeedCmd(),
		UpdateFeedCmd(),
		ShowFeedCmd(),
	)
	return cmd
}

// CreateFeedCmd create feed
func CreateFeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-feed",
		Short: "Create an entropy feed, authority pays the rent",
		Run:   commands.Run(createFeed),
	}
	cmd.Flags().StringP("authority", "a", "", "key name of feed authority")
	cmd.MarkFlagRequired("authority")
	return cmd
}

func createFeed(cmd *cobra.Command, node *commands.Node, args []string) error {
	authority, _ := cmd.Flags().GetString("authority")
	priv, err := node.Signer(authority)
	if err != nil {
		return err
	}
	feed, err := node.CreateFeed(priv)
	if err != nil {
		return err
	}
	fmt.Println(feed)
	return nil
}

// UpdateFeedCmd update feed
func UpdateFeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Write a new value at the current step",
		Run:   commands.Run(updateFeed),
	}
	cmd.Flags().StringP("authority", "a", "", "key name of feed authority")
	cmd.MarkFlagRequired("authority")
	cmd.Flags().StringP("feed", "f", "", "feed address")
	cmd.MarkFlagRequired("feed")
	cmd.Flags().Uint64P("value", "v", 0, "value")
	cmd.MarkFlagRequired("value")
	return cmd
}

func updateFeed(cmd *cobra.Command, node *commands.Node, args []string) error {
	authority, _ := cmd.Flags().GetString("authority")
	feed, _ := cmd.Flags().GetString("feed")
	value, _ := cmd.Flags().GetUint64("value")
	return commands.SendTx(node, []string{authority}, oty.NewUpdateFeed(feed, node.Addr(authority), value))
}

// ShowFeedCmd show feed
func ShowFeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show an entropy feed",
		Run:   commands.Run(showFeed),
	}
	cmd.Flags().StringP("feed", "f", "", "feed address")
	cmd.MarkFlagRequired("feed")
	return cmd
}

func showFeed(cmd *cobra.Command, node *commands.Node, args []string) error {
	feed, _ := cmd.Flags().GetString("feed")
	v, err := node.Query(oty.OracleX, "GetFeed", []byte(feed))
	if err != nil {
		return err
	}
	commands.PrintJSON(v)
	return nil
}
