// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/33cn/roulette/system/dapp/commands"
	nty "github.com/33cn/roulette/system/dapp/native/types"
	"github.com/spf13/cobra"
)

// NativeCmd native command
func NativeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "native",
		Short: "Lamports and account allocation",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		AirdropCmd(),
		TransferCmd(),
		AccountCmd(),
	)
	return cmd
}

// AirdropCmd add lamports without a transaction
func AirdropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "airdrop",
		Short: "Airdrop lamports to an address, local ledger only",
		Run:   commands.Run(airdrop),
	}
	cmd.Flags().StringP("to", "t", "", "key name or address")
	cmd.MarkFlagRequired("to")
	cmd.Flags().Uint64P("lamports", "a", 1000000000, "lamports")
	return cmd
}

func airdrop(cmd *cobra.Command, node *commands.Node, args []string) error {
	to, _ := cmd.Flags().GetString("to")
	lamports, _ := cmd.Flags().GetUint64("lamports")
	addr := node.Addr(to)
	if err := node.Airdrop(addr, lamports); err != nil {
		return err
	}
	fmt.Println(addr, node.Account(addr).Lamports)
	return nil
}

// TransferCmd transfer lamports
func TransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer lamports",
		Run:   commands.Run(transfer),
	}
	cmd.Flags().StringP("from", "f", "", "key name")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("to", "t", "", "key name or address")
	cmd.MarkFlagRequired("to")
	cmd.Flags().Uint64P("lamports", "a", 0, "lamports")
	cmd.MarkFlagRequired("lamports")
	return cmd
}

func transfer(cmd *cobra.Command, node *commands.Node, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	lamports, _ := cmd.Flags().GetUint64("lamports")
	return commands.SendTx(node, []string{from}, nty.NewTransfer(node.Addr(from), node.Addr(to), lamports))
}

// AccountCmd show ledger account
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show ledger account",
		Run:   commands.Run(showAccount),
	}
	cmd.Flags().StringP("addr", "a", "", "key name or address")
	cmd.MarkFlagRequired("addr")
	return cmd
}

func showAccount(cmd *cobra.Command, node *commands.Node, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	v, err := node.Query(nty.NativeX, "GetAccount", []byte(node.Addr(addr)))
	if err != nil {
		return err
	}
	commands.PrintJSON(v)
	return nil
}
