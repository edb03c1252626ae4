// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/33cn/roulette/system/dapp/commands"
	tokenty "github.com/33cn/roulette/system/dapp/token/types"
	"github.com/33cn/roulette/util"
	"github.com/spf13/cobra"
)

// TokenCmd token command
func TokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mints and token accounts",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		CreateMintCmd(),
		CreateATACmd(),
		MintToCmd(),
		TransferCmd(),
		BalanceCmd(),
	)
	return cmd
}

func addMintFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("mint", "m", "", "mint address")
	cmd.MarkFlagRequired("mint")
}

// parseAmount 按 mint 的小数位解析数量
func parseAmount(node *commands.Node, mint string, amount string) (uint64, error) {
	v, err := node.Query(tokenty.TokenX, "GetMint", []byte(mint))
	if err != nil {
		return 0, err
	}
	return util.ParseAmount(amount, v.(*tokenty.Mint).Decimals)
}

// CreateMintCmd create mint
func CreateMintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-mint",
		Short: "Create a mint, authority pays the rent",
		Run:   commands.Run(createMint),
	}
	cmd.Flags().StringP("authority", "a", "", "key name of mint authority")
	cmd.MarkFlagRequired("authority")
	cmd.Flags().Uint8P("decimals", "d", 0, "decimals")
	return cmd
}

func createMint(cmd *cobra.Command, node *commands.Node, args []string) error {
	authority, _ := cmd.Flags().GetString("authority")
	decimals, _ := cmd.Flags().GetUint8("decimals")
	priv, err := node.Signer(authority)
	if err != nil {
		return err
	}
	mint, err := node.CreateMint(priv, decimals)
	if err != nil {
		return err
	}
	fmt.Println(mint)
	return nil
}

// CreateATACmd create associated token account
func CreateATACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-ata",
		Short: "Create the associated token account of owner",
		Run:   commands.Run(createATA),
	}
	cmd.Flags().StringP("payer", "p", "", "key name of payer")
	cmd.MarkFlagRequired("payer")
	cmd.Flags().StringP("owner", "o", "", "key name or address of owner, default payer")
	addMintFlag(cmd)
	return cmd
}

func createATA(cmd *cobra.Command, node *commands.Node, args []string) error {
	payer, _ := cmd.Flags().GetString("payer")
	owner, _ := cmd.Flags().GetString("owner")
	mint, _ := cmd.Flags().GetString("mint")
	if owner == "" {
		owner = payer
	}
	priv, err := node.Signer(payer)
	if err != nil {
		return err
	}
	ata, err := node.CreateATA(priv, node.Addr(owner), mint)
	if err != nil {
		return err
	}
	fmt.Println(ata)
	return nil
}

// MintToCmd mint to the associated account of owner
func MintToCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint-to",
		Short: "Mint tokens to an owner's associated account or to a token account",
		Run:   commands.Run(mintTo),
	}
	cmd.Flags().StringP("authority", "a", "", "key name of mint authority")
	cmd.MarkFlagRequired("authority")
	cmd.Flags().StringP("to", "t", "", "owner (key name or address) or token account with --raw")
	cmd.MarkFlagRequired("to")
	cmd.Flags().Bool("raw", false, "--to is a token account")
	cmd.Flags().StringP("amount", "n", "", "amount, e.g. 12.5")
	cmd.MarkFlagRequired("amount")
	addMintFlag(cmd)
	return cmd
}

func mintTo(cmd *cobra.Command, node *commands.Node, args []string) error {
	authority, _ := cmd.Flags().GetString("authority")
	to, _ := cmd.Flags().GetString("to")
	raw, _ := cmd.Flags().GetBool("raw")
	amountStr, _ := cmd.Flags().GetString("amount")
	mint, _ := cmd.Flags().GetString("mint")
	amount, err := parseAmount(node, mint, amountStr)
	if err != nil {
		return err
	}
	if !raw {
		to = tokenty.AssociatedAddress(node.Addr(to), mint)
	}
	return commands.SendTx(node, []string{authority}, tokenty.NewMintTo(mint, to, node.Addr(authority), amount))
}

// TransferCmd transfer between associated accounts
func TransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer tokens between associated accounts",
		Run:   commands.Run(transfer),
	}
	cmd.Flags().StringP("from", "f", "", "key name of owner")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("to", "t", "", "key name or address of receiver")
	cmd.MarkFlagRequired("to")
	cmd.Flags().StringP("amount", "n", "", "amount, e.g. 12.5")
	cmd.MarkFlagRequired("amount")
	addMintFlag(cmd)
	return cmd
}

func transfer(cmd *cobra.Command, node *commands.Node, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	amountStr, _ := cmd.Flags().GetString("amount")
	mint, _ := cmd.Flags().GetString("mint")
	amount, err := parseAmount(node, mint, amountStr)
	if err != nil {
		return err
	}
	owner := node.Addr(from)
	ix := tokenty.NewTransfer(tokenty.AssociatedAddress(owner, mint),
		tokenty.AssociatedAddress(node.Addr(to), mint), owner, amount)
	return commands.SendTx(node, []string{from}, ix)
}

// BalanceCmd token balance
func BalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Token balance of an owner, or of a token account with --raw",
		Run:   commands.Run(balance),
	}
	cmd.Flags().StringP("owner", "o", "", "key name or address")
	cmd.MarkFlagRequired("owner")
	cmd.Flags().Bool("raw", false, "--owner is a token account")
	addMintFlag(cmd)
	return cmd
}

func balance(cmd *cobra.Command, node *commands.Node, args []string) error {
	owner, _ := cmd.Flags().GetString("owner")
	raw, _ := cmd.Flags().GetBool("raw")
	mint, _ := cmd.Flags().GetString("mint")
	v, err := node.Query(tokenty.TokenX, "GetMint", []byte(mint))
	if err != nil {
		return err
	}
	addr := owner
	if !raw {
		addr = tokenty.AssociatedAddress(node.Addr(owner), mint)
	}
	amount, err := node.TokenBalance(addr)
	if err != nil {
		return err
	}
	fmt.Println(addr, util.FormatAmount(amount, v.(*tokenty.Mint).Decimals))
	return nil
}
