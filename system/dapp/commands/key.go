// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/33cn/roulette/common/crypto/secp256k1"
	"github.com/spf13/cobra"
)

// KeyCmd key command
func KeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Local keystore",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		NewKeyCmd(),
		ImportKeyCmd(),
		ListKeyCmd(),
	)
	return cmd
}

// NewKeyCmd generate a key
func NewKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a new key",
		Run:   Run(newKey),
	}
	cmd.Flags().StringP("label", "l", "", "label of key")
	return cmd
}

func newKey(cmd *cobra.Command, node *Node, args []string) error {
	label, _ := cmd.Flags().GetString("label")
	priv, err := secp256k1.Driver{}.GenKey()
	if err != nil {
		return err
	}
	entry, err := node.Keys.Add(label, priv)
	if err != nil {
		return err
	}
	if err := node.Keys.Save(); err != nil {
		return err
	}
	fmt.Println(entry.Addr)
	return nil
}

// ImportKeyCmd import a WIF key
func ImportKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a WIF encoded key",
		Run:   Run(importKey),
	}
	cmd.Flags().StringP("label", "l", "", "label of key")
	cmd.Flags().StringP("wif", "k", "", "WIF encoded private key")
	cmd.MarkFlagRequired("wif")
	return cmd
}

func importKey(cmd *cobra.Command, node *Node, args []string) error {
	label, _ := cmd.Flags().GetString("label")
	wif, _ := cmd.Flags().GetString("wif")
	priv, err := secp256k1.DecodeWIF(wif)
	if err != nil {
		return err
	}
	entry, err := node.Keys.Add(label, priv)
	if err != nil {
		return err
	}
	if err := node.Keys.Save(); err != nil {
		return err
	}
	fmt.Println(entry.Addr)
	return nil
}

// ListKeyCmd list keys
func ListKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List keys with lamports",
		Run:   Run(listKey),
	}
}

type keyResult struct {
	*KeyEntry
	Lamports uint64 `json:"lamports"`
}

func listKey(cmd *cobra.Command, node *Node, args []string) error {
	var res []*keyResult
	for _, e := range node.Keys.List() {
		res = append(res, &keyResult{KeyEntry: e, Lamports: node.Account(e.Addr).Lamports})
	}
	PrintJSON(res)
	return nil
}
