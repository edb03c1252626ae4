// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/33cn/roulette/system/dapp/commands"
	rty "github.com/33cn/roulette/system/dapp/roulette/types"
	"github.com/33cn/roulette/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RouletteCmd roulette command
func RouletteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roulette",
		Short: "Roulette honeypot game",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		InitializeCmd(),
		SampleCmd(),
		HoneypotCmd(),
		GuessCmd(),
		SpinCmd(),
		CancelCmd(),
		HistoryCmd(),
		ShowCmd(),
	)
	return cmd
}

func addPoolFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mint", "m", "", "mint address")
	cmd.MarkFlagRequired("mint")
	cmd.Flags().Uint64("tick", 1, "tick size")
	cmd.Flags().Uint64("max", 0, "max amount of one commitment")
	cmd.MarkFlagRequired("max")
	cmd.Flags().Uint64("min", 0, "minimum bank size")
}

func poolKey(cmd *cobra.Command) *rty.PoolKey {
	mint, _ := cmd.Flags().GetString("mint")
	tick, _ := cmd.Flags().GetUint64("tick")
	maxAmount, _ := cmd.Flags().GetUint64("max")
	minBank, _ := cmd.Flags().GetUint64("min")
	return &rty.PoolKey{Mint: mint, TickSize: tick, MaxAmount: maxAmount, MinimumBankSize: minBank}
}

func addEntropyFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("feeds", "f", nil, "entropy feed addresses")
	cmd.MarkFlagRequired("feeds")
	cmd.Flags().Uint64P("tolerance", "t", 10, "max age of feeds and of the commitment in steps")
}

func addGamblerFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("gambler", "g", "", "key name or address of gambler")
	cmd.MarkFlagRequired("gambler")
}

// InitializeCmd create the sample cache
func InitializeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the sample cache of payer",
		Run:   commands.Run(initialize),
	}
	cmd.Flags().StringP("payer", "p", "", "key name of payer")
	cmd.MarkFlagRequired("payer")
	return cmd
}

func initialize(cmd *cobra.Command, node *commands.Node, args []string) error {
	payer, _ := cmd.Flags().GetString("payer")
	ix, err := rty.NewInitialize(node.Addr(payer))
	if err != nil {
		return err
	}
	return commands.SendTx(node, []string{payer}, ix)
}

// SampleCmd refresh the sample cache
func SampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a fresh sample into the cache of owner",
		Run:   commands.Run(sample),
	}
	cmd.Flags().StringP("owner", "o", "", "key name or address of cache owner")
	cmd.MarkFlagRequired("owner")
	addEntropyFlags(cmd)
	return cmd
}

func sample(cmd *cobra.Command, node *commands.Node, args []string) error {
	owner, _ := cmd.Flags().GetString("owner")
	feeds, _ := cmd.Flags().GetStringSlice("feeds")
	tolerance, _ := cmd.Flags().GetUint64("tolerance")
	rng, _, err := rty.FindRandomAddress(node.Addr(owner))
	if err != nil {
		return err
	}
	return commands.SendTx(node, nil, rty.NewSample(rng, tolerance, feeds...))
}

// HoneypotCmd honeypot command
func HoneypotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "honeypot",
		Short: "House side of a pool",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		InitHoneypotCmd(),
		WithdrawCmd(),
	)
	return cmd
}

// InitHoneypotCmd create honeypot and vault
func InitHoneypotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the honeypot and its vault",
		Run:   commands.Run(initHoneypot),
	}
	cmd.Flags().StringP("owner", "o", "", "key name of house")
	cmd.MarkFlagRequired("owner")
	addPoolFlags(cmd)
	return cmd
}

func initHoneypot(cmd *cobra.Command, node *commands.Node, args []string) error {
	owner, _ := cmd.Flags().GetString("owner")
	key := poolKey(cmd)
	ix, err := rty.NewInitializeHoneypot(node.Addr(owner), key)
	if err != nil {
		return err
	}
	if err := commands.SendTx(node, []string{owner}, ix); err != nil {
		return err
	}
	honeypot, vault, err := key.Addresses()
	if err != nil {
		return err
	}
	fmt.Println("honeypot", honeypot)
	fmt.Println("vault", vault)
	return nil
}

// WithdrawCmd withdraw from vault
func WithdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw from the vault to the house's associated account",
		Run:   commands.Run(withdraw),
	}
	cmd.Flags().StringP("owner", "o", "", "key name of house")
	cmd.MarkFlagRequired("owner")
	cmd.Flags().Uint64P("amount", "n", 0, "amount in base units")
	cmd.MarkFlagRequired("amount")
	addPoolFlags(cmd)
	return cmd
}

func withdraw(cmd *cobra.Command, node *commands.Node, args []string) error {
	owner, _ := cmd.Flags().GetString("owner")
	amount, _ := cmd.Flags().GetUint64("amount")
	ix, err := rty.NewWithdrawFromHoneypot(node.Addr(owner), poolKey(cmd), amount)
	if err != nil {
		return err
	}
	return commands.SendTx(node, []string{owner}, ix)
}

// GuessCmd guess command
func GuessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guess",
		Short: "Gambler side of a pool",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		InitGuessCmd(),
		PlaceCmd(),
	)
	return cmd
}

// InitGuessCmd create guess account
func InitGuessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the guess account of gambler on a pool",
		Run:   commands.Run(initGuess),
	}
	addGamblerFlag(cmd)
	addPoolFlags(cmd)
	return cmd
}

func initGuess(cmd *cobra.Command, node *commands.Node, args []string) error {
	gambler, _ := cmd.Flags().GetString("gambler")
	ix, err := rty.NewInitializeGuessAccount(node.Addr(gambler), poolKey(cmd))
	if err != nil {
		return err
	}
	return commands.SendTx(node, []string{gambler}, ix)
}

// PlaceCmd commit stakes
func PlaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Commit stakes, e.g. --bet red:10 --bet 17:1 --bet 00:2",
		Run:   commands.Run(place),
	}
	addGamblerFlag(cmd)
	cmd.Flags().StringArrayP("bet", "b", nil, "guess:amount in ticks")
	cmd.MarkFlagRequired("bet")
	addPoolFlags(cmd)
	return cmd
}

// ParseBets 解析 guess:amount
func ParseBets(bets []string) ([]rty.RouletteGuess, error) {
	if len(bets) > rty.MaxGuessesPerTx {
		return nil, errors.Wrapf(types.ErrInvalidArgument, "at most %d bets", rty.MaxGuessesPerTx)
	}
	out := make([]rty.RouletteGuess, 0, len(bets))
	for _, bet := range bets {
		parts := strings.Split(bet, ":")
		if len(parts) != 2 {
			return nil, errors.Wrapf(types.ErrInvalidArgument, "bet %s", bet)
		}
		g, err := rty.ParseGuess(parts[0])
		if err != nil {
			return nil, err
		}
		amount, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(types.ErrInvalidArgument, "amount of bet %s", bet)
		}
		out = append(out, rty.RouletteGuess{Guess: g, Amount: amount})
	}
	return out, nil
}

func place(cmd *cobra.Command, node *commands.Node, args []string) error {
	gambler, _ := cmd.Flags().GetString("gambler")
	bets, _ := cmd.Flags().GetStringArray("bet")
	guesses, err := ParseBets(bets)
	if err != nil {
		return err
	}
	ix, err := rty.NewPlaceGuesses(node.Addr(gambler), poolKey(cmd), guesses)
	if err != nil {
		return err
	}
	return commands.SendTx(node, []string{gambler}, ix)
}

// SpinCmd resolve the commitment
func SpinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spin",
		Short: "Resolve the commitment of gambler",
		Run:   commands.Run(spin),
	}
	addGamblerFlag(cmd)
	addEntropyFlags(cmd)
	addPoolFlags(cmd)
	return cmd
}

func spin(cmd *cobra.Command, node *commands.Node, args []string) error {
	gambler, _ := cmd.Flags().GetString("gambler")
	feeds, _ := cmd.Flags().GetStringSlice("feeds")
	tolerance, _ := cmd.Flags().GetUint64("tolerance")
	addr := node.Addr(gambler)
	rng, _, err := rty.FindRandomAddress(addr)
	if err != nil {
		return err
	}
	ix, err := rty.NewSpin(rng, addr, poolKey(cmd), tolerance, feeds...)
	if err != nil {
		return err
	}
	return commands.SendTx(node, nil, ix)
}

// CancelCmd refund an active commitment
func CancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Refund the active commitment of gambler",
		Run:   commands.Run(cancel),
	}
	addGamblerFlag(cmd)
	addPoolFlags(cmd)
	return cmd
}

func cancel(cmd *cobra.Command, node *commands.Node, args []string) error {
	gambler, _ := cmd.Flags().GetString("gambler")
	ix, err := rty.NewTryCancel(node.Addr(gambler), poolKey(cmd))
	if err != nil {
		return err
	}
	return commands.SendTx(node, nil, ix)
}

// HistoryCmd spin history
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Spin results of gambler",
		Run:   commands.Run(history),
	}
	addGamblerFlag(cmd)
	return cmd
}

func history(cmd *cobra.Command, node *commands.Node, args []string) error {
	gambler, _ := cmd.Flags().GetString("gambler")
	v, err := node.Query(rty.RouletteX, "GetSpinHistory", []byte(node.Addr(gambler)))
	if err != nil {
		return err
	}
	commands.PrintJSON(v)
	return nil
}

// ShowCmd show pool
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show honeypot, vault balance and the guess account of gambler",
		Run:   commands.Run(show),
	}
	cmd.Flags().StringP("gambler", "g", "", "key name or address of gambler")
	addPoolFlags(cmd)
	return cmd
}

type poolResult struct {
	Honeypot     string           `json:"honeypot"`
	Vault        string           `json:"vault"`
	VaultBalance uint64           `json:"vaultBalance"`
	State        *rty.Honeypot    `json:"state"`
	Guess        *rty.LockedGuess `json:"guess,omitempty"`
}

func show(cmd *cobra.Command, node *commands.Node, args []string) error {
	gambler, _ := cmd.Flags().GetString("gambler")
	key := poolKey(cmd)
	honeypot, vault, err := key.Addresses()
	if err != nil {
		return err
	}
	v, err := node.Query(rty.RouletteX, "GetHoneypot", []byte(honeypot))
	if err != nil {
		return err
	}
	res := &poolResult{Honeypot: honeypot, Vault: vault, State: v.(*rty.Honeypot)}
	if res.VaultBalance, err = node.TokenBalance(vault); err != nil {
		return err
	}
	if gambler != "" {
		guess, err := key.GuessAccount(node.Addr(gambler))
		if err != nil {
			return err
		}
		v, err := node.Query(rty.RouletteX, "GetGuessAccount", []byte(guess))
		if err != nil {
			return err
		}
		res.Guess = v.(*rty.LockedGuess)
	}
	commands.PrintJSON(res)
	return nil
}
