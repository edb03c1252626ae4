// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"math/bits"

	drivers "github.com/33cn/roulette/system/dapp"
	nty "github.com/33cn/roulette/system/dapp/native/types"
	rty "github.com/33cn/roulette/system/dapp/roulette/types"
	tokenexec "github.com/33cn/roulette/system/dapp/token/executor"
	tokenty "github.com/33cn/roulette/system/dapp/token/types"
	"github.com/33cn/roulette/types"
)

// spinAccounts Spin 固定的账户个数, 之后是 oracle 的账户
const spinAccounts = 9

func (r *Roulette) execInitializeGuessAccount(ctx drivers.Context) error {
	accs, err := nextN(ctx, 7)
	if err != nil {
		return err
	}
	gamblerInfo, mintInfo, honeypotInfo, vaultInfo := accs[0], accs[1], accs[2], accs[3]
	guessInfo, rentInfo, nativeInfo := accs[4], accs[5], accs[6]
	honeypot, err := loadHoneypot(honeypotInfo)
	if err != nil {
		return err
	}
	if _, err := verifyPool(honeypot, mintInfo.Addr, honeypotInfo, vaultInfo); err != nil {
		return err
	}
	guessKey, bump, err := rty.FindGuessAddress(gamblerInfo.Addr, vaultInfo.Addr)
	if err != nil {
		return err
	}
	if err := assertKeysEqual(guessKey, guessInfo.Addr); err != nil {
		return err
	}
	seeds := rty.WithBump(rty.GuessSeeds(gamblerInfo.Addr, vaultInfo.Addr), bump)
	err = nty.CreateOrAllocate(ctx, guessInfo, rentInfo, nativeInfo, gamblerInfo, types.RouletteProgramID, rty.LockedGuessLen, seeds)
	if err != nil {
		return err
	}
	locked := &rty.LockedGuess{
		Version: rty.VersionLockedGuessV1,
		Bump:    bump,
		Owner:   gamblerInfo.Addr,
		Vault:   vaultInfo.Addr,
	}
	guessInfo.Data = locked.Encode()
	return nil
}

func (r *Roulette) execPlaceGuesses(ctx drivers.Context, guesses []rty.RouletteGuess) error {
	accs, err := nextN(ctx, 8)
	if err != nil {
		return err
	}
	gamblerInfo, gamblerATAInfo, mintInfo, honeypotInfo := accs[0], accs[1], accs[2], accs[3]
	vaultInfo, guessInfo, tokenInfo, clockInfo := accs[4], accs[5], accs[6], accs[7]

	honeypot, err := loadHoneypot(honeypotInfo)
	if err != nil {
		return err
	}
	vault, err := tokenexec.LoadAccount(vaultInfo)
	if err != nil {
		return err
	}
	clock, err := drivers.ClockFrom(clockInfo)
	if err != nil {
		return err
	}
	locked, err := loadLockedGuess(guessInfo)
	if err != nil {
		return err
	}
	if _, err := verifyPool(honeypot, mintInfo.Addr, honeypotInfo, vaultInfo); err != nil {
		return err
	}
	if err := assertKeysEqual(vaultInfo.Addr, locked.Vault); err != nil {
		return err
	}
	if err := verifyGuessAccount(locked, gamblerInfo.Addr, vaultInfo.Addr, guessInfo); err != nil {
		return err
	}
	if err := assertKeysEqual(types.TokenProgramID, tokenInfo.Addr); err != nil {
		return err
	}
	if _, err := assertIsATA(gamblerATAInfo, gamblerInfo.Addr, mintInfo.Addr); err != nil {
		return err
	}
	if locked.Active {
		return types.ErrActiveSpin
	}
	locked.Slot = clock.Slot
	locked.Active = true
	var totalAmount uint64
	for _, g := range guesses {
		i := int(g.Guess)
		if i >= rty.NumGuesses {
			return types.ErrInvalidInstructionData
		}
		stake, carry := bits.Add64(locked.Guesses[i], g.Amount, 0)
		if carry != 0 {
			return types.ErrNumericalOverflow
		}
		locked.Guesses[i] = stake
		ctx.Log("guess: %d, amount: %d", i, g.Amount)
		sum, carry := bits.Add64(totalAmount, g.Amount, 0)
		if carry != 0 {
			return types.ErrNumericalOverflow
		}
		totalAmount = sum
	}
	if totalAmount == 0 {
		rlog.Debug("PlaceGuesses", "gambler", gamblerInfo.Addr, "err", "empty stake")
		return types.ErrStatementFalse
	}
	hi, totalTokens := bits.Mul64(totalAmount, honeypot.TickSize)
	if hi != 0 {
		return types.ErrNumericalOverflow
	}
	ctx.Log("total_amount: %d, total_tokens: %d, vault_amount: %d", totalAmount, totalTokens, vault.Amount)
	if vault.Amount <= honeypot.MinimumBankSize {
		ctx.Log("Vault funds have been drained. The house needs to reload.")
		return types.ErrInsufficientFunds
	}
	if totalTokens > honeypot.MaxAmount {
		ctx.Log("Amount is too large")
		return types.ErrAmountTooLarge
	}
	locked.ActiveSize = totalTokens
	ctx.Log("User deposited %d tokens", totalTokens)
	ix := tokenty.NewTransfer(gamblerATAInfo.Addr, vaultInfo.Addr, gamblerInfo.Addr, totalTokens)
	if err := ctx.Invoke(ix); err != nil {
		return err
	}
	guessInfo.Data = locked.Encode()
	receipt := &rty.ReceiptCommit{Gambler: gamblerInfo.Addr, Vault: vaultInfo.Addr, Slot: locked.Slot, ActiveSize: totalTokens}
	ctx.AddLog(rty.TyLogRouletteCommit, receipt.Encode())
	return nil
}

// checkBundle 检查 Spin 所在交易的指令. 默认只执行原有的判断条件,
// strict 为 true 时要求交易中只有这一条指令
func checkBundle(ctx drivers.Context, ixInfo *types.AccountInfo) error {
	if ixInfo.Addr != types.SysvarInstructionsID {
		return types.ErrInvalidInstructionData
	}
	ixs, err := types.DecodeInstructionsSysvar(ixInfo.Data)
	if err != nil {
		return err
	}
	current, num := ixs.Current, ixs.Len()
	ctx.Log("current_ix: %d, num_ix: %d", current, num)
	suspicious := current < num-1 && num == 0
	if ctx.Config().Roulette.StrictBundleGuard {
		suspicious = num != 1
	}
	if suspicious {
		ctx.Log("This must be the only instruction in the transaction")
		return types.ErrSuspiciousTransaction
	}
	return nil
}

func (r *Roulette) execSpin(ctx drivers.Context, tolerance uint64) error {
	accs := ctx.Accounts()
	if len(accs) < spinAccounts {
		return types.ErrNotEnoughAccountKeys
	}
	value, step, err := sample(ctx, accs[spinAccounts:], tolerance)
	if err != nil {
		return err
	}
	rngInfo, guessInfo, gamblerInfo, gamblerATAInfo, mintInfo := accs[0], accs[1], accs[2], accs[3], accs[4]
	honeypotInfo, vaultInfo, tokenInfo, ixInfo := accs[5], accs[6], accs[7], accs[8]

	if err := assertOwnedBy(honeypotInfo, types.RouletteProgramID); err != nil {
		return err
	}
	if _, err := assertIsATA(gamblerATAInfo, gamblerInfo.Addr, mintInfo.Addr); err != nil {
		return err
	}
	if err := checkBundle(ctx, ixInfo); err != nil {
		return err
	}
	locked, err := loadLockedGuess(guessInfo)
	if err != nil {
		return err
	}
	honeypot, err := loadHoneypot(honeypotInfo)
	if err != nil {
		return err
	}
	honeypotSeeds, err := verifyPool(honeypot, mintInfo.Addr, honeypotInfo, vaultInfo)
	if err != nil {
		return err
	}
	if err := assertKeysEqual(vaultInfo.Addr, locked.Vault); err != nil {
		return err
	}
	if err := verifyGuessAccount(locked, gamblerInfo.Addr, vaultInfo.Addr, guessInfo); err != nil {
		return err
	}
	if err := assertKeysEqual(types.TokenProgramID, tokenInfo.Addr); err != nil {
		return err
	}
	if !locked.Active {
		ctx.Log("You may only spin when the money has been committed")
		return types.ErrInactive
	}
	ctx.Log("current_slot: %d, guess_slot: %d", step, locked.Slot)
	if step <= locked.Slot {
		ctx.Log("You may not spin the same slot as your guess")
		return types.ErrInvalidSlot
	}
	deadline, carry := bits.Add64(locked.Slot, tolerance, 0)
	if carry != 0 {
		return types.ErrNumericalOverflow
	}
	if step > deadline {
		ctx.Log("Failure to redeem within the allotted slot time")
		return types.ErrInvalidSlot
	}
	if err := updateRNG(ctx, rngInfo, value, step); err != nil {
		return err
	}
	outcome := value % rty.NumPockets
	var reward uint64
	for i := 0; i < rty.NumGuesses; i++ {
		size := locked.Guesses[i]
		if size == 0 {
			continue
		}
		payout, err := rty.Payout(rty.Guess(i), size, outcome)
		if err != nil {
			return err
		}
		sum, carry := bits.Add64(reward, payout, 0)
		if carry != 0 {
			return types.ErrNumericalOverflow
		}
		reward = sum
		ctx.Log("payout: %d, guess: %d, size: %d", payout, i, size)
	}
	hi, totalReward := bits.Mul64(reward, honeypot.TickSize)
	if hi != 0 {
		return types.ErrNumericalOverflow
	}
	ctx.Log("outcome: %d, total_reward: %d", outcome, totalReward)
	if totalReward > 0 {
		ctx.Log("User won %d tokens", totalReward)
		ix := tokenty.NewTransfer(vaultInfo.Addr, gamblerATAInfo.Addr, honeypotInfo.Addr, totalReward)
		if err := ctx.Invoke(ix, honeypotSeeds); err != nil {
			return err
		}
	}
	receipt := &rty.ReceiptSpin{
		Gambler:    gamblerInfo.Addr,
		Vault:      vaultInfo.Addr,
		GuessSlot:  locked.Slot,
		Slot:       step,
		Outcome:    outcome,
		ActiveSize: locked.ActiveSize,
		Reward:     totalReward,
	}
	locked.Reset()
	guessInfo.Data = locked.Encode()
	ctx.AddLog(rty.TyLogRouletteSpin, receipt.Encode())
	return nil
}

// execTryCancel 空闲的押注记录直接返回成功, 不做其他检查
func (r *Roulette) execTryCancel(ctx drivers.Context) error {
	accs, err := nextN(ctx, 7)
	if err != nil {
		return err
	}
	guessInfo, gamblerInfo, gamblerATAInfo, mintInfo := accs[0], accs[1], accs[2], accs[3]
	honeypotInfo, vaultInfo, tokenInfo := accs[4], accs[5], accs[6]
	locked, err := loadLockedGuess(guessInfo)
	if err != nil {
		return err
	}
	honeypot, err := loadHoneypot(honeypotInfo)
	if err != nil {
		return err
	}
	if !locked.Active {
		return nil
	}
	if err := assertOwnedBy(honeypotInfo, types.RouletteProgramID); err != nil {
		return err
	}
	if _, err := assertIsATA(gamblerATAInfo, gamblerInfo.Addr, mintInfo.Addr); err != nil {
		return err
	}
	honeypotSeeds, err := verifyPool(honeypot, mintInfo.Addr, honeypotInfo, vaultInfo)
	if err != nil {
		return err
	}
	if err := assertKeysEqual(vaultInfo.Addr, locked.Vault); err != nil {
		return err
	}
	if err := verifyGuessAccount(locked, gamblerInfo.Addr, vaultInfo.Addr, guessInfo); err != nil {
		return err
	}
	if err := assertKeysEqual(types.TokenProgramID, tokenInfo.Addr); err != nil {
		return err
	}
	refund := locked.ActiveSize
	ctx.Log("Refunding %d tokens to user", refund)
	ix := tokenty.NewTransfer(vaultInfo.Addr, gamblerATAInfo.Addr, honeypotInfo.Addr, refund)
	if err := ctx.Invoke(ix, honeypotSeeds); err != nil {
		return err
	}
	locked.Reset()
	guessInfo.Data = locked.Encode()
	receipt := &rty.ReceiptTransfer{To: gamblerInfo.Addr, Vault: vaultInfo.Addr, Amount: refund}
	ctx.AddLog(rty.TyLogRouletteCancel, receipt.Encode())
	return nil
}
