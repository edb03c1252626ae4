// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"

	pkgerr "github.com/pkg/errors"
)

// 宿主环境错误, 原样返回给调用方
var (
	ErrInvalidArgument             = errors.New("ErrInvalidArgument")
	ErrInvalidInstructionData      = errors.New("ErrInvalidInstructionData")
	ErrInvalidAccountData          = errors.New("ErrInvalidAccountData")
	ErrAccountAlreadyInitialized   = errors.New("ErrAccountAlreadyInitialized")
	ErrInsufficientFunds           = errors.New("ErrInsufficientFunds")
	ErrNotEnoughAccountKeys        = errors.New("ErrNotEnoughAccountKeys")
	ErrMissingRequiredSignature    = errors.New("ErrMissingRequiredSignature")
	ErrAccountDataTooSmall         = errors.New("ErrAccountDataTooSmall")
	ErrUnknownProgram              = errors.New("ErrUnknownProgram")
	ErrExternalAccountDataModified = errors.New("ErrExternalAccountDataModified")
	ErrExternalAccountLamportSpend = errors.New("ErrExternalAccountLamportSpend")
	ErrReadonlyAccountModified     = errors.New("ErrReadonlyAccountModified")
	ErrUnbalancedInstruction       = errors.New("ErrUnbalancedInstruction")
	ErrPrivilegeEscalation         = errors.New("ErrPrivilegeEscalation")
	ErrInvalidSeeds                = errors.New("ErrInvalidSeeds")
	ErrSignature                   = errors.New("ErrSignature")
	ErrTxNoInstructions            = errors.New("ErrTxNoInstructions")
	ErrNotFound                    = errors.New("ErrNotFound")
	ErrDecode                      = errors.New("ErrDecode")
	ErrActionNotSupport            = errors.New("ErrActionNotSupport")
	ErrQueryNotSupport             = errors.New("ErrQueryNotSupport")
	ErrCallDepthExceeded           = errors.New("ErrCallDepthExceeded")
	ErrReentrancyNotAllowed        = errors.New("ErrReentrancyNotAllowed")
)

// 通用校验错误, ErrorFamilyUtil
var (
	ErrPublicKeyMismatch        = errors.New("ErrPublicKeyMismatch")
	ErrInvalidMintAuthority     = errors.New("ErrInvalidMintAuthority")
	ErrUninitializedAccount     = errors.New("ErrUninitializedAccount")
	ErrIncorrectOwner           = errors.New("ErrIncorrectOwner")
	ErrPublicKeysShouldBeUnique = errors.New("ErrPublicKeysShouldBeUnique")
	ErrStatementFalse           = errors.New("ErrStatementFalse")
	ErrNotRentExempt            = errors.New("ErrNotRentExempt")
)

// 游戏错误, ErrorFamilyRoulette
var (
	ErrActiveSpin            = errors.New("ErrActiveSpin")
	ErrInactive              = errors.New("ErrInactive")
	ErrNumericalOverflow     = errors.New("ErrNumericalOverflow")
	ErrAmountTooLarge        = errors.New("ErrAmountTooLarge")
	ErrInvalidSlot           = errors.New("ErrInvalidSlot")
	ErrSuspiciousTransaction = errors.New("ErrSuspiciousTransaction")
)

// 错误码分组
const (
	ErrorFamilyHost     = 0
	ErrorFamilyUtil     = 1
	ErrorFamilyRoulette = 2
)

var utilErrors = []error{
	ErrPublicKeyMismatch,
	ErrInvalidMintAuthority,
	ErrUninitializedAccount,
	ErrIncorrectOwner,
	ErrPublicKeysShouldBeUnique,
	ErrStatementFalse,
	ErrNotRentExempt,
}

var rouletteErrors = []error{
	ErrActiveSpin,
	ErrInactive,
	ErrNumericalOverflow,
	ErrAmountTooLarge,
	ErrInvalidSlot,
	ErrSuspiciousTransaction,
}

// ErrorCode 返回错误所在的分组和分组内的编号, 支持 pkg/errors 包装过的错误.
// 宿主环境错误返回 ok = false.
func ErrorCode(err error) (family int, code int, ok bool) {
	if err == nil {
		return 0, 0, false
	}
	cause := pkgerr.Cause(err)
	for i, e := range utilErrors {
		if cause == e {
			return ErrorFamilyUtil, i, true
		}
	}
	for i, e := range rouletteErrors {
		if cause == e {
			return ErrorFamilyRoulette, i, true
		}
	}
	return ErrorFamilyHost, 0, false
}
