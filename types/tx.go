// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math/rand"

	"github.com/33cn/roulette/common"
	"github.com/33cn/roulette/common/crypto"
	"github.com/33cn/roulette/common/crypto/secp256k1"
)

const (
	metaSigner   = 1
	metaWritable = 2
)

// AccountMeta 指令引用的账户
type AccountMeta struct {
	Addr       string
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta 可写账户
func NewAccountMeta(addr string, isSigner bool) AccountMeta {
	return AccountMeta{Addr: addr, IsSigner: isSigner, IsWritable: true}
}

// NewReadonlyAccountMeta 只读账户
func NewReadonlyAccountMeta(addr string, isSigner bool) AccountMeta {
	return AccountMeta{Addr: addr, IsSigner: isSigner}
}

// Instruction 对某个程序的一次调用
type Instruction struct {
	ProgramID string
	Accounts  []AccountMeta
	Data      []byte
}

// NewInstruction new
func NewInstruction(programID string, data []byte, accounts ...AccountMeta) *Instruction {
	return &Instruction{ProgramID: programID, Accounts: accounts, Data: data}
}

func (ix *Instruction) encode(enc *Encoder) {
	enc.Address(ix.ProgramID)
	enc.U16(uint16(len(ix.Accounts)))
	for _, meta := range ix.Accounts {
		enc.Address(meta.Addr)
		var flags uint8
		if meta.IsSigner {
			flags |= metaSigner
		}
		if meta.IsWritable {
			flags |= metaWritable
		}
		enc.U8(flags)
	}
	enc.Bytes(ix.Data)
}

// Signature 签名以及公钥
type Signature struct {
	Pubkey    []byte
	Signature []byte
}

// Transaction 交易, 按顺序执行的一组指令, 全部成功或者全部回滚
type Transaction struct {
	Instructions []*Instruction
	Nonce        int64
	Signatures   []*Signature
}

// NewTransaction 随机 nonce, 相同指令的两笔交易哈希不同
func NewTransaction(ixs ...*Instruction) *Transaction {
	return &Transaction{Instructions: ixs, Nonce: rand.Int63()}
}

// Encode 不包含签名的编码
func (tx *Transaction) Encode() ([]byte, error) {
	enc := NewEncoder(256)
	enc.U16(uint16(len(tx.Instructions)))
	for _, ix := range tx.Instructions {
		ix.encode(enc)
	}
	enc.I64(tx.Nonce)
	if enc.Err() != nil {
		return nil, enc.Err()
	}
	return enc.Result(), nil
}

// Hash sha256(Encode())
func (tx *Transaction) Hash() []byte {
	data, err := tx.Encode()
	if err != nil {
		return nil
	}
	return common.Sha256(data)
}

// Signers 需要签名的地址, 按第一次出现的顺序
func (tx *Transaction) Signers() []string {
	var signers []string
	seen := make(map[string]bool)
	for _, ix := range tx.Instructions {
		for _, meta := range ix.Accounts {
			if meta.IsSigner && !seen[meta.Addr] {
				seen[meta.Addr] = true
				signers = append(signers, meta.Addr)
			}
		}
	}
	return signers
}

// Sign 追加一个签名
func (tx *Transaction) Sign(priv crypto.PrivKey) {
	sig := priv.Sign(tx.Hash())
	tx.Signatures = append(tx.Signatures, &Signature{Pubkey: priv.PubKey().Bytes(), Signature: sig.Bytes()})
}

// CheckSign 每个签名都必须有效, 每个 Signers() 都必须有签名
func (tx *Transaction) CheckSign() error {
	if len(tx.Instructions) == 0 {
		return ErrTxNoInstructions
	}
	hash := tx.Hash()
	if hash == nil {
		return ErrInvalidArgument
	}
	signed := make(map[string]bool)
	driver := secp256k1.Driver{}
	for _, s := range tx.Signatures {
		pub, err := driver.PubKeyFromBytes(s.Pubkey)
		if err != nil {
			return ErrSignature
		}
		sig, err := driver.SignatureFromBytes(s.Signature)
		if err != nil {
			return ErrSignature
		}
		if !pub.VerifyBytes(hash, sig) {
			return ErrSignature
		}
		signed[secp256k1.PubKeyToAddress(pub)] = true
	}
	for _, signer := range tx.Signers() {
		if !signed[signer] {
			return ErrMissingRequiredSignature
		}
	}
	return nil
}

// IsSignedBy 交易是否带有 addr 的有效签名, 在 CheckSign 之后使用
func (tx *Transaction) IsSignedBy(addr string) bool {
	for _, s := range tx.Signatures {
		var pub secp256k1.PubKeySecp256k1
		if len(s.Pubkey) != len(pub) {
			continue
		}
		copy(pub[:], s.Pubkey)
		if secp256k1.PubKeyToAddress(pub) == addr {
			return true
		}
	}
	return false
}
