// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// 交易执行结果
const (
	ExecErr = 1
	ExecOk  = 2
)

// 通用日志类型, 各程序自己的日志类型从 100 开始
const (
	TyLogErr     = 1
	TyLogProgram = 2
	TyLogErrCode = 3
)

// KeyValue kv
type KeyValue struct {
	Key   []byte
	Value []byte
}

// ReceiptLog 日志
type ReceiptLog struct {
	Ty  int32
	Log []byte
}

// Receipt 交易回执. 失败的交易只保留日志
type Receipt struct {
	Ty   int32
	KV   []*KeyValue
	Logs []*ReceiptLog
}

// LocalDBSet ExecLocal 写入本地数据库的 kv
type LocalDBSet struct {
	KV []*KeyValue
}

// ProgramLogs 程序输出的文本日志
func (r *Receipt) ProgramLogs() []string {
	var out []string
	for _, l := range r.Logs {
		if l.Ty == TyLogProgram {
			out = append(out, string(l.Log))
		}
	}
	return out
}

// EncodeErrCode TyLogErrCode 的内容: 分组 u32, 编号 u32
func EncodeErrCode(family, code int) []byte {
	enc := NewEncoder(8)
	enc.U32(uint32(family))
	enc.U32(uint32(code))
	return enc.Result()
}

// ErrorCode 失败回执中的错误码, 宿主环境错误没有错误码
func (r *Receipt) ErrorCode() (family int, code int, ok bool) {
	for _, l := range r.Logs {
		if l.Ty != TyLogErrCode {
			continue
		}
		dec := NewDecoder(l.Log)
		family, code = int(dec.U32()), int(dec.U32())
		if dec.Err() != nil {
			return 0, 0, false
		}
		return family, code, true
	}
	return 0, 0, false
}
