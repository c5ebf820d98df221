package comm

import (
	"go.uber.org/atomic"

	"github.com/aaronwong1989/goptp/codec"
)

// TransactionSequence PTP 事务号生成器，从1开始递增
// 0 保留给 OpenSession，0xFFFFFFFF 为无效值，回绕时跳过二者
type TransactionSequence struct {
	val atomic.Uint32
}

func NewTransactionSequence() *TransactionSequence {
	return &TransactionSequence{}
}

func (s *TransactionSequence) Next() uint32 {
	for {
		v := s.val.Inc()
		if v != 0 && v != 0xFFFFFFFF {
			return v
		}
	}
}

// Reset 会话重新打开后从1重新计数
func (s *TransactionSequence) Reset() {
	s.val.Store(0)
}

var _ codec.Sequence32 = (*TransactionSequence)(nil)
