package goptp

import (
	"github.com/aaronwong1989/goptp/codec/ptp"
)

// Request describes one PTP operation as it arrives from a caller, e.g. a
// JSON body or command line flags. The validate tags document the contract,
// Containers checks it.
type Request struct {
	Code   uint16   `json:"code"   validate:"required"`
	Params []uint32 `json:"params" validate:"omitempty,max=5"`
	Data   []byte   `json:"data"   validate:"omitempty"`
}

// MaxParams PTP 命令容器最多携带5个参数
const MaxParams = 5

// Containers builds the command container and, when Data is set, the data
// phase container for transaction tid.
func (r *Request) Containers(tid uint32) ([]*ptp.Container, error) {
	if len(r.Params) > MaxParams {
		return nil, ptp.ErrInvalidParameter
	}
	cmd := ptp.New(ptp.TypeCommand, r.Code)
	cmd.TransactionId = tid
	if err := cmd.AddParams(r.Params...); err != nil {
		return nil, err
	}
	if len(r.Data) == 0 {
		return []*ptp.Container{cmd}, nil
	}
	data, err := cmd.ToData(r.Data)
	if err != nil {
		return nil, err
	}
	return []*ptp.Container{cmd, data}, nil
}
