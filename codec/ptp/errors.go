package ptp

import (
	"errors"
	"fmt"

	"github.com/aaronwong1989/goptp/comm/logging"
)

var log = logging.GetDefaultLogger()

var (
	ErrNoPayload        = errors.New("ptp: container has no payload")
	ErrInvalidParameter = errors.New("ptp: parameter out of payload bounds")
	ErrMalformedMessage = errors.New("ptp: malformed message")
	ErrAllocation       = errors.New("ptp: allocation failure")
	ErrTooLarge         = errors.New("ptp: container exceeds size limit")
)

// RespCode 非 OK 的响应码，名称取自 CodeMap
type RespCode uint16

func (rc RespCode) Error() string {
	if n, ok := CodeMap[uint16(rc)]; ok {
		return n
	}
	return fmt.Sprintf("RespCode 0x%04x", uint16(rc))
}

// CheckResponse returns nil for an OK response container and a RespCode
// error for any other response code.
func CheckResponse(c *Container) error {
	if c.Type != TypeResponse {
		return fmt.Errorf("ptp: expected response container, got %s", TypeName(c.Type))
	}
	if c.Code != RC_OK {
		return RespCode(c.Code)
	}
	return nil
}
