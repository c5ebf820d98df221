package device

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/aaronwong1989/goptp/codec/ptp"
)

// session 每个连接一份，sessionId 只在事件循环中读写
type session struct {
	id        string
	remote    string
	sessionId uint32 // 0 表示未打开会话

	// 待发送的应答，按接收顺序排队，由 mu 保护
	mu      sync.Mutex
	pending [][]*ptp.Container
	writing bool
}

func newSession(remote string) *session {
	return &session{id: uuid.New().String(), remote: remote}
}

func (s *session) String() string {
	return fmt.Sprintf("{ id: %s, remote: %s, sessionId: %d }", s.id, s.remote, s.sessionId)
}

// Responder answers command containers the way a camera would.
type Responder struct {
	conf *Config
	info ptp.DeviceInfo
}

var supportedOperations = []uint16{
	ptp.OC_GetDeviceInfo,
	ptp.OC_OpenSession,
	ptp.OC_CloseSession,
	ptp.OC_GetStorageIDs,
	ptp.OC_CHDK,
}

func NewResponder(conf *Config) *Responder {
	return &Responder{
		conf: conf,
		info: ptp.DeviceInfo{
			StandardVersion:        100,
			VendorExtensionID:      conf.VendorExtensionID,
			VendorExtensionDesc:    conf.VendorExtensionDesc,
			OperationsSupported:    supportedOperations,
			EventsSupported:        []uint16{},
			Manufacturer:           conf.Manufacturer,
			Model:                  conf.Model,
			DeviceVersion:          conf.DeviceVersion,
			SerialNumber:           conf.SerialNumber,
			VendorExtensionVersion: 0,
		},
	}
}

// Handle returns the containers to send back for req, data phase first.
// An error means the peer broke the protocol and the connection should close.
func (r *Responder) Handle(s *session, req *ptp.Container) ([]*ptp.Container, error) {
	switch req.Type {
	case ptp.TypeCommand:
	case ptp.TypeData:
		log.Debugf("[%-9s] <<< host data phase ignored: %s", "OnTraffic", req)
		return nil, nil
	default:
		return nil, errors.Errorf("unexpected %s container from host", ptp.TypeName(req.Type))
	}

	switch req.Code {
	case ptp.OC_GetDeviceInfo:
		return r.getDeviceInfo(req)
	case ptp.OC_OpenSession:
		return r.openSession(s, req)
	case ptp.OC_CloseSession:
		return r.closeSession(s, req)
	case ptp.OC_GetStorageIDs:
		return r.getStorageIDs(s, req)
	case ptp.OC_CHDK:
		return r.chdk(s, req)
	default:
		return respond(req, ptp.RC_OperationNotSupported)
	}
}

func (r *Responder) getDeviceInfo(req *ptp.Container) ([]*ptp.Container, error) {
	dataset, err := r.info.Encode()
	if err != nil {
		return nil, err
	}
	return withData(req, dataset)
}

func (r *Responder) openSession(s *session, req *ptp.Container) ([]*ptp.Container, error) {
	id, err := req.Param(0)
	if err != nil || id == 0 {
		return respond(req, ptp.RC_InvalidParameter)
	}
	if s.sessionId != 0 {
		return respond(req, ptp.RC_SessionAlreadyOpen, s.sessionId)
	}
	s.sessionId = id
	log.Infof("[%-9s] session %d opened on %s", "OnTraffic", id, s)
	return respond(req, ptp.RC_OK)
}

func (r *Responder) closeSession(s *session, req *ptp.Container) ([]*ptp.Container, error) {
	if s.sessionId == 0 {
		return respond(req, ptp.RC_SessionNotOpen)
	}
	log.Infof("[%-9s] session %d closed on %s", "OnTraffic", s.sessionId, s)
	s.sessionId = 0
	return respond(req, ptp.RC_OK)
}

func (r *Responder) getStorageIDs(s *session, req *ptp.Container) ([]*ptp.Container, error) {
	if s.sessionId == 0 {
		return respond(req, ptp.RC_SessionNotOpen)
	}
	return withData(req, ptp.AppendUint32Array(nil, r.conf.StorageIds))
}

func (r *Responder) chdk(s *session, req *ptp.Container) ([]*ptp.Container, error) {
	if s.sessionId == 0 {
		return respond(req, ptp.RC_SessionNotOpen)
	}
	sub, err := req.Param(0)
	if err != nil {
		return respond(req, ptp.RC_InvalidParameter)
	}
	switch sub {
	case ptp.CHDK_Version:
		return respond(req, ptp.RC_OK, r.conf.ChdkMajor, r.conf.ChdkMinor)
	default:
		return respond(req, ptp.RC_ParameterNotSupported)
	}
}

func respond(req *ptp.Container, code uint16, params ...uint32) ([]*ptp.Container, error) {
	resp, err := req.ToResponse(code, params...)
	if err != nil {
		return nil, err
	}
	return []*ptp.Container{resp}, nil
}

func withData(req *ptp.Container, data []byte) ([]*ptp.Container, error) {
	dc, err := req.ToData(data)
	if err != nil {
		return nil, err
	}
	resp, err := req.ToResponse(ptp.RC_OK)
	if err != nil {
		return nil, err
	}
	return []*ptp.Container{dc, resp}, nil
}
