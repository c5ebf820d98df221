package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/aaronwong1989/goptp"
	"github.com/aaronwong1989/goptp/codec"
	"github.com/aaronwong1989/goptp/codec/ptp"
	"github.com/aaronwong1989/goptp/comm"
	"github.com/aaronwong1989/goptp/comm/logging"
)

var log = logging.GetDefaultLogger()

type client struct {
	conn      net.Conn
	seq       codec.Sequence32
	timeout   time.Duration
	maxLength uint32 // 设备返回容器的长度上限
}

func main() {
	var addr, code, params, body string
	var session, maxLength uint
	var timeout time.Duration
	flag.StringVar(&addr, "addr", "127.0.0.1:15740", "--addr host:port")
	flag.StringVar(&code, "code", "0x1001", "--code 0x1001")
	flag.StringVar(&params, "params", "", "--params 1,0x10")
	flag.StringVar(&body, "json", "", `--json '{"code":4097,"params":[]}', overrides code and params`)
	flag.UintVar(&session, "session", 1, "--session 1, 0 runs without OpenSession")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "--timeout 5s")
	flag.UintVar(&maxLength, "max-length", 1<<20, "--max-length 1048576, limit of a container read from the device")
	flag.Parse()

	req, err := parseRequest(code, params, body)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(2)
	}
	if maxLength < ptp.HeadLength || maxLength > uint(^uint32(0)) {
		log.Errorf("--max-length %d out of range [%d, %d]", maxLength, ptp.HeadLength, ^uint32(0))
		os.Exit(2)
	}

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	cl := newClient(conn, timeout, uint32(maxLength))
	if err = cl.run(req, uint32(session)); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func newClient(conn net.Conn, timeout time.Duration, maxLength uint32) *client {
	return &client{conn: conn, seq: comm.NewTransactionSequence(), timeout: timeout, maxLength: maxLength}
}

func parseRequest(code, params, body string) (*goptp.Request, error) {
	req := &goptp.Request{}
	if body != "" {
		if err := json.Unmarshal([]byte(body), req); err != nil {
			return nil, errors.Wrap(err, "parse --json")
		}
		return req, nil
	}
	c, err := strconv.ParseUint(code, 0, 16)
	if err != nil {
		return nil, errors.Wrapf(err, "parse --code %s", code)
	}
	req.Code = uint16(c)
	for _, p := range strings.Split(params, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseUint(p, 0, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "parse --params %s", p)
		}
		req.Params = append(req.Params, uint32(v))
	}
	return req, nil
}

func (cl *client) run(req *goptp.Request, session uint32) error {
	if session != 0 {
		open := &goptp.Request{Code: ptp.OC_OpenSession, Params: []uint32{session}}
		// OpenSession 的事务号为0
		if _, err := cl.transact(open, 0); err != nil {
			return err
		}
		// 新会话的事务号从1开始
		cl.seq.Reset()
		defer func() {
			if _, err := cl.transact(&goptp.Request{Code: ptp.OC_CloseSession}, cl.seq.Next()); err != nil {
				log.Warnf("close session: %v", err)
			}
		}()
	}
	_, err := cl.transact(req, cl.seq.Next())
	return err
}

// transact 发送命令（及数据阶段），读取直到响应容器
func (cl *client) transact(req *goptp.Request, tid uint32) (*ptp.Container, error) {
	containers, err := req.Containers(tid)
	if err != nil {
		return nil, err
	}
	if err = cl.conn.SetDeadline(time.Now().Add(cl.timeout)); err != nil {
		return nil, err
	}
	for _, c := range containers {
		log.Infof(">>> %s", c)
		if err = ptp.WriteContainer(cl.conn, c); err != nil {
			return nil, err
		}
	}
	for {
		c, err := ptp.ReadContainer(cl.conn, cl.maxLength)
		if err != nil {
			return nil, err
		}
		log.Infof("<<< %s", c)
		if c.TransactionId != tid {
			return nil, errors.Errorf("transaction id mismatch: sent %d, received %d", tid, c.TransactionId)
		}
		switch c.Type {
		case ptp.TypeData:
			printData(req.Code, c)
		case ptp.TypeResponse:
			if params := c.Params(); len(params) > 0 {
				fmt.Printf("%s params: %v\n", ptp.CodeName(c.Code), params)
			}
			return c, ptp.CheckResponse(c)
		}
	}
}

func printData(code uint16, c *ptp.Container) {
	switch code {
	case ptp.OC_GetDeviceInfo:
		di := &ptp.DeviceInfo{}
		if err := di.Decode(c.Payload()); err != nil {
			log.Warnf("decode DeviceInfo: %v", err)
			break
		}
		out, _ := json.MarshalIndent(di, "", "  ")
		fmt.Println(string(out))
		return
	case ptp.OC_GetStorageIDs, ptp.OC_GetObjectHandles:
		ids, _, err := ptp.ReadUint32Array(c.Payload())
		if err != nil {
			log.Warnf("decode array: %v", err)
			break
		}
		for _, id := range ids {
			fmt.Printf("0x%08x\n", id)
		}
		return
	}
	fmt.Printf("% x\n", c.Payload())
}
