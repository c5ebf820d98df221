package device

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/panjf2000/gnet/v2"
	"github.com/panjf2000/gnet/v2/pkg/pool/goroutine"

	"github.com/aaronwong1989/goptp/codec/ptp"
	"github.com/aaronwong1989/goptp/comm"
	"github.com/aaronwong1989/goptp/comm/logging"
)

var log = logging.GetDefaultLogger()

// Server 模拟 PTP 设备，TCP 上直接收发容器，以容器头的长度字段分帧
type Server struct {
	gnet.BuiltinEventEngine
	engine    gnet.Engine
	protocol  string
	address   string
	multicore bool
	pool      *goroutine.Pool
	conMap    sync.Map
	conf      *Config
	responder *Responder
	booted    chan struct{}
}

func NewServer(conf *Config, address string, multicore bool) (*Server, error) {
	// 定义异步工作Go程池
	options := ants.Options{
		ExpiryDuration:   time.Minute,      // 1 分钟内不被使用的worker会被清除
		Nonblocking:      false,            // 如果为true,worker池满了后提交任务会直接返回nil
		MaxBlockingTasks: conf.MaxPoolSize, // blocking模式有效
		PreAlloc:         false,
		PanicHandler: func(e interface{}) {
			log.Errorf("%v", e)
		},
	}
	pool, err := ants.NewPool(conf.MaxPoolSize, ants.WithOptions(options))
	if err != nil {
		return nil, err
	}
	return &Server{
		protocol:  "tcp",
		address:   address,
		multicore: multicore,
		pool:      pool,
		conf:      conf,
		responder: NewResponder(conf),
		booted:    make(chan struct{}),
	}, nil
}

// StartServer 阻塞运行直到服务退出
func StartServer(conf *Config, port int, multicore bool) error {
	s, err := NewServer(conf, fmt.Sprintf(":%d", port), multicore)
	if err != nil {
		return err
	}
	defer s.pool.Release()

	comm.StartMonitor(port)

	err = s.Run()
	log.Errorf("server(%s://%s) exits with error: %v", s.protocol, s.address, err)
	return err
}

func (s *Server) Run() error {
	return gnet.Run(s, s.protocol+"://"+s.address,
		gnet.WithMulticore(s.multicore),
		gnet.WithTicker(s.conf.TickDuration > 0))
}

// Booted 在事件循环启动后关闭
func (s *Server) Booted() <-chan struct{} {
	return s.booted
}

// Stop 优雅关闭，等待事件循环与连接关闭
func (s *Server) Stop(ctx context.Context) error {
	return gnet.Stop(ctx, s.protocol+"://"+s.address)
}

func (s *Server) OnBoot(eng gnet.Engine) (action gnet.Action) {
	log.Infof("[%-9s] running server on %s with multi-core=%t", "OnBoot", fmt.Sprintf("%s://%s", s.protocol, s.address), s.multicore)
	s.engine = eng
	close(s.booted)
	return
}

func (s *Server) OnShutdown(eng gnet.Engine) {
	log.Warnf("[%-9s] shutdown server %s ...", "OnShutdown", fmt.Sprintf("%s://%s", s.protocol, s.address))
	// 事件循环在 OnShutdown 之后才关闭连接，这里不能等待连接数归零
	log.Warnf("[%-9s] %d active connections will be closed", "OnShutdown", eng.CountConnections())
	log.Warnf("[%-9s] shutdown server %s completed!", "OnShutdown", fmt.Sprintf("%s://%s", s.protocol, s.address))
}

func (s *Server) OnOpen(c gnet.Conn) (out []byte, action gnet.Action) {
	if s.countConn() >= s.conf.MaxCons {
		log.Warnf("[%-9s] [%v<->%v] FLOW CONTROL：connections threshold reached, closing new connection...", "OnOpen", c.RemoteAddr(), c.LocalAddr())
		return nil, gnet.Close
	}
	sess := newSession(c.RemoteAddr().String())
	c.SetContext(sess)
	s.conMap.Store(sess.id, c)
	log.Infof("[%-9s] [%v<->%v] session=%s activeCons=%d.", "OnOpen", c.RemoteAddr(), c.LocalAddr(), sess.id, s.activeCons())
	return
}

func (s *Server) OnClose(c gnet.Conn, e error) (action gnet.Action) {
	if sess, ok := c.Context().(*session); ok {
		s.conMap.Delete(sess.id)
	}
	log.Warnf("[%-9s] [%v<->%v] activeCons=%d, reason=%v.", "OnClose", c.RemoteAddr(), c.LocalAddr(), s.activeCons(), e)
	return
}

func (s *Server) OnTraffic(c gnet.Conn) (action gnet.Action) {
	sess, ok := c.Context().(*session)
	if !ok {
		return gnet.Close
	}
	for {
		head := comm.PeekBytes(c, ptp.HeadLength)
		if head == nil {
			return gnet.None
		}
		header := ptp.Header{}
		if err := header.Decode(head); err != nil {
			log.Warnf("[%-9s] [%v<->%v] decode error: %v, close session...", "OnTraffic", c.RemoteAddr(), c.LocalAddr(), err)
			return gnet.Close
		}
		// 不合法包，关闭连接
		if header.Length < ptp.HeadLength || header.Length > s.conf.MaxContainerLength {
			log.Warnf("[%-9s] [%v<->%v] decode error, header: %s, close session...", "OnTraffic", c.RemoteAddr(), c.LocalAddr(), &header)
			return gnet.Close
		}
		// 等待完整容器
		frame := comm.TakeBytes(c, int(header.Length))
		if frame == nil {
			return gnet.None
		}
		comm.LogHex(logging.DebugLevel, "Container", frame)

		req, err := ptp.FromBytes(frame)
		if err != nil {
			log.Errorf("[%-9s] decode error: %v", "OnTraffic", err)
			return gnet.Close
		}
		log.Infof("[%-9s] <<< %s", "OnTraffic", req)

		replies, err := s.responder.Handle(sess, req)
		if err != nil {
			log.Errorf("[%-9s] [%v<->%v] %v, close session...", "OnTraffic", c.RemoteAddr(), c.LocalAddr(), err)
			return gnet.Close
		}
		if len(replies) > 0 {
			if err = s.enqueue(c, sess, replies); err != nil {
				log.Errorf("[%-9s] submit reply error: %v", "OnTraffic", err)
				return gnet.Close
			}
		}
	}
}

// enqueue 应答按接收顺序排队，每个连接同一时刻只有一个写任务
func (s *Server) enqueue(c gnet.Conn, sess *session, replies []*ptp.Container) error {
	sess.mu.Lock()
	sess.pending = append(sess.pending, replies)
	if sess.writing {
		sess.mu.Unlock()
		return nil
	}
	sess.writing = true
	sess.mu.Unlock()

	err := s.pool.Submit(func() { s.drain(c, sess) })
	if err != nil {
		sess.mu.Lock()
		sess.pending = nil
		sess.writing = false
		sess.mu.Unlock()
	}
	return err
}

// drain 依次发送排队的应答，队列为空时退出
func (s *Server) drain(c gnet.Conn, sess *session) {
	for {
		sess.mu.Lock()
		if len(sess.pending) == 0 {
			sess.writing = false
			sess.mu.Unlock()
			return
		}
		replies := sess.pending[0]
		sess.pending[0] = nil
		sess.pending = sess.pending[1:]
		sess.mu.Unlock()

		if err := s.reply(c, replies); err != nil {
			log.Errorf("[%-9s] [%v] reply error: %v, drop pending replies", "OnTraffic", sess.id, err)
			sess.mu.Lock()
			sess.pending = nil
			sess.writing = false
			sess.mu.Unlock()
			return
		}
	}
}

// reply 数据阶段与响应合并为一次写入
func (s *Server) reply(c gnet.Conn, replies []*ptp.Container) error {
	// 模拟设备处理耗时，可配置
	if s.conf.MaxRespMs > s.conf.MinRespMs {
		time.Sleep(time.Duration(comm.RandNum(s.conf.MinRespMs, s.conf.MaxRespMs)) * time.Millisecond)
	}

	out := make([]byte, 0, ptp.HeadLength*len(replies))
	for _, r := range replies {
		frame, err := r.Encode()
		if err != nil {
			return err
		}
		out = append(out, frame...)
	}
	// 同一 goroutine 先后提交的 AsyncWrite 在事件循环中按序执行
	return c.AsyncWrite(out, func(c gnet.Conn) error {
		for _, r := range replies {
			log.Infof("[%-9s] >>> %s", "OnTraffic", r)
		}
		return nil
	})
}

func (s *Server) OnTick() (delay time.Duration, action gnet.Action) {
	log.Infof("[%-9s] %d active connections.", "OnTick", s.activeCons())
	return s.conf.TickDuration, gnet.None
}

func (s *Server) countConn() int {
	counter := 0
	s.conMap.Range(func(key, value interface{}) bool {
		counter++
		return true
	})
	return counter
}

func (s *Server) activeCons() int {
	return s.engine.CountConnections()
}
