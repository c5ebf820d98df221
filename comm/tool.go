package comm

import (
	"bufio"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"

	"github.com/panjf2000/gnet/v2"

	"github.com/aaronwong1989/goptp/comm/logging"
)

var log = logging.GetDefaultLogger()

// PeekBytes 读取但不消费数据，缓冲区不足时返回nil
func PeekBytes(c gnet.Conn, bytes int) []byte {
	if c.InboundBuffered() < bytes {
		return nil
	}
	frame, err := c.Peek(bytes)
	if err != nil {
		log.Errorf("[%-9s] peek error: %v", "OnTraffic", err)
		return nil
	}
	return frame
}

// TakeBytes 消费一定字节数的数据，返回的切片归调用方所有
func TakeBytes(c gnet.Conn, bytes int) []byte {
	frame := PeekBytes(c, bytes)
	if frame == nil {
		return nil
	}
	// Peek 返回的切片在 Discard 后可能被复用
	out := make([]byte, len(frame))
	copy(out, frame)
	_, err := c.Discard(bytes)
	if err != nil {
		log.Errorf("[%-9s] discard error: %v", "OnTraffic", err)
		return nil
	}
	return out
}

func LogHex(level logging.Level, model string, bts []byte) {
	if !log.Enabled(level) {
		return
	}
	msg := fmt.Sprintf("[OnTraffic] Hex %s: %x", model, bts)
	if level == logging.DebugLevel {
		log.Debug(msg)
	} else if level == logging.ErrorLevel {
		log.Error(msg)
	} else if level == logging.WarnLevel {
		log.Warn(msg)
	} else {
		log.Info(msg)
	}
}

func RandNum(min, max int32) int {
	if max <= min {
		return int(min)
	}
	return rand.Intn(int(max-min)) + int(min)
}

// SavePid 在程序执行的当前目录生成pid文件
func SavePid(f string) string {
	pid := fmt.Sprintf("%d", os.Getpid())
	file, err := os.OpenFile(f, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		log.Errorf("%v", err)
		return pid
	}

	writer := bufio.NewWriter(file)
	_, _ = writer.WriteString(pid)
	defer func(file *os.File, writer *bufio.Writer) {
		_ = writer.Flush()
		_ = file.Close()
	}(file, writer)

	return pid
}

// StartMonitor 开启pprof，监听请求
func StartMonitor(port int) {
	go func() {
		addr := strconv.Itoa(port + 1)
		log.Infof("[Pprof    ] http://localhost:%s/debug/pprof/", addr)
		if err := http.ListenAndServe(":"+addr, nil); err != nil {
			log.Infof("start pprof failed on %s", addr)
		}
	}()
}
