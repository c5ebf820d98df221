package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/aaronwong1989/goptp/comm"
	"github.com/aaronwong1989/goptp/comm/logging"
	"github.com/aaronwong1989/goptp/device"
)

var log = logging.GetDefaultLogger()

func main() {
	rand.Seed(time.Now().Unix()) // 随机种子

	var port int
	var multicore bool
	var confPath string
	flag.IntVar(&port, "port", 15740, "--port 15740")
	flag.BoolVar(&multicore, "multicore", true, "--multicore=true")
	flag.StringVar(&confPath, "conf", "", "--conf device.yaml, defaults to $"+device.ConfPathEnv)
	flag.Parse()

	conf, err := device.LoadConfig(confPath)
	if err != nil {
		log.Errorf("[Conf     ] %v", err)
		os.Exit(1)
	}
	if err = logging.Init(conf.Log); err != nil {
		log.Errorf("[Conf     ] %v", err)
		os.Exit(1)
	}
	log.Infof("[Conf     ] %+v", conf)
	log.Infof("current pid is %s.", comm.SavePid("ptpdevice.pid"))

	if err = device.StartServer(conf, port, multicore); err != nil {
		_ = log.Sync()
		os.Exit(1)
	}
}
