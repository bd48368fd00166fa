package main

import (
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jasonlvhit/gocron"
	"github.com/qiniu/x/log"

	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/common/utils"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/service/task"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/service/web"
)

var (
	configFilePath = "ezy-jobs-interview.conf"
)

func main() {
	flag.StringVar(&configFilePath, "f", configFilePath, "configuration file to run the interview signaling server")
	flag.Parse()

	utils.InitConf(configFilePath)
	log.SetOutputLevel(utils.DefaultConf.DebugLevel)
	rand.Seed(time.Now().UnixNano())

	go func() {
		interviewTask, err := task.NewInterviewTask(&utils.DefaultConf)
		if err != nil {
			log.Errorf("failed to create interview sweep task, error %v", err)
			return
		}
		_ = gocron.Every(1).Hours().Do(interviewTask.TaskForCloseStuckInterviews)
		<-gocron.Start()
	}()

	r, err := web.NewRouter(&utils.DefaultConf)
	if err != nil {
		log.Fatalf("failed to create gin HTTP server, error %v", err)
	}

	errch := make(chan error, 1)
	go func() {
		errch <- r.Run(utils.DefaultConf.ListenAddr)
	}()

	qC := make(chan os.Signal, 1)
	signal.Notify(qC, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-qC:
		log.Info(s.String())
	case err = <-errch:
		log.Error("server stopped, error", err.Error())
	}
}
