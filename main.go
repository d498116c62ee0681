package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/krantius/bully/bully"
	"github.com/krantius/bully/shared/logging"
)

func main() {
	cfg := loadConfig()

	id := bully.ProcessID{
		Priority:   cfg.Priority,
		Tiebreaker: cfg.Tiebreaker,
	}

	mbox := bully.NewMailbox(0)

	// Bind before registering so the registry gets the real port, which
	// matters when NODE_PORT is 0 and the OS picks one.
	listener, err := bully.NewListener(bully.Addr{Host: cfg.Host, Port: cfg.Port}, mbox)
	if err != nil {
		logging.Errorf("listen failed: %v", err)
		os.Exit(1)
	}

	dir, err := bully.Register(cfg.Registry, id, listener.Addr())
	if err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}

	go listener.Serve()

	node := bully.New(bully.Config{ID: id}, dir, mbox, bully.NewSender(id, dir))

	if cfg.APIPort != 0 {
		go func() {
			if err := node.ServeAPI(cfg.APIPort); err != nil {
				logging.Warningf("status api stopped: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	go node.Run(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	<-c

	cancel()
	listener.Close()
}
