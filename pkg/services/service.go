package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type (
	Service interface {
		Init() error
		Run(ctx context.Context)
		Stop()
	}
	Services interface {
		AddService(service ...Service)
		Run(ctx context.Context) error
	}
	Manager struct {
		log      Logger
		services []Service
	}
)

func NewManager(log Logger) Services {
	return &Manager{log: log}
}

func (s *Manager) AddService(service ...Service) {
	for _, svc := range service {
		if svc != nil {
			s.services = append(s.services, svc)
		}
	}
}

// Run initialises and starts every service, then blocks until ctx is done
// or the process is interrupted. Services are stopped in reverse order.
func (s *Manager) Run(ctx context.Context) error {
	s.log.Info("going to start %d services", len(s.services))
	for count, svc := range s.services {
		if err := svc.Init(); err != nil {
			for i := count - 1; i >= 0; i-- {
				s.services[i].Stop()
			}
			return fmt.Errorf("init service %d (%T): %w", count, svc, err)
		}
		go svc.Run(ctx)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case <-c:
	case <-ctx.Done():
	}
	s.stop()

	return nil
}

func (s *Manager) stop() {
	s.log.Info("going to stop")
	for i := len(s.services) - 1; i >= 0; i-- {
		s.services[i].Stop()
	}
}
