package main

import (
	"bufio"
	"context"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iamdanielyin/dbrec"
)

type Server struct {
	socketPath  string
	idleTimeout time.Duration
	ns          *dbrec.Namespace
	log         *logrus.Logger

	listener net.Listener
	wg       sync.WaitGroup
}

func NewServer(socketPath string, ns *dbrec.Namespace, log *logrus.Logger) *Server {
	if ns == nil {
		ns = dbrec.DefaultNamespace
	}
	return &Server{
		socketPath:  socketPath,
		idleTimeout: 5 * time.Minute,
		ns:          ns,
		log:         log,
	}
}

// Listen removes a stale socket file and starts listening.
func (s *Server) Listen() error {
	if _, err := os.Stat(s.socketPath); err == nil {
		if err := os.Remove(s.socketPath); err != nil {
			return errors.Wrap(err, "dbrecd: remove stale socket")
		}
	}
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return errors.Wrapf(err, "dbrecd: listen on %s", s.socketPath)
	}
	s.listener = listener
	s.log.WithField("socket", s.socketPath).Info("dbrecd: listening")
	return nil
}

// Serve accepts connections until ctx is done, then waits for open
// connections and removes the socket file.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				break
			}
			s.log.WithError(err).Warn("dbrecd: accept failed")
			continue
		}
		s.wg.Add(1)
		go s.handleConnection(ctx, conn)
	}

	s.wg.Wait()
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		s.log.WithError(err).Warn("dbrecd: remove socket failed")
	}
	s.log.Info("dbrecd: stopped")
	return nil
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	reader := bufio.NewReader(conn)
	writer := bufio.NewWriter(conn)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(s.idleTimeout))
		if ctx.Err() != nil {
			return
		}

		var args dbrec.AioArgs
		if err := readFrame(reader, &args); err != nil {
			var ne net.Error
			switch {
			case errors.Is(err, io.EOF):
			case errors.As(err, &ne) && ne.Timeout():
				s.log.Debug("dbrecd: connection idle")
			default:
				s.log.WithError(err).Warn("dbrecd: read request failed")
			}
			return
		}

		reply := s.ns.HandleAio(&args)
		s.log.WithFields(logrus.Fields{
			"action": args.Action,
			"code":   reply.Code,
			"rid":    reply.Rid,
		}).Debug("dbrecd: handled")

		if err := writeFrame(writer, reply); err != nil {
			s.log.WithError(err).Warn("dbrecd: write reply failed")
			return
		}
		if err := writer.Flush(); err != nil {
			s.log.WithError(err).Warn("dbrecd: flush failed")
			return
		}
	}
}
