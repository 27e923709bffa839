//go:build !unix

package fsys

import (
	"fmt"
	"io"
	"net"

	"github.com/fhs/mux9p"
)

// Post serves s on a local TCP port, there being no namespace directory
// to post name in. It returns the address served on and a Closer that
// stops serving.
func Post(name string, s *Server) (string, io.Closer, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return "", nil, fmt.Errorf("fsys: listen failed: %w", err)
	}
	p0, p1 := net.Pipe()
	go func() {
		if err := mux9p.Do(l, p0, nil); err != nil {
			s.logger.Printf("fsys: 9P multiplexer for %s failed: %v", name, err)
		}
	}()
	go func() {
		if err := s.Serve(p1); err != nil {
			s.logger.Printf("fsys: %v", err)
		}
	}()
	return l.Addr().String(), closers{l, p1, p0}, nil
}
