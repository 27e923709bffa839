//go:build unix

package fsys

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	p9client "9fans.net/go/plan9/client"
	"github.com/fhs/mux9p"
	"golang.org/x/sys/unix"
)

// Post serves s as the service name in the plan9port namespace
// directory, where 9p(1) and client.MountService look for it. It returns
// the address served on and a Closer that stops serving.
func Post(name string, s *Server) (string, io.Closer, error) {
	ns := p9client.Namespace()
	if ns == "" {
		return "", nil, errors.New("fsys: no namespace directory")
	}
	if err := os.MkdirAll(ns, 0700); err != nil {
		return "", nil, fmt.Errorf("fsys: %w", err)
	}
	if err := checkNamespace(ns); err != nil {
		return "", nil, err
	}
	addr := filepath.Join(ns, name)
	if err := removeStale(addr); err != nil {
		return "", nil, err
	}

	p0, p1 := net.Pipe()
	go func() {
		if err := mux9p.Listen("unix", addr, p0, nil); err != nil {
			s.logger.Printf("fsys: 9P multiplexer failed: %v", err)
		}
	}()
	go func() {
		if err := s.Serve(p1); err != nil {
			s.logger.Printf("fsys: %v", err)
		}
	}()
	return addr, closers{p1, p0}, nil
}

// checkNamespace verifies that ns is a directory only we can use.
func checkNamespace(ns string) error {
	var st unix.Stat_t
	if err := unix.Stat(ns, &st); err != nil {
		return fmt.Errorf("fsys: can't stat namespace %s: %w", ns, err)
	}
	if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		return fmt.Errorf("fsys: namespace %s: %w", ns, ErrNotDir)
	}
	if int(st.Uid) != unix.Getuid() {
		return fmt.Errorf("fsys: namespace %s belongs to uid %d", ns, st.Uid)
	}
	if st.Mode&0077 != 0 {
		return fmt.Errorf("fsys: bad namespace %s: mode %#o", ns, st.Mode&0777)
	}
	return nil
}

// removeStale removes a socket left at addr by an earlier server.
func removeStale(addr string) error {
	fi, err := os.Lstat(addr)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fsys: %w", err)
	}
	if fi.Mode()&os.ModeSocket == 0 {
		return fmt.Errorf("fsys: %s exists and is not a socket", addr)
	}
	if conn, err := net.Dial("unix", addr); err == nil {
		conn.Close()
		return fmt.Errorf("fsys: %s is already being served", addr)
	}
	return os.Remove(addr)
}
