// Package fsys serves a handful of synthetic files over 9P2000 so that
// scripts can drive a running preview the way they drive acme.
package fsys

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"time"

	"9fans.net/go/plan9"
)

// Errors returned by the file server.
var (
	ErrPermission = os.ErrPermission
	ErrNotExist   = os.ErrNotExist
	ErrNotDir     = errors.New("not a directory")
)

// File is one entry of the served directory.
type File struct {
	Name string
	Perm plan9.Perm // some of 0600
}

// Handler supplies the contents of the files.
type Handler interface {
	// Read returns the contents of the named file. It is called when
	// the file is opened for reading; reads of that fid see this
	// snapshot.
	Read(name string) ([]byte, error)
	// Write delivers the data of one write to the named file.
	Write(name string, data []byte) error
}

// Server answers 9P requests for a flat directory of files.
type Server struct {
	files    []File
	h        Handler
	username string
	logger   *log.Logger
	clock    func() int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger directs diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithUser sets the owner reported for every file.
func WithUser(name string) Option {
	return func(s *Server) {
		s.username = name
	}
}

// WithClock sets the source of file times.
func WithClock(clock func() int64) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// New returns a Server for files whose contents come from h.
func New(files []File, h Handler, opts ...Option) *Server {
	s := &Server{
		files:    files,
		h:        h,
		username: getuser(),
		logger:   log.Default(),
		clock:    func() int64 { return time.Now().Unix() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

const (
	qroot  = 0 // Qid path of the directory; file i has path i+1
	noFile = -1
)

type fid struct {
	busy bool
	open bool
	mode uint8
	file int    // index into Server.files or noFile for the directory
	data []byte // snapshot read at open
}

// conn is the state of one 9P session.
type conn struct {
	s     *Server
	fids  map[uint32]*fid
	msize uint32
}

type fsfunc func(*conn, *plan9.Fcall, *plan9.Fcall) error

var fcall [plan9.Tmax]fsfunc

func init() {
	fcall[plan9.Tversion] = (*conn).version
	fcall[plan9.Tauth] = (*conn).auth
	fcall[plan9.Tflush] = (*conn).flush
	fcall[plan9.Tattach] = (*conn).attach
	fcall[plan9.Twalk] = (*conn).walk
	fcall[plan9.Topen] = (*conn).open
	fcall[plan9.Tcreate] = (*conn).create
	fcall[plan9.Tread] = (*conn).read
	fcall[plan9.Twrite] = (*conn).write
	fcall[plan9.Tclunk] = (*conn).clunk
	fcall[plan9.Tremove] = (*conn).remove
	fcall[plan9.Tstat] = (*conn).stat
	fcall[plan9.Twstat] = (*conn).wstat
}

// Serve answers the requests read from rw, one at a time, until rw is
// closed. It closes rw before returning.
func (s *Server) Serve(rw io.ReadWriteCloser) error {
	defer rw.Close()
	c := &conn{s: s, fids: make(map[uint32]*fid)}
	for {
		fc, err := plan9.ReadFcall(rw)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				return nil
			}
			return fmt.Errorf("fsys read: %w", err)
		}
		if err := plan9.WriteFcall(rw, c.handle(fc)); err != nil {
			return fmt.Errorf("fsys write: %w", err)
		}
	}
}

// handle computes the response to one request.
func (c *conn) handle(fc *plan9.Fcall) *plan9.Fcall {
	r := &plan9.Fcall{Type: fc.Type + 1, Tag: fc.Tag, Fid: fc.Fid}
	var err error
	if int(fc.Type) >= len(fcall) || fcall[fc.Type] == nil {
		err = fmt.Errorf("bad fcall type %d", fc.Type)
	} else {
		err = fcall[fc.Type](c, fc, r)
	}
	if err != nil {
		c.s.logger.Printf("fsys %v: %v", fc, err)
		return &plan9.Fcall{Type: plan9.Rerror, Tag: fc.Tag, Ename: err.Error()}
	}
	return r
}

// lookup returns the fid in use under id.
func (c *conn) lookup(id uint32) (*fid, error) {
	f, ok := c.fids[id]
	if !ok || !f.busy {
		return nil, errors.New("fid not in use")
	}
	return f, nil
}

func (c *conn) version(fc, r *plan9.Fcall) error {
	c.fids = make(map[uint32]*fid)
	c.msize = fc.Msize
	r.Msize = fc.Msize
	if fc.Version != "9P2000" {
		r.Version = "unknown"
		return nil
	}
	r.Version = "9P2000"
	return nil
}

func (c *conn) auth(fc, r *plan9.Fcall) error {
	return errors.New("authentication not required")
}

func (c *conn) flush(fc, r *plan9.Fcall) error {
	// Requests are answered in order; nothing is ever pending.
	return nil
}

func (c *conn) attach(fc, r *plan9.Fcall) error {
	if f, ok := c.fids[fc.Fid]; ok && f.busy {
		return errors.New("fid already in use")
	}
	if fc.Uname != c.s.username {
		c.s.logger.Printf("attach from uname %q does not match %q but allowing anyway",
			fc.Uname, c.s.username)
	}
	c.fids[fc.Fid] = &fid{busy: true, file: noFile}
	r.Qid = c.qid(noFile)
	return nil
}

func (c *conn) walk(fc, r *plan9.Fcall) error {
	f, err := c.lookup(fc.Fid)
	if err != nil {
		return err
	}
	if f.open {
		return errors.New("walk of open file")
	}
	if fc.Newfid != fc.Fid {
		if nf, ok := c.fids[fc.Newfid]; ok && nf.busy {
			return errors.New("newfid already in use")
		}
	}
	if len(fc.Wname) > plan9.MAXWELEM {
		return errors.New("name too long")
	}

	at := f.file
	for i, name := range fc.Wname {
		next, err := c.walk1(at, name)
		if err != nil {
			if i == 0 {
				return err
			}
			break
		}
		at = next
		r.Wqid = append(r.Wqid, c.qid(at))
	}
	if len(r.Wqid) < len(fc.Wname) {
		return nil
	}
	c.fids[fc.Newfid] = &fid{busy: true, file: at}
	return nil
}

// walk1 steps from file at to the element name.
func (c *conn) walk1(at int, name string) (int, error) {
	if at != noFile {
		return 0, ErrNotDir
	}
	if name == ".." || name == "." {
		return noFile, nil
	}
	for i, f := range c.s.files {
		if f.Name == name {
			return i, nil
		}
	}
	return 0, ErrNotExist
}

func (c *conn) open(fc, r *plan9.Fcall) error {
	f, err := c.lookup(fc.Fid)
	if err != nil {
		return err
	}
	if f.open {
		return errors.New("fid already open")
	}
	// Nothing can be truncated, so disregard it.
	mode := fc.Mode &^ (plan9.OTRUNC | plan9.OCEXEC)
	var m plan9.Perm
	switch mode {
	case plan9.OREAD:
		m = 0400
	case plan9.OWRITE:
		m = 0200
	case plan9.ORDWR:
		m = 0600
	default:
		return ErrPermission
	}
	if c.perm(f.file)&m != m {
		return ErrPermission
	}
	if f.file != noFile && m&0400 != 0 {
		data, err := c.s.h.Read(c.s.files[f.file].Name)
		if err != nil {
			return err
		}
		f.data = data
	}
	f.open = true
	f.mode = mode
	r.Qid = c.qid(f.file)
	r.Iounit = c.iounit()
	return nil
}

func (c *conn) create(fc, r *plan9.Fcall) error {
	return ErrPermission
}

func (c *conn) read(fc, r *plan9.Fcall) error {
	f, err := c.lookup(fc.Fid)
	if err != nil {
		return err
	}
	if !f.open || f.mode == plan9.OWRITE {
		return errors.New("fid not open for reading")
	}
	if f.file == noFile {
		clock := c.s.clock()
		DirRead(r, fc, func(i int) *plan9.Dir {
			if i >= len(c.s.files) {
				return nil
			}
			return c.dir(i, clock)
		})
		return nil
	}
	ReadBuffer(r, fc, f.data)
	return nil
}

func (c *conn) write(fc, r *plan9.Fcall) error {
	f, err := c.lookup(fc.Fid)
	if err != nil {
		return err
	}
	if !f.open || f.mode == plan9.OREAD {
		return errors.New("fid not open for writing")
	}
	if err := c.s.h.Write(c.s.files[f.file].Name, fc.Data); err != nil {
		return err
	}
	r.Count = uint32(len(fc.Data))
	return nil
}

func (c *conn) clunk(fc, r *plan9.Fcall) error {
	if _, err := c.lookup(fc.Fid); err != nil {
		return err
	}
	delete(c.fids, fc.Fid)
	return nil
}

func (c *conn) remove(fc, r *plan9.Fcall) error {
	// The fid is clunked even though the remove fails.
	delete(c.fids, fc.Fid)
	return ErrPermission
}

func (c *conn) stat(fc, r *plan9.Fcall) error {
	f, err := c.lookup(fc.Fid)
	if err != nil {
		return err
	}
	b, err := c.dir(f.file, c.s.clock()).Bytes()
	if err != nil {
		return err
	}
	if c.msize > 0 && len(b) > int(c.msize)-plan9.IOHDRSZ {
		// don't send partial directory entry
		return errors.New("msize too small")
	}
	r.Stat = b
	return nil
}

func (c *conn) wstat(fc, r *plan9.Fcall) error {
	return ErrPermission
}

func (c *conn) iounit() uint32 {
	if c.msize <= plan9.IOHDRSZ {
		return 0
	}
	return c.msize - plan9.IOHDRSZ
}

func (c *conn) perm(file int) plan9.Perm {
	if file == noFile {
		return plan9.DMDIR | 0500
	}
	return c.s.files[file].Perm
}

func (c *conn) qid(file int) plan9.Qid {
	if file == noFile {
		return plan9.Qid{Path: qroot, Type: plan9.QTDIR}
	}
	return plan9.Qid{Path: uint64(file + 1), Type: plan9.QTFILE}
}

// dir returns the directory entry for file.
func (c *conn) dir(file int, clock int64) *plan9.Dir {
	name := "."
	if file != noFile {
		name = c.s.files[file].Name
	}
	u := c.s.username
	return &plan9.Dir{
		Qid:   c.qid(file),
		Mode:  c.perm(file),
		Atime: uint32(clock),
		Mtime: uint32(clock),
		Name:  name,
		Uid:   u,
		Gid:   u,
		Muid:  u,
	}
}

func getuser() string {
	u, err := user.Current()
	if err != nil {
		return "none"
	}
	return u.Username
}
