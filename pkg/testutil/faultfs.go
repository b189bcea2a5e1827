package testutil

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmad-code/agent-teams/pkg/types"
)

// Op names a types.FS method for fault injection.
type Op string

const (
	OpAny      Op = "*"
	OpStat     Op = "stat"
	OpLstat    Op = "lstat"
	OpReadFile Op = "readfile"
	OpWrite    Op = "writefile"
	OpOpenFile Op = "openfile"
	OpChmod    Op = "chmod"
	OpRename   Op = "rename"
	OpMkdirAll Op = "mkdirall"
	OpReadDir  Op = "readdir"
	OpRemove   Op = "remove"
)

type fault struct {
	op     Op
	prefix bool
	path   string
	err    error
}

// FaultFS wraps a types.FS and fails configured operations. It also counts
// mutating calls so tests can assert that nothing was written.
type FaultFS struct {
	types.FS

	mu        sync.Mutex
	faults    []fault
	mutations int
}

// NewFaultFS wraps inner.
func NewFaultFS(inner types.FS) *FaultFS {
	return &FaultFS{FS: inner}
}

// WithError makes op fail with err for exactly path.
func (f *FaultFS) WithError(op Op, path string, err error) *FaultFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = append(f.faults, fault{op: op, path: filepath.Clean(path), err: err})
	return f
}

// WithErrorUnder makes op fail with err for path and everything below it.
// For Rename and OpenFile the path checked is the destination, so a temp
// file created next to a target also matches when the target's directory is
// given.
func (f *FaultFS) WithErrorUnder(op Op, dir string, err error) *FaultFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = append(f.faults, fault{op: op, prefix: true, path: filepath.Clean(dir), err: err})
	return f
}

// Mutations returns the number of mutating calls seen so far, including
// failed ones.
func (f *FaultFS) Mutations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mutations
}

func (f *FaultFS) check(op Op, name string, mutating bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if mutating {
		f.mutations++
	}
	name = filepath.Clean(name)
	for _, ft := range f.faults {
		if ft.op != OpAny && ft.op != op {
			continue
		}
		if name == ft.path || (ft.prefix && strings.HasPrefix(name, ft.path+string(filepath.Separator))) {
			return &fs.PathError{Op: string(op), Path: name, Err: ft.err}
		}
	}
	return nil
}

func (f *FaultFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.check(OpStat, name, false); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.check(OpLstat, name, false); err != nil {
		return nil, err
	}
	return f.FS.Lstat(name)
}

func (f *FaultFS) ReadFile(name string) ([]byte, error) {
	if err := f.check(OpReadFile, name, false); err != nil {
		return nil, err
	}
	return f.FS.ReadFile(name)
}

func (f *FaultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.check(OpReadDir, name, false); err != nil {
		return nil, err
	}
	return f.FS.ReadDir(name)
}

func (f *FaultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.check(OpWrite, name, true); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultFS) OpenFile(name string, flag int, perm fs.FileMode) (types.File, error) {
	if err := f.check(OpOpenFile, name, true); err != nil {
		return nil, err
	}
	return f.FS.OpenFile(name, flag, perm)
}

func (f *FaultFS) Chmod(name string, mode fs.FileMode) error {
	if err := f.check(OpChmod, name, true); err != nil {
		return err
	}
	return f.FS.Chmod(name, mode)
}

func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err := f.check(OpRename, newpath, true); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check(OpMkdirAll, path, true); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultFS) Remove(name string) error {
	if err := f.check(OpRemove, name, true); err != nil {
		return err
	}
	return f.FS.Remove(name)
}
