//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/atomic"
	"golang.org/x/sys/unix"
)

// HostFS implements a file system on top of a host directory. Files
// are regular files directly under the root directory.
type HostFS struct {
	root        string
	MaxFileSize uint64
}

var (
	_ FileSystem = &HostFS{}
	_ File       = &hostFile{}
)

// NewHostFS creates a file system rooted at the directory root.
func NewHostFS(root string) (*HostFS, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}
	return &HostFS{
		root:        root,
		MaxFileSize: DefaultMaxFileSize,
	}, nil
}

// MakePath creates the host path for the file name.
func (hfs *HostFS) MakePath(name string) (string, error) {
	err := CheckName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(hfs.root, name), nil
}

// Create implements FileSystem.Create.
func (hfs *HostFS) Create(name string, size uint64) error {
	if size > hfs.MaxFileSize {
		return EFBIG
	}
	path, err := hfs.MakePath(name)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path,
		os.O_RDWR|os.O_CREATE|os.O_EXCL|unix.O_NOFOLLOW, 0o644)
	if err != nil {
		return err
	}
	err = f.Truncate(int64(size))
	if err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// Remove implements FileSystem.Remove.
func (hfs *HostFS) Remove(name string) error {
	path, err := hfs.MakePath(name)
	if err != nil {
		return err
	}
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return EINVAL
	}
	return os.Remove(path)
}

// Open implements FileSystem.Open.
func (hfs *HostFS) Open(name string) (File, error) {
	path, err := hfs.MakePath(name)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR|unix.O_NOFOLLOW, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, EINVAL
	}
	h := &hostHandle{
		f:   f,
		max: hfs.MaxFileSize,
	}
	h.refs.Store(1)

	return &hostFile{
		h: h,
	}, nil
}

// hostHandle is the host file shared by the duplicates of a
// hostFile. Each duplicate has its own position.
type hostHandle struct {
	f    *os.File
	max  uint64
	refs atomic.Int32
}

type hostFile struct {
	h      *hostHandle
	pos    uint64
	closed bool
}

func (f *hostFile) Read(b []byte) (int, error) {
	if f.closed {
		return 0, EBADF
	}
	n, err := f.h.f.ReadAt(b, int64(f.pos))
	f.pos += uint64(n)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, err
	}
	return n, nil
}

func (f *hostFile) Write(b []byte) (int, error) {
	if f.closed {
		return 0, EBADF
	}
	if f.pos >= f.h.max {
		return 0, nil
	}
	if f.pos+uint64(len(b)) > f.h.max {
		b = b[:f.h.max-f.pos]
	}
	n, err := f.h.f.WriteAt(b, int64(f.pos))
	f.pos += uint64(n)
	return n, err
}

func (f *hostFile) Seek(pos uint64) {
	f.pos = pos
}

func (f *hostFile) Tell() uint64 {
	return f.pos
}

func (f *hostFile) Length() uint64 {
	info, err := f.h.f.Stat()
	if err != nil {
		return 0
	}
	return uint64(info.Size())
}

func (f *hostFile) Dup() (File, error) {
	if f.closed {
		return nil, EBADF
	}
	f.h.refs.Inc()
	return &hostFile{
		h:   f.h,
		pos: f.pos,
	}, nil
}

func (f *hostFile) Close() error {
	if f.closed {
		return EBADF
	}
	f.closed = true
	if f.h.refs.Dec() > 0 {
		return nil
	}
	return f.h.f.Close()
}
