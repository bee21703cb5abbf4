//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"sort"
	"sync"
)

// DefaultMaxFileSize limits the size of MemFS files.
const DefaultMaxFileSize = 8 * 1024 * 1024

// MemFS implements an in-memory file system. Removed files stay
// accessible through their open handles until closed.
type MemFS struct {
	m           sync.Mutex
	files       map[string]*inode
	MaxFileSize uint64
}

type inode struct {
	m    sync.RWMutex
	data []byte
	max  uint64
}

var (
	_ FileSystem = &MemFS{}
	_ File       = &memFile{}
)

// NewMemFS creates an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{
		files:       make(map[string]*inode),
		MaxFileSize: DefaultMaxFileSize,
	}
}

// Create implements FileSystem.Create.
func (mfs *MemFS) Create(name string, size uint64) error {
	err := CheckName(name)
	if err != nil {
		return err
	}
	if size > mfs.MaxFileSize {
		return EFBIG
	}
	mfs.m.Lock()
	defer mfs.m.Unlock()

	_, ok := mfs.files[name]
	if ok {
		return EEXIST
	}
	mfs.files[name] = &inode{
		data: make([]byte, size),
		max:  mfs.MaxFileSize,
	}
	return nil
}

// Remove implements FileSystem.Remove.
func (mfs *MemFS) Remove(name string) error {
	mfs.m.Lock()
	defer mfs.m.Unlock()

	_, ok := mfs.files[name]
	if !ok {
		return ENOENT
	}
	delete(mfs.files, name)
	return nil
}

// Open implements FileSystem.Open.
func (mfs *MemFS) Open(name string) (File, error) {
	mfs.m.Lock()
	defer mfs.m.Unlock()

	ino, ok := mfs.files[name]
	if !ok {
		return nil, ENOENT
	}
	return &memFile{
		ino: ino,
	}, nil
}

// Names returns the sorted file names.
func (mfs *MemFS) Names() []string {
	mfs.m.Lock()
	defer mfs.m.Unlock()

	var result []string
	for name := range mfs.files {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

type memFile struct {
	ino    *inode
	pos    uint64
	closed bool
}

func (f *memFile) Read(b []byte) (int, error) {
	if f.closed {
		return 0, EBADF
	}
	f.ino.m.RLock()
	defer f.ino.m.RUnlock()

	if f.pos >= uint64(len(f.ino.data)) {
		return 0, nil
	}
	n := copy(b, f.ino.data[f.pos:])
	f.pos += uint64(n)
	return n, nil
}

// Write writes at the current position and grows the file up to its
// maximum size. Writes beyond the limit are short.
func (f *memFile) Write(b []byte) (int, error) {
	if f.closed {
		return 0, EBADF
	}
	f.ino.m.Lock()
	defer f.ino.m.Unlock()

	if f.pos >= f.ino.max {
		return 0, nil
	}
	end := f.pos + uint64(len(b))
	if end > f.ino.max {
		end = f.ino.max
	}
	if end > uint64(len(f.ino.data)) {
		data := make([]byte, end)
		copy(data, f.ino.data)
		f.ino.data = data
	}
	n := copy(f.ino.data[f.pos:end], b)
	f.pos += uint64(n)
	return n, nil
}

func (f *memFile) Seek(pos uint64) {
	f.pos = pos
}

func (f *memFile) Tell() uint64 {
	return f.pos
}

func (f *memFile) Length() uint64 {
	f.ino.m.RLock()
	defer f.ino.m.RUnlock()
	return uint64(len(f.ino.data))
}

func (f *memFile) Dup() (File, error) {
	if f.closed {
		return nil, EBADF
	}
	return &memFile{
		ino: f.ino,
		pos: f.pos,
	}, nil
}

func (f *memFile) Close() error {
	if f.closed {
		return EBADF
	}
	f.closed = true
	return nil
}
