//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"errors"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Descriptor table bounds. Descriptors StdinFD and StdoutFD denote
// the console and never have a table entry.
const (
	MaxFDs   = 64
	StdinFD  = 0
	StdoutFD = 1
	firstFD  = 2
)

// Descriptor table errors.
var (
	ErrExhausted = errors.New("descriptor table full")
	ErrNotFound  = errors.New("bad file descriptor")
)

// File implements an open file handle with a seek position. Read and
// Write transfer at the current position and advance it. Read returns
// 0 at the end of file.
type File interface {
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
	Seek(pos uint64)
	Tell() uint64
	Length() uint64
	Dup() (File, error)
	Close() error
}

// FDTable maps descriptors to exclusively owned file handles.
type FDTable struct {
	m     sync.Mutex
	slots [MaxFDs]File
}

// NewFDTable creates an empty descriptor table.
func NewFDTable() *FDTable {
	return new(FDTable)
}

// Allocate stores the handle into the lowest free slot and returns
// its descriptor. The table is unchanged on error.
func (tab *FDTable) Allocate(f File) (int, error) {
	if f == nil {
		return -1, EINVAL
	}
	tab.m.Lock()
	defer tab.m.Unlock()

	free := -1
	for fd := firstFD; fd < MaxFDs; fd++ {
		if tab.slots[fd] == f {
			return -1, EINVAL
		}
		if tab.slots[fd] == nil && free < 0 {
			free = fd
		}
	}
	if free < 0 {
		return -1, ErrExhausted
	}
	tab.slots[free] = f
	return free, nil
}

func (tab *FDTable) valid(fd int) bool {
	return fd >= firstFD && fd < MaxFDs
}

// Lookup returns the handle of the descriptor.
func (tab *FDTable) Lookup(fd int) (File, error) {
	if !tab.valid(fd) {
		return nil, ErrNotFound
	}
	tab.m.Lock()
	defer tab.m.Unlock()

	f := tab.slots[fd]
	if f == nil {
		return nil, ErrNotFound
	}
	return f, nil
}

// Release clears the descriptor slot and returns its handle. The
// handle is not closed.
func (tab *FDTable) Release(fd int) (File, error) {
	if !tab.valid(fd) {
		return nil, ErrNotFound
	}
	tab.m.Lock()
	defer tab.m.Unlock()

	f := tab.slots[fd]
	if f == nil {
		return nil, ErrNotFound
	}
	tab.slots[fd] = nil
	return f, nil
}

// Len returns the number of open descriptors.
func (tab *FDTable) Len() int {
	tab.m.Lock()
	defer tab.m.Unlock()

	var count int
	for _, f := range tab.slots {
		if f != nil {
			count++
		}
	}
	return count
}

// CloseAll releases and closes all handles.
func (tab *FDTable) CloseAll() error {
	tab.m.Lock()
	slots := tab.slots
	tab.slots = [MaxFDs]File{}
	tab.m.Unlock()

	var result error
	for _, f := range slots {
		if f == nil {
			continue
		}
		err := f.Close()
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}

// Dup creates a new table with duplicates of all handles. The
// duplicates are independent of the originals.
func (tab *FDTable) Dup() (*FDTable, error) {
	tab.m.Lock()
	defer tab.m.Unlock()

	result := NewFDTable()
	for fd, f := range tab.slots {
		if f == nil {
			continue
		}
		dup, err := f.Dup()
		if err != nil {
			result.CloseAll()
			return nil, err
		}
		result.slots[fd] = dup
	}
	return result, nil
}
