//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"sync"

	"gvisor.dev/gvisor/pkg/hostarch"
)

// User address space layout.
const (
	UserBase   hostarch.Addr = 0x400000
	KernelBase hostarch.Addr = 0x8004000000
)

// PageTable resolves user virtual pages into their backing frames.
type PageTable interface {
	// Lookup returns the frame of the page containing va and tells
	// if the page is writable. The ok is false for unmapped pages.
	Lookup(va hostarch.Addr) (frame []byte, writable bool, ok bool)
}

var _ PageTable = &Memory{}

// Memory implements a sparse, page-mapped user address space.
type Memory struct {
	m     sync.Mutex
	pages map[hostarch.Addr]*page
	next  hostarch.Addr
}

type page struct {
	data     []byte
	writable bool
}

// NewMemory creates an empty address space.
func NewMemory() *Memory {
	return &Memory{
		pages: make(map[hostarch.Addr]*page),
		next:  UserBase,
	}
}

func userRange(va hostarch.Addr, length uint64) (hostarch.AddrRange, error) {
	if length == 0 {
		length = 1
	}
	ar, ok := va.ToRange(length)
	if !ok || va == 0 || ar.End > KernelBase {
		return ar, EFAULT
	}
	return ar, nil
}

// Map maps the pages spanning [va, va+length). Pages already mapped
// keep their contents and get the new protection.
func (mem *Memory) Map(va hostarch.Addr, length uint64, writable bool) error {
	ar, err := userRange(va, length)
	if err != nil {
		return err
	}
	mem.m.Lock()
	defer mem.m.Unlock()

	for pa := ar.Start.RoundDown(); pa < ar.End; pa += hostarch.PageSize {
		pg, ok := mem.pages[pa]
		if ok {
			pg.writable = writable
			continue
		}
		mem.pages[pa] = &page{
			data:     make([]byte, hostarch.PageSize),
			writable: writable,
		}
	}
	return nil
}

// Protect changes the protection of the mapped pages spanning
// [va, va+length).
func (mem *Memory) Protect(va hostarch.Addr, length uint64,
	writable bool) error {

	ar, err := userRange(va, length)
	if err != nil {
		return err
	}
	mem.m.Lock()
	defer mem.m.Unlock()

	for pa := ar.Start.RoundDown(); pa < ar.End; pa += hostarch.PageSize {
		pg, ok := mem.pages[pa]
		if !ok {
			return EFAULT
		}
		pg.writable = writable
	}
	return nil
}

// Unmap removes the pages spanning [va, va+length).
func (mem *Memory) Unmap(va hostarch.Addr, length uint64) error {
	ar, err := userRange(va, length)
	if err != nil {
		return err
	}
	mem.m.Lock()
	defer mem.m.Unlock()

	for pa := ar.Start.RoundDown(); pa < ar.End; pa += hostarch.PageSize {
		delete(mem.pages, pa)
	}
	return nil
}

// Alloc maps a fresh region of at least length bytes and returns its
// address. Regions are separated by an unmapped guard page.
func (mem *Memory) Alloc(length uint64, writable bool) (hostarch.Addr, error) {
	if length == 0 {
		length = 1
	}
	mem.m.Lock()
	addr := mem.next
	end, ok := addr.AddLength(length)
	if ok {
		end, ok = end.RoundUp()
	}
	if !ok || end+hostarch.PageSize > KernelBase {
		mem.m.Unlock()
		return 0, ENOMEM
	}
	mem.next = end + hostarch.PageSize
	mem.m.Unlock()

	err := mem.Map(addr, length, writable)
	if err != nil {
		return 0, err
	}
	return addr, nil
}

// Lookup implements PageTable.Lookup.
func (mem *Memory) Lookup(va hostarch.Addr) ([]byte, bool, bool) {
	if va >= KernelBase {
		return nil, false, false
	}
	mem.m.Lock()
	defer mem.m.Unlock()

	pg, ok := mem.pages[va.RoundDown()]
	if !ok {
		return nil, false, false
	}
	return pg.data, pg.writable, true
}

// Read copies len(b) bytes starting at addr into b.
func (mem *Memory) Read(addr hostarch.Addr, b []byte) error {
	return mem.copy(addr, b, false)
}

// Write copies data into the address space starting at addr. All
// touched pages must be writable.
func (mem *Memory) Write(addr hostarch.Addr, data []byte) error {
	return mem.copy(addr, data, true)
}

func (mem *Memory) copy(addr hostarch.Addr, b []byte, write bool) error {
	_, err := userRange(addr, uint64(len(b)))
	if err != nil {
		return err
	}
	mem.m.Lock()
	defer mem.m.Unlock()

	for len(b) > 0 {
		pg, ok := mem.pages[addr.RoundDown()]
		if !ok || (write && !pg.writable) {
			return EFAULT
		}
		off := addr.PageOffset()
		var n int
		if write {
			n = copy(pg.data[off:], b)
		} else {
			n = copy(b, pg.data[off:])
		}
		b = b[n:]
		addr += hostarch.Addr(n)
	}
	return nil
}

// Clone creates a deep copy of the address space.
func (mem *Memory) Clone() *Memory {
	mem.m.Lock()
	defer mem.m.Unlock()

	result := &Memory{
		pages: make(map[hostarch.Addr]*page, len(mem.pages)),
		next:  mem.next,
	}
	for va, pg := range mem.pages {
		data := make([]byte, len(pg.data))
		copy(data, pg.data)
		result.pages[va] = &page{
			data:     data,
			writable: pg.writable,
		}
	}
	return result
}

// NumPages returns the number of mapped pages.
func (mem *Memory) NumPages() int {
	mem.m.Lock()
	defer mem.m.Unlock()
	return len(mem.pages)
}
