//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"bytes"

	"gvisor.dev/gvisor/pkg/hostarch"
)

// MaxUserString is the longest user string the kernel copies in. It
// matches the one-page scratch buffer the strings are copied into.
const MaxUserString = hostarch.PageSize - 1

// checkRange tells if the user range [addr, addr+size) is below
// KernelBase and backed by mapped pages. With write, all pages must
// also be writable. An empty range is checked as its first byte.
func checkRange(pt PageTable, addr, size uint64, write bool) bool {
	if addr == 0 {
		return false
	}
	if size == 0 {
		size = 1
	}
	ar, ok := hostarch.Addr(addr).ToRange(size)
	if !ok || ar.End > KernelBase {
		return false
	}
	for va := ar.Start.RoundDown(); va < ar.End; va += hostarch.PageSize {
		_, writable, ok := pt.Lookup(va)
		if !ok || (write && !writable) {
			return false
		}
	}
	return true
}

// validate terminates the process with status -1 unless the user
// range [addr, addr+size) is safe to access.
func (proc *Process) validate(addr, size uint64, write bool) {
	if !checkRange(proc.mem, addr, size, write) {
		proc.kern.log.Debug("bad user address",
			pidField(proc.pid), addrField(addr), sizeField(size))
		proc.kill()
	}
}

// copyIn validates the user range and returns a kernel copy of it.
func (proc *Process) copyIn(addr, size uint64) []byte {
	proc.validate(addr, size, false)
	buf := make([]byte, size)
	if proc.mem.Read(hostarch.Addr(addr), buf) != nil {
		proc.kill()
	}
	return buf
}

// copyOut stores data to the user address addr.
func (proc *Process) copyOut(addr uint64, data []byte) {
	proc.validate(addr, uint64(len(data)), true)
	if proc.mem.Write(hostarch.Addr(addr), data) != nil {
		proc.kill()
	}
}

// userString copies in the NUL-terminated string at addr. The pages
// are validated one by one while scanning for the terminator. Strings
// longer than MaxUserString bytes are truncated.
func (proc *Process) userString(addr uint64) string {
	if addr == 0 {
		proc.kill()
	}
	var buf []byte
	va := hostarch.Addr(addr)

	for len(buf) < MaxUserString {
		if va >= KernelBase {
			proc.kill()
		}
		frame, _, ok := proc.mem.Lookup(va)
		if !ok {
			proc.kill()
		}
		chunk := frame[va.PageOffset():]
		idx := bytes.IndexByte(chunk, 0)
		if idx >= 0 {
			buf = append(buf, chunk[:idx]...)
			break
		}
		buf = append(buf, chunk...)
		va = va.RoundDown() + hostarch.PageSize
	}
	if len(buf) > MaxUserString {
		buf = buf[:MaxUserString]
	}
	return string(buf)
}
