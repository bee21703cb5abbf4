//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package ulib implements the user library system call wrappers for
// kernel programs. The wrappers marshal their arguments into the
// program's address space and trap into the kernel with raw syscall
// numbers.
package ulib

import (
	"github.com/markkurossi/ukern/kernel"
	"gvisor.dev/gvisor/pkg/hostarch"
)

// Standard descriptors.
const (
	Stdin  = kernel.StdinFD
	Stdout = kernel.StdoutFD
)

// CString stores s as a NUL-terminated string into the program's
// scratch buffer and returns its user address.
func CString(u *kernel.User, s string) uint64 {
	addr, err := u.Scratch(uint64(len(s) + 1))
	if err != nil {
		Exit(u, -1)
	}
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	if err := u.Mem().Write(addr, buf); err != nil {
		Exit(u, -1)
	}
	return uint64(addr)
}

func buffer(u *kernel.User, size int) hostarch.Addr {
	addr, err := u.Scratch(uint64(size))
	if err != nil {
		Exit(u, -1)
	}
	return addr
}

func sint(v uint64) int {
	return int(int32(v))
}

// Halt powers the machine off.
func Halt(u *kernel.User) {
	u.Syscall(kernel.SysHalt, 0, 0, 0)
}

// Exit terminates the program with status.
func Exit(u *kernel.User, status int) {
	u.Syscall(kernel.SysExit, uint64(int64(status)), 0, 0)
}

// Fork creates a child process named name that runs child. It returns
// the child's process ID or -1 on error.
func Fork(u *kernel.User, name string, child kernel.Program) int {
	return sint(u.Fork(CString(u, name), child))
}

// Exec replaces the program with the command line. It returns -1 if
// the program could not be loaded.
func Exec(u *kernel.User, cmdline string) int {
	return sint(u.Syscall(kernel.SysExec, CString(u, cmdline), 0, 0))
}

// Wait waits for the child process pid and returns its exit status.
func Wait(u *kernel.User, pid int) int {
	return sint(u.Syscall(kernel.SysWait, uint64(int64(pid)), 0, 0))
}

// Create creates the file name with the initial size.
func Create(u *kernel.User, name string, size uint32) bool {
	return u.Syscall(kernel.SysCreate, CString(u, name), uint64(size), 0) != 0
}

// Remove removes the file name.
func Remove(u *kernel.User, name string) bool {
	return u.Syscall(kernel.SysRemove, CString(u, name), 0, 0) != 0
}

// Open opens the file name and returns its descriptor or -1 on error.
func Open(u *kernel.User, name string) int {
	return sint(u.Syscall(kernel.SysOpen, CString(u, name), 0, 0))
}

// Filesize returns the size of the open file fd.
func Filesize(u *kernel.User, fd int) int {
	return sint(u.Syscall(kernel.SysFilesize, uint64(int64(fd)), 0, 0))
}

// Read reads up to len(b) bytes from fd into b.
func Read(u *kernel.User, fd int, b []byte) int {
	addr := buffer(u, len(b))
	n := sint(u.Syscall(kernel.SysRead, uint64(int64(fd)), uint64(addr),
		uint64(len(b))))
	if n > 0 {
		if err := u.Mem().Read(addr, b[:n]); err != nil {
			Exit(u, -1)
		}
	}
	return n
}

// Write writes b to fd.
func Write(u *kernel.User, fd int, b []byte) int {
	addr := buffer(u, len(b))
	if err := u.Mem().Write(addr, b); err != nil {
		Exit(u, -1)
	}
	return sint(u.Syscall(kernel.SysWrite, uint64(int64(fd)), uint64(addr),
		uint64(len(b))))
}

// Seek sets the position of fd.
func Seek(u *kernel.User, fd int, pos uint32) {
	u.Syscall(kernel.SysSeek, uint64(int64(fd)), uint64(pos), 0)
}

// Tell returns the position of fd.
func Tell(u *kernel.User, fd int) uint32 {
	return uint32(u.Syscall(kernel.SysTell, uint64(int64(fd)), 0, 0))
}

// Close closes fd.
func Close(u *kernel.User, fd int) {
	u.Syscall(kernel.SysClose, uint64(int64(fd)), 0, 0)
}

// Puts writes s to the console output.
func Puts(u *kernel.User, s string) int {
	return Write(u, Stdout, []byte(s))
}
