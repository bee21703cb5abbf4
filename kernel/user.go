//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"gvisor.dev/gvisor/pkg/hostarch"
)

// User is the user mode view of a running program image. Programs
// reach the kernel only through Syscall and Fork and access their own
// address space through Mem.
type User struct {
	proc    *Process
	scratch hostarch.Addr
	size    uint64

	// Args holds the program's argument vector.
	Args []string
}

// Syscall traps into the kernel with the syscall number and arguments
// and returns the value of the result slot.
func (u *User) Syscall(num Syscall, a0, a1, a2 uint64) uint64 {
	frame := &Frame{
		Num:  uint64(num),
		Args: [3]uint64{a0, a1, a2},
	}
	u.proc.kern.Dispatch(u.proc, frame)
	return frame.Ret
}

// Trap traps into the kernel with the frame.
func (u *User) Trap(frame *Frame) {
	u.proc.kern.Dispatch(u.proc, frame)
}

// Fork calls fork with the child's name at the user address name. The
// child runs the program child.
func (u *User) Fork(name uint64, child Program) uint64 {
	frame := &Frame{
		Num:  uint64(SysFork),
		Args: [3]uint64{name},
		Cont: child,
	}
	u.proc.kern.Dispatch(u.proc, frame)
	return frame.Ret
}

// Mem returns the program's address space.
func (u *User) Mem() *Memory {
	return u.proc.mem
}

// PID returns the ID of the program's process.
func (u *User) PID() PID {
	return u.proc.pid
}

// Scratch returns a writable user buffer of at least size bytes. The
// buffer is reused between calls.
func (u *User) Scratch(size uint64) (hostarch.Addr, error) {
	if size <= u.size && u.scratch != 0 {
		return u.scratch, nil
	}
	if size < hostarch.PageSize {
		size = hostarch.PageSize
	}
	addr, err := u.proc.mem.Alloc(size, true)
	if err != nil {
		return 0, err
	}
	u.scratch = addr
	u.size = size
	return addr, nil
}
