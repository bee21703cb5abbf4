//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"fmt"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// PID defines process IDs.
type PID int32

// Process defines a kernel process.
type Process struct {
	m        sync.Mutex
	c        *sync.Cond
	kern     *Kernel
	pid      PID
	name     string
	args     []string
	parent   *Process
	children map[PID]*Process
	state    ProcState
	prog     Program
	mem      *Memory
	fds      *FDTable
	exitVal  int32
	dying    bool
	errno    Errno
	nsyscall atomic.Uint64
}

// ProcState defines process states.
type ProcState int

// Process states.
const (
	SIDL ProcState = iota
	SRUN
	SZOMB
	SDEAD
)

var stateNames = map[ProcState]string{
	SIDL:  "idl",
	SRUN:  "run",
	SZOMB: "zomb",
	SDEAD: "dead",
}

func (st ProcState) String() string {
	name, ok := stateNames[st]
	if ok {
		return name
	}
	return fmt.Sprintf("{ProcState %d}", st)
}

// unwind values are panicked to leave the running program image.
type unwind int

const (
	unwindExit unwind = iota
	unwindExec
	unwindHalt
)

var unwindNames = map[unwind]string{
	unwindExit: "exit",
	unwindExec: "exec",
	unwindHalt: "halt",
}

func (u unwind) String() string {
	name, ok := unwindNames[u]
	if ok {
		return name
	}
	return fmt.Sprintf("{unwind %d}", int(u))
}

// PID returns the process ID.
func (proc *Process) PID() PID {
	return proc.pid
}

// Name returns the process name.
func (proc *Process) Name() string {
	proc.m.Lock()
	defer proc.m.Unlock()
	return proc.name
}

// FDs returns the process's descriptor table.
func (proc *Process) FDs() *FDTable {
	return proc.fds
}

// State returns the process state.
func (proc *Process) State() ProcState {
	proc.m.Lock()
	defer proc.m.Unlock()
	return proc.state
}

// ExitStatus returns the process exit status.
func (proc *Process) ExitStatus() int32 {
	proc.m.Lock()
	defer proc.m.Unlock()
	return proc.exitVal
}

// NumSyscalls returns the number of syscalls the process has made.
func (proc *Process) NumSyscalls() uint64 {
	return proc.nsyscall.Load()
}

// SetState sets the process state.
func (proc *Process) SetState(st ProcState) {
	proc.m.Lock()
	proc.state = st
	proc.m.Unlock()
	proc.c.Broadcast()
}

// WaitState waits until the process reaches the specified state.
func (proc *Process) WaitState(st ProcState) {
	proc.m.Lock()
	for proc.state < st {
		proc.c.Wait()
	}
	proc.m.Unlock()
}

// Wait waits until the process has terminated and returns its exit
// status.
func (proc *Process) Wait() int32 {
	proc.WaitState(SZOMB)
	return proc.ExitStatus()
}

// Run runs the process until it exits or the machine halts.
func (proc *Process) Run() {
	proc.SetState(SRUN)
	proc.kern.log.Debug("process started",
		pidField(proc.pid), nameField(proc.Name()))

	for {
		u := proc.runImage()
		if u != unwindExec {
			proc.kern.log.Debug("process ended", pidField(proc.pid),
				zap.Stringer("reason", u))
			break
		}
		proc.kern.log.Debug("exec", pidField(proc.pid),
			nameField(proc.Name()))
	}
	proc.teardown()
}

// runImage runs the current program image and returns the way it
// ended. Panics other than unwinds are faults of the program and
// terminate the process with status -1.
func (proc *Process) runImage() (result unwind) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		u, ok := r.(unwind)
		if ok {
			result = u
			return
		}
		proc.kern.log.Error("program fault", pidField(proc.pid),
			zap.Any("panic", r))
		if !proc.dying {
			proc.terminate(-1)
		}
		result = unwindExit
	}()

	status := proc.prog(&User{
		proc: proc,
		Args: proc.args,
	})
	if !proc.dying {
		proc.terminate(int32(status))
	}
	return unwindExit
}

// terminate stores the exit status and emits the termination record.
func (proc *Process) terminate(status int32) {
	proc.m.Lock()
	proc.exitVal = status
	proc.dying = true
	name := proc.name
	proc.m.Unlock()

	proc.kern.console.Putbuf([]byte(fmt.Sprintf("%s: exit(%d)\n",
		name, status)))
	proc.ktraceExit(status)
}

// exit terminates the process with status. It does not return.
func (proc *Process) exit(status int32) {
	proc.terminate(status)
	panic(unwindExit)
}

// kill terminates the process for a fatal protocol violation. It does
// not return.
func (proc *Process) kill() {
	proc.exit(-1)
}

// teardown closes the process's descriptors and makes it a zombie.
func (proc *Process) teardown() {
	var err error
	proc.kern.fslock.Do(func() {
		err = proc.fds.CloseAll()
	})
	if err != nil {
		proc.kern.log.Warn("closing descriptors failed",
			pidField(proc.pid), zap.Error(err))
	}
	proc.SetState(SZOMB)
	proc.kern.zombie(proc)
}
