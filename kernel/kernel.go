//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Kernel implements the system call core and the process manager.
type Kernel struct {
	params  Params
	log     *zap.Logger
	fslock  *FSLock
	fs      FileSystem
	console Console
	loader  Loader
	traceM  sync.Mutex
	m       sync.Mutex
	nextPID atomic.Int32
	procs   map[PID]*Process
	halted  atomic.Bool
	haltC   chan struct{}
}

// New creates a new kernel. Unset parameters get their defaults: an
// in-memory file system, a console on the standard output, and an
// empty program set.
func New(params *Params) *Kernel {
	kern := &Kernel{
		fslock: new(FSLock),
		procs:  make(map[PID]*Process),
		haltC:  make(chan struct{}),
	}
	if params != nil {
		kern.params = *params
	}
	if kern.params.MaxProcesses <= 0 {
		kern.params.MaxProcesses = DefaultMaxProcesses
	}
	if kern.params.TraceOut == nil {
		kern.params.TraceOut = os.Stdout
	}

	kern.log = kern.params.Logger
	if kern.log == nil {
		kern.log = zap.NewNop()
	}
	kern.fs = kern.params.FileSystem
	if kern.fs == nil {
		kern.fs = NewMemFS()
	}
	kern.console = kern.params.Console
	if kern.console == nil {
		kern.console = NewStreamConsole(nil, os.Stdout)
	}
	kern.loader = kern.params.Loader
	if kern.loader == nil {
		kern.loader = Programs{}
	}

	return kern
}

// FSLock returns the global file system lock.
func (kern *Kernel) FSLock() *FSLock {
	return kern.fslock
}

// Spawn creates a new process for the command line. The process is
// started with its Run method.
func (kern *Kernel) Spawn(cmdline string) (*Process, error) {
	name, args, err := ParseCommand(cmdline)
	if err != nil {
		return nil, err
	}
	prog, err := kern.loader.Load(name)
	if err != nil {
		return nil, err
	}
	return kern.createProcess(name, args, nil, prog, NewMemory(),
		NewFDTable())
}

func (kern *Kernel) createProcess(name string, args []string,
	parent *Process, prog Program, mem *Memory, fds *FDTable) (
	*Process, error) {

	kern.m.Lock()
	defer kern.m.Unlock()

	if len(kern.procs) >= kern.params.MaxProcesses {
		return nil, fmt.Errorf("process limit %d reached: %w",
			kern.params.MaxProcesses, EAGAIN)
	}

	proc := &Process{
		kern:     kern,
		pid:      PID(kern.nextPID.Inc()),
		name:     name,
		args:     args,
		parent:   parent,
		children: make(map[PID]*Process),
		prog:     prog,
		mem:      mem,
		fds:      fds,
	}
	proc.c = sync.NewCond(&proc.m)

	kern.procs[proc.pid] = proc
	if parent != nil {
		parent.children[proc.pid] = proc
	}

	return proc, nil
}

// fork creates a child of parent named name. The child gets a copy of
// the parent's address space and descriptors and runs cont.
func (kern *Kernel) fork(parent *Process, name string, cont Program) (
	*Process, error) {

	if cont == nil {
		cont = func(u *User) int {
			return 0
		}
	}

	var fds *FDTable
	var err error
	kern.fslock.Do(func() {
		fds, err = parent.fds.Dup()
	})
	if err != nil {
		return nil, err
	}

	child, err := kern.createProcess(name, []string{name}, parent, cont,
		parent.mem.Clone(), fds)
	if err != nil {
		kern.fslock.Do(func() {
			fds.CloseAll()
		})
		return nil, err
	}
	kern.log.Debug("fork", pidField(parent.pid),
		zap.Int32("child", int32(child.pid)), nameField(name))

	go child.Run()

	return child, nil
}

// exec replaces the program image of proc. The old image is intact if
// the new image cannot be loaded.
func (kern *Kernel) exec(proc *Process, cmdline string) error {
	name, args, err := ParseCommand(cmdline)
	if err != nil {
		return err
	}
	prog, err := kern.loader.Load(name)
	if err != nil {
		kern.log.Debug("exec failed", pidField(proc.pid), zap.Error(err))
		return err
	}

	proc.m.Lock()
	proc.name = name
	proc.args = args
	proc.prog = prog
	proc.mem = NewMemory()
	proc.m.Unlock()

	return nil
}

// wait waits for the child pid of parent to terminate, reaps it, and
// returns its exit status. A child can be waited for only once.
func (kern *Kernel) wait(parent *Process, pid PID) (int32, error) {
	kern.m.Lock()
	child, ok := parent.children[pid]
	if ok {
		delete(parent.children, pid)
	}
	kern.m.Unlock()

	if !ok {
		return -1, ECHILD
	}
	status := child.Wait()
	kern.reap(child)

	return status, nil
}

// zombie is called when proc has terminated. Its children are
// orphaned, and the process is reaped if nobody can wait for it.
func (kern *Kernel) zombie(proc *Process) {
	var reap []*Process

	kern.m.Lock()
	for pid, child := range proc.children {
		child.parent = nil
		if child.State() >= SZOMB {
			reap = append(reap, child)
		}
		delete(proc.children, pid)
	}
	if proc.parent == nil {
		reap = append(reap, proc)
	}
	kern.m.Unlock()

	for _, p := range reap {
		kern.reap(p)
	}
}

func (kern *Kernel) reap(proc *Process) {
	kern.m.Lock()
	delete(kern.procs, proc.pid)
	kern.m.Unlock()

	proc.SetState(SDEAD)
}

// GetProcess returns the live or zombie process by its ID.
func (kern *Kernel) GetProcess(pid PID) (*Process, bool) {
	kern.m.Lock()
	defer kern.m.Unlock()

	proc, ok := kern.procs[pid]
	return proc, ok
}

// Processes returns the processes sorted by their IDs.
func (kern *Kernel) Processes() []*Process {
	kern.m.Lock()
	defer kern.m.Unlock()

	var result []*Process
	for _, proc := range kern.procs {
		result = append(result, proc)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].pid < result[j].pid
	})
	return result
}

// Halt powers the machine off. All later syscalls terminate their
// callers.
func (kern *Kernel) Halt() {
	if !kern.halted.CAS(false, true) {
		return
	}
	kern.log.Info("powering off")
	if kern.params.PowerOff != nil {
		kern.params.PowerOff()
	}
	close(kern.haltC)
}

// Halted returns a channel that is closed when the machine halts.
func (kern *Kernel) Halted() <-chan struct{} {
	return kern.haltC
}
