//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"gvisor.dev/gvisor/pkg/hostarch"
)

type testEnv struct {
	kern  *Kernel
	out   *bytes.Buffer
	fs    *MemFS
	progs Programs
}

func newTestEnv(input string) *testEnv {
	return newTestEnvParams(input, &Params{})
}

func newTestEnvParams(input string, params *Params) *testEnv {
	env := &testEnv{
		out:   new(bytes.Buffer),
		fs:    NewMemFS(),
		progs: make(Programs),
	}
	if params.FileSystem == nil {
		params.FileSystem = env.fs
	}
	params.Console = NewStreamConsole(strings.NewReader(input), env.out)
	params.Loader = env.progs
	env.kern = New(params)
	return env
}

// run spawns the program and runs it to completion on the calling
// goroutine.
func (env *testEnv) run(t *testing.T, name string, prog Program) (
	*Process, int32) {

	t.Helper()
	env.progs[name] = prog
	proc, err := env.kern.Spawn(name)
	if err != nil {
		t.Fatalf("Spawn(%s): %v", name, err)
	}
	proc.Run()
	return proc, proc.Wait()
}

// cstr stores s as a NUL-terminated string into user memory.
func cstr(u *User, s string) uint64 {
	addr, err := u.Mem().Alloc(uint64(len(s)+1), true)
	if err != nil {
		panic(err)
	}
	if err := u.Mem().Write(addr, append([]byte(s), 0)); err != nil {
		panic(err)
	}
	return uint64(addr)
}

// ubuf allocates a user buffer holding data.
func ubuf(u *User, data []byte) uint64 {
	addr, err := u.Mem().Alloc(uint64(len(data)), true)
	if err != nil {
		panic(err)
	}
	if err := u.Mem().Write(addr, data); err != nil {
		panic(err)
	}
	return uint64(addr)
}

// uread returns size bytes from user memory.
func uread(u *User, addr uint64, size int) []byte {
	buf := make([]byte, size)
	if err := u.Mem().Read(hostarch.Addr(addr), buf); err != nil {
		panic(err)
	}
	return buf
}

func sys(u *User, call Syscall, args ...uint64) int64 {
	var a [3]uint64
	copy(a[:], args)
	return int64(int32(u.Syscall(call, a[0], a[1], a[2])))
}

// trackingFS counts the live file handles of a MemFS.
type trackingFS struct {
	*MemFS
	m    sync.Mutex
	live int
}

func newTrackingFS() *trackingFS {
	return &trackingFS{
		MemFS: NewMemFS(),
	}
}

func (tfs *trackingFS) Open(name string) (File, error) {
	f, err := tfs.MemFS.Open(name)
	if err != nil {
		return nil, err
	}
	tfs.m.Lock()
	tfs.live++
	tfs.m.Unlock()
	return &trackedFile{File: f, tfs: tfs}, nil
}

func (tfs *trackingFS) Live() int {
	tfs.m.Lock()
	defer tfs.m.Unlock()
	return tfs.live
}

type trackedFile struct {
	File
	tfs *trackingFS
}

func (f *trackedFile) Dup() (File, error) {
	dup, err := f.File.Dup()
	if err != nil {
		return nil, err
	}
	f.tfs.m.Lock()
	f.tfs.live++
	f.tfs.m.Unlock()
	return &trackedFile{File: dup, tfs: f.tfs}, nil
}

func (f *trackedFile) Close() error {
	f.tfs.m.Lock()
	f.tfs.live--
	f.tfs.m.Unlock()
	return f.File.Close()
}
