//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ulib

import (
	"bytes"
	"strings"
	"testing"

	"github.com/markkurossi/ukern/kernel"
)

func run(t *testing.T, input string, progs kernel.Programs,
	cmdline string) (string, int32) {

	t.Helper()
	out := new(bytes.Buffer)
	kern := kernel.New(&kernel.Params{
		Console: kernel.NewStreamConsole(strings.NewReader(input), out),
		Loader:  progs,
	})
	proc, err := kern.Spawn(cmdline)
	if err != nil {
		t.Fatalf("Spawn(%s): %v", cmdline, err)
	}
	proc.Run()
	return out.String(), proc.Wait()
}

func TestFiles(t *testing.T) {
	progs := kernel.Programs{
		"files": func(u *kernel.User) int {
			if !Create(u, "data", 0) {
				t.Errorf("Create failed")
			}
			fd := Open(u, "data")
			if fd < 2 {
				t.Errorf("Open: got %v", fd)
				return 1
			}
			if n := Write(u, fd, []byte("hello, world")); n != 12 {
				t.Errorf("Write: got %v, expected 12", n)
			}
			if Filesize(u, fd) != 12 || Tell(u, fd) != 12 {
				t.Errorf("Filesize=%v, Tell=%v", Filesize(u, fd), Tell(u, fd))
			}
			Seek(u, fd, 7)
			buf := make([]byte, 10)
			n := Read(u, fd, buf)
			if string(buf[:n]) != "world" {
				t.Errorf("Read: got %q, expected \"world\"", buf[:n])
			}
			Close(u, fd)
			if Read(u, fd, buf) != -1 {
				t.Errorf("Read after Close succeeded")
			}
			if !Remove(u, "data") || Open(u, "data") != -1 {
				t.Errorf("Remove failed")
			}
			return 0
		},
	}
	out, status := run(t, "", progs, "files")
	if status != 0 {
		t.Errorf("status %v, expected 0", status)
	}
	if out != "files: exit(0)\n" {
		t.Errorf("output: got %q", out)
	}
}

func TestConsole(t *testing.T) {
	progs := kernel.Programs{
		"upcase": func(u *kernel.User) int {
			buf := make([]byte, 64)
			n := Read(u, Stdin, buf)
			Puts(u, strings.ToUpper(string(buf[:n])))
			return n
		},
	}
	out, status := run(t, "abc\n", progs, "upcase")
	if status != 4 {
		t.Errorf("status %v, expected 4", status)
	}
	if out != "ABC\nupcase: exit(4)\n" {
		t.Errorf("output: got %q", out)
	}
}

func TestProcesses(t *testing.T) {
	progs := kernel.Programs{
		"echo": func(u *kernel.User) int {
			Puts(u, strings.Join(u.Args[1:], " ")+"\n")
			return len(u.Args) - 1
		},
	}
	progs["init"] = func(u *kernel.User) int {
		pid := Fork(u, "sh", func(u *kernel.User) int {
			Exec(u, "echo a b c")
			return -2
		})
		if pid < 0 {
			t.Errorf("Fork failed")
			return 1
		}
		status := Wait(u, pid)
		if Wait(u, pid) != -1 {
			t.Errorf("second Wait succeeded")
		}
		if Exec(u, "missing") != -1 {
			t.Errorf("Exec(missing) succeeded")
		}
		Exit(u, status+10)
		return 0
	}
	out, status := run(t, "", progs, "init")
	if status != 13 {
		t.Errorf("status %v, expected 13", status)
	}
	if out != "a b c\necho: exit(3)\ninit: exit(13)\n" {
		t.Errorf("output: got %q", out)
	}
}

func TestHalt(t *testing.T) {
	var off bool
	out := new(bytes.Buffer)
	kern := kernel.New(&kernel.Params{
		Console: kernel.NewStreamConsole(nil, out),
		Loader: kernel.Programs{
			"halt": func(u *kernel.User) int {
				Halt(u)
				return 1
			},
		},
		PowerOff: func() {
			off = true
		},
	})
	proc, err := kern.Spawn("halt")
	if err != nil {
		t.Fatal(err)
	}
	proc.Run()
	if !off {
		t.Errorf("machine not powered off")
	}
	if out.Len() != 0 {
		t.Errorf("output: got %q", out.String())
	}
}
