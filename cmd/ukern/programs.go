//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/markkurossi/ukern/kernel"
	"github.com/markkurossi/ukern/ulib"
)

var programs = kernel.Programs{
	"cat":      cat,
	"cp":       cp,
	"echo":     echo,
	"forktest": forktest,
	"halt":     halt,
	"ps":       ps,
	"rm":       rm,
	"sh":       sh,
	"touch":    touch,
	"wc":       wc,
}

func errorf(u *kernel.User, format string, a ...interface{}) int {
	ulib.Puts(u, fmt.Sprintf("%s: %s\n", u.Args[0], fmt.Sprintf(format, a...)))
	return 1
}

func echo(u *kernel.User) int {
	ulib.Puts(u, strings.Join(u.Args[1:], " ")+"\n")
	return 0
}

func copyFD(u *kernel.User, dst, src int) int {
	var buf [512]byte
	for {
		n := ulib.Read(u, src, buf[:])
		if n <= 0 {
			return n
		}
		if ulib.Write(u, dst, buf[:n]) != n {
			return -1
		}
	}
}

func cat(u *kernel.User) int {
	if len(u.Args) == 1 {
		copyFD(u, ulib.Stdout, ulib.Stdin)
		return 0
	}
	for _, name := range u.Args[1:] {
		fd := ulib.Open(u, name)
		if fd < 0 {
			return errorf(u, "%s: cannot open", name)
		}
		copyFD(u, ulib.Stdout, fd)
		ulib.Close(u, fd)
	}
	return 0
}

func cp(u *kernel.User) int {
	if len(u.Args) != 3 {
		return errorf(u, "usage: cp src dst")
	}
	src := ulib.Open(u, u.Args[1])
	if src < 0 {
		return errorf(u, "%s: cannot open", u.Args[1])
	}
	if !ulib.Create(u, u.Args[2], 0) {
		return errorf(u, "%s: cannot create", u.Args[2])
	}
	dst := ulib.Open(u, u.Args[2])
	if dst < 0 {
		return errorf(u, "%s: cannot open", u.Args[2])
	}
	if copyFD(u, dst, src) < 0 {
		return errorf(u, "%s: write failed", u.Args[2])
	}
	ulib.Close(u, src)
	ulib.Close(u, dst)
	return 0
}

func rm(u *kernel.User) int {
	for _, name := range u.Args[1:] {
		if !ulib.Remove(u, name) {
			return errorf(u, "%s: cannot remove", name)
		}
	}
	return 0
}

func touch(u *kernel.User) int {
	if len(u.Args) < 2 || len(u.Args) > 3 {
		return errorf(u, "usage: touch name [size]")
	}
	var size uint64
	if len(u.Args) == 3 {
		var err error
		size, err = strconv.ParseUint(u.Args[2], 10, 32)
		if err != nil {
			return errorf(u, "invalid size: %v", err)
		}
	}
	if !ulib.Create(u, u.Args[1], uint32(size)) {
		return errorf(u, "%s: cannot create", u.Args[1])
	}
	return 0
}

func wc(u *kernel.User) int {
	fd := ulib.Stdin
	if len(u.Args) > 1 {
		fd = ulib.Open(u, u.Args[1])
		if fd < 0 {
			return errorf(u, "%s: cannot open", u.Args[1])
		}
	}
	var lines, words, chars int
	var inWord bool
	var buf [512]byte
	for {
		n := ulib.Read(u, fd, buf[:])
		if n <= 0 {
			break
		}
		for _, c := range buf[:n] {
			chars++
			switch c {
			case '\n':
				lines++
				inWord = false
			case ' ', '\t', '\r':
				inWord = false
			default:
				if !inWord {
					words++
				}
				inWord = true
			}
		}
	}
	ulib.Puts(u, fmt.Sprintf("%7d %7d %7d\n", lines, words, chars))
	return 0
}

func halt(u *kernel.User) int {
	ulib.Halt(u)
	return 0
}

// consoleWriter implements io.Writer on the program's console output.
type consoleWriter struct {
	u *kernel.User
}

func (w *consoleWriter) Write(p []byte) (int, error) {
	n := ulib.Write(w.u, ulib.Stdout, p)
	if n < 0 {
		return 0, kernel.EBADF
	}
	return n, nil
}

func ps(u *kernel.User) int {
	kern.PrintProcesses(&consoleWriter{u: u})
	return 0
}

func forktest(u *kernel.User) int {
	count := 5
	if len(u.Args) > 1 {
		v, err := strconv.Atoi(u.Args[1])
		if err != nil {
			return errorf(u, "invalid count: %v", err)
		}
		count = v
	}
	var pids []int
	for i := 0; i < count; i++ {
		status := i
		pid := ulib.Fork(u, fmt.Sprintf("child%d", i),
			func(u *kernel.User) int {
				return status
			})
		if pid < 0 {
			errorf(u, "fork %d failed", i)
			break
		}
		pids = append(pids, pid)
	}
	var sum int
	for _, pid := range pids {
		sum += ulib.Wait(u, pid)
	}
	ulib.Puts(u, fmt.Sprintf("forktest: %d children, status sum %d\n",
		len(pids), sum))
	return 0
}

func readLine(u *kernel.User) (string, bool) {
	var sb strings.Builder
	var buf [1]byte
	for {
		if ulib.Read(u, ulib.Stdin, buf[:]) != 1 {
			return sb.String(), sb.Len() > 0
		}
		if buf[0] == '\n' {
			return sb.String(), true
		}
		sb.WriteByte(buf[0])
	}
}

func sh(u *kernel.User) int {
	var status int
	for {
		ulib.Puts(u, "$ ")
		line, ok := readLine(u)
		if !ok {
			ulib.Puts(u, "\n")
			return status
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" {
			return status
		}
		pid := ulib.Fork(u, fields[0], func(u *kernel.User) int {
			ulib.Exec(u, line)
			return errorf(u, "not found")
		})
		if pid < 0 {
			errorf(u, "fork failed")
			continue
		}
		status = ulib.Wait(u, pid)
	}
}
