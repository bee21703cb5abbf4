//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"bufio"
	"io"
	"sync"
)

// Console implements the console device. Putbuf writes the buffer
// atomically with respect to other Putbuf calls.
type Console interface {
	Getc() (byte, bool)
	Putbuf(b []byte)
}

var _ Console = &StreamConsole{}

// StreamConsole implements a console on top of byte streams.
type StreamConsole struct {
	rm  sync.Mutex
	in  *bufio.Reader
	wm  sync.Mutex
	out io.Writer
}

// NewStreamConsole creates a console reading from in and writing to
// out. The in can be nil for a console without input.
func NewStreamConsole(in io.Reader, out io.Writer) *StreamConsole {
	cons := &StreamConsole{
		out: out,
	}
	if in != nil {
		cons.in = bufio.NewReader(in)
	}
	return cons
}

// Getc reads one input character. The ok is false at the end of
// input.
func (cons *StreamConsole) Getc() (byte, bool) {
	cons.rm.Lock()
	defer cons.rm.Unlock()

	if cons.in == nil {
		return 0, false
	}
	c, err := cons.in.ReadByte()
	if err != nil {
		return 0, false
	}
	return c, true
}

// Putbuf writes b to the console output.
func (cons *StreamConsole) Putbuf(b []byte) {
	cons.wm.Lock()
	defer cons.wm.Unlock()

	for len(b) > 0 {
		n, err := cons.out.Write(b)
		if err != nil {
			return
		}
		b = b[n:]
	}
}
