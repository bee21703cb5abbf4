//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"fmt"
	"io"

	"github.com/markkurossi/tabulate"
)

// PrintProcesses prints the process table to w.
func (kern *Kernel) PrintProcesses(w io.Writer) {
	tab := tabulate.New(tabulate.Plain)
	tab.Header("PID").SetAlign(tabulate.MR)
	tab.Header("PPID").SetAlign(tabulate.MR)
	tab.Header("STAT")
	tab.Header("FDS").SetAlign(tabulate.MR)
	tab.Header("SYSC").SetAlign(tabulate.MR)
	tab.Header("PAGES").SetAlign(tabulate.MR)
	tab.Header("COMMAND")

	for _, proc := range kern.Processes() {
		var ppid PID
		kern.m.Lock()
		if proc.parent != nil {
			ppid = proc.parent.pid
		}
		kern.m.Unlock()

		proc.m.Lock()
		name := proc.name
		state := proc.state
		mem := proc.mem
		proc.m.Unlock()

		row := tab.Row()
		row.Column(fmt.Sprintf("%d", proc.pid))
		row.Column(fmt.Sprintf("%d", ppid))
		row.Column(state.String())
		row.Column(fmt.Sprintf("%d", proc.fds.Len()))
		row.Column(fmt.Sprintf("%d", proc.NumSyscalls()))
		row.Column(fmt.Sprintf("%d", mem.NumPages()))
		row.Column(name)
	}
	tab.Print(w)
}
