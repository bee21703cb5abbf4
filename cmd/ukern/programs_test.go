//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/markkurossi/ukern/kernel"
)

func runShell(t *testing.T, input string) string {
	t.Helper()
	out := new(bytes.Buffer)
	kern = kernel.New(&kernel.Params{
		Console: kernel.NewStreamConsole(strings.NewReader(input), out),
		Loader:  programs,
	})
	proc, err := kern.Spawn("sh")
	if err != nil {
		t.Fatal(err)
	}
	proc.Run()
	return out.String()
}

var shellTests = []struct {
	input  string
	output string
}{
	{
		input:  "echo hello\n",
		output: "$ hello\necho: exit(0)\n$ \nsh: exit(0)\n",
	},
	{
		input: "touch a\ncp a b\nrm a\ncat a\nexit\n",
		output: "$ touch: exit(0)\n$ cp: exit(0)\n$ rm: exit(0)\n" +
			"$ cat: a: cannot open\ncat: exit(1)\n$ sh: exit(1)\n",
	},
	{
		input:  "nosuch arg\n",
		output: "$ nosuch: not found\nnosuch: exit(1)\n$ \nsh: exit(1)\n",
	},
	{
		input:  "forktest 3\n",
		output: "forktest: 3 children, status sum 3\n",
	},
}

func TestShell(t *testing.T) {
	for idx, test := range shellTests {
		output := runShell(t, test.input)
		if test.input == "forktest 3\n" {
			if !strings.Contains(output, test.output) {
				t.Errorf("test%d: got %q, expected to contain %q",
					idx, output, test.output)
			}
			continue
		}
		if output != test.output {
			t.Errorf("test%d: got %q, expected %q", idx, output, test.output)
		}
	}
}

func TestHalt(t *testing.T) {
	output := runShell(t, "halt\necho not reached\n")
	if output != "$ " {
		t.Errorf("got %q, expected \"$ \"", output)
	}
	select {
	case <-kern.Halted():
	default:
		t.Errorf("kernel not halted")
	}
}
