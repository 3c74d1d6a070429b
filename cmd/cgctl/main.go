// Package main provides cgctl, a small tool for inspecting and adjusting
// cgroup control files.
package main

import (
	"os"
	"strings"

	"github.com/luominghao/cgroupspy/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	exitCode := cli.Run(os.Stdout, os.Stderr, os.Args, env, nil)

	os.Exit(exitCode)
}
