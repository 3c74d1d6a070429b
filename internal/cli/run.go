// Package cli implements the cgctl command line tool on top of the cgroup
// node and accessor layers.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/luominghao/cgroupspy/internal/fs"
)

// globalFlags holds options that apply before command dispatch.
type globalFlags struct {
	root       string
	configPath string
	remaining  []string
}

// Run is the main entry point. fsys selects the filesystem for all
// commands; nil means the real one. Returns exit code.
func Run(out, errOut io.Writer, args []string, env map[string]string, fsys fs.FS) int {
	o := NewIO(out, errOut)

	if fsys == nil {
		fsys = fs.NewReal()
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	cfg, err := LoadConfig(flags.configPath, env)
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	if flags.root != "" {
		cfg.Root = flags.root
	}

	cmds := commands(cfg, fsys)

	if len(flags.remaining) == 0 {
		printUsage(o, cmds)

		return 0
	}

	name := flags.remaining[0]
	if name == "-h" || name == "--help" {
		printUsage(o, cmds)

		return 0
	}

	for _, cmd := range cmds {
		if cmd.Name() == name {
			return cmd.Run(o, flags.remaining[1:])
		}
	}

	o.ErrPrintln("error: unknown command:", name)
	printUsage(o, cmds)

	return 1
}

func commands(cfg Config, fsys fs.FS) []*Command {
	return []*Command{
		newLsCommand(cfg, fsys),
		newGetCommand(cfg, fsys),
		newSetCommand(cfg, fsys),
		newSnapshotCommand(cfg, fsys),
		newShellCommand(cfg, fsys),
		newPrintConfigCommand(cfg),
	}
}

// parseGlobalFlags consumes --root and --config ahead of the command name.
// Everything from the first non-flag argument on is left for the command.
func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "--root" || arg == "--config":
			if i+1 >= len(args) {
				return globalFlags{}, fmt.Errorf("flag %s requires an argument", arg)
			}

			if arg == "--root" {
				flags.root = args[i+1]
			} else {
				flags.configPath = args[i+1]
			}

			i += 2
		case strings.HasPrefix(arg, "--root="):
			flags.root = strings.TrimPrefix(arg, "--root=")
			i++
		case strings.HasPrefix(arg, "--config="):
			flags.configPath = strings.TrimPrefix(arg, "--config=")
			i++
		default:
			flags.remaining = args[i:]

			return flags, nil
		}
	}

	return flags, nil
}

func printUsage(o *IO, cmds []*Command) {
	o.Println("Usage: cgctl [--root <dir>] [--config <file>] <command> [args]")
	o.Println()
	o.Println("Inspect and adjust cgroup control files.")
	o.Println()
	o.Println("Commands:")

	for _, cmd := range cmds {
		o.Println(cmd.HelpLine())
	}

	o.Println()
	o.Println("Use \"cgctl <command> --help\" for command details.")
}

// cleanGroupArg turns a user-supplied cgroup path into the tree-relative
// form: "/", "." and "" all mean the root.
func cleanGroupArg(arg string) string {
	arg = strings.Trim(arg, "/")
	if arg == "." {
		return ""
	}

	return arg
}
