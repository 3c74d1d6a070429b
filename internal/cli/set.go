package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/luominghao/cgroupspy/internal/fs"
	"github.com/luominghao/cgroupspy/nodes"
)

func newSetCommand(cfg Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("set", flag.ContinueOnError)
	force := flags.Bool("force", false, "skip the writability probe before writing")

	return &Command{
		Flags: flags,
		Usage: "set [flags] <cgroup> <file> <value>",
		Short: "Write a value to a control file",
		Long: "Write the given value to one control file of the given cgroup.\n" +
			"The file's writability is probed first so a permission problem is\n" +
			"reported up front; --force writes without probing.",
		Exec: func(o *IO, args []string) error {
			if len(args) != 3 {
				return fmt.Errorf("expected <cgroup> <file> <value>, got %d arguments", len(args))
			}

			tree, err := nodes.NewTree(cfg.Root, fsys)
			if err != nil {
				return err
			}

			node, err := tree.Get(cleanGroupArg(args[0]))
			if err != nil {
				return err
			}

			if !*force {
				ok, err := node.Writable(args[1])
				if err != nil {
					return err
				}

				if !ok {
					return fmt.Errorf("%s is not writable, are you root?", args[1])
				}
			}

			return node.SetProperty(args[1], args[2])
		},
	}
}
