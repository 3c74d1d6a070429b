package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/luominghao/cgroupspy/internal/fs"
	"github.com/luominghao/cgroupspy/nodes"
)

func newGetCommand(cfg Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("get", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "get <cgroup> <file>",
		Short: "Print a control file's contents",
		Long: "Read one control file of the given cgroup and print its stripped\n" +
			"contents. Use \"/\" for the root cgroup.",
		Exec: func(o *IO, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected <cgroup> <file>, got %d arguments", len(args))
			}

			tree, err := nodes.NewTree(cfg.Root, fsys)
			if err != nil {
				return err
			}

			node, err := tree.Get(cleanGroupArg(args[0]))
			if err != nil {
				return err
			}

			raw, err := node.GetProperty(args[1])
			if err != nil {
				return err
			}

			o.Println(raw)

			return nil
		},
	}
}
