package cli

import (
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/luominghao/cgroupspy/internal/fs"
	"github.com/luominghao/cgroupspy/nodes"
)

func newLsCommand(cfg Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("ls", flag.ContinueOnError)
	depth := flags.Int("depth", 0, "limit recursion depth, 0 means unlimited")

	return &Command{
		Flags: flags,
		Usage: "ls [flags] [cgroup]",
		Short: "List cgroups under a path",
		Long: "List the cgroup hierarchy below the given path, one group per\n" +
			"line, indented by nesting level. Defaults to the root.",
		Exec: func(o *IO, args []string) error {
			tree, err := nodes.NewTree(cfg.Root, fsys)
			if err != nil {
				return err
			}

			start := tree.Root()
			if len(args) > 0 {
				start, err = tree.Get(cleanGroupArg(args[0]))
				if err != nil {
					return err
				}
			}

			return listNode(o, start, 0, *depth)
		},
	}
}

func listNode(o *IO, n *nodes.Node, level, maxDepth int) error {
	label := "/" + n.Path()
	if level > 0 {
		label = strings.Repeat("  ", level) + n.Name()
	}

	o.Println(label)

	if maxDepth > 0 && level >= maxDepth {
		return nil
	}

	children, err := n.Children()
	if err != nil {
		return err
	}

	for _, child := range children {
		if err := listNode(o, child, level+1, maxDepth); err != nil {
			return err
		}
	}

	return nil
}
