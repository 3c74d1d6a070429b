package cli

import (
	"encoding/json"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/luominghao/cgroupspy/internal/fs"
	"github.com/luominghao/cgroupspy/nodes"
)

// snapshotEntry is one cgroup in a snapshot dump: its tree-relative path
// and the stripped contents of every readable control file.
type snapshotEntry struct {
	Path  string            `json:"path"`
	Files map[string]string `json:"files"`
}

const snapshotPerm = 0o644

func newSnapshotCommand(cfg Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	out := flags.StringP("output", "o", "cgroup-snapshot.json", "output file")

	return &Command{
		Flags: flags,
		Usage: "snapshot [flags] [cgroup]",
		Short: "Dump a subtree's control files to JSON",
		Long: "Walk the hierarchy below the given cgroup and write every readable\n" +
			"control file's contents to a JSON file. Unreadable files, such as\n" +
			"write-only ones, are skipped. The file is written atomically.\n" +
			"A relative output path lands in the configured snapshot_dir.",
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

			entries, err := collectSnapshot(start)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}

			outPath := *out
			if !filepath.IsAbs(outPath) && cfg.SnapshotDir != "" {
				outPath = filepath.Join(cfg.SnapshotDir, outPath)
			}

			if err := fsys.WriteFileAtomic(outPath, append(data, '\n'), snapshotPerm); err != nil {
				return err
			}

			o.Println("wrote", outPath)

			return nil
		},
	}
}

func collectSnapshot(start *nodes.Node) ([]snapshotEntry, error) {
	var entries []snapshotEntry

	err := walkNodes(start, func(n *nodes.Node) error {
		files, err := readControlFiles(n)
		if err != nil {
			return err
		}

		entries = append(entries, snapshotEntry{Path: "/" + n.Path(), Files: files})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// readControlFiles reads every regular file in the node's directory.
// Files that fail to read are skipped: control files like devices.allow
// are write-only and error on read even for root.
func readControlFiles(n *nodes.Node) (map[string]string, error) {
	dirEntries, err := n.ListFiles()
	if err != nil {
		return nil, err
	}

	files := make(map[string]string, len(dirEntries))

	for _, name := range dirEntries {
		raw, err := n.GetProperty(name)
		if err != nil {
			continue
		}

		files[name] = raw
	}

	return files, nil
}

func walkNodes(n *nodes.Node, fn func(*nodes.Node) error) error {
	if err := fn(n); err != nil {
		return err
	}

	children, err := n.Children()
	if err != nil {
		return err
	}

	for _, child := range children {
		if err := walkNodes(child, fn); err != nil {
			return err
		}
	}

	return nil
}
