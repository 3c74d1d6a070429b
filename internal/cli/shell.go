package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/luominghao/cgroupspy/internal/fs"
	"github.com/luominghao/cgroupspy/nodes"
)

func newShellCommand(cfg Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("shell", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "shell",
		Short: "Browse the hierarchy interactively",
		Long: "Start an interactive shell for browsing the cgroup hierarchy.\n" +
			"Type \"help\" inside the shell for the available commands.",
		Exec: func(o *IO, _ []string) error {
			tree, err := nodes.NewTree(cfg.Root, fsys)
			if err != nil {
				return err
			}

			return runShell(o, newShellSession(tree))
		},
	}
}

func runShell(o *IO, s *shellSession) error {
	rl := liner.NewLiner()
	defer func() { _ = rl.Close() }()

	rl.SetCtrlCAborts(true)
	rl.SetCompleter(s.complete)

	for {
		input, err := rl.Prompt(s.prompt())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}

			if errors.Is(err, io.EOF) {
				o.Println()

				return nil
			}

			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		rl.AppendHistory(input)

		output, quit, err := s.exec(input)
		if err != nil {
			o.ErrPrintln("error:", err)

			continue
		}

		if output != "" {
			o.Println(output)
		}

		if quit {
			return nil
		}
	}
}

// shellSession holds the shell's only state, the current cgroup, and
// interprets one input line at a time.
type shellSession struct {
	tree *nodes.Tree
	cur  *nodes.Node
}

func newShellSession(tree *nodes.Tree) *shellSession {
	return &shellSession{tree: tree, cur: tree.Root()}
}

func (s *shellSession) prompt() string {
	return "cgctl:/" + s.cur.Path() + "> "
}

// exec runs one shell command line. It returns the text to print, whether
// the shell should exit, and any command error.
func (s *shellSession) exec(line string) (string, bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false, nil
	}

	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		return shellHelp, false, nil
	case "pwd":
		return "/" + s.cur.Path(), false, nil
	case "ls":
		return s.list()
	case "cd":
		return s.changeDir(args)
	case "cat":
		return s.cat(args)
	case "set":
		return s.write(args)
	case "exit", "quit":
		return "", true, nil
	default:
		return "", false, fmt.Errorf("unknown command %q, try help", cmd)
	}
}

const shellHelp = `Commands:
  pwd                 print the current cgroup
  ls                  list subgroups and control files
  cd <path>           change cgroup (.. goes up, / is the root)
  cat <file>          print a control file
  set <file> <value>  write a control file
  exit                leave the shell`

func (s *shellSession) list() (string, bool, error) {
	children, err := s.cur.Children()
	if err != nil {
		return "", false, err
	}

	files, err := s.cur.ListFiles()
	if err != nil {
		return "", false, err
	}

	lines := make([]string, 0, len(children)+len(files))

	for _, child := range children {
		lines = append(lines, child.Name()+"/")
	}

	lines = append(lines, files...)

	return strings.Join(lines, "\n"), false, nil
}

func (s *shellSession) changeDir(args []string) (string, bool, error) {
	if len(args) != 1 {
		return "", false, errors.New("cd takes exactly one path")
	}

	target, err := s.resolve(args[0])
	if err != nil {
		return "", false, err
	}

	s.cur = target

	return "", false, nil
}

// resolve maps a shell path to an existing node. Paths starting with /
// are tree-relative, everything else is relative to the current cgroup.
func (s *shellSession) resolve(arg string) (*nodes.Node, error) {
	rel := arg
	if !strings.HasPrefix(arg, "/") {
		rel = s.cur.Path() + "/" + arg
	}

	parts := strings.Split(rel, "/")
	kept := make([]string, 0, len(parts))

	for _, part := range parts {
		switch part {
		case "", ".":
		case "..":
			if len(kept) > 0 {
				kept = kept[:len(kept)-1]
			}
		default:
			kept = append(kept, part)
		}
	}

	return s.tree.Get(strings.Join(kept, "/"))
}

func (s *shellSession) cat(args []string) (string, bool, error) {
	if len(args) != 1 {
		return "", false, errors.New("cat takes exactly one file")
	}

	raw, err := s.cur.GetProperty(args[0])
	if err != nil {
		return "", false, err
	}

	return raw, false, nil
}

func (s *shellSession) write(args []string) (string, bool, error) {
	if len(args) < 2 {
		return "", false, errors.New("set takes a file and a value")
	}

	return "", false, s.cur.SetProperty(args[0], strings.Join(args[1:], " "))
}

// complete offers command names on the first word and child or file names
// on the argument of cd, cat and set.
func (s *shellSession) complete(line string) []string {
	fields := strings.SplitN(line, " ", 2)

	if len(fields) < 2 {
		var out []string

		for _, cmd := range []string{"pwd", "ls", "cd ", "cat ", "set ", "help", "exit", "quit"} {
			if strings.HasPrefix(cmd, line) {
				out = append(out, cmd)
			}
		}

		return out
	}

	cmd, partial := fields[0], fields[1]

	var candidates []string

	switch cmd {
	case "cd":
		children, err := s.cur.Children()
		if err != nil {
			return nil
		}

		for _, child := range children {
			candidates = append(candidates, child.Name())
		}
	case "cat", "set":
		files, err := s.cur.ListFiles()
		if err != nil {
			return nil
		}

		candidates = files
	default:
		return nil
	}

	var out []string

	for _, c := range candidates {
		if strings.HasPrefix(c, partial) {
			out = append(out, cmd+" "+c)
		}
	}

	sort.Strings(out)

	return out
}
