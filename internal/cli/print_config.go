package cli

import (
	"encoding/json"

	flag "github.com/spf13/pflag"
)

func newPrintConfigCommand(cfg Config) *Command {
	flags := flag.NewFlagSet("print-config", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "print-config",
		Short: "Print the effective configuration",
		Long:  "Print the effective configuration as JSON after defaults,\nconfig files and global flags have been merged.",
		Exec: func(o *IO, _ []string) error {
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}

			o.Println(string(data))

			return nil
		},
	}
}
