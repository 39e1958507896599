package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/jsamuelsen/quotedesk/internal/domain"
)

type exportCmd struct {
	env    *Env
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a backup document" }
func (*exportCmd) Usage() string {
	return `quotectl export [-o <file>]

  Writes the company profile, catalog and quote history as one JSON
  document. Use -o - to write to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file (defaults to backup_<date>.json, - for stdout).")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	data, err := c.env.Services.Backup.ExportJSON(ctx, c.env.User)
	if err != nil {
		return c.env.fail(err)
	}

	if c.output == "-" {
		if _, err := c.env.Out.Write(data); err != nil {
			return c.env.fail(err)
		}

		return subcommands.ExitSuccess
	}

	path := c.output
	if path == "" {
		path = domain.BackupFilename(c.env.now())
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return c.env.fail(err)
	}

	fmt.Fprintln(c.env.Out, "exported to", path)

	return subcommands.ExitSuccess
}

type importCmd struct {
	env *Env
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "restore a backup document" }
func (*importCmd) Usage() string {
	return `quotectl import <file>

  Restores the sections present in a backup document. Sections missing
  from the file are left as they are. Use - to read from stdin.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(c.env.Err, c.Usage())
		return subcommands.ExitUsageError
	}

	data, err := readInput(f.Arg(0))
	if err != nil {
		return c.env.fail(err)
	}

	if !c.env.Services.Backup.Import(ctx, c.env.User, data) {
		return c.env.fail(errors.New("backup document could not be imported"))
	}

	fmt.Fprintln(c.env.Out, "imported", f.Arg(0))

	return subcommands.ExitSuccess
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}
