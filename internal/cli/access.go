package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type statusCmd struct {
	env *Env
}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "show the activation status" }
func (*statusCmd) Usage() string {
	return `quotectl status

  Prints whether the installation is activated and how many days are left.
`
}

func (*statusCmd) SetFlags(*flag.FlagSet) {}

func (c *statusCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	status, err := c.env.Services.Gate.CheckStatus(ctx)
	if err != nil {
		return c.env.fail(err)
	}

	fmt.Fprintln(c.env.Out, "access:", describeStatus(status))

	if !status.Allowed() {
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

type activateCmd struct {
	env *Env
}

func (*activateCmd) Name() string     { return "activate" }
func (*activateCmd) Synopsis() string { return "activate the installation with a code" }
func (*activateCmd) Usage() string {
	return `quotectl activate <code>

  Records a new access grant when the code is accepted. Codes are
  case-insensitive. A rejected code leaves the current grant in place.
`
}

func (*activateCmd) SetFlags(*flag.FlagSet) {}

func (c *activateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(c.env.Err, c.Usage())
		return subcommands.ExitUsageError
	}

	if _, err := c.env.Services.Gate.Activate(ctx, f.Arg(0)); err != nil {
		return c.env.fail(err)
	}

	status, err := c.env.Services.Gate.CheckStatus(ctx)
	if err != nil {
		return c.env.fail(err)
	}

	fmt.Fprintln(c.env.Out, "access:", describeStatus(status))

	return subcommands.ExitSuccess
}
