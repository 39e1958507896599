package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"github.com/jsamuelsen/quotedesk/internal/domain"
)

type historyCmd struct {
	env   *Env
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list saved quotes, newest first" }
func (*historyCmd) Usage() string {
	return `quotectl history [-n <count>]

  Lists the saved quotes of the selected user with their frozen totals.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 0, "Show at most this many quotes (0 shows all).")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	quotes, err := c.env.Services.History.List(ctx, c.env.User)
	if err != nil {
		return c.env.fail(err)
	}

	if c.limit > 0 && len(quotes) > c.limit {
		quotes = quotes[:c.limit]
	}

	if len(quotes) == 0 {
		fmt.Fprintln(c.env.Out, "no saved quotes")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(c.env.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tSAVED\tCLIENT\tTOTAL")

	for _, q := range quotes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			q.ID,
			q.Number,
			time.UnixMilli(q.SavedAt).Local().Format(time.DateTime),
			q.Client.Name,
			c.env.money(q.TotalValue),
		)
	}

	if err := w.Flush(); err != nil {
		return c.env.fail(err)
	}

	return subcommands.ExitSuccess
}

type deleteQuoteCmd struct {
	env *Env
}

func (*deleteQuoteCmd) Name() string     { return "delete-quote" }
func (*deleteQuoteCmd) Synopsis() string { return "delete a saved quote" }
func (*deleteQuoteCmd) Usage() string {
	return `quotectl delete-quote <id>

  Removes the saved quote with the given id. Unknown ids are ignored.
`
}

func (*deleteQuoteCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteQuoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(c.env.Err, c.Usage())
		return subcommands.ExitUsageError
	}

	if err := c.env.Services.History.Delete(ctx, c.env.User, f.Arg(0)); err != nil {
		return c.env.fail(err)
	}

	fmt.Fprintln(c.env.Out, "deleted", f.Arg(0))

	return subcommands.ExitSuccess
}

// reopenCmd loads a saved quote into a wizard draft and saves the draft as
// a new history record.
type reopenCmd struct {
	env    *Env
	number string
}

func (*reopenCmd) Name() string     { return "reopen" }
func (*reopenCmd) Synopsis() string { return "save a copy of a saved quote under a new number" }
func (*reopenCmd) Usage() string {
	return `quotectl reopen [-number <n>] <id>

  Reopens a saved quote and saves it again as a new record dated today.
  The original record is left untouched.
`
}

func (c *reopenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.number, "number", "", "Display number for the copy (random when empty).")
}

func (c *reopenCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(c.env.Err, c.Usage())
		return subcommands.ExitUsageError
	}

	saved, err := c.env.Services.History.Get(ctx, c.env.User, f.Arg(0))
	if err != nil {
		return c.env.fail(err)
	}

	number := c.number
	if number == "" {
		number = domain.NewQuoteNumber(nil)
	}

	draft := domain.Reopen(saved, number)

	copied, err := c.env.Services.History.Save(ctx, c.env.User, draft.Quote(c.env.now().Format(domain.QuoteDateLayout)))
	if err != nil {
		return c.env.fail(err)
	}

	draft.MarkSaved(copied.ID)

	fmt.Fprintf(c.env.Out, "saved %s as %s (%s, %s)\n",
		saved.ID, draft.SavedID(), draft.PDFFilename(), c.env.money(copied.TotalValue))

	return subcommands.ExitSuccess
}

type catalogCmd struct {
	env *Env
}

func (*catalogCmd) Name() string     { return "catalog" }
func (*catalogCmd) Synopsis() string { return "list the product and service catalog" }
func (*catalogCmd) Usage() string {
	return `quotectl catalog

  Lists the catalog entries remembered from saved quotes.
`
}

func (*catalogCmd) SetFlags(*flag.FlagSet) {}

func (c *catalogCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	entries, err := c.env.Services.Catalog.List(ctx, c.env.User)
	if err != nil {
		return c.env.fail(err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(c.env.Out, "catalog is empty")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(c.env.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tDESCRIPTION\tUNIT PRICE")

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Code, e.Description, c.env.money(e.UnitPrice))
	}

	if err := w.Flush(); err != nil {
		return c.env.fail(err)
	}

	return subcommands.ExitSuccess
}
