// Package cli implements the quotectl subcommands. Every command runs
// against the same application services as the HTTP API, for one user
// namespace chosen with the global -user flag.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/jsamuelsen/quotedesk/internal/app"
	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// DefaultCurrency formats amounts when Env.Currency is empty.
const DefaultCurrency = money.BRL

// Env is shared by every command. Services is filled in after flag parsing,
// before the commander executes.
type Env struct {
	Services *app.Services
	User     string
	Currency string

	Out io.Writer
	Err io.Writer

	// Now defaults to time.Now.
	Now func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}

	return e.Now()
}

func (e *Env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(e.Err, "error:", err)
	return subcommands.ExitFailure
}

// FormatMoney renders amount in the currency's display format, rounded to
// its minor unit. Unknown codes fall back to DefaultCurrency.
func FormatMoney(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}

	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()

	return cur.Formatter().Format(minor)
}

func (e *Env) money(amount decimal.Decimal) string {
	return FormatMoney(amount, e.Currency)
}

// Register adds every quotectl command to commander.
func Register(commander *subcommands.Commander, env *Env) {
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&statusCmd{env: env}, "access")
	commander.Register(&activateCmd{env: env}, "access")

	commander.Register(gated(env, &historyCmd{env: env}), "records")
	commander.Register(gated(env, &deleteQuoteCmd{env: env}), "records")
	commander.Register(gated(env, &reopenCmd{env: env}), "records")
	commander.Register(gated(env, &catalogCmd{env: env}), "records")

	commander.Register(gated(env, &exportCmd{env: env}), "backup")
	commander.Register(gated(env, &importCmd{env: env}), "backup")
}

// gatedCmd refuses to run its command while the access gate is closed.
type gatedCmd struct {
	subcommands.Command
	env *Env
}

func gated(env *Env, cmd subcommands.Command) subcommands.Command {
	return &gatedCmd{Command: cmd, env: env}
}

func (g *gatedCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	status, err := g.env.Services.Gate.CheckStatus(ctx)
	if err != nil {
		return g.env.fail(err)
	}

	if !status.Allowed() {
		return g.env.fail(fmt.Errorf("access %s: run \"quotectl activate <code>\" first", status.State))
	}

	return g.Command.Execute(ctx, f, args...)
}

func describeStatus(s domain.AccessStatus) string {
	switch s.State {
	case domain.AccessValid:
		if s.ExpiresAt == nil {
			return fmt.Sprintf("valid, %d day(s) left", s.DaysRemaining)
		}

		return fmt.Sprintf("valid, %d day(s) left, expires %s", s.DaysRemaining, s.ExpiresAt.Local().Format(time.DateTime))
	case domain.AccessExpired:
		return "expired"
	default:
		return "not activated"
	}
}
