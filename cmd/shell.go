package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"resource-console/internal/ui"
	"resource-console/monitoring"
)

var errUnterminatedQuote = errors.New("unterminated quote")

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively, keeping caches between them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			root := cmd.Root()
			a.interactive = true
			defer func() { a.interactive = false }()

			if a.cfg.EnableMetrics {
				go func() {
					if err := monitoring.Serve(ctx, ":"+a.cfg.MetricsPort); err != nil {
						a.log.Error("metrics endpoint stopped", "error", err)
					}
				}()
			}

			restore := persistentFlags(root)
			fmt.Fprintln(a.out, `Type a command such as "tasks" or "bookings status 3 confirmed". "exit" quits.`)
			for ctx.Err() == nil {
				fmt.Fprint(a.out, "> ")
				line, err := a.in.ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return err
				}
				eof := errors.Is(err, io.EOF)

				words, err := splitLine(line)
				if err != nil {
					fmt.Fprintln(a.out, "Error: "+err.Error())
					continue
				}
				if len(words) > 0 {
					switch words[0] {
					case "exit", "quit":
						return nil
					case "shell":
						fmt.Fprintln(a.out, "Already in the shell.")
					default:
						a.runLine(cmd, words, restore)
					}
				}
				if eof {
					fmt.Fprintln(a.out)
					return nil
				}
			}
			return nil
		},
	}
}

// runLine executes one shell line against the command tree and prints the
// outcome, including any banner still raised.
func (a *app) runLine(shell *cobra.Command, words []string, restore func()) {
	root := shell.Root()
	for _, c := range root.Commands() {
		resetFlags(c)
	}
	restore()
	root.SetArgs(words)
	if err := root.ExecuteContext(shell.Context()); err != nil {
		fmt.Fprintln(a.out, describeError(err, a.banners()))
		return
	}
	if msgs := a.banners(); len(msgs) > 0 {
		fmt.Fprintln(a.out, ui.Banner(strings.Join(msgs, "\n")))
	}
}

// persistentFlags records the persistent flag values given when the shell
// started and returns a func that puts them back. A -y typed on one line
// does not carry over to the next.
func persistentFlags(root *cobra.Command) func() {
	saved := map[string]string{}
	root.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		saved[f.Name] = f.Value.String()
	})
	return func() {
		root.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(saved[f.Name])
			f.Changed = false
		})
	}
}

// splitLine splits a shell line on white space. Single or double quotes
// group words; there are no escapes.
func splitLine(line string) ([]string, error) {
	var (
		words []string
		word  strings.Builder
		quote rune
		open  bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				word.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			open = true
		case unicode.IsSpace(r):
			if open {
				words = append(words, word.String())
				word.Reset()
				open = false
			}
		default:
			word.WriteRune(r)
			open = true
		}
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	if open {
		words = append(words, word.String())
	}
	return words, nil
}
