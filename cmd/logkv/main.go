// Command logkv is the CLI front-end for the log-structured key-value
// engine in package kv. It is a thin collaborator: it parses
// subcommands and translates them into engine calls, per spec §6.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amanlalwani007/logkv/kv"
)

var (
	dbPath  string
	verbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "logkv",
		Short:         "log-structured embedded key-value store",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.ErrOrStderr(), "a subcommand is required: set, get, rm, repl")
			return errors.New("no subcommand given")
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "path", "db", "database directory")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "log engine diagnostics (hydration, compaction) to stderr")

	root.AddCommand(newSetCmd(), newGetCmd(), newRmCmd(), newReplCmd())
	return root
}

func openEngine() (*kv.Engine, error) {
	logger := zap.NewNop()
	if verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
		}
	}
	return kv.Open(dbPath, kv.WithLogger(logger))
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <KEY> <VALUE>",
		Short: "set a key to a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openEngine()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Set(args[0], args[1]); err != nil {
				return err
			}
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <KEY>",
		Short: "print the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openEngine()
			if err != nil {
				return err
			}
			defer db.Close()

			value, ok, err := db.Get(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Key not found")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <KEY>",
		Short: "remove a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openEngine()
			if err != nil {
				return err
			}
			defer db.Close()

			err = db.Remove(args[0])
			if errors.Is(err, kv.ErrKeyNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "Key not found")
				return err
			}
			return err
		},
	}
}

// newReplCmd offers the teacher's original interactive-loop CLI shape
// as an additional subcommand, alongside the one-shot get/set/rm
// invocations spec §6 requires. Kept because it is a genuinely useful
// way to exercise the engine by hand during development.
func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "interactive set/get/rm loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openEngine()
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "close db: %v\n", err)
				}
			}()

			return runRepl(cmd, db)
		},
	}
}

func replHelp(w *bufio.Writer) {
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  set <key> <value>")
	fmt.Fprintln(w, "  get <key>")
	fmt.Fprintln(w, "  rm <key>")
	fmt.Fprintln(w, "  exit")
	w.Flush()
}

func runRepl(cmd *cobra.Command, db *kv.Engine) error {
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	fmt.Fprintln(out, "logkv repl — log-structured KV, type 'help' for commands")
	replHelp(out)

	in := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprint(out, "> ")
	out.Flush()
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			fmt.Fprint(out, "> ")
			out.Flush()
			continue
		}
		parts := strings.Fields(line)
		switch strings.ToLower(parts[0]) {
		case "help":
			replHelp(out)
		case "set":
			if len(parts) < 3 {
				fmt.Fprintln(out, "usage: set <key> <value>")
			} else if err := db.Set(parts[1], strings.Join(parts[2:], " ")); err != nil {
				fmt.Fprintf(out, "set error: %v\n", err)
			} else {
				fmt.Fprintln(out, "OK")
			}
		case "get":
			if len(parts) != 2 {
				fmt.Fprintln(out, "usage: get <key>")
			} else if value, ok, err := db.Get(parts[1]); err != nil {
				fmt.Fprintf(out, "get error: %v\n", err)
			} else if !ok {
				fmt.Fprintln(out, "Key not found")
			} else {
				fmt.Fprintln(out, value)
			}
		case "rm":
			if len(parts) != 2 {
				fmt.Fprintln(out, "usage: rm <key>")
			} else if err := db.Remove(parts[1]); err != nil {
				fmt.Fprintf(out, "rm error: %v\n", err)
			} else {
				fmt.Fprintln(out, "OK")
			}
		case "exit", "quit":
			fmt.Fprintln(out, "bye")
			return nil
		default:
			fmt.Fprintln(out, "unknown command:", parts[0])
			replHelp(out)
		}
		fmt.Fprint(out, "> ")
		out.Flush()
	}
	return in.Err()
}
