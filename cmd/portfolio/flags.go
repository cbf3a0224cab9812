package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/wilbur182/portfolio/internal/features"
	"github.com/wilbur182/portfolio/internal/storage"
)

func newFlagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Inspect and change feature flags",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every flag with its value and source",
			Args:  cobra.NoArgs,
			RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
				return printFlagTable(cmd.OutOrStdout(), s)
			}),
		},
		&cobra.Command{
			Use:   "get <flag>",
			Short: "Print a flag's effective value",
			Args:  cobra.ExactArgs(1),
			RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
				k, err := features.ParseKey(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(s.flags.IsEnabled(k)))
				return nil
			}),
		},
		mutateCmd("enable", "Turn a flag on", func(c *features.Context, k features.Key) { c.Enable(k) }),
		mutateCmd("disable", "Turn a flag off", func(c *features.Context, k features.Key) { c.Disable(k) }),
		mutateCmd("toggle", "Invert a flag", func(c *features.Context, k features.Key) { c.Toggle(k) }),
		setCmd(),
		&cobra.Command{
			Use:   "reset",
			Short: "Forget persisted overrides",
			Args:  cobra.NoArgs,
			RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
				s.flags.Reset()
				if err := printFlagTable(cmd.OutOrStdout(), s); err != nil {
					return err
				}
				if err := s.flags.LastSaveError(); err != nil {
					return fmt.Errorf("reset not persisted: %w", err)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "env",
			Short: "Print export lines pinning the current values",
			Args:  cobra.NoArgs,
			RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
				env := features.NewEnvResolver(s.cfg.Features.EnvPrefix)
				for _, f := range features.ListAll() {
					fmt.Fprintf(cmd.OutOrStdout(), "export %s=%t\n", env.VarName(f.Key), s.flags.IsEnabled(f.Key))
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Print the effective flags whenever storage changes",
			Args:  cobra.NoArgs,
			RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return watchFlags(ctx, cmd.OutOrStdout(), s)
			}),
		},
	)
	return cmd
}

// withSession opens a session for the duration of fn. Logs go to stderr.
func withSession(fn func(*cobra.Command, *session, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(cmd, s, args)
	}
}

func mutateCmd(use, short string, apply func(*features.Context, features.Key)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <flag>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			return mutate(cmd, s, args[0], apply)
		}),
	}
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <flag> <true|false>",
		Short: "Set a flag to a value",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			v, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("value %q: want true or false", args[1])
			}
			return mutate(cmd, s, args[0], func(c *features.Context, k features.Key) { c.Set(k, v) })
		}),
	}
}

// mutate applies a change to the named flag and reports the new value.
func mutate(cmd *cobra.Command, s *session, name string, apply func(*features.Context, features.Key)) error {
	k, err := features.ParseKey(name)
	if err != nil {
		return err
	}
	apply(s.flags, k)
	fmt.Fprintf(cmd.OutOrStdout(), "%s=%t\n", k, s.flags.IsEnabled(k))
	if err := s.flags.LastSaveError(); err != nil {
		return fmt.Errorf("%s not persisted: %w", k, err)
	}
	if overriddenByEnv(s, k) {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %s is also set in the environment; the stored value wins\n", k)
	}
	return nil
}

func overriddenByEnv(s *session, k features.Key) bool {
	_, ok := s.flags.EnvOverrides()[k]
	return ok
}

// printFlagTable writes one row per flag in panel order.
func printFlagTable(w io.Writer, s *session) error {
	var rows [][]string
	for _, c := range features.Categories {
		for _, f := range features.InCategory(c) {
			rows = append(rows, []string{
				f.Name,
				string(c),
				strconv.FormatBool(s.flags.IsEnabled(f.Key)),
				s.flags.Source(f.Key).String(),
				f.Description,
			})
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("FLAG", "CATEGORY", "VALUE", "SOURCE", "DESCRIPTION").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// watchFlags prints the effective map each time the storage file changes.
// The session's own Context is not reloaded; each change is resolved
// afresh from defaults, environment and storage.
func watchFlags(ctx context.Context, w io.Writer, s *session) error {
	if s.storage == nil {
		return fmt.Errorf("watch: %w", storage.ErrUnavailable)
	}
	path := storage.Path(s.cfg.Storage.Backend, s.cfg.StorageDir())
	if path == "" {
		return fmt.Errorf("watch: %s backend has no file to watch", s.cfg.Storage.Backend)
	}
	changes, err := storage.Watch(ctx, path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	env := features.NewEnvResolver(s.cfg.Features.EnvPrefix).Resolve()
	store := features.NewStore(s.storage)
	current := func() features.Map {
		res := store.Load()
		if !res.OK() {
			s.logger.Warn("ignoring persisted feature flags", "err", res.Err)
		}
		return features.Resolve(features.Defaults(), env, res.Flags)
	}

	last := current()
	fmt.Fprintln(w, last.String())
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			next := current()
			if next == last {
				continue
			}
			last = next
			fmt.Fprintln(w, next.String())
		}
	}
}
