package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wilbur182/portfolio/internal/storage"
)

func newStorageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect the site's local storage",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Print every stored record as key<TAB>value",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
			return dumpStorage(cmd.OutOrStdout(), s.storage)
		}),
	})
	return cmd
}

// dumpStorage writes every record of st in key order.
func dumpStorage(w io.Writer, st storage.Storage) error {
	if st == nil {
		return fmt.Errorf("dump: %w", storage.ErrUnavailable)
	}
	keys, err := st.Keys()
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	for _, k := range keys {
		v, ok, err := st.GetItem(k)
		if err != nil {
			return fmt.Errorf("dump %s: %w", k, err)
		}
		if !ok {
			continue // removed since Keys
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", k, v); err != nil {
			return err
		}
	}
	return nil
}
