package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/pvtlab/internal/pvt"
	"github.com/san-kum/pvtlab/internal/storage"
)

func sessionCommand() *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "inspect and edit stored inputs",
	}

	setCmd := &cobra.Command{
		Use:   "set [id] [name=value...]",
		Short: "store input values for a correlation",
		Args:  cobra.MinimumNArgs(2),
		RunE:  sessionSet,
	}

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "show stored input values",
		Args:  cobra.ExactArgs(1),
		RunE:  sessionGet,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list sessions and the correlations they hold",
		RunE:  sessionList,
	}

	sessionCmd.AddCommand(setCmd, getCmd, listCmd)
	return sessionCmd
}

func sessionSet(cmd *cobra.Command, args []string) error {
	c, err := catalog.Get(args[0])
	if err != nil {
		return err
	}
	values, err := parseAssignments(args[1:], nil)
	if err != nil {
		return err
	}
	for name, v := range values {
		spec, ok := pvt.FindParam(c, name)
		if !ok {
			return pvt.Fail(c.ID(), pvt.ErrUnknownParameter, name, v)
		}
		values[name] = spec.Clamp(v)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := storage.SetAll(cmd.Context(), store, c.ID(), values); err != nil {
		return err
	}
	if cfg.Store.Driver != "sqlite" {
		fmt.Fprintln(os.Stderr, "warning: memory store, values are discarded on exit (use --db)")
	}
	fmt.Printf("%s: %s\n", c.ID(), formatSnapshot(values))
	return nil
}

func sessionGet(cmd *cobra.Command, args []string) error {
	c, err := catalog.Get(args[0])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	saved, err := store.Snapshot(cmd.Context(), c.ID())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVALUE\tSOURCE")
	for _, p := range c.Params() {
		if v, ok := saved[p.Name]; ok {
			fmt.Fprintf(w, "%s\t%g\tstored\n", p.Name, v)
		} else {
			fmt.Fprintf(w, "%s\t%g\tdefault\n", p.Name, p.Default)
		}
	}
	return w.Flush()
}

func sessionList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := cmd.Context()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SESSION\tCORRELATIONS")

	db, ok := store.(*storage.SQLStore)
	if !ok {
		formulas, err := store.Formulas(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "memory\t%d\n", len(formulas))
		return w.Flush()
	}

	sessions, err := db.Sessions(ctx)
	if err != nil {
		return err
	}
	for _, id := range sessions {
		other, err := storage.OpenSQL(cfg.Store.Path, id)
		if err != nil {
			return err
		}
		formulas, err := other.Formulas(ctx)
		other.Close()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%v\n", id, formulas)
	}
	return w.Flush()
}
