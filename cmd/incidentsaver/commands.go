package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"incidentsaver/internal/core/incident"
	ptime "incidentsaver/internal/platform/time"
	"incidentsaver/internal/services/incidents/domain"
	"incidentsaver/internal/services/incidents/export"

	"github.com/spf13/cobra"
)

// action is a subcommand body run against an opened env
type action func(cmd *cobra.Command, e *env, args []string) error

// runner adapts an action to cobra, opening and closing the env around it
type runner func(action) func(*cobra.Command, []string) error

// newRootCmd builds the command tree; open is called lazily by each subcommand
func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "incidentsaver",
		Short: "Capture incident numbers and timestamps, then export MTTD and MTTR",
		Long: `incidentsaver records the incident number and the occurrence, detection
and resolve times you select, and derives MTTD and MTTR.

Examples:
  incidentsaver capture set_incident INC-42
  incidentsaver capture set_occurrence "Oct 30, 2025 12:00 PM"
  incidentsaver list
  incidentsaver export -o incidents.csv`,
		SilenceUsage: true,
	}

	var run runner = func(fn action) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()
			return fn(cmd, e, args)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:       "capture <action> <selection...>",
			Short:     "Apply one event: " + strings.Join(actionNames(), ", "),
			Args:      cobra.MinimumNArgs(1),
			ValidArgs: actionNames(),
			RunE:      run(capture),
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print valid incidents with formatted times",
			Args:  cobra.NoArgs,
			RunE:  run(list),
		},
		exportCmd(run),
		&cobra.Command{
			Use:   "current",
			Short: "Print the incident timestamps apply to",
			Args:  cobra.NoArgs,
			RunE:  run(current),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every incident and the current pointer",
			Args:  cobra.NoArgs,
			RunE:  run(clearAll),
		},
		&cobra.Command{
			Use:   "parse <text...>",
			Short: "Show what date a selection would be read as",
			Args:  cobra.MinimumNArgs(1),
			RunE:  run(parse),
		},
	)
	return root
}

func actionNames() []string {
	out := make([]string, 0, len(domain.Actions))
	for _, a := range domain.Actions {
		out = append(out, string(a))
	}
	return out
}

func capture(cmd *cobra.Command, e *env, args []string) error {
	res, err := e.mod.Service().Handle(cmd.Context(), domain.Action(args[0]), strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if !res.Applied {
		fmt.Fprintf(w, "dropped %s: %s\n", res.Action, res.Reason)
		return nil
	}
	fmt.Fprintf(w, "%s %s\n", res.Action, res.Incident)
	if res.Record != nil {
		printRecord(w, *res.Record, e)
	}
	return nil
}

func list(cmd *cobra.Command, e *env, _ []string) error {
	rs, err := e.mod.Service().List(cmd.Context())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INCIDENT\tOCCURRENCE\tDETECTION\tRESOLVE\tMTTD\tMTTR")
	for _, it := range export.Items(rs, e.mod.Service().Location()) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			it.Number, it.Display.Occurrence, it.Display.Detection, it.Display.Resolve,
			it.Display.Mttd, it.Display.Mttr)
	}
	return tw.Flush()
}

func exportCmd(run runner) *cobra.Command {
	var out string
	c := &cobra.Command{
		Use:   "export",
		Short: "Write incidents as CSV",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, e *env, _ []string) error {
			rs, err := e.mod.Service().List(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return export.WriteCSV(cmd.OutOrStdout(), rs)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := export.WriteCSV(f, rs); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d incidents to %s\n", len(rs), out)
			return nil
		}),
	}
	c.Flags().StringVarP(&out, "output", "o", export.Filename, `output file, "-" for stdout`)
	return c
}

func current(cmd *cobra.Command, e *env, _ []string) error {
	n, ok, err := e.mod.Service().Current(cmd.Context())
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "no current incident")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), n)
	return nil
}

func clearAll(cmd *cobra.Command, e *env, _ []string) error {
	if err := e.mod.Service().Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "cleared")
	return nil
}

func parse(cmd *cobra.Command, e *env, args []string) error {
	res, ok := e.mod.Service().Extract(strings.Join(args, " "))
	w := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintln(w, "no date found")
		return nil
	}
	iso := ptime.ISO(res.At)
	fmt.Fprintf(w, "%s\t%s\t%s\n", iso, export.FormatMDY(&iso, e.mod.Service().Location()), res.Matcher)
	return nil
}

func printRecord(w io.Writer, r incident.Record, e *env) {
	d := export.Describe(r, e.mod.Service().Location())
	fmt.Fprintf(w, "  occurrence %s\n  detection  %s\n  resolve    %s\n  mttd       %s\n  mttr       %s\n",
		d.Occurrence, d.Detection, d.Resolve, d.Mttd, d.Mttr)
}
