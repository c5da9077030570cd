package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nhle/loan-checklist/internal/checklist"
	"github.com/nhle/loan-checklist/internal/identity"
	"github.com/nhle/loan-checklist/internal/model"
)

// systemUser is the session user for CLI runs.
var systemUser = model.User{ID: "system", FirstName: "System", Role: model.RoleAdministrator}

var materializeCmd = &cobra.Command{
	Use:   "materialize <loan-id>",
	Short: "Create the missing checklist items for a loan",
	Args:  cobra.ExactArgs(1),
	RunE:  runMaterialize,
}

var showCmd = &cobra.Command{
	Use:   "show <loan-id>",
	Short: "Print a loan's checklist grouped by category",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(materializeCmd, showCmd)
}

func runMaterialize(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, identity.StaticSession{User: systemUser})
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := a.engine.Materialize(cmd.Context(), args[0])
	var matErr *checklist.MaterializeError
	if err != nil && !errors.As(err, &matErr) {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %d checklist item(s) for loan %s\n", len(created), args[0])
	for _, item := range created {
		fmt.Fprintf(out, "  + [%s] %s\n", item.ChecklistType, item.ItemName)
	}
	if matErr != nil {
		for _, f := range matErr.Failures {
			fmt.Fprintf(out, "  ! %s: %v\n", f.Key, f.Err)
		}
		return matErr
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, identity.StaticSession{User: systemUser})
	if err != nil {
		return err
	}
	defer a.Close()

	items, err := a.engine.Items(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	summary := checklist.Summarize(items)
	fmt.Fprintf(out, "Loan %s\n", args[0])
	fmt.Fprintf(out, "Action items: %d/%d complete (%d%%)\n",
		summary.ActionItems.Completed, summary.ActionItems.Total, summary.ActionItems.Percent())
	fmt.Fprintf(out, "Documents:    %d/%d approved (%d%%)\n\n",
		summary.Documents.Completed, summary.Documents.Total, summary.Documents.Percent())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, g := range checklist.GroupByCategory(items, a.engine.Catalog()) {
		fmt.Fprintf(tw, "%s\n", g.Category)
		for _, item := range g.Items {
			fmt.Fprintf(tw, "  %s\t%s\t%d file(s)\n", item.ItemName, item.Status.Label(), len(item.UploadedFiles))
		}
	}
	return tw.Flush()
}
