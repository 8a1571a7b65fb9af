package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"invoicegen/internal/repository/jsonfile"
	"invoicegen/internal/service"
)

// localUser keys the single workspace stored in the file.
var localUser = uuid.Nil

type app struct {
	workspacePath string
	workspace     service.WorkspaceService
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "invoicectl",
		Short: "Edit an invoice workspace and render it to PDF",
		Long: `invoicectl keeps a multi-template invoice workspace in a local JSON file.
Each command loads the file, applies one change and writes it back, so the
commands compose in shell scripts.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "templates" {
				return nil
			}
			repo, err := jsonfile.NewWorkspaceRepo(a.workspacePath)
			if err != nil {
				return err
			}
			a.workspace = service.NewWorkspaceService(repo, nil, nil)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.workspacePath, "workspace", "w", "./invoicegen-workspace.json", "workspace file")

	root.AddCommand(
		newTemplatesCmd(),
		a.newShowCmd(),
		a.newSwitchCmd(),
		a.newResetCmd(),
		a.newSetCmd(),
		a.newItemCmd(),
		a.newFieldCmd(),
		a.newToggleCmd(),
		a.newTotalsCmd(),
		a.newRenderCmd(),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTotals(w io.Writer, view *service.WorkspaceView) {
	s := view.State
	fmt.Fprintf(w, "template:  %s\n", view.ActiveTemplate)
	fmt.Fprintf(w, "subtotal:  %.2f\n", s.Subtotal)
	fmt.Fprintf(w, "tax:       %.2f (%g%%)\n", s.TaxAmount, s.TaxRate)
	fmt.Fprintf(w, "discount:  %.2f\n", s.DiscountAmount)
	fmt.Fprintf(w, "shipping:  %.2f\n", s.ShippingCost)
	fmt.Fprintf(w, "total:     %.2f %s\n", s.Total, s.Currency)
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
