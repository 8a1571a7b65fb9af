package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"invoicegen/internal/invoice"
	"invoicegen/internal/pdf"
	"invoicegen/internal/service"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the predefined templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY")
			for _, p := range invoice.Presets() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, p.Category)
			}
			return tw.Flush()
		},
	}
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active record and its derived invoice data as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := a.workspace.Get(ctx(cmd), localUser)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), view)
		},
	}
}

func (a *app) newSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <template-id>",
		Short: "Make another template active",
		Long:  "Unknown identifiers fall back to the standard template.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.workspace.SwitchTemplate(ctx(cmd), localUser, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "active template: %s\n", view.ActiveTemplate)
			return nil
		},
	}
}

func (a *app) newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [template-id]",
		Short: "Restore a template's record to its defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			view, err := a.workspace.ResetTemplate(ctx(cmd), localUser, id)
			if err != nil {
				return err
			}
			printTotals(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func (a *app) newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <field=value>...",
		Short: "Replace fields of the active record",
		Example: `  invoicectl set company_name="Acme Ltd" client_name=Globex invoice_number=INV-7
  invoicectl set tax_rate=8.5 shipping_cost=12`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parseAssignments(args)
			if err != nil {
				return err
			}
			view, err := a.workspace.UpdateTemplateState(ctx(cmd), localUser, patch)
			if err != nil {
				return err
			}
			printTotals(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

var numericFields = map[string]bool{
	"tax_rate":        true,
	"discount_amount": true,
	"shipping_cost":   true,
}

// parseAssignments turns key=value pairs into a Patch using the JSON field names.
func parseAssignments(args []string) (invoice.Patch, error) {
	raw := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return invoice.Patch{}, fmt.Errorf("expected field=value, got %q", arg)
		}
		if numericFields[key] {
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return invoice.Patch{}, fmt.Errorf("%s: %w", key, err)
			}
			raw[key] = f
			continue
		}
		raw[key] = value
	}

	body, err := json.Marshal(raw)
	if err != nil {
		return invoice.Patch{}, err
	}
	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.DisallowUnknownFields()
	var patch invoice.Patch
	if err := dec.Decode(&patch); err != nil {
		return invoice.Patch{}, fmt.Errorf("invalid field: %w", err)
	}
	return patch, nil
}

func (a *app) newItemCmd() *cobra.Command {
	item := &cobra.Command{
		Use:   "item",
		Short: "Manage line items",
	}

	item.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Append a blank line item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := a.workspace.AddInvoiceItem(ctx(cmd), localUser)
			if err != nil {
				return err
			}
			items := view.State.Items
			fmt.Fprintf(cmd.OutOrStdout(), "added item %d\n", items[len(items)-1].ID)
			return nil
		},
	})

	item.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			view, err := a.workspace.RemoveInvoiceItem(ctx(cmd), localUser, id)
			if err != nil {
				return err
			}
			printTotals(cmd.OutOrStdout(), view)
			return nil
		},
	})

	var (
		description string
		quantity    float64
		rate        float64
		hidden      bool
	)
	set := &cobra.Command{
		Use:   "set <id>",
		Short: "Change a line item; the amount is recomputed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			var patch invoice.ItemPatch
			flags := cmd.Flags()
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("quantity") {
				patch.Quantity = &quantity
			}
			if flags.Changed("rate") {
				patch.Rate = &rate
			}
			if flags.Changed("hidden") {
				visible := !hidden
				patch.Visible = &visible
			}
			view, err := a.workspace.UpdateInvoiceItem(ctx(cmd), localUser, id, patch)
			if err != nil {
				return err
			}
			printTotals(cmd.OutOrStdout(), view)
			return nil
		},
	}
	set.Flags().StringVarP(&description, "description", "d", "", "item description")
	set.Flags().Float64VarP(&quantity, "quantity", "q", 0, "quantity")
	set.Flags().Float64VarP(&rate, "rate", "r", 0, "unit rate")
	set.Flags().BoolVar(&hidden, "hidden", false, "hide the item from the rendered invoice")
	item.AddCommand(set)

	return item
}

func (a *app) newFieldCmd() *cobra.Command {
	field := &cobra.Command{
		Use:   "field",
		Short: "Manage custom fields",
	}

	var (
		section string
		options []string
	)
	add := &cobra.Command{
		Use:   "add <type> <label>",
		Short: "Add a custom field of type text, textarea, number, date or select",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.workspace.AddCustomField(ctx(cmd), localUser, service.AddCustomFieldInput{
				Type:    invoice.FieldType(args[0]),
				Label:   args[1],
				Section: section,
				Options: options,
			})
			if err != nil {
				return err
			}
			fields := view.State.CustomFields
			fmt.Fprintf(cmd.OutOrStdout(), "added field %s\n", fields[len(fields)-1].ID)
			return nil
		},
	}
	add.Flags().StringVar(&section, "section", "header", "section the field renders in")
	add.Flags().StringSliceVar(&options, "option", nil, "choice for a select field (repeatable)")
	field.AddCommand(add)

	field.AddCommand(&cobra.Command{
		Use:   "set <id> <value>",
		Short: "Set a custom field's value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := args[1]
			_, err := a.workspace.UpdateCustomField(ctx(cmd), localUser, args[0], invoice.CustomFieldPatch{Value: &value})
			return err
		},
	})

	field.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a custom field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.workspace.RemoveCustomField(ctx(cmd), localUser, args[0])
			return err
		},
	})

	return field
}

func (a *app) newToggleCmd() *cobra.Command {
	names := make([]string, 0, len(invoice.Elements))
	for _, e := range invoice.Elements {
		names = append(names, string(e))
	}
	return &cobra.Command{
		Use:       "toggle <element>",
		Short:     "Flip the visibility of an optional block",
		Long:      "Elements: " + strings.Join(names, ", "),
		ValidArgs: names,
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.workspace.ToggleElement(ctx(cmd), localUser, invoice.Element(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), view.State.Visibility)
		},
	}
}

func (a *app) newTotalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Print the aggregates of the active record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := a.workspace.Get(ctx(cmd), localUser)
			if err != nil {
				return err
			}
			printTotals(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func (a *app) newRenderCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the active record to a PDF file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := a.workspace.Get(ctx(cmd), localUser)
			if err != nil {
				return err
			}
			if issues := invoice.Validate(view.State); len(issues) > 0 {
				msgs := make([]string, 0, len(issues))
				for _, is := range issues {
					msgs = append(msgs, is.Message)
				}
				return fmt.Errorf("invoice is incomplete: %s", strings.Join(msgs, "; "))
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := pdf.NewRenderer().Render(f, view.Data); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "invoice.pdf", "destination file")
	return cmd
}
