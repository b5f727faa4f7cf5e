package cli

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/storedesk/stores"
	"github.com/spf13/cobra"
)

func (c *CLI) storesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stores",
		Aliases: []string{"store"},
		Short:   "List and switch the stores you work in",
	}
	cmd.AddCommand(c.storesListCommand(), c.storesSwitchCommand(), c.storesClearCommand())
	return cmd
}

func (c *CLI) storesListCommand() *cobra.Command {
	return protect(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the stores you belong to",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := c.app.AuthAPI.Stores(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.printJSON(cmd.OutOrStdout(), list)
			}

			currentID := ""
			if current := c.app.Selection.Current(); current != nil {
				currentID = current.ID
			}
			rows := make([][]string, 0, len(list))
			for _, s := range list {
				marker := ""
				if s.ID == currentID {
					marker = "*"
				}
				status := "active"
				if !s.Active {
					status = "inactive"
				}
				rows = append(rows, []string{marker, s.Name, s.Address, status, s.ID})
			}
			return renderTable(cmd.OutOrStdout(), []string{"", "NAME", "ADDRESS", "STATUS", "ID"}, rows)
		},
	})
}

func (c *CLI) storesSwitchCommand() *cobra.Command {
	return protect(&cobra.Command{
		Use:     "switch <store>",
		Aliases: []string{"use"},
		Short:   "Switch to another store by name or ID",
		Long: `Switch to another store. A token scoped to the store is requested first;
the store only becomes current once that token is in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := c.app.AuthAPI.Stores(ctx)
			if err != nil {
				return err
			}
			store, err := findStore(list, args[0])
			if err != nil {
				return err
			}
			if err := c.app.Selection.Switch(ctx, store); err != nil {
				return err
			}
			c.printerFor(cmd.OutOrStdout()).Success("Working in %s", store.Name)
			return nil
		},
	})
}

func (c *CLI) storesClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the selected store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Selection.Clear(cmd.Context()); err != nil {
				return err
			}
			c.printerFor(cmd.OutOrStdout()).Success("No store selected")
			return nil
		},
	}
}

// findStore matches by ID first, then by case-insensitive name.
func findStore(list []stores.Store, ref string) (*stores.Store, error) {
	for i := range list {
		if list[i].ID == ref {
			return &list[i], nil
		}
	}
	var matches []*stores.Store
	for i := range list {
		if strings.EqualFold(list[i].Name, ref) {
			matches = append(matches, &list[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no store %q among your stores", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("store name %q is ambiguous, use the ID", ref)
	}
}
