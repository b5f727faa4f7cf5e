package cli

import (
	"fmt"
	"strconv"

	"github.com/jrsteele09/storedesk/api"
	"github.com/jrsteele09/storedesk/internal/format"
	"github.com/jrsteele09/storedesk/internal/utils"
	"github.com/jrsteele09/storedesk/users"
	"github.com/spf13/cobra"
)

func (c *CLI) currency() string {
	if store := c.app.Selection.Current(); store != nil {
		return store.Currency
	}
	return ""
}

func (c *CLI) productsCommand() *cobra.Command {
	return storeScoped(&cobra.Command{
		Use:   "products",
		Short: "List the products of the current store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := c.app.Resources.Products(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.printJSON(cmd.OutOrStdout(), products)
			}
			rows := make([][]string, 0, len(products))
			for _, p := range products {
				rows = append(rows, []string{p.Name, p.SKU, format.Money(p.PriceCents, c.currency()), strconv.Itoa(p.Stock)})
			}
			return renderTable(cmd.OutOrStdout(), []string{"NAME", "SKU", "PRICE", "STOCK"}, rows)
		},
	})
}

func (c *CLI) ordersCommand() *cobra.Command {
	return storeScoped(&cobra.Command{
		Use:   "orders",
		Short: "List the orders of the current store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := c.app.Resources.Orders(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.printJSON(cmd.OutOrStdout(), orders)
			}
			rows := make([][]string, 0, len(orders))
			for _, o := range orders {
				rows = append(rows, []string{fmt.Sprintf("#%d", o.Number), string(o.Status), format.Money(o.TotalCents, c.currency()), format.DateTime(o.CreatedAt)})
			}
			return renderTable(cmd.OutOrStdout(), []string{"ORDER", "STATUS", "TOTAL", "CREATED"}, rows)
		},
	})
}

func (c *CLI) staffCommand() *cobra.Command {
	return storeScoped(&cobra.Command{
		Use:   "staff",
		Short: "List the people working in the current store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			staff, err := c.app.Resources.Staff(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.printJSON(cmd.OutOrStdout(), staff)
			}
			rows := make([][]string, 0, len(staff))
			for _, u := range staff {
				rows = append(rows, []string{u.Name, u.Email, string(u.Role)})
			}
			return renderTable(cmd.OutOrStdout(), []string{"NAME", "EMAIL", "ROLE"}, rows)
		},
	}, users.RoleOwner, users.RoleManager)
}

func (c *CLI) tasksCommand() *cobra.Command {
	return storeScoped(&cobra.Command{
		Use:   "tasks",
		Short: "List the tasks of the current store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := c.app.Resources.Tasks(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.printJSON(cmd.OutOrStdout(), tasks)
			}
			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				rows = append(rows, []string{t.Title, string(t.Status), format.Date(utils.Value(t.DueAt))})
			}
			return renderTable(cmd.OutOrStdout(), []string{"TASK", "STATUS", "DUE"}, rows)
		},
	})
}

func openTasks(tasks []api.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Status == api.TaskOpen {
			n++
		}
	}
	return n
}
