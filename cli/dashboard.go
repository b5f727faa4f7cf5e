package cli

import (
	"github.com/jrsteele09/storedesk/api"
	"github.com/jrsteele09/storedesk/internal/format"
	"github.com/jrsteele09/storedesk/users"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type dashboard struct {
	Store     string `json:"store"`
	Products  int    `json:"products"`
	Orders    int    `json:"orders"`
	Revenue   string `json:"revenue"`
	Staff     int    `json:"staff"`
	OpenTasks int    `json:"openTasks"`
}

func (c *CLI) dashboardCommand() *cobra.Command {
	return storeScoped(&cobra.Command{
		Use:   "dashboard",
		Short: "Summarise the current store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				products []api.Product
				orders   []api.Order
				staff    []users.Profile
				tasks    []api.Task
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() (err error) {
				products, err = c.app.Resources.Products(ctx)
				return err
			})
			g.Go(func() (err error) {
				orders, err = c.app.Resources.Orders(ctx)
				return err
			})
			g.Go(func() (err error) {
				staff, err = c.app.Resources.Staff(ctx)
				return err
			})
			g.Go(func() (err error) {
				tasks, err = c.app.Resources.Tasks(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			d := dashboard{
				Store:     c.app.Selection.Current().Name,
				Products:  len(products),
				Orders:    len(orders),
				Revenue:   format.Money(api.Revenue(orders), c.currency()),
				Staff:     len(staff),
				OpenTasks: openTasks(tasks),
			}
			if c.jsonOutput {
				return c.printJSON(cmd.OutOrStdout(), d)
			}
			p := c.printerFor(cmd.OutOrStdout())
			p.Header("%s", d.Store)
			p.Info("Products:    %d", d.Products)
			p.Info("Orders:      %d", d.Orders)
			p.Info("Revenue:     %s", d.Revenue)
			p.Info("Staff:       %d", d.Staff)
			p.Info("Open tasks:  %d", d.OpenTasks)
			return nil
		},
	}, users.RoleOwner, users.RoleManager)
}
