package cli

import (
	"github.com/jrsteele09/storedesk/theme"
	"github.com/spf13/cobra"
)

func (c *CLI) themeCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|system|toggle]",
		Short:     "Show or change the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(theme.Light), string(theme.Dark), string(theme.System), "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch {
			case len(args) == 0:
			case args[0] == "toggle":
				if _, err := c.app.Theme.Toggle(ctx); err != nil {
					return err
				}
			default:
				mode, err := theme.ParseMode(args[0])
				if err != nil {
					return err
				}
				if err := c.app.Theme.Set(ctx, mode); err != nil {
					return err
				}
			}
			c.printerFor(cmd.OutOrStdout()).Info("Theme: %s", c.app.Theme.Current())
			return nil
		},
	}
}
