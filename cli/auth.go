package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jrsteele09/storedesk/internal/format"
	"github.com/jrsteele09/storedesk/stores"
	"github.com/jrsteele09/storedesk/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (c *CLI) loginCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the storedesk API",
		Long: `Sign in and keep the session for later commands. When the account works in
exactly one active store, that store is selected as well.

The password is read from standard input when --password is not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.Wrap(err, "reading password")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			ctx := cmd.Context()
			user, err := c.app.Auth.Login(ctx, email, password)
			if err != nil {
				return err
			}
			// A new login invalidates the store the previous token was scoped to.
			if err := c.app.Selection.Clear(ctx); err != nil {
				log.Err(err).Msg("clearing store selection")
			}

			p := c.printerFor(cmd.OutOrStdout())
			p.Success("Logged in as %s (%s)", user.Name, user.Role)

			available, err := c.app.AuthAPI.Stores(ctx)
			if err != nil {
				return errors.Wrap(err, "listing stores")
			}
			active := activeStores(available)
			if len(active) != 1 {
				p.Muted("Select a store with: storedesk stores switch <store>")
				return nil
			}
			if err := c.app.Selection.Switch(ctx, &active[0]); err != nil {
				return err
			}
			p.Success("Working in %s", active[0].Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func activeStores(list []stores.Store) []stores.Store {
	active := make([]stores.Store, 0, len(list))
	for _, s := range list {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}

func (c *CLI) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the selected store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.app.Auth.Logout(ctx); err != nil {
				return err
			}
			if err := c.app.Selection.Clear(ctx); err != nil {
				return err
			}
			c.printerFor(cmd.OutOrStdout()).Success("Logged out")
			return nil
		},
	}
}

type whoami struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Store     string `json:"store,omitempty"`
	StoreID   string `json:"storeId,omitempty"`
	ExpiresIn string `json:"expiresIn,omitempty"`
}

func (c *CLI) whoamiCommand() *cobra.Command {
	return protect(&cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user, store and token expiry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := c.app.Session.State()
			info := whoami{
				ID:    state.User.ID,
				Email: state.User.Email,
				Name:  state.User.Name,
				Role:  string(state.User.Role),
			}
			if store := c.app.Selection.Current(); store != nil {
				info.Store, info.StoreID = store.Name, store.ID
			}
			if claims, err := token.Inspect(state.Token); err == nil {
				info.ExpiresIn = format.Until(claims.Expiry(), c.nowFunc())
			} else {
				log.Debug().Err(err).Msg("token is not a JWT")
			}

			if c.jsonOutput {
				return c.printJSON(cmd.OutOrStdout(), info)
			}
			p := c.printerFor(cmd.OutOrStdout())
			p.Header("%s <%s>", info.Name, info.Email)
			p.Info("Role:    %s", info.Role)
			p.Info("Store:   %s", format.Or(info.Store))
			expiry := format.Or(info.ExpiresIn)
			if strings.HasPrefix(expiry, "in ") {
				expiry = "expires " + expiry
			}
			p.Info("Token:   %s", expiry)
			return nil
		},
	})
}
