package cli

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/storedesk/guard"
	"github.com/jrsteele09/storedesk/users"
	"github.com/spf13/cobra"
)

// Command annotations read by authorize.
const (
	annotationProtected = "storedesk/protected"
	annotationRoles     = "storedesk/roles"
	annotationStore     = "storedesk/store"
)

var ErrNoStoreSelected = fmt.Errorf("no store selected, run %q first", "storedesk stores switch <store>")

// protect marks cmd as requiring a session, optionally limited to roles.
func protect(cmd *cobra.Command, roles ...users.RoleType) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationProtected] = "true"
	if len(roles) > 0 {
		names := make([]string, len(roles))
		for i, r := range roles {
			names[i] = string(r)
		}
		cmd.Annotations[annotationRoles] = strings.Join(names, ",")
	}
	return cmd
}

// storeScoped marks a protected cmd as needing a current store.
func storeScoped(cmd *cobra.Command, roles ...users.RoleType) *cobra.Command {
	protect(cmd, roles...)
	cmd.Annotations[annotationStore] = "true"
	return cmd
}

func routeFor(cmd *cobra.Command) guard.Route {
	route := guard.Route{Path: "/" + strings.ReplaceAll(strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" "), " ", "/")}
	if roles := cmd.Annotations[annotationRoles]; roles != "" {
		for _, r := range strings.Split(roles, ",") {
			route.AllowedRoles = append(route.AllowedRoles, users.RoleType(r))
		}
	}
	return route
}

// authorize evaluates the guard for protected commands before they run.
func (c *CLI) authorize(cmd *cobra.Command) error {
	if cmd.Annotations[annotationProtected] != "true" {
		return nil
	}
	route := routeFor(cmd)
	decision := guard.Evaluate(c.app.Session.State(), route)
	if err := guard.ErrorFor(decision); err != nil {
		if decision.Outcome == guard.RedirectLogin {
			return fmt.Errorf("%w: run %q", err, "storedesk login")
		}
		return fmt.Errorf("%s: %w", route.Path, err)
	}
	if cmd.Annotations[annotationStore] == "true" && c.app.Selection.Current() == nil {
		return ErrNoStoreSelected
	}
	return nil
}
