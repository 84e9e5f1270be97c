package cli

import (
	"errors"
	"fmt"
	"time"

	"jvhelp-service/internal/client"

	"github.com/spf13/cobra"
)

// explain turns client sentinels into operator hints.
func explain(err error) error {
	switch {
	case errors.Is(err, client.ErrLoginRequired):
		return fmt.Errorf("not logged in or session expired; run 'jvadmin login'")
	case errors.Is(err, client.ErrTryAgain):
		return fmt.Errorf("server unavailable, try again (%w)", err)
	}
	return err
}

func newLoginCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the admin API and cache the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = readPassword("Password: "); err != nil {
					return err
				}
			}

			c, err := newAPIClient()
			if err != nil {
				return err
			}
			resp, err := c.Login(cmd.Context(), username, password)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s; session expires %s.\n",
				resp.Admin.Username, resp.ExpiresAt.Local().Format(time.DateTime))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password (prompted if omitted)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the cached session and forget it",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := c.Logout(cmd.Context()); err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the cached session",
		Long:  "Show the cached session. With --check the server is asked whether the token is still valid.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			sess, err := c.Session()
			if errors.Is(err, client.ErrNoSession) {
				fmt.Fprintln(out, "Not logged in.")
				return nil
			}
			if err != nil {
				return err
			}

			if c.IsLocallyExpired() {
				fmt.Fprintf(out, "Session for %s expired at %s.\n", sess.Username, sess.ExpiresAt.Local().Format(time.DateTime))
				return nil
			}
			fmt.Fprintf(out, "Logged in as %s on %s until %s.\n",
				sess.Username, sess.Server, sess.ExpiresAt.Local().Format(time.DateTime))

			if check {
				me, err := c.Me(cmd.Context())
				if err != nil {
					return explain(err)
				}
				fmt.Fprintf(out, "Server confirms %s (%s).\n", me.Username, me.Role)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "verify the token with the server")
	return cmd
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "List the modules the admin can manage",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			modules, err := c.Dashboard(cmd.Context())
			if err != nil {
				return explain(err)
			}
			for _, m := range modules {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", m.ID, m.Description)
			}
			return nil
		},
	}
}
