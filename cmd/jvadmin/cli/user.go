package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"jvhelp-service/internal/domain/admin"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage admin principals",
	}

	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserActiveCmd("activate", true))
	cmd.AddCommand(newUserActiveCmd("deactivate", false))
	cmd.AddCommand(newUserSetPasswordCmd())

	return cmd
}

// ---------- user create ----------

func newUserCreateCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin principal",
		Example: `  jvadmin user create --username admin --password 's3cret-pass'
  jvadmin user create --username admin   # prompts for password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = promptNewPassword(); err != nil {
					return err
				}
			}

			svc, closeDB, err := openAuthService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			p, err := svc.CreatePrincipal(cmd.Context(), &admin.CreatePrincipalRequest{
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created admin %q (id %d)\n", p.Username, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "admin username (required)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (prompted if omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

// ---------- user list ----------

func newUserListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List admin principals",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := openAuthService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			principals, err := svc.ListPrincipals(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(principals)
			}

			if len(principals) == 0 {
				fmt.Fprintln(out, "No admins configured. Use 'jvadmin user create' to create one.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tUSERNAME\tROLE\tACTIVE\tLAST LOGIN")
			for _, p := range principals {
				last := "never"
				if p.LastLogin != nil {
					last = p.LastLogin.Local().Format(time.DateTime)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Username, p.Role, yesNo(p.IsActive), last)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

// ---------- user activate / deactivate ----------

func newUserActiveCmd(use string, active bool) *cobra.Command {
	short := "Allow an admin to log in again"
	if !active {
		short = "Block an admin and end all of their sessions"
	}

	return &cobra.Command{
		Use:   use + " <username>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := openAuthService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			if err := svc.SetActive(cmd.Context(), args[0], active); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %q %sd.\n", args[0], use)
			return nil
		},
	}
}

// ---------- user set-password ----------

func newUserSetPasswordCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "set-password <username>",
		Short: "Replace an admin's password and end all of their sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = promptNewPassword(); err != nil {
					return err
				}
			}

			svc, closeDB, err := openAuthService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			if err := svc.SetPassword(cmd.Context(), args[0], password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %q; existing sessions ended.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "new password (prompted if omitted)")
	return cmd
}
