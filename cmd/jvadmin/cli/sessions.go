package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Session store maintenance",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete every expired session",
		Long:  "Expired sessions are already removed when presented. purge clears the ones nobody presents again.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := openAuthService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			n, err := svc.PurgeExpired(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d expired session(s).\n", n)
			return nil
		},
	})
	return cmd
}
