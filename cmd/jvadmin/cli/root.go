package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	tokenFile string
	verbose   bool
)

// Execute creates the root command tree and runs it.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jvadmin",
		Short:   "Operate the JV Help content service",
		Version: version,
		Long: `jvadmin manages the JV Help content service.

Database commands (db, user, sessions) connect to Postgres directly using
DATABASE_URL. Session commands (login, logout, status, dashboard, thoughts)
go through the admin API and cache the issued token locally.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load() // optional
		},
	}

	cmd.PersistentFlags().StringVar(&serverURL, "server", "", "admin API base URL (default $JVADMIN_SERVER or http://localhost:3000)")
	cmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "session cache file (default $JVADMIN_TOKEN_FILE or ~/.jvadmin/session.json)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	// Direct database access
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newUserCmd())
	cmd.AddCommand(newSessionsCmd())

	// Through the admin API
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newDashboardCmd())
	cmd.AddCommand(newThoughtsCmd())

	return cmd
}
