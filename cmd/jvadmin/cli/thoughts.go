package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newThoughtsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thoughts",
		Short: "Moderate visitor thoughts",
	}
	cmd.AddCommand(newThoughtsListCmd())
	cmd.AddCommand(newThoughtsDeleteCmd())
	return cmd
}

func newThoughtsListCmd() *cobra.Command {
	var (
		page       int
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List thoughts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			result, err := c.Thoughts(cmd.Context(), page, limit)
			if err != nil {
				return explain(err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tFROM\tCONTACT\tLANG\tTHOUGHT")
			for _, t := range result.Thoughts {
				from, contact := "anonymous", "-"
				if t.Name != nil {
					from = *t.Name
				}
				if t.ContactNo != nil {
					contact = *t.ContactNo
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.CreatedAt.Local().Format(time.DateOnly), from, contact, t.Language, truncate(t.Thought, 60))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			p := result.Pagination
			fmt.Fprintf(out, "page %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "thoughts per page")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func newThoughtsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a thought",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := c.DeleteThought(cmd.Context(), args[0]); err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted thought %s.\n", args[0])
			return nil
		},
	}
}
