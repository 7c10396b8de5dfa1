package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bookdeck/internal/api"
	"bookdeck/internal/state"
)

func newListCmd(app *App) *cobra.Command {
	var page int
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := app.orchestrator()
			if err != nil {
				return err
			}
			p, err := orch.LoadPage(cmd.Context(), page)
			if err != nil {
				return err
			}

			// The search flag is the same client-side overlay the TUI uses:
			// it filters the fetched page only, it never crosses pages.
			items := state.Filter(p.Items, search)

			if app.JSON {
				out := p
				out.Items = items
				return printJSON(cmd, out)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tYEAR\tGENRE\tSTATUS\tRATING")
			for _, b := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
					b.ID, b.Title, b.Author, b.Year, b.Genre, b.Status, ratingText(b.Rating))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d books)\n", p.Page, p.TotalPages, p.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&search, "search", "", "filter the printed page by title/author (client-side)")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	var title, author, year, genre, status, rating string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := app.orchestrator()
			if err != nil {
				return err
			}

			// Route through a form session so the CLI trims exactly like the
			// TUI; year/rating stay raw text for the server to validate.
			sess := state.NewCreateSession()
			sess.Values[state.FieldTitle] = title
			sess.Values[state.FieldAuthor] = author
			sess.Values[state.FieldYear] = year
			sess.Values[state.FieldGenre] = genre
			sess.Values[state.FieldStatus] = status
			sess.Values[state.FieldRating] = rating

			outcome, err := orch.Create(cmd.Context(), sess.Payload())
			if err != nil {
				return renderAPIError(cmd, err)
			}

			if app.JSON {
				return printJSON(cmd, outcome.Page)
			}
			// The server inserts new records first on page 1.
			if len(outcome.Page.Items) > 0 {
				created := outcome.Page.Items[0]
				fmt.Fprintf(cmd.OutOrStdout(), "Created %q (%s)\n", created.Title, created.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Collection now holds %d books\n", outcome.Stats.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringVar(&author, "author", "", "author name")
	cmd.Flags().StringVar(&year, "year", "", "publication year")
	cmd.Flags().StringVar(&genre, "genre", "", "genre")
	cmd.Flags().StringVar(&status, "status", "", "one of: to-read, reading, finished")
	cmd.Flags().StringVar(&rating, "rating", "", "rating 1-5 (optional)")
	return cmd
}

func newRmCmd(app *App) *cobra.Command {
	var page int
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])

			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %s? This cannot be undone. [y/N]: ", id)
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if ans := strings.ToLower(strings.TrimSpace(line)); ans != "y" && ans != "yes" {
					// Declined: no request is sent.
					return nil
				}
			}

			orch, err := app.orchestrator()
			if err != nil {
				return err
			}
			outcome, err := orch.Delete(cmd.Context(), id, page)
			if err != nil {
				return renderAPIError(cmd, err)
			}

			if app.JSON {
				return printJSON(cmd, outcome.Page)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted. Page %d of %d (%d books remain)\n",
				outcome.Page.Page, outcome.Page.TotalPages, outcome.Stats.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page to reload after the delete")
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

// renderAPIError prints validation failures one field per line; everything
// else propagates as-is.
func renderAPIError(cmd *cobra.Command, err error) error {
	if fields, ok := api.ValidationFields(err); ok {
		for _, f := range state.Fields {
			if msg := fields[f]; msg != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", f, msg)
			}
		}
		return errors.New("the server rejected the request")
	}
	return err
}
