package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	libhandler "bookshelf-backend/internal/domains/library/handler"
	"bookshelf-backend/internal/domains/library/model"
)

func newPublishCmd(cli *shelfCLI) *cobra.Command {
	var (
		flags draftFlags
		code  string
	)
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a book",
		Long: `Publish the given fields as a new book.

Without --code a draft is saved first and its code printed, so the book can be
found again with "shelf owned <code>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cli.in)
			if err != nil {
				return err
			}

			c, ctx, cleanup, err := cli.open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			book, created, err := c.LibraryService.Publish(ctx, model.NewSession(code), req.ToDraft())
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cli.out, "Draft saved. Your code: %s\n", book.SaveCode)
			}
			fmt.Fprintf(cli.out, "Published book %d: %s\n", book.ID, book.Title)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&code, "code", "", "Save code of the draft this book comes from")
	return cmd
}

func newBooksCmd(cli *shelfCLI) *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List published books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cleanup, err := cli.open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			books, err := c.LibraryService.ListPublished(ctx)
			if err != nil {
				return err
			}
			if len(books) == 0 {
				fmt.Fprintln(cli.out, "No books published yet.")
				return nil
			}

			w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tAUTHOR")
			for _, b := range books {
				fmt.Fprintf(w, "%d\t%s\t%s\n", b.ID, b.Title, b.AuthorLabel())
			}
			return w.Flush()
		},
	}
}

func newUnpublishCmd(cli *shelfCLI) *cobra.Command {
	return &cobra.Command{
		Use:   "unpublish <id>",
		Short: "Remove a published book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := libhandler.ParseBookID(args[0])
			if err != nil {
				return err
			}

			c, ctx, cleanup, err := cli.open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := c.LibraryService.Unpublish(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "Book %d unpublished.\n", id)
			return nil
		},
	}
}

func newOwnedCmd(cli *shelfCLI) *cobra.Command {
	return &cobra.Command{
		Use:   "owned <code>",
		Short: "Show whether the draft with a code has a published book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cleanup, err := cli.open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			state, book, err := c.LibraryService.State(ctx, model.NewSession(args[0]))
			if err != nil {
				return err
			}

			switch state {
			case model.StatePublished:
				fmt.Fprintf(cli.out, "Published as book %s: %s\n", strconv.FormatInt(book.ID, 10), book.Title)
			case model.StateDrafted:
				fmt.Fprintln(cli.out, "Not published.")
			default:
				fmt.Fprintln(cli.out, "No draft code given.")
			}
			return nil
		},
	}
}
