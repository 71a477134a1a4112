package main

import (
	"fmt"

	"github.com/spf13/cobra"

	libhandler "bookshelf-backend/internal/domains/library/handler"
	"bookshelf-backend/internal/domains/reader/model"
)

func newReadCmd(cli *shelfCLI) *cobra.Command {
	var req model.PageRequest
	cmd := &cobra.Command{
		Use:   "read <id>",
		Short: "Print one page of a published book",
		Long: `Print one page of a published book.

Pages outside the book are clamped to the first or last page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := libhandler.ParseBookID(args[0])
			if err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}

			c, ctx, cleanup, err := cli.open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			view, err := c.ReaderService.PageView(ctx, id, req.Page, req.CharsPerPage)
			if err != nil {
				return err
			}

			fmt.Fprintf(cli.out, "%s\n\n%s\n\n[page %d / %d]\n", view.Title, view.Text, view.Page, view.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&req.Page, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&req.CharsPerPage, "chars-per-page", 0, "Characters per page (default from READER_CHARS_PER_PAGE)")
	return cmd
}

func newExportCmd(cli *shelfCLI) *cobra.Command {
	var (
		out          string
		charsPerPage int
	)
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a published book as EPUB",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := libhandler.ParseBookID(args[0])
			if err != nil {
				return err
			}
			if err := (model.PageRequest{CharsPerPage: charsPerPage}).Validate(); err != nil {
				return err
			}

			c, ctx, cleanup, err := cli.open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			_, size, err := c.ReaderService.ExportEPUB(ctx, id, charsPerPage, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "Wrote %s (%d bytes)\n", out, size)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output .epub file")
	cmd.Flags().IntVar(&charsPerPage, "chars-per-page", 0, "Characters per page")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
