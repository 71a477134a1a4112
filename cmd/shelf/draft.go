package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bookshelf-backend/internal/domains/library/model"
)

// draftFlags are the form fields shared by "draft save" and "publish".
type draftFlags struct {
	title       string
	subtitle    string
	author      string
	content     string
	contentFile string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Book title")
	cmd.Flags().StringVar(&f.subtitle, "subtitle", "", "Book subtitle")
	cmd.Flags().StringVar(&f.author, "author", "", "Author name")
	cmd.Flags().StringVar(&f.content, "content", "", "Book text")
	cmd.Flags().StringVar(&f.contentFile, "content-file", "", "Read book text from a file ('-' for stdin)")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
}

// request builds a validated DraftRequest from the flags.
func (f *draftFlags) request(in io.Reader) (model.DraftRequest, error) {
	req := model.DraftRequest{
		Title:    f.title,
		Subtitle: f.subtitle,
		Author:   f.author,
		Content:  f.content,
	}

	switch f.contentFile {
	case "":
	case "-":
		b, err := io.ReadAll(in)
		if err != nil {
			return req, fmt.Errorf("failed to read content from stdin: %w", err)
		}
		req.Content = string(b)
	default:
		b, err := os.ReadFile(f.contentFile)
		if err != nil {
			return req, fmt.Errorf("failed to read content file: %w", err)
		}
		req.Content = string(b)
	}

	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

func newDraftCmd(cli *shelfCLI) *cobra.Command {
	draftCmd := &cobra.Command{
		Use:   "draft",
		Short: "Save and open drafts",
	}

	var flags draftFlags
	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Save a draft and print its new save code",
		Long: `Save the given fields as a new draft.

Every save produces a fresh code; earlier codes keep pointing at their own snapshot.`,
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

			code, err := c.LibraryService.SaveDraft(ctx, &model.Session{}, req.ToDraft())
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "Draft saved. Your code: %s\n", code)
			return nil
		},
	}
	flags.register(saveCmd)

	openCmd := &cobra.Command{
		Use:   "open <code>",
		Short: "Print the draft saved under a code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.IsWellFormedCode(model.NormalizeCode(args[0])) {
				fmt.Fprintf(cli.out, "Note: save codes are %d characters from A-Z and 0-9\n", model.CodeLength)
			}

			c, ctx, cleanup, err := cli.open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			d, err := c.LibraryService.LoadDraft(ctx, &model.Session{}, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cli.out, "Title:    %s\n", d.Title)
			fmt.Fprintf(cli.out, "Subtitle: %s\n", d.Subtitle)
			fmt.Fprintf(cli.out, "Author:   %s\n", d.Author)
			fmt.Fprintf(cli.out, "\n%s\n", d.Content)
			return nil
		},
	}

	draftCmd.AddCommand(saveCmd, openCmd)
	return draftCmd
}
