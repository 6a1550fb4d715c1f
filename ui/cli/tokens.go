// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/tokenmaster/internal/core"
	"github.com/toeirei/tokenmaster/internal/i18n"
	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/model"
)

// listColumns are the i18n ids of the list header, "#" first.
var listColumns = []string{
	"list.col.row",
	"list.col.project",
	"list.col.token",
	"list.col.permission",
	"list.col.user_id",
	"list.col.user_name",
	"list.col.expiry",
}

// printTokens writes tokens as an aligned table with 1-based row numbers.
func printTokens(out io.Writer, tokens []model.Token) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	headers := make([]string, len(listColumns))
	for i, k := range listColumns {
		headers[i] = strings.ToUpper(i18n.T(k))
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for i, t := range tokens {
		fmt.Fprintf(w, "%d\t%s\n", i+1, strings.Join(t.Fields(), "\t"))
	}
	return w.Flush()
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tokens",
		Long:  `Display all tokens, or the tokens of one project, as a table. Row numbers are the ones the delete command expects.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _ := cmd.Flags().GetString("project")
			api := newAPIClient(appConfig)
			ctx, cancel := requestContext(cmd)
			defer cancel()

			var tokens []model.Token
			var err error
			if project == "" {
				tokens, err = core.FetchAll(ctx, api)
			} else {
				tokens, err = core.LoadProject(ctx, api, project)
			}
			if err != nil {
				return err
			}

			if len(tokens) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.list.empty"))
				return nil
			}
			return printTokens(cmd.OutOrStdout(), tokens)
		},
	}
	cmd.Flags().String("project", "", "Only show tokens of this project")
	return cmd
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a token",
		Long:  `Add a single token. Every field is required.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			project, _ := f.GetString("project")
			token, _ := f.GetString("token")
			permission, _ := f.GetString("permission")
			userID, _ := f.GetString("user-id")
			userName, _ := f.GetString("user-name")
			expiry, _ := f.GetString("expiry")

			t := model.Token{
				ProjectName: project,
				Token:       token,
				Permission:  permission,
				UserID:      userID,
				UserName:    userName,
				ExpiryDate:  expiry,
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()
			if err := core.CreateToken(ctx, newAPIClient(appConfig), t); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.add.done"))
			return nil
		},
	}
	cmd.Flags().String("project", "", "Project name")
	cmd.Flags().String("token", "", "Token value")
	cmd.Flags().String("permission", "", "Permission")
	cmd.Flags().String("user-id", "", "User ID")
	cmd.Flags().String("user-name", "", "User name")
	cmd.Flags().String("expiry", "", "Expiry date (free text, e.g. 2025-01-01)")
	return cmd
}

// errEmptyProject rejects an update without a project. An empty project
// name would load every token and append them all again.
var errEmptyProject = errors.New("--project must not be empty")

// fieldEdit is one parsed --set argument.
type fieldEdit struct {
	index int // zero-based within the project list
	field string
	value string
}

// parseFieldEdit parses ROW.FIELD=VALUE. ROW is 1-based. FIELD is a token
// field name and is matched case-insensitively.
func parseFieldEdit(s string) (fieldEdit, error) {
	target, value, ok := strings.Cut(s, "=")
	if !ok {
		return fieldEdit{}, fmt.Errorf("invalid --set %q: expected ROW.FIELD=VALUE", s)
	}
	row, field, ok := strings.Cut(target, ".")
	if !ok {
		return fieldEdit{}, fmt.Errorf("invalid --set %q: expected ROW.FIELD=VALUE", s)
	}
	index, err := core.ParseRowNumber(row)
	if err != nil {
		return fieldEdit{}, fmt.Errorf("invalid --set %q: %w", s, err)
	}
	for _, name := range model.FieldNames {
		if strings.EqualFold(name, strings.TrimSpace(field)) {
			return fieldEdit{index: index, field: name, value: value}, nil
		}
	}
	return fieldEdit{}, fmt.Errorf("invalid --set %q: %w", s, core.ErrUnknownField)
}

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace the tokens of one project after editing fields",
		Long: `Load the tokens of a project, apply every --set edit locally and send the
whole list back in one request. ROW counts from 1 within the project.

Example:
  tokenmaster update --project proj1 --set 1.permission=write --set 2.expiryDate=2026-01-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _ := cmd.Flags().GetString("project")
			if project == "" {
				return errEmptyProject
			}
			sets, _ := cmd.Flags().GetStringArray("set")
			if len(sets) == 0 {
				return errors.New("at least one --set ROW.FIELD=VALUE is required")
			}
			edits := make([]fieldEdit, 0, len(sets))
			for _, s := range sets {
				e, err := parseFieldEdit(s)
				if err != nil {
					return err
				}
				edits = append(edits, e)
			}

			api := newAPIClient(appConfig)
			ctx, cancel := requestContext(cmd)
			defer cancel()

			tokens, err := core.LoadProject(ctx, api, project)
			if err != nil {
				return err
			}
			for _, e := range edits {
				if err := core.EditField(tokens, e.index, e.field, e.value); err != nil {
					return fmt.Errorf("row %d: %w", e.index+1, err)
				}
			}
			if err := core.SubmitProject(ctx, api, project, tokens); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.update.done", len(tokens), project))
			return nil
		},
	}
	cmd.Flags().String("project", "", "Project whose tokens are replaced")
	cmd.Flags().StringArray("set", nil, "Field edit ROW.FIELD=VALUE (repeatable)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <row>",
		Short: "Delete the token at a 1-based row number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := core.ParseRowNumber(args[0])
			if err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				answer := promptForConfirmation(cmd.InOrStdin(), cmd.OutOrStdout(), i18n.T("cli.delete.confirm", index+1))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.delete.aborted"))
					return nil
				}
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()
			if err := core.DeleteIndex(ctx, newAPIClient(appConfig), index); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.delete.done", index+1))
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Upload a CSV file, replacing all tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			ctx, cancel := requestContext(cmd)
			defer cancel()
			if err := core.ImportCSV(ctx, newAPIClient(appConfig), args[0]); err != nil {
				return err
			}
			logging.Debugf("import took %s", elapsed(start))
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.import.done", args[0]))
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Save all tokens to a CSV file",
		Long: `Fetch every token and write it as CSV without a header. When no file is
given and stdin is a terminal, the file name is asked for with the
configured default as suggestion.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			tokens, err := core.FetchAll(ctx, newAPIClient(appConfig))
			if err != nil {
				return err
			}
			if len(tokens) == 0 {
				return core.ErrNothingToExport
			}

			filename := appConfig.Export.DefaultFilename
			if len(args) == 1 {
				filename = args[0]
			} else if isTerminal() {
				name, ok := promptForFilename(cmd.InOrStdin(), cmd.OutOrStdout(), filename)
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.export.cancelled"))
					return nil
				}
				filename = name
			}

			if err := core.ExportToFile(tokens, filename); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.export.done", len(tokens), filename))
			return nil
		},
	}
}
