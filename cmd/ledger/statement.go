package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/garyjia/vip-ledger/internal/application/service"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

func newStatementCmd(a *app) *cobra.Command {
	var view string

	cmd := &cobra.Command{
		Use:   "statement <client-id>",
		Short: "Print a client's statement of account",
		Long: `Print one client's transactions with debit and credit totals.

--view admin lists newest first, --view client keeps the order the entries
were recorded in. Amounts are shown in the display currency.`,
		Example: `  ledger statement 966558828009
  ledger statement 966558828009 --view client --lang en --currency USD`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var order entity.StatementOrder
			switch view {
			case "admin":
				order = entity.OrderDateDesc
			case "client":
				order = entity.OrderInsertion
			default:
				return fmt.Errorf("--view must be admin or client, got %q", view)
			}

			ctx := cmd.Context()
			c, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			stmt, err := c.Services().Statements.Statement(ctx, args[0], order)
			if err != nil {
				return err
			}

			tr := a.translator()
			money := i18n.NewCurrencyFormatter(a.cfg.Locale.Language, a.cfg.Locale.Currency)
			out := cmd.OutOrStdout()
			if stmt.Empty() {
				fmt.Fprintln(out, tr.T("statement.noTransactions", nil))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
				tr.T("statement.date", nil), tr.T("statement.description", nil),
				tr.T("statement.debit", nil), tr.T("statement.credit", nil), tr.T("statement.balance", nil))
			for _, tx := range stmt.Transactions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", tx.Date, tx.LocalizedDescription(tr.Lang()),
					money.FormatCurrency(tx.Debit), money.FormatCurrency(tx.Credit), money.FormatCurrency(tx.Balance))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\n%s: %s\n%s: %s\n%s: %s\n",
				tr.T("statement.totalDebit", nil), money.FormatCurrency(stmt.TotalDebit),
				tr.T("statement.totalCredit", nil), money.FormatCurrency(stmt.TotalCredit),
				tr.T("statement.netBalance", nil), money.FormatCurrency(stmt.NetBalance))
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", "admin", "admin (newest first) or client (recorded order)")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format   string
		out      string
		invoices bool
	)

	cmd := &cobra.Command{
		Use:   "export [client-id]",
		Short: "Export a client statement, or every invoice with --invoices",
		Long: `Render a client's statement as xlsx or pdf. Without --out the file is written
to the export directory (export.output_dir) and its path printed.

With --invoices the whole invoice list is written as a spreadsheet instead.`,
		Example: `  ledger export 966558828009 --format pdf --lang en
  ledger export 966558828009 --out statement.xlsx
  ledger export --invoices`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if invoices == (len(args) == 1) {
				return fmt.Errorf("give either a client id or --invoices")
			}

			ctx := cmd.Context()
			c, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			if invoices {
				admin := entity.AdminUser{Email: a.cfg.Auth.AdminEmail}
				result, err := c.Services().Invoices.Export(ctx, admin, a.cfg.Locale.Language, a.cfg.Locale.Currency)
				if err != nil {
					return err
				}
				if out == "" {
					out = result.Filename
				}
				return writeExport(cmd, out, result)
			}

			req := service.ExportRequest{
				ClientID: args[0],
				Format:   format,
				Lang:     a.cfg.Locale.Language,
				Currency: a.cfg.Locale.Currency,
			}
			if out == "" {
				path, err := c.Services().Statements.SaveExport(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}

			result, err := c.Services().Statements.Export(ctx, req)
			if err != nil {
				return err
			}
			return writeExport(cmd, out, result)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "Statement format: xlsx or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of the export directory")
	cmd.Flags().BoolVar(&invoices, "invoices", false, "Export the invoice list instead of a statement")
	return cmd
}

func writeExport(cmd *cobra.Command, path string, result *service.ExportResult) error {
	if err := os.WriteFile(path, result.Data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
