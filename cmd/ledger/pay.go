package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/infrastructure/notify"
	"github.com/garyjia/vip-ledger/internal/interfaces/client"
)

func newPayCmd(a *app) *cobra.Command {
	var (
		apiURL   string
		username string
		password string
		token    string
		form     entity.PaymentForm
		method   string
	)

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Record a payment through a running server",
		Long: `Record a payment against an invoice by calling the HTTP API.

Authenticate with --token or with admin --username and --password
(LEDGER_API_PASSWORD is read when --password is empty). API failures are
reported in the configured language.`,
		Example: `  ledger pay --server http://localhost:8080 --invoice INV-1002 --amount 690 --method "Bank Transfer" --username admin@example.com`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if apiURL == "" {
				apiURL = a.cfg.Server.BaseURL
			}
			if password == "" {
				password = os.Getenv("LEDGER_API_PASSWORD")
			}
			form.Method = entity.PaymentMethod(method)

			api := client.New(client.Config{
				BaseURL: apiURL,
				Token:   token,
				Lang:    a.cfg.Locale.Language,
				Timeout: 30 * time.Second,
			}, a.logger)

			tr := a.translator()
			report := func(err error) error {
				client.Report(ctx, notify.NewLogNotifier(a.logger), tr, err)
				return errors.New(client.Describe(err, tr))
			}

			if token == "" {
				if username == "" {
					return fmt.Errorf("either --token or --username is required")
				}
				if _, err := api.Login(ctx, username, password); err != nil {
					return report(err)
				}
			}

			payment, err := api.RecordPayment(ctx, form)
			if err != nil {
				return report(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.2f\t%s\n", payment.ID, payment.InvoiceID, payment.Amount, payment.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&apiURL, "server", "", "API base URL (default server.base_url)")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Admin email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Admin password")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token from an earlier login")
	cmd.Flags().StringVar(&form.InvoiceID, "invoice", "", "Invoice id")
	cmd.Flags().Float64Var(&form.Amount, "amount", 0, "Amount in SAR")
	cmd.Flags().StringVar(&method, "method", string(entity.PaymentMethodBankTransfer), "Bank Transfer, Cash or Card")
	cmd.Flags().StringVar(&form.Date, "date", "", "Payment date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("invoice")
	return cmd
}
