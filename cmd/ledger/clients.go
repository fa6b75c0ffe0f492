package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

func newClientsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List or remove VIP clients",
	}
	cmd.AddCommand(newClientsListCmd(a), newClientsDeleteCmd(a))
	return cmd
}

func newClientsListCmd(a *app) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients, optionally filtered by company name or phone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			clients, err := c.Services().Clients.Search(ctx, query)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCOMPANY\tCONTACT\tADDRESS")
			for _, client := range clients {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", client.ID, client.CompanyName, client.ContactPerson, client.ShippingAddress)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&query, "search", "s", "", "Case-insensitive filter on company name or phone")
	return cmd
}

func newClientsDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <client-id>",
		Short: "Remove a client after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			var confirmer port.Confirmer = port.ConfirmFunc(func(string) bool { return true })
			if !yes {
				confirmer = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			err = c.Services().Clients.Delete(ctx, args[0], confirmer)
			if errors.Is(err, entity.ErrNotConfirmed) {
				fmt.Fprintln(cmd.OutOrStdout(), a.translator().T("errors.cancelled", nil))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// promptConfirmer asks on out and accepts y or yes read from in
func promptConfirmer(in io.Reader, out io.Writer) port.Confirmer {
	reader := bufio.NewReader(in)
	return port.ConfirmFunc(func(message string) bool {
		fmt.Fprintf(out, "%s [y/N]: ", message)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	})
}
