package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/pass-store/internal/app/domain/catalog"
	"github.com/FACorreiaa/pass-store/internal/pkg/format"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect the Pass storefront catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newListCmd(), newValidateCmd())
	return root
}

func newListCmd() *cobra.Command {
	var (
		path     string
		locale   string
		currency string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every section and its products with formatted prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prices, err := format.NewPriceFormatter(locale, currency)
			if err != nil {
				return err
			}
			c, err := catalog.Load(path, nil)
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), c, prices)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "catalog file (defaults to the embedded catalog)")
	cmd.Flags().StringVar(&locale, "locale", "pt-BR", "price locale")
	cmd.Flags().StringVar(&currency, "currency", "BRL", "ISO 4217 currency code")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a catalog file decodes and has the storefront layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(args[0], nil)
			if err != nil {
				return err
			}
			products := 0
			for _, s := range c.Sections() {
				products += len(s.Products)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d sections, %d products)\n", args[0], len(c.Sections()), products)
			return nil
		},
	}
}

func printCatalog(w io.Writer, c catalog.Repository, prices *format.PriceFormatter) {
	for _, s := range c.Sections() {
		fmt.Fprintf(w, "%s [%s] %s\n", s.ID, s.Variant, s.Title)
		for _, p := range s.Products {
			fmt.Fprintf(w, "  %3d  %-40s %s\n", p.ID, p.Name, prices.Format(p.Price))
		}
	}
}
