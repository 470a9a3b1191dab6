package main

import (
	"fmt"
	"os"

	"github.com/homeauctiondeals/gateway/internal/lib/email"
	"github.com/spf13/cobra"
)

var previewOut string

var previewCmd = &cobra.Command{
	Use:   "preview-email [template]",
	Short: "Render an email template with sample data",
	Long: `preview-email renders one of the embedded email templates with its
sample data and prints the HTML, or writes it to --out. Without an argument it
lists the available templates.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			for _, name := range email.PreviewTemplates() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}

		html, err := email.Preview(email.Template(args[0]))
		if err != nil {
			return err
		}

		if previewOut == "" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), html)
			return err
		}
		return os.WriteFile(previewOut, []byte(html), 0o644)
	},
}

func init() {
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "write the HTML to this file instead of stdout")
	rootCmd.AddCommand(previewCmd)
}
