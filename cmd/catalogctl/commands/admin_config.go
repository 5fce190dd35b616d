package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"inventory-service/internal/admin"

	"github.com/spf13/cobra"
)

// adminConfigCmd prints the admin registry
var adminConfigCmd = &cobra.Command{
	Use:   "admin-config",
	Short: "Print the back-office presentation config",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printAdminConfig(cmd.OutOrStdout(), admin.Default(), jsonOutput)
	},
}

func printAdminConfig(w io.Writer, r *admin.Registry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.Models())
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tLIST DISPLAY\tFILTERS\tSEARCH\tINLINES")
	for _, m := range r.Models() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			m.Model,
			strings.Join(m.ListDisplay, ", "),
			orDash(strings.Join(m.ListFilter, ", ")),
			orDash(strings.Join(m.SearchFields, ", ")),
			orDash(inlineChain(m.Inlines)))
	}
	return tw.Flush()
}

// inlineChain renders nested inlines as "a -> b"
func inlineChain(inlines []admin.Inline) string {
	parts := make([]string, 0, len(inlines))
	for _, in := range inlines {
		s := fmt.Sprintf("%s (%s)", in.Model, in.Style)
		if nested := inlineChain(in.Inlines); nested != "" {
			s += " -> " + nested
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(adminConfigCmd)
}
