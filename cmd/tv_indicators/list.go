package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the collected indicator list",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cmd.Flags().Bool("json", false, "print the raw JSON list")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, os.Stdout)
	if err != nil {
		return err
	}

	svc := buildService(cfg, nil)
	records, err := svc.ListIndicators(cmd.Context())
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		data, err := json.MarshalIndent(records, "", "    ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no indicators collected yet")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tURL")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n", rec.Name, rec.ID, rec.URL)
	}
	return w.Flush()
}
