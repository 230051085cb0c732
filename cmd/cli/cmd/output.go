package cmd

import (
	"fmt"
	"itemplane/pkg/api"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorDim   = "\033[2m"
	colorRed   = "\033[31m"
)

const maxDescriptionWidth = 40

func printItem(cmd *cobra.Command, item api.Item) {
	cmd.Printf("%sItem %d%s\n", colorBold, item.ID, colorReset)
	cmd.Println("──────────────────────────────")
	cmd.Printf("%sName:%s        %s\n", colorDim, colorReset, item.Name)
	if item.Description != "" {
		cmd.Printf("%sDescription:%s %s\n", colorDim, colorReset, item.Description)
	}
	cmd.Printf("%sQuantity:%s    %s\n", colorDim, colorReset, colorizeQuantity(item.Quantity))
}

func printItemTable(cmd *cobra.Command, items []api.Item) {
	if len(items) == 0 {
		cmd.Println("No items found.")
		return
	}

	tw := tabwriter.NewWriter(cmd.OutOrStderr(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQUANTITY\tDESCRIPTION")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", item.ID, item.Name, item.Quantity, truncate(item.Description, maxDescriptionWidth))
	}
	tw.Flush()

	cmd.Printf("\n%d item(s)\n", len(items))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func colorizeQuantity(q int) string {
	if q == 0 {
		return colorRed + "0 (out of stock)" + colorReset
	}
	return strconv.Itoa(q)
}
