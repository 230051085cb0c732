package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all items",
	Long: `List every item ordered by id.

The read endpoint returns the same collection as the items endpoint.

Example:
  itemctl list
  itemctl list --source read`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		source, _ := cmd.Flags().GetString("source")

		client := NewItemClient(viper.GetString("url"))
		items, err := client.ListItems(source)
		if err != nil {
			printAPIError(cmd, err)
			return
		}

		printItemTable(cmd, items)
	},
}

func init() {
	listCmd.Flags().String("source", "items", "Endpoint to list from: items or read")
	rootCmd.AddCommand(listCmd)
}
