package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [item_id]",
	Aliases: []string{"rm"},
	Short:   "Delete an item",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseItemID(args[0])
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		client := NewItemClient(viper.GetString("url"))
		if err := client.DeleteItem(id); err != nil {
			printAPIError(cmd, err)
			return
		}

		cmd.Printf("✓ Item %d deleted\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
