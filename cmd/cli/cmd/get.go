package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var getCmd = &cobra.Command{
	Use:   "get [item_id]",
	Short: "Show a single item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseItemID(args[0])
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		client := NewItemClient(viper.GetString("url"))
		item, err := client.GetItem(id)
		if err != nil {
			printAPIError(cmd, err)
			return
		}

		printItem(cmd, *item)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func parseItemID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}
