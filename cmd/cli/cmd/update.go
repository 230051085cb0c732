package cmd

import (
	"itemplane/pkg/api"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var updateCmd = &cobra.Command{
	Use:   "update [item_id]",
	Short: "Update an existing item",
	Long: `Update an existing item. Only the flags you pass are sent.

By default the change is a partial update (PATCH). With --replace the request
is a full update (PUT) and --name becomes required.

Example:
  itemctl update 3 --quantity 10
  itemctl update 3 --replace --name "mallet" --quantity 1`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseItemID(args[0])
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		flags := cmd.Flags()
		replace, _ := flags.GetBool("replace")

		var req api.ItemRequest
		if flags.Changed("name") {
			name, _ := flags.GetString("name")
			req.Name = &name
		}
		if flags.Changed("description") {
			description, _ := flags.GetString("description")
			req.Description = &description
		}
		if flags.Changed("quantity") {
			quantity, _ := flags.GetInt("quantity")
			req.Quantity = &quantity
		}

		if replace && req.Name == nil {
			cmd.Println("Error: --name is required with --replace")
			return
		}
		if !replace && req.Name == nil && req.Description == nil && req.Quantity == nil {
			cmd.Println("Error: nothing to update; pass at least one of --name, --description, --quantity")
			return
		}

		client := NewItemClient(viper.GetString("url"))
		item, err := client.UpdateItem(id, req, replace)
		if err != nil {
			printAPIError(cmd, err)
			return
		}

		cmd.Printf("✓ Item updated!\n")
		printItem(cmd, *item)
	},
}

func init() {
	flags := updateCmd.Flags()
	flags.StringP("name", "n", "", "New name")
	flags.StringP("description", "d", "", "New description")
	flags.IntP("quantity", "q", 0, "New quantity")
	flags.Bool("replace", false, "Replace the whole item (PUT) instead of patching it")

	rootCmd.AddCommand(updateCmd)
}
