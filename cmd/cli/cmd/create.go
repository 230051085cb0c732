package cmd

import (
	"itemplane/pkg/api"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new item",
	Long: `Create a new item. The server assigns the id.

Example:
  itemctl create --name "hammer"
  itemctl create --name "level" --description "laser level" --quantity 2 --via write`,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		name, _ := flags.GetString("name")
		via, _ := flags.GetString("via")

		if name == "" {
			cmd.Println("Error: --name is required")
			return
		}

		req := api.ItemRequest{Name: &name}
		if flags.Changed("description") {
			description, _ := flags.GetString("description")
			req.Description = &description
		}
		if flags.Changed("quantity") {
			quantity, _ := flags.GetInt("quantity")
			req.Quantity = &quantity
		}

		client := NewItemClient(viper.GetString("url"))
		item, err := client.CreateItem(via, req)
		if err != nil {
			printAPIError(cmd, err)
			return
		}

		cmd.Printf("✓ Item created!\n")
		printItem(cmd, *item)
	},
}

func init() {
	flags := createCmd.Flags()
	flags.StringP("name", "n", "", "Name of the item (required)")
	flags.StringP("description", "d", "", "Description of the item (optional)")
	flags.IntP("quantity", "q", 0, "Quantity in stock (optional)")
	flags.String("via", "items", "Endpoint to create through: items or write")

	rootCmd.AddCommand(createCmd)
}
