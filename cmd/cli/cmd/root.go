package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "itemctl",
	Short: "Itemctl is a command line tool for managing items in itemplane",
	Long: `itemctl is the command-line interface for the itemplane item API.

Common workflows:

  List items:
    itemctl list
    itemctl list --source read

  Create an item:
    itemctl create --name "hammer" --description "claw hammer" --quantity 3

  Change one field:
    itemctl update 1 --quantity 10

  Remove an item:
    itemctl delete 1

Configuration:
  Set the API endpoint via environment variable or a config file:
    ITEMPLANE_URL    API endpoint (default: http://localhost:6161)`,
}

func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".itemctl"
		viper.AddConfigPath(home)
		viper.SetConfigName(".itemctl")
		viper.SetConfigType("yaml")
	}

	// Read environment variables that match "ITEMPLANE_VARNAME"
	viper.SetEnvPrefix("ITEMPLANE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.itemctl.yaml)")

	rootCmd.PersistentFlags().String("url", "http://localhost:6161", "itemplane API URL")
	viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
}

// printAPIError reports a failed call in the same format for every command.
func printAPIError(cmd *cobra.Command, err error) {
	if apiErr, ok := err.(*APIError); ok {
		cmd.Printf("Error (%d): %s\n", apiErr.StatusCode, apiErr.Message)
		return
	}
	cmd.Printf("Error: %v\n", err)
}
