package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/bithumb/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage client configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  bithumb config init -o bithumb.yaml
  bithumb config validate -f bithumb.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "bithumb.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	_ = configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if err := c.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	printOK(out, "Created default configuration: %s", configInitOutput)
	fmt.Fprintln(out, "\nAdd your API keys to the file, or export them:")
	fmt.Fprintln(out, "  export BITHUMB_CONNECT_KEY=... BITHUMB_SECRET_KEY=...")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	c, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		printFail(cmd.OutOrStdout(), "Configuration invalid: %s", configValidatePath)
		return err
	}

	out := cmd.OutOrStdout()
	printOK(out, "Configuration valid: %s", configValidatePath)
	fmt.Fprintf(out, "  API: %s (timeout %s)\n", c.API.BaseURL, c.API.Timeout)
	fmt.Fprintf(out, "  Payment currency: %s\n", c.Market.PaymentCurrency)
	fmt.Fprintf(out, "  Credentials: %t\n", c.Credentials.HasCredentials())
	if c.Journal.Enabled {
		fmt.Fprintf(out, "  Journal: %s\n", c.Journal.DBPath)
	} else {
		fmt.Fprintln(out, "  Journal: disabled")
	}
	return nil
}
