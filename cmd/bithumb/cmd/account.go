package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var feeCmd = &cobra.Command{
	Use:   "fee <CUR>",
	Short: "Print the account's trading fee rate for a market",
	Args:  cobra.ExactArgs(1),
	RunE:  runFee,
}

var balanceCmd = &cobra.Command{
	Use:   "balance <CUR>",
	Short: "Print the holdings of a coin and of KRW",
	Args:  cobra.ExactArgs(1),
	RunE:  runBalance,
}

func init() {
	rootCmd.AddCommand(feeCmd)
	rootCmd.AddCommand(balanceCmd)

	feeCmd.Flags().StringP("payment", "p", "", "payment currency (default from config)")
}

func runFee(cmd *cobra.Command, args []string) error {
	p, done, err := privateClient()
	if err != nil {
		return err
	}
	defer done()

	fee, err := p.GetTradingFee(cmd.Context(), args[0], paymentCurrency(cmd))
	if err != nil {
		return fmt.Errorf("get trading fee: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "trade fee: %s\n", fee)
	return nil
}

func runBalance(cmd *cobra.Command, args []string) error {
	p, done, err := privateClient()
	if err != nil {
		return err
	}
	defer done()

	b, err := p.GetBalance(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get balance: %w", err)
	}

	coin := strings.ToUpper(args[0])
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-6s total %g  in use %g\n", coin, b.Total, b.InUse)
	fmt.Fprintf(out, "%-6s total %g  in use %g\n", "KRW", b.TotalKRW, b.InUseKRW)
	return nil
}
