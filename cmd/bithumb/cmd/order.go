package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/bithumb/bithumb"
)

var buyCmd = &cobra.Command{
	Use:   "buy <CUR> <units>",
	Short: "Place a buy order (limit with --price, market otherwise)",
	Long: `Place a buy order. Units are truncated to 4 decimal places.

Examples:
  bithumb buy BTC 0.01 --price 90000000
  bithumb buy ETH 0.5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error { return runPlace(cmd, bithumb.Bid, args) },
}

var sellCmd = &cobra.Command{
	Use:   "sell <CUR> <units>",
	Short: "Place a sell order (limit with --price, market otherwise)",
	Args:  cobra.ExactArgs(2),
	RunE:  func(cmd *cobra.Command, args []string) error { return runPlace(cmd, bithumb.Ask, args) },
}

var remainingCmd = &cobra.Command{
	Use:   "remaining <bid|ask> <CUR> <order-id>",
	Short: "Print the unfilled units of an order",
	Args:  cobra.ExactArgs(3),
	RunE:  runRemaining,
}

var orderCmd = &cobra.Command{
	Use:   "order <bid|ask> <CUR> <order-id>",
	Short: "Print the fill detail of an order",
	Args:  cobra.ExactArgs(3),
	RunE:  runOrderDetail,
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <bid|ask> <CUR> <order-id>",
	Short: "Cancel an open order",
	Args:  cobra.ExactArgs(3),
	RunE:  runCancel,
}

func init() {
	for _, c := range []*cobra.Command{buyCmd, sellCmd, remainingCmd, orderCmd, cancelCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringP("payment", "p", "", "payment currency (default from config)")
	}
	buyCmd.Flags().Float64("price", 0, "limit price; omit for a market order")
	sellCmd.Flags().Float64("price", 0, "limit price; omit for a market order")
}

func runPlace(cmd *cobra.Command, side bithumb.Side, args []string) error {
	units, err := strconv.ParseFloat(args[1], 64)
	if err != nil || units <= 0 {
		return fmt.Errorf("units must be a positive number, got %q", args[1])
	}

	p, done, err := privateClient()
	if err != nil {
		return err
	}
	defer done()

	out := cmd.OutOrStdout()
	pc := paymentCurrency(cmd)

	if cmd.Flags().Changed("price") {
		price, err := cmd.Flags().GetFloat64("price")
		if err != nil {
			return err
		}
		od, err := p.PlaceLimitOrder(cmd.Context(), side, args[0], price, units, pc)
		if err != nil {
			printFail(out, "%s limit order rejected", side)
			return err
		}
		printOK(out, "Placed %s limit order %s", side, od.OrderID)
		fmt.Fprintf(out, "  %s units at %s %s\n", bithumb.Quantize(units), strconv.FormatFloat(price, 'f', -1, 64), pc)
		fmt.Fprintf(out, "  track with: bithumb remaining %s %s %s\n", od.Side, od.OrderCurrency, od.OrderID)
		return nil
	}

	resp, err := p.PlaceMarketOrder(cmd.Context(), side, args[0], units, pc)
	if err != nil {
		printFail(out, "%s market order rejected", side)
		return err
	}
	printOK(out, "Placed %s market order %s", side, resp.OrderID)
	fmt.Fprintf(out, "  %s units\n", bithumb.Quantize(units))
	return nil
}

func descriptor(cmd *cobra.Command, args []string) (bithumb.OrderDescriptor, error) {
	side, err := bithumb.ParseSide(args[0])
	if err != nil {
		return bithumb.OrderDescriptor{}, err
	}
	return bithumb.OrderDescriptor{
		Side:            side,
		OrderCurrency:   strings.ToUpper(args[1]),
		OrderID:         args[2],
		PaymentCurrency: paymentCurrency(cmd),
	}, nil
}

func runRemaining(cmd *cobra.Command, args []string) error {
	od, err := descriptor(cmd, args)
	if err != nil {
		return err
	}
	p, done, err := privateClient()
	if err != nil {
		return err
	}
	defer done()

	left, err := p.GetOrderRemaining(cmd.Context(), od)
	if err != nil {
		return fmt.Errorf("get order status: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%g\n", left)
	return nil
}

func runOrderDetail(cmd *cobra.Command, args []string) error {
	od, err := descriptor(cmd, args)
	if err != nil {
		return err
	}
	p, done, err := privateClient()
	if err != nil {
		return err
	}
	defer done()

	d, err := p.GetOrderDetail(cmd.Context(), od)
	if err != nil {
		return fmt.Errorf("get order detail: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Order: %s\n", od)
	fmt.Fprintf(out, "  Type:   %s\n", d.Type)
	fmt.Fprintf(out, "  Date:   %s\n", d.TransactionDate)
	fmt.Fprintf(out, "  Units:  %g %s\n", d.UnitsTraded, d.OrderCurrency)
	fmt.Fprintf(out, "  Price:  %g %s\n", d.Price, d.PaymentCurrency)
	fmt.Fprintf(out, "  Fee:    %g %s\n", d.Fee, d.FeeCurrency)
	fmt.Fprintf(out, "  Total:  %g %s\n", d.Total, d.PaymentCurrency)
	return nil
}

func runCancel(cmd *cobra.Command, args []string) error {
	od, err := descriptor(cmd, args)
	if err != nil {
		return err
	}
	p, done, err := privateClient()
	if err != nil {
		return err
	}
	defer done()

	out := cmd.OutOrStdout()
	cancelled, err := p.CancelOrder(cmd.Context(), od)
	if !cancelled {
		printFail(out, "Order %s not cancelled", od.OrderID)
		return err
	}
	printOK(out, "Cancelled order %s", od.OrderID)
	return nil
}
