package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/bithumb/bithumb"
	"github.com/rustyeddy/bithumb/journal"
)

var tickersCmd = &cobra.Command{
	Use:   "tickers",
	Short: "List every market quoted in the payment currency",
	Args:  cobra.NoArgs,
	RunE:  runTickers,
}

var priceCmd = &cobra.Command{
	Use:   "price <CUR|ALL>",
	Short: "Print the last traded price of a market, or of every market",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrice,
}

var detailCmd = &cobra.Command{
	Use:   "detail <CUR>",
	Short: "Print the 24h low, high, average and volume of a market",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetail,
}

var orderbookCmd = &cobra.Command{
	Use:   "orderbook <CUR>",
	Short: "Print the order book of a market",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderbook,
}

var candlesCmd = &cobra.Command{
	Use:   "candles <CUR>",
	Short: "Print or export the candlestick history of a market",
	Long: `Fetch candlestick history. Times are Korea Standard Time without an offset.

Examples:
  bithumb candles BTC --interval 1h --limit 24
  bithumb candles BTC --interval 24h --csv -o btc.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runCandles,
}

var (
	orderbookRaw  bool
	orderbookRows int

	candlesInterval string
	candlesCSV      bool
	candlesOutput   string
	candlesLimit    int
)

func init() {
	for _, c := range []*cobra.Command{tickersCmd, priceCmd, detailCmd, orderbookCmd, candlesCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringP("payment", "p", "", "payment currency (default from config)")
	}

	orderbookCmd.Flags().BoolVar(&orderbookRaw, "raw", false, "print the payload as JSON")
	orderbookCmd.Flags().IntVarP(&orderbookRows, "rows", "n", 5, "price levels per side")

	candlesCmd.Flags().StringVarP(&candlesInterval, "interval", "i", string(bithumb.Hour24), "candle interval: 1m 3m 5m 10m 30m 1h 6h 12h 24h")
	candlesCmd.Flags().BoolVar(&candlesCSV, "csv", false, "write CSV")
	candlesCmd.Flags().StringVarP(&candlesOutput, "output", "o", "", "CSV output file (default stdout)")
	candlesCmd.Flags().IntVarP(&candlesLimit, "limit", "l", 10, "print only the most recent rows (0 for all)")
}

func runTickers(cmd *cobra.Command, args []string) error {
	p, err := publicClient()
	if err != nil {
		return err
	}
	codes, err := p.ListTickers(cmd.Context(), paymentCurrency(cmd))
	if err != nil {
		return fmt.Errorf("list tickers: %w", err)
	}
	for _, c := range codes {
		fmt.Fprintln(cmd.OutOrStdout(), c)
	}
	return nil
}

func runPrice(cmd *cobra.Command, args []string) error {
	p, err := publicClient()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	pc := paymentCurrency(cmd)

	if strings.EqualFold(args[0], bithumb.All) {
		all, err := p.GetAllPrices(cmd.Context(), pc)
		if err != nil {
			return fmt.Errorf("get prices: %w", err)
		}
		codes := make([]string, 0, len(all))
		for c := range all {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		for _, c := range codes {
			fmt.Fprintf(out, "%-8s %s %s\n", c, all[c].Closing, pc)
		}
		return nil
	}

	price, err := p.GetPrice(cmd.Context(), args[0], pc)
	if err != nil {
		return fmt.Errorf("get price: %w", err)
	}
	fmt.Fprintf(out, "%s %s\n", price, pc)
	return nil
}

func runDetail(cmd *cobra.Command, args []string) error {
	p, err := publicClient()
	if err != nil {
		return err
	}
	d, err := p.GetMarketDetail(cmd.Context(), args[0], paymentCurrency(cmd))
	if err != nil {
		return fmt.Errorf("get market detail: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "low:     %g\n", d.Low)
	fmt.Fprintf(out, "high:    %g\n", d.High)
	fmt.Fprintf(out, "average: %g\n", d.Average)
	fmt.Fprintf(out, "volume:  %g\n", d.Volume)
	return nil
}

func runOrderbook(cmd *cobra.Command, args []string) error {
	p, err := publicClient()
	if err != nil {
		return err
	}
	raw, err := p.GetOrderBook(cmd.Context(), args[0], paymentCurrency(cmd))
	if err != nil {
		return fmt.Errorf("get order book: %w", err)
	}

	out := cmd.OutOrStdout()
	if orderbookRaw || strings.EqualFold(args[0], bithumb.All) {
		b, err := sonic.ConfigStd.MarshalIndent(raw, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
		return nil
	}

	ob, err := bithumb.ParseOrderBook(raw)
	if err != nil {
		return fmt.Errorf("parse order book: %w", err)
	}
	fmt.Fprintf(out, "%s/%s at %s\n", ob.OrderCurrency, ob.PaymentCurrency, ob.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(out, "asks:")
	asks := ob.Asks
	if len(asks) > orderbookRows {
		asks = asks[:orderbookRows]
	}
	// highest ask first so the spread sits in the middle
	for i := len(asks) - 1; i >= 0; i-- {
		fmt.Fprintf(out, "  %16s  %s\n", asks[i].Price, asks[i].Quantity)
	}
	fmt.Fprintln(out, "bids:")
	for i, l := range ob.Bids {
		if i == orderbookRows {
			break
		}
		fmt.Fprintf(out, "  %16s  %s\n", l.Price, l.Quantity)
	}
	return nil
}

func runCandles(cmd *cobra.Command, args []string) error {
	iv, err := bithumb.ParseInterval(candlesInterval)
	if err != nil {
		return err
	}
	p, err := publicClient()
	if err != nil {
		return err
	}
	s, err := p.GetCandlestick(cmd.Context(), args[0], paymentCurrency(cmd), iv)
	if err != nil {
		return fmt.Errorf("get candlestick: %w", err)
	}

	if candlesCSV {
		if candlesOutput == "" {
			return journal.WriteCandlesCSV(cmd.OutOrStdout(), s)
		}
		f, err := os.Create(candlesOutput)
		if err != nil {
			return err
		}
		if err := journal.WriteCandlesCSV(f, s); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Wrote %d candles to %s", s.Len(), candlesOutput)
		return nil
	}

	out := cmd.OutOrStdout()
	rows := s.Rows
	if candlesLimit > 0 && len(rows) > candlesLimit {
		rows = rows[len(rows)-candlesLimit:]
	}
	fmt.Fprintf(out, "%-23s %14s %14s %14s %14s %16s\n", "time (KST)", "open", "high", "low", "close", "volume")
	for _, c := range rows {
		fmt.Fprintf(out, "%-23s %14g %14g %14g %14g %16g\n",
			c.Time.Format("2006-01-02 15:04:05"), c.Open, c.High, c.Low, c.Close, c.Volume)
	}
	if s.Duplicates > 0 {
		fmt.Fprintf(out, "(%d duplicate rows dropped)\n", s.Duplicates)
	}
	return nil
}
