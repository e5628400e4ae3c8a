package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/bithumb/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the local order journal",
	Long: `Query orders recorded in the SQLite journal. Orders are journaled when
journal.enabled is set in the config file.

Subcommands:
  list   - List orders recorded on a day (default today)
  order  - List every event of one exchange order id

Examples:
  bithumb journal list
  bithumb journal list --day 2024-01-15 --csv
  bithumb journal order 1428646963419`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders recorded on a day",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalOrderCmd = &cobra.Command{
	Use:   "order <order-id>",
	Short: "List every event of an order",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalOrder,
}

var (
	journalDBPath string
	journalDay    string
	journalCSV    bool
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalOrderCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default from config)")
	journalCmd.PersistentFlags().BoolVar(&journalCSV, "csv", false, "write CSV")
	journalListCmd.Flags().StringVar(&journalDay, "day", "", "day as YYYY-MM-DD in local time (default today)")
}

func openJournal() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		path = cfg.Journal.DBPath
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	loc := time.Local
	day := journalDay
	if day == "" {
		day = time.Now().In(loc).Format("2006-01-02")
	}
	start, end, err := dayBounds(loc, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	entries, err := j.ListBetween(start, end)
	if err != nil {
		return fmt.Errorf("query journal: %w", err)
	}
	return printEntries(cmd.OutOrStdout(), entries)
}

func runJournalOrder(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.ListByOrder(args[0])
	if err != nil {
		return fmt.Errorf("query journal: %w", err)
	}
	return printEntries(cmd.OutOrStdout(), entries)
}

func printEntries(w io.Writer, entries []journal.Entry) error {
	if journalCSV {
		return journal.WriteEntriesCSV(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "no orders")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-6s %-3s %s/%s #%s",
			e.Time.In(time.Local).Format("2006-01-02 15:04:05"),
			e.Kind, e.Side, e.OrderCurrency, e.PaymentCurrency, e.OrderID)
		if !e.Units.IsZero() {
			fmt.Fprintf(w, "  units %s", e.Units)
		}
		if !e.Price.IsZero() {
			fmt.Fprintf(w, "  price %s", e.Price)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
