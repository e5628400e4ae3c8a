package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rustyeddy/bithumb/api"
	"github.com/rustyeddy/bithumb/bithumb"
	"github.com/rustyeddy/bithumb/config"
	"github.com/rustyeddy/bithumb/journal"
	"github.com/rustyeddy/bithumb/logging"
)

var rootCmd = &cobra.Command{
	Use:   "bithumb",
	Short: "Command line client for the Bithumb exchange REST API",
	Long: `Bithumb is a command line client for the Bithumb cryptocurrency exchange.

It provides tools for:
  - Reading tickers, order books and candlestick history
  - Checking balances and trading fees
  - Placing, tracking and cancelling limit and market orders
  - Keeping a local SQLite journal of accepted orders

Private commands need an API key pair, read from the config file or from
BITHUMB_CONNECT_KEY and BITHUMB_SECRET_KEY.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	cfgFile  string
	logLevel string

	cfg *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig builds cfg from defaults, the optional config file and the
// BITHUMB_* environment, in that order.
func loadConfig(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return err
		}
		c = loaded
	}

	v := viper.New()
	v.SetEnvPrefix("bithumb")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlag("log_level", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}

	overlay := []struct {
		key string
		dst *string
	}{
		{"connect_key", &c.Credentials.ConnectKey},
		{"secret_key", &c.Credentials.SecretKey},
		{"base_url", &c.API.BaseURL},
		{"payment_currency", &c.Market.PaymentCurrency},
		{"log_level", &c.Log.Level},
	}
	for _, o := range overlay {
		if s := v.GetString(o.key); s != "" {
			*o.dst = s
		}
	}
	if v.IsSet("journal") {
		c.Journal.Enabled = v.GetBool("journal")
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := logging.Setup(c.Log.Level, os.Stderr); err != nil {
		return err
	}

	cfg = c
	return nil
}

func newTransport() (*api.Client, error) {
	timeout, err := cfg.API.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	c := api.NewClient(cfg.API.BaseURL, timeout)
	c.SetLogger(logging.Component("api"))
	return c, nil
}

func publicClient() (*bithumb.Public, error) {
	c, err := newTransport()
	if err != nil {
		return nil, err
	}
	return bithumb.NewPublic(c), nil
}

// privateClient returns a signing client. When the journal is enabled every
// accepted order is recorded; the returned func closes the journal.
func privateClient() (*bithumb.Private, func(), error) {
	if !cfg.Credentials.HasCredentials() {
		return nil, nil, fmt.Errorf("API keys required: set credentials in the config file or BITHUMB_CONNECT_KEY and BITHUMB_SECRET_KEY")
	}
	c, err := newTransport()
	if err != nil {
		return nil, nil, err
	}
	signed, err := api.NewPrivate(c, cfg.Credentials.ConnectKey, cfg.Credentials.SecretKey)
	if err != nil {
		return nil, nil, err
	}

	p := bithumb.NewPrivate(signed)
	p.SetLogger(logging.Component("bithumb"))

	if !cfg.Journal.Enabled {
		return p, func() {}, nil
	}
	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}
	p.OnOrder(j.Hook())
	return p, func() { _ = j.Close() }, nil
}

// paymentCurrency returns the --payment flag when given, else the configured default.
func paymentCurrency(cmd *cobra.Command) string {
	if f := cmd.Flags().Lookup("payment"); f != nil && f.Value.String() != "" {
		return strings.ToUpper(f.Value.String())
	}
	return cfg.Market.PaymentCurrency
}

func printOK(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, "%s %s\n", aurora.Green("✓"), fmt.Sprintf(format, a...))
}

func printFail(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, "%s %s\n", aurora.Red("✗"), fmt.Sprintf(format, a...))
}
