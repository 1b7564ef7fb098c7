package cmd

import (
	"fmt"
	"os"

	"github.com/aqlanhadi/ledgr/config"
	"github.com/aqlanhadi/ledgr/extractor"
	"github.com/aqlanhadi/ledgr/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile   string
	verbose   bool
	appConfig config.Config
	logger    = zap.NewNop()
	rootCmd   = &cobra.Command{
		Use:   "ledgr [filename]",
		Short: "Extract and categorize transactions from OPay statements",
		Long: `ledgr turns OPay account statements into structured, categorized transactions.
Statements can be printed as JSON, exported to CSV, summarized, served over HTTP
or imported into PostgreSQL.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				viper.Set("target", args[0])
				return runExtract(extractCmd, []string{})
			}
			return cmd.Help()
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.ledgr.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	appConfig = cfg
}

func initLogging() {
	l, err := logging.New(appConfig.Log.Level, verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	logger = l
}

// newExtractor builds an extractor from the loaded configuration.
func newExtractor() (*extractor.Extractor, error) {
	opts, err := appConfig.ParserOptions()
	if err != nil {
		return nil, err
	}
	return extractor.New(logger, opts...), nil
}
