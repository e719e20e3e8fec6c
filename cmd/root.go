// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zcash/hashkit"
	"github.com/zcash/hashkit/common"
	"github.com/zcash/hashkit/common/logging"
)

// errMismatch is returned by verify and check when a digest does not match;
// it has already been reported, so Execute only sets the exit status.
var errMismatch = errors.New("digest mismatch")

var cfgFile string
var log = logrus.NewEntry(logrus.New())
var logCloser io.Closer
var opts = &common.Options{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hashkit",
	Short: "hashkit computes SHA digests, HMACs and PBKDF2 keys",
	Long: `hashkit computes SHA-1, SHA-224, SHA-256, SHA-384 and SHA-512
digests, HMAC tags and PBKDF2 keys, and keeps a catalog of recorded
file digests for later verification`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		opts = &common.Options{
			LogLevel:    viper.GetUint64("log-level"),
			LogFile:     viper.GetString("log-file"),
			Algorithm:   viper.GetString("algorithm"),
			Workers:     viper.GetInt("workers"),
			MetricsFile: viper.GetString("metrics-file"),
			DBPath:      viper.GetString("db-path"),
		}
		opts.Validate()

		entry, closer, err := logging.New(opts.LogLevel, opts.LogFile)
		if err != nil {
			return err
		}
		log = entry
		logCloser = closer
		logging.LogToStderr = opts.LogLevel >= uint64(logrus.DebugLevel)

		log.Debugf("Options: %#v\n", opts)
		return nil
	},
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// algorithm resolves the --algorithm setting.
func algorithm() (hashkit.Algorithm, error) {
	return hashkit.ParseAlgorithm(opts.Algorithm)
}

// finish writes the metrics file, if one was requested, and closes the log.
func finish() {
	if opts.MetricsFile != "" {
		if err := writeMetrics(opts.MetricsFile); err != nil {
			log.WithFields(logrus.Fields{
				"error": err,
				"path":  opts.MetricsFile,
			}).Error("couldn't write metrics file")
		}
	}
	if logCloser != nil {
		logCloser.Close()
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Signal handler for graceful stops
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	finish()
	if err != nil {
		if errors.Cause(err) != errMismatch {
			log.WithFields(logrus.Fields{
				"error": err,
			}).Error("command failed")
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(hmacCmd)
	rootCmd.AddCommand(pbkdf2Cmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(forgetCmd)
	rootCmd.AddCommand(benchCmd)
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is current directory, hashkit.yaml)")
	flags.Int("log-level", int(logrus.InfoLevel), "log level (logrus 1-7)")
	flags.String("log-file", "", "log file to write JSON logs to (default stderr)")
	flags.StringP("algorithm", "a", "sha256", "hash algorithm: sha1, sha224, sha256, sha384 or sha512")
	flags.Int("workers", runtime.NumCPU(), "number of files to hash in parallel")
	flags.String("metrics-file", "", "write Prometheus metrics to this file on exit")
	flags.String("db-path", "./hashkit.db", "digest catalog used by record and check")

	viper.BindPFlag("log-level", flags.Lookup("log-level"))
	viper.SetDefault("log-level", int(logrus.InfoLevel))
	viper.BindPFlag("log-file", flags.Lookup("log-file"))
	viper.SetDefault("log-file", "")
	viper.BindPFlag("algorithm", flags.Lookup("algorithm"))
	viper.SetDefault("algorithm", "sha256")
	viper.BindPFlag("workers", flags.Lookup("workers"))
	viper.SetDefault("workers", runtime.NumCPU())
	viper.BindPFlag("metrics-file", flags.Lookup("metrics-file"))
	viper.SetDefault("metrics-file", "")
	viper.BindPFlag("db-path", flags.Lookup("db-path"))
	viper.SetDefault("db-path", "./hashkit.db")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Look in the current directory for a configuration file
		viper.AddConfigPath(".")
		// Viper auto appends extention to this config name
		// For example, hashkit.yml
		viper.SetConfigName("hashkit")
	}

	// Replace `-` in config options with `_` for ENV keys
	replacer := strings.NewReplacer("-", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.SetEnvPrefix("hashkit")
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
