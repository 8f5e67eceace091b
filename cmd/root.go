package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yext/hellod/common"
	"github.com/yext/hellod/config"
	"github.com/yext/hellod/home"
	"github.com/yext/hellod/instance"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var configPath string
var hellodHome string

var settingsViper = config.New()
var settings config.Settings
var dirConfig *home.HellodConfiguration
var logFile io.Closer = io.NopCloser(nil)
var hellodInstance *instance.Instance

// RootCmd represents the base command when called without any subcommands.
// Run without a subcommand, it serves.
var RootCmd = &cobra.Command{
	Use:   "hellod",
	Short: "A minimal HTTP server",
	Long: `hellod serves "Hello, world!" on a single route, printing the address it is
bound to and shutting down gracefully when interrupted.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		dirConfig, err = home.NewConfiguration(hellodHome)
		if err != nil {
			return errors.WithStack(err)
		}

		path, err := resolveConfigPath(dirConfig.Dir)
		if err != nil {
			return errors.WithStack(err)
		}
		settings, err = config.Load(settingsViper, path)
		if err != nil {
			return errors.WithStack(err)
		}

		setupLogging(cmd)

		log.Printf("=== hellod v%v ===\n", common.HellodVersion)
		log.Printf("Args: %v\n", os.Args)
		if path != "" {
			log.Printf("Using config file: %v\n", path)
		}

		hellodInstance = instance.New(filepath.Join(dirConfig.Dir, "hellod.pid"), "hellod", log.Default())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Printf("=== Exiting ===\n")
		_ = logFile.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.WithStack(serve())
	},
}

func resolveConfigPath(homeDir string) (string, error) {
	if configPath != "" {
		path, err := homedir.Expand(configPath)
		return path, errors.WithStack(err)
	}
	path, err := config.GetConfigPathFromWorkingDirectory(homeDir)
	return path, errors.WithStack(err)
}

// setupLogging points the standard logger at the rotated log file, or at
// stderr when logs are redirected. Stdout is reserved for the listening line.
func setupLogging(cmd *cobra.Command) {
	log.SetPrefix(fmt.Sprintf("%v > ", cmd.Name()))
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	if settings.RedirectLogs {
		log.SetOutput(os.Stderr)
		return
	}

	filename := settings.LogFile
	if filename == "" {
		filename = filepath.Join(dirConfig.LogDir, "hellod.log")
	}
	logger := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    settings.LogMaxSizeMB, // megabytes
		MaxBackups: settings.LogMaxBackups,
		MaxAge:     settings.LogMaxAgeDays, //days
	}
	log.SetOutput(logger)
	logFile = logger
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	// A .env file in the working directory is optional
	_ = godotenv.Load()

	if err := RootCmd.Execute(); err != nil {
		log.Printf("Error: %+v\n", err)
		_ = logFile.Close()
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Use settings file at `PATH`")
	RootCmd.PersistentFlags().StringVar(&hellodHome, "hellod_home", "", "")
	RootCmd.PersistentFlags().StringP("address", "a", config.DefaultAddress, "Bind to `HOST:PORT`")
	RootCmd.PersistentFlags().Duration("drain-timeout", 0, "Maximum time to wait for in-flight requests on shutdown, 0 waits indefinitely")
	RootCmd.PersistentFlags().Bool("redirect_logs", false, "Redirect hellod logs to stderr")

	mustBind(config.KeyAddress, "address")
	mustBind(config.KeyDrainTimeout, "drain-timeout")
	mustBind(config.KeyRedirectLogs, "redirect_logs")

	err := RootCmd.PersistentFlags().MarkHidden("redirect_logs")
	if err != nil {
		panic(err)
	}
	err = RootCmd.PersistentFlags().MarkHidden("hellod_home")
	if err != nil {
		panic(err)
	}
}

func mustBind(key, flag string) {
	if err := settingsViper.BindPFlag(key, RootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}
