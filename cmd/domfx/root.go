package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/npillmayer/domfx/dom"
	"github.com/npillmayer/domfx/fx/clock"
	"github.com/npillmayer/domfx/fx/ease"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys. Flags are bound to them, environment variables are
// DOMFX_ plus the upper-cased key.
const (
	keyConfig        = "config"
	keyIn            = "in"
	keyOut           = "out"
	keySelect        = "select"
	keyEffect        = "effect"
	keyDuration      = "duration"
	keyEasing        = "easing"
	keyFrameInterval = "frame_interval"
	keyTimeout       = "timeout"
	keyTrace         = "trace"
)

// newRootCmd builds the command tree with a configuration of its own.
func newRootCmd() *cobra.Command {
	conf := viper.New()
	root := &cobra.Command{
		Use:           "domfx",
		Short:         "run effects on HTML documents",
		Long:          `domfx parses HTML documents, runs effects on selected elements and writes the result.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(conf)
		},
	}
	root.PersistentFlags().String("config", "", "config file (default is $HOME/.domfx.yaml)")
	root.PersistentFlags().StringP("in", "i", "-", "input HTML file, - for stdin")
	root.PersistentFlags().String("trace", "", "trace level for all packages (Debug, Info, Error)")
	bind(conf, root, keyConfig, "config")
	bind(conf, root, keyIn, "in")
	bind(conf, root, keyTrace, "trace")
	conf.SetDefault(keyEasing, ease.Default)
	conf.SetDefault(keyFrameInterval, clock.DefaultInterval)
	root.AddCommand(newRunCmd(conf), newTreeCmd(conf))
	return root
}

func bind(conf *viper.Viper, cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	if err := conf.BindPFlag(key, f); err != nil {
		tracer().Errorf("cannot bind flag %s: %v", flag, err)
	}
}

func initConfig(conf *viper.Viper) error {
	if file := conf.GetString(keyConfig); file != "" {
		conf.SetConfigFile(file)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			conf.AddConfigPath(home)
		}
		conf.AddConfigPath(".")
		conf.SetConfigType("yaml")
		conf.SetConfigName(".domfx")
	}
	conf.SetEnvPrefix("domfx")
	conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	conf.AutomaticEnv()
	if err := conf.ReadInConfig(); err == nil {
		tracer().Infof("using config file %s", conf.ConfigFileUsed())
	} else if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && conf.GetString(keyConfig) != "" {
		return err
	}
	if level := conf.GetString(keyTrace); level != "" {
		l, err := traceLevel(level)
		if err != nil {
			return err
		}
		for _, key := range []string{"domfx.cli", "domfx.fx", "domfx.dom", "domfx.query"} {
			tracing.Select(key).SetTraceLevel(l)
		}
	}
	return nil
}

// readDocument parses the input document, "-" denoting stdin.
func readDocument(cmd *cobra.Command, conf *viper.Viper) (*dom.Document, error) {
	in := conf.GetString(keyIn)
	var r io.Reader = cmd.InOrStdin()
	if in != "-" && in != "" {
		f, err := os.Open(in)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return dom.Parse(r)
}

func traceLevel(s string) (tracing.TraceLevel, error) {
	switch strings.ToLower(s) {
	case "debug":
		return tracing.LevelDebug, nil
	case "info":
		return tracing.LevelInfo, nil
	case "error":
		return tracing.LevelError, nil
	}
	return tracing.LevelError, fmt.Errorf("unknown trace level %q", s)
}
