// Package cli implements the checktype command line.
package cli

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// config holds settings resolved from flags, environment and config file.
type config struct {
	v *viper.Viper
}

func (c *config) output() string { return strings.ToLower(c.v.GetString("output")) }

func (c *config) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if c.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// NewRootCmd creates the checktype command tree. Each call returns an
// independent tree with its own configuration.
func NewRootCmd() *cobra.Command {
	cfg := &config{v: viper.New()}

	root := &cobra.Command{
		Use:   "checktype",
		Short: "Check signature descriptors and values against type expressions",
		Long: "checktype validates signature descriptor files, describes the signatures " +
			"they declare, and matches values against type expressions.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cfg.load(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "config file (YAML)")
	root.PersistentFlags().String("output", outputTable, "output format: table or json")
	root.PersistentFlags().Bool("verbose", false, "enable debug logging")

	root.AddCommand(newValidateCmd(cfg))
	root.AddCommand(newDescribeCmd(cfg))
	root.AddCommand(newMatchCmd(cfg))
	return root
}

// load reads the config file, if any, and binds flags and CHECKTYPE_* env vars.
func (c *config) load(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	c.v.SetDefault("output", outputTable)
	c.v.SetEnvPrefix("CHECKTYPE")
	c.v.AutomaticEnv()
	for _, name := range []string{"output", "verbose"} {
		if err := c.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return err
		}
	}

	if file, _ := flags.GetString("config"); file != "" {
		c.v.SetConfigFile(file)
		c.v.SetConfigType("yaml")
		if err := c.v.ReadInConfig(); err != nil {
			return exitError(exitValidation, "reading config: %v", err)
		}
	}

	switch out := c.output(); out {
	case outputTable, outputJSON:
		return nil
	default:
		return exitError(exitValidation, "unknown output format %q", out)
	}
}
