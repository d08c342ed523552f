package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/benz9527/xcontainer/xlog"
)

type rootOptions struct {
	logLevel string
	encoder  string
	logger   xlog.XLogger
}

func (o *rootOptions) setupLogger(cmd *cobra.Command) error {
	enc := xlog.PlainText
	switch o.encoder {
	case "json":
		enc = xlog.JSON
	case "text":
	default:
		return fmt.Errorf("unknown log encoder %q", o.encoder)
	}
	o.logger = xlog.NewXLogger(
		xlog.WithXLoggerLevelText(o.logLevel),
		xlog.WithXLoggerEncoder(enc),
		xlog.WithXLoggerWriter(cmd.ErrOrStderr()),
	)
	return nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "xcontainer",
		Short:         "Exercise the generic containers and print what they hold",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogger(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "INFO", "DEBUG, INFO, WARN or ERROR")
	root.PersistentFlags().StringVar(&opts.encoder, "log-encoder", "text", "text or json")

	root.AddCommand(
		newVectorCmd(opts),
		newTreeCmd(opts),
		newMapCmd(opts),
		newSetCmd(opts),
		newQueueCmd(opts),
		newPtrCmd(opts),
		newLRUCmd(opts),
	)
	return root
}

func newTable(out io.Writer, header ...any) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(header)
	return tbl
}
