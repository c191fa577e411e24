package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keystorm-inflection/internal/dispatcher/handler"
	"github.com/dshills/keystorm-inflection/internal/dispatcher/handlers/inflection"
	"github.com/dshills/keystorm-inflection/internal/inflect"
)

var inflectShort = map[inflect.Kind]string{
	inflect.KindPluralize:     "Replace each span with its plural form",
	inflect.KindSingularize:   "Replace each span with its singular form",
	inflect.KindOrdinalize:    "Replace each integer span with its ordinal (1 -> 1st)",
	inflect.KindTransliterate: "Replace each span with an ASCII transliteration",
}

func newInflectCmd(k inflect.Kind, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   k.String(),
		Short: inflectShort[k],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInflect(cmd, opts, k)
		},
	}
}

func runInflect(cmd *cobra.Command, opts *options, k inflect.Kind) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.overlap(); err != nil {
		notice(cmd.ErrOrStderr(), "%s; text unchanged", inflection.MsgOverlap)
		if opts.dryRun {
			return nil
		}
		return finish(cmd, opts, a)
	}
	if opts.dryRun {
		return runPreview(cmd, a, k)
	}

	result := a.Run(k)
	if err := checkResult(cmd, result); err != nil {
		return err
	}
	return finish(cmd, opts, a)
}

func runPreview(cmd *cobra.Command, a *session, k inflect.Kind) error {
	batch, result := a.Preview(k)
	if err := checkResult(cmd, result); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range batch {
		fmt.Fprintln(out, r.String())
	}
	return nil
}

// checkResult turns error results into errors and reports overlap.
func checkResult(cmd *cobra.Command, result handler.Result) error {
	switch {
	case result.IsError():
		return result.Error
	case result.Status == handler.StatusNoOp && result.Message == inflection.MsgOverlap:
		notice(cmd.ErrOrStderr(), "%s; text unchanged", result.Message)
	}
	return nil
}
