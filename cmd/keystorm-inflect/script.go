package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScriptCmd(opts *options) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "script [file.lua]",
		Short: "Run a Lua script against the text",
		Long: `Run a Lua script with the global "inflection" table bound to the text.

  inflection.pluralize(s), singularize, ordinalize, transliterate
  inflection.execute("pluralize")      -> status, message
  inflection.text(), inflection.selections(), inflection.select(spans)
  inflection.replace({{start, finish, text}, ...}) -> true | false, "overlap"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (code == "") == (len(args) == 0) {
				return fmt.Errorf("give either a script file or --eval")
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if code != "" {
				err = a.RunScriptString(code)
			} else {
				err = a.RunScript(args[0])
			}
			if err != nil {
				return err
			}
			return finish(cmd, opts, a)
		},
	}
	cmd.Flags().StringVarP(&code, "eval", "e", "", "Lua code to run instead of a file")
	return cmd
}
