package main

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/phyten/todolint/internal/lint"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

func newExplainCommand(gs *globalState) *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "explain [lint]",
		Short: "Describe the lint and optionally open its documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] != lint.Name {
				return &exitError{code: exitFailure, err: fmt.Errorf("unknown lint: %s (known: %s)", args[0], lint.Name)}
			}
			if open {
				if err := openURL(lint.DocsURL); err != nil {
					return &exitError{code: exitFailure, err: fmt.Errorf("open %s: %w", lint.DocsURL, err)}
				}
				gs.logger.WithField("url", lint.DocsURL).Info("opened documentation")
				return nil
			}
			_, err := fmt.Fprintf(gs.stdout, "%s (%s): %s\n\n%s\nSee %s\n",
				lint.Name, lint.Group, lint.Description, lint.Explanation, lint.DocsURL)
			return err
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "open the documentation in a web browser")
	return cmd
}
