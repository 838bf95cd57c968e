package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phyten/todolint/internal/cache"
	"github.com/phyten/todolint/internal/config"
)

func newCacheCommand(gs *globalState) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the result cache",
	}
	cmd.PersistentFlags().StringVar(&dir, "cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/todolint)")

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := cacheDir(gs, dir)
			if err != nil {
				return &exitError{code: exitFailure, err: err}
			}
			_, err = fmt.Fprintln(gs.stdout, d)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := cacheDir(gs, dir)
			if err != nil {
				return &exitError{code: exitFailure, err: err}
			}
			c, err := cache.Open(d)
			if err != nil {
				return &exitError{code: exitFailure, err: err}
			}
			if err := c.Clear(); err != nil {
				return &exitError{code: exitFailure, err: err}
			}
			gs.logger.WithField("dir", d).Info("cache cleared")
			return nil
		},
	})
	return cmd
}

// cacheDir は --cache-dir、TODOLINT_CACHE_DIR、既定値の順に決めます。
func cacheDir(gs *globalState, flag string) (string, error) {
	if d := strings.TrimSpace(flag); d != "" {
		return d, nil
	}
	if d := strings.TrimSpace(gs.getenv(config.EnvPrefix + "CACHE_DIR")); d != "" {
		return d, nil
	}
	return cache.DefaultDir()
}
