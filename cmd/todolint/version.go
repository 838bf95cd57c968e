package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// ldflags で上書きされます。
var (
	version = "dev"
	commit  = ""
	date    = ""
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
}

func versionString() string {
	v := version
	var extra []string
	if commit != "" {
		extra = append(extra, commit)
	}
	if date != "" {
		extra = append(extra, date)
	}
	if len(extra) > 0 {
		v += " (" + strings.Join(extra, ", ") + ")"
	}
	return v
}

func newVersionCommand(gs *globalState) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch strings.ToLower(format) {
			case "", "pretty":
				_, err := fmt.Fprintf(gs.stdout, "todolint %s %s/%s %s\n", versionString(), runtime.GOOS, runtime.GOARCH, runtime.Version())
				return err
			case "json":
				enc := json.NewEncoder(gs.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(versionPayload{
					Tool:      "todolint",
					Version:   version,
					GitCommit: commit,
					BuildDate: date,
					GoVersion: runtime.Version(),
				})
			default:
				return &exitError{code: exitFailure, err: fmt.Errorf("unknown format: %s", format)}
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}
