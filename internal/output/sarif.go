package output

import (
	"encoding/json"
	"io"
	"unicode/utf8"

	"github.com/phyten/todolint/internal/engine"
	"github.com/phyten/todolint/internal/lint"
	"github.com/phyten/todolint/internal/model"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	srcRoot      = "%SRCROOT%"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations"`
	ColumnKind  string            `json:"columnKind"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID                   string       `json:"id"`
	ShortDescription     sarifMessage `json:"shortDescription"`
	DefaultConfiguration struct {
		Level string `json:"level"`
	} `json:"defaultConfiguration"`
}

type sarifInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []sarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type sarifNotification struct {
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	RuleIndex        int             `json:"ruleIndex"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
	Properties       map[string]any  `json:"properties,omitempty"`
}

type sarifLocation struct {
	ID               *int                  `json:"id,omitempty"`
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
	Message          *sarifMessage         `json:"message,omitempty"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
	ByteOffset  int `json:"byteOffset"`
	ByteLength  int `json:"byteLength"`
}

// WriteSARIF writes a SARIF 2.1.0 log with one result per finding. The
// comment is the primary location and each TODO occurrence is a related
// location. Columns count Unicode code points.
func WriteSARIF(w io.Writer, res *engine.Result, tool Tool) error {
	if tool.Name == "" {
		tool.Name = "todolint"
	}
	rule := sarifRule{ID: lint.Name, ShortDescription: sarifMessage{Text: lint.Description}}
	rule.DefaultConfiguration.Level = "warning"

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           tool.Name,
			Version:        tool.Version,
			InformationURI: tool.URI,
			Rules:          []sarifRule{rule},
		}},
		ColumnKind: "unicodeCodePoints",
		Results:    make([]sarifResult, 0, len(res.Findings)),
	}

	inv := sarifInvocation{ExecutionSuccessful: true}
	for _, e := range res.Errors {
		inv.Notifications = append(inv.Notifications, sarifNotification{
			Level:   "error",
			Message: sarifMessage{Text: e.Stage + ": " + e.Message},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: artifact(e.File),
			}}},
		})
	}
	run.Invocations = []sarifInvocation{inv}

	for _, f := range res.Findings {
		r := sarifResult{
			RuleID:     f.Lint,
			RuleIndex:  0,
			Level:      "warning",
			Message:    sarifMessage{Text: f.Message},
			Locations:  []sarifLocation{location(f, f.Comment)},
			Properties: map[string]any{"kind": f.Kind},
		}
		for i, m := range f.Markers {
			id := i + 1
			loc := location(f, m)
			loc.ID = &id
			loc.Message = &sarifMessage{Text: f.Kind}
			r.RelatedLocations = append(r.RelatedLocations, loc)
		}
		run.Results = append(run.Results, r)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}

func artifact(file string) sarifArtifactLocation {
	return sarifArtifactLocation{URI: file, URIBaseID: srcRoot}
}

func location(f model.Finding, sp model.Span) sarifLocation {
	return sarifLocation{PhysicalLocation: sarifPhysicalLocation{
		ArtifactLocation: artifact(f.File),
		Region: &sarifRegion{
			StartLine:   sp.StartLine,
			StartColumn: codePointColumn(f, sp.StartLine, sp.StartCol),
			EndLine:     sp.EndLine,
			EndColumn:   codePointColumn(f, sp.EndLine, sp.EndCol),
			ByteOffset:  sp.ByteStart,
			ByteLength:  sp.ByteEnd - sp.ByteStart,
		},
	}}
}

// codePointColumn converts a 1-based byte column into a 1-based code point
// column using the snippet line. Without the line the byte column is kept.
func codePointColumn(f model.Finding, line, byteCol int) int {
	idx := line - f.Comment.StartLine
	if idx < 0 || idx >= len(f.Snippet) {
		return byteCol
	}
	text := f.Snippet[idx]
	off := byteCol - 1
	if off > len(text) {
		off = len(text)
	}
	if off < 0 {
		off = 0
	}
	return utf8.RuneCountInString(text[:off]) + 1
}
