package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/zoomchat/config"
	"github.com/otherjamesbrown/zoomchat/pkg/transcript"
)

// StudentEntry is one line of the participant list.
type StudentEntry struct {
	Name     string `json:"name" yaml:"name"`
	Messages int    `json:"messages" yaml:"messages"`
}

// NewStudentsCommand creates the students command.
func NewStudentsCommand(deps *CommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:     "students <folder>",
		Aliases: []string{"participants"},
		Short:   "List the participants found in a folder",
		Long: `Scan a folder of Zoom chat exports and list every participant
other than the moderators, in alphabetical order.

Examples:
  zoomchat students ~/Documents/Zoom
  zoomchat students ~/Documents/Zoom -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudents(cmd.Context(), deps, args[0])
		},
	}
}

func runStudents(ctx context.Context, deps *CommandDeps, root string) error {
	cfg, err := deps.config()
	if err != nil {
		return err
	}

	session, err := scanFolder(ctx, deps, root)
	if err != nil {
		return err
	}

	entries := lo.Map(session.Participants(), func(p transcript.Participant, _ int) StudentEntry {
		return StudentEntry{Name: p.Name, Messages: len(p.Messages)}
	})
	return outputStudents(deps.Stdout, cfg.OutputFormat, painter{enabled: deps.colorOutput()}, entries)
}

func outputStudents(w io.Writer, format config.OutputFormat, p painter, entries []StudentEntry) error {
	switch format {
	case config.OutputFormatJSON:
		return outputJSON(w, entries)
	case config.OutputFormatYAML:
		return outputYAML(w, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, p.warn("No participants found."))
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s\n", p.name(e.Name), p.muted(fmt.Sprintf("(%d)", e.Messages)))
	}
	return nil
}
