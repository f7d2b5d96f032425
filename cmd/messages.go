package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/zoomchat/config"
	"github.com/otherjamesbrown/zoomchat/pkg/transcript"
)

// Messages command flags.
var messagesFilter string

// ParticipantView is a participant's messages with their share of the chat.
type ParticipantView struct {
	Name             string               `json:"name" yaml:"name"`
	Filter           string               `json:"filter,omitempty" yaml:"filter,omitempty"`
	Frequency        int                  `json:"frequency" yaml:"frequency"`
	AverageFrequency int                  `json:"average_frequency" yaml:"average_frequency"`
	Messages         []transcript.Message `json:"messages" yaml:"messages"`
}

// NewMessagesCommand creates the messages command.
func NewMessagesCommand(deps *CommandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages <folder> <name>",
		Short: "Show the messages of one participant",
		Long: `Scan a folder of Zoom chat exports and show everything one participant wrote,
in the order it was written, with their participation frequency.

--filter keeps only messages containing the given text, ignoring case.

Examples:
  zoomchat messages ~/Documents/Zoom "Alice"
  zoomchat messages ~/Documents/Zoom "Alice" --filter homework`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMessages(cmd.Context(), deps, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&messagesFilter, "filter", "f", "", "Only show messages containing this text")

	return cmd
}

func runMessages(ctx context.Context, deps *CommandDeps, root, name string) error {
	cfg, err := deps.config()
	if err != nil {
		return err
	}

	session, err := scanFolder(ctx, deps, root)
	if err != nil {
		return err
	}

	view := newViewState(session)
	if _, err := view.selectParticipant(name); err != nil {
		return err
	}
	view.filter = messagesFilter

	freq, err := session.Frequency(name)
	if err != nil {
		return err
	}
	avg, err := session.AverageFrequency()
	if err != nil {
		return err
	}

	pv := ParticipantView{
		Name:             name,
		Filter:           view.filter,
		Frequency:        freq,
		AverageFrequency: avg,
		Messages:         view.messages(),
	}
	return outputParticipantView(deps.Stdout, cfg.OutputFormat, painter{enabled: deps.colorOutput()}, pv)
}

func outputParticipantView(w io.Writer, format config.OutputFormat, p painter, pv ParticipantView) error {
	switch format {
	case config.OutputFormatJSON:
		return outputJSON(w, pv)
	case config.OutputFormatYAML:
		return outputYAML(w, pv)
	}

	fmt.Fprintf(w, "%s  Frequency: %d%%  Average Frequency: %d%%\n\n", p.name(pv.Name), pv.Frequency, pv.AverageFrequency)
	if len(pv.Messages) == 0 {
		fmt.Fprintln(w, p.warn("No messages match."))
		return nil
	}
	for _, m := range pv.Messages {
		m.Text = p.highlight(m.Text, pv.Filter)
		fmt.Fprintln(w, m.Format(pv.Name))
	}
	return nil
}
