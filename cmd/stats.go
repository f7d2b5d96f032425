package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/zoomchat/config"
	"github.com/otherjamesbrown/zoomchat/pkg/transcript"
)

// StatsReport is the participation summary of a scan.
type StatsReport struct {
	TotalMessageCount int                           `json:"total_message_count" yaml:"total_message_count"`
	AverageFrequency  int                           `json:"average_frequency" yaml:"average_frequency"`
	Participants      []transcript.ParticipantStats `json:"participants" yaml:"participants"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(deps *CommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <folder> [name]",
		Short: "Show participation frequencies",
		Long: `Scan a folder of Zoom chat exports and show how much of the chat each
participant wrote. The frequency is the participant's messages times 100
divided by all counted messages, rounded down.

With a name, only that participant is shown.

Examples:
  zoomchat stats ~/Documents/Zoom
  zoomchat stats ~/Documents/Zoom "Alice" -o yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			return runStats(cmd.Context(), deps, args[0], name)
		},
	}
}

func runStats(ctx context.Context, deps *CommandDeps, root, name string) error {
	cfg, err := deps.config()
	if err != nil {
		return err
	}

	session, err := scanFolder(ctx, deps, root)
	if err != nil {
		return err
	}

	if name != "" {
		if _, err := newViewState(session).selectParticipant(name); err != nil {
			return err
		}
	}

	// With nothing counted there is nothing to divide; report the empty scan.
	stats := []transcript.ParticipantStats{}
	avg := 0
	if session.TotalMessageCount > 0 {
		if stats, err = session.Stats(); err != nil {
			return err
		}
		if avg, err = session.AverageFrequency(); err != nil {
			return err
		}
	}

	if name != "" {
		stats = filterStats(stats, name)
	}

	report := StatsReport{
		TotalMessageCount: session.TotalMessageCount,
		AverageFrequency:  avg,
		Participants:      stats,
	}
	return outputStats(deps.Stdout, cfg.OutputFormat, painter{enabled: deps.colorOutput()}, report)
}

func filterStats(stats []transcript.ParticipantStats, name string) []transcript.ParticipantStats {
	for _, s := range stats {
		if s.Name == name {
			return []transcript.ParticipantStats{s}
		}
	}
	return nil
}

func outputStats(w io.Writer, format config.OutputFormat, p painter, r StatsReport) error {
	switch format {
	case config.OutputFormatJSON:
		return outputJSON(w, r)
	case config.OutputFormatYAML:
		return outputYAML(w, r)
	}

	if len(r.Participants) == 0 {
		fmt.Fprintln(w, p.warn("No participant messages found."))
	} else {
		table := newTable(w, "Participant", "Messages", "Frequency")
		for _, s := range r.Participants {
			table.Append([]string{p.name(s.Name), fmt.Sprint(s.Messages), fmt.Sprintf("%d%%", s.Frequency)})
		}
		table.Render()
	}

	fmt.Fprintf(w, "\nTotal messages: %d  Average Frequency: %d%%\n", r.TotalMessageCount, r.AverageFrequency)
	return nil
}
