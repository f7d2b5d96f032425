package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/zoomchat/config"
	"github.com/otherjamesbrown/zoomchat/pkg/transcript"
)

// Scan command flags.
var (
	scanDryRun bool
	scanYes    bool
)

// ScanSummary is the result of a scan as shown to the user.
type ScanSummary struct {
	SessionID         string                  `json:"session_id" yaml:"session_id"`
	Root              string                  `json:"root" yaml:"root"`
	State             transcript.State        `json:"state" yaml:"state"`
	CounterMode       transcript.CounterMode  `json:"counter_mode" yaml:"counter_mode"`
	Participants      int                     `json:"participants" yaml:"participants"`
	TotalMessageCount int                     `json:"total_message_count" yaml:"total_message_count"`
	Rooms             []transcript.RoomResult `json:"rooms" yaml:"rooms"`
}

func newScanSummary(s *transcript.Session) ScanSummary {
	return ScanSummary{
		SessionID:         s.ID.String(),
		Root:              s.Root,
		State:             s.State,
		CounterMode:       s.CounterMode,
		Participants:      s.Len(),
		TotalMessageCount: s.TotalMessageCount,
		Rooms:             s.Rooms,
	}
}

// NewScanCommand creates the scan command.
func NewScanCommand(deps *CommandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <folder>",
		Short: "Scan a folder of Zoom chat exports",
		Long: `Scan a folder of Zoom "Personal Meeting Room" chat exports.

Every immediate subfolder named "<date> <time> <Moderator>'s Personal Meeting Room"
that holds a meeting_saved_chat.txt is parsed. Messages written by the
moderator are left out; everyone else is counted as a participant.

The scan is all-or-nothing: a folder name that is not valid text or a
transcript that cannot be opened fails the whole scan.

Examples:
  zoomchat scan ~/Documents/Zoom
  zoomchat scan ~/Documents/Zoom --dry-run
  zoomchat scan ~/Documents/Zoom --yes -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), deps, args[0])
		},
	}

	cmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "List the transcripts that would be parsed")
	cmd.Flags().BoolVarP(&scanYes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func runScan(ctx context.Context, deps *CommandDeps, root string) error {
	cfg, err := deps.config()
	if err != nil {
		return err
	}

	if scanDryRun {
		rooms, err := transcript.Locate(root)
		if err != nil {
			return err
		}
		return outputRooms(deps.Stdout, cfg.OutputFormat, root, rooms)
	}

	if !scanYes && deps.interactive() {
		ok, err := confirm(deps.Stdin, deps.Stdout, fmt.Sprintf("Scan the chat exports in %s?", root))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(deps.Stdout, "Scan cancelled.")
			return nil
		}
	}

	session, err := scanFolder(ctx, deps, root)
	if err != nil {
		return err
	}

	return outputScanSummary(deps.Stdout, cfg.OutputFormat, painter{enabled: deps.colorOutput()}, newScanSummary(session))
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func outputRooms(w io.Writer, format config.OutputFormat, root string, rooms []transcript.Room) error {
	switch format {
	case config.OutputFormatJSON:
		return outputJSON(w, rooms)
	case config.OutputFormatYAML:
		return outputYAML(w, rooms)
	}

	fmt.Fprintf(w, "[DRY RUN] %d transcript(s) found in %s\n", len(rooms), root)
	if len(rooms) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	table := newTable(w, "Moderator", "Transcript")
	for _, r := range rooms {
		table.Append([]string{valueOrDefault(r.Moderator, "(unknown)"), r.TranscriptPath})
	}
	table.Render()
	return nil
}

func outputScanSummary(w io.Writer, format config.OutputFormat, p painter, s ScanSummary) error {
	switch format {
	case config.OutputFormatJSON:
		return outputJSON(w, s)
	case config.OutputFormatYAML:
		return outputYAML(w, s)
	}

	if len(s.Rooms) == 0 {
		fmt.Fprintf(w, "%s\n", p.warn("No chat exports found in "+s.Root))
		return nil
	}

	fmt.Fprintf(w, "Scanned %d room(s) in %s\n", len(s.Rooms), s.Root)
	fmt.Fprintf(w, "  Participants: %d\n", s.Participants)
	fmt.Fprintf(w, "  Messages:     %d\n", s.TotalMessageCount)
	fmt.Fprintf(w, "  Session:      %s\n\n", p.muted(s.SessionID))

	table := newTable(w, "Moderator", "Messages", "Dropped", "Skipped")
	for _, r := range s.Rooms {
		table.Append([]string{
			valueOrDefault(r.Moderator, "(unknown)"),
			fmt.Sprint(r.MessageCount),
			fmt.Sprint(r.DroppedLines),
			fmt.Sprint(r.SkippedLines),
		})
	}
	table.Render()
	return nil
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
