// Package transcript parses exported Zoom "Personal Meeting Room" chat
// transcripts and aggregates the messages of every non-moderator participant.
package transcript

import (
	"slices"
	"sort"

	"github.com/google/uuid"
)

// Fixed names of the export format.
const (
	// TranscriptFilename is the chat file Zoom writes into every room folder.
	TranscriptFilename = "meeting_saved_chat.txt"

	// RoomSuffix terminates every room folder name after the moderator's name.
	RoomSuffix = "'s Personal Meeting Room"
)

// State is the lifecycle of a Session.
type State string

const (
	// StateNotScanned means no folder has been chosen yet.
	StateNotScanned State = "not_scanned"
	// StateScanned means a folder was listed, even if nobody was found in it.
	StateScanned State = "scanned"
)

// CounterMode selects how TotalMessageCount behaves across several transcripts.
type CounterMode string

const (
	// CounterScan accumulates the total over every transcript of a scan.
	CounterScan CounterMode = "scan"
	// CounterFile resets the total at the start of each transcript.
	CounterFile CounterMode = "file"
)

// IsValid reports whether m is a known counter mode.
func (m CounterMode) IsValid() bool {
	return m == CounterScan || m == CounterFile
}

// Message is one utterance of a participant.
type Message struct {
	Text      string `json:"text" yaml:"text"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// Format renders the message the way the chat browser shows it.
func (m Message) Format(speaker string) string {
	return speaker + " at " + m.Timestamp + " : " + m.Text
}

// Participant is a non-moderator speaker and everything they wrote.
type Participant struct {
	Name     string    `json:"name" yaml:"name"`
	Messages []Message `json:"messages" yaml:"messages"`
}

// Room is a located room folder with its transcript.
type Room struct {
	Dir            string `json:"dir" yaml:"dir"`
	Moderator      string `json:"moderator" yaml:"moderator"`
	TranscriptPath string `json:"transcript_path" yaml:"transcript_path"`
}

// RoomResult is the contribution of one transcript to a session.
type RoomResult struct {
	Room `yaml:",inline"`

	// MessageCount is the number of messages attributed from this transcript.
	MessageCount int `json:"message_count" yaml:"message_count"`
	// DroppedLines counts body lines that had no speaker to belong to.
	DroppedLines int `json:"dropped_lines" yaml:"dropped_lines"`
	// SkippedLines counts lines that were not valid UTF-8.
	SkippedLines int `json:"skipped_lines" yaml:"skipped_lines"`
}

// Session is the result of scanning a folder of room exports.
// The participant mapping is owned by the session and only grows through
// its Aggregator.
type Session struct {
	ID                uuid.UUID    `json:"id" yaml:"id"`
	Root              string       `json:"root" yaml:"root"`
	State             State        `json:"state" yaml:"state"`
	CounterMode       CounterMode  `json:"counter_mode" yaml:"counter_mode"`
	TotalMessageCount int          `json:"total_message_count" yaml:"total_message_count"`
	Rooms             []RoomResult `json:"rooms" yaml:"rooms"`

	participants map[string]*Participant
}

// NewSession returns an empty, unscanned session.
func NewSession(mode CounterMode) *Session {
	if !mode.IsValid() {
		mode = CounterScan
	}
	return &Session{
		ID:           uuid.New(),
		State:        StateNotScanned,
		CounterMode:  mode,
		Rooms:        make([]RoomResult, 0),
		participants: make(map[string]*Participant),
	}
}

// Participant returns the participant with the given name.
func (s *Session) Participant(name string) (Participant, bool) {
	p, ok := s.participants[name]
	if !ok {
		return Participant{}, false
	}
	return p.clone(), true
}

// Participants returns every participant sorted by name.
func (s *Session) Participants() []Participant {
	result := make([]Participant, 0, len(s.participants))
	for _, name := range s.Names() {
		result = append(result, s.participants[name].clone())
	}
	return result
}

// Names returns the participant names in sorted order.
func (s *Session) Names() []string {
	names := make([]string, 0, len(s.participants))
	for name := range s.participants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of participants.
func (s *Session) Len() int {
	return len(s.participants)
}

// MessageSum returns the number of messages held by all participants.
func (s *Session) MessageSum() int {
	sum := 0
	for _, p := range s.participants {
		sum += len(p.Messages)
	}
	return sum
}

func (p *Participant) clone() Participant {
	return Participant{Name: p.Name, Messages: slices.Clone(p.Messages)}
}

// append records a message for name, creating the participant on first use.
func (s *Session) append(name string, msg Message) {
	p, ok := s.participants[name]
	if !ok {
		p = &Participant{Name: name}
		s.participants[name] = p
	}
	p.Messages = append(p.Messages, msg)
}
