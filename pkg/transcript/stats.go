package transcript

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	pferrors "github.com/otherjamesbrown/zoomchat/pkg/errors"
)

// ParticipantStats summarises one participant's share of the chat.
type ParticipantStats struct {
	Name      string `json:"name" yaml:"name"`
	Messages  int    `json:"messages" yaml:"messages"`
	Frequency int    `json:"frequency" yaml:"frequency"`
}

// Frequency returns the participant's share of all messages as an integer
// percentage. It fails with ErrNoMessages before any message was counted.
func (s *Session) Frequency(name string) (int, error) {
	p, ok := s.participants[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", pferrors.ErrParticipantNotFound, name)
	}
	return frequency(len(p.Messages), s.TotalMessageCount)
}

// AverageFrequency returns the integer mean of every participant's frequency.
func (s *Session) AverageFrequency() (int, error) {
	if s.TotalMessageCount == 0 {
		return 0, pferrors.ErrNoMessages
	}
	if len(s.participants) == 0 {
		return 0, nil
	}
	sum := 0
	for _, p := range s.participants {
		f, err := frequency(len(p.Messages), s.TotalMessageCount)
		if err != nil {
			return 0, err
		}
		sum += f
	}
	return sum / len(s.participants), nil
}

// Stats returns per-participant statistics, busiest participant first.
func (s *Session) Stats() ([]ParticipantStats, error) {
	if s.TotalMessageCount == 0 {
		return nil, pferrors.ErrNoMessages
	}

	stats := make([]ParticipantStats, 0, len(s.participants))
	for _, p := range s.participants {
		f, err := frequency(len(p.Messages), s.TotalMessageCount)
		if err != nil {
			return nil, err
		}
		stats = append(stats, ParticipantStats{
			Name:      p.Name,
			Messages:  len(p.Messages),
			Frequency: f,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Messages != stats[j].Messages {
			return stats[i].Messages > stats[j].Messages
		}
		return stats[i].Name < stats[j].Name
	})
	return stats, nil
}

func frequency(count, total int) (int, error) {
	if total == 0 {
		return 0, pferrors.ErrNoMessages
	}
	return count * 100 / total, nil
}

// FilterMessages returns the messages whose text contains query, ignoring
// case. An empty query matches everything.
func FilterMessages(messages []Message, query string) []Message {
	if query == "" {
		return messages
	}
	lower := cases.Lower(language.Und)
	needle := lower.String(query)
	return lo.Filter(messages, func(m Message, _ int) bool {
		return strings.Contains(lower.String(m.Text), needle)
	})
}
