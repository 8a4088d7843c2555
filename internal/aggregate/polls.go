package aggregate

import (
	"github.com/studycircle-dev/studycircle/internal/domain"
)

type OptionTally struct {
	OptionId   string  `json:"option_id"`
	Text       string  `json:"text"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type PollTally struct {
	PollId string `json:"poll_id"`
	// TotalVotesCast sums selection-list lengths across responses, so one
	// multi-select actor contributes several votes to the shared denominator.
	TotalVotesCast int           `json:"total_votes_cast"`
	Responders     int           `json:"responders"`
	Options        []OptionTally `json:"options"`
	// Mine is the viewing actor's current selection.
	Mine []string `json:"mine,omitempty"`
}

// TallyPoll aggregates responses per option. Percentage is
// votesForOption/totalVotesCast*100; with allow_multiple the percentages can
// sum above 100% because every selected option shares the same denominator.
// That is the documented behavior, not a bug to fix here.
func TallyPoll(poll *domain.Poll, responses []domain.PollResponse, viewer domain.UserId) PollTally {
	tally := PollTally{PollId: poll.Id}

	votes := make(map[string]int, len(poll.Options))
	for _, resp := range responses {
		tally.Responders++
		tally.TotalVotesCast += len(resp.SelectedOptionIds)
		for _, optionId := range resp.SelectedOptionIds {
			votes[optionId]++
		}
		if resp.ActorId == viewer {
			tally.Mine = resp.SelectedOptionIds
		}
	}

	tally.Options = make([]OptionTally, len(poll.Options))
	for i, opt := range poll.Options {
		t := OptionTally{OptionId: opt.Id, Text: opt.Text, Votes: votes[opt.Id]}
		if tally.TotalVotesCast > 0 {
			t.Percentage = float64(t.Votes) / float64(tally.TotalVotesCast) * 100
		}
		tally.Options[i] = t
	}
	return tally
}

// NextSelection computes the actor's new selection after voting for option.
// Single-select replaces the whole selection; multi-select toggles the option
// within it. An empty result means the response row should be deleted, not
// kept empty.
func NextSelection(poll *domain.Poll, current []string, optionId string) []string {
	if !poll.AllowMultiple {
		return []string{optionId}
	}

	next := make([]string, 0, len(current)+1)
	removed := false
	for _, id := range current {
		if id == optionId {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, optionId)
	}
	return next
}

// HasOption reports whether optionId belongs to the poll.
func HasOption(poll *domain.Poll, optionId string) bool {
	for _, opt := range poll.Options {
		if opt.Id == optionId {
			return true
		}
	}
	return false
}
