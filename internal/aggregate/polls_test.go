package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studycircle-dev/studycircle/internal/domain"
)

func twoOptionPoll(allowMultiple bool) *domain.Poll {
	return &domain.Poll{
		Id:        "p1",
		SessionId: "s1",
		Question:  "Which chapter next?",
		Options: []domain.PollOption{
			{Id: "optA", Text: "Chapter 4", Position: 0},
			{Id: "optB", Text: "Chapter 5", Position: 1},
		},
		AllowMultiple: allowMultiple,
		IsActive:      true,
	}
}

func TestTallyPollSingleSelect(t *testing.T) {
	poll := twoOptionPoll(false)
	responses := []domain.PollResponse{
		{PollId: "p1", ActorId: 1, SelectedOptionIds: []string{"optA"}},
		{PollId: "p1", ActorId: 2, SelectedOptionIds: []string{"optA"}},
		{PollId: "p1", ActorId: 3, SelectedOptionIds: []string{"optB"}},
	}

	tally := TallyPoll(poll, responses, 3)

	assert.Equal(t, 3, tally.TotalVotesCast)
	assert.Equal(t, 3, tally.Responders)
	require.Len(t, tally.Options, 2)
	assert.Equal(t, 2, tally.Options[0].Votes)
	assert.InDelta(t, 66.67, tally.Options[0].Percentage, 0.01)
	assert.InDelta(t, 33.33, tally.Options[1].Percentage, 0.01)
	assert.Equal(t, []string{"optB"}, tally.Mine)
}

func TestTallyPollMultiSelectPercentagesExceedHundred(t *testing.T) {
	// Multi-select shares one denominator across options; an actor selecting
	// both options pushes the sum of percentages above 100%. Documented
	// behavior, must stay.
	poll := twoOptionPoll(true)
	responses := []domain.PollResponse{
		{PollId: "p1", ActorId: 1, SelectedOptionIds: []string{"optA", "optB"}},
		{PollId: "p1", ActorId: 2, SelectedOptionIds: []string{"optA"}},
	}

	tally := TallyPoll(poll, responses, 99)

	assert.Equal(t, 3, tally.TotalVotesCast)
	assert.Equal(t, 2, tally.Responders)
	assert.InDelta(t, 66.67, tally.Options[0].Percentage, 0.01)
	assert.InDelta(t, 33.33, tally.Options[1].Percentage, 0.01)

	var sum float64
	for _, opt := range tally.Options {
		sum += opt.Percentage
	}
	assert.Greater(t, sum, 99.99)
}

func TestTallyPollNoResponses(t *testing.T) {
	tally := TallyPoll(twoOptionPoll(false), nil, 1)
	assert.Equal(t, 0, tally.TotalVotesCast)
	for _, opt := range tally.Options {
		assert.Zero(t, opt.Percentage)
	}
}

func TestNextSelectionSingleReplaces(t *testing.T) {
	poll := twoOptionPoll(false)

	// votes A then B -> final selection is only [B]
	sel := NextSelection(poll, nil, "optA")
	assert.Equal(t, []string{"optA"}, sel)
	sel = NextSelection(poll, sel, "optB")
	assert.Equal(t, []string{"optB"}, sel)
}

func TestNextSelectionMultiToggles(t *testing.T) {
	poll := twoOptionPoll(true)

	sel := NextSelection(poll, nil, "optA")
	assert.Equal(t, []string{"optA"}, sel)

	sel = NextSelection(poll, sel, "optB")
	assert.ElementsMatch(t, []string{"optA", "optB"}, sel)

	sel = NextSelection(poll, sel, "optA")
	assert.Equal(t, []string{"optB"}, sel)

	// Toggling off the only selection empties it: caller deletes the row
	sel = NextSelection(poll, sel, "optB")
	assert.Empty(t, sel)
}

func TestHasOption(t *testing.T) {
	poll := twoOptionPoll(false)
	assert.True(t, HasOption(poll, "optA"))
	assert.False(t, HasOption(poll, "nope"))
}
