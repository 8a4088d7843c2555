package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studycircle-dev/studycircle/internal/domain"
)

func TestCountReactions(t *testing.T) {
	reactions := []domain.Reaction{
		{Id: "a", TargetId: 1, TargetKind: domain.TargetPost, ActorId: 10, Kind: domain.ReactionLike},
		{Id: "b", TargetId: 1, TargetKind: domain.TargetPost, ActorId: 11, Kind: domain.ReactionLike},
		{Id: "c", TargetId: 1, TargetKind: domain.TargetPost, ActorId: 10, Kind: domain.ReactionHelpful},
	}

	counts := CountReactions(reactions, 10)

	assert.Equal(t, 3, counts.Total)
	assert.Equal(t, 2, counts.ByKind[domain.ReactionLike])
	assert.Equal(t, 1, counts.ByKind[domain.ReactionHelpful])
	assert.ElementsMatch(t, []domain.ReactionKind{domain.ReactionLike, domain.ReactionHelpful}, counts.Mine)
}

func TestCountReactionsEmpty(t *testing.T) {
	counts := CountReactions(nil, 10)
	assert.Equal(t, 0, counts.Total)
	assert.Empty(t, counts.Mine)
}

func TestCountReactionsByTarget(t *testing.T) {
	reactions := []domain.Reaction{
		{Id: "a", TargetId: 1, TargetKind: domain.TargetComment, ActorId: 10, Kind: domain.ReactionLike},
		{Id: "b", TargetId: 2, TargetKind: domain.TargetComment, ActorId: 10, Kind: domain.ReactionLove},
		{Id: "c", TargetId: 2, TargetKind: domain.TargetComment, ActorId: 11, Kind: domain.ReactionLove},
		{Id: "d", TargetId: 2, TargetKind: domain.TargetPost, ActorId: 11, Kind: domain.ReactionLike}, // different kind of target, same id
	}

	byTarget := CountReactionsByTarget(reactions, domain.TargetComment, 10)

	assert.Len(t, byTarget, 2)
	assert.Equal(t, 1, byTarget[1].Total)
	assert.Equal(t, 2, byTarget[2].Total)
	assert.Equal(t, []domain.ReactionKind{domain.ReactionLove}, byTarget[2].Mine)
}
