// Package aggregate computes derived views (reaction counts, poll tallies)
// from the flat rows the storage layer returns.
package aggregate

import (
	"github.com/studycircle-dev/studycircle/internal/domain"
)

// ReactionCounts is the aggregated view of one target. Counts are plain row
// counts per kind: uniqueness per (target, actor, kind) is already enforced
// by the database, so no further deduplication happens here.
type ReactionCounts struct {
	Total  int                         `json:"total"`
	ByKind map[domain.ReactionKind]int `json:"by_kind"`
	// Mine lists the kinds the viewing actor has applied, for toggle UIs.
	Mine []domain.ReactionKind `json:"mine,omitempty"`
}

// CountReactions aggregates the full reaction set of a single target.
func CountReactions(reactions []domain.Reaction, viewer domain.UserId) ReactionCounts {
	counts := ReactionCounts{ByKind: make(map[domain.ReactionKind]int)}
	for _, r := range reactions {
		counts.ByKind[r.Kind]++
		counts.Total++
		if r.ActorId == viewer {
			counts.Mine = append(counts.Mine, r.Kind)
		}
	}
	return counts
}

// CountReactionsByTarget groups a mixed row set (e.g. all reactions of a
// whole thread) per target id, so one query can feed every comment's counts.
func CountReactionsByTarget(reactions []domain.Reaction, targetKind domain.TargetKind, viewer domain.UserId) map[int64]ReactionCounts {
	byTarget := make(map[int64][]domain.Reaction)
	for _, r := range reactions {
		if r.TargetKind != targetKind {
			continue
		}
		byTarget[r.TargetId] = append(byTarget[r.TargetId], r)
	}

	out := make(map[int64]ReactionCounts, len(byTarget))
	for id, rows := range byTarget {
		out[id] = CountReactions(rows, viewer)
	}
	return out
}
