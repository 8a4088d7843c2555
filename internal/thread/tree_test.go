package thread

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studycircle-dev/studycircle/internal/domain"
)

func ptr(id domain.CommentId) *domain.CommentId { return &id }

func comment(id domain.CommentId, parent *domain.CommentId, offset time.Duration) domain.Comment {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return domain.Comment{Id: id, ContentItemId: 1, AuthorId: 1, ParentCommentId: parent, Body: "c", CreatedAt: base.Add(offset)}
}

func TestBuildForestNesting(t *testing.T) {
	comments := []domain.Comment{
		comment(1, nil, 0),
		comment(2, ptr(1), time.Minute),
		comment(3, ptr(2), 2*time.Minute),
		comment(4, ptr(3), 3*time.Minute),
		comment(5, nil, 4*time.Minute),
	}

	forest := BuildForest(comments, 3)

	require.Len(t, forest.Roots, 2)
	assert.Equal(t, domain.CommentId(1), forest.Roots[0].Comment.Id)
	assert.Equal(t, domain.CommentId(5), forest.Roots[1].Comment.Id)

	// 1 -> 2 -> 3 -> 4
	n2 := forest.Roots[0].Children[0]
	n3 := n2.Children[0]
	n4 := n3.Children[0]
	assert.Equal(t, domain.CommentId(4), n4.Comment.Id)
	assert.Equal(t, 3, n4.Depth)

	// Depth cap only disables the reply affordance, never projection
	assert.True(t, n3.CanReply)
	assert.False(t, n4.CanReply)
}

func TestBuildForestOrphanPromotedToRoot(t *testing.T) {
	// Parent 99 is absent from the set
	comments := []domain.Comment{
		comment(1, nil, 0),
		comment(2, ptr(1), time.Minute),
		comment(3, ptr(99), 2*time.Minute),
	}

	forest := BuildForest(comments, 3)

	require.Len(t, forest.Roots, 2)
	assert.Equal(t, domain.CommentId(1), forest.Roots[0].Comment.Id)
	assert.Equal(t, domain.CommentId(3), forest.Roots[1].Comment.Id)
	assert.Equal(t, []domain.CommentId{3}, forest.Orphans)

	require.Len(t, forest.Roots[0].Children, 1)
	assert.Equal(t, domain.CommentId(2), forest.Roots[0].Children[0].Comment.Id)
}

func TestBuildForestPartition(t *testing.T) {
	// Every comment appears exactly once, whatever the input order
	comments := []domain.Comment{
		comment(1, nil, 0),
		comment(2, ptr(1), time.Minute),
		comment(3, ptr(1), 2*time.Minute),
		comment(4, ptr(2), 3*time.Minute),
		comment(5, ptr(77), 4*time.Minute), // orphan
		comment(6, nil, 5*time.Minute),
	}

	rng := rand.New(rand.NewSource(42))
	reference := BuildForest(comments, 3)

	for i := 0; i < 20; i++ {
		shuffled := make([]domain.Comment, len(comments))
		copy(shuffled, comments)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		forest := BuildForest(shuffled, 3)
		assert.Equal(t, len(comments), forest.Size())
		for _, c := range comments {
			node := forest.Find(c.Id)
			require.NotNil(t, node, "comment %d missing from forest", c.Id)
			refNode := reference.Find(c.Id)
			assert.Equal(t, refNode.Depth, node.Depth, "comment %d depth changed with input order", c.Id)
		}
	}
}

func TestBuildForestSiblingOrder(t *testing.T) {
	// Children sorted by creation time, id breaks ties
	same := time.Duration(0)
	comments := []domain.Comment{
		comment(1, nil, 0),
		comment(4, ptr(1), 2*time.Minute),
		comment(3, ptr(1), same+time.Minute),
		comment(2, ptr(1), same+time.Minute),
	}

	forest := BuildForest(comments, 3)

	require.Len(t, forest.Roots, 1)
	children := forest.Roots[0].Children
	require.Len(t, children, 3)
	assert.Equal(t, domain.CommentId(2), children[0].Comment.Id)
	assert.Equal(t, domain.CommentId(3), children[1].Comment.Id)
	assert.Equal(t, domain.CommentId(4), children[2].Comment.Id)
}

func TestBuildForestEmpty(t *testing.T) {
	forest := BuildForest(nil, 3)
	assert.Empty(t, forest.Roots)
	assert.Equal(t, 0, forest.Size())
}

func TestBuildForestSelfReference(t *testing.T) {
	// A row claiming itself as parent must not loop; treated as orphan
	self := comment(7, ptr(7), 0)
	forest := BuildForest([]domain.Comment{self}, 3)
	require.Len(t, forest.Roots, 1)
	assert.Equal(t, []domain.CommentId{7}, forest.Orphans)
}
