// Package thread reconstructs hierarchical comment forests from the flat rows
// the storage layer returns.
package thread

import (
	"sort"

	"github.com/studycircle-dev/studycircle/internal/domain"
)

// Node is one comment plus its direct children in creation order. CanReply is
// presentation state: storage places no depth limit, the UI stops offering
// the reply affordance below the configured cap.
type Node struct {
	Comment  domain.Comment `json:"comment"`
	Depth    int            `json:"depth"`
	CanReply bool           `json:"can_reply"`
	Children []*Node        `json:"children"`
}

type Forest struct {
	Roots []*Node `json:"roots"`
	// Orphans lists ids whose declared parent was absent from the input set.
	// They are promoted to roots, this field only records that it happened.
	Orphans []domain.CommentId `json:"orphans,omitempty"`
}

// BuildForest projects flat comment rows into a forest. Two passes over an
// id-indexed arena: the first registers every node, the second attaches each
// node to its parent if the parent is present. A comment whose parent is
// missing (deleted or not loaded) is promoted to a root instead of being
// dropped, so every input row appears in the output exactly once regardless
// of input order.
func BuildForest(comments []domain.Comment, replyDepthCap int) *Forest {
	nodes := make(map[domain.CommentId]*Node, len(comments))
	for _, c := range comments {
		nodes[c.Id] = &Node{Comment: c}
	}

	forest := &Forest{}
	for _, c := range comments {
		node := nodes[c.Id]
		if c.ParentCommentId == nil {
			forest.Roots = append(forest.Roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentCommentId]
		if !ok || *c.ParentCommentId == c.Id {
			forest.Orphans = append(forest.Orphans, c.Id)
			forest.Roots = append(forest.Roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortSiblings(forest.Roots)
	for _, root := range forest.Roots {
		annotate(root, 0, replyDepthCap)
	}
	return forest
}

// Size returns the number of nodes in the forest.
func (f *Forest) Size() int {
	var n int
	var walk func(*Node)
	walk = func(node *Node) {
		n++
		for _, child := range node.Children {
			walk(child)
		}
	}
	for _, root := range f.Roots {
		walk(root)
	}
	return n
}

// Find returns the node with the given id or nil.
func (f *Forest) Find(id domain.CommentId) *Node {
	var found *Node
	var walk func(*Node)
	walk = func(node *Node) {
		if found != nil {
			return
		}
		if node.Comment.Id == id {
			found = node
			return
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	for _, root := range f.Roots {
		walk(root)
	}
	return found
}

func annotate(node *Node, depth, cap int) {
	node.Depth = depth
	node.CanReply = depth < cap
	sortSiblings(node.Children)
	for _, child := range node.Children {
		annotate(child, depth+1, cap)
	}
}

// Sibling order is creation order; id breaks ties so equal timestamps from a
// bulk load stay deterministic.
func sortSiblings(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].Comment, nodes[j].Comment
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.Id < b.Id
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
