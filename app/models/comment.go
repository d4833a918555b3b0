package models

import (
	"errors"
	"sort"
	"time"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
}

// IsReply reports whether the comment is attached to another comment rather
// than directly to the post.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// BuildForest arranges a post's comments into trees rooted at the top-level
// comments. Sibling groups are ordered by creation time ascending, with the
// id as a deterministic tiebreaker. Comments whose parent is missing from
// the input are dropped rather than re-rooted.
func BuildForest(comments []*Comment) []*CommentNode {
	nodes := make(map[int64]*CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &CommentNode{Comment: c}
	}

	var roots []*CommentNode
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}

	sortForest(roots)
	return roots
}

func sortForest(nodes []*CommentNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].Comment, nodes[j].Comment
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	for _, n := range nodes {
		sortForest(n.Replies)
	}
}
