package models

import "slices"

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

func (k ReactionKind) Opposite() ReactionKind {
	if k == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}

func HasReacted(p Post, userID string, kind ReactionKind) bool {
	return slices.Contains(p.reactions(kind), userID)
}

// ApplyReaction toggles kind for userID on p. Reacting with the kind already
// present removes it; otherwise the opposite kind is dropped and kind is
// added. It reports whether the reaction is present afterwards.
func ApplyReaction(p Post, userID string, kind ReactionKind) (Post, bool) {
	p.Likes = slices.Clone(p.Likes)
	p.Dislikes = slices.Clone(p.Dislikes)

	if HasReacted(p, userID, kind) {
		p.setReactions(kind, remove(p.reactions(kind), userID))
		return p, false
	}

	opposite := kind.Opposite()
	p.setReactions(opposite, remove(p.reactions(opposite), userID))
	p.setReactions(kind, append(p.reactions(kind), userID))
	return p, true
}

func (p Post) reactions(kind ReactionKind) []string {
	if kind == ReactionLike {
		return p.Likes
	}
	return p.Dislikes
}

func (p *Post) setReactions(kind ReactionKind, ids []string) {
	if kind == ReactionLike {
		p.Likes = ids
		return
	}
	p.Dislikes = ids
}

func remove(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}
