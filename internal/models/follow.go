package models

import "sort"

// FollowEdge records that Follower follows Followee. Both directions of the
// relationship are derived from the same edge.
type FollowEdge struct {
	FollowerID string
	FolloweeID string
}

type FollowSet map[FollowEdge]struct{}

func (s FollowSet) Follows(followerID, followeeID string) bool {
	_, ok := s[FollowEdge{FollowerID: followerID, FolloweeID: followeeID}]
	return ok
}

// IsFollowedBy reports whether userID appears among the followers of accountID.
func (s FollowSet) IsFollowedBy(accountID, userID string) bool {
	return s.Follows(userID, accountID)
}

// Toggle removes the edge when present and adds it otherwise. It reports
// whether the follower follows the followee afterwards.
func (s FollowSet) Toggle(followerID, followeeID string) bool {
	edge := FollowEdge{FollowerID: followerID, FolloweeID: followeeID}
	if _, ok := s[edge]; ok {
		delete(s, edge)
		return false
	}
	s[edge] = struct{}{}
	return true
}

func (s FollowSet) Followers(accountID string) []string {
	var out []string
	for edge := range s {
		if edge.FolloweeID == accountID {
			out = append(out, edge.FollowerID)
		}
	}
	sort.Strings(out)
	return out
}

func (s FollowSet) Following(accountID string) []string {
	var out []string
	for edge := range s {
		if edge.FollowerID == accountID {
			out = append(out, edge.FolloweeID)
		}
	}
	sort.Strings(out)
	return out
}

// RemoveAccount drops every edge touching accountID.
func (s FollowSet) RemoveAccount(accountID string) {
	for edge := range s {
		if edge.FollowerID == accountID || edge.FolloweeID == accountID {
			delete(s, edge)
		}
	}
}

// SuggestFromFollowing returns the followers of every account actorID
// follows, excluding actorID and accounts it already follows.
func (s FollowSet) SuggestFromFollowing(actorID string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, followee := range s.Following(actorID) {
		for _, candidate := range s.Followers(followee) {
			if candidate == actorID || s.Follows(actorID, candidate) {
				continue
			}
			if _, dup := seen[candidate]; dup {
				continue
			}
			seen[candidate] = struct{}{}
			out = append(out, candidate)
		}
	}
	sort.Strings(out)
	return out
}
