package models

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyReactionToggles(t *testing.T) {
	post := Post{ID: "p1"}

	post, present := ApplyReaction(post, "u1", ReactionLike)
	assert.True(t, present)
	assert.Equal(t, []string{"u1"}, post.Likes)

	post, present = ApplyReaction(post, "u1", ReactionDislike)
	assert.True(t, present)
	assert.Empty(t, post.Likes)
	assert.Equal(t, []string{"u1"}, post.Dislikes)

	post, present = ApplyReaction(post, "u1", ReactionDislike)
	assert.False(t, present)
	assert.Empty(t, post.Dislikes)
}

func TestApplyReactionDoesNotAliasInput(t *testing.T) {
	original := Post{Likes: []string{"a", "b"}}
	updated, _ := ApplyReaction(original, "a", ReactionLike)

	assert.Equal(t, []string{"a", "b"}, original.Likes)
	assert.Equal(t, []string{"b"}, updated.Likes)
}

func TestReactionsStayExclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	users := []string{"u1", "u2", "u3", "u4"}
	kinds := []ReactionKind{ReactionLike, ReactionDislike}

	post := Post{ID: "p1"}
	for i := 0; i < 2000; i++ {
		user := users[rng.Intn(len(users))]
		kind := kinds[rng.Intn(len(kinds))]
		post, _ = ApplyReaction(post, user, kind)

		for _, u := range users {
			liked := HasReacted(post, u, ReactionLike)
			disliked := HasReacted(post, u, ReactionDislike)
			require.False(t, liked && disliked, "user %s in both sets after step %d", u, i)
		}
		require.Len(t, post.Likes, len(uniq(post.Likes)))
		require.Len(t, post.Dislikes, len(uniq(post.Dislikes)))
	}
}

func TestReactionKind(t *testing.T) {
	assert.True(t, ReactionLike.Valid())
	assert.False(t, ReactionKind("love").Valid())
	assert.Equal(t, ReactionDislike, ReactionLike.Opposite())
	assert.Equal(t, ReactionLike, ReactionDislike.Opposite())
}

func TestFollowSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	accounts := []string{"a", "b", "c", "d", "e"}
	set := FollowSet{}

	for i := 0; i < 1000; i++ {
		from := accounts[rng.Intn(len(accounts))]
		to := accounts[rng.Intn(len(accounts))]
		if from == to {
			continue
		}
		set.Toggle(from, to)

		for _, x := range accounts {
			for _, y := range set.Following(x) {
				require.Contains(t, set.Followers(y), x)
			}
			for _, y := range set.Followers(x) {
				require.Contains(t, set.Following(y), x)
			}
		}
	}
}

func TestFollowToggleTwiceRestoresState(t *testing.T) {
	set := FollowSet{}
	set.Toggle("a", "c")

	before := set.Following("a")
	assert.True(t, set.Toggle("a", "b"))
	assert.True(t, set.IsFollowedBy("b", "a"))
	assert.False(t, set.Toggle("a", "b"))
	assert.Equal(t, before, set.Following("a"))
	assert.Empty(t, set.Followers("b"))
}

func TestSuggestFromFollowing(t *testing.T) {
	set := FollowSet{}
	set.Toggle("me", "x")
	set.Toggle("me", "y")
	set.Toggle("p", "x")
	set.Toggle("q", "x")
	set.Toggle("q", "y")
	set.Toggle("y", "x")
	set.Toggle("me", "p")

	// followers of x: p, q, y, me; of y: me, q; of p: me
	assert.Equal(t, []string{"q"}, set.SuggestFromFollowing("me"))
	assert.Empty(t, set.SuggestFromFollowing("nobody"))
}

func TestRemoveAccount(t *testing.T) {
	set := FollowSet{}
	set.Toggle("a", "b")
	set.Toggle("b", "c")
	set.Toggle("c", "a")

	set.RemoveAccount("b")
	assert.Empty(t, set.Following("a"))
	assert.Equal(t, []string{"c"}, set.Followers("a"))
}

func uniq(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
