package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ethraa/internal/apperr"
	"ethraa/internal/config"
	"ethraa/internal/mail"
	"ethraa/internal/models"
	"ethraa/internal/query"
	"ethraa/internal/repository"
	"ethraa/internal/repository/memstore"
)

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) lastToken(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent)
	url := f.sent[len(f.sent)-1].URL
	return url[strings.LastIndex(url, "/")+1:]
}

func paramsAll() query.Params {
	return query.Params{Limit: query.MaxLimit}
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Security: config.SecurityConfig{
			JWTSecret:      "test-secret",
			JWTTTL:         time.Hour,
			SecretTokenTTL: 10 * time.Minute,
		},
		Frontend: config.FrontendConfig{BaseURL: "https://ethraa.test/"},
	}
}

type fixture struct {
	store  *memstore.Store
	mailer *fakeMailer
	auth   *AuthService
	graph  *GraphService
	users  *UserService
	posts  *PostService
	marks  *BookmarkService
	stats  *StatsService
}

func newFixture() *fixture {
	store := memstore.New()
	mailer := &fakeMailer{}
	log := zerolog.Nop()
	return &fixture{
		store:  store,
		mailer: mailer,
		auth:   NewAuthService(store.Users(), mailer, testConfig(), log),
		graph:  NewGraphService(store.Users(), store.Follows(), log),
		users:  NewUserService(store.Users(), log),
		posts:  NewPostService(store.Posts(), store.Users(), log),
		marks:  NewBookmarkService(store.Bookmarks(), log),
		stats:  NewStatsService(store.Stats()),
	}
}

func (f *fixture) signup(t *testing.T, username string) models.User {
	t.Helper()
	res, err := f.auth.Signup(context.Background(), SignupInput{
		Name:     "Name " + username,
		Username: username,
		Email:    " " + strings.ToUpper(username) + "@Example.com ",
		Password: "pass1234",
	})
	require.NoError(t, err)
	return res.User
}

// login returns the account as the auth middleware would see it.
func (f *fixture) login(t *testing.T, username string) models.User {
	t.Helper()
	res, err := f.auth.Login(context.Background(), username, "pass1234")
	require.NoError(t, err)
	return res.User
}

func (f *fixture) verified(t *testing.T, username string) models.User {
	t.Helper()
	ctx := context.Background()
	user := f.login(t, username)
	require.NoError(t, f.auth.VerifyAccountToken(ctx, user))
	res, err := f.auth.ActivateAccount(ctx, f.mailer.lastToken(t))
	require.NoError(t, err)
	return res.User
}

func TestSignupLoginScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	res, err := f.auth.Signup(ctx, SignupInput{Name: "Alice", Username: "alice", Email: " Alice@Example.COM ", Password: "pass1234"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.False(t, res.User.IsActive)
	assert.False(t, res.User.IsActiveAccount)
	assert.Equal(t, models.UserRoleUser, res.User.Role)
	assert.NotEmpty(t, res.Token)

	login, err := f.auth.Login(ctx, "alice@example.com", "pass1234")
	require.NoError(t, err)
	assert.True(t, login.User.IsActive)

	stored, err := f.store.Users().GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)

	user, err := f.auth.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, user.ID)

	byUsername, err := f.auth.Login(ctx, "ALICE", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, byUsername.User.ID)
}

func TestSignupDuplicateConflict(t *testing.T) {
	f := newFixture()
	f.signup(t, "alice")

	_, err := f.auth.Signup(context.Background(), SignupInput{Name: "Other", Username: "alice", Email: "x@example.com", Password: "pass1234"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, apperr.KeyDuplicate, apperr.KeyOf(err))
}

func TestLoginSameErrorForUnknownAndWrongPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")

	_, unknown := f.auth.Login(ctx, "nobody", "pass1234")
	_, wrong := f.auth.Login(ctx, "alice", "wrong-password")

	assert.Equal(t, apperr.KindInvalidCredentials, apperr.KindOf(unknown))
	assert.Equal(t, apperr.KindOf(unknown), apperr.KindOf(wrong))
	assert.Equal(t, apperr.KeyOf(unknown), apperr.KeyOf(wrong))
}

func TestLoginReactivatesPosts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	alice := f.verified(t, "alice")

	post, err := f.posts.Create(ctx, alice, PostInput{Quote: "hello"})
	require.NoError(t, err)
	require.True(t, post.IsUserActive)

	require.NoError(t, f.users.Deactivate(ctx, alice))
	stored, err := f.store.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsUserActive)

	f.login(t, "alice")
	stored, err = f.store.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsUserActive)
}

func TestResetPasswordFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")

	require.NoError(t, f.auth.ForgotPassword(ctx, "alice"))
	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, mail.KindPasswordReset, msg.Kind)
	assert.Equal(t, "alice@example.com", msg.To)
	assert.True(t, strings.HasPrefix(msg.URL, "https://ethraa.test/auth/reset-password/"), msg.URL)

	token := f.mailer.lastToken(t)
	assert.Len(t, token, 64)

	stored, err := f.store.Users().FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordReset)
	assert.NotEqual(t, token, stored.PasswordReset.Digest)

	res, err := f.auth.ResetPassword(ctx, token, "new-pass-5678")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = f.auth.Login(ctx, "alice", "pass1234")
	assert.True(t, apperr.Is(err, apperr.KindInvalidCredentials))
	_, err = f.auth.Login(ctx, "alice", "new-pass-5678")
	require.NoError(t, err)

	_, err = f.auth.ResetPassword(ctx, token, "another-pass")
	assert.Equal(t, apperr.KindInvalidOrExpiredToken, apperr.KindOf(err))
}

func TestResetPasswordExpiredToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")

	issued := time.Now()
	f.auth.now = func() time.Time { return issued }
	require.NoError(t, f.auth.ForgotPassword(ctx, "alice"))
	token := f.mailer.lastToken(t)

	f.auth.now = func() time.Time { return issued.Add(11 * time.Minute) }
	_, err := f.auth.ResetPassword(ctx, token, "new-pass-5678")
	assert.Equal(t, apperr.KindInvalidOrExpiredToken, apperr.KindOf(err))
	assert.Equal(t, apperr.KeyInvalidToken, apperr.KeyOf(err))

	_, err = f.auth.ResetPassword(ctx, "not-a-token", "new-pass-5678")
	assert.Equal(t, apperr.KindInvalidOrExpiredToken, apperr.KindOf(err))
}

func TestForgotPasswordUnknownAccount(t *testing.T) {
	f := newFixture()
	err := f.auth.ForgotPassword(context.Background(), "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, apperr.KeyUserNotFound, apperr.KeyOf(err))
}

func TestDeliveryFailureRollsBackToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	f.mailer.err = errors.New("smtp unavailable")

	err := f.auth.ForgotPassword(ctx, "alice")
	assert.Equal(t, apperr.KindDeliveryFailed, apperr.KindOf(err))
	assert.Equal(t, apperr.KeyMailError, apperr.KeyOf(err))

	stored, err := f.store.Users().FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, stored.PasswordReset)
}

type failingClear struct {
	UserStore
}

func (failingClear) ClearSecretToken(context.Context, string, models.TokenPurpose, string) error {
	return errors.New("connection reset")
}

func TestDeliveryFailureSurvivesRollbackFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")

	mailer := &fakeMailer{err: errors.New("smtp unavailable")}
	auth := NewAuthService(failingClear{f.store.Users()}, mailer, testConfig(), zerolog.Nop())

	err := auth.ForgotPassword(ctx, "alice")
	assert.Equal(t, apperr.KindDeliveryFailed, apperr.KindOf(err))
}

func TestActivateAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	alice := f.login(t, "alice")

	require.NoError(t, f.auth.VerifyAccountToken(ctx, alice))
	msg := f.mailer.sent[0]
	assert.Equal(t, mail.KindAccountVerification, msg.Kind)
	assert.True(t, strings.HasPrefix(msg.URL, "https://ethraa.test/verify-account/"), msg.URL)

	res, err := f.auth.ActivateAccount(ctx, f.mailer.lastToken(t))
	require.NoError(t, err)
	assert.True(t, res.User.IsActiveAccount)

	_, err = f.auth.ActivateAccount(ctx, f.mailer.lastToken(t))
	assert.Equal(t, apperr.KindInvalidOrExpiredToken, apperr.KindOf(err))
}

func TestAuthenticateRejectsDriftedClaims(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")

	login, err := f.auth.Login(ctx, "alice", "pass1234")
	require.NoError(t, err)

	require.NoError(t, f.auth.VerifyAccountToken(ctx, login.User))
	activated, err := f.auth.ActivateAccount(ctx, f.mailer.lastToken(t))
	require.NoError(t, err)

	_, err = f.auth.Authenticate(ctx, login.Token)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	user, err := f.auth.Authenticate(ctx, activated.Token)
	require.NoError(t, err)
	assert.True(t, user.IsActiveAccount)

	_, err = f.auth.Authenticate(ctx, "garbage")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	require.NoError(t, f.users.DeleteMe(ctx, user))
	_, err = f.auth.Authenticate(ctx, activated.Token)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestChangeAndSetPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	alice := f.login(t, "alice")

	_, err := f.auth.ChangePassword(ctx, alice, "wrong", "next-pass")
	assert.Equal(t, apperr.KeyOldPassword, apperr.KeyOf(err))

	_, err = f.auth.ChangePassword(ctx, alice, "pass1234", "next-pass")
	require.NoError(t, err)
	_, err = f.auth.Login(ctx, "alice", "next-pass")
	require.NoError(t, err)

	err = f.auth.SetPassword(ctx, alice, "alice", "hijack")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	admin := models.User{ID: "admin", Role: models.UserRoleAdmin}
	require.NoError(t, f.auth.SetPassword(ctx, admin, "alice", "reset-by-admin"))
	_, err = f.auth.Login(ctx, "alice", "reset-by-admin")
	require.NoError(t, err)
}

func TestFollowUnfollowScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	f.signup(t, "bob")
	alice := f.login(t, "alice")
	bob := f.login(t, "bob")

	res, err := f.graph.Follow(ctx, alice, "bob")
	require.NoError(t, err)
	assert.True(t, res.Following)

	followers, err := f.users.Followers(ctx, "bob", paramsAll())
	require.NoError(t, err)
	require.Equal(t, 1, followers.Total)
	assert.Equal(t, alice.ID, followers.Items[0].ID)

	following, err := f.users.Following(ctx, "alice", paramsAll())
	require.NoError(t, err)
	require.Equal(t, 1, following.Total)
	assert.Equal(t, bob.ID, following.Items[0].ID)

	res, err = f.graph.Follow(ctx, alice, "bob")
	require.NoError(t, err)
	assert.False(t, res.Following)

	followers, err = f.users.Followers(ctx, "bob", paramsAll())
	require.NoError(t, err)
	assert.Zero(t, followers.Total)
	following, err = f.users.Following(ctx, "alice", paramsAll())
	require.NoError(t, err)
	assert.Zero(t, following.Total)
}

func TestFollowRejectsSelfAndInactive(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	f.signup(t, "dormant")
	alice := f.login(t, "alice")

	_, err := f.graph.Follow(ctx, alice, "Alice")
	assert.Equal(t, apperr.KindInvalidOperation, apperr.KindOf(err))
	assert.Equal(t, apperr.KeyNotFollowMe, apperr.KeyOf(err))

	_, err = f.graph.Follow(ctx, alice, "dormant")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = f.graph.Follow(ctx, alice, "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSuggestions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	for _, name := range []string{"alice", "bob", "carol", "dave"} {
		f.signup(t, name)
	}
	alice := f.login(t, "alice")
	f.login(t, "bob")
	carol := f.login(t, "carol")
	dave := f.login(t, "dave")

	for _, step := range []struct {
		actor  models.User
		target string
	}{
		{alice, "bob"},
		{carol, "bob"},
		{dave, "bob"},
		{alice, "dave"},
	} {
		_, err := f.graph.Follow(ctx, step.actor, step.target)
		require.NoError(t, err)
	}

	page, err := f.graph.Suggest(ctx, alice, paramsAll())
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, carol.ID, page.Items[0].ID)
}

func TestReactions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	f.signup(t, "bob")
	alice := f.verified(t, "alice")
	bob := f.login(t, "bob")

	post, err := f.posts.Create(ctx, alice, PostInput{Quote: "to be or not"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultQuoteFor, post.QuoteFor)
	assert.True(t, post.IsPublic)

	post, err = f.posts.Like(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, post.Likes)
	assert.Empty(t, post.Dislikes)

	post, err = f.posts.Dislike(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.Empty(t, post.Likes)
	assert.Equal(t, []string{bob.ID}, post.Dislikes)

	post, err = f.posts.Dislike(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Dislikes)

	_, err = f.posts.Like(ctx, bob, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	private := false
	hidden, err := f.posts.Create(ctx, alice, PostInput{Quote: "secret", IsPublic: &private})
	require.NoError(t, err)
	_, err = f.posts.Like(ctx, bob, hidden.ID)
	assert.Equal(t, apperr.KindUnpublished, apperr.KindOf(err))

	_, err = f.posts.React(ctx, bob, post.ID, "love")
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestPostPolicies(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	f.signup(t, "bob")
	alice := f.verified(t, "alice")
	bob := f.login(t, "bob")

	_, err := f.posts.Create(ctx, bob, PostInput{Quote: "unverified"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Equal(t, apperr.KeyPostAccountPending, apperr.KeyOf(err))

	post, err := f.posts.Create(ctx, alice, PostInput{Quote: "mine", QuoteFor: "Alice"})
	require.NoError(t, err)

	quote := "edited by bob"
	_, err = f.posts.Update(ctx, bob, post.ID, models.PostUpdate{Quote: &quote})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Equal(t, apperr.KeyPostNotOwned, apperr.KeyOf(err))

	err = f.posts.Delete(ctx, bob, post.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	admin := models.User{ID: "admin", Role: models.UserRoleAdmin}
	updated, err := f.posts.Update(ctx, admin, post.ID, models.PostUpdate{Quote: &quote})
	require.NoError(t, err)
	assert.Equal(t, quote, updated.Quote)

	me, err := f.users.Me(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, me.QuoteCount)

	require.NoError(t, f.posts.Delete(ctx, alice, post.ID))
	me, err = f.users.Me(ctx, alice)
	require.NoError(t, err)
	assert.Zero(t, me.QuoteCount)

	_, err = f.posts.ListAll(ctx, bob, paramsAll())
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestListForUserHidesPrivatePosts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	f.signup(t, "bob")
	alice := f.verified(t, "alice")
	bob := f.login(t, "bob")

	private := false
	_, err := f.posts.Create(ctx, alice, PostInput{Quote: "public"})
	require.NoError(t, err)
	_, err = f.posts.Create(ctx, alice, PostInput{Quote: "private", IsPublic: &private})
	require.NoError(t, err)

	own, err := f.posts.ListForUser(ctx, alice, "alice", paramsAll())
	require.NoError(t, err)
	assert.Equal(t, 2, own.Total)

	other, err := f.posts.ListForUser(ctx, bob, "alice", paramsAll())
	require.NoError(t, err)
	assert.Equal(t, 1, other.Total)

	require.NoError(t, f.users.Deactivate(ctx, alice))
	_, err = f.posts.ListForUser(ctx, bob, "alice", paramsAll())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestBookmarkToggle(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	f.signup(t, "bob")
	alice := f.verified(t, "alice")
	bob := f.login(t, "bob")

	post, err := f.posts.Create(ctx, alice, PostInput{Quote: "keep me"})
	require.NoError(t, err)

	bookmarked, err := f.marks.Toggle(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.True(t, bookmarked)

	mine, err := f.marks.ListMine(ctx, bob, paramsAll())
	require.NoError(t, err)
	require.Equal(t, 1, mine.Total)
	require.NotNil(t, mine.Items[0].Post)
	assert.Equal(t, post.ID, mine.Items[0].Post.ID)

	err = f.marks.Delete(ctx, alice, mine.Items[0].ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	bookmarked, err = f.marks.Toggle(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.False(t, bookmarked)

	_, err = f.marks.Toggle(ctx, bob, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	f.signup(t, "bob")
	alice := f.verified(t, "alice")
	bob := f.login(t, "bob")

	liked, err := f.posts.Create(ctx, alice, PostInput{Quote: "liked"})
	require.NoError(t, err)
	_, err = f.posts.Create(ctx, alice, PostInput{Quote: "ignored"})
	require.NoError(t, err)
	_, err = f.posts.Like(ctx, bob, liked.ID)
	require.NoError(t, err)

	top, err := f.stats.TopLikedUsers(ctx)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, alice.ID, top[0].User.ID)
	assert.Equal(t, 1, top[0].TotalLikes)

	posts, err := f.stats.TopPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, liked.ID, posts[0].ID)
}

func TestUserVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	f.signup(t, "dormant")
	alice := f.login(t, "alice")

	page, err := f.users.List(ctx, alice, paramsAll())
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	admin := models.User{ID: "admin", Role: models.UserRoleAdmin}
	page, err = f.users.List(ctx, admin, paramsAll())
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	_, err = f.users.GetForUsers(ctx, "dormant")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = f.users.Get(ctx, alice, "dormant")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	role := models.UserRoleAdmin
	updated, err := f.users.UpdateMe(ctx, alice, models.ProfileUpdate{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, updated.Role)

	deleted, err := f.users.DeleteAll(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestFollowListsDropDeactivatedAccounts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	for _, name := range []string{"alice", "bob", "carol", "dave"} {
		f.signup(t, name)
	}
	alice := f.login(t, "alice")
	bob := f.login(t, "bob")
	carol := f.login(t, "carol")
	f.login(t, "dave")

	for _, step := range []struct {
		actor  models.User
		target string
	}{
		{alice, "bob"},
		{carol, "bob"},
		{bob, "dave"},
	} {
		_, err := f.graph.Follow(ctx, step.actor, step.target)
		require.NoError(t, err)
	}

	require.NoError(t, f.users.Deactivate(ctx, alice))

	followers, err := f.users.Followers(ctx, "bob", paramsAll())
	require.NoError(t, err)
	require.Equal(t, 1, followers.Total)
	assert.Equal(t, carol.ID, followers.Items[0].ID)

	following, err := f.users.Following(ctx, "carol", paramsAll())
	require.NoError(t, err)
	require.Equal(t, 1, following.Total)
	assert.Equal(t, bob.ID, following.Items[0].ID)

	// alice also follows bob, which would suggest alice to carol while
	// the account is active.
	suggestions, err := f.graph.Suggest(ctx, carol, paramsAll())
	require.NoError(t, err)
	assert.Zero(t, suggestions.Total)
}

func TestListForUsersExcludesAdminAuthors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	alice := f.verified(t, "alice")

	admin, err := f.store.Users().Create(ctx, models.User{
		ID:              "admin",
		Name:            "Admin",
		Username:        "root",
		Email:           "root@example.com",
		Role:            models.UserRoleAdmin,
		IsActive:        true,
		IsActiveAccount: true,
	})
	require.NoError(t, err)

	_, err = f.posts.Create(ctx, admin, PostInput{Quote: "announcement"})
	require.NoError(t, err)

	page, err := f.posts.ListForUsers(ctx, paramsAll())
	require.NoError(t, err)
	assert.Zero(t, page.Total)

	_, err = f.posts.Create(ctx, alice, PostInput{Quote: "hello"})
	require.NoError(t, err)

	page, err = f.posts.ListForUsers(ctx, paramsAll())
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, alice.ID, page.Items[0].UserID)

	all, err := f.posts.ListAll(ctx, admin, paramsAll())
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
}

func TestIsFollowing(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.signup(t, "alice")
	f.signup(t, "bob")
	alice := f.login(t, "alice")
	bob := f.login(t, "bob")

	following, err := f.graph.IsFollowing(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, following)

	_, err = f.graph.Follow(ctx, alice, "bob")
	require.NoError(t, err)

	following, err = f.graph.IsFollowing(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = f.graph.IsFollowing(ctx, bob, alice)
	require.NoError(t, err)
	assert.False(t, following)

	following, err = f.graph.IsFollowing(ctx, alice, alice)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestConstraintViolationIsInvalidInput(t *testing.T) {
	err := translate(fmt.Errorf("update profile: %w", repository.ErrConstraint))
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	assert.Equal(t, apperr.KeyValidation, apperr.KeyOf(err))
}
