package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"ethraa/internal/apperr"
	"ethraa/internal/models"
	"ethraa/internal/query"
)

// GraphService maintains the follow graph.
type GraphService struct {
	users   UserStore
	follows FollowStore
	log     zerolog.Logger
}

func NewGraphService(users UserStore, follows FollowStore, log zerolog.Logger) *GraphService {
	return &GraphService{users: users, follows: follows, log: log}
}

type FollowResult struct {
	Following bool
	Target    models.User
}

// Follow toggles the edge actor -> username: an existing edge is removed,
// a missing one is created.
func (s *GraphService) Follow(ctx context.Context, actor models.User, username string) (FollowResult, error) {
	if strings.EqualFold(actor.Username, username) {
		return FollowResult{}, apperr.New(apperr.KindInvalidOperation, apperr.KeyNotFollowMe)
	}

	target, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return FollowResult{}, translate(err)
	}
	if target.ID == actor.ID {
		return FollowResult{}, apperr.New(apperr.KindInvalidOperation, apperr.KeyNotFollowMe)
	}
	if !target.IsActive {
		return FollowResult{}, apperr.New(apperr.KindNotFound, apperr.KeyUserNotFound)
	}

	following, err := s.follows.Toggle(ctx, actor.ID, target.ID)
	if err != nil {
		return FollowResult{}, translate(err)
	}

	s.log.Debug().Str("user_id", actor.ID).Str("target_id", target.ID).Bool("following", following).Msg("follow toggled")
	return FollowResult{Following: following, Target: target}, nil
}

// IsFollowing reports whether actor currently follows target.
func (s *GraphService) IsFollowing(ctx context.Context, actor, target models.User) (bool, error) {
	if actor.ID == target.ID {
		return false, nil
	}
	following, err := s.follows.IsFollowing(ctx, actor.ID, target.ID)
	if err != nil {
		return false, translate(err)
	}
	return following, nil
}

func (s *GraphService) Suggest(ctx context.Context, actor models.User, params query.Params) (query.Page[models.User], error) {
	page, err := s.users.ListSuggestions(ctx, actor.ID, params)
	if err != nil {
		return query.Page[models.User]{}, translate(err)
	}
	return page, nil
}
