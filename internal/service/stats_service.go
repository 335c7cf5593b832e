package service

import (
	"context"

	"ethraa/internal/models"
)

const (
	topLikedUsersLimit = 5
	topPostsLimit      = 50
)

type StatsService struct {
	stats StatsStore
}

func NewStatsService(stats StatsStore) *StatsService {
	return &StatsService{stats: stats}
}

func (s *StatsService) TopLikedUsers(ctx context.Context) ([]models.LikedUser, error) {
	users, err := s.stats.TopLikedUsers(ctx, topLikedUsersLimit)
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *StatsService) TopPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.stats.TopLikedPosts(ctx, topPostsLimit)
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}
