package repository

import "ethraa/internal/query"

// UserDomain lists the account fields exposed to list queries.
var UserDomain = query.Domain{
	Fields: map[string]string{
		"id":              "u.id",
		"name":            "u.name",
		"username":        "u.username",
		"bio":             "u.bio",
		"role":            "u.role",
		"isActive":        "u.is_active",
		"isActiveAccount": "u.is_active_account",
		"language":        "u.language",
		"quoteCount":      "u.quote_count",
		"followersCount":  "u.followers_count",
		"followingCount":  "u.following_count",
		"createdAt":       "u.created_at",
		"updatedAt":       "u.updated_at",
	},
	SearchFields: []string{"name", "bio"},
	DefaultSort:  "-createdAt",
	TieBreaker:   "id",
}

var PostDomain = query.Domain{
	Fields: map[string]string{
		"id":           "p.id",
		"user":         "p.user_id",
		"username":     "u.username",
		"quote":        "p.quote",
		"quoteFor":     "p.quote_for",
		"isPublic":     "p.is_public",
		"isUserActive": "p.is_user_active",
		"likesCount":   "(SELECT COUNT(*) FROM post_reactions lr WHERE lr.post_id = p.id AND lr.kind = 'like')",
		"createdAt":    "p.created_at",
		"updatedAt":    "p.updated_at",
	},
	SearchFields: []string{"quote", "quoteFor"},
	DefaultSort:  "-createdAt",
	TieBreaker:   "id",
}

var BookmarkDomain = query.Domain{
	Fields: map[string]string{
		"id":        "b.id",
		"user":      "b.user_id",
		"post":      "b.post_id",
		"createdAt": "b.created_at",
	},
	DefaultSort: "-createdAt",
	TieBreaker:  "id",
}
