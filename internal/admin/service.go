package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boombag/referral/internal/group"
	"github.com/boombag/referral/internal/user"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 30 * time.Second

	recentUserLogLimit  = 40
	recentGroupLogLimit = 10
)

// Stats summarizes the network for the admin dashboard
type Stats struct {
	TotalUsers           int `json:"total_users"`
	PendingVerifications int `json:"pending_verifications"`
	ActiveUsers          int `json:"active_users"`
	TotalGroups          int `json:"total_groups"`
}

// LogEntry is one line of the admin activity feed
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Level     string    `json:"level"`
}

// UserStore is the user persistence surface the admin service needs
type UserStore interface {
	ListByStatus(ctx context.Context, status user.Status) ([]*user.User, error)
	ListRecent(ctx context.Context, limit int) ([]*user.User, error)
	CountByStatus(ctx context.Context, status user.Status) (int, error)
	CountAll(ctx context.Context) (int, error)
}

// GroupStore is the group persistence surface the admin service needs
type GroupStore interface {
	ListRecent(ctx context.Context, limit int) ([]*group.Group, error)
	CountAll(ctx context.Context) (int, error)
}

// Service handles administrative read paths. Dashboard stats may be
// cached briefly; verified-member counts never go through here.
type Service struct {
	users  UserStore
	groups GroupStore
	cache  *redis.Client
}

// NewService creates a new admin service. cache may be nil, in which case
// stats are recomputed on every call.
func NewService(users UserStore, groups GroupStore, cache *redis.Client) *Service {
	return &Service{users: users, groups: groups, cache: cache}
}

// PendingVerifications lists users awaiting verification, newest first
func (s *Service) PendingVerifications(ctx context.Context) ([]*user.User, error) {
	return s.users.ListByStatus(ctx, user.StatusPending)
}

// Stats returns dashboard counters, served from cache when fresh
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
			stats := &Stats{}
			if err := json.Unmarshal(cached, stats); err == nil {
				return stats, nil
			}
		}
	}

	total, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.users.CountByStatus(ctx, user.StatusPending)
	if err != nil {
		return nil, err
	}
	active, err := s.users.CountByStatus(ctx, user.StatusActive)
	if err != nil {
		return nil, err
	}
	groups, err := s.groups.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalUsers:           total,
		PendingVerifications: pending,
		ActiveUsers:          active,
		TotalGroups:          groups,
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			// Cache failures only cost a recompute next time.
			s.cache.Set(ctx, statsCacheKey, encoded, statsCacheTTL)
		}
	}

	return stats, nil
}

// RecentLogs merges recent verification outcomes with recent group
// creations into one feed, newest first
func (s *Service) RecentLogs(ctx context.Context) ([]*LogEntry, error) {
	users, err := s.users.ListRecent(ctx, recentUserLogLimit)
	if err != nil {
		return nil, err
	}

	groups, err := s.groups.ListRecent(ctx, recentGroupLogLimit)
	if err != nil {
		return nil, err
	}

	var logs []*LogEntry
	for _, u := range users {
		switch u.Status {
		case user.StatusActive:
			logs = append(logs, &LogEntry{
				Timestamp: u.CreatedAt,
				Message:   fmt.Sprintf("User %s (%s) was verified.", u.Name, u.Email),
				Level:     "info",
			})
		case user.StatusRejected:
			logs = append(logs, &LogEntry{
				Timestamp: u.CreatedAt,
				Message:   fmt.Sprintf("User %s (%s) was rejected.", u.Name, u.Email),
				Level:     "warning",
			})
		}
	}

	for _, g := range groups {
		logs = append(logs, &LogEntry{
			Timestamp: g.CreatedAt,
			Message:   fmt.Sprintf("Group #%d (code: %s) was created.", g.GroupNumber, g.Code),
			Level:     "info",
		})
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})

	return logs, nil
}
