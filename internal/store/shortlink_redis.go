package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/surveyhub/surveyhub/internal/shortlink"
)

// ShortLinkRedis is a Redis implementation of shortlink.Repository. Both the
// code record and the survey index carry the retention TTL, so expiry is
// enforced by Redis eviction rather than application logic.
type ShortLinkRedis struct {
	client     *redis.Client
	codePrefix string // "slink:code:" -> hash with the link fields
	svPrefix   string // "slink:survey:" -> code, the idempotency index
	ttl        time.Duration
}

// NewShortLinkRedis creates a Redis-backed short-link store with the given
// retention window.
func NewShortLinkRedis(client *redis.Client, ttl time.Duration) *ShortLinkRedis {
	return &ShortLinkRedis{
		client:     client,
		codePrefix: "slink:code:",
		svPrefix:   "slink:survey:",
		ttl:        ttl,
	}
}

func (r *ShortLinkRedis) GetByCode(ctx context.Context, code string) (*shortlink.ShortLink, error) {
	fields, err := r.client.HGetAll(ctx, r.codePrefix+code).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, shortlink.ErrNotFound
	}

	link := &shortlink.ShortLink{
		Code:       code,
		TargetPath: fields["target_path"],
		SurveyID:   fields["survey_id"],
	}

	if nanos, err := strconv.ParseInt(fields["created_at"], 10, 64); err == nil {
		link.CreatedAt = time.Unix(0, nanos).UTC()
	}

	return link, nil
}

func (r *ShortLinkRedis) GetBySurvey(ctx context.Context, surveyID string) (*shortlink.ShortLink, error) {
	code, err := r.client.Get(ctx, r.svPrefix+surveyID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortlink.ErrNotFound
		}

		return nil, err
	}

	return r.GetByCode(ctx, code)
}

// Create writes the code record first and then claims the survey index with
// SETNX. Losing the claim means another request created a link concurrently;
// the orphaned record is removed and the winner's link returned, so every
// caller observes the same code for a given survey.
func (r *ShortLinkRedis) Create(ctx context.Context, link *shortlink.ShortLink) (*shortlink.ShortLink, error) {
	codeKey := r.codePrefix + link.Code

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, codeKey, map[string]interface{}{
		"target_path": link.TargetPath,
		"survey_id":   link.SurveyID,
		"created_at":  link.CreatedAt.UnixNano(),
	})
	pipe.Expire(ctx, codeKey, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	claimed, err := r.client.SetNX(ctx, r.svPrefix+link.SurveyID, link.Code, r.ttl).Result()
	if err != nil {
		return nil, err
	}

	if claimed {
		return link, nil
	}

	_ = r.client.Del(ctx, codeKey).Err()

	return r.GetBySurvey(ctx, link.SurveyID)
}
