package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/pkg/xredis"
)

// ProfileRepository caches platform profile lookups resolved by
// collaborators. The ledger uses it to backfill avatar urls without calling
// any platform API on the entry-creation path.
type ProfileRepository interface {
	GetAvatarURL(ctx context.Context, platform entity.Platform, externalUserID string) (string, error)
	SetAvatarURL(ctx context.Context, platform entity.Platform, externalUserID, avatarURL string) error
}

type profileRepository struct {
	redisClient xredis.Client
}

func NewProfileRepository(redisClient xredis.Client) *profileRepository {
	return &profileRepository{redisClient: redisClient}
}

func avatarKey(platform entity.Platform, externalUserID string) string {
	return fmt.Sprintf("avatar:%s:%s", platform, externalUserID)
}

func (r *profileRepository) GetAvatarURL(
	ctx context.Context, platform entity.Platform, externalUserID string,
) (string, error) {
	value, err := r.redisClient.Get(ctx, avatarKey(platform, externalUserID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}

		return "", err
	}

	return value, nil
}

func (r *profileRepository) SetAvatarURL(
	ctx context.Context, platform entity.Platform, externalUserID, avatarURL string,
) error {
	return r.redisClient.Set(ctx, avatarKey(platform, externalUserID), avatarURL)
}
