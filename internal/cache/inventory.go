package cache

import (
	"context"
	"fmt"
	"time"
)

// Feed entries are cached per viewer because they carry the viewer's liked
// flags. Mutations invalidate the acting viewer's entry; everyone else ages
// out within FeedTTL.
const (
	FeedKeyPrefix    = "feed:user:%d"
	TagListKey       = "tags"
	ProfileKeyPrefix = "profile:%s"
)

const (
	FeedTTL    = 1 * time.Minute
	TagListTTL = 5 * time.Minute
	ProfileTTL = 5 * time.Minute
)

func FeedKey(viewerID uint) string {
	return fmt.Sprintf(FeedKeyPrefix, viewerID)
}

func ProfileKey(username string) string {
	return fmt.Sprintf(ProfileKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateFeed drops one viewer's cached feed after a mutation they made.
func InvalidateFeed(ctx context.Context, viewerID uint) {
	Invalidate(ctx, FeedKey(viewerID))
}

func InvalidateTagList(ctx context.Context) {
	Invalidate(ctx, TagListKey)
}

func InvalidateProfile(ctx context.Context, username string) {
	Invalidate(ctx, ProfileKey(username))
}
