package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedItem_ToggleLike_Involution(t *testing.T) {
	item := &FeedItem{ID: "feed-1", LikesCount: 7, IsLiked: false}

	item.ToggleLike()
	assert.True(t, item.IsLiked)
	assert.Equal(t, 8, item.LikesCount)

	item.ToggleLike()
	assert.False(t, item.IsLiked)
	assert.Equal(t, 7, item.LikesCount)
}

func TestFeedItem_ToggleLike_StartsLiked(t *testing.T) {
	item := &FeedItem{ID: "feed-1", LikesCount: 3, IsLiked: true}

	item.ToggleLike()

	assert.False(t, item.IsLiked)
	assert.Equal(t, 2, item.LikesCount)
}

func TestFeedKind_Valid(t *testing.T) {
	for _, k := range []FeedKind{FeedKindReview, FeedKindProgress, FeedKindChallenge, FeedKindBadge, FeedKindClub} {
		assert.True(t, k.Valid(), "kind %s", k)
	}
	assert.False(t, FeedKind("poll").Valid())
}

func TestJoinedClubs_AddRemove(t *testing.T) {
	var joined JoinedClubs

	assert.True(t, joined.Add("club1"))
	assert.True(t, joined.Add("club2"))
	assert.False(t, joined.Add("club1"), "double join is rejected")
	assert.True(t, joined.Contains("club1"))

	assert.True(t, joined.Remove("club1"))
	assert.False(t, joined.Remove("club1"), "double leave is rejected")
	assert.False(t, joined.Contains("club1"))
	assert.Equal(t, JoinedClubs{"club2"}, joined)
}

func TestBookClub_Clone_IsDeep(t *testing.T) {
	club := &BookClub{ID: "club1", UpcomingBookIDs: []string{"book-1"}}

	c := club.Clone()
	c.UpcomingBookIDs[0] = "book-9"

	assert.Equal(t, "book-1", club.UpcomingBookIDs[0])
}
