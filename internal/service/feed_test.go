package service_test

import (
	"strings"
	"testing"

	"society-app/internal/model"
	"society-app/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndEditPost(t *testing.T) {
	svc, st := newTestService(t)
	user := createUser(t, st, "ana")

	_, err := svc.CreatePost(user.ID, "  ", "")
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.CreatePost(999, "olá", "")
	require.ErrorIs(t, err, service.ErrNotFound)

	photoOnly, err := svc.CreatePost(user.ID, "", "photos/1.jpg")
	require.NoError(t, err)
	assert.Empty(t, photoOnly.Text)

	post, err := svc.CreatePost(user.ID, "bom jogo ontem", "")
	require.NoError(t, err)
	assert.Nil(t, post.EditedAt)

	other := createUser(t, st, "bia")
	_, err = svc.EditPost(post.ID, other.ID, "hacked")
	require.ErrorIs(t, err, service.ErrInvalid)

	edited, err := svc.EditPost(post.ID, user.ID, "bom jogo ontem!")
	require.NoError(t, err)
	require.NotNil(t, edited.EditedAt)
	assert.Equal(t, "bom jogo ontem!", edited.Text)

	// a text-only post cannot be edited down to nothing
	_, err = svc.EditPost(post.ID, user.ID, "")
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestFollowAndFeed(t *testing.T) {
	svc, st := newTestService(t)
	ana := createUser(t, st, "ana")
	bia := createUser(t, st, "bia")
	clara := createUser(t, st, "clara")

	require.ErrorIs(t, svc.Follow(ana.ID, ana.ID), service.ErrInvalid)
	require.NoError(t, svc.Follow(ana.ID, bia.ID))
	require.ErrorIs(t, svc.Follow(ana.ID, bia.ID), service.ErrAlreadyFollowing)
	assert.True(t, svc.IsFollowing(ana.ID, bia.ID))
	assert.False(t, svc.IsFollowing(bia.ID, ana.ID))

	assert.Len(t, notificationsFor(svc, bia.ID, model.KindNewFollower), 1)

	_, err := svc.CreatePost(ana.ID, "post da ana", "")
	require.NoError(t, err)
	_, err = svc.CreatePost(bia.ID, "post da bia", "")
	require.NoError(t, err)
	_, err = svc.CreatePost(clara.ID, "post da clara", "")
	require.NoError(t, err)

	feed := svc.Feed(ana.ID, 0)
	require.Len(t, feed, 2)
	for _, p := range feed {
		assert.NotEqual(t, clara.ID, p.UserID)
	}

	feed = svc.Feed(ana.ID, 1)
	require.Len(t, feed, 1)

	following, followers := svc.FollowCounts(bia.ID)
	assert.Equal(t, 0, following)
	assert.Equal(t, 1, followers)

	require.NoError(t, svc.Unfollow(ana.ID, bia.ID))
	feed = svc.Feed(ana.ID, 0)
	require.Len(t, feed, 1)
	assert.Equal(t, ana.ID, feed[0].UserID)
}

func TestLikeNotificationPreview(t *testing.T) {
	svc, st := newTestService(t)
	author := createUser(t, st, "ana")
	fan := createUser(t, st, "bia")

	post, err := svc.CreatePost(author.ID, "uma publicação bem longa sobre o jogo", "")
	require.NoError(t, err)

	require.NoError(t, svc.LikePost(post.ID, fan.ID))
	require.ErrorIs(t, svc.LikePost(post.ID, fan.ID), service.ErrAlreadyLiked)
	assert.True(t, svc.HasLiked(post.ID, fan.ID))
	assert.Equal(t, 1, svc.CountLikes(post.ID))

	notes := notificationsFor(svc, author.ID, model.KindPostLiked)
	require.Len(t, notes, 1)
	// the message quotes the first ten runes of the text
	assert.Contains(t, notes[0].Message, `"uma public..."`)

	// liking your own post stays silent
	require.NoError(t, svc.LikePost(post.ID, author.ID))
	assert.Len(t, notificationsFor(svc, author.ID, model.KindPostLiked), 1)

	require.NoError(t, svc.UnlikePost(post.ID, fan.ID))
	assert.False(t, svc.HasLiked(post.ID, fan.ID))
	assert.Equal(t, 1, svc.CountLikes(post.ID))
}

func TestLikePhotoOnlyPostPreview(t *testing.T) {
	svc, st := newTestService(t)
	author := createUser(t, st, "ana")
	fan := createUser(t, st, "bia")

	post, err := svc.CreatePost(author.ID, "", "photos/1.jpg")
	require.NoError(t, err)
	require.NoError(t, svc.LikePost(post.ID, fan.ID))

	notes := notificationsFor(svc, author.ID, model.KindPostLiked)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Message, "[foto]")
}

func TestCommentsAndPreviews(t *testing.T) {
	svc, st := newTestService(t)
	author := createUser(t, st, "ana")
	commenter := createUser(t, st, "bia")

	post, err := svc.CreatePost(author.ID, "olá", "")
	require.NoError(t, err)

	_, err = svc.AddComment(post.ID, commenter.ID, "   ")
	require.ErrorIs(t, err, service.ErrInvalid)

	long := strings.Repeat("vamos jogar ", 5)
	comment, err := svc.AddComment(post.ID, commenter.ID, long)
	require.NoError(t, err)

	notes := notificationsFor(svc, author.ID, model.KindPostCommented)
	require.Len(t, notes, 1)
	preview := string([]rune(strings.TrimSpace(long))[:20]) + "..."
	assert.Contains(t, notes[0].Message, preview)

	// commenting on your own post stays silent
	_, err = svc.AddComment(post.ID, author.ID, "obrigada!")
	require.NoError(t, err)
	assert.Len(t, notificationsFor(svc, author.ID, model.KindPostCommented), 1)

	comments := svc.CommentsByPost(post.ID)
	require.Len(t, comments, 2)
	assert.Equal(t, comment.ID, comments[0].ID)
	assert.Equal(t, 2, svc.CountComments(post.ID))

	// a stranger cannot delete, the post author can
	stranger := createUser(t, st, "clara")
	require.ErrorIs(t, svc.DeleteComment(comment.ID, stranger.ID), service.ErrInvalid)
	require.NoError(t, svc.DeleteComment(comment.ID, author.ID))
	assert.Equal(t, 1, svc.CountComments(post.ID))
}

func TestDeletePostCascades(t *testing.T) {
	svc, st := newTestService(t)
	author := createUser(t, st, "ana")
	fan := createUser(t, st, "bia")

	post, err := svc.CreatePost(author.ID, "olá", "")
	require.NoError(t, err)
	require.NoError(t, svc.LikePost(post.ID, fan.ID))
	_, err = svc.AddComment(post.ID, fan.ID, "bora")
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeletePost(post.ID, fan.ID), service.ErrInvalid)
	require.NoError(t, svc.DeletePost(post.ID, author.ID))

	_, err = svc.GetPost(post.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, 0, svc.CountLikes(post.ID))
	assert.Equal(t, 0, svc.CountComments(post.ID))
}

func TestPostsByUserNewestFirst(t *testing.T) {
	svc, st := newTestService(t)
	user := createUser(t, st, "ana")

	first, err := svc.CreatePost(user.ID, "primeiro", "")
	require.NoError(t, err)
	second, err := svc.CreatePost(user.ID, "segundo", "")
	require.NoError(t, err)

	posts := svc.PostsByUser(user.ID)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}
