package service

import (
	"context"
	"sync"
	"testing"

	"z2b/internal/domain"
	"z2b/internal/models"
	"z2b/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHub struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHub) Broadcast(eventType string, _ interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, eventType)
}

func newFeedService(env *testEnv, hub Broadcaster) *FeedService {
	return NewFeedService(env.db, repository.NewPostRepository(env.db), env.profiles, env.audit, hub)
}

func TestCreateWorkshop_FiltersAndOrders(t *testing.T) {
	env := newTestEnv(t)
	hub := &recordingHub{}
	svc := newFeedService(env, hub)
	admin := seedProfile(t, env.db, "admin@example.com", "ADMN0001")

	post, err := svc.CreateWorkshop(context.Background(), admin.ID, WorkshopInput{
		Title:       "Week 1: Table Manners",
		ContentType: domain.PostTypeVideo,
		IsPublic:    true,
		IsWorkshop:  true,
		Questions: []QuestionInput{
			{Question: "  ", Options: []string{"a"}},
			{Question: "What is a legacy?", Options: []string{"Wealth", " ", "Values"}, CorrectAnswer: "Values"},
			{Question: "Who do you serve?", Options: []string{"Family"}},
		},
		Exercises: []ExerciseInput{
			{Title: ""},
			{Title: "Write your vision", Instructions: "One page"},
		},
	}, meta)
	require.NoError(t, err)

	view, err := svc.Workshop(post.ID, "")
	require.NoError(t, err)
	require.Len(t, view.Questions, 2)
	assert.Equal(t, "What is a legacy?", view.Questions[0].Question)
	assert.Equal(t, 0, view.Questions[0].OrderIndex)
	assert.Equal(t, []string{"Wealth", "Values"}, []string(view.Questions[0].Options))
	assert.Equal(t, 1, view.Questions[1].OrderIndex)
	require.Len(t, view.Exercises, 1)
	assert.Equal(t, "Write your vision", view.Exercises[0].ExerciseTitle)

	assert.Equal(t, []string{domain.FeedPostCreated}, hub.events)
}

func TestCreateWorkshop_PlainPostIgnoresQuestions(t *testing.T) {
	env := newTestEnv(t)
	svc := newFeedService(env, nil)
	admin := seedProfile(t, env.db, "admin@example.com", "ADMN0001")

	post, err := svc.CreateWorkshop(context.Background(), admin.ID, WorkshopInput{
		Title:     "Announcement",
		IsPublic:  true,
		Questions: []QuestionInput{{Question: "Ignored?"}},
		Exercises: []ExerciseInput{{Title: "Ignored"}},
	}, meta)
	require.NoError(t, err)
	assert.Equal(t, domain.PostTypeText, post.ContentType)

	var questions, exercises int64
	env.db.Model(&models.WorkshopQuestion{}).Count(&questions)
	env.db.Model(&models.DailyExercise{}).Count(&exercises)
	assert.Zero(t, questions)
	assert.Zero(t, exercises)

	_, err = svc.CreateWorkshop(context.Background(), admin.ID, WorkshopInput{Title: " "}, meta)
	assert.ErrorIs(t, err, ErrInvalidPost)
	_, err = svc.CreateWorkshop(context.Background(), admin.ID, WorkshopInput{Title: "x", ContentType: "gif"}, meta)
	assert.ErrorIs(t, err, ErrInvalidPost)
}

func TestToggleReaction(t *testing.T) {
	env := newTestEnv(t)
	hub := &recordingHub{}
	svc := newFeedService(env, hub)
	author := seedProfile(t, env.db, "author@example.com", "AUTH0001")
	member := seedProfile(t, env.db, "member@example.com", "MEMB0001")
	post, err := svc.CreateWorkshop(context.Background(), author.ID, WorkshopInput{Title: "Hello"}, meta)
	require.NoError(t, err)

	res, err := svc.ToggleReaction(post.ID, member.ID, domain.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, ReactionAdded, res.Outcome)

	res, err = svc.ToggleReaction(post.ID, member.ID, domain.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, ReactionChanged, res.Outcome)
	reactions, err := svc.Reactions(post.ID, member.ID)
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, domain.ReactionLove, reactions[0].ReactionType)

	res, err = svc.ToggleReaction(post.ID, member.ID, domain.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, ReactionRemoved, res.Outcome)
	reactions, err = svc.Reactions(post.ID, member.ID)
	require.NoError(t, err)
	assert.Empty(t, reactions)

	_, err = svc.ToggleReaction(post.ID, member.ID, "angry")
	assert.ErrorIs(t, err, ErrInvalidReaction)
	_, err = svc.ToggleReaction("missing", member.ID, domain.ReactionLike)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Len(t, hub.events, 3)
}

func TestComments(t *testing.T) {
	env := newTestEnv(t)
	svc := newFeedService(env, nil)
	author := seedProfile(t, env.db, "author@example.com", "AUTH0001")
	require.NoError(t, env.profiles.Updates(author.ID, map[string]interface{}{"full_name": "Author Name"}))
	post, err := svc.CreateWorkshop(context.Background(), author.ID, WorkshopInput{Title: "Hello", IsPublic: true}, meta)
	require.NoError(t, err)

	_, err = svc.AddComment(post.ID, author.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = svc.AddComment(post.ID, author.ID, "first")
	require.NoError(t, err)
	_, err = svc.AddComment(post.ID, author.ID, " second ")
	require.NoError(t, err)

	comments, err := svc.Comments(post.ID, "")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Author Name", comments[0].AuthorName)

	_, err = svc.ToggleReaction(post.ID, author.ID, domain.ReactionCelebrate)
	require.NoError(t, err)

	feed, err := svc.ListPosts(20, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Author Name", feed[0].AuthorName)
	assert.EqualValues(t, 2, feed[0].CommentCount)
	assert.EqualValues(t, 1, feed[0].ReactionCounts[domain.ReactionCelebrate])
}

func TestMembersOnlyPostVisibility(t *testing.T) {
	env := newTestEnv(t)
	svc := newFeedService(env, nil)
	admin := seedProfile(t, env.db, "admin@example.com", "ADMN0001")
	require.NoError(t, env.profiles.Updates(admin.ID, map[string]interface{}{"is_admin": true}))
	member := seedProfile(t, env.db, "member@example.com", "MEMB0001")
	blocked := seedProfile(t, env.db, "blocked@example.com", "BLCK0001")
	require.NoError(t, env.profiles.Updates(blocked.ID, map[string]interface{}{"status": domain.StatusSuspended}))

	post, err := svc.CreateWorkshop(context.Background(), admin.ID, WorkshopInput{
		Title:      "Inner circle",
		IsWorkshop: true,
		Questions:  []QuestionInput{{Question: "Ready?"}},
	}, meta)
	require.NoError(t, err)
	require.False(t, post.IsPublic)
	_, err = svc.AddComment(post.ID, member.ID, "inside")
	require.NoError(t, err)

	for _, viewer := range []string{"", blocked.ID, "no-such-profile"} {
		_, err = svc.Workshop(post.ID, viewer)
		assert.ErrorIs(t, err, ErrNotFound, "workshop for %q", viewer)
		_, err = svc.Reactions(post.ID, viewer)
		assert.ErrorIs(t, err, ErrNotFound, "reactions for %q", viewer)
		_, err = svc.Comments(post.ID, viewer)
		assert.ErrorIs(t, err, ErrNotFound, "comments for %q", viewer)
	}

	for _, viewer := range []string{member.ID, admin.ID} {
		view, err := svc.Workshop(post.ID, viewer)
		require.NoError(t, err)
		assert.Len(t, view.Questions, 1)
		comments, err := svc.Comments(post.ID, viewer)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
		_, err = svc.Reactions(post.ID, viewer)
		assert.NoError(t, err)
	}
}
