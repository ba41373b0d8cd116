package repository

import (
	"z2b/internal/models"

	"gorm.io/gorm"
)

// FeedPost is a public post with its author and engagement counters.
type FeedPost struct {
	models.Post
	AuthorName     string           `json:"author_name"`
	ReactionCounts map[string]int64 `json:"reaction_counts"`
	CommentCount   int64            `json:"comment_count"`
}

// CommentView is a comment joined with its author's display name.
type CommentView struct {
	models.PostComment
	AuthorName string `json:"author_name"`
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) WithTx(tx *gorm.DB) *PostRepository {
	return &PostRepository{db: tx}
}

func (r *PostRepository) Create(p *models.Post) error {
	return r.db.Omit("Questions", "Exercises").Create(p).Error
}

func (r *PostRepository) CreateQuestions(qs []models.WorkshopQuestion) error {
	if len(qs) == 0 {
		return nil
	}
	return r.db.Create(&qs).Error
}

func (r *PostRepository) CreateExercises(es []models.DailyExercise) error {
	if len(es) == 0 {
		return nil
	}
	return r.db.Create(&es).Error
}

func (r *PostRepository) GetByID(id string) (*models.Post, error) {
	var p models.Post
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPublic returns public posts newest first with author names and counters.
func (r *PostRepository) ListPublic(limit, offset int) ([]FeedPost, error) {
	var posts []models.Post
	err := r.db.Preload("Author").
		Where("is_public = ?", true).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil || len(posts) == 0 {
		return []FeedPost{}, err
	}
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	var reactionRows []struct {
		PostID       string
		ReactionType string
		Total        int64
	}
	err = r.db.Model(&models.PostReaction{}).
		Select("post_id, reaction_type, COUNT(*) AS total").
		Where("post_id IN ?", ids).
		Group("post_id, reaction_type").
		Scan(&reactionRows).Error
	if err != nil {
		return nil, err
	}
	var commentRows []struct {
		PostID string
		Total  int64
	}
	err = r.db.Model(&models.PostComment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&commentRows).Error
	if err != nil {
		return nil, err
	}

	out := make([]FeedPost, len(posts))
	index := make(map[string]*FeedPost, len(posts))
	for i, p := range posts {
		out[i] = FeedPost{Post: p, AuthorName: p.Author.FullName, ReactionCounts: map[string]int64{}}
		index[p.ID] = &out[i]
	}
	for _, row := range reactionRows {
		if fp := index[row.PostID]; fp != nil {
			fp.ReactionCounts[row.ReactionType] = row.Total
		}
	}
	for _, row := range commentRows {
		if fp := index[row.PostID]; fp != nil {
			fp.CommentCount = row.Total
		}
	}
	return out, nil
}

func (r *PostRepository) ListQuestions(postID string) ([]models.WorkshopQuestion, error) {
	var list []models.WorkshopQuestion
	err := r.db.Where("post_id = ?", postID).Order("order_index ASC").Find(&list).Error
	return list, err
}

func (r *PostRepository) ListExercises(postID string) ([]models.DailyExercise, error) {
	var list []models.DailyExercise
	err := r.db.Where("post_id = ?", postID).Find(&list).Error
	return list, err
}

func (r *PostRepository) ListReactions(postID string) ([]models.PostReaction, error) {
	var list []models.PostReaction
	err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *PostRepository) GetReaction(postID, userID string) (*models.PostReaction, error) {
	var pr models.PostReaction
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&pr).Error
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *PostRepository) CreateReaction(pr *models.PostReaction) error {
	return r.db.Create(pr).Error
}

func (r *PostRepository) UpdateReactionType(id, reactionType string) error {
	return r.db.Model(&models.PostReaction{}).Where("id = ?", id).Update("reaction_type", reactionType).Error
}

func (r *PostRepository) DeleteReaction(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.PostReaction{}).Error
}

func (r *PostRepository) CreateComment(c *models.PostComment) error {
	return r.db.Create(c).Error
}

// ListComments returns comments oldest first with author names.
func (r *PostRepository) ListComments(postID string) ([]CommentView, error) {
	var list []models.PostComment
	err := r.db.Preload("Author").Where("post_id = ?", postID).Order("created_at ASC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	out := make([]CommentView, 0, len(list))
	for _, c := range list {
		out = append(out, CommentView{PostComment: c, AuthorName: c.Author.FullName})
	}
	return out, nil
}
