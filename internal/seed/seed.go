// Package seed creates demo blog posts for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"time"

	"digitalpen/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds posts and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildPost constructs a post without persisting it. Content carries the
// markup subset the client renders, and some image URLs are the
// search-engine redirect form the client knows how to unwrap.
func (f *Factory) BuildPost(overrides ...func(*models.Post)) *models.Post {
	content := fmt.Sprintf("**%s**\n\n%s\n\n*%s*",
		gofakeit.Sentence(4),
		gofakeit.Paragraph(1, 3, 8, "\n"),
		gofakeit.Quote(),
	)

	post := &models.Post{
		Title:   gofakeit.Sentence(5),
		Content: models.PostContent(content),
		Likes:   f.rand.Intn(50),
	}

	direct := fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
	switch f.rand.Intn(3) {
	case 0:
		// search-engine redirect form
		post.ImageURL = fmt.Sprintf(
			"https://www.google.com/imgres?imgurl=%s&imgrefurl=%s",
			url.QueryEscape(direct), gofakeit.URL())
	case 1:
		post.ImageURL = direct
	default:
		// no image
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.rand.Intn(90)
	hoursBack := f.rand.Intn(24)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePosts persists count generated posts.
func (f *Factory) CreatePosts(count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		posts = append(posts, f.BuildPost())
	}
	if err := f.db.Create(&posts).Error; err != nil {
		return nil, err
	}
	log.Printf("Seeded %d posts", len(posts))
	return posts, nil
}
