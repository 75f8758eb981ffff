package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"terminal-terrace/conduit/internal/model/article"
	"terminal-terrace/conduit/internal/model/user"
)

// DefaultPassword is the plain password of users built by CreateTestUser
const DefaultPassword = "Password123"

// CreateTestUser creates a test user with unique username/email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	uniqueID := uuid.New().String()[:8]

	// bcrypt.MinCost keeps tests fast
	passwordHash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)

	testUser := &user.User{
		Username:     fmt.Sprintf("test_user_%s", uniqueID),
		Email:        fmt.Sprintf("test_%s@example.com", uniqueID),
		PasswordHash: string(passwordHash),
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}

	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

// WithUsername sets the username
func WithUsername(username string) UserOption {
	return func(u *user.User) {
		u.Username = username
	}
}

// WithEmail sets the email
func WithEmail(email string) UserOption {
	return func(u *user.User) {
		u.Email = email
	}
}

// WithBio sets the bio
func WithBio(bio string) UserOption {
	return func(u *user.User) {
		u.Bio = bio
	}
}

// CreateTestArticle creates a test article owned by authorID
// The slug is derived from the title the same simple way the service does
// for ASCII titles
func CreateTestArticle(db *gorm.DB, authorID uint, opts ...ArticleOption) *article.Article {
	uniqueID := uuid.New().String()[:8]

	testArticle := &article.Article{
		Title:       fmt.Sprintf("Test Article %s", uniqueID),
		Slug:        fmt.Sprintf("test-article-%s", uniqueID),
		Description: "Test description",
		Body:        "Test body",
		AuthorID:    authorID,
	}

	for _, opt := range opts {
		opt(testArticle)
	}

	if err := db.Create(testArticle).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test article: %v", err))
	}

	return testArticle
}

// ArticleOption configures test article
type ArticleOption func(*article.Article)

// WithTitle sets the article title and slug
func WithTitle(title, slug string) ArticleOption {
	return func(a *article.Article) {
		a.Title = title
		a.Slug = slug
	}
}

// WithCreatedAt pins the creation time, used for ordering tests
func WithCreatedAt(at time.Time) ArticleOption {
	return func(a *article.Article) {
		a.CreatedAt = at
		a.UpdatedAt = at
	}
}

// Follow creates a follow edge directly
func Follow(db *gorm.DB, followerID, followeeID uint) {
	if err := db.Create(&user.Follow{FollowerID: followerID, FolloweeID: followeeID}).Error; err != nil {
		panic(fmt.Sprintf("Failed to create follow: %v", err))
	}
}
