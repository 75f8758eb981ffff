package feed

import (
	"time"

	articleModel "terminal-terrace/conduit/internal/model/article"
	userModel "terminal-terrace/conduit/internal/model/user"
	"terminal-terrace/conduit/internal/testutils"

	"gorm.io/gorm"
)

type testutilsDB struct {
	db *gorm.DB
}

func (t *testutilsDB) user() *userModel.User {
	return testutils.CreateTestUser(t.db)
}

func (t *testutilsDB) article(authorID uint, at time.Time) *articleModel.Article {
	return testutils.CreateTestArticle(t.db, authorID, testutils.WithCreatedAt(at))
}
