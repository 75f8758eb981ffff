package article

import "time"

// Favorite 收藏表
type Favorite struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	ArticleID uint      `gorm:"primaryKey;index" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`

	// 外键：文章删除时由数据库级联删除收藏
	Article *Article `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}
