package user

import "time"

// Follow 关注关系（follower 关注 followee）
// 复合主键保证同一对用户只有一条记录
type Follow struct {
	FollowerID uint      `gorm:"column:follower_id;primaryKey;check:chk_follows_self,follower_id <> followee_id" json:"follower_id"`
	FolloweeID uint      `gorm:"column:followee_id;primaryKey;index" json:"followee_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
