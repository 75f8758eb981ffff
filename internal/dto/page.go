package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// 分页默认值
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page offset / limit 分页参数
type Page struct {
	Offset int
	Limit  int
}

// NewPage 负数或零值回落到默认值，limit 最大为 MaxLimit
func NewPage(offset, limit int) Page {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Offset: offset, Limit: limit}
}

// ParsePage 从查询参数读取 offset（兼容 skip）和 limit，无法解析时使用默认值
func ParsePage(c *gin.Context) Page {
	offsetRaw := c.Query("offset")
	if offsetRaw == "" {
		offsetRaw = c.Query("skip")
	}
	return NewPage(atoiOr(offsetRaw, 0), atoiOr(c.Query("limit"), DefaultLimit))
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
