package article

import (
	"strings"

	"github.com/gosimple/slug"
)

// Slugify 由标题生成 URL 安全的 slug，同一标题总是得到同一结果
// "How to train your dragon" -> "how-to-train-your-dragon"
func Slugify(title string) string {
	return slug.Make(strings.TrimSpace(title))
}
