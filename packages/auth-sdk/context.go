package authsdk

import (
	"strings"
)

// 支持的 Authorization 方案
var schemes = []string{"Token ", "Bearer "}

// ExtractToken 从 Authorization header 中提取令牌
// 1. 空 header 返回 ErrNoToken
// 2. 方案不是 Token / Bearer，或令牌为空，返回 ErrMalformedToken
func ExtractToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", ErrNoToken
	}

	for _, scheme := range schemes {
		if strings.HasPrefix(authHeader, scheme) {
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, scheme))
			if token == "" {
				return "", ErrMalformedToken
			}
			return token, nil
		}
	}

	return "", ErrMalformedToken
}
