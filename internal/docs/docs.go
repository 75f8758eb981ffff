// Package docs 注册 swagger 文档，gin-swagger 从 /swagger/doc.json 读取
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Token": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/users": {"post": {"tags": ["user"], "summary": "注册", "responses": {"200": {"description": "OK"}}}},
        "/users/login": {"post": {"tags": ["user"], "summary": "登录", "responses": {"200": {"description": "OK"}}}},
        "/user": {
            "get": {"tags": ["user"], "summary": "当前用户", "security": [{"Token": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["user"], "summary": "更新当前用户", "security": [{"Token": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/profiles/{username}": {"get": {"tags": ["profile"], "summary": "查看资料", "responses": {"200": {"description": "OK"}}}},
        "/profiles/{username}/follow": {
            "post": {"tags": ["profile"], "summary": "关注", "security": [{"Token": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["profile"], "summary": "取消关注", "security": [{"Token": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/articles": {
            "get": {"tags": ["article"], "summary": "文章列表", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["article"], "summary": "创建文章", "security": [{"Token": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/articles/feed": {"get": {"tags": ["article"], "summary": "关注流", "security": [{"Token": []}], "responses": {"200": {"description": "OK"}}}},
        "/articles/{slug}": {
            "get": {"tags": ["article"], "summary": "文章详情", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["article"], "summary": "更新文章", "security": [{"Token": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["article"], "summary": "删除文章", "security": [{"Token": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/articles/{slug}/favorite": {
            "post": {"tags": ["article"], "summary": "收藏", "security": [{"Token": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["article"], "summary": "取消收藏", "security": [{"Token": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/articles/{slug}/comments": {
            "get": {"tags": ["comment"], "summary": "评论列表", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["comment"], "summary": "发表评论", "security": [{"Token": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/articles/{slug}/comments/{id}": {"delete": {"tags": ["comment"], "summary": "删除评论", "security": [{"Token": []}], "responses": {"200": {"description": "OK"}}}},
        "/tags": {"get": {"tags": ["tag"], "summary": "热门标签", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo 可在启动时覆盖 Host 等字段
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Conduit API",
	Description:      "文章、关注与关注流接口",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
