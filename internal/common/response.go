package common

import "github.com/gin-gonic/gin"

// Response envelope: success responses carry the entity (or entities plus
// pagination fields) at the top level, failures carry a message and optional
// error details.
//
//	{"success": true,  "message": "...", "post": {...}}
//	{"success": true,  "posts": [...], "count": 10, "total": 42, "page": 1, "pages": 5}
//	{"success": false, "message": "...", "errors": "..."}

// Meta pagination fields for list responses
type Meta struct {
	Count int   `json:"count"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int64 `json:"pages"`
}

// NewMeta computes pagination metadata; pages = ceil(total/limit)
func NewMeta(page, limit, count int, total int64) *Meta {
	pages := total / int64(limit)
	if total%int64(limit) > 0 {
		pages++
	}
	return &Meta{
		Count: count,
		Total: total,
		Page:  page,
		Pages: pages,
	}
}

// Success returns a success response with extra payload fields merged in
func Success(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// SuccessList returns a paginated list response with items under the given key
func SuccessList(c *gin.Context, key string, items interface{}, meta *Meta) {
	c.JSON(200, gin.H{
		"success": true,
		key:       items,
		"count":   meta.Count,
		"total":   meta.Total,
		"page":    meta.Page,
		"pages":   meta.Pages,
	})
}

// Fail returns an error response
func Fail(c *gin.Context, status int, message string, err error) {
	body := gin.H{
		"success": false,
		"message": message,
	}
	if err != nil {
		body["errors"] = err.Error()
	}
	c.JSON(status, body)
}
