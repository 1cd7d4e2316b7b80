package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// pageParams extracts and clamps pagination query parameters.
func pageParams(ctx *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(ctx.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// displayNameFrom returns the authenticated operator's display name as
// stamped by the auth middleware, or "" when unauthenticated.
func displayNameFrom(ctx *gin.Context) string {
	if v, ok := ctx.Get("displayName"); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}
