package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1

	CacheOneWeek = 604800
)

type CacheRouter struct {
	CacheTime int // defaults to CacheNoCache = 0
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		SetCacheControl(c, cr.CacheTime)
		c.Next()
	}
}

// SetCacheControl overrides the cache header for the current response
func SetCacheControl(c *gin.Context, cacheTime int) {
	if cacheTime == CacheCustom {
		return
	}
	if cacheTime == CacheNoCache {
		c.Header("cache-control", "no-cache")
	} else {
		c.Header("cache-control", "private, max-age="+strconv.Itoa(cacheTime))
	}
}
