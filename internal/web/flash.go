package web

import (
	"github.com/gin-gonic/gin"
)

const (
	flashSuccessCookie = "flash_success"
	flashErrorCookie   = "flash_error"
	flashMaxAge        = 60
)

// Flash carries one-shot messages across a redirect.
type Flash struct {
	Success string
	Error   string
}

func setFlashSuccess(c *gin.Context, msg string) {
	c.SetCookie(flashSuccessCookie, msg, flashMaxAge, "/", "", false, true)
}

func setFlashError(c *gin.Context, msg string) {
	c.SetCookie(flashErrorCookie, msg, flashMaxAge, "/", "", false, true)
}

// popFlash reads the pending messages and expires their cookies.
func popFlash(c *gin.Context) Flash {
	var f Flash
	if v, err := c.Cookie(flashSuccessCookie); err == nil && v != "" {
		f.Success = v
		c.SetCookie(flashSuccessCookie, "", -1, "/", "", false, true)
	}
	if v, err := c.Cookie(flashErrorCookie); err == nil && v != "" {
		f.Error = v
		c.SetCookie(flashErrorCookie, "", -1, "/", "", false, true)
	}
	return f
}
