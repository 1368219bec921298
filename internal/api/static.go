package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// RegisterStaticRoutes serves the dashboard pages and the icons directory
// from webDir. Only these paths are reachable; source files are not exposed.
func RegisterStaticRoutes(r *gin.Engine, webDir string) {
	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(webDir, "index.html"))
	})

	// Instance state changes out of band, so the management page must be
	// refetched on every visit.
	r.GET("/ec2", func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.File(filepath.Join(webDir, "ec2.html"))
	})

	// Legacy direct-file URLs redirect to the clean paths.
	r.GET("/ec2.html", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/ec2")
	})
	r.GET("/index.html", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/")
	})

	r.Static("/icons", filepath.Join(webDir, "icons"))
}
