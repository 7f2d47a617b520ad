package server

import (
	"github.com/gin-gonic/gin"

	"book-catalog/internal/shared/middleware"
	"book-catalog/internal/shared/response"
	"book-catalog/internal/web"
	"book-catalog/pkg/container"
)

const loginPath = "/login"

// NewRouter đăng ký toàn bộ routes: HTML pages, auth, /api/books, /health
func NewRouter(c *container.Container) (*gin.Engine, error) {
	tmpl, err := web.ParseTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	// "/api/books/" không được redirect sang "/api/books"
	router.RedirectTrailingSlash = false
	router.SetHTMLTemplate(tmpl)

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger("/health"),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, response.MsgResourceNotFound)
	})

	router.GET("/health", healthCheckHandler(c))

	setupPageRoutes(router, c)
	setupAuthRoutes(router, c)
	setupBookRoutes(router, c)

	return router, nil
}

// ========================================
// PAGE ROUTES
// ========================================
func setupPageRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/", c.PageHandler.Home)
	router.GET("/books",
		middleware.RequireSession(c.UserService, c.Config.Session.CookieName, loginPath),
		c.PageHandler.Books,
	)
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(router *gin.Engine, c *container.Container) {
	router.GET(loginPath, c.AuthHandler.LoginPage)
	router.POST(loginPath, c.AuthHandler.Login)
	router.GET("/logout", c.AuthHandler.Logout)
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(router *gin.Engine, c *container.Container) {
	books := router.Group("/api/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.POST("", c.BookHandler.CreateBook)
		books.GET("/search", c.BookHandler.SearchBooks)
		books.POST("/import", c.BulkImportHandler.ImportBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
	}
}
