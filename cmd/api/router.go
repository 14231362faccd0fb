package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/web"
	"library-catalog/pkg/container"
)

func SetupRouter(c *container.Container) (*gin.Engine, error) {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	tmpl, err := web.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	api := router.Group("/api")
	api.Use(middleware.CORS())
	{
		// preflight for every API path; CORS answers it before this handler runs
		api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		api.GET("/health", healthCheckHandler(c))

		setupBookRoutes(api, c)
		setupLoanRoutes(api, c)
	}

	setupPageRoutes(router, c)

	return router, nil
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	books := api.Group("/books")
	{
		books.POST("", c.BookHandler.CreateBook)
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/search", c.BookHandler.SearchBooks)
		books.GET("/stats", c.BookHandler.GetLibraryStats)
		books.GET("/:id", c.BookHandler.GetBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
	}
}

// ========================================
// LOAN ROUTES
// ========================================
func setupLoanRoutes(api *gin.RouterGroup, c *container.Container) {
	loans := api.Group("/loans")
	{
		loans.POST("", c.LoanHandler.CreateLoan)
		loans.GET("", c.LoanHandler.ListLoans)
		loans.GET("/search", c.LoanHandler.SearchLoans)
		loans.GET("/overdue", c.LoanHandler.ListOverdueLoans)
		loans.PUT("/:loanId/return", c.LoanHandler.ReturnBook)
	}
}

// ========================================
// HTML PAGES
// ========================================
func setupPageRoutes(router *gin.Engine, c *container.Container) {
	pages := c.PageHandler

	router.GET("/", pages.Home)

	books := router.Group("/books")
	{
		books.GET("", pages.ListBooks)
		books.GET("/search", pages.SearchBooks)
		books.GET("/new", pages.NewBook)
		books.GET("/edit/:id", pages.EditBook)
		books.POST("/save", pages.SaveBook)
		books.GET("/delete/:id", pages.DeleteBook)
		books.GET("/export", pages.ExportCSV)
		books.GET("/export.xlsx", pages.ExportXLSX)
	}

	loans := router.Group("/loans")
	{
		loans.GET("", pages.ListLoans)
		loans.GET("/new", pages.NewLoan)
		loans.POST("/save", pages.SaveLoan)
		loans.GET("/return/:id", pages.ReturnLoan)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		health := appCtx.Health(ctx)

		statusCode := http.StatusOK
		if health.Status != "UP" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
