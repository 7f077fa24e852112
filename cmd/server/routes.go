package main

import (
	"github.com/gin-gonic/gin"
	"invest-desk.backend/internal/interfaces/http/handlers"
	"invest-desk.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	userHandler       *handlers.UserHandler
	investorHandler   *handlers.InvestorHandler
	accountHandler    *handlers.AccountHandler
	paymentHandler    *handlers.PaymentHandler
	investmentHandler *handlers.InvestmentHandler
	dashboardHandler  *handlers.DashboardHandler
	authMiddleware    gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/logout", d.authHandler.Logout)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
		}

		// Investor routes (protected)
		investors := v1.Group("/investors")
		investors.Use(d.authMiddleware)
		{
			investors.GET("", d.investorHandler.List)
			investors.POST("", d.investorHandler.Create)
			investors.POST("/with-user", d.investorHandler.CreateWithUser)
			investors.GET("/:id", d.investorHandler.Get)
			investors.PUT("/:id", d.investorHandler.Update)
			investors.DELETE("/:id", d.investorHandler.Delete)
			investors.PATCH("/:id/activate", d.investorHandler.Activate)
			investors.PATCH("/:id/pending", d.investorHandler.SetPending)
			investors.GET("/:id/accounts", d.accountHandler.ListActiveByInvestor)
		}

		// Account routes (protected)
		accounts := v1.Group("/accounts")
		accounts.Use(d.authMiddleware)
		{
			accounts.GET("", d.accountHandler.List)
			accounts.POST("", d.accountHandler.Create)
			accounts.GET("/:id", d.accountHandler.Get)
			accounts.PUT("/:id", d.accountHandler.Update)
			accounts.DELETE("/:id", d.accountHandler.Delete)
			accounts.PATCH("/:id/activate", d.accountHandler.ToggleActive)
			accounts.GET("/:id/investments", d.investmentHandler.ListByAccount)
		}

		// Payment routes (protected)
		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.GET("", d.paymentHandler.List)
			payments.POST("", d.paymentHandler.Create)
			payments.GET("/:id", d.paymentHandler.Get)
			payments.PUT("/:id", d.paymentHandler.Update)
			payments.DELETE("/:id", d.paymentHandler.Delete)
			payments.PATCH("/:id/adjust", d.paymentHandler.ToggleAdjusted)
		}

		// Allocation workflow (protected, replay-safe)
		investments := v1.Group("/investments")
		investments.Use(d.authMiddleware)
		{
			investments.POST("/bulk/:payment", middleware.IdempotencyMiddleware(), d.investmentHandler.AllocateBulk)
		}

		// Dashboard (protected)
		dashboard := v1.Group("/dashboard")
		dashboard.Use(d.authMiddleware)
		{
			dashboard.GET("", d.dashboardHandler.Get)
		}

		// User management (admin only)
		users := v1.Group("/users")
		users.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			users.GET("", d.userHandler.List)
			users.POST("", d.userHandler.Create)
			users.GET("/:id", d.userHandler.Get)
			users.PUT("/:id", d.userHandler.Update)
			users.DELETE("/:id", d.userHandler.Delete)
		}
	}
}
