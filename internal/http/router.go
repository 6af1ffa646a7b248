package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/tatarby/backend/internal/http/handlers"
	httpMW "github.com/tatarby/backend/internal/http/middleware"
	"github.com/tatarby/backend/internal/pkg/logger"
)

type RouterConfig struct {
	Logger *logger.Logger

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler

	DialogHandler     *httpH.DialogHandler
	VoteHandler       *httpH.VoteHandler
	QuestionHandler   *httpH.QuestionHandler
	AnswerHandler     *httpH.AnswerHandler
	UserAnswerHandler *httpH.UserAnswerHandler
	CursorHandler     *httpH.CursorHandler

	HealthHandler *httpH.HealthHandler
}

// NewRouter wires the gin engine. All resource routes keep a trailing slash;
// gin's RedirectTrailingSlash covers clients that omit it.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachTraceContext())
	if cfg.Logger != nil {
		r.Use(httpMW.RequestLogger(cfg.Logger))
	}
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck/", cfg.HealthHandler.Check)
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		r.POST("/register/", cfg.AuthHandler.Register)
		r.POST("/login/", cfg.AuthHandler.Login)
	}

	protected := r.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("logout/", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("user/", cfg.UserHandler.GetUser)
			protected.POST("user/activity/", cfg.UserHandler.TouchActivity)
		}

		// Dialogs
		if cfg.DialogHandler != nil {
			protected.POST("dialogs/", cfg.DialogHandler.Create)
			protected.GET("dialogs/", cfg.DialogHandler.List)
			protected.GET("dialogs/:id/", cfg.DialogHandler.Get)
			protected.PUT("dialogs/:id/", cfg.DialogHandler.Update)
			protected.PATCH("dialogs/:id/", cfg.DialogHandler.Update)
			protected.DELETE("dialogs/:id/", cfg.DialogHandler.Delete)
		}

		// Votes
		if cfg.VoteHandler != nil {
			protected.POST("votes/", cfg.VoteHandler.Create)
			protected.GET("votes/", cfg.VoteHandler.List)
			protected.GET("votes/:id/", cfg.VoteHandler.Get)
			protected.PUT("votes/:id/", cfg.VoteHandler.Update)
			protected.PATCH("votes/:id/", cfg.VoteHandler.Update)
			protected.DELETE("votes/:id/", cfg.VoteHandler.Delete)
		}

		// Questions
		if cfg.QuestionHandler != nil {
			protected.POST("questions/", cfg.QuestionHandler.Create)
			protected.GET("questions/", cfg.QuestionHandler.List)
			protected.GET("questions/:id/", cfg.QuestionHandler.Get)
			protected.PUT("questions/:id/", cfg.QuestionHandler.Update)
			protected.PATCH("questions/:id/", cfg.QuestionHandler.Update)
			protected.DELETE("questions/:id/", cfg.QuestionHandler.Delete)
		}

		// Answers
		if cfg.AnswerHandler != nil {
			protected.POST("answers/", cfg.AnswerHandler.Create)
			protected.GET("answers/", cfg.AnswerHandler.List)
			protected.GET("answers/:id/", cfg.AnswerHandler.Get)
			protected.PUT("answers/:id/", cfg.AnswerHandler.Update)
			protected.PATCH("answers/:id/", cfg.AnswerHandler.Update)
			protected.DELETE("answers/:id/", cfg.AnswerHandler.Delete)
		}

		// User answers (append-only, no update routes)
		if cfg.UserAnswerHandler != nil {
			protected.POST("useranswers/", cfg.UserAnswerHandler.Create)
			protected.GET("useranswers/", cfg.UserAnswerHandler.List)
			protected.GET("useranswers/:id/", cfg.UserAnswerHandler.Get)
			protected.DELETE("useranswers/:id/", cfg.UserAnswerHandler.Delete)
		}

		// Dialog cursors
		if cfg.CursorHandler != nil {
			protected.POST("userdialogquestions/", cfg.CursorHandler.Create)
			protected.GET("userdialogquestions/", cfg.CursorHandler.List)
			protected.GET("userdialogquestions/:id/", cfg.CursorHandler.Get)
			protected.PUT("userdialogquestions/:id/", cfg.CursorHandler.Update)
			protected.PATCH("userdialogquestions/:id/", cfg.CursorHandler.Update)
			protected.DELETE("userdialogquestions/:id/", cfg.CursorHandler.Delete)
		}
	}

	return r
}
