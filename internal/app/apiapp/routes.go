package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Doudousmyle42/Vibezone/internal/config"
	authsvc "github.com/Doudousmyle42/Vibezone/internal/services/auth"
	feedsvc "github.com/Doudousmyle42/Vibezone/internal/services/feed"
	matchessvc "github.com/Doudousmyle42/Vibezone/internal/services/matches"
	messagesvc "github.com/Doudousmyle42/Vibezone/internal/services/messages"
	profilesvc "github.com/Doudousmyle42/Vibezone/internal/services/profiles"
	swipesvc "github.com/Doudousmyle42/Vibezone/internal/services/swipes"
	"github.com/Doudousmyle42/Vibezone/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService    *authsvc.Service
	ProfileService *profilesvc.Service
	FeedService    *feedsvc.Service
	SwipeService   *swipesvc.Service
	MatchService   *matchessvc.Service
	MessageService *messagesvc.Service
	Logger         *zap.Logger
	Config         config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService)
	feedHandler := handlers.NewFeedHandler(deps.FeedService)
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService)
	messagesHandler := handlers.NewMessagesHandler(deps.MessageService)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
		r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
	})

	r.Route("/v1", func(r chi.Router) {
		r.With(authMW).Get("/profile", profileHandler.Get)
		r.With(authMW).Put("/profile", profileHandler.Update)
		r.With(authMW).Get("/feed", feedHandler.Next)
		r.With(authMW).Post("/swipes", swipeHandler.Handle)
		r.With(authMW).Get("/matches", matchesHandler.List)
		r.With(authMW).Get("/matches/{userID}/conversation", messagesHandler.Open)
		r.With(authMW).Get("/matches/{userID}/messages", messagesHandler.History)
		r.With(authMW).Post("/matches/{userID}/messages", messagesHandler.Send)
	})
}
