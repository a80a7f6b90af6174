package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alomda/internal/auth"
	"alomda/internal/mailer"
	"alomda/internal/ratelimiter"
	"alomda/internal/store"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	hashids "github.com/speps/go-hashids/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         store.Storage
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	mailer        mailer.Client
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	inquiryCodec  *hashids.HashID
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	frontendURL string
	mail        mailConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
	whatsapp    whatsappConfig
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret          string
	refreshSecret   string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	exp       time.Duration
	fromEmail string
	smtp      smtpConfig
}

type smtpConfig struct {
	host     string
	port     int
	username string
	password string
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime string
}

// whatsappConfig holds the shop's WhatsApp contact number and the salt used
// for the short inquiry reference codes embedded in the chat message.
type whatsappConfig struct {
	number      string
	inquirySalt string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Use(app.RateLimiterMiddleware)

		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public storefront.
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", app.listCategoriesHandler)
			r.Get("/products", app.listProductsHandler)
			r.Get("/products/{productID}", app.getProductHandler)
			r.Get("/suggestions", app.getSuggestionsHandler)
			r.Post("/products/{productID}/inquiries", app.createInquiryHandler)
		})

		// Staff authentication.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
			r.Post("/forgot-password", app.forgotPasswordHandler)
			r.Post("/reset-password", app.resetPasswordHandler)
			r.With(app.AuthTokenMiddleware).Post("/logout", app.logoutHandler)
		})

		// Staff dashboard.
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", app.adminListProductsHandler)
				r.Post("/", app.createProductHandler)
				r.Route("/{productID}", func(r chi.Router) {
					r.Patch("/", app.updateProductHandler)
					r.Delete("/", app.deleteProductHandler)
					r.Patch("/publish", app.publishProductHandler)
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", app.listCategoriesHandler)
				r.Post("/", app.createCategoryHandler)
				r.Patch("/{categoryID}", app.updateCategoryHandler)
				r.Delete("/{categoryID}", app.deleteCategoryHandler)
			})

			r.Get("/inquiries", app.listInquiriesHandler)

			r.With(app.RequireAdmin).Post("/staff", app.createStaffHandler)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
