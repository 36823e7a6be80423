package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fleur/auth"
	"fleur/cart"
	"fleur/customizer"
	"fleur/db"
	"fleur/notify"
	"fleur/orders"
	"fleur/profile"
	"fleur/ratelim"
	"fleur/rdx"
	"fleur/routes"
	"fleur/users"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func basePriceFromEnv() float64 {
	raw := os.Getenv("BAR_BASE_PRICE")
	if raw == "" {
		return customizer.DefaultBasePrice
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price <= 0 {
		log.Printf("Invalid BAR_BASE_PRICE %q; using default", raw)
		return customizer.DefaultBasePrice
	}
	return price
}

func setupRouter(
	rateLimiter *ratelim.RateLimiter,
	hub *notify.Hub,
	cartHandlers *cart.Handlers,
	customizerHandlers *customizer.Handlers,
	orderHandlers *orders.Handlers,
	authHandlers *auth.Handlers,
	profileHandlers *profile.Handlers,
) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddStaticRoutes(router)
	routes.AddCatalogRoutes(router)
	routes.AddCustomizerRoutes(router, customizerHandlers)
	routes.AddCartRoutes(router, cartHandlers, rateLimiter)
	routes.AddOrderRoutes(router, orderHandlers)
	routes.AddAuthRoutes(router, authHandlers, rateLimiter)
	routes.AddProfileRoutes(router, profileHandlers)
	routes.AddNotifyRoutes(router, hub)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	if err := db.Init(context.Background()); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := rdx.Init(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// notification hub for toast delivery
	hub := notify.NewHub()
	go hub.Run()

	rateLimiter := ratelim.NewRateLimiter()

	// stores, wired explicitly rather than through package globals
	orderRecorder := orders.NewRecorder(orders.NewMongoRepo(db.OrderCollection))
	cartStore := cart.NewStore(rdx.NewPersister(rdx.Conn), orderRecorder)
	customizerStore := customizer.NewStore(basePriceFromEnv())
	userStore := users.NewStore(users.NewMongoRepo(db.UserCollection))

	router := setupRouter(
		rateLimiter,
		hub,
		cart.NewHandlers(cartStore, hub),
		customizer.NewHandlers(customizerStore, cartStore, hub),
		orders.NewHandlers(orderRecorder),
		auth.NewHandlers(userStore, hub),
		profile.NewHandlers(userStore),
	)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Session-Key"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("Shutting down notification hub...")
		hub.Stop()
	})

	go func() {
		log.Printf("Fleur listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := db.Close(ctx); err != nil {
		log.Println("MongoDB disconnect error:", err)
	}

	log.Println("Server stopped cleanly")
}
