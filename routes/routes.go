package routes

import (
	"net/http"

	"fleur/auth"
	"fleur/cart"
	"fleur/catalog"
	"fleur/customizer"
	"fleur/middleware"
	"fleur/notify"
	"fleur/orders"
	"fleur/profile"
	"fleur/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/avatars/*filepath", http.Dir("static/avatars"))
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/products", catalog.GetProducts)
	router.GET("/api/products/:productid", catalog.GetProduct)
	router.GET("/api/customize/options", catalog.GetCustomizationOptions)
}

func AddCustomizerRoutes(router *httprouter.Router, h *customizer.Handlers) {
	router.GET("/api/customize/session", middleware.OptionalAuth(h.GetSession))
	router.POST("/api/customize/select", middleware.OptionalAuth(h.SelectOption))
	router.POST("/api/customize/reset", middleware.OptionalAuth(h.ResetSession))
	router.POST("/api/customize/add-to-cart", middleware.OptionalAuth(h.AddToCart))
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handlers, rl *ratelim.RateLimiter) {
	router.GET("/api/cart", middleware.OptionalAuth(h.GetCart))
	router.POST("/api/cart/items", middleware.OptionalAuth(h.AddItem))
	router.PUT("/api/cart/items/:itemid", middleware.OptionalAuth(h.UpdateQuantity))
	router.DELETE("/api/cart/items/:itemid", middleware.OptionalAuth(h.RemoveItem))
	router.POST("/api/cart/clear", middleware.OptionalAuth(h.ClearCart))
	router.POST("/api/cart/promo", middleware.OptionalAuth(h.ApplyPromo))
	router.DELETE("/api/cart/promo", middleware.OptionalAuth(h.RemovePromo))
	router.POST("/api/cart/checkout", rl.Limit(middleware.OptionalAuth(h.Checkout)))
}

func AddOrderRoutes(router *httprouter.Router, h *orders.Handlers) {
	router.GET("/api/orders", middleware.Authenticate(h.ListOrders))
	router.GET("/api/export/orders", middleware.Authenticate(h.ExportOrders))
	router.GET("/api/orders/:orderid", middleware.OptionalAuth(h.GetOrder))
	router.GET("/api/orders/:orderid/receipt", middleware.OptionalAuth(h.PrintReceipt))
}

func AddAuthRoutes(router *httprouter.Router, h *auth.Handlers, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(h.Logout))
	router.POST("/api/session/guest", rl.Limit(auth.GuestSession))
}

func AddProfileRoutes(router *httprouter.Router, h *profile.Handlers) {
	router.GET("/api/profile", middleware.Authenticate(h.GetProfile))
	router.PUT("/api/profile/preferences", middleware.Authenticate(h.UpdatePreferences))
	router.POST("/api/profile/avatar", middleware.Authenticate(h.UploadAvatar))
}

func AddNotifyRoutes(router *httprouter.Router, hub *notify.Hub) {
	router.GET("/ws/notify", middleware.OptionalAuth(notify.ServeWS(hub)))
}
