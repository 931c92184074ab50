// Package httpserver exposes the JSON API: auth and session endpoints,
// school/catalog CRUD, the per-user cart, checkout with hosted payment and
// its callback, order history, and the school feed. Handlers stay thin;
// tenancy and role rules live in the services.
package httpserver

import (
	"context"
	"errors"
	"log"

	"alumnimart/internal/domain"
	productrepo "alumnimart/internal/repository/product"
	accountsvc "alumnimart/internal/service/account"
	catalogsvc "alumnimart/internal/service/catalog"
	feedsvc "alumnimart/internal/service/feed"
	ordersvc "alumnimart/internal/service/order"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountService resolves credentials and bearer tokens.
type AccountService interface {
	Signup(ctx context.Context, in accountsvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// SchoolService manages tenants.
type SchoolService interface {
	Create(ctx context.Context, name, location string) (*domain.School, error)
	GetByID(ctx context.Context, id string) (*domain.School, error)
	List(ctx context.Context) ([]domain.School, error)
}

// CategoryService manages catalog categories.
type CategoryService interface {
	Create(ctx context.Context, actor domain.User, in catalogsvc.CategoryInput) (*domain.Category, error)
	Rename(ctx context.Context, actor domain.User, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, actor domain.User, id string) error
	List(ctx context.Context, schoolID *string) ([]domain.Category, error)
}

// BrandService manages catalog brands.
type BrandService interface {
	Create(ctx context.Context, actor domain.User, in catalogsvc.BrandInput) (*domain.Brand, error)
	Rename(ctx context.Context, actor domain.User, id, name string) (*domain.Brand, error)
	Delete(ctx context.Context, actor domain.User, id string) error
	List(ctx context.Context, schoolID *string) ([]domain.Brand, error)
}

// ProductService manages storefront products.
type ProductService interface {
	Create(ctx context.Context, actor domain.User, in catalogsvc.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, actor domain.User, id string, in catalogsvc.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, actor domain.User, id string) error
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, f productrepo.ListFilter) ([]domain.Product, error)
}

// CartService manages the authenticated user's cart.
type CartService interface {
	Add(ctx context.Context, userID, productID string, quantity int) (int, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	Summary(ctx context.Context, userID string) (*domain.CartSummary, error)
	Count(ctx context.Context, userID string) (int, error)
}

// OrderService handles checkout, payment verification and order history.
type OrderService interface {
	Checkout(ctx context.Context, userID string, in ordersvc.CheckoutInput) (*ordersvc.CheckoutResult, error)
	VerifyPayment(ctx context.Context, reference string) (*ordersvc.VerifyResult, error)
	Get(ctx context.Context, userID, orderID string) (*domain.Order, error)
	History(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, to string) (*domain.Order, error)
}

// FeedService manages school event/opportunity posts.
type FeedService interface {
	Create(ctx context.Context, actor domain.User, in feedsvc.PostInput) (*domain.FeedPost, error)
	List(ctx context.Context, schoolID, kind string) ([]domain.FeedPost, error)
	Delete(ctx context.Context, actor domain.User, id string) error
}

// Deps carries the services the router depends on.
type Deps struct {
	AccountSvc  AccountService
	SchoolSvc   SchoolService
	CategorySvc CategoryService
	BrandSvc    BrandService
	ProductSvc  ProductService
	CartSvc     CartService
	OrderSvc    OrderService
	FeedSvc     FeedService
}

func (d Deps) validate() error {
	switch {
	case d.AccountSvc == nil:
		return errors.New("httpserver: AccountSvc is required")
	case d.SchoolSvc == nil:
		return errors.New("httpserver: SchoolSvc is required")
	case d.CategorySvc == nil:
		return errors.New("httpserver: CategorySvc is required")
	case d.BrandSvc == nil:
		return errors.New("httpserver: BrandSvc is required")
	case d.ProductSvc == nil:
		return errors.New("httpserver: ProductSvc is required")
	case d.CartSvc == nil:
		return errors.New("httpserver: CartSvc is required")
	case d.OrderSvc == nil:
		return errors.New("httpserver: OrderSvc is required")
	case d.FeedSvc == nil:
		return errors.New("httpserver: FeedSvc is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}
	auth := authRequired(deps.AccountSvc)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/signup", h.signup)
		api.POST("/auth/login", h.login)
		api.POST("/auth/logout", auth, h.logout)
		api.GET("/me", auth, h.me)

		api.GET("/schools", h.listSchools)
		api.GET("/schools/:id", h.getSchool)
		api.POST("/schools", auth, requireSuperAdmin(), h.createSchool)
		api.GET("/schools/:id/feed", h.listFeed)

		api.GET("/categories", h.listCategories)
		api.POST("/categories", auth, h.createCategory)
		api.PATCH("/categories/:id", auth, h.renameCategory)
		api.DELETE("/categories/:id", auth, h.deleteCategory)

		api.GET("/brands", h.listBrands)
		api.POST("/brands", auth, h.createBrand)
		api.PATCH("/brands/:id", auth, h.renameBrand)
		api.DELETE("/brands/:id", auth, h.deleteBrand)

		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)
		api.POST("/products", auth, h.createProduct)
		api.PUT("/products/:id", auth, h.updateProduct)
		api.DELETE("/products/:id", auth, h.deleteProduct)

		cart := api.Group("/cart", auth)
		{
			cart.GET("", h.cartSummary)
			cart.GET("/count", h.cartCount)
			cart.POST("/items", h.cartAdd)
			cart.PATCH("/items/:productId", h.cartUpdate)
			cart.DELETE("/items/:productId", h.cartRemove)
			cart.DELETE("", h.cartClear)
		}

		api.POST("/checkout", auth, h.checkout)
		api.GET("/orders", auth, h.listOrders)
		api.GET("/orders/:id", auth, h.getOrder)
		api.PATCH("/orders/:id/status", auth, requireSuperAdmin(), h.updateOrderStatus)

		// Paystack redirects the buyer's browser here; no session is attached.
		api.GET("/payment/callback", h.paymentCallback)

		api.POST("/feed", auth, h.createFeedPost)
		api.DELETE("/feed/:id", auth, h.deleteFeedPost)
	}

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}
