package router

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dnminh/fashionshop-backend/internal/account"
	"github.com/dnminh/fashionshop-backend/internal/cart"
	"github.com/dnminh/fashionshop-backend/internal/catalog"
	"github.com/dnminh/fashionshop-backend/internal/favorite"
	"github.com/dnminh/fashionshop-backend/internal/importbill"
	"github.com/dnminh/fashionshop-backend/internal/logger"
	"github.com/dnminh/fashionshop-backend/internal/middleware"
	"github.com/dnminh/fashionshop-backend/internal/order"
	"github.com/dnminh/fashionshop-backend/internal/payment"
	"github.com/dnminh/fashionshop-backend/internal/statistic"
)

func NewRouter(
	accountH *account.Handler,
	catalogH *catalog.Handler,
	cartH *cart.Handler,
	favoriteH *favorite.Handler,
	orderH *order.Handler,
	paymentH *payment.Handler,
	importBillH *importbill.Handler,
	statisticH *statistic.Handler,
	jwtSecret []byte,
	accountRepo middleware.AccountRepository,
) chi.Router {
	r := chi.NewRouter()

	r.Use(logger.WithLogging)
	r.Use(chiMiddleware.Recoverer)

	r.Use(middleware.GzipHandler)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register/otp", accountH.RequestRegisterOTP)
		r.Post("/register", accountH.Register)
		r.Post("/login", accountH.Login)
		r.Post("/password/otp", accountH.RequestPasswordResetOTP)
		r.Post("/otp/verify", accountH.VerifyOTP)
		r.Post("/password/reset", accountH.ResetPassword)
	})

	// Gateway callbacks carry their own HMAC signature instead of a bearer
	// token; the IPN is registered for both verbs VNPay is known to use.
	r.Get("/api/payment/vnpay-return", paymentH.Return)
	r.Get("/api/payment/vnpay-ipn", paymentH.IPN)
	r.Post("/api/payment/vnpay-ipn", paymentH.IPN)

	// Storefront reads need no session.
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", catalogH.ListCategories)
		r.Get("/{id}", catalogH.GetCategory)
	})
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", catalogH.ListProducts)
		r.Get("/search", catalogH.SearchProducts)
		r.Get("/{id}", catalogH.GetProduct)
	})
	r.Route("/api/variants", func(r chi.Router) {
		r.Get("/", catalogH.ListVariants)
		r.Get("/{id}", catalogH.GetVariant)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware(jwtSecret, accountRepo))

		r.Get("/api/payment/url", paymentH.CreatePaymentURL)

		r.Route("/api/orders", func(r chi.Router) {
			r.Post("/", orderH.Create)
			r.Get("/", orderH.List)
			r.Get("/search", orderH.Search)
			r.Get("/{id}", orderH.GetByID)
			r.Put("/{id}", orderH.Update)
			r.Delete("/{id}", orderH.Delete)
		})

		r.Route("/api/order-details", func(r chi.Router) {
			r.Post("/", orderH.CreateDetail)
			r.Get("/", orderH.ListDetails)
			r.Get("/feedback", orderH.SearchDetailFeedback)
			r.Get("/{id}", orderH.GetDetailByID)
			r.Put("/{id}", orderH.UpdateDetail)
			r.Delete("/{id}", orderH.DeleteDetail)
		})

		r.Route("/api/carts", func(r chi.Router) {
			r.Post("/", cartH.Create)
			r.Get("/", cartH.List)
			r.Get("/{id}", cartH.GetByID)
			r.Put("/{id}", cartH.Update)
			r.Delete("/{id}", cartH.Delete)
		})

		r.Route("/api/favorites", func(r chi.Router) {
			r.Post("/", favoriteH.Add)
			r.Get("/", favoriteH.List)
			r.Delete("/{id}", favoriteH.Delete)
		})

		r.Route("/api/accounts", func(r chi.Router) {
			r.Get("/{id}", accountH.GetByID)
			r.Put("/{id}", accountH.Update)
			r.Delete("/{id}", accountH.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireElevated)

			r.Get("/api/accounts", accountH.List)

			r.Post("/api/categories", catalogH.CreateCategory)
			r.Put("/api/categories/{id}", catalogH.UpdateCategory)
			r.Delete("/api/categories/{id}", catalogH.DeleteCategory)

			r.Post("/api/products", catalogH.CreateProduct)
			r.Put("/api/products/{id}", catalogH.UpdateProduct)
			r.Delete("/api/products/{id}", catalogH.DeleteProduct)

			r.Post("/api/variants", catalogH.CreateVariant)
			r.Put("/api/variants/{id}", catalogH.UpdateVariant)
			r.Delete("/api/variants/{id}", catalogH.DeleteVariant)

			r.Route("/api/import-bills", func(r chi.Router) {
				r.Post("/", importBillH.CreateBill)
				r.Get("/", importBillH.ListBills)
				r.Get("/search", importBillH.SearchBills)
				r.Get("/{id}", importBillH.GetBill)
				r.Put("/{id}", importBillH.UpdateBill)
				r.Delete("/{id}", importBillH.DeleteBill)
				r.Get("/{billId}/details", importBillH.ListDetailsByBill)
			})
			r.Route("/api/import-bill-details", func(r chi.Router) {
				r.Post("/", importBillH.CreateDetail)
				r.Get("/{id}", importBillH.GetDetail)
				r.Put("/{id}", importBillH.UpdateDetail)
				r.Delete("/{id}", importBillH.DeleteDetail)
			})

			r.Route("/api/statistics", func(r chi.Router) {
				r.Get("/customers", statisticH.Customers)
				r.Get("/revenue", statisticH.Revenue)
				r.Get("/orders", statisticH.Orders)
				r.Get("/revenue/week", statisticH.RevenueByWeek)
				r.Get("/revenue/month", statisticH.RevenueByMonth)
				r.Get("/revenue/year", statisticH.RevenueByYear)
			})
		})
	})

	return r
}
