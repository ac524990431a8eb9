package graphql

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/service"
	apperrors "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/errors"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/middleware"
)

// Resolver dispatches GraphQL operations to the shared service layer. The
// REST service drives the same services, so both surfaces agree on semantics.
type Resolver struct {
	users    *service.UserService
	catalog  *service.CatalogService
	carts    *service.CartService
	orders   *service.OrderService
	contacts *service.ContactService
	logger   *slog.Logger
	tokenTTL time.Duration
}

// NewResolver creates a resolver over the shared services.
func NewResolver(
	users *service.UserService,
	catalog *service.CatalogService,
	carts *service.CartService,
	orders *service.OrderService,
	contacts *service.ContactService,
	logger *slog.Logger,
	tokenTTL time.Duration,
) *Resolver {
	return &Resolver{
		users:    users,
		catalog:  catalog,
		carts:    carts,
		orders:   orders,
		contacts: contacts,
		logger:   logger,
		tokenTTL: tokenTTL,
	}
}

// --- helpers ---

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func intArg(p graphql.ResolveParams, name string) int {
	n, _ := p.Args[name].(int)
	return n
}

// ownerFromParams derives the cart owner: explicit userId/cartId arguments
// win, then the verified identity from the permissive gate.
func ownerFromParams(p graphql.ResolveParams) (domain.CartOwner, error) {
	if userID := stringArg(p, "userId"); userID != "" {
		return domain.OwnerForUser(userID), nil
	}
	if cartID := stringArg(p, "cartId"); cartID != "" {
		return domain.OwnerForGuest(cartID), nil
	}
	if identity, ok := middleware.IdentityFromContext(p.Context); ok {
		return domain.OwnerForUser(identity.UserID), nil
	}
	return domain.CartOwner{}, wrapError(apperrors.InvalidInput("userId or cartId is required"))
}

// requireAdmin guards operations that expose every shopper's data. The
// permissive gate never rejects, so the role check happens here.
func requireAdmin(p graphql.ResolveParams) error {
	identity, ok := middleware.IdentityFromContext(p.Context)
	if !ok {
		return wrapError(apperrors.Unauthorized("not authenticated"))
	}
	if identity.Role != domain.RoleAdmin {
		return wrapError(apperrors.Forbidden("insufficient permissions"))
	}
	return nil
}

// --- user resolvers ---

func (r *Resolver) resolveUsers(p graphql.ResolveParams) (interface{}, error) {
	users, err := r.users.ListUsers(p.Context)
	if err != nil {
		return nil, wrapError(err)
	}
	return users, nil
}

func (r *Resolver) resolveLoggedInUser(p graphql.ResolveParams) (interface{}, error) {
	identity, ok := middleware.IdentityFromContext(p.Context)
	if !ok {
		return nil, wrapError(apperrors.Unauthorized("not authenticated"))
	}

	user, err := r.users.LoggedInUser(p.Context, identity.UserID)
	if err != nil {
		return nil, wrapError(err)
	}
	return user, nil
}

func (r *Resolver) resolveSignupUser(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["userNew"].(map[string]interface{})
	fullname, _ := input["fullname"].(string)
	email, _ := input["email"].(string)
	password, _ := input["password"].(string)

	user, err := r.users.Signup(p.Context, service.SignupInput{
		Fullname: fullname,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return user, nil
}

func (r *Resolver) resolveSigninUser(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["userSignin"].(map[string]interface{})
	email, _ := input["email"].(string)
	password, _ := input["password"].(string)

	payload, err := r.users.Signin(p.Context, service.SigninInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, wrapError(err)
	}

	// Fold a guest cart into the user's cart when the client hands one over.
	if cartID := stringArg(p, "cartId"); cartID != "" {
		if _, err := r.carts.MergeCarts(p.Context, domain.OwnerForGuest(cartID), domain.OwnerForUser(payload.UserID)); err != nil {
			r.logger.ErrorContext(p.Context, "failed to merge guest cart on sign-in",
				slog.String("cart_id", cartID),
				slog.String("user_id", payload.UserID),
				slog.String("error", err.Error()),
			)
		}
	}

	if w, ok := ResponseWriterFromContext(p.Context); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.TokenCookieName,
			Value:    payload.Token,
			Path:     "/",
			MaxAge:   int(r.tokenTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return payload, nil
}

func (r *Resolver) resolveLogoutUser(p graphql.ResolveParams) (interface{}, error) {
	if w, ok := ResponseWriterFromContext(p.Context); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.TokenCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	}, nil
}

func (r *Resolver) resolveUpdateUserRole(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.users.UpdateRole(p.Context, stringArg(p, "userId"), stringArg(p, "role"))
	if err != nil {
		return nil, wrapError(err)
	}
	return user, nil
}

func (r *Resolver) resolveDeleteUser(p graphql.ResolveParams) (interface{}, error) {
	if err := r.users.DeleteUser(p.Context, stringArg(p, "userId")); err != nil {
		return nil, wrapError(err)
	}
	return "User deleted successfully", nil
}

// --- catalog resolvers ---

func (r *Resolver) resolveProducts(p graphql.ResolveParams) (interface{}, error) {
	// The storefront expects the full catalog unless it asks for a page.
	if perPage := intArg(p, "perPage"); perPage > 0 {
		result, err := r.catalog.ListProducts(p.Context, intArg(p, "page"), perPage)
		if err != nil {
			return nil, wrapError(err)
		}
		return result.Data, nil
	}

	products, err := r.catalog.ListAllProducts(p.Context)
	if err != nil {
		return nil, wrapError(err)
	}
	return products, nil
}

func (r *Resolver) resolveProductCategories(p graphql.ResolveParams) (interface{}, error) {
	categories, err := r.catalog.Categories(p.Context)
	if err != nil {
		return nil, wrapError(err)
	}
	return categories, nil
}

func (r *Resolver) resolveAddProduct(p graphql.ResolveParams) (interface{}, error) {
	product, err := r.catalog.AddProduct(p.Context, productInputFromArgs(p.Args["productNew"]))
	if err != nil {
		return nil, wrapError(err)
	}
	return product, nil
}

func (r *Resolver) resolveUpdateProduct(p graphql.ResolveParams) (interface{}, error) {
	product, err := r.catalog.UpdateProduct(p.Context, stringArg(p, "productId"), productInputFromArgs(p.Args["productNew"]))
	if err != nil {
		return nil, wrapError(err)
	}
	return product, nil
}

func (r *Resolver) resolveDeleteProduct(p graphql.ResolveParams) (interface{}, error) {
	if err := r.catalog.DeleteProduct(p.Context, stringArg(p, "productId")); err != nil {
		return nil, wrapError(err)
	}
	return "Product deleted successfully", nil
}

func productInputFromArgs(arg interface{}) service.ProductInput {
	input, _ := arg.(map[string]interface{})

	var images []string
	if raw, ok := input["images"].([]interface{}); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				images = append(images, s)
			}
		}
	}

	specs := map[string]string{}
	if raw, ok := input["specifications"].([]interface{}); ok {
		for _, v := range raw {
			if entry, ok := v.(map[string]interface{}); ok {
				k, _ := entry["key"].(string)
				val, _ := entry["value"].(string)
				if k != "" {
					specs[k] = val
				}
			}
		}
	}

	name, _ := input["name"].(string)
	description, _ := input["description"].(string)
	category, _ := input["category"].(string)
	price, _ := input["price"].(int)

	return service.ProductInput{
		Name:           name,
		Description:    description,
		Price:          int64(price),
		Category:       category,
		Images:         images,
		Specifications: specs,
	}
}

// --- cart resolvers ---

func (r *Resolver) resolveGetCart(p graphql.ResolveParams) (interface{}, error) {
	owner, err := ownerFromParams(p)
	if err != nil {
		return nil, err
	}

	cart, err := r.carts.GetCart(p.Context, owner)
	if err != nil {
		return nil, wrapError(err)
	}
	return cart, nil
}

func (r *Resolver) resolveAddToCart(p graphql.ResolveParams) (interface{}, error) {
	owner, err := ownerFromParams(p)
	if err != nil {
		return nil, err
	}

	item, _ := p.Args["item"].(map[string]interface{})
	productID, _ := item["productId"].(string)
	name, _ := item["name"].(string)
	price, _ := item["price"].(int)
	quantity, _ := item["quantity"].(int)
	thumbnail, _ := item["thumbnail"].(string)

	cart, err := r.carts.AddItem(p.Context, owner, service.AddItemInput{
		ProductID: productID,
		Quantity:  quantity,
		Name:      name,
		Price:     int64(price),
		Thumbnail: thumbnail,
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return cart, nil
}

func (r *Resolver) resolveUpdateCartItem(p graphql.ResolveParams) (interface{}, error) {
	owner, err := ownerFromParams(p)
	if err != nil {
		return nil, err
	}

	cart, err := r.carts.UpdateQuantity(p.Context, owner, stringArg(p, "productId"), intArg(p, "quantity"))
	if err != nil {
		return nil, wrapError(err)
	}
	return cart, nil
}

func (r *Resolver) resolveRemoveCartItem(p graphql.ResolveParams) (interface{}, error) {
	owner, err := ownerFromParams(p)
	if err != nil {
		return nil, err
	}

	cart, err := r.carts.RemoveItem(p.Context, owner, stringArg(p, "productId"))
	if err != nil {
		return nil, wrapError(err)
	}
	return cart, nil
}

func (r *Resolver) resolveClearCart(p graphql.ResolveParams) (interface{}, error) {
	owner, err := ownerFromParams(p)
	if err != nil {
		return nil, err
	}

	if err := r.carts.ClearCart(p.Context, owner); err != nil {
		return nil, wrapError(err)
	}
	return "Cart cleared successfully", nil
}

// --- order resolvers ---

func (r *Resolver) resolveGetOrders(p graphql.ResolveParams) (interface{}, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	page := intArg(p, "page")
	perPage := intArg(p, "perPage")
	if perPage == 0 {
		perPage = 100
	}

	result, err := r.orders.ListOrders(p.Context, page, perPage)
	if err != nil {
		return nil, wrapError(err)
	}
	return result.Data, nil
}

func (r *Resolver) resolveGetUserOrders(p graphql.ResolveParams) (interface{}, error) {
	orders, err := r.orders.ListUserOrders(p.Context, stringArg(p, "userId"))
	if err != nil {
		return nil, wrapError(err)
	}
	return orders, nil
}

func (r *Resolver) resolveGetOrderByID(p graphql.ResolveParams) (interface{}, error) {
	order, err := r.orders.GetOrder(p.Context, stringArg(p, "orderId"))
	if err != nil {
		return nil, wrapError(err)
	}
	return order, nil
}

func (r *Resolver) resolveCreateOrder(p graphql.ResolveParams) (interface{}, error) {
	var items []service.OrderItemInput
	if raw, ok := p.Args["items"].([]interface{}); ok {
		for _, v := range raw {
			item, _ := v.(map[string]interface{})
			productID, _ := item["productId"].(string)
			name, _ := item["name"].(string)
			price, _ := item["price"].(int)
			quantity, _ := item["quantity"].(int)
			items = append(items, service.OrderItemInput{
				ProductID: productID,
				Name:      name,
				Price:     int64(price),
				Quantity:  quantity,
			})
		}
	}

	shipping, _ := p.Args["shippingDetails"].(map[string]interface{})
	fullName, _ := shipping["fullName"].(string)
	email, _ := shipping["email"].(string)
	phone, _ := shipping["phone"].(string)
	city, _ := shipping["city"].(string)
	address, _ := shipping["address"].(string)

	totalPrice, _ := p.Args["totalPrice"].(int)

	order, err := r.orders.CreateOrder(p.Context, service.CreateOrderInput{
		UserID:     stringArg(p, "userId"),
		Items:      items,
		TotalPrice: int64(totalPrice),
		ShippingDetails: domain.ShippingDetails{
			FullName: fullName,
			Email:    email,
			Phone:    phone,
			City:     city,
			Address:  address,
		},
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return order, nil
}

func (r *Resolver) resolveUpdateOrderStatus(p graphql.ResolveParams) (interface{}, error) {
	order, err := r.orders.UpdateStatus(p.Context, stringArg(p, "orderId"), stringArg(p, "status"))
	if err != nil {
		return nil, wrapError(err)
	}
	return order, nil
}

func (r *Resolver) resolveDeleteOrder(p graphql.ResolveParams) (interface{}, error) {
	if err := r.orders.DeleteOrder(p.Context, stringArg(p, "orderId")); err != nil {
		return nil, wrapError(err)
	}
	return "Order deleted successfully", nil
}

// --- contact resolvers ---

func (r *Resolver) resolveGetContactMessages(p graphql.ResolveParams) (interface{}, error) {
	messages, err := r.contacts.ListMessages(p.Context)
	if err != nil {
		return nil, wrapError(err)
	}
	return messages, nil
}

func (r *Resolver) resolveGetContactMessageByID(p graphql.ResolveParams) (interface{}, error) {
	msg, err := r.contacts.GetMessage(p.Context, stringArg(p, "messageId"))
	if err != nil {
		return nil, wrapError(err)
	}
	return msg, nil
}

func (r *Resolver) resolveAddContactMessage(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["contactInput"].(map[string]interface{})
	fullName, _ := input["fullName"].(string)
	email, _ := input["email"].(string)
	subject, _ := input["subject"].(string)
	message, _ := input["message"].(string)
	createdBy, _ := input["createdBy"].(string)
	if createdBy == "" {
		if identity, ok := middleware.IdentityFromContext(p.Context); ok {
			createdBy = identity.UserID
		}
	}

	msg, err := r.contacts.Submit(p.Context, service.ContactInput{
		FullName:  fullName,
		Email:     email,
		Subject:   subject,
		Message:   message,
		CreatedBy: createdBy,
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return msg, nil
}

func (r *Resolver) resolveDeleteContactMessage(p graphql.ResolveParams) (interface{}, error) {
	if err := r.contacts.DeleteMessage(p.Context, stringArg(p, "messageId")); err != nil {
		return nil, wrapError(err)
	}
	return "Contact message deleted successfully", nil
}
