package graphql

import (
	"fmt"
	"sort"

	"github.com/graphql-go/graphql"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
)

// NewSchema builds the storefront GraphQL schema over the given resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.String},
			"_id":      &graphql.Field{Type: graphql.String, Resolve: resolveID},
			"fullname": &graphql.Field{Type: graphql.String},
			"email":    &graphql.Field{Type: graphql.String},
			"role":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{
				Type:    graphql.DateTime,
				Resolve: fieldResolver(func(u *domain.User) (interface{}, error) { return u.CreatedAt, nil }),
			},
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.String},
			"role":  &graphql.Field{Type: graphql.String},
		},
	})

	logoutResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "LogoutResponse",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.Boolean},
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	specificationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Specification",
		Fields: graphql.Fields{
			"key":   &graphql.Field{Type: graphql.String},
			"value": &graphql.Field{Type: graphql.String},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"_id":         &graphql.Field{Type: graphql.String, Resolve: resolveID},
			"name":        &graphql.Field{Type: graphql.String},
			"slug":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.Int},
			"category":    &graphql.Field{Type: graphql.String},
			"images":      &graphql.Field{Type: graphql.NewList(graphql.String)},
			"specifications": &graphql.Field{
				Type: graphql.NewList(specificationType),
				Resolve: fieldResolver(func(p *domain.Product) (interface{}, error) {
					keys := make([]string, 0, len(p.Specifications))
					for k := range p.Specifications {
						keys = append(keys, k)
					}
					sort.Strings(keys)
					specs := make([]map[string]interface{}, 0, len(keys))
					for _, k := range keys {
						specs = append(specs, map[string]interface{}{"key": k, "value": p.Specifications[k]})
					}
					return specs, nil
				}),
			},
			"createdAt": &graphql.Field{
				Type:    graphql.DateTime,
				Resolve: fieldResolver(func(p *domain.Product) (interface{}, error) { return p.CreatedAt, nil }),
			},
		},
	})

	cartItemImagesType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CartItemImages",
		Fields: graphql.Fields{
			"thumbnail": &graphql.Field{Type: graphql.String},
		},
	})

	cartItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CartItem",
		Fields: graphql.Fields{
			"productId": &graphql.Field{Type: graphql.String},
			"name":      &graphql.Field{Type: graphql.String},
			"price":     &graphql.Field{Type: graphql.Int},
			"quantity":  &graphql.Field{Type: graphql.Int},
			"thumbnail": &graphql.Field{Type: graphql.String},
			"images": &graphql.Field{
				Type: cartItemImagesType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if item, ok := p.Source.(domain.CartItem); ok {
						return map[string]interface{}{"thumbnail": item.Thumbnail}, nil
					}
					return nil, nil
				},
			},
		},
	})

	cartType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Cart",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.String},
			"_id":    &graphql.Field{Type: graphql.String, Resolve: resolveID},
			"userId": &graphql.Field{Type: graphql.String},
			"cartId": &graphql.Field{Type: graphql.String},
			"cartItems": &graphql.Field{
				Type:    graphql.NewList(cartItemType),
				Resolve: fieldResolver(func(c *domain.Cart) (interface{}, error) { return c.Items, nil }),
			},
			"totalPrice": &graphql.Field{
				Type:    graphql.Int,
				Resolve: fieldResolver(func(c *domain.Cart) (interface{}, error) { return c.TotalPrice(), nil }),
			},
			"updatedAt": &graphql.Field{
				Type:    graphql.DateTime,
				Resolve: fieldResolver(func(c *domain.Cart) (interface{}, error) { return c.UpdatedAt, nil }),
			},
		},
	})

	orderItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"productId": &graphql.Field{Type: graphql.String},
			"name":      &graphql.Field{Type: graphql.String},
			"price":     &graphql.Field{Type: graphql.Int},
			"quantity":  &graphql.Field{Type: graphql.Int},
		},
	})

	shippingDetailsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ShippingDetails",
		Fields: graphql.Fields{
			"fullName": &graphql.Field{Type: graphql.String},
			"email":    &graphql.Field{Type: graphql.String},
			"phone":    &graphql.Field{Type: graphql.String},
			"city":     &graphql.Field{Type: graphql.String},
			"address":  &graphql.Field{Type: graphql.String},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.String},
			"_id":             &graphql.Field{Type: graphql.String, Resolve: resolveID},
			"userId":          &graphql.Field{Type: graphql.String},
			"items":           &graphql.Field{Type: graphql.NewList(orderItemType)},
			"totalPrice":      &graphql.Field{Type: graphql.Int},
			"shippingDetails": &graphql.Field{Type: shippingDetailsType},
			"status":          &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{
				Type:    graphql.DateTime,
				Resolve: fieldResolver(func(o *domain.Order) (interface{}, error) { return o.CreatedAt, nil }),
			},
		},
	})

	contactMessageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ContactMessage",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.String},
			"_id":       &graphql.Field{Type: graphql.String, Resolve: resolveID},
			"fullName":  &graphql.Field{Type: graphql.String},
			"email":     &graphql.Field{Type: graphql.String},
			"subject":   &graphql.Field{Type: graphql.String},
			"message":   &graphql.Field{Type: graphql.String},
			"createdBy": &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{
				Type:    graphql.DateTime,
				Resolve: fieldResolver(func(m *domain.ContactMessage) (interface{}, error) { return m.CreatedAt, nil }),
			},
		},
	})

	userInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"fullname": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	signinInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SigninInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	specificationInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SpecificationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"key":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"value": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	productInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"price":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"category":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"images":         &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
			"specifications": &graphql.InputObjectFieldConfig{Type: graphql.NewList(specificationInput)},
		},
	})

	cartItemInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CartItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"productId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"price":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"quantity":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"thumbnail": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	orderItemInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OrderItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"productId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"price":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"quantity":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	shippingInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ShippingInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"fullName": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"phone":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"city":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"address":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	contactInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ContactInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"fullName":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"subject":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"message":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"createdBy": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type:    graphql.NewList(userType),
				Resolve: r.resolveUsers,
			},
			"loggedInUser": &graphql.Field{
				Type:    userType,
				Resolve: r.resolveLoggedInUser,
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"page":    &graphql.ArgumentConfig{Type: graphql.Int},
					"perPage": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.resolveProducts,
			},
			"productCategories": &graphql.Field{
				Type:    graphql.NewList(graphql.String),
				Resolve: r.resolveProductCategories,
			},
			"getCart": &graphql.Field{
				Type: cartType,
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.String},
					"cartId": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.resolveGetCart,
			},
			"getOrders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"page":    &graphql.ArgumentConfig{Type: graphql.Int},
					"perPage": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.resolveGetOrders,
			},
			"getUserOrders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveGetUserOrders,
			},
			"getOrderById": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"orderId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveGetOrderByID,
			},
			"getContactMessages": &graphql.Field{
				Type:    graphql.NewList(contactMessageType),
				Resolve: r.resolveGetContactMessages,
			},
			"getContactMessageById": &graphql.Field{
				Type: contactMessageType,
				Args: graphql.FieldConfigArgument{
					"messageId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveGetContactMessageByID,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signupUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userNew": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInput)},
				},
				Resolve: r.resolveSignupUser,
			},
			"signinUser": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"userSignin": &graphql.ArgumentConfig{Type: graphql.NewNonNull(signinInput)},
					"cartId":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.resolveSigninUser,
			},
			"logoutUser": &graphql.Field{
				Type:    logoutResponseType,
				Resolve: r.resolveLogoutUser,
			},
			"updateUserRole": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"role":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveUpdateUserRole,
			},
			"deleteUser": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveDeleteUser,
			},
			"addProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"productNew": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInput)},
				},
				Resolve: r.resolveAddProduct,
			},
			"updateProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"productId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"productNew": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInput)},
				},
				Resolve: r.resolveUpdateProduct,
			},
			"deleteProduct": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveDeleteProduct,
			},
			"addToCart": &graphql.Field{
				Type: cartType,
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.String},
					"cartId": &graphql.ArgumentConfig{Type: graphql.String},
					"item":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(cartItemInput)},
				},
				Resolve: r.resolveAddToCart,
			},
			"updateCartItem": &graphql.Field{
				Type: cartType,
				Args: graphql.FieldConfigArgument{
					"userId":    &graphql.ArgumentConfig{Type: graphql.String},
					"cartId":    &graphql.ArgumentConfig{Type: graphql.String},
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"quantity":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolveUpdateCartItem,
			},
			"removeCartItem": &graphql.Field{
				Type: cartType,
				Args: graphql.FieldConfigArgument{
					"userId":    &graphql.ArgumentConfig{Type: graphql.String},
					"cartId":    &graphql.ArgumentConfig{Type: graphql.String},
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveRemoveCartItem,
			},
			"clearCart": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.String},
					"cartId": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.resolveClearCart,
			},
			"createOrder": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"userId":          &graphql.ArgumentConfig{Type: graphql.String},
					"items":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderItemInput)))},
					"totalPrice":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"shippingDetails": &graphql.ArgumentConfig{Type: graphql.NewNonNull(shippingInput)},
				},
				Resolve: r.resolveCreateOrder,
			},
			"updateOrderStatus": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"orderId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"status":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveUpdateOrderStatus,
			},
			"deleteOrder": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"orderId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveDeleteOrder,
			},
			"addContactMessage": &graphql.Field{
				Type: contactMessageType,
				Args: graphql.FieldConfigArgument{
					"contactInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(contactInput)},
				},
				Resolve: r.resolveAddContactMessage,
			},
			"deleteContactMessage": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"messageId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveDeleteContactMessage,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("build schema: %w", err)
	}

	return schema, nil
}

// resolveID exposes the entity id under the legacy `_id` field name the
// storefront frontend still queries.
func resolveID(p graphql.ResolveParams) (interface{}, error) {
	switch src := p.Source.(type) {
	case *domain.User:
		return src.ID, nil
	case *domain.Product:
		return src.ID, nil
	case *domain.Cart:
		return src.ID, nil
	case *domain.Order:
		return src.ID, nil
	case *domain.ContactMessage:
		return src.ID, nil
	default:
		return nil, nil
	}
}

// fieldResolver adapts a typed accessor to a graphql resolve function.
func fieldResolver[T any](fn func(T) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		src, ok := p.Source.(T)
		if !ok {
			return nil, nil
		}
		return fn(src)
	}
}
