package integration

import (
	"fmt"
	"testing"
)

// createProduct seeds a catalog product through the GraphQL service and
// returns its id. The REST cart endpoints resolve prices from the catalog,
// so cart flows need a real product to reference.
func createProduct(t *testing.T, name string, price int) string {
	t.Helper()

	data := gqlRequest(t, `
		mutation AddProduct($productNew: ProductInput!) {
			addProduct(productNew: $productNew) { id name price }
		}`, map[string]interface{}{
		"productNew": map[string]interface{}{
			"name":        name,
			"description": "integration test product",
			"price":       price,
			"category":    "integration",
			"images":      []string{"https://cdn.test.example.com/p.jpg"},
		},
	}, "")
	if errs := gqlErrors(data); len(errs) > 0 {
		t.Fatalf("addProduct failed: %v", errs)
	}
	return extractString(t, data, "data.addProduct.id")
}

// TestCartFlow runs the full cart lifecycle against the REST service:
// add an item, read the cart back, change its quantity, remove it, clear.
func TestCartFlow(t *testing.T) {
	skipIfNotRunning(t, storeAPIPort)
	skipIfNotRunning(t, graphQLPort)

	productID := createProduct(t, uniqueID("Cart Flow Product"), 2599)
	t.Logf("created product %s", productID)

	_, token := registerAndLogin(t, "cart-flow")

	// Add the product to the cart.
	status, data := httpPostWithToken(t, baseURL(storeAPIPort)+"/api/cart/add-to-cart", map[string]interface{}{
		"productId": productID,
		"quantity":  2,
	}, token)
	requireStatus(t, status, 200)
	if msg := extractString(t, data, "message"); msg != "Item added to cart" {
		t.Fatalf("unexpected message %q", msg)
	}
	items, ok := extractField(data, "data.cart_items").([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("expected 1 cart item, got %v", extractField(data, "data.cart_items"))
	}

	// Read the cart back; the line must carry the catalog price.
	status, data = httpGetWithToken(t, baseURL(storeAPIPort)+"/api/cart/get-cart", token)
	requireStatus(t, status, 200)
	line, ok := extractField(data, "data.cart_items").([]interface{})
	if !ok || len(line) != 1 {
		t.Fatalf("expected 1 cart item after get-cart, got %v", extractField(data, "data.cart_items"))
	}
	item := line[0].(map[string]interface{})
	if got := item["product_id"]; got != productID {
		t.Fatalf("expected product_id %q, got %v", productID, got)
	}
	if got := item["price"]; got != float64(2599) {
		t.Fatalf("expected price 2599, got %v", got)
	}
	if got := item["quantity"]; got != float64(2) {
		t.Fatalf("expected quantity 2, got %v", got)
	}

	// Update the quantity.
	status, data = httpPostWithToken(t, baseURL(storeAPIPort)+"/api/cart/update-qty", map[string]interface{}{
		"productId": productID,
		"quantity":  5,
	}, token)
	requireStatus(t, status, 200)
	if msg := extractString(t, data, "message"); msg != "Quantity updated" {
		t.Fatalf("unexpected message %q", msg)
	}
	line = extractField(data, "data.cart_items").([]interface{})
	if got := line[0].(map[string]interface{})["quantity"]; got != float64(5) {
		t.Fatalf("expected quantity 5, got %v", got)
	}

	// Remove the item.
	status, data = httpPostWithToken(t, baseURL(storeAPIPort)+"/api/cart/remove-item", map[string]interface{}{
		"productId": productID,
	}, token)
	requireStatus(t, status, 200)
	if msg := extractString(t, data, "message"); msg != "Item removed" {
		t.Fatalf("unexpected message %q", msg)
	}
	if line, ok := extractField(data, "data.cart_items").([]interface{}); ok && len(line) != 0 {
		t.Fatalf("expected empty cart after removal, got %v", line)
	}

	// Clear is idempotent even on an empty cart.
	status, data = httpPostWithToken(t, baseURL(storeAPIPort)+"/api/cart/clear", nil, token)
	requireStatus(t, status, 200)
	if msg := extractString(t, data, "message"); msg != "Cart cleared successfully" {
		t.Fatalf("unexpected message %q", msg)
	}
}

// TestCartUnknownProduct checks that adding a product the catalog does not
// know is rejected.
func TestCartUnknownProduct(t *testing.T) {
	skipIfNotRunning(t, storeAPIPort)

	_, token := registerAndLogin(t, "cart-unknown")

	status, data := httpPostWithToken(t, baseURL(storeAPIPort)+"/api/cart/add-to-cart", map[string]interface{}{
		"productId": fmt.Sprintf("missing-%s", uniqueID("p")),
		"quantity":  1,
	}, token)
	requireStatus(t, status, 404)
	if code := extractString(t, data, "error.code"); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %q", code)
	}
}

// TestCartQuantityLimit checks the per-line quantity cap.
func TestCartQuantityLimit(t *testing.T) {
	skipIfNotRunning(t, storeAPIPort)
	skipIfNotRunning(t, graphQLPort)

	productID := createProduct(t, uniqueID("Cart Limit Product"), 999)
	_, token := registerAndLogin(t, "cart-limit")

	status, _ := httpPostWithToken(t, baseURL(storeAPIPort)+"/api/cart/add-to-cart", map[string]interface{}{
		"productId": productID,
		"quantity":  101,
	}, token)
	requireStatus(t, status, 400)
}
