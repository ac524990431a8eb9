package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"testing"
	"time"
)

// Default ports for the two storefront services. Override with a reverse
// proxy or port mapping if the docker-compose setup differs.
const (
	storeAPIPort = 5000
	graphQLPort  = 4000
)

// baseURL returns the base URL for a service running on the given port.
func baseURL(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}

// uniqueEmail generates a unique email address to avoid test collisions.
func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d-%d@test.example.com", prefix, time.Now().UnixNano(), rand.Intn(100000))
}

// uniqueID generates a unique suffix for test entity names.
func uniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), rand.Intn(100000))
}

// skipIfNotRunning performs a quick health check against a service.
// If the service is unreachable, the test is skipped (not failed).
func skipIfNotRunning(t *testing.T, port int) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL(port) + "/health/live")
	if err != nil {
		t.Skipf("service on port %d not reachable (Docker not running?): %v", port, err)
	}
	resp.Body.Close()
}

// httpGet performs an HTTP GET request and returns the status code and decoded JSON body.
func httpGet(t *testing.T, url string) (int, map[string]interface{}) {
	t.Helper()
	return doJSONRequest(t, http.MethodGet, url, nil, "")
}

// httpGetWithToken performs an HTTP GET request carrying the auth cookie.
func httpGetWithToken(t *testing.T, url, token string) (int, map[string]interface{}) {
	t.Helper()
	return doJSONRequest(t, http.MethodGet, url, nil, token)
}

// httpPost performs an HTTP POST request with a JSON body.
func httpPost(t *testing.T, url string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	return doJSONRequest(t, http.MethodPost, url, body, "")
}

// httpPostWithToken performs an HTTP POST request with a JSON body and the
// auth cookie the storefront login issues.
func httpPostWithToken(t *testing.T, url string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	return doJSONRequest(t, http.MethodPost, url, body, token)
}

// doJSONRequest is the internal helper for JSON HTTP requests. A non-empty
// token travels as the "token" cookie, matching what browsers send.
func doJSONRequest(t *testing.T, method, url string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	var bodyReader io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshalling request body failed: %v", err)
		}
		bodyReader = bytes.NewReader(jsonBytes)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		t.Fatalf("creating %s request for %s failed: %v", method, url, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp.Body)
}

// gqlRequest executes a GraphQL query against the graphql service and returns
// the decoded response body.
func gqlRequest(t *testing.T, query string, variables map[string]interface{}, token string) map[string]interface{} {
	t.Helper()
	status, data := doJSONRequest(t, http.MethodPost, baseURL(graphQLPort)+"/graphql",
		map[string]interface{}{"query": query, "variables": variables}, token)
	requireStatus(t, status, 200)
	return data
}

// gqlErrors returns the error messages of a GraphQL response, if any.
func gqlErrors(data map[string]interface{}) []string {
	raw, ok := data["errors"].([]interface{})
	if !ok {
		return nil
	}
	msgs := make([]string, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(map[string]interface{}); ok {
			if msg, ok := m["message"].(string); ok {
				msgs = append(msgs, msg)
			}
		}
	}
	return msgs
}

// decodeBody reads the response body and attempts to decode it as JSON.
// If the body is empty or not JSON, it returns an empty map.
func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading response body failed: %v", err)
	}
	if len(raw) == 0 {
		return map[string]interface{}{}
	}
	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		// Not JSON; return the raw string in a "raw" key for debugging.
		return map[string]interface{}{"raw": string(raw)}
	}
	return result
}

// requireStatus asserts that the HTTP status code matches the expected value.
func requireStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("expected status %d, got %d", want, got)
	}
}

// extractField extracts a value from a nested map using a dot-separated path.
// For example, extractField(data, "data.role") navigates data["data"]["role"].
func extractField(data map[string]interface{}, path string) interface{} {
	parts := strings.Split(path, ".")
	var current interface{} = data
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}

// extractString is a convenience wrapper around extractField that returns a string.
func extractString(t *testing.T, data map[string]interface{}, path string) string {
	t.Helper()
	val := extractField(data, path)
	if val == nil {
		t.Fatalf("expected string at path %q, got nil", path)
	}
	s, ok := val.(string)
	if !ok {
		t.Fatalf("expected string at path %q, got %T: %v", path, val, val)
	}
	return s
}

// registerAndLogin creates a fresh account against the REST service and
// returns its email and token.
func registerAndLogin(t *testing.T, prefix string) (string, string) {
	t.Helper()

	email := uniqueEmail(prefix)
	status, _ := httpPost(t, baseURL(storeAPIPort)+"/api/auth/registeruser", map[string]interface{}{
		"fullname": "Integration Test",
		"email":    email,
		"password": "TestPass123!",
	})
	requireStatus(t, status, 201)

	status, data := httpPost(t, baseURL(storeAPIPort)+"/api/auth/login", map[string]interface{}{
		"email":    email,
		"password": "TestPass123!",
	})
	requireStatus(t, status, 200)

	return email, extractString(t, data, "data.token")
}
