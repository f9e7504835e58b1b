package web

import (
	"net/http"
	"testing"

	"github.com/evcraddock/homebase/internal/user"
)

func TestSignupAndSignin(t *testing.T) {
	srv, _ := testServer(t)

	token := signup(t, srv, user.RoleBuyer, "Arman", "arman@example.com")
	if token == "" {
		t.Fatal("expected token from signup")
	}

	w := apiRequest(t, srv, "POST", "/auth/signin", "", map[string]string{
		"email":    "arman@example.com",
		"password": "hunter22",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp tokenResponse
	decodeBody(t, w, &resp)
	if resp.Token == "" {
		t.Error("expected token from signin")
	}
}

func TestSignupRoleIsCaseInsensitive(t *testing.T) {
	srv, _ := testServer(t)

	w := apiRequest(t, srv, "POST", "/auth/signup/buyer", "", map[string]string{
		"name": "Arman", "email": "arman@example.com", "phone": "555-0011", "password": "hunter22",
	})
	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestSignupErrors(t *testing.T) {
	srv, _ := testServer(t)
	signup(t, srv, user.RoleBuyer, "Arman", "arman@example.com")

	valid := map[string]string{"name": "Sadim", "email": "sadim@example.com", "phone": "555-0009", "password": "hunter22"}
	with := func(k, v string) map[string]string {
		m := make(map[string]string, len(valid))
		for key, val := range valid {
			m[key] = val
		}
		m[k] = v
		return m
	}

	tests := []struct {
		name string
		path string
		body map[string]string
		want int
	}{
		{"unknown role", "/auth/signup/OWNER", valid, http.StatusUnprocessableEntity},
		{"bad email", "/auth/signup/BUYER", with("email", "not-an-email"), http.StatusUnprocessableEntity},
		{"short password", "/auth/signup/BUYER", with("password", "abc"), http.StatusUnprocessableEntity},
		{"missing name", "/auth/signup/BUYER", with("name", ""), http.StatusUnprocessableEntity},
		{"duplicate email", "/auth/signup/BUYER", with("email", "arman@example.com"), http.StatusConflict},
		{"realtor without key", "/auth/signup/REALTOR", valid, http.StatusForbidden},
		{"admin with bad key", "/auth/signup/ADMIN", with("productKey", "nope"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := apiRequest(t, srv, "POST", tt.path, "", tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestSigninInvalidCredentials(t *testing.T) {
	srv, _ := testServer(t)
	signup(t, srv, user.RoleBuyer, "Arman", "arman@example.com")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "arman@example.com", "wrong"},
		{"unknown email", "ghost@example.com", "hunter22"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := apiRequest(t, srv, "POST", "/auth/signin", "", map[string]string{
				"email": tt.email, "password": tt.password,
			})
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if msg := errorMessage(t, w); msg != "invalid credentials" {
				t.Errorf("error = %q, want %q", msg, "invalid credentials")
			}
		})
	}
}

func TestProductKeyEndpoint(t *testing.T) {
	srv, _ := testServer(t)
	admin := signup(t, srv, user.RoleAdmin, "Root", "root@example.com")
	buyer := signup(t, srv, user.RoleBuyer, "Arman", "arman@example.com")

	body := map[string]string{"email": "sadim@example.com", "role": "REALTOR"}

	if w := apiRequest(t, srv, "POST", "/auth/key", "", body); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if w := apiRequest(t, srv, "POST", "/auth/key", buyer, body); w.Code != http.StatusForbidden {
		t.Errorf("buyer: status = %d, want %d", w.Code, http.StatusForbidden)
	}

	w := apiRequest(t, srv, "POST", "/auth/key", admin, body)
	if w.Code != http.StatusOK {
		t.Fatalf("admin: status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	decodeBody(t, w, &resp)

	w = apiRequest(t, srv, "POST", "/auth/signup/REALTOR", "", map[string]string{
		"name": "Sadim", "email": "sadim@example.com", "phone": "555-0009",
		"password": "hunter22", "productKey": resp["product_key"],
	})
	if w.Code != http.StatusCreated {
		t.Errorf("realtor signup with issued key: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestProductKeyUnknownRole(t *testing.T) {
	srv, _ := testServer(t)
	admin := signup(t, srv, user.RoleAdmin, "Root", "root@example.com")

	w := apiRequest(t, srv, "POST", "/auth/key", admin, map[string]string{"email": "x@example.com", "role": "OWNER"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
}

func TestMe(t *testing.T) {
	srv, _ := testServer(t)
	token := signup(t, srv, user.RoleRealtor, "Sadim", "sadim@example.com")

	w := apiRequest(t, srv, "GET", "/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	if resp["email"] != "sadim@example.com" || resp["role"] != "REALTOR" {
		t.Errorf("me = %v", resp)
	}
	if _, leaked := resp["PasswordHash"]; leaked {
		t.Error("password hash must not be serialized")
	}

	if w := apiRequest(t, srv, "GET", "/auth/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestListUsersAdminOnly(t *testing.T) {
	srv, _ := testServer(t)
	admin := signup(t, srv, user.RoleAdmin, "Root", "root@example.com")
	realtor := signup(t, srv, user.RoleRealtor, "Sadim", "sadim@example.com")

	if w := apiRequest(t, srv, "GET", "/api/users", realtor, nil); w.Code != http.StatusForbidden {
		t.Errorf("realtor: status = %d, want %d", w.Code, http.StatusForbidden)
	}

	w := apiRequest(t, srv, "GET", "/api/users", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin: status = %d", w.Code)
	}
	var users []map[string]interface{}
	decodeBody(t, w, &users)
	if len(users) != 2 {
		t.Errorf("got %d users, want 2", len(users))
	}
}
