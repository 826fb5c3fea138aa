package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-service/internal/entity"
	"shop-service/internal/repository"
	"shop-service/internal/service"
)

type memUserRepo struct {
	users  map[int]*entity.User
	nextID int
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("%w: username %q taken", repository.ErrDuplicate, user.Username)
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id int) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", repository.ErrNotFound, id)
	}
	return u, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %q", repository.ErrNotFound, username)
}

func (r *memUserRepo) GetAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	for id := 1; id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("%w: user %d", repository.ErrNotFound, id)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("%w: user %d", repository.ErrNotFound, id)
	}
	delete(r.users, id)
	return nil
}

type memTokenStore struct {
	tokens map[string]string
}

func (s *memTokenStore) Save(ctx context.Context, username, token string, ttl time.Duration) error {
	s.tokens[username] = token
	return nil
}

func (s *memTokenStore) Get(ctx context.Context, username string) (string, error) {
	return s.tokens[username], nil
}

func (s *memTokenStore) Delete(ctx context.Context, username string) error {
	delete(s.tokens, username)
	return nil
}

type memProductRepo struct {
	products map[int]*entity.Product
	nextID   int
}

func (r *memProductRepo) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	r.nextID++
	product.ID = r.nextID
	r.products[product.ID] = product
	return product, nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id int) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", repository.ErrNotFound, id)
	}
	return p, nil
}

func (r *memProductRepo) GetAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	for id := 1; id <= r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (r *memProductRepo) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	r.products[product.ID] = product
	return product, nil
}

func (r *memProductRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("%w: product %d", repository.ErrNotFound, id)
	}
	delete(r.products, id)
	return nil
}

const testSecret = "test-secret"

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	userRepo := &memUserRepo{users: make(map[int]*entity.User)}
	productRepo := &memProductRepo{products: make(map[int]*entity.Product)}
	tokens := &memTokenStore{tokens: make(map[string]string)}

	authService := service.NewAuthService(userRepo, tokens, testSecret, time.Hour)
	userService := service.NewUserService(userRepo, tokens)
	productService := service.NewProductService(productRepo, userRepo)

	authHandler := NewAuthHandler(*authService, *userService)
	productHandler := NewProductHandler(*productService)

	e := echo.New()
	jwtGate := echojwt.WithConfig(echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.JwtCustomClaims)
		},
		SigningKey: []byte(testSecret),
	})

	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/token", authHandler.ObtainToken)
	e.POST("/auth/verify", authHandler.VerifyToken)
	e.POST("/auth/password", authHandler.ChangePassword, jwtGate)
	e.GET("/auth/me", authHandler.Me, jwtGate)
	e.POST("/products", productHandler.CreateProduct)
	e.DELETE("/products/:id", productHandler.DeleteProduct)

	return e
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAndObtainToken(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/register", `{"username":"alice","password":"x","role":"admin"}`, "")
	require.Equal(t, 200, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/auth/token", `{"username":"alice","password":"x"}`, "")
	require.Equal(t, 200, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])

	rec = doJSON(e, http.MethodPost, "/auth/token", `{"username":"alice","password":"wrong"}`, "")
	assert.Equal(t, 401, rec.Code)
}

func TestRegisterInvalidRoleRejected(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/register", `{"username":"bob","password":"x","role":"customer"}`, "")
	assert.Equal(t, 400, rec.Code)
}

func TestChangePasswordRequiresToken(t *testing.T) {
	e := newTestServer(t)

	doJSON(e, http.MethodPost, "/auth/register", `{"username":"alice","password":"x","role":"seller"}`, "")

	rec := doJSON(e, http.MethodPost, "/auth/password", `{"old_password":"x","new_password":"y"}`, "")
	require.Equal(t, 401, rec.Code)

	rec = doJSON(e, http.MethodPost, "/auth/token", `{"username":"alice","password":"x"}`, "")
	require.Equal(t, 200, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = doJSON(e, http.MethodPost, "/auth/password", `{"old_password":"x","new_password":"y"}`, resp["token"])
	require.Equal(t, 200, rec.Code, rec.Body.String())

	// Old password no longer accepted
	rec = doJSON(e, http.MethodPost, "/auth/token", `{"username":"alice","password":"x"}`, "")
	assert.Equal(t, 401, rec.Code)
	rec = doJSON(e, http.MethodPost, "/auth/token", `{"username":"alice","password":"y"}`, "")
	assert.Equal(t, 200, rec.Code)

	// The pre-change token is revoked even though it has not expired
	rec = doJSON(e, http.MethodGet, "/auth/me", "", resp["token"])
	assert.Equal(t, 401, rec.Code)
	rec = doJSON(e, http.MethodPost, "/auth/verify", `{"token":"`+resp["token"]+`"}`, "")
	assert.Equal(t, 401, rec.Code)
}

func TestMeReturnsClaims(t *testing.T) {
	e := newTestServer(t)

	doJSON(e, http.MethodPost, "/auth/register", `{"username":"alice","password":"x","role":"admin"}`, "")
	rec := doJSON(e, http.MethodPost, "/auth/token", `{"username":"alice","password":"x"}`, "")
	require.Equal(t, 200, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = doJSON(e, http.MethodGet, "/auth/me", "", resp["token"])
	require.Equal(t, 200, rec.Code, rec.Body.String())

	var me map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "alice", me["username"])
	assert.Equal(t, "admin", me["role"])

	rec = doJSON(e, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, 401, rec.Code)
}

func TestDeleteProductNotFoundMapsTo404(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodDelete, "/products/42", "", "")
	assert.Equal(t, 404, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/products/abc", "", "")
	assert.Equal(t, 400, rec.Code)
}

func TestCreateProductUnknownSellerMapsTo404(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/products", `{"name":"espresso","price":5.0,"stock":10,"seller_id":99}`, "")
	assert.Equal(t, 404, rec.Code)
}
