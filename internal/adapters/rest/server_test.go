package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	memory_adapter "home-finder-service/internal/adapters/memory"
	"home-finder-service/internal/core/domain"
	core_port "home-finder-service/internal/core/port"
	"home-finder-service/internal/core/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "unit-test-jwt-secret"

// sinkLogger satisfies core_port.LoggerPort and drops everything.
type sinkLogger struct{}

func (l *sinkLogger) Info(string, core_port.Fields)                    {}
func (l *sinkLogger) Warn(string, core_port.Fields)                    {}
func (l *sinkLogger) Error(string, error, core_port.Fields)            {}
func (l *sinkLogger) Debug(string, core_port.Fields)                   {}
func (l *sinkLogger) WithFields(core_port.Fields) core_port.LoggerPort { return l }

type testEnv struct {
	handler   http.Handler
	users     *memory_adapter.UserRepositoryAdapter
	favorites *memory_adapter.FavoritesRepositoryAdapter
	storage   *memory_adapter.PropertyStorageAdapter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	storage := memory_adapter.NewPropertyStorageAdapter()
	users := memory_adapter.NewUserRepositoryAdapter()
	favorites := memory_adapter.NewFavoritesRepositoryAdapter()

	findUC := usecase.NewFindPropertiesUseCase(storage, nil)
	detailsUC := usecase.NewGetPropertyDetailsUseCase(storage)
	featuredUC := usecase.NewGetFeaturedPropertiesUseCase(storage)

	listUsersUC := usecase.NewListUsersUseCase(users)
	createUserUC := usecase.NewCreateUserUseCase(users)
	getUserUC := usecase.NewGetUserUseCase(users)
	updateUserUC := usecase.NewUpdateUserUseCase(users)
	deleteUserUC := usecase.NewDeleteUserUseCase(users, favorites)
	syncUC := usecase.NewSyncIdentityUseCase(users, favorites)

	addUC := usecase.NewAddToFavoritesUseCase(users, favorites)
	removeUC := usecase.NewRemoveFromFavoritesUseCase(users, favorites)
	statusUC := usecase.NewIsFavoritedUseCase(users, favorites)
	idsUC := usecase.NewGetUserFavoriteIDsUseCase(users, favorites)
	itemsUC := usecase.NewGetUserFavoritesUseCase(users, favorites, storage)

	verifier, err := NewWebhookVerifier(testWebhookSecret())
	require.NoError(t, err)

	server := NewServer(
		"0",
		testJWTSecret,
		NewPropertyHandler(findUC, detailsUC, featuredUC),
		NewUserHandler(listUsersUC, createUserUC, getUserUC, updateUserUC, deleteUserUC),
		NewFavoritesHandler(addUC, removeUC, statusUC, idsUC, itemsUC),
		NewWebhookHandler(verifier, syncUC),
		&sinkLogger{},
	)

	return &testEnv{
		handler:   server.httpServer.Handler,
		users:     users,
		favorites: favorites,
		storage:   storage,
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func bearerToken(t *testing.T, clerkID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": clerkID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func seedCatalog(t *testing.T, e *testEnv) {
	t.Helper()
	catalog := []domain.Property{
		{ID: 1, Title: "studio", Price: 15000, Type: "Studio"},
		{ID: 2, Title: "apartment", Price: 25000, Type: "Apartment"},
		{ID: 3, Title: "villa", Price: 75000, Type: "Villa", IsFeatured: true},
	}
	for _, p := range catalog {
		require.NoError(t, e.storage.Upsert(context.Background(), p))
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestFindPropertiesEnvelope(t *testing.T) {
	e := newTestEnv(t)
	seedCatalog(t, e)

	rec := e.do(httptest.NewRequest(http.MethodGet, "/api/v1/properties?minPrice=20000&sortBy=price&sortOrder=desc", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var page PaginatedPropertiesResponse
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 2, page.Total)
	assert.False(t, page.HasMore)
	require.Len(t, page.Properties, 2)
	assert.Equal(t, 75000.0, page.Properties[0].Price)
	assert.Equal(t, 25000.0, page.Properties[1].Price)
}

func TestFindPropertiesRejectsBadParams(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(httptest.NewRequest(http.MethodGet, "/api/v1/properties?minPrice=cheap", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)

	rec = e.do(httptest.NewRequest(http.MethodGet, "/api/v1/properties?sortBy=title", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPropertyDetailsNotFound(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(httptest.NewRequest(http.MethodGet, "/api/v1/properties/999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestGetFeaturedProperties(t *testing.T) {
	e := newTestEnv(t)
	seedCatalog(t, e)

	rec := e.do(httptest.NewRequest(http.MethodGet, "/api/v1/properties/featured", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var featured []PropertyResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &featured))
	require.Len(t, featured, 1)
	assert.Equal(t, int64(3), featured[0].ID)
}

func TestUserCRUDFlow(t *testing.T) {
	e := newTestEnv(t)

	body, _ := json.Marshal(CreateUserRequest{
		ClerkID: "user_1", Email: "ann@example.com", FirstName: "Ann",
	})
	rec := e.do(httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created UserResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))
	assert.Equal(t, "user_1", created.ClerkID)

	rec = e.do(httptest.NewRequest(http.MethodGet, "/api/v1/users/clerk/user_1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(httptest.NewRequest(http.MethodGet, "/api/v1/users/email/ann@example.com", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	update, _ := json.Marshal(map[string]string{"firstName": "Anna"})
	rec = e.do(httptest.NewRequest(http.MethodPut, "/api/v1/users/"+strconv.FormatInt(created.ID, 10), bytes.NewReader(update)))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated UserResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &updated))
	assert.Equal(t, "Anna", updated.FirstName)

	rec = e.do(httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+strconv.FormatInt(created.ID, 10), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do(httptest.NewRequest(http.MethodGet, "/api/v1/users/clerk/user_1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateUserConflict(t *testing.T) {
	e := newTestEnv(t)

	body, _ := json.Marshal(CreateUserRequest{ClerkID: "user_1", Email: "ann@example.com"})
	rec := e.do(httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	body, _ = json.Marshal(CreateUserRequest{ClerkID: "user_2", Email: "ann@example.com"})
	rec = e.do(httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestFavoritesRequireAuth(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(httptest.NewRequest(http.MethodGet, "/api/v1/users/favorites", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/users/favorites", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, e.do(r).Code)
}

func TestFavoritesFlow(t *testing.T) {
	e := newTestEnv(t)
	seedCatalog(t, e)

	_, err := e.users.Create(context.Background(), domain.NewUser{ClerkID: "user_1", Email: "ann@example.com"})
	require.NoError(t, err)

	token := bearerToken(t, "user_1")

	add := func(propertyID int64) *httptest.ResponseRecorder {
		body, _ := json.Marshal(AddFavoriteRequest{PropertyID: propertyID})
		r := httptest.NewRequest(http.MethodPost, "/api/v1/users/favorites", bytes.NewReader(body))
		r.Header.Set("Authorization", token)
		return e.do(r)
	}

	require.Equal(t, http.StatusCreated, add(1).Code)
	require.Equal(t, http.StatusCreated, add(2).Code)
	// Adding the same listing twice stays successful.
	require.Equal(t, http.StatusCreated, add(1).Code)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/users/favorites/ids", nil)
	r.Header.Set("Authorization", token)
	rec := e.do(r)
	require.Equal(t, http.StatusOK, rec.Code)

	var ids []int64
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &ids))
	assert.ElementsMatch(t, []int64{1, 2}, ids)

	r = httptest.NewRequest(http.MethodGet, "/api/v1/users/favorites/status/2", nil)
	r.Header.Set("Authorization", token)
	rec = e.do(r)
	require.Equal(t, http.StatusOK, rec.Code)

	var status FavoriteStatusResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &status))
	assert.True(t, status.Favorited)

	r = httptest.NewRequest(http.MethodDelete, "/api/v1/users/favorites/2", nil)
	r.Header.Set("Authorization", token)
	assert.Equal(t, http.StatusNoContent, e.do(r).Code)

	r = httptest.NewRequest(http.MethodGet, "/api/v1/users/favorites", nil)
	r.Header.Set("Authorization", token)
	rec = e.do(r)
	require.Equal(t, http.StatusOK, rec.Code)

	var properties []PropertyResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &properties))
	require.Len(t, properties, 1)
	assert.Equal(t, int64(1), properties[0].ID)
}

func TestFavoritesUnknownUserIs404(t *testing.T) {
	e := newTestEnv(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/users/favorites/ids", nil)
	r.Header.Set("Authorization", bearerToken(t, "user_never_synced"))
	assert.Equal(t, http.StatusNotFound, e.do(r).Code)
}

func identityWebhookBody(t *testing.T, eventType, clerkID, email string) []byte {
	t.Helper()
	payload := map[string]interface{}{
		"type": eventType,
		"data": map[string]interface{}{
			"id":                       clerkID,
			"first_name":               "Ann",
			"last_name":                "Lee",
			"primary_email_address_id": "idn_1",
			"email_addresses": []map[string]string{
				{"id": "idn_1", "email_address": email},
			},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return body
}

func signedWebhookRequest(t *testing.T, body []byte) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/identity", bytes.NewReader(body))
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	r.Header.Set("svix-id", "msg_test")
	r.Header.Set("svix-timestamp", ts)
	r.Header.Set("svix-signature", signTestPayload(testSigningKey, "msg_test", ts, body))
	return r
}

func TestIdentityWebhookCreatesUser(t *testing.T) {
	e := newTestEnv(t)

	body := identityWebhookBody(t, "user.created", "user_wh", "wh@example.com")
	rec := e.do(signedWebhookRequest(t, body))
	require.Equal(t, http.StatusOK, rec.Code)

	user, err := e.users.FindByClerkID(context.Background(), "user_wh")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "wh@example.com", user.Email)
}

func TestIdentityWebhookRejectsBadSignature(t *testing.T) {
	e := newTestEnv(t)

	body := identityWebhookBody(t, "user.created", "user_wh", "wh@example.com")
	r := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/identity", bytes.NewReader(body))
	r.Header.Set("svix-id", "msg_test")
	r.Header.Set("svix-timestamp", strconv.FormatInt(time.Now().Unix(), 10))
	r.Header.Set("svix-signature", "v1,Zm9yZ2VkLXNpZ25hdHVyZQ==")

	rec := e.do(r)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	user, err := e.users.FindByClerkID(context.Background(), "user_wh")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestIdentityWebhookRejectsMissingHeaders(t *testing.T) {
	e := newTestEnv(t)

	body := identityWebhookBody(t, "user.created", "user_wh", "wh@example.com")
	r := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/identity", bytes.NewReader(body))

	assert.Equal(t, http.StatusBadRequest, e.do(r).Code)
}

func TestIdentityWebhookDeleteFlow(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(signedWebhookRequest(t, identityWebhookBody(t, "user.created", "user_wh", "wh@example.com")))
	require.Equal(t, http.StatusOK, rec.Code)

	deleteBody, err := json.Marshal(map[string]interface{}{
		"type": "user.deleted",
		"data": map[string]interface{}{"id": "user_wh"},
	})
	require.NoError(t, err)

	rec = e.do(signedWebhookRequest(t, deleteBody))
	require.Equal(t, http.StatusOK, rec.Code)

	user, lookupErr := e.users.FindByClerkID(context.Background(), "user_wh")
	require.NoError(t, lookupErr)
	assert.Nil(t, user)

	// Replaying the deletion stays a 200.
	rec = e.do(signedWebhookRequest(t, deleteBody))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDegradedFlagSurfacesInResponse(t *testing.T) {
	// Degradation is decided in the use case; here only the wire shape
	// matters.
	page := PaginatedPropertiesResponse{Total: 1, Degraded: true}
	raw, err := json.Marshal(page)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"degraded":true`)

	page.Degraded = false
	raw, err = json.Marshal(page)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "degraded")
}
