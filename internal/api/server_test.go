package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/storehouse/internal/metrics"
	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
	"github.com/Kerhoff/storehouse/internal/service"
	"github.com/Kerhoff/storehouse/internal/testutil"
	"github.com/Kerhoff/storehouse/pkg/logger"
)

type testEnv struct {
	handler  http.Handler
	mem      *testutil.Memory
	notifier *testutil.Notifier
	metrics  *metrics.Metrics
}

func defaultOptions() Options {
	return Options{
		AllowedOrigin:  "http://localhost:3000",
		LoginRateLimit: 100,
		LoginRateBurst: 100,
	}
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()

	mem := testutil.NewMemory()
	notifier := &testutil.Notifier{}
	svc := service.New(logger.Discard(), service.Repositories{
		Users:                  mem.Users,
		Agencies:               mem.Agencies,
		Families:               mem.Families,
		Items:                  mem.Items,
		Inventory:              mem.Inventory,
		WeeklyRequirements:     mem.WeeklyRequirements,
		PackingLists:           mem.PackingLists,
		PackingListItems:       mem.PackingListItems,
		PackingSessions:        mem.PackingSessions,
		VolunteerAssignments:   mem.VolunteerAssignments,
		FoodBoxes:              mem.FoodBoxes,
		Orders:                 mem.Orders,
		OrderItems:             mem.OrderItems,
		Rotas:                  mem.Rotas,
		RotaAssignments:        mem.RotaAssignments,
		Communications:         mem.Communications,
		CommunicationTemplates: mem.CommunicationTemplates,
	}, notifier, service.AuthConfig{
		Secret:    "test-secret",
		Algorithm: "HS256",
		TokenTTL:  30 * time.Minute,
	})

	m := metrics.New()
	srv := NewServer(svc, logger.Discard(), m, opts)
	return &testEnv{handler: srv.Handler(), mem: mem, notifier: notifier, metrics: m}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (e *testEnv) register(t *testing.T, email string, role models.Role) userResponse {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":     email,
		"password":  "s3cret-pass",
		"full_name": "Sam Volunteer",
		"role":      role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[userResponse](t, rec)
}

func (e *testEnv) login(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
}

// signIn registers an account and returns a bearer token for it.
func (e *testEnv) signIn(t *testing.T, email string, role models.Role) string {
	t.Helper()

	e.register(t, email, role)
	rec := e.login(t, email, "s3cret-pass")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[tokenResponse](t, rec).AccessToken
}

func TestRoot(t *testing.T) {
	env := newTestEnv(t, defaultOptions())

	rec := env.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Storehouse Manager API", decode[messageResponse](t, rec).Message)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	rec = env.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t, defaultOptions())

	first := env.register(t, "sam@example.org", models.RolePackingVolunteer)
	assert.Equal(t, "sam@example.org", first.Email)
	assert.True(t, first.IsActive)

	rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":     "sam@example.org",
		"password":  "other-pass",
		"full_name": "Someone Else",
		"role":      models.RoleDriver,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", decode[errorResponse](t, rec).Error)

	// the original account still logs in with its own password
	rec = env.login(t, "sam@example.org", "s3cret-pass")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t, defaultOptions())

	rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "not-an-email",
		"password": "x",
		"role":     "coordinator",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[errorResponse](t, rec)
	assert.Equal(t, "validation failed", resp.Error)
	assert.Contains(t, resp.Details, "email: must be a valid email address")
	assert.Contains(t, resp.Details, "full_name: is required")

	rec = env.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":     "a@example.org",
		"password":  "x",
		"full_name": "A",
		"role":      "admin",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Details, "role: invalid value")
}

func TestRegister_PasswordTooLong(t *testing.T) {
	env := newTestEnv(t, defaultOptions())

	rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":     "sam@example.org",
		"password":  strings.Repeat("a", 73),
		"full_name": "Sam Volunteer",
		"role":      models.RoleDriver,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, decode[errorResponse](t, rec).Details, "password: must be at most 72 bytes")

	// 72 bytes is still accepted
	rec = env.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":     "sam@example.org",
		"password":  strings.Repeat("é", 36),
		"full_name": "Sam Volunteer",
		"role":      models.RoleDriver,
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestLogin_TokenResolvesToSameAccount(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	registered := env.register(t, "sam@example.org", models.RoleCoordinator)

	rec := env.login(t, "sam@example.org", "s3cret-pass")
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[tokenResponse](t, rec)
	assert.Equal(t, "bearer", token.TokenType)
	require.NotEmpty(t, token.AccessToken)

	rec = env.do(t, http.MethodGet, "/auth/me", token.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hashed_password")
	me := decode[userResponse](t, rec)
	assert.Equal(t, registered.ID, me.ID)
	assert.Equal(t, "sam@example.org", me.Email)
}

func TestLogin_FormBody(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	env.register(t, "sam@example.org", models.RoleCoordinator)

	form := url.Values{"username": {"sam@example.org"}, "password": {"s3cret-pass"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode[tokenResponse](t, rec).AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	env.register(t, "sam@example.org", models.RoleCoordinator)

	rec := env.login(t, "sam@example.org", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect email or password", decode[errorResponse](t, rec).Error)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	rec = env.login(t, "nobody@example.org", "s3cret-pass")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	opts := defaultOptions()
	opts.LoginRateLimit = 0
	opts.LoginRateBurst = 2
	env := newTestEnv(t, opts)

	assert.Equal(t, http.StatusUnauthorized, env.login(t, "x@example.org", "nope").Code)
	assert.Equal(t, http.StatusUnauthorized, env.login(t, "x@example.org", "nope").Code)

	rec := env.login(t, "x@example.org", "nope")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestAuthenticate_RejectsMissingAndInvalidTokens(t *testing.T) {
	env := newTestEnv(t, defaultOptions())

	rec := env.do(t, http.MethodGet, "/agencies", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authenticated", decode[errorResponse](t, rec).Error)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	rec = env.do(t, http.MethodGet, "/agencies", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, service.ErrInvalidToken.Error(), decode[errorResponse](t, rec).Error)
}

func TestAuthenticate_InactiveAccount(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	rec := env.do(t, http.MethodPatch, "/users/1", token, `{"is_active": false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, decode[userResponse](t, rec).IsActive)

	rec = env.do(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTrailingSlashRoutes(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	rec := env.do(t, http.MethodPost, "/agencies/", token, map[string]any{
		"name":           "Northside Pantry",
		"contact_person": "Ann",
		"email":          "ann@northside.org",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[agencyResponse](t, rec)
	assert.True(t, created.IsActive)

	for _, path := range []string{"/agencies", "/agencies/"} {
		rec = env.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		list := decode[[]agencyResponse](t, rec)
		require.Len(t, list, 1, path)
		assert.Equal(t, created.ID, list[0].ID)
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	rec := env.do(t, http.MethodGet, "/items", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestList_InvalidPagination(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	for _, query := range []string{"limit=0", "limit=1001", "limit=abc", "skip=-1"} {
		rec := env.do(t, http.MethodGet, "/agencies?"+query, token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}

	rec := env.do(t, http.MethodGet, "/families?status=gone", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_ValidationDetails(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	rec := env.do(t, http.MethodPost, "/agencies", token, map[string]any{"email": "bad"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[errorResponse](t, rec)
	assert.Contains(t, resp.Details, "name: is required")
	assert.Contains(t, resp.Details, "contact_person: is required")
	assert.Contains(t, resp.Details, "email: must be a valid email address")

	rec = env.do(t, http.MethodPost, "/agencies", token, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFamily_UnknownAgency(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	rec := env.do(t, http.MethodPost, "/families", token, map[string]any{
		"agency_id":      999,
		"family_name":    "Okafor",
		"contact_person": "Ada",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Error, "referenced record does not exist")

	list, err := env.mem.Families.List(context.Background(), repository.FamilyFilters{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFamily_Defaults(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	rec := env.do(t, http.MethodPost, "/agencies", token, map[string]any{
		"name": "Northside Pantry", "contact_person": "Ann", "email": "ann@northside.org",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/families", token, map[string]any{
		"agency_id":      1,
		"family_name":    "Okafor",
		"contact_person": "Ada",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	family := decode[familyResponse](t, rec)
	assert.Equal(t, 1, family.FamilySize)
	assert.Equal(t, models.FamilyStatusActive, family.Status)
	assert.Nil(t, family.UpdatedAt)
}

func createPackingList(t *testing.T, env *testEnv, token string) packingListResponse {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/packing-lists", token, map[string]any{
		"week_start":  "2025-01-06T00:00:00Z",
		"week_end":    "2025-01-12T00:00:00Z",
		"total_boxes": 40,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[packingListResponse](t, rec)
}

func TestPackingList_PartialUpdateKeepsOtherFields(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)
	list := createPackingList(t, env, token)
	assert.Equal(t, models.PackingStatusScheduled, list.Status)

	rec := env.do(t, http.MethodPatch, fmt.Sprintf("/packing-lists/%d", list.ID), token, `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[packingListResponse](t, rec)
	assert.Equal(t, models.PackingStatusCompleted, updated.Status)
	assert.Equal(t, 40, updated.TotalBoxes)
	assert.NotNil(t, updated.UpdatedAt)

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/packing-lists/%d", list.ID), token, `{"total_boxes":42}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated = decode[packingListResponse](t, rec)
	assert.Equal(t, models.PackingStatusCompleted, updated.Status)
	assert.Equal(t, 42, updated.TotalBoxes)
}

func TestPackingList_NullOnRequiredField(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)
	list := createPackingList(t, env, token)

	rec := env.do(t, http.MethodPatch, fmt.Sprintf("/packing-lists/%d", list.ID), token, `{"status":null}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Details, "status cannot be null")

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/packing-lists/%d", list.ID), token, `{"status":"packed"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, "/packing-lists/999", token, `{"status":"completed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Packing list not found", decode[errorResponse](t, rec).Error)
}

func TestInventory_NullClearsOptionalField(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	rec := env.do(t, http.MethodPost, "/items", token, map[string]any{"name": "Rice", "category": "food", "unit": "kg"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/inventory", token, map[string]any{
		"item_id": 1, "quantity": 4, "min_quantity": 10, "max_quantity": 50, "location": "Shelf A",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	inv := decode[inventoryResponse](t, rec)
	assert.True(t, inv.BelowMinimum)
	require.NotNil(t, inv.MaxQuantity)

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/inventory/%d", inv.ID), token, `{"max_quantity":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	inv = decode[inventoryResponse](t, rec)
	assert.Nil(t, inv.MaxQuantity)
	require.NotNil(t, inv.Location)
	assert.Equal(t, "Shelf A", *inv.Location)
}

func TestOrders_FilterAndPaginate(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	for _, status := range []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusPending,
		models.OrderStatusPending,
	} {
		rec := env.do(t, http.MethodPost, "/orders", token, map[string]any{
			"order_type": "weekly",
			"supplier":   "Wholesale Co",
			"order_date": "2025-01-06T00:00:00Z",
			"status":     status,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, int64(1), decode[orderResponse](t, rec).CreatedBy)
	}

	rec := env.do(t, http.MethodGet, "/orders?status=pending&skip=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]orderResponse](t, rec)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(3), orders[0].ID)
	assert.Equal(t, int64(4), orders[1].ID)
}

func TestList_EmptyFilterValueIsIgnored(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	rec := env.do(t, http.MethodPost, "/orders", token, map[string]any{
		"order_type": "weekly",
		"supplier":   "Wholesale Co",
		"order_date": "2025-01-06T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/orders?status=&order_type=", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]orderResponse](t, rec), 1)

	rec = env.do(t, http.MethodGet, "/families?agency_id=&status=", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, decode[[]familyResponse](t, rec))

	rec = env.do(t, http.MethodGet, "/users?is_active=", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]userResponse](t, rec), 1)
}

func TestPackingList_DeleteWhileReferenced(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)
	list := createPackingList(t, env, token)
	path := fmt.Sprintf("/packing-lists/%d", list.ID)

	rec := env.do(t, http.MethodPost, "/items", token, map[string]any{"name": "Rice", "category": "food", "unit": "kg"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/packing-list-items", token, map[string]any{
		"packing_list_id":  list.ID,
		"item_id":          1,
		"quantity_per_box": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	line := decode[packingListItemResponse](t, rec)

	rec = env.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	assert.Equal(t, "Packing list is still referenced by other records", decode[errorResponse](t, rec).Error)

	rec = env.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/packing-list-items/%d", line.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestOrder_DeleteWhileReferenced(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	rec := env.do(t, http.MethodPost, "/orders", token, map[string]any{
		"order_type": "weekly",
		"supplier":   "Wholesale Co",
		"order_date": "2025-01-06T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[orderResponse](t, rec)

	rec = env.do(t, http.MethodPost, "/items", token, map[string]any{"name": "Rice", "category": "food", "unit": "kg"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/order-items", token, map[string]any{"order_id": order.ID, "item_id": 1, "quantity": 10})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	assert.Equal(t, "Order is still referenced by other records", decode[errorResponse](t, rec).Error)
}

func TestUpdate_AppliesCreateChecks(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)
	list := createPackingList(t, env, token)

	rec := env.do(t, http.MethodPost, "/items", token, map[string]any{"name": "Rice", "category": "food", "unit": "kg"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/packing-list-items", token, map[string]any{
		"packing_list_id":  list.ID,
		"item_id":          1,
		"quantity_per_box": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	line := decode[packingListItemResponse](t, rec)

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/packing-list-items/%d", line.ID), token, `{"quantity_per_box":0,"total_quantity_needed":-1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := decode[errorResponse](t, rec).Details
	assert.Contains(t, details, "quantity_per_box: must be greater than 0")
	assert.Contains(t, details, "total_quantity_needed: must be at least 0")

	rec = env.do(t, http.MethodPost, "/orders", token, map[string]any{
		"order_type": "weekly",
		"supplier":   "Wholesale Co",
		"order_date": "2025-01-06T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[orderResponse](t, rec)

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/orders/%d", order.ID), token, `{"supplier":"","total_cost":-5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	details = decode[errorResponse](t, rec).Details
	assert.Contains(t, details, "supplier: is required")
	assert.Contains(t, details, "total_cost: must be at least 0")

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Wholesale Co", decode[orderResponse](t, rec).Supplier)
}

func TestUpdate_EmptyBodyLeavesRecordUntouched(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)
	list := createPackingList(t, env, token)
	path := fmt.Sprintf("/packing-lists/%d", list.ID)

	rec := env.do(t, http.MethodPatch, path, token, `{}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[packingListResponse](t, rec)
	assert.Nil(t, got.UpdatedAt)
	assert.Equal(t, 40, got.TotalBoxes)

	rec = env.do(t, http.MethodPatch, "/packing-lists/999", token, `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPackingListItem_Delete(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)
	list := createPackingList(t, env, token)

	rec := env.do(t, http.MethodPost, "/items", token, map[string]any{"name": "Rice", "category": "food", "unit": "kg"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/packing-list-items", token, map[string]any{
		"packing_list_id":       list.ID,
		"item_id":               1,
		"quantity_per_box":      2,
		"total_quantity_needed": 80,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	line := decode[packingListItemResponse](t, rec)
	path := fmt.Sprintf("/packing-list-items/%d", line.ID)

	rec = env.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Packing list item deleted successfully", decode[messageResponse](t, rec).Message)

	rec = env.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Packing list item not found", decode[errorResponse](t, rec).Error)

	rec = env.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/packing-list-items/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoleEnforcement(t *testing.T) {
	order := map[string]any{
		"order_type": "weekly",
		"supplier":   "Wholesale Co",
		"order_date": "2025-01-06T00:00:00Z",
	}

	t.Run("disabled", func(t *testing.T) {
		env := newTestEnv(t, defaultOptions())
		token := env.signIn(t, "vol@example.org", models.RolePackingVolunteer)

		rec := env.do(t, http.MethodPost, "/orders", token, order)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("enabled", func(t *testing.T) {
		opts := defaultOptions()
		opts.EnforceRoles = true
		env := newTestEnv(t, opts)
		volunteer := env.signIn(t, "vol@example.org", models.RolePackingVolunteer)
		shopper := env.signIn(t, "shop@example.org", models.RoleOnlineShopper)

		rec := env.do(t, http.MethodPost, "/orders", volunteer, order)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Not enough permissions", decode[errorResponse](t, rec).Error)

		rec = env.do(t, http.MethodPost, "/orders", shopper, order)
		assert.Equal(t, http.StatusCreated, rec.Code)

		// reads stay open to every signed-in account
		rec = env.do(t, http.MethodGet, "/orders", volunteer, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodPost, "/rotas", shopper, map[string]any{
			"rota_type":     "packing",
			"quarter_start": "2025-01-01T00:00:00Z",
			"quarter_end":   "2025-03-31T00:00:00Z",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, defaultOptions())

	req := httptest.NewRequest(http.MethodOptions, "/agencies", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCommunication_SendOnce(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	rec := env.do(t, http.MethodPost, "/communications", token, map[string]any{
		"subject":        "Collection moved",
		"message":        "Boxes are ready on Thursday.",
		"recipient_type": "agency",
		"recipient_ids":  []int64{1, 2},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[communicationResponse](t, rec)
	assert.Equal(t, int64(1), created.CreatedBy)
	assert.Equal(t, []int64{1, 2}, created.RecipientIDs)
	assert.Nil(t, created.SentAt)

	path := fmt.Sprintf("/communications/%d/send", created.ID)
	rec = env.do(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotNil(t, decode[communicationResponse](t, rec).SentAt)
	assert.Equal(t, []int64{created.ID}, env.notifier.Sent())

	rec = env.do(t, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrAlreadySent.Error(), decode[errorResponse](t, rec).Error)
	assert.Len(t, env.notifier.Sent(), 1)

	rec = env.do(t, http.MethodPost, "/communications/999/send", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	metricsRec := httptest.NewRecorder()
	env.metrics.Handler().ServeHTTP(metricsRec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metricsRec.Body.String(), "storehouse_communications_sent_total 1")
}

func TestCommunicationTemplate_CRUD(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	rec := env.do(t, http.MethodPost, "/communication-templates", token, map[string]any{
		"name":               "weekly-reminder",
		"subject":            "Reminder",
		"message":            "Please confirm your numbers.",
		"recipient_type":     "agency",
		"communication_type": "email",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tmpl := decode[communicationTemplateResponse](t, rec)
	assert.True(t, tmpl.IsActive)

	rec = env.do(t, http.MethodGet, "/communication-templates?communication_type=sms", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]communicationTemplateResponse](t, rec))

	path := fmt.Sprintf("/communication-templates/%d", tmpl.ID)
	rec = env.do(t, http.MethodPatch, path, token, `{"is_active":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[communicationTemplateResponse](t, rec).IsActive)

	rec = env.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Communication template deleted successfully", decode[messageResponse](t, rec).Message)
}

func TestPackingWorkflow(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)
	list := createPackingList(t, env, token)

	rec := env.do(t, http.MethodPost, "/packing-sessions", token, map[string]any{
		"packing_list_id": list.ID,
		"scheduled_date":  "2025-01-09T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	session := decode[packingSessionResponse](t, rec)
	assert.Equal(t, models.PackingStatusScheduled, session.Status)

	rec = env.do(t, http.MethodPost, "/volunteer-assignments", token, map[string]any{
		"packing_session_id": session.ID,
		"user_id":            1,
		"role":               "packer",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.False(t, decode[volunteerAssignmentResponse](t, rec).Confirmed)

	rec = env.do(t, http.MethodPost, "/agencies", token, map[string]any{
		"name": "Northside Pantry", "contact_person": "Ann", "email": "ann@northside.org",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/families", token, map[string]any{
		"agency_id": 1, "family_name": "Okafor", "contact_person": "Ada", "family_size": 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/food-boxes", token, map[string]any{
		"family_id":          1,
		"packing_session_id": session.ID,
		"box_number":         "B-001",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	box := decode[foodBoxResponse](t, rec)
	assert.Equal(t, models.DefaultFoodBoxStatus, box.Status)

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/food-boxes/%d", box.ID), token, map[string]any{
		"status":       "collected",
		"collected_at": "2025-01-10T15:00:00Z",
		"collected_by": "Ada",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	box = decode[foodBoxResponse](t, rec)
	assert.Equal(t, "collected", box.Status)
	require.NotNil(t, box.CollectedAt)
	assert.True(t, box.CollectedAt.Equal(time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)))

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/food-boxes?packing_session_id=%d", session.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]foodBoxResponse](t, rec), 1)
}

func TestWeeklyRequirement_HasNoDelete(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	rec := env.do(t, http.MethodPost, "/agencies", token, map[string]any{
		"name": "Northside Pantry", "contact_person": "Ann", "email": "ann@northside.org",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/weekly-requirements", token, map[string]any{
		"agency_id":      1,
		"week_start":     "2025-01-06T00:00:00Z",
		"week_end":       "2025-01-12T00:00:00Z",
		"total_families": 12,
		"total_boxes":    12,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, models.DefaultRequirementStatus, decode[weeklyRequirementResponse](t, rec).Status)

	rec = env.do(t, http.MethodDelete, "/weekly-requirements/1", token, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRotaAssignment_Lifecycle(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	token := env.signIn(t, "sam@example.org", models.RoleCoordinator)

	rec := env.do(t, http.MethodPost, "/rotas", token, map[string]any{
		"rota_type":     "packing",
		"quarter_start": "2025-01-01T00:00:00Z",
		"quarter_end":   "2025-03-31T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, decode[rotaResponse](t, rec).IsActive)

	rec = env.do(t, http.MethodPost, "/rota-assignments", token, map[string]any{
		"rota_id":    1,
		"user_id":    42,
		"week_start": "2025-01-06T00:00:00Z",
		"week_end":   "2025-01-12T00:00:00Z",
		"role":       "lead",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/rota-assignments", token, map[string]any{
		"rota_id":    1,
		"user_id":    1,
		"week_start": "2025-01-06T00:00:00Z",
		"week_end":   "2025-01-12T00:00:00Z",
		"role":       "lead",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPatch, "/rota-assignments/1", token, `{"confirmed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[rotaAssignmentResponse](t, rec).Confirmed)

	rec = env.do(t, http.MethodDelete, "/rota-assignments/1", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
