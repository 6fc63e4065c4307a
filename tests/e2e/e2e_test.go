package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crmcore/internal/database"
	"crmcore/internal/domain"
	"crmcore/internal/middleware"
	"crmcore/internal/modules/activity"
	"crmcore/internal/modules/auth"
	"crmcore/internal/modules/conversion"
	"crmcore/internal/modules/lead"
	"crmcore/internal/modules/metadata"
	"crmcore/internal/modules/section"
	jwtsvc "crmcore/internal/pkg/jwt"
	"crmcore/internal/repository"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
	store  *repository.Store
	logger *activity.Logger
}

type TestResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db))

	store := repository.NewStore(db)
	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	hub := activity.NewHub()
	activityLogger := activity.NewLogger(store.Activity, hub)
	activityHandler := activity.NewHandler(activityLogger, hub)

	authService := auth.NewService(store.Users, jwtService)
	authHandler := auth.NewHandler(authService)

	leadService := lead.NewService(store.Leads, store.Tasks, activityLogger)
	leadHandler := lead.NewHandler(leadService)

	conversionTx := func(ctx context.Context, fn func(conversion.Store) error) error {
		return store.InTx(ctx, func(tx *repository.Store) error { return fn(tx) })
	}
	conversionService := conversion.NewService(conversionTx, activityLogger)
	conversionHandler := conversion.NewHandler(conversionService)

	metadataService := metadata.NewService(store.Modules, activityLogger)
	metadataHandler := metadata.NewHandler(metadataService)

	sectionTx := func(ctx context.Context, fn func(section.Store) error) error {
		return store.InTx(ctx, func(tx *repository.Store) error { return fn(tx) })
	}
	sectionService := section.NewService(sectionTx)
	sectionHandler := section.NewHandler(sectionService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		leadHandler.RegisterRoutes(protected)
		conversionHandler.RegisterRoutes(protected)
		metadataHandler.RegisterRoutes(protected)
		sectionHandler.RegisterRoutes(protected)
		activityHandler.RegisterRoutes(protected)
	}

	seedModules(t, db)

	return &E2ETestSuite{router: r, db: db, store: store, logger: activityLogger}
}

func seedModules(t *testing.T, db *gorm.DB) {
	visible := domain.Visibility{Overview: true, Update: true, Create: true, Detail: true}
	modules := []domain.Module{
		{
			Name: "lead",
			Meta: domain.FieldMetaList{
				{Name: "name", Group: "General", Required: true, Type: domain.FieldTypeText, Visibility: visible},
				{Name: "email", Group: "General", Type: domain.FieldTypeEmail, Visibility: visible},
				{Name: "phone_num", Group: "General", Type: domain.FieldTypePhone, Visibility: visible},
			},
		},
		{
			Name: "contact",
			Meta: domain.FieldMetaList{
				{Name: "name", Group: "General", Required: true, Type: domain.FieldTypeText, Visibility: visible},
				{Name: "email", Group: "General", Type: domain.FieldTypeEmail, Visibility: visible},
				{Name: "phone_num", Group: "General", Type: domain.FieldTypePhone, Visibility: visible},
			},
			ConvertMeta: domain.ConvertMetaList{
				{Source: "lead", Meta: map[string]string{"name": "name", "email": "email"}},
			},
		},
	}
	for i := range modules {
		require.NoError(t, db.Create(&modules[i]).Error)
	}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "raw body: %s", w.Body.String())
	return &resp
}

func (s *E2ETestSuite) registerAndLogin(t *testing.T, email string) string {
	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"email":    email,
		"password": "Password123!",
		"name":     "Test User",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": "Password123!",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		Token string `json:"token"`
	}
	resp := parseResponse(t, w)
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func TestFlow1_RegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)
	defer suite.logger.Close()

	token := suite.registerAndLogin(t, "sales@test.com")

	w := suite.makeRequest("GET", "/api/v1/auth/me", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	var me domain.User
	require.NoError(t, json.Unmarshal(resp.Data, &me))
	assert.Equal(t, "sales@test.com", me.Email)

	// No token, no access.
	w = suite.makeRequest("GET", "/api/v1/leads", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFlow2_LeadConversionWithDeal(t *testing.T) {
	suite := setupTestSuite(t)
	defer suite.logger.Close()

	token := suite.registerAndLogin(t, "owner@test.com")

	// Create a lead with one task.
	w := suite.makeRequest("POST", "/api/v1/leads", map[string]interface{}{
		"full_name": "Avery Morgan",
		"email":     "avery@prospect.com",
		"status":    "Qualified",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created domain.Lead
	resp := parseResponse(t, w)
	require.NoError(t, json.Unmarshal(resp.Data, &created))

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/leads/%s/tasks", created.ID), map[string]interface{}{
		"title": "Send proposal",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Convert with a deal payload.
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/leads/%s/convert", created.ID), map[string]interface{}{
		"full_name":    "Avery Morgan Deal",
		"closing_date": "2026-12-31",
		"stage":        "Proposal",
		"amount":       12500.0,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result conversion.Result
	resp = parseResponse(t, w)
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	require.NotNil(t, result.Account)
	require.NotNil(t, result.Contact)
	require.NotNil(t, result.Deal)
	assert.Equal(t, "Avery Morgan Account", result.Account.FullName)
	assert.Equal(t, "avery@prospect.com", result.Contact.Email)
	require.NotNil(t, result.Contact.AccountID)
	assert.Equal(t, result.Account.ID, *result.Contact.AccountID)
	require.NotNil(t, result.Deal.ContactID)
	assert.Equal(t, result.Contact.ID, *result.Deal.ContactID)

	// The lead is gone from lead-scoped queries.
	w = suite.makeRequest("GET", "/api/v1/leads/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The task followed the contact and the deal.
	var tasks []domain.Task
	require.NoError(t, suite.db.Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Nil(t, tasks[0].LeadID)
	require.NotNil(t, tasks[0].ContactID)
	assert.Equal(t, result.Contact.ID, *tasks[0].ContactID)
	require.NotNil(t, tasks[0].DealID)
	assert.Equal(t, result.Deal.ID, *tasks[0].DealID)
}

func TestFlow3_ConversionWithoutDealKeepsTasksOnAccount(t *testing.T) {
	suite := setupTestSuite(t)
	defer suite.logger.Close()

	token := suite.registerAndLogin(t, "owner2@test.com")

	w := suite.makeRequest("POST", "/api/v1/leads", map[string]interface{}{
		"full_name": "Casey Nguyen",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Lead
	resp := parseResponse(t, w)
	require.NoError(t, json.Unmarshal(resp.Data, &created))

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/leads/%s/tasks", created.ID), map[string]interface{}{
		"title": "Follow up",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	// Empty body means "no deal".
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/leads/%s/convert", created.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result conversion.Result
	resp = parseResponse(t, w)
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Nil(t, result.Deal)

	var tasks []domain.Task
	require.NoError(t, suite.db.Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Nil(t, tasks[0].DealID)
	require.NotNil(t, tasks[0].AccountID)
	assert.Equal(t, result.Account.ID, *tasks[0].AccountID)
}

func TestFlow4_ModuleCustomization(t *testing.T) {
	suite := setupTestSuite(t)
	defer suite.logger.Close()

	token := suite.registerAndLogin(t, "admin@test.com")

	var leadModule domain.Module
	require.NoError(t, suite.db.First(&leadModule, "name = ?", "lead").Error)

	// Add a custom field.
	w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/modules/%s/fields", leadModule.ID), map[string]interface{}{
		"name":  "budget",
		"group": "Details",
		"type":  "Number",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated domain.Module
	resp := parseResponse(t, w)
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	require.NotNil(t, updated.Field("budget"))

	// A select field without options is rejected.
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/modules/%s/fields", leadModule.ID), map[string]interface{}{
		"name": "tier",
		"type": "Select",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Compatible targets for the phone field in the contact module.
	w = suite.makeRequest("GET",
		fmt.Sprintf("/api/v1/modules/%s/convert-targets?field=phone_num&target=contact", leadModule.ID),
		nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var targets []domain.FieldMeta
	resp = parseResponse(t, w)
	require.NoError(t, json.Unmarshal(resp.Data, &targets))

	names := make([]string, 0, len(targets))
	for _, f := range targets {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"email", "name"}, names)
}

func TestFlow5_SectionLayoutBatch(t *testing.T) {
	suite := setupTestSuite(t)
	defer suite.logger.Close()

	token := suite.registerAndLogin(t, "layout@test.com")

	var leadModule domain.Module
	require.NoError(t, suite.db.First(&leadModule, "name = ?", "lead").Error)

	base := "/api/v1/module-section/" + leadModule.ID

	// Seed three sections in one batch.
	w := suite.makeRequest("POST", base, map[string]interface{}{
		"items": []map[string]interface{}{
			{"action": "ADD", "name": "Overview", "fields": []string{"name", "email"}},
			{"action": "ADD", "name": "Contact Details", "fields": []string{"phone_num"}},
			{"action": "ADD", "name": "Notes"},
		},
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sections []domain.Section
	resp := parseResponse(t, w)
	require.NoError(t, json.Unmarshal(resp.Data, &sections))
	require.Len(t, sections, 3)
	for i, sec := range sections {
		assert.Equal(t, i+1, sec.Order)
	}

	// Delete the middle one and rename the last in one batch; orders stay
	// dense afterwards.
	w = suite.makeRequest("POST", base, map[string]interface{}{
		"items": []map[string]interface{}{
			{"action": "DELETE", "id": sections[1].ID},
			{"action": "UPDATE", "id": sections[2].ID, "name": "Renamed Notes"},
		},
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp = parseResponse(t, w)
	require.NoError(t, json.Unmarshal(resp.Data, &sections))
	require.Len(t, sections, 2)
	assert.Equal(t, 1, sections[0].Order)
	assert.Equal(t, 2, sections[1].Order)

	names := []string{sections[0].Name, sections[1].Name}
	assert.Contains(t, names, "Renamed Notes")
	assert.NotContains(t, names, "Contact Details")

	// A stock-named section created without a module id becomes that
	// module's default section.
	w = suite.makeRequest("POST", "/api/v1/module-section", map[string]interface{}{
		"items": []map[string]interface{}{
			{"action": "ADD", "name": "Lead Information"},
		},
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var adopted domain.Section
	require.NoError(t, suite.db.First(&adopted, "name = ?", "Lead Information").Error)
	require.NotNil(t, adopted.ModuleID)
	assert.Equal(t, leadModule.ID, *adopted.ModuleID)
	assert.True(t, adopted.IsDefault)
}
