package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"clinicwa/internal/core/browser"
	"clinicwa/internal/core/coordinator"
	"clinicwa/internal/core/netcheck"
	"clinicwa/internal/core/orchestrator"
	"clinicwa/internal/core/retry"
	"clinicwa/internal/core/sessionmgr"
	"clinicwa/internal/core/ui"
	"clinicwa/internal/http/dto"
	"clinicwa/internal/http/handler"
	"clinicwa/internal/infra/database/migrations"
	"clinicwa/internal/infra/repository"
	messagingUC "clinicwa/internal/usecases/messaging"
	moderatorUC "clinicwa/internal/usecases/moderator"
	"clinicwa/pkg/logger"
	"clinicwa/pkg/validator"
)

type testHandlerSet struct {
	handler *handler.ModeratorHandler
	router  chi.Router
}

func buildTestHandler(t *testing.T) *testHandlerSet {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	migrator := migrations.NewMigrator(db, &logger.NoopLogger{})
	require.NoError(t, migrator.Migrate(context.Background()))

	modRepo := repository.NewModeratorRepository(db, &logger.NoopLogger{})
	pauseRepo := repository.NewPauseStateRepository(db, &logger.NoopLogger{})
	outboundRepo := repository.NewOutboundMessageRepository(db, &logger.NoopLogger{})

	v := validator.New()

	createUC := moderatorUC.NewCreateUseCase(modRepo, &logger.NoopLogger{}, v)
	listUC := moderatorUC.NewListUseCase(modRepo, &logger.NoopLogger{})
	deleteUC := moderatorUC.NewDeleteUseCase(modRepo, nil, &logger.NoopLogger{})
	resolveUC := moderatorUC.NewResolveUseCase(modRepo, &logger.NoopLogger{})
	setProxyUC := moderatorUC.NewSetProxyUseCase(modRepo, &logger.NoopLogger{}, v)

	retrySvc := retry.New(retry.Config{MaxAttempts: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}, &logger.NoopLogger{})
	networkSvc := netcheck.New(netcheck.Config{Hosts: nil, Timeout: 50 * time.Millisecond, CacheTTL: time.Second})
	uiSvc := ui.New(ui.DefaultFamilies(), networkSvc, ui.Config{}, &logger.NoopLogger{})

	var driver browser.Driver = browser.NullDriver{}
	sessions := sessionmgr.New(func(ctx context.Context, moderatorID string) (browser.Session, error) {
		return driver.Launch(ctx, moderatorID)
	}, "https://web.whatsapp.com", &logger.NoopLogger{})

	coord := coordinator.New(pauseRepo, outboundRepo, &logger.NoopLogger{})

	orch := orchestrator.New(orchestrator.Config{
		BaseURL:                     "https://web.whatsapp.com",
		PageLoadTimeout:             time.Second,
		SelectorPollInterval:        time.Millisecond,
		StatusClassificationTimeout: time.Second,
		RetryMaxAttempts:            1,
	}, sessions, coord, uiSvc, networkSvc, retrySvc, &logger.NoopLogger{})

	sendMessageUC := messagingUC.NewSendMessageUseCase(orch, &logger.NoopLogger{}, v)
	checkNumberUC := messagingUC.NewCheckNumberUseCase(orch, &logger.NoopLogger{}, v)
	disposeSessionUC := messagingUC.NewDisposeSessionUseCase(orch, &logger.NoopLogger{})
	checkConnectivityUC := messagingUC.NewCheckConnectivityUseCase(networkSvc, &logger.NoopLogger{})

	h := handler.NewModeratorHandler(
		createUC, listUC, deleteUC, resolveUC, setProxyUC,
		sendMessageUC, checkNumberUC, disposeSessionUC, checkConnectivityUC,
		coord, &logger.NoopLogger{}, v,
	)

	r := chi.NewRouter()
	r.Get("/network/connectivity", h.CheckConnectivity)
	r.Route("/moderators", func(r chi.Router) {
		r.Post("/", h.CreateModerator)
		r.Get("/", h.ListModerators)
		r.Get("/{id}", h.GetModerator)
		r.Delete("/{id}", h.DeleteModerator)
		r.Post("/{id}/proxy", h.SetProxy)
		r.Post("/{id}/send", h.SendMessage)
		r.Post("/{id}/check", h.CheckNumber)
		r.Post("/{id}/dispose", h.DisposeSession)
		r.Post("/{id}/pause", h.PauseModerator)
		r.Post("/{id}/resume", h.ResumeModerator)
		r.Get("/{id}/pause", h.GetPauseStatus)
	})

	return &testHandlerSet{handler: h, router: r}
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createModerator(t *testing.T, router chi.Router, name string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/moderators", dto.CreateModeratorRequest{Name: name})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var moderatorResp dto.ModeratorResponse
	require.NoError(t, json.Unmarshal(payload, &moderatorResp))

	return moderatorResp.ID
}

func TestModeratorHandler_CreateModerator(t *testing.T) {
	set := buildTestHandler(t)

	t.Run("should register a moderator", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodPost, "/moderators", dto.CreateModeratorRequest{Name: "recepcao-manha"})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("should reject a duplicate name with 409", func(t *testing.T) {
		doJSON(t, set.router, http.MethodPost, "/moderators", dto.CreateModeratorRequest{Name: "recepcao-duplicada"})
		rec := doJSON(t, set.router, http.MethodPost, "/moderators", dto.CreateModeratorRequest{Name: "recepcao-duplicada"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should reject an invalid proxy type with 400", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodPost, "/moderators", dto.CreateModeratorRequest{
			Name:      "recepcao-proxy-invalida",
			ProxyHost: "proxy.example.com",
			ProxyPort: 8080,
			ProxyType: "ftp",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestModeratorHandler_ListAndGet(t *testing.T) {
	set := buildTestHandler(t)
	createModerator(t, set.router, "recepcao-a")
	id := createModerator(t, set.router, "recepcao-b")

	t.Run("should list registered moderators", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodGet, "/moderators", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should fetch a moderator by id", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodGet, "/moderators/"+id, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should fetch a moderator by name", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodGet, "/moderators/recepcao-a", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should return 404 for an unknown moderator", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodGet, "/moderators/does-not-exist", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestModeratorHandler_SetProxy(t *testing.T) {
	set := buildTestHandler(t)
	id := createModerator(t, set.router, "recepcao-proxy")

	t.Run("should configure a proxy", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodPost, "/moderators/"+id+"/proxy", dto.ProxySetRequest{
			ProxyHost: "proxy.example.com",
			ProxyPort: 8080,
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should remove a proxy when host is empty", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodPost, "/moderators/"+id+"/proxy", dto.ProxySetRequest{})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestModeratorHandler_DeleteModerator(t *testing.T) {
	set := buildTestHandler(t)
	id := createModerator(t, set.router, "recepcao-delete")

	rec := doJSON(t, set.router, http.MethodDelete, "/moderators/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, set.router, http.MethodGet, "/moderators/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestModeratorHandler_SendAndCheck(t *testing.T) {
	set := buildTestHandler(t)
	id := createModerator(t, set.router, "recepcao-mensagens")

	t.Run("should dispatch a message and surface a tiered HTTP status", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodPost, "/moderators/"+id+"/send", dto.SendMessageRequest{
			CountryCode: "55",
			PhoneNumber: "11999999999",
			Message:     "sua consulta esta proxima",
		})
		assert.Contains(t, []int{http.StatusOK, http.StatusUnprocessableEntity, http.StatusAccepted}, rec.Code)
	})

	t.Run("should probe a number and surface a tiered HTTP status", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodPost, "/moderators/"+id+"/check", dto.CheckNumberRequest{
			CountryCode: "55",
			PhoneNumber: "11999999999",
		})
		assert.Contains(t, []int{http.StatusOK, http.StatusUnprocessableEntity, http.StatusAccepted}, rec.Code)
	})

	t.Run("should dispose the session without error", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodPost, "/moderators/"+id+"/dispose", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestModeratorHandler_PauseResumeLifecycle(t *testing.T) {
	set := buildTestHandler(t)
	id := createModerator(t, set.router, "recepcao-pausa")

	t.Run("should pause the moderator", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodPost, "/moderators/"+id+"/pause", dto.PauseModeratorRequest{
			UserID: "supervisor-1",
			Reason: "manual_intervention",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should report the pause status", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodGet, "/moderators/"+id+"/pause", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp dto.SuccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		payload, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var status dto.PauseStatusResponse
		require.NoError(t, json.Unmarshal(payload, &status))
		assert.True(t, status.IsPaused)
		assert.Equal(t, "manual_intervention", status.PauseReason)
	})

	t.Run("should reject a resume with a mismatched reason", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodPost, "/moderators/"+id+"/resume", dto.ResumeModeratorRequest{
			Reason: "wrong_reason",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should resume with the matching reason", func(t *testing.T) {
		rec := doJSON(t, set.router, http.MethodPost, "/moderators/"+id+"/resume", dto.ResumeModeratorRequest{
			Reason: "manual_intervention",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestModeratorHandler_CheckConnectivity(t *testing.T) {
	set := buildTestHandler(t)

	rec := doJSON(t, set.router, http.MethodGet, "/network/connectivity", nil)
	assert.Contains(t, []int{http.StatusOK, http.StatusAccepted}, rec.Code)

	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var conn dto.ConnectivityResponse
	require.NoError(t, json.Unmarshal(payload, &conn))
	assert.NotEmpty(t, conn.State)
}
