package messaging_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

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
	"clinicwa/internal/infra/database/migrations"
	"clinicwa/internal/infra/repository"
	messagingUC "clinicwa/internal/usecases/messaging"
	"clinicwa/pkg/logger"
	"clinicwa/pkg/validator"
)

// buildOrchestrator wires the full CORE component graph against an
// in-memory database and the reference NullDriver, mirroring how the
// infrastructure container assembles it for production.
func buildOrchestrator(t *testing.T) *orchestrator.Orchestrator {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	migrator := migrations.NewMigrator(db, &logger.NoopLogger{})
	require.NoError(t, migrator.Migrate(context.Background()))

	pauseRepo := repository.NewPauseStateRepository(db, &logger.NoopLogger{})
	outboundRepo := repository.NewOutboundMessageRepository(db, &logger.NoopLogger{})

	retrySvc := retry.New(retry.Config{MaxAttempts: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}, &logger.NoopLogger{})
	networkSvc := netcheck.New(netcheck.Config{Hosts: nil, Timeout: 50 * time.Millisecond, CacheTTL: time.Second})
	uiSvc := ui.New(ui.DefaultFamilies(), networkSvc, ui.Config{}, &logger.NoopLogger{})

	var driver browser.Driver = browser.NullDriver{}
	sessions := sessionmgr.New(func(ctx context.Context, moderatorID string) (browser.Session, error) {
		return driver.Launch(ctx, moderatorID)
	}, "https://web.whatsapp.com", &logger.NoopLogger{})

	coord := coordinator.New(pauseRepo, outboundRepo, &logger.NoopLogger{})

	return orchestrator.New(orchestrator.Config{
		BaseURL:                     "https://web.whatsapp.com",
		PageLoadTimeout:             time.Second,
		SelectorPollInterval:        time.Millisecond,
		StatusClassificationTimeout: time.Second,
		RetryMaxAttempts:            1,
	}, sessions, coord, uiSvc, networkSvc, retrySvc, &logger.NoopLogger{})
}

func validStates(t *testing.T, state string) {
	t.Helper()
	switch state {
	case "success", "failure", "waiting", "pending_qr", "pending_net":
	default:
		t.Fatalf("unexpected operation state: %q", state)
	}
}

func TestSendMessageUseCase_Execute(t *testing.T) {
	orch := buildOrchestrator(t)
	uc := messagingUC.NewSendMessageUseCase(orch, &logger.NoopLogger{}, validator.New())
	ctx := context.Background()

	t.Run("should reject a request missing required fields", func(t *testing.T) {
		_, err := uc.Execute(ctx, messagingUC.SendMessageRequest{ModeratorID: "mod-1"})
		assert.Error(t, err)
	})

	t.Run("should dispatch through the orchestrator and surface a tiered state", func(t *testing.T) {
		resp, err := uc.Execute(ctx, messagingUC.SendMessageRequest{
			ModeratorID: "mod-1",
			CountryCode: "55",
			PhoneNumber: "11999999999",
			Message:     "sua consulta esta proxima",
		})

		require.NoError(t, err)
		assert.Equal(t, "mod-1", resp.ModeratorID)
		validStates(t, resp.State)
	})

	t.Run("should serialize concurrent sends for the same moderator", func(t *testing.T) {
		const concurrency = 5
		done := make(chan error, concurrency)

		for i := 0; i < concurrency; i++ {
			go func() {
				_, err := uc.Execute(ctx, messagingUC.SendMessageRequest{
					ModeratorID: "mod-concurrent",
					CountryCode: "55",
					PhoneNumber: "11988888888",
					Message:     "fila de espera",
				})
				done <- err
			}()
		}

		for i := 0; i < concurrency; i++ {
			require.NoError(t, <-done)
		}
	})
}

func TestCheckNumberUseCase_Execute(t *testing.T) {
	orch := buildOrchestrator(t)
	uc := messagingUC.NewCheckNumberUseCase(orch, &logger.NoopLogger{}, validator.New())
	ctx := context.Background()

	t.Run("should reject a request missing required fields", func(t *testing.T) {
		_, err := uc.Execute(ctx, messagingUC.CheckNumberRequest{ModeratorID: "mod-1"})
		assert.Error(t, err)
	})

	t.Run("should probe the number and surface a tiered state", func(t *testing.T) {
		resp, err := uc.Execute(ctx, messagingUC.CheckNumberRequest{
			ModeratorID: "mod-1",
			CountryCode: "55",
			PhoneNumber: "11999999999",
		})

		require.NoError(t, err)
		assert.Equal(t, "mod-1", resp.ModeratorID)
		validStates(t, resp.State)
	})
}

func TestDisposeSessionUseCase_Execute(t *testing.T) {
	orch := buildOrchestrator(t)
	uc := messagingUC.NewDisposeSessionUseCase(orch, &logger.NoopLogger{})
	ctx := context.Background()

	t.Run("should tolerate disposing a moderator with no live session", func(t *testing.T) {
		err := uc.Execute(ctx, messagingUC.DisposeSessionRequest{ModeratorID: "mod-never-launched"})
		assert.NoError(t, err)
	})
}
