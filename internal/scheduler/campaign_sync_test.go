package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/syncing/mocks"
	"github.com/vfg2006/campaign-advisor-api/pkg/log"
	"go.uber.org/mock/gomock"
)

type fakePruner struct {
	calls int
	days  int
}

func (p *fakePruner) PruneOlderThan(_ context.Context, days int) (int64, error) {
	p.calls++
	p.days = days
	return 3, nil
}

func newTestService(t *testing.T) (*CampaignSyncService, *mocks.MockSyncer, *fakePruner) {
	ctrl := gomock.NewController(t)
	syncer := mocks.NewMockSyncer(ctrl)
	pruner := &fakePruner{}

	s := newCampaignSyncService(syncer, pruner, CampaignSyncConfig{
		At:            "01:00",
		SyncEnabled:   true,
		RetentionDays: 90,
	})

	return s, syncer, pruner
}

func TestCampaignSyncService_TriggerManualSync(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(syncer *mocks.MockSyncer)
		validate func(t *testing.T, s *CampaignSyncService, result domain.ManualSyncResult)
	}{
		{
			name: "Passada bem-sucedida retorna contadores",
			setup: func(syncer *mocks.MockSyncer) {
				syncer.EXPECT().Run(gomock.Any()).Return(&domain.SyncReport{
					SyncedIdentities: 2,
					SyncedAccounts:   5,
					SyncedCampaigns:  40,
				}, nil)
			},
			validate: func(t *testing.T, s *CampaignSyncService, result domain.ManualSyncResult) {
				assert.True(t, result.Success)
				assert.Equal(t, 2, result.SyncedUsers)
				require.NotNil(t, result.SyncedAccounts)
				assert.Equal(t, 5, *result.SyncedAccounts)
				require.NotNil(t, result.SyncedCampaigns)
				assert.Equal(t, 40, *result.SyncedCampaigns)

				status := s.GetStatus()
				assert.Equal(t, domain.SyncStatusScheduled, status.Status)
				assert.NotNil(t, status.LastSync)
				assert.Equal(t, domain.SchedulerIdle, status.State)
			},
		},
		{
			name: "Erro da passada marca status de erro",
			setup: func(syncer *mocks.MockSyncer) {
				syncer.EXPECT().Run(gomock.Any()).Return(nil, errors.New("database down"))
			},
			validate: func(t *testing.T, s *CampaignSyncService, result domain.ManualSyncResult) {
				assert.False(t, result.Success)
				assert.Contains(t, result.Message, "database down")
				assert.Nil(t, result.SyncedAccounts)

				status := s.GetStatus()
				assert.Equal(t, domain.SyncStatusError, status.Status)
				assert.Nil(t, status.LastSync)
			},
		},
		{
			name: "Panic na passada é recuperado",
			setup: func(syncer *mocks.MockSyncer) {
				syncer.EXPECT().Run(gomock.Any()).DoAndReturn(func(context.Context) (*domain.SyncReport, error) {
					panic("nil map")
				})
			},
			validate: func(t *testing.T, s *CampaignSyncService, result domain.ManualSyncResult) {
				assert.False(t, result.Success)
				assert.Contains(t, result.Message, "panicked")
				assert.Equal(t, domain.SyncStatusError, s.GetStatus().Status)
				assert.Equal(t, domain.SchedulerIdle, s.State())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, syncer, _ := newTestService(t)
			tt.setup(syncer)

			result := s.TriggerManualSync(context.Background())

			tt.validate(t, s, result)
		})
	}
}

func TestCampaignSyncService_TriggerManualSyncSobreviveAoCancelamento(t *testing.T) {
	s, syncer, _ := newTestService(t)

	requestCtx, cancel := context.WithCancel(context.Background())
	requestCtx = log.WithFields(requestCtx, log.Fields{"user_id": 1})

	syncer.EXPECT().Run(gomock.Any()).DoAndReturn(func(ctx context.Context) (*domain.SyncReport, error) {
		// o cliente desconecta no meio da passada
		cancel()
		assert.NoError(t, ctx.Err())
		assert.NotEmpty(t, log.CorrelationID(ctx))
		assert.Equal(t, 1, log.ForContext(ctx).Data["user_id"])
		assert.Equal(t, triggerManual, log.ForContext(ctx).Data["trigger"])
		return &domain.SyncReport{SyncedIdentities: 1, SyncedAccounts: 2}, nil
	})

	result := s.TriggerManualSync(requestCtx)

	assert.True(t, result.Success)
	require.NotNil(t, result.SyncedAccounts)
	assert.Equal(t, 2, *result.SyncedAccounts)
}

func TestCampaignSyncService_RejeitaPassadaConcorrente(t *testing.T) {
	s, syncer, _ := newTestService(t)

	running := make(chan struct{})
	release := make(chan struct{})

	syncer.EXPECT().Run(gomock.Any()).DoAndReturn(func(context.Context) (*domain.SyncReport, error) {
		close(running)
		<-release
		return &domain.SyncReport{SyncedIdentities: 1}, nil
	})

	done := make(chan domain.ManualSyncResult)
	go func() {
		done <- s.TriggerManualSync(context.Background())
	}()

	<-running
	assert.Equal(t, domain.SchedulerRunning, s.State())

	second := s.TriggerManualSync(context.Background())
	assert.False(t, second.Success)
	assert.Equal(t, "sync already running", second.Message)

	close(release)
	first := <-done
	assert.True(t, first.Success)
	assert.Equal(t, domain.SchedulerIdle, s.State())
}

func TestCampaignSyncService_Start(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.Equal(t, domain.SchedulerWaiting, s.State())

	status := s.GetStatus()
	require.NotNil(t, status.NextSync)
	assert.True(t, status.NextSync.After(time.Now()))
	assert.Equal(t, 1, status.NextSync.Hour())
	assert.Equal(t, 0, status.NextSync.Minute())

	assert.ErrorIs(t, s.Start(ctx), ErrSchedulerAlreadyStarted)

	s.Stop()
	assert.Equal(t, domain.SchedulerIdle, s.State())
	assert.Nil(t, s.GetStatus().NextSync)
}

func TestCampaignSyncService_StartDesabilitado(t *testing.T) {
	s, _, _ := newTestService(t)
	s.config.SyncEnabled = false

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, domain.SchedulerIdle, s.State())
}

func TestCampaignSyncService_RunScheduledAplicaRetencao(t *testing.T) {
	t.Run("Passada bem-sucedida aplica retenção", func(t *testing.T) {
		s, syncer, pruner := newTestService(t)
		syncer.EXPECT().Run(gomock.Any()).Return(&domain.SyncReport{}, nil)

		s.runScheduled()

		assert.Equal(t, 1, pruner.calls)
		assert.Equal(t, 90, pruner.days)
	})

	t.Run("Passada com erro não aplica retenção", func(t *testing.T) {
		s, syncer, pruner := newTestService(t)
		syncer.EXPECT().Run(gomock.Any()).Return(nil, errors.New("boom"))

		s.runScheduled()

		assert.Equal(t, 0, pruner.calls)
		assert.Equal(t, domain.SyncStatusError, s.GetStatus().Status)
	})
}

func TestNextFireTime(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name     string
		now      time.Time
		at       string
		expected time.Time
	}{
		{
			name:     "Antes do horário dispara hoje",
			now:      time.Date(2026, 3, 10, 0, 30, 0, 0, loc),
			at:       "01:00",
			expected: time.Date(2026, 3, 10, 1, 0, 0, 0, loc),
		},
		{
			name:     "Depois do horário dispara amanhã",
			now:      time.Date(2026, 3, 10, 13, 0, 0, 0, loc),
			at:       "01:00",
			expected: time.Date(2026, 3, 11, 1, 0, 0, 0, loc),
		},
		{
			name:     "Exatamente no horário dispara amanhã",
			now:      time.Date(2026, 3, 31, 1, 0, 0, 0, loc),
			at:       "01:00",
			expected: time.Date(2026, 4, 1, 1, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nextFireTime(tt.now, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := nextFireTime(time.Now(), "25h")
	assert.Error(t, err)
}
