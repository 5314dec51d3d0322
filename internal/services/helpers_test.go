package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"collabex_backend/internal/auth"
	"collabex_backend/internal/email"
	"collabex_backend/internal/testutil"
	"collabex_backend/ws"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events map[string][]ws.Event
}

func (p *recordingPublisher) Publish(_ context.Context, userID string, event ws.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.events == nil {
		p.events = make(map[string][]ws.Event)
	}
	p.events[userID] = append(p.events[userID], event)
	return nil
}

func (p *recordingPublisher) For(userID string) []ws.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[userID]
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []*email.Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, e *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e)
	return nil
}

func (m *recordingMailer) SendTemplate(ctx context.Context, to []string, subject, _ string, _ email.TemplateData) error {
	return m.Send(ctx, &email.Email{To: to, Subject: subject})
}

func (m *recordingMailer) Validate() error { return nil }
func (m *recordingMailer) Close() error    { return nil }

type testEnv struct {
	db        *gorm.DB
	services  *ServiceContainer
	publisher *recordingPublisher
	mailer    *recordingMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		db:        testutil.NewTestDB(t),
		publisher: &recordingPublisher{},
		mailer:    &recordingMailer{},
	}

	sc, err := NewServiceContainer(Dependencies{
		JWT:        auth.NewJWTService("test-secret", time.Hour),
		RefreshTTL: 24 * time.Hour,
		Publisher:  env.publisher,
		Mailer:     env.mailer,
	})
	require.NoError(t, err)
	env.services = sc
	return env
}
