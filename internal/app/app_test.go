package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"collabex_backend/internal/config"
	"collabex_backend/internal/models"
	"collabex_backend/internal/testutil"
	"collabex_backend/ws"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Env: "test"},
		JWT:     config.JWTConfig{Secret: "test-secret", TTL: 60, RefreshTTL: 24},
		Storage: config.StorageConfig{Type: "local", BasePath: t.TempDir(), BaseURL: "/uploads"},
		Upload: config.UploadConfig{
			MaxSize:      1 << 20,
			AllowedTypes: []string{"image/png"},
			ImageQuality: 85,
		},
	}
}

func TestRealtimeWithoutWorkers(t *testing.T) {
	db := testutil.NewTestDB(t)
	a, err := NewWithDB(testConfig(t), db)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.StartRealtime(ctx)

	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	brand := testutil.InsertAccount(t, db, "Brand Co", models.AccountTypeBrand, "fitness")
	creator := testutil.InsertAccount(t, db, "Ana", models.AccountTypeInfluencer, "fitness")
	testutil.InsertMatch(t, db, brand, creator)

	creatorToken, err := a.JWT.Generate(creator.Session)
	require.NoError(t, err)
	brandToken, err := a.JWT.Generate(brand.Session)
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + creatorToken
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return a.Hub.ConnectionCount(creator.User.ID) == 1 },
		time.Second, 10*time.Millisecond)

	body, _ := json.Marshal(map[string]string{"receiver_id": creator.Profile.ID, "content": "hello"})
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+brandToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got ws.Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, ws.EventMessage, got.Type)
	assert.Contains(t, string(got.Payload), `"content":"hello"`)
}
