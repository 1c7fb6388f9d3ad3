package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foundry-erp/internal/application/erp"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
	"github.com/jhoicas/foundry-erp/pkg/jwt"
)

func TestRootCmd_Subcomandos(t *testing.T) {
	root := newRootCmd()
	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "stats", "migrate", "token"})
}

func TestTokenCmd_GeneraTokenVerificable(t *testing.T) {
	const secret = "cli-secret-with-at-least-32-characters!!"
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--secret", secret, "--user", "u1", "--email", "ana@fundicao.com", "--ttl", "5m"})
	require.NoError(t, root.Execute())

	claims, err := jwt.Parse(strings.TrimSpace(out.String()), jwt.HMACKeyfunc(secret), "")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenCmd_SinUsuarioFalla(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"token", "--secret", "s"})
	assert.Error(t, root.Execute())
}

func TestWriteStats(t *testing.T) {
	var out bytes.Buffer
	err := writeStats(&out, erp.Snapshot{
		Materials:      []entity.Material{{}, {}},
		DashboardStats: &entity.DashboardStats{PendingOrders: 3, QualityApprovalRate: 100},
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.EqualValues(t, 2, got["materials"])
	stats := got["dashboardStats"].(map[string]any)
	assert.EqualValues(t, 3, stats["pendingOrders"])

	assert.Error(t, writeStats(&out, erp.Snapshot{}))
}
