package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRedirectAndMarkClicked(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	r := &Redirect{
		Sender:     "59170000001",
		Department: "CAJAS",
		Link:       "https://wa.me/59177439407?text=hola",
	}
	require.NoError(t, db.RecordRedirect(ctx, r))
	assert.NotZero(t, r.ID)
	assert.NotZero(t, r.CreatedAt)

	require.NoError(t, db.MarkRedirectClicked(ctx, r.ID))

	stats, err := db.RedirectStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalRedirects)
	assert.InDelta(t, 1.0, stats.ClickRate, 0.001)
}

func TestMarkRedirectClickedMissing(t *testing.T) {
	db := setupTestDB(t)

	err := db.MarkRedirectClicked(context.Background(), 9999)
	assert.Error(t, err)
}

func TestRedirectStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	redirects := []*Redirect{
		{Sender: "59170000001", Department: "CAJAS", Link: "https://wa.me/59177439407"},
		{Sender: "59170000002", Department: "CAJAS", Link: "https://wa.me/59177439407"},
		{Sender: "59170000003", Department: "REGISTRO", Link: "https://wa.me/59177439409"},
		{Sender: "59170000004", Department: "BIENESTAR", Link: "https://wa.me/59177439410"},
	}
	for _, r := range redirects {
		require.NoError(t, db.RecordRedirect(ctx, r))
	}
	require.NoError(t, db.MarkRedirectClicked(ctx, redirects[0].ID))

	stats, err := db.RedirectStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalRedirects)
	assert.InDelta(t, 0.25, stats.ClickRate, 0.001)

	counts := make(map[string]int64)
	for _, dc := range stats.ByDepartment {
		counts[dc.Department] = dc.Count
	}
	assert.Equal(t, int64(2), counts["CAJAS"])
	assert.Equal(t, int64(1), counts["REGISTRO"])
	assert.Equal(t, int64(1), counts["BIENESTAR"])
}

func TestRedirectStatsEmpty(t *testing.T) {
	db := setupTestDB(t)

	stats, err := db.RedirectStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRedirects)
	assert.Zero(t, stats.ClickRate)
}
