package executor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aura/internal/domain"
	"aura/internal/services/tools"
)

func TestSimulatedDeterministic(t *testing.T) {
	s := NewSimulated(tools.NewDefaultRegistry(), 0)
	ctx := context.Background()

	a, err := s.Execute(ctx, "sherlock", "shadow", nil)
	require.NoError(t, err)
	b, err := s.Execute(ctx, "sherlock", "shadow", nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	data, ok := a.Data.(domain.UsernameData)
	require.True(t, ok)
	assert.Equal(t, len(data.Profiles), a.FindingsCount)
	assert.GreaterOrEqual(t, a.ConfidenceScore, 50)
	assert.Less(t, a.ConfidenceScore, 100)

	for _, id := range []string{"holehe", "h8mail", "whois", "shodan", "torbot", "exifread", "blockchain", "twitter", "phoneinfoga"} {
		res, err := s.Execute(ctx, id, "target", nil)
		require.NoError(t, err, id)
		tool, _ := tools.NewDefaultRegistry().Get(id)
		assert.Equal(t, tool.Category, res.Data.Category(), id)
	}

	_, err = s.Execute(ctx, "nope", "x", nil)
	assert.Error(t, err)
}

func TestSimulatedHonoursContext(t *testing.T) {
	s := NewSimulated(tools.NewDefaultRegistry(), 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := s.Execute(ctx, "maigret", "shadow", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+body), 0o755))
}

func TestScriptExecutor(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts")
	}
	dir := t.TempDir()
	writeScript(t, dir, "whois", `cat >/dev/null
echo '{"status":"success","findings_count":1,"confidence_score":77,"data":{"domain":"'"$1"'","registrar":"Gandi"}}'
`)
	writeScript(t, dir, "shodan", `echo "api key missing" >&2; exit 3
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subfinder"), []byte("not executable"), 0o644))

	reg := tools.NewDefaultRegistry()
	s := NewScript(dir, reg)
	ctx := context.Background()

	res, err := s.Execute(ctx, "whois", "example.org", nil)
	require.NoError(t, err)
	assert.Equal(t, 77, res.ConfidenceScore)
	assert.Equal(t, domain.DomainData{Domain: "example.org", Registrar: "Gandi"}, res.Data)

	_, err = s.Execute(ctx, "shodan", "1.1.1.1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key missing")

	assert.False(t, s.Has("subfinder"))
	assert.False(t, s.Has("../whois"))

	r := Router{Script: s, Fallback: NewSimulated(reg, 0)}
	res, err = r.Execute(ctx, "subfinder", "example.org", nil)
	require.NoError(t, err)
	_, ok := res.Data.(domain.DomainData)
	assert.True(t, ok)
}
