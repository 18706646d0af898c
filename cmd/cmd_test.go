package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpilot/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// tempDB points the commands at a fresh database and returns its path.
func tempDB(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cmd.db")
	t.Setenv("CAREERPILOT_DB", p)
	return p
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "careerpilot (devel)\n", out)
}

func TestRoadmapShow(t *testing.T) {
	out, err := execute(t, "roadmap", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "start [decision] Career Starting Point")
	assert.Contains(t, out, "entry-focus")

	out, err = execute(t, "roadmap", "show", "entry-technical")
	require.NoError(t, err)
	assert.Contains(t, out, "[milestone]")
	assert.Contains(t, out, "Next steps:")

	_, err = execute(t, "roadmap", "show", "nowhere")
	assert.Error(t, err)
}

func TestRoadmapWalk(t *testing.T) {
	out, err := execute(t, "roadmap", "walk", "entry", "technical", "technical-specialization")
	require.NoError(t, err)
	assert.Contains(t, out, "Path:    start → entry-focus → entry-technical → technical-specialization")
	assert.Contains(t, out, "Choices: entry, technical\n")
	assert.Contains(t, out, "technical-specialization [decision]")
}

func TestRoadmapWalkRejectsBadSteps(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown option", []string{"intern"}},
		{"option on milestone", []string{"entry", "technical", "entry"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"roadmap", "walk"}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}

func TestRoadmapCheck(t *testing.T) {
	out, err := execute(t, "roadmap", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: ")
	assert.Contains(t, out, `start "start"`)
}

func TestActivityListAndReset(t *testing.T) {
	path := tempDB(t)

	out, err := execute(t, "activity", "list", "--limit", "20", "--failed=false")
	require.NoError(t, err)
	assert.Contains(t, out, "No sign-in activity found.")

	st, err := store.Open(path)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.ActivityRepo().AppendAuthEvent(ctx, store.AuthEventData{Op: "login", Email: "test@test.com", Success: true}))
	require.NoError(t, st.ActivityRepo().AppendAuthEvent(ctx, store.AuthEventData{
		Op: "login", Email: "nope@x.com", ErrorKind: "AUTH_USER_NOT_FOUND", ErrorMessage: "User not found",
	}))
	require.NoError(t, st.Close())

	out, err = execute(t, "activity", "list", "--limit", "20", "--failed=false")
	require.NoError(t, err)
	assert.Contains(t, out, "test@test.com")
	assert.Contains(t, out, "AUTH_USER_NOT_FOUND: User not found")

	out, err = execute(t, "activity", "list", "--limit", "20", "--failed")
	require.NoError(t, err)
	assert.NotContains(t, out, "test@test.com")
	assert.Contains(t, out, "nope@x.com")

	out, err = execute(t, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared")

	out, err = execute(t, "activity", "list", "--limit", "20", "--failed=false")
	require.NoError(t, err)
	assert.Contains(t, out, "No sign-in activity found.")
}

func TestActivityListFailedAppliesBeforeLimit(t *testing.T) {
	path := tempDB(t)

	st, err := store.Open(path)
	require.NoError(t, err)
	ctx := context.Background()
	for _, email := range []string{"miss1@x.com", "miss2@x.com"} {
		require.NoError(t, st.ActivityRepo().AppendAuthEvent(ctx, store.AuthEventData{
			Op: "login", Email: email, ErrorKind: "AUTH_WRONG_PASSWORD", ErrorMessage: "Wrong password",
		}))
	}
	for i := 0; i < 6; i++ {
		require.NoError(t, st.ActivityRepo().AppendAuthEvent(ctx, store.AuthEventData{
			Op: "login", Email: fmt.Sprintf("ok%d@x.com", i), Success: true,
		}))
	}
	require.NoError(t, st.Close())

	out, err := execute(t, "activity", "list", "--limit", "5", "--failed")
	require.NoError(t, err)
	assert.Contains(t, out, "miss1@x.com")
	assert.Contains(t, out, "miss2@x.com")
	assert.NotContains(t, out, "ok0@x.com")
}

func TestActivityListTruncatesWideEmail(t *testing.T) {
	path := tempDB(t)

	email := strings.Repeat("é", 30) + "@x.com"
	st, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, st.ActivityRepo().AppendAuthEvent(context.Background(), store.AuthEventData{
		Op: "login", Email: email, Success: true,
	}))
	require.NoError(t, st.Close())

	out, err := execute(t, "activity", "list", "--limit", "20", "--failed=false")
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("é", 25)+"...")
	assert.NotContains(t, out, email)
}

func TestActivityListRejectsNegativeLimit(t *testing.T) {
	tempDB(t)
	_, err := execute(t, "activity", "list", "--limit", "-1")
	assert.Error(t, err)
}
