package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"englishhero/provider/testutil"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ENGLISHHERO_DATA_DIR", dir)
	t.Setenv("ENGLISHHERO_PROVIDER", "gemini")
	t.Setenv("ENGLISHHERO_DEBUG", "")
	t.Setenv("ENGLISHHERO_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	return dir
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCurriculumCommand(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "curriculum")
	require.NoError(t, err)
	assert.Equal(t, 20, strings.Count(out, "○"))
	assert.Contains(t, out, "Past Simple Tense")
}

func TestProgressToggle(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "progress", "--toggle", "verb to be")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Verb to Be")
	assert.Contains(t, out, "1/20")

	out, err = execute(t, "", "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "1/20 topics (5%)")

	out, err = execute(t, "", "progress", "--reset")
	require.NoError(t, err)
	assert.Contains(t, out, "0/20")
}

func TestProgressUnknownTopic(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "", "progress", "--toggle", "Klingon")
	assert.Error(t, err)
}

func TestAskSavesTranscript(t *testing.T) {
	setupEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testutil.GeminiReply("Very good! 🎉")))
	}))
	defer srv.Close()
	t.Setenv("ENGLISHHERO_API_KEY", "test-key")
	t.Setenv("ENGLISHHERO_BASE_URL", srv.URL)

	out, err := execute(t, "", "ask", "I", "am", "happy")
	require.NoError(t, err)
	assert.Contains(t, out, "Very good! 🎉")

	out, err = execute(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "3 messages")

	out, err = execute(t, "", "history", "--search", "HAPPY")
	require.NoError(t, err)
	assert.Contains(t, out, "I am happy")
}

func TestAskWithoutKey(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "", "ask", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENGLISHHERO_API_KEY")
}

func TestKeySetAndList(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "super-secret\n", "key", "set", "gemini")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored key for gemini")

	out, err = execute(t, "", "key", "list")
	require.NoError(t, err)
	assert.Equal(t, "gemini\n", out)
	assert.NotContains(t, out, "super-secret")

	_, err = execute(t, "", "key", "delete", "gemini")
	require.NoError(t, err)

	out, err = execute(t, "", "key", "list")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPracticeUnknownTopic(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "", "practice", "underwater", "basket", "weaving")
	assert.Error(t, err)
}
