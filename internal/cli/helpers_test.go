package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/credload/internal/config"
)

// executeCommand runs sub under a fresh root so flag state never leaks between tests.
func executeCommand(t *testing.T, sub *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{Use: "credload", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().BoolP("verbose", "v", false, "")
	root.AddCommand(sub)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{sub.Name()}, args...))

	err := root.Execute()
	return out.String(), err
}

// clearEnv unsets every variable the CLI reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		config.EnvStore, config.EnvDatabaseURL, config.EnvDatabaseURLPG,
		config.EnvRedisAddr, config.EnvRedisPassword, "NO_COLOR",
	} {
		t.Setenv(name, "")
	}
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
