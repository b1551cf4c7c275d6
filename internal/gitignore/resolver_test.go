package gitignore_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/ayuferov/grt/internal/gitignore"
)

// installStubGit places a fake git executable first on PATH. The stub drains
// stdin, prints the given printf format on stdout (so `\0` yields a real null
// byte), and exits with the given code.
func installStubGit(testingHandle *testing.T, stdoutFormat string, exitCode int) {
	testingHandle.Helper()
	if runtime.GOOS == "windows" {
		testingHandle.Skip("stub executable requires a POSIX shell")
	}
	stubDirectory := testingHandle.TempDir()
	script := "#!/bin/sh\ncat >/dev/null\nprintf '" + stdoutFormat + "'\nexit " + strconv.Itoa(exitCode) + "\n"
	stubPath := filepath.Join(stubDirectory, "git")
	if writeError := os.WriteFile(stubPath, []byte(script), 0o755); writeError != nil {
		testingHandle.Fatalf("failed to write stub git: %v", writeError)
	}
	testingHandle.Setenv("PATH", stubDirectory+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// recordingResolver counts invocations so tests can assert the fallback is
// never consulted while the authority answers.
type recordingResolver struct {
	invocations int
}

func (resolver *recordingResolver) ResolveIgnored(_ context.Context, _ []string) gitignore.PathSet {
	resolver.invocations++
	return gitignore.PathSet{"fallback-marker": {}}
}

func TestGitResolverParsesNullDelimitedAuthorityOutput(t *testing.T) {
	installStubGit(t, `logs/app.txt\0debug.log\0`, 0)
	fallback := &recordingResolver{}
	resolver := &gitignore.GitResolver{RootPath: t.TempDir(), Fallback: fallback}

	ignoredPaths := resolver.ResolveIgnored(context.Background(), []string{"logs/app.txt", "debug.log", "src/a.py"})

	for _, expectedPath := range []string{"logs/app.txt", "debug.log"} {
		if !ignoredPaths.Contains(expectedPath) {
			t.Fatalf("authority output must mark %s ignored, got %v", expectedPath, ignoredPaths)
		}
	}
	if ignoredPaths.Contains("src/a.py") {
		t.Fatalf("unreported path must not be ignored: %v", ignoredPaths)
	}
	if fallback.invocations != 0 {
		t.Fatalf("fallback consulted %d times while the authority was available", fallback.invocations)
	}
}

func TestGitResolverTreatsExitCodeOneAsNothingIgnored(t *testing.T) {
	installStubGit(t, "", 1)
	fallback := &recordingResolver{}
	resolver := &gitignore.GitResolver{RootPath: t.TempDir(), Fallback: fallback}

	ignoredPaths := resolver.ResolveIgnored(context.Background(), []string{"src/a.py"})

	if len(ignoredPaths) != 0 {
		t.Fatalf("exit code 1 means nothing is ignored, got %v", ignoredPaths)
	}
	if fallback.invocations != 0 {
		t.Fatalf("exit code 1 is a success; fallback consulted %d times", fallback.invocations)
	}
}

func TestGitResolverDegradesToFallbackOnAuthorityFailure(t *testing.T) {
	installStubGit(t, "", 2)
	fallback := &recordingResolver{}
	resolver := &gitignore.GitResolver{RootPath: t.TempDir(), Fallback: fallback}

	ignoredPaths := resolver.ResolveIgnored(context.Background(), []string{"src/a.py"})

	if fallback.invocations != 1 {
		t.Fatalf("failed authority must route to the fallback, consulted %d times", fallback.invocations)
	}
	if !ignoredPaths.Contains("fallback-marker") {
		t.Fatalf("fallback verdict must be returned: %v", ignoredPaths)
	}
}
