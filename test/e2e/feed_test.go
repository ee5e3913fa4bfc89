package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
	"github.com/creack/pty"
)

// buildApp builds the campusfeed binary for testing.
// Returns the path to the binary and a cleanup function.
func buildApp(t *testing.T) (string, func()) {
	t.Helper()
	dir := t.TempDir()
	binPath := filepath.Join(dir, "campusfeed")

	// Get the project root directory
	rootDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	// Assume we are in test/e2e, go up 2 levels
	rootDir = filepath.Join(rootDir, "..", "..")

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/campusfeed")
	cmd.Dir = rootDir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}

	return binPath, func() { os.RemoveAll(dir) }
}

// startApp runs the binary on a PTY under a throwaway HOME and returns an
// expect console over it. Callers must close the console and kill cmd.
func startApp(t *testing.T, binPath, homeDir string) (*expect.Console, *bytes.Buffer, *exec.Cmd, *os.File) {
	t.Helper()

	cmd := exec.Command(binPath)
	// Point HOME to temp dir so it uses a fresh ~/.campusfeed/
	cmd.Env = append(os.Environ(), "HOME="+homeDir)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		t.Fatalf("failed to start pty: %v", err)
	}
	if err := pty.Setsize(ptmx, &pty.Winsize{Cols: 120, Rows: 40}); err != nil {
		t.Fatalf("failed to set pty size: %v", err)
	}

	var outputBuf bytes.Buffer
	console, err := expect.NewConsole(
		expect.WithStdin(ptmx),
		expect.WithStdout(&outputBuf),
		expect.WithDefaultTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("failed to create console: %v", err)
	}
	return console, &outputBuf, cmd, ptmx
}

// expectExit waits for the process to exit after a quit key.
func expectExit(t *testing.T, cmd *exec.Cmd) {
	t.Helper()
	done := make(chan error)
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
		t.Log("Process exited successfully")
	case <-time.After(2 * time.Second):
		t.Error("Process did not exit after 'q'")
	}
}

func TestE2E_BrowseSearchSave(t *testing.T) {
	binPath, cleanup := buildApp(t)
	defer cleanup()

	homeDir := t.TempDir()
	if err := seedFixtureHome(homeDir); err != nil {
		t.Fatalf("failed to seed fixture home: %v", err)
	}

	console, outputBuf, cmd, ptmx := startApp(t, binPath, homeDir)
	defer func() {
		_ = console.Close()
		_ = ptmx.Close()
		_ = cmd.Process.Kill()
	}()

	// 1. Fresh home has no profile, so onboarding opens first
	t.Log("Waiting for onboarding...")
	if _, err := console.ExpectString("Set up your profile"); err != nil {
		t.Fatalf("onboarding not shown: %v\nScreen:\n%s", err, outputBuf.String())
	}

	// 2. Skip it
	t.Log("Sending esc...")
	if _, err := console.Send("\x1b"); err != nil {
		t.Fatalf("failed to send esc: %v", err)
	}
	if _, err := console.ExpectString("All Events"); err != nil {
		t.Fatalf("feed header not shown: %v\nScreen:\n%s", err, outputBuf.String())
	}

	// 3. Both fixture events listed, hackathon first (date order)
	if _, err := console.ExpectString("Fixture Hackathon"); err != nil {
		t.Fatalf("first fixture event not visible: %v\nScreen:\n%s", err, outputBuf.String())
	}
	if _, err := console.ExpectString("Fixture Workshop"); err != nil {
		t.Fatalf("second fixture event not visible: %v\nScreen:\n%s", err, outputBuf.String())
	}
	if _, err := console.ExpectString("1/2"); err != nil {
		t.Fatalf("status count not shown: %v\nScreen:\n%s", err, outputBuf.String())
	}

	// 4. Open search mode
	t.Log("Sending slash...")
	time.Sleep(500 * time.Millisecond) // Allow UI to stabilize
	if _, err := console.Send("/"); err != nil {
		t.Fatalf("failed to send slash: %v", err)
	}
	if _, err := console.ExpectString("title, details, place, tags"); err != nil {
		t.Fatalf("search prompt not found: %v\nScreen:\n%s", err, outputBuf.String())
	}

	// 5. Narrow live to one event
	t.Log("Typing 'workshop'...")
	if _, err := console.Send("workshop"); err != nil {
		t.Fatalf("failed to send query: %v", err)
	}
	if _, err := console.ExpectString("1/1"); err != nil {
		t.Fatalf("narrowed count not shown: %v\nScreen:\n%s", err, outputBuf.String())
	}

	// 6. Keep the query; header shows it as an active filter
	t.Log("Sending Enter...")
	if _, err := console.Send("\n"); err != nil {
		t.Fatalf("failed to send Enter: %v", err)
	}
	if _, err := console.ExpectString(`search:"workshop"`); err != nil {
		t.Fatalf("query filter not in header: %v\nScreen:\n%s", err, outputBuf.String())
	}

	// 7. Save the remaining event
	t.Log("Sending 's'...")
	time.Sleep(200 * time.Millisecond)
	if _, err := console.Send("s"); err != nil {
		t.Fatalf("failed to send s: %v", err)
	}
	if _, err := console.ExpectString("✔"); err != nil {
		t.Fatalf("saved marker not shown: %v\nScreen:\n%s", err, outputBuf.String())
	}

	// 8. Toggle sort; the header reflects it
	t.Log("Sending 't'...")
	if _, err := console.Send("t"); err != nil {
		t.Fatalf("failed to send t: %v", err)
	}
	if _, err := console.ExpectString("sort:trending"); err != nil {
		t.Fatalf("sort mode not in header: %v\nScreen:\n%s", err, outputBuf.String())
	}

	// 9. Quit
	t.Log("Sending 'q'...")
	if _, err := console.Send("q"); err != nil {
		t.Fatalf("failed to send q: %v", err)
	}
	expectExit(t, cmd)
}

func TestE2E_OnboardingProfile(t *testing.T) {
	binPath, cleanup := buildApp(t)
	defer cleanup()

	homeDir := t.TempDir()
	if err := seedFixtureHome(homeDir); err != nil {
		t.Fatalf("failed to seed fixture home: %v", err)
	}

	console, outputBuf, cmd, ptmx := startApp(t, binPath, homeDir)
	defer func() {
		_ = console.Close()
		_ = ptmx.Close()
		_ = cmd.Process.Kill()
	}()

	if _, err := console.ExpectString("Set up your profile"); err != nil {
		t.Fatalf("onboarding not shown: %v\nScreen:\n%s", err, outputBuf.String())
	}

	// Name
	t.Log("Typing name...")
	time.Sleep(500 * time.Millisecond) // Allow UI to stabilize
	if _, err := console.Send("Maya"); err != nil {
		t.Fatalf("failed to send name: %v", err)
	}
	if _, err := console.ExpectString("Maya"); err != nil {
		t.Fatalf("name not echoed: %v\nScreen:\n%s", err, outputBuf.String())
	}
	if _, err := console.Send("\n"); err != nil {
		t.Fatalf("failed to send Enter: %v", err)
	}

	// Faculty: first choice (Science) is highlighted, accept it
	time.Sleep(100 * time.Millisecond)
	if _, err := console.Send("\n"); err != nil {
		t.Fatalf("failed to send Enter: %v", err)
	}

	// Interests: toggle the first two, then submit.
	// Keys are sent one at a time so the input reader cannot batch them.
	for _, key := range []string{" ", "j", " ", "\n"} {
		time.Sleep(100 * time.Millisecond)
		if _, err := console.Send(key); err != nil {
			t.Fatalf("failed to send %q: %v", key, err)
		}
	}

	// Profile saved: the feed opens in the personalized view
	if _, err := console.ExpectString("For You · Maya (Science)"); err != nil {
		t.Fatalf("personalized header not shown: %v\nScreen:\n%s", err, outputBuf.String())
	}

	// Only the hackathon matches Science + [AI, Hackathon]
	if _, err := console.ExpectString("Fixture Hackathon"); err != nil {
		t.Fatalf("matching event not visible: %v\nScreen:\n%s", err, outputBuf.String())
	}

	t.Log("Sending 'q'...")
	time.Sleep(200 * time.Millisecond)
	if _, err := console.Send("q"); err != nil {
		t.Fatalf("failed to send q: %v", err)
	}
	expectExit(t, cmd)
}
