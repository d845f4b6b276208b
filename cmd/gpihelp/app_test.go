// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gpihelp/gpihelp/internal/config"
	"github.com/gpihelp/gpihelp/internal/describe"
	"github.com/gpihelp/gpihelp/internal/helpdesk"
	"github.com/gpihelp/gpihelp/internal/tui"
)

type testCLI struct {
	app    *App
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestCLI(t *testing.T, stdin string) *testCLI {
	t.Helper()

	c := &testCLI{
		dir:    t.TempDir(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	c.app = NewApp(Dependencies{
		Pager: func(cfg tui.Config) (describe.Pager, error) {
			return tui.NewPlainPager(cfg.Output), nil
		},
		Stdin:     strings.NewReader(stdin),
		Stdout:    c.stdout,
		Stderr:    c.stderr,
		ConfigDir: c.dir,
	})
	return c
}

func (c *testCLI) run(t *testing.T, args ...string) error {
	t.Helper()

	root := NewRootCommand(c.app)
	root.SetArgs(args)
	return root.ExecuteContext(t.Context())
}

func TestRoot_Index(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t, "")
	if err := c.run(t, "index"); err != nil {
		t.Fatalf("index error = %v, stderr: %s", err, c.stderr)
	}

	out := c.stdout.String()
	if !strings.HasPrefix(out, config.DefaultIndexTitle+"\n\nClasses:") {
		t.Errorf("index output = %q", out)
	}
	for _, section := range []string{"Exceptions:", "Functions:", "Objects:"} {
		if !strings.Contains(out, section) {
			t.Errorf("index output lacks %s", section)
		}
	}
	for _, name := range []string{"Job", "JobError", "Submit", "Jobs", "Registry of all submitted jobs."} {
		if !strings.Contains(out, name) {
			t.Errorf("index output lacks %q", name)
		}
	}
}

func TestRoot_HelpRequest(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t, "")
	if err := c.run(t, "Job"); err != nil {
		t.Fatalf("Job error = %v, stderr: %s", err, c.stderr)
	}

	want := "GPI Documentation: type Job in module github.com/gpihelp/gpihelp/internal/gpi"
	if got := c.stdout.String(); !strings.HasPrefix(got, want) {
		t.Errorf("page = %q, want prefix %q", got, want)
	}
}

func TestRoot_MethodValueIsPlacedInItsPackage(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t, "")
	if err := c.run(t, "Submit"); err != nil {
		t.Fatalf("Submit error = %v, stderr: %s", err, c.stderr)
	}

	want := "GPI Documentation: method Submit in module github.com/gpihelp/gpihelp/internal/gpi\n\n"
	if got := c.stdout.String(); !strings.HasPrefix(got, want) {
		t.Errorf("page = %q, want prefix %q", got, want)
	}
}

func TestRoot_UnknownRequestIsLogged(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t, "")
	if err := c.run(t, "NoSuchThing"); err != nil {
		t.Fatalf("NoSuchThing error = %v", err)
	}
	if c.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", c.stdout)
	}
	if !strings.Contains(c.stderr.String(), "failed to locate documentation: NoSuchThing") {
		t.Errorf("stderr = %q", c.stderr)
	}
}

func TestRoot_IndexSection(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t, "")
	if err := c.run(t, "index", "--section", "functions"); err != nil {
		t.Fatalf("index --section error = %v", err)
	}
	out := c.stdout.String()
	if !strings.HasPrefix(out, "Functions:") || strings.Contains(out, "Classes:") {
		t.Errorf("section output = %q", out)
	}
	if !strings.Contains(out, "NewJob") {
		t.Errorf("section output lacks NewJob: %q", out)
	}
}

func TestRoot_IndexBadSection(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t, "")
	err := c.run(t, "index", "-s", "modules")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("error = %v, want ExitError with code 1", err)
	}
	if !strings.Contains(c.stderr.String(), "Error: ") {
		t.Errorf("stderr = %q", c.stderr)
	}
}

func TestRoot_BadPagerMode(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t, "")
	err := c.run(t, "--pager", "bogus", "Job")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want ExitError", err)
	}
	stderr := c.stderr.String()
	if !strings.Contains(stderr, "select pager") || !strings.Contains(stderr, "--pager plain") {
		t.Errorf("stderr = %q", stderr)
	}
	if c.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", c.stdout)
	}
}

func TestRoot_InteractivePrompt(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t, "\nindex\nquit\nJob\n")
	if err := c.run(t); err != nil {
		t.Fatalf("run error = %v, stderr: %s", err, c.stderr)
	}

	out := c.stdout.String()
	if got := strings.Count(out, helpdesk.Prompt); got != 3 {
		t.Errorf("prompt shown %d times, want 3", got)
	}
	if !strings.Contains(out, config.DefaultIndexTitle) {
		t.Error("index was not printed")
	}
	if strings.Contains(out, "GPI Documentation") {
		t.Error("request after quit was answered")
	}
}

func TestRoot_ConfigFileIsApplied(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t, "")
	content := "index: {\n\ttitle: \"Public names\"\n}\n"
	if err := os.WriteFile(filepath.Join(c.dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := c.run(t, "index"); err != nil {
		t.Fatalf("index error = %v", err)
	}
	if !strings.HasPrefix(c.stdout.String(), "Public names\n\n") {
		t.Errorf("index output = %q", c.stdout)
	}
}

func TestRoot_BrokenConfigFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t, "")
	if err := os.WriteFile(filepath.Join(c.dir, "config.cue"), []byte("pager: \"less\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := c.run(t, "index"); err != nil {
		t.Fatalf("index error = %v", err)
	}
	if !strings.Contains(c.stderr.String(), "Warning: ") {
		t.Errorf("stderr = %q, want a warning", c.stderr)
	}
	if !strings.HasPrefix(c.stdout.String(), config.DefaultIndexTitle) {
		t.Errorf("index output = %q", c.stdout)
	}
}

func TestRoot_TitleWithTwoVerbsIsRejected(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t, "")
	content := "render: {\n\ttitle: \"%s and %s\"\n}\n"
	if err := os.WriteFile(filepath.Join(c.dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := c.run(t, "Job"); err != nil {
		t.Fatalf("Job error = %v", err)
	}
	if !strings.Contains(c.stderr.String(), "validate configuration") {
		t.Errorf("stderr = %q, want a validation warning", c.stderr)
	}
	out := c.stdout.String()
	if !strings.HasPrefix(out, "GPI Documentation: type Job") || strings.Contains(out, "MISSING") {
		t.Errorf("page = %q", out)
	}
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()

	t.Run("path", func(t *testing.T) {
		t.Parallel()
		c := newTestCLI(t, "")
		if err := c.run(t, "config", "path"); err != nil {
			t.Fatal(err)
		}
		want := "Config file: " + filepath.Join(c.dir, "config.cue") + "\n"
		if got := c.stdout.String(); got != want {
			t.Errorf("config path = %q, want %q", got, want)
		}
	})

	t.Run("dump", func(t *testing.T) {
		t.Parallel()
		c := newTestCLI(t, "")
		if err := c.run(t, "config", "dump"); err != nil {
			t.Fatal(err)
		}
		if got, want := c.stdout.String(), config.GenerateCUE(config.DefaultConfig()); got != want {
			t.Errorf("config dump = %q, want %q", got, want)
		}
	})

	t.Run("init", func(t *testing.T) {
		t.Parallel()
		c := newTestCLI(t, "")
		if err := c.run(t, "config", "init"); err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(c.dir, "config.cue")
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
		if !strings.Contains(c.stdout.String(), path) {
			t.Errorf("config init output = %q", c.stdout)
		}
	})

	t.Run("show", func(t *testing.T) {
		t.Parallel()
		c := newTestCLI(t, "")
		if err := c.run(t, "config", "show"); err != nil {
			t.Fatal(err)
		}
		out := c.stdout.String()
		for _, want := range []string{"(using defaults)", "max_inline_string", "GPI Index", "glamour_style"} {
			if !strings.Contains(out, want) {
				t.Errorf("config show lacks %q:\n%s", want, out)
			}
		}
	})
}
