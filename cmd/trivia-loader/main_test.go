package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// sqliteEnv points the app config at a fresh SQLite file in an empty dir.
func sqliteEnv(t *testing.T) {
	t.Helper()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", filepath.Join(t.TempDir(), "trivia.db"))
	t.Setenv("LOG_LEVEL", "error")
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "trivia-loader dev") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestLoadCmd_SQLite(t *testing.T) {
	sqliteEnv(t)

	dir := t.TempDir()
	body := "round\tclue_value\tcategory\tcomments\tanswer\tquestion\tair_date\n" +
		"1\t100\tLAKES & RIVERS\t-\tScottish word for lake\tloch\t1984-09-10\n"
	if err := os.WriteFile(filepath.Join(dir, "season1.tsv"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "load", "--data-dir", dir, "--max-seasons", "0")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.Contains(out, "SEASON") || !strings.Contains(out, "1  ") {
		t.Errorf("summary missing from output:\n%s", out)
	}

	if _, err := runCmd(t, "load", "--data-dir", dir); err == nil {
		t.Error("second load of the same season should fail")
	}
	if _, err := runCmd(t, "load", "--data-dir", dir, "--purge"); err != nil {
		t.Errorf("load --purge: %v", err)
	}
}

func TestLoadCmd_NoFiles(t *testing.T) {
	sqliteEnv(t)

	if _, err := runCmd(t, "load", "--data-dir", t.TempDir()); err == nil {
		t.Fatal("expected error when no season files exist")
	}
}

func TestPurgeCmd_RequiresConfirmation(t *testing.T) {
	sqliteEnv(t)

	if _, err := runCmd(t, "purge"); err == nil {
		t.Fatal("purge without --yes should fail")
	}
	if _, err := runCmd(t, "purge", "--yes"); err != nil {
		t.Fatalf("purge --yes: %v", err)
	}
}
