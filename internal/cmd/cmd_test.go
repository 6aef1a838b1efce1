package cmd

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/weblarek/larek/internal/presenter"
	"github.com/weblarek/larek/internal/shopserver"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// isolate keeps the user's config file and LAREK_* variables out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LAREK_API_RETRIES", "0")
	t.Setenv("LAREK_LOGGING_LEVEL", "error")
	catalogHTML = false
}

func newStub(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(shopserver.New(shopserver.DefaultProducts()).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "larek" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "larek")
	}

	expectedCmds := []string{"run", "stub", "catalog", "config", "version"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, name := range expectedCmds {
		if !cmdMap[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestCatalogCommand(t *testing.T) {
	isolate(t)
	srv := newStub(t)

	out, err := executeCommand(rootCmd, "catalog", "--api-url", srv.URL)
	if err != nil {
		t.Fatalf("catalog failed: %v\n%s", err, out)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(shopserver.DefaultProducts()) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(shopserver.DefaultProducts()), len(lines), out)
	}
	if !strings.Contains(lines[0], "+1 hour in the day") || !strings.Contains(lines[0], "750 synapses") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(out, "Priceless") {
		t.Error("expected a priceless product")
	}
}

func TestCatalogCommand_HTML(t *testing.T) {
	isolate(t)
	srv := newStub(t)

	out, err := executeCommand(rootCmd, "catalog", "--html", "--api-url", srv.URL)
	if err != nil {
		t.Fatalf("catalog --html failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, `class="gallery__item card"`) {
		t.Errorf("expected gallery markup, got:\n%s", out)
	}
	if !strings.Contains(out, "card__category_soft") {
		t.Error("expected category modifier class")
	}
}

func TestCatalogCommand_Unreachable(t *testing.T) {
	isolate(t)
	srv := newStub(t)
	url := srv.URL
	srv.Close()

	_, err := executeCommand(rootCmd, "catalog", "--api-url", url)
	if err == nil {
		t.Fatal("expected an error for an unreachable API")
	}
	if !strings.Contains(err.Error(), presenter.NoticeCatalogFailed) {
		t.Errorf("error = %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, err := executeCommand(rootCmd, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "larek ") {
		t.Errorf("output = %q", out)
	}
}

func TestConfigInitAndPath(t *testing.T) {
	isolate(t)

	out, err := executeCommand(rootCmd, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out)
	}
	file := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "larek", "config.yaml")
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	for _, want := range []string{"api:", "127.0.0.1:8787", "timeout: 10s", "locale: en"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("config file missing %q:\n%s", want, data)
		}
	}

	if _, err := executeCommand(rootCmd, "config", "init"); err == nil {
		t.Error("second init should refuse to overwrite")
	}
}

func TestLoadFixtures(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		products, err := loadFixtures("")
		if err != nil || len(products) == 0 {
			t.Fatalf("loadFixtures(\"\") = %d products, %v", len(products), err)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.yaml")
		data := "- id: a\n  title: A\n  category: other\n  price: 10\n- id: b\n  title: B\n  category: other\n"
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		products, err := loadFixtures(path)
		if err != nil {
			t.Fatalf("loadFixtures failed: %v", err)
		}
		if len(products) != 2 || products[1].ForSale() {
			t.Errorf("unexpected products %+v", products)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := loadFixtures(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected an error")
		}
	})
}
