package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avollmer/leitstand/internal/hierarchy"
	"github.com/avollmer/leitstand/internal/repository"
	"github.com/avollmer/leitstand/internal/service"
	"github.com/avollmer/leitstand/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	builder := hierarchy.NewBuilder(hierarchy.DefaultConfig())
	return &App{
		Overview: service.NewOverviewService(
			repository.NewSQLiteSalesRepo(database),
			repository.NewSQLiteProductionRepo(database),
			repository.NewSQLiteBatchRepo(database),
			builder,
		),
		Import:        service.NewImportService(testutil.NewTestUoW(database)),
		Builder:       builder,
		IsInteractive: func() bool { return false },
	}
}

// runCommand executes args through the Cobra tree, capturing stdout so direct
// fmt.Print calls from handlers are included.
func runCommand(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = pw

	root := NewRootCmd(app)
	root.SetOut(pw)
	root.SetErr(pw)
	root.SetArgs(args)
	root.SilenceUsage = true
	root.SilenceErrors = true

	var buf strings.Builder
	done := make(chan struct{})
	go func() {
		io.Copy(&buf, pr)
		close(done)
	}()

	execErr := root.Execute()

	pw.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), execErr
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTreeCmd_EmptyDatabase(t *testing.T) {
	app := newTestApp(t)

	out, err := runCommand(t, app, "tree")

	require.NoError(t, err)
	assert.Contains(t, out, "No records")
}

func TestImportThenTree(t *testing.T) {
	app := newTestApp(t)
	sales := writeCSV(t, "vertrieb.csv",
		"Lieferschein;Artikel;Projekt;Kunde;Menge\nL100;A1;P1;Müller GmbH;2\n")
	production := writeCSV(t, "produktion.csv",
		"Artikel;Projekt;PA;AG;Sollzeit;Istzeit\nA1;P1;W1;10;120;60\n")

	out, err := runCommand(t, app, "import", "sales", sales)
	require.NoError(t, err)
	assert.Contains(t, out, "1")

	_, err = runCommand(t, app, "import", "production", production)
	require.NoError(t, err)

	out, err = runCommand(t, app, "tree", "--view", "sales")
	require.NoError(t, err)
	assert.Contains(t, out, "Projekt P1")
	assert.Contains(t, out, "A1")
	assert.Contains(t, out, "Müller GmbH")
}

func TestTreeCmd_ProjectFilter(t *testing.T) {
	app := newTestApp(t)
	production := writeCSV(t, "produktion.csv",
		"Artikel;Projekt;PA;AG\nA1;P1;W1;10\nA2;P2;W2;10\n")
	_, err := runCommand(t, app, "import", "production", production)
	require.NoError(t, err)

	out, err := runCommand(t, app, "tree", "--view", "production", "--project", "P1")

	require.NoError(t, err)
	assert.Contains(t, out, "P1")
	assert.NotContains(t, out, "P2")
}

func TestTreeCmd_RejectsUnknownView(t *testing.T) {
	app := newTestApp(t)

	_, err := runCommand(t, app, "tree", "--view", "kanban")

	assert.ErrorContains(t, err, "unknown view")
}

func TestImportCmd_RejectsUnknownDataset(t *testing.T) {
	app := newTestApp(t)
	path := writeCSV(t, "x.csv", "Artikel\nA1\n")

	_, err := runCommand(t, app, "import", "inventory", path)

	assert.ErrorContains(t, err, "not importable")
}

func TestImportCmd_MissingFile(t *testing.T) {
	app := newTestApp(t)

	_, err := runCommand(t, app, "import", "sales", "/does/not/exist.csv")

	assert.Error(t, err)
}

func TestStatusCmd(t *testing.T) {
	app := newTestApp(t)
	production := writeCSV(t, "produktion.csv", "Artikel;PA;AG\nA1;W1;10\n")
	_, err := runCommand(t, app, "import", "production", production)
	require.NoError(t, err)

	out, err := runCommand(t, app, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "produktion.csv")
	assert.Contains(t, out, "production")
}

func TestBrowseCmd_RefusesNonInteractive(t *testing.T) {
	app := newTestApp(t)

	_, err := runCommand(t, app, "browse")

	assert.ErrorContains(t, err, "interactive terminal")
}
