package app_test

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubreport/internal/app"
	"clubreport/internal/config"
	"clubreport/internal/docx"
	"clubreport/internal/docx/docxtest"
	"clubreport/internal/prompt"
	"clubreport/internal/templates"
)

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(path string) error {
	o.opened = append(o.opened, path)
	return o.err
}

func templateBody() string {
	rows := append([][]string{
		{"活動日", "活動場所", "参加人数", "活動内容"},
		{"（例）4/10", "02-264", "8人", "情報交換"},
	}, docxtest.EmptyRows(6, 4)...)
	return docxtest.Paragraph("20", "24", "年", "4", "月　活動報告書") +
		docxtest.Paragraph("サークル名　工学院ポケモンだいすきクラブ", "（八王子）") +
		docxtest.Table(rows)
}

type env struct {
	dir    string
	out    bytes.Buffer
	opener *fakeOpener
	cfg    *config.AppConfig
}

func newEnv(t *testing.T, withTemplate bool) *env {
	t.Helper()

	e := &env{dir: t.TempDir(), opener: &fakeOpener{}, cfg: config.DefaultConfig()}
	e.cfg.Output.Dir = e.dir
	if withTemplate {
		require.NoError(t, os.WriteFile(filepath.Join(e.dir, "活動報告.docx"), docxtest.Package(templateBody()), 0o644))
	}
	return e
}

func (e *env) run(t *testing.T, input string) (app.Outcome, error) {
	t.Helper()

	g, err := app.New(e.cfg, app.Deps{
		In:      strings.NewReader(input),
		Out:     &e.out,
		Rand:    rand.New(rand.NewPCG(1, 2)),
		Clock:   func() time.Time { return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local) },
		Opener:  e.opener,
		WorkDir: e.dir,
	})
	require.NoError(t, err)
	return g.Run()
}

func TestRunGeneratesReport(t *testing.T) {
	e := newEnv(t, true)

	outcome, err := e.run(t, "\n\nh\n5\n02-264\n19\nA-0511\n\n")
	require.NoError(t, err)

	want := filepath.Join(e.dir, "2025年3月活動報告（八王子）.docx")
	assert.Equal(t, want, outcome.Path)
	assert.Equal(t, []string{want}, e.opener.opened)
	assert.True(t, outcome.Opened)
	assert.Equal(t, "活動報告.docx", outcome.Template)
	assert.Empty(t, outcome.Bind.Warnings)

	doc, err := docx.Open(want)
	require.NoError(t, err)

	runs := doc.Paragraphs()[0].Runs()
	assert.Equal(t, "25", runs[1].Text())
	assert.Equal(t, "3", runs[3].Text())
	assert.Equal(t, "（八王子）", doc.Paragraphs()[1].Runs()[1].Text())

	rows := doc.Tables()[0].Rows()
	require.Len(t, rows, 8)
	for i, entry := range outcome.Batch {
		cells := rows[i+2].Cells()
		assert.Equal(t, entry.Date, cells[0].Text())
		assert.Equal(t, entry.Location, cells[1].Text())
		assert.Equal(t, entry.ParticipantsLabel(), cells[2].Text())
		assert.Equal(t, strings.Join(entry.Activities, "\n"), cells[3].Text())
	}
	assert.Equal(t, "3/5", rows[2].Cells()[0].Text())
	assert.Equal(t, "3/19", rows[3].Cells()[0].Text())
	for i := 4; i < 8; i++ {
		for _, c := range rows[i].Cells() {
			assert.Empty(t, c.Text())
		}
	}

	// テンプレートは変更しない
	tmpl, err := docx.Open(filepath.Join(e.dir, "活動報告.docx"))
	require.NoError(t, err)
	assert.Equal(t, "24", tmpl.Paragraphs()[0].Runs()[1].Text())
}

func TestRunMissingTemplateWritesNothing(t *testing.T) {
	e := newEnv(t, false)

	_, err := e.run(t, "\n\ns\n3\nroom\n\n")
	require.ErrorIs(t, err, templates.ErrTemplateNotFound)
	assert.Equal(t, "テンプレートファイルが見つかりませんでした。", app.Describe(err))

	entries, err := os.ReadDir(e.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, e.opener.opened)
}

func TestRunWithLedgerAndNoOpen(t *testing.T) {
	e := newEnv(t, true)
	e.cfg.Output.Ledger = true
	e.cfg.Output.Open = false

	outcome, err := e.run(t, "2024\n12\ns\n1\nA\n\n")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(e.dir, "2024年12月活動報告（新宿）.docx"), outcome.Path)
	assert.Equal(t, filepath.Join(e.dir, "2024年12月活動記録（新宿）.xlsx"), outcome.LedgerPath)
	assert.FileExists(t, outcome.LedgerPath)
	assert.False(t, outcome.Opened)
	assert.Empty(t, e.opener.opened)
}

func TestRunOpenFailureIsNotFatal(t *testing.T) {
	e := newEnv(t, true)
	e.opener.err = errors.New("no handler")

	outcome, err := e.run(t, "\n\nh\n\n")
	require.NoError(t, err)

	assert.FileExists(t, outcome.Path)
	assert.False(t, outcome.Opened)
	assert.Contains(t, e.out.String(), "手動で開いてください")
}

func TestRunBundledTemplate(t *testing.T) {
	e := newEnv(t, false)
	e.cfg.Template.Mode = "bundled"

	g, err := app.New(e.cfg, app.Deps{
		In:      strings.NewReader("\n\nh\n\n"),
		Out:     &e.out,
		Opener:  e.opener,
		WorkDir: e.dir,
		Bundle: fstest.MapFS{
			"activity_report.docx": &fstest.MapFile{Data: docxtest.Package(templateBody())},
		},
	})
	require.NoError(t, err)

	outcome, err := g.Run()
	require.NoError(t, err)
	assert.FileExists(t, outcome.Path)
}

func TestRunInputClosed(t *testing.T) {
	e := newEnv(t, true)

	_, err := e.run(t, "")
	require.ErrorIs(t, err, prompt.ErrInputClosed)
	assert.Equal(t, "入力が終了したため中止しました。", app.Describe(err))
}

func TestDescribe(t *testing.T) {
	assert.Contains(t, app.Describe(templates.ErrTemplateLocked), "現在開かれています")
	assert.Contains(t, app.Describe(templates.ErrTemplateRead), "ファイルを開く際にエラーが発生しました")
	assert.Contains(t, app.Describe(errors.New("boom")), "エラーが発生しました: boom")
}
