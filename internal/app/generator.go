// Package app 入力収集から保存・表示までの一連の流れ
package app

import (
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clubreport/internal/binder"
	"clubreport/internal/config"
	"clubreport/internal/ledger"
	"clubreport/internal/model"
	"clubreport/internal/prompt"
	"clubreport/internal/publisher"
	"clubreport/internal/sampler"
	"clubreport/internal/templates"
)

// Deps 外部とのやり取りに使うもの。空のフィールドは既定値になる。
type Deps struct {
	In     io.Reader
	Out    io.Writer
	Rand   *rand.Rand
	Clock  func() time.Time
	Opener publisher.Opener
	Bundle fs.FS
	// WorkDir テンプレートを探すディレクトリ
	WorkDir string
	Logger  *zap.Logger
}

// Outcome 実行結果
type Outcome struct {
	Request    model.Request
	Batch      model.ReportBatch
	Template   string
	Bind       binder.Result
	Path       string
	LedgerPath string
	Opened     bool
}

// Generator 活動報告の生成
type Generator struct {
	cfg       *config.AppConfig
	collector *prompt.Collector
	sampler   *sampler.Sampler
	resolver  templates.Resolver
	binder    *binder.Binder
	publisher *publisher.Publisher
	out       io.Writer
	outDir    string
	logger    *zap.Logger
}

// New 設定から Generator を組み立てる
func New(cfg *config.AppConfig, deps Deps) (*Generator, error) {
	if deps.In == nil {
		deps.In = os.Stdin
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.WorkDir == "" {
		deps.WorkDir = "."
	}
	logger := deps.Logger.With(zap.String("run_id", uuid.NewString()))

	catalog, err := cfg.ActivityCatalog()
	if err != nil {
		return nil, err
	}
	s, err := sampler.New(catalog, deps.Rand,
		sampler.WithParticipantRange(cfg.Report.MinParticipants, cfg.Report.MaxParticipants),
		sampler.WithPicks(cfg.Report.Picks),
	)
	if err != nil {
		return nil, err
	}
	mode, err := templates.ParseMode(cfg.Template.Mode)
	if err != nil {
		return nil, err
	}

	var opener publisher.Opener
	if cfg.Output.Open {
		opener = deps.Opener
		if opener == nil {
			opener = publisher.DefaultOpener()
		}
	}

	return &Generator{
		cfg: cfg,
		collector: prompt.NewCollector(deps.In, deps.Out,
			prompt.WithClock(deps.Clock),
			prompt.WithLocations(cfg.Locations),
			prompt.WithMaxDays(cfg.Report.MaxDays),
		),
		sampler: s,
		resolver: templates.Resolver{
			Path:   cfg.Template.Path,
			Suffix: cfg.Template.Suffix,
			Dir:    deps.WorkDir,
			Mode:   mode,
			Bundle: deps.Bundle,
			Logger: logger,
		},
		binder:    binder.New(cfg.Layout(), logger),
		publisher: publisher.New(cfg.Output.Dir, opener, deps.Out, logger),
		out:       deps.Out,
		outDir:    cfg.Output.Dir,
		logger:    logger,
	}, nil
}

// Run 入力 → 生成 → テンプレート書き込み → 保存 → 表示
//
// テンプレートが見つからない・開けない場合は何も保存しない。
// 書き込み位置の不一致、活動記録の保存失敗、自動表示の失敗は警告のみ。
func (g *Generator) Run() (Outcome, error) {
	var out Outcome

	req, err := g.collector.Collect()
	if err != nil {
		return out, err
	}
	out.Request = req
	g.logger.Info("input collected",
		zap.Int("year", req.Period.Year),
		zap.Int("month", req.Period.Month),
		zap.String("location", req.Location.Code),
		zap.Int("days", len(req.Days)),
	)

	batch, err := g.sampler.Batch(req)
	if err != nil {
		return out, err
	}
	out.Batch = batch

	src, err := g.resolver.Resolve()
	if err != nil {
		return out, err
	}
	out.Template = src.Name
	fmt.Fprintf(g.out, "テンプレートファイル: %s\n", src.Name)

	doc, err := src.Open()
	if err != nil {
		return out, err
	}

	out.Bind = g.binder.Bind(doc, binder.Values{
		Period:   req.Period,
		Location: req.Location,
		Batch:    batch,
	})
	for _, w := range out.Bind.Warnings {
		fmt.Fprintln(g.out, w)
	}

	path, err := g.publisher.Save(doc, publisher.Filename(req.Period, req.Location))
	if err != nil {
		return out, err
	}
	out.Path = path

	if g.cfg.Output.Ledger {
		out.LedgerPath = g.writeLedger(req, batch)
	}

	out.Opened = g.publisher.Open(path)
	return out, nil
}

func (g *Generator) writeLedger(req model.Request, batch model.ReportBatch) string {
	path, err := filepath.Abs(filepath.Join(g.outDir, ledger.Filename(req.Period, req.Location)))
	if err == nil {
		err = ledger.Write(path, req.Period, req.Location, batch)
	}
	if err != nil {
		g.logger.Warn("ledger export failed", zap.Error(err))
		fmt.Fprintf(g.out, "警告: 活動記録の保存に失敗しました: %v\n", err)
		return ""
	}
	fmt.Fprintf(g.out, "活動記録を保存しました: %s\n", path)
	return path
}
