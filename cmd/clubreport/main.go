package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clubreport/internal/app"
	"clubreport/internal/config"
	"clubreport/internal/logging"
	"clubreport/internal/templates"
)

var (
	configPath   string
	templatePath string
	bundled      bool
	outputDir    string
	noOpen       bool
	withLedger   bool
	seed         uint64
	verbose      bool

	cfg    *config.AppConfig
	logger *zap.Logger
)

// errReported 利用者向けのメッセージを表示済み
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "clubreport",
	Short: "月次の活動報告書をテンプレートから作成する",
	Long: `活動年月・活動場所・活動日を対話的に入力し、参加人数と活動内容を
ランダムに決めて活動報告テンプレート（*活動報告.docx）に書き込みます。

保存先: {年}年{月}月活動報告（場所）.docx`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, info, err := config.LoadConfigWithInfo(configPath)
		if err != nil {
			return fmt.Errorf("設定の読み込みに失敗しました: %w", err)
		}
		cfg = loaded
		applyFlags(cfg)

		logger, err = logging.New(cfg.Log.Level, verbose)
		if err != nil {
			return err
		}
		logger.Debug("config loaded", zap.String("path", info.Path), zap.Bool("from_file", info.Loaded))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "設定ファイル (既定: 実行ファイルと同じ場所の config.toml)")
	flags.StringVar(&templatePath, "template", "", "テンプレートのパス (config.toml より優先)")
	flags.BoolVar(&bundled, "bundled", false, "同梱テンプレートを優先して使う")
	flags.StringVar(&outputDir, "output-dir", "", "出力先ディレクトリ")
	flags.BoolVar(&noOpen, "no-open", false, "保存後にファイルを開かない")
	flags.BoolVar(&withLedger, "ledger", false, "活動記録 (.xlsx) も保存する")
	flags.Uint64Var(&seed, "seed", 0, "乱数のシード (再現用)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "詳細ログを出力する")
}

// applyFlags コマンドライン引数で設定を上書きする
func applyFlags(c *config.AppConfig) {
	if templatePath != "" {
		c.Template.Path = templatePath
	}
	if bundled {
		c.Template.Mode = string(templates.ModeBundled)
	}
	if outputDir != "" {
		c.Output.Dir = outputDir
	}
	if noOpen {
		c.Output.Open = false
	}
	if withLedger {
		c.Output.Ledger = true
	}
}

func run(cmd *cobra.Command, args []string) error {
	deps := app.Deps{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Logger: logger,
	}
	if cmd.Flags().Changed("seed") {
		deps.Rand = rand.New(rand.NewPCG(seed, seed))
	}

	g, err := app.New(cfg, deps)
	if err != nil {
		return err
	}
	if _, err := g.Run(); err != nil {
		logger.Error("report generation failed", zap.Error(err))
		fmt.Fprintln(cmd.OutOrStdout(), app.Describe(err))
		return fmt.Errorf("%w: %w", errReported, err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
