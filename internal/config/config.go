package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"clubreport/internal/binder"
	"clubreport/internal/model"
	"clubreport/internal/templates"
)

// ErrInvalidConfig 設定値が不正
var ErrInvalidConfig = errors.New("invalid config")

// FileName 設定ファイル名
const FileName = "config.toml"

// AppConfig アプリケーション設定
type AppConfig struct {
	Report    ReportConfig     `toml:"report"`
	Catalog   []model.Activity `toml:"catalog"`
	Locations []model.Location `toml:"locations"`
	Template  TemplateConfig   `toml:"template"`
	Output    OutputConfig     `toml:"output"`
	Log       LogConfig        `toml:"log"`
}

// ReportConfig 生成する報告の設定
type ReportConfig struct {
	MinParticipants int `toml:"min_participants"`
	MaxParticipants int `toml:"max_participants"`
	Picks           int `toml:"picks"`
	MaxDays         int `toml:"max_days"`
}

// TemplateConfig テンプレートの場所と構造
type TemplateConfig struct {
	Path         string `toml:"path"`
	Suffix       string `toml:"suffix"`
	Mode         string `toml:"mode"`
	ClubMarker   string `toml:"club_marker"`
	YearMarker   string `toml:"year_marker"`
	MonthMarker  string `toml:"month_marker"`
	FirstDataRow int    `toml:"first_data_row"`
	LastDataRow  int    `toml:"last_data_row"`
}

// OutputConfig 出力設定
type OutputConfig struct {
	Dir    string `toml:"dir"`
	Open   bool   `toml:"open"`
	Ledger bool   `toml:"ledger"`
}

// LogConfig ログ設定
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfigInfo 設定読み込みのメタ情報
type LoadConfigInfo struct {
	Path   string
	Loaded bool
}

// DefaultConfig 既定の設定
func DefaultConfig() *AppConfig {
	layout := binder.DefaultLayout()
	return &AppConfig{
		Report: ReportConfig{
			MinParticipants: 3,
			MaxParticipants: 14,
			Picks:           3,
			MaxDays:         layout.DataRows(),
		},
		Catalog:   model.DefaultActivities(),
		Locations: model.DefaultLocations(),
		Template: TemplateConfig{
			Path:         "",
			Suffix:       templates.DefaultSuffix,
			Mode:         string(templates.ModeSource),
			ClubMarker:   layout.ClubMarker,
			YearMarker:   layout.YearMarker,
			MonthMarker:  layout.MonthMarker,
			FirstDataRow: layout.FirstDataRow,
			LastDataRow:  layout.LastDataRow,
		},
		Output: OutputConfig{
			Dir:    ".",
			Open:   true,
			Ledger: false,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// GetExeDir 実行ファイルのあるディレクトリ
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath 実行ファイルと同じディレクトリの config.toml
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, FileName)
}

// LoadConfigWithInfo path から設定を読み込む。path が空なら実行ファイルの隣を見る。
// ファイルがなければ既定値を使う。
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
		info.Loaded = true
	case os.IsNotExist(err):
		// 既定値のまま
	default:
		return nil, info, err
	}

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// LoadConfig path から設定を読み込む
func LoadConfig(path string) (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo(path)
	return config, err
}

// unmarshal 配列の項目はファイルに書かれていれば既定値を置き換える
func unmarshal(data []byte, config *AppConfig) error {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if _, ok := raw["catalog"]; ok {
		config.Catalog = nil
	}
	if _, ok := raw["locations"]; ok {
		config.Locations = nil
	}
	return toml.Unmarshal(data, config)
}

// 環境変数による上書き
func applyEnv(config *AppConfig) {
	if v := strings.TrimSpace(os.Getenv("CLUBREPORT_TEMPLATE_PATH")); v != "" {
		config.Template.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("CLUBREPORT_OUTPUT_DIR")); v != "" {
		config.Output.Dir = v
	}
}

// SaveConfig 設定を path に書き出す
func SaveConfig(path string, config *AppConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate 設定値を検証する
func (c *AppConfig) Validate() error {
	r := c.Report
	if r.MinParticipants < 0 || r.MinParticipants > r.MaxParticipants {
		return fmt.Errorf("%w: participants range [%d, %d]", ErrInvalidConfig, r.MinParticipants, r.MaxParticipants)
	}
	if r.Picks < 1 {
		return fmt.Errorf("%w: picks must be >= 1, got %d", ErrInvalidConfig, r.Picks)
	}
	catalog, err := c.ActivityCatalog()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if catalog.Len() < r.Picks {
		return fmt.Errorf("%w: catalog has %d activities, need at least %d", ErrInvalidConfig, catalog.Len(), r.Picks)
	}
	if len(c.Locations) == 0 {
		return fmt.Errorf("%w: no locations", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.Locations))
	for _, l := range c.Locations {
		code := strings.ToLower(strings.TrimSpace(l.Code))
		if code == "" || l.Name == "" {
			return fmt.Errorf("%w: location needs code and name", ErrInvalidConfig)
		}
		if code != l.Code {
			return fmt.Errorf("%w: location code %q must be lower-case without spaces", ErrInvalidConfig, l.Code)
		}
		if _, dup := seen[code]; dup {
			return fmt.Errorf("%w: duplicate location code %q", ErrInvalidConfig, code)
		}
		seen[code] = struct{}{}
	}
	if _, err := templates.ParseMode(c.Template.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	t := c.Template
	if t.FirstDataRow < 0 || t.LastDataRow < t.FirstDataRow {
		return fmt.Errorf("%w: data rows [%d, %d]", ErrInvalidConfig, t.FirstDataRow, t.LastDataRow)
	}
	if r.MaxDays < 0 || r.MaxDays > c.Layout().DataRows() {
		return fmt.Errorf("%w: max_days %d exceeds table data rows %d", ErrInvalidConfig, r.MaxDays, c.Layout().DataRows())
	}
	return nil
}

// ActivityCatalog 設定のカタログ
func (c *AppConfig) ActivityCatalog() (model.Catalog, error) {
	return model.NewCatalog(c.Catalog)
}

// Layout 設定から組み立てたテンプレート構造
func (c *AppConfig) Layout() binder.Layout {
	layout := binder.DefaultLayout()
	layout.ClubMarker = c.Template.ClubMarker
	layout.YearMarker = c.Template.YearMarker
	layout.MonthMarker = c.Template.MonthMarker
	layout.FirstDataRow = c.Template.FirstDataRow
	layout.LastDataRow = c.Template.LastDataRow
	return layout
}
