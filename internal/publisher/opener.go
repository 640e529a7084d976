package publisher

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrOpenFailed どの方法でもファイルを開けなかった
var ErrOpenFailed = errors.New("could not open file with default application")

// Opener ファイルを OS 既定のアプリケーションで開く
type Opener interface {
	Open(path string) error
}

// Runner 外部コマンドを起動する
type Runner func(name string, args ...string) error

// StartCommand コマンドを起動し、終了は待たない
func StartCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// OpenerFor 実行中の OS に合わせた Opener
func OpenerFor(goos string, run Runner) Opener {
	if run == nil {
		run = StartCommand
	}
	switch goos {
	case "windows":
		return windowsOpener{run: run}
	case "darwin":
		return darwinOpener{run: run}
	default:
		return unixOpener{run: run}
	}
}

// DefaultOpener 現在の OS 用の Opener
func DefaultOpener() Opener {
	return OpenerFor(runtime.GOOS, StartCommand)
}

type windowsOpener struct {
	run Runner
}

// Open rundll32 は Windows 7 以降で安定して動く。失敗したら start、explorer の順に試す。
func (o windowsOpener) Open(path string) error {
	return tryEach(o.run, path,
		[]string{"rundll32", "url.dll,FileProtocolHandler"},
		[]string{"cmd", "/c", "start", ""},
		[]string{"explorer"},
	)
}

type darwinOpener struct {
	run Runner
}

func (o darwinOpener) Open(path string) error {
	return tryEach(o.run, path, []string{"open"})
}

type unixOpener struct {
	run Runner
}

func (o unixOpener) Open(path string) error {
	return tryEach(o.run, path,
		[]string{"xdg-open"},
		[]string{"gio", "open"},
		[]string{"gnome-open"},
		[]string{"kde-open"},
	)
}

// tryEach 成功するまで順にコマンドを試す。path は各コマンドの最後の引数になる。
func tryEach(run Runner, path string, commands ...[]string) error {
	var errs []error
	for _, c := range commands {
		args := append(append([]string{}, c[1:]...), path)
		if err := run(c[0], args...); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c[0], err))
			continue
		}
		return nil
	}
	return fmt.Errorf("%w: %w", ErrOpenFailed, errors.Join(errs...))
}
