// Package prompt 標準入力から報告の年月・場所・活動日を対話的に集める
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"clubreport/internal/model"
)

// DefaultMaxDays 活動日の入力上限（表のデータ行数）
const DefaultMaxDays = 6

const (
	minYear = 1000
	maxYear = 9999
)

// Collector 対話入力
type Collector struct {
	in        *bufio.Reader
	out       io.Writer
	now       func() time.Time
	locations []model.Location
	maxDays   int
}

// NewCollector Collector を作成する
func NewCollector(in io.Reader, out io.Writer, opts ...Option) *Collector {
	c := &Collector{
		in:        bufio.NewReader(in),
		out:       out,
		now:       time.Now,
		locations: model.DefaultLocations(),
		maxDays:   DefaultMaxDays,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect 年・月・場所・活動日を順に入力させる
//
// 不正な入力は何度でも聞き直す。活動日の入力中に入力が終わった場合はそこまでで打ち切る。
func (c *Collector) Collect() (model.Request, error) {
	var req model.Request

	c.println(titleStyle.Render("活動報告更新プログラム"))
	c.println("")

	now := c.now()
	year, err := c.askYear(now.Year())
	if err != nil {
		return req, err
	}
	month, err := c.askMonth(int(now.Month()))
	if err != nil {
		return req, err
	}
	loc, err := c.askLocation()
	if err != nil {
		return req, err
	}

	req.Period = model.Period{Year: year, Month: month}
	req.Location = loc

	c.println("")
	c.println(titleStyle.Render(fmt.Sprintf("活動報告%s - %d年%d月", loc.Label(), year, month)))
	c.println("")
	c.println(fmt.Sprintf("活動日と場所を最大%d回入力してください", c.maxDays))

	req.Days = c.askDays()
	return req, nil
}

func (c *Collector) askYear(current int) (int, error) {
	for {
		s, err := c.readLine(fmt.Sprintf("活動年を入力（%d年で続行する場合はEnter）: ", current))
		if err != nil {
			return 0, err
		}
		if s == "" {
			return current, nil
		}
		year, err := strconv.Atoi(s)
		if err != nil || year < minYear || year > maxYear {
			c.fail("有効な年を入力してください。")
			continue
		}
		return year, nil
	}
}

func (c *Collector) askMonth(current int) (int, error) {
	for {
		s, err := c.readLine(fmt.Sprintf("活動月を入力（%d月で続行する場合はEnter）: ", current))
		if err != nil {
			return 0, err
		}
		if s == "" {
			return current, nil
		}
		month, err := strconv.Atoi(s)
		if err != nil {
			c.fail("有効な月を入力してください。")
			continue
		}
		if month < 1 || month > 12 {
			c.fail("1から12の間で入力してください。")
			continue
		}
		return month, nil
	}
}

func (c *Collector) askLocation() (model.Location, error) {
	choices := make([]string, len(c.locations))
	quoted := make([]string, len(c.locations))
	for i, l := range c.locations {
		choices[i] = fmt.Sprintf("%s: %s", l.Code, l.Name)
		quoted[i] = fmt.Sprintf("'%s'（%s）", l.Code, l.Name)
	}
	question := fmt.Sprintf("活動場所を入力してください（%s）: ", strings.Join(choices, ", "))
	hint := strings.Join(quoted, "または") + "を入力してください。"

	for {
		s, err := c.readLine(question)
		if err != nil {
			return model.Location{}, err
		}
		if loc, ok := model.FindLocation(c.locations, strings.ToLower(s)); ok {
			return loc, nil
		}
		c.fail(hint)
	}
}

// askDays 活動日と教室の組を集める。空入力か入力終了で打ち切る。
func (c *Collector) askDays() []model.DayInput {
	days := make([]model.DayInput, 0, c.maxDays)
	for len(days) < c.maxDays {
		n := len(days) + 1
		s, err := c.readLine(fmt.Sprintf("活動日 %d %s: ", n, hintStyle.Render("(例: 15、終了するにはEnter)")))
		if err != nil || s == "" {
			break
		}
		day, err := strconv.Atoi(s)
		if err != nil {
			c.fail("有効な日を入力してください。")
			continue
		}
		if day < 1 || day > 31 {
			c.fail("1から31の間の日を入力してください。")
			continue
		}

		room, err := c.readLine(fmt.Sprintf("活動場所 %d %s: ", n, hintStyle.Render("(例: 02-264)")))
		days = append(days, model.DayInput{Day: day, Room: room})
		if err != nil {
			break
		}
	}
	return days
}

// readLine 1行読む。前後の空白は除く。何も読めずに終わった場合は ErrInputClosed。
func (c *Collector) readLine(question string) (string, error) {
	fmt.Fprint(c.out, question)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		fmt.Fprintln(c.out)
		return "", fmt.Errorf("%w: %v", ErrInputClosed, err)
	}
	return strings.TrimSpace(line), nil
}

func (c *Collector) fail(msg string) {
	fmt.Fprintln(c.out, errorStyle.Render("エラー: "+msg))
}

func (c *Collector) println(s string) {
	fmt.Fprintln(c.out, s)
}
