package hours

import (
	"fmt"
	"time"

	"gitee.com/flycash/case-notification/internal/errs"
)

// Gate 判断某时刻是否处于允许外呼的时间窗口内。
// 窗口左闭右开：到达 startHour 即开放，到达 endHour 即关闭。
type Gate struct {
	startHour int
	endHour   int
	loc       *time.Location
}

func NewGate(startHour, endHour int, loc *time.Location) (*Gate, error) {
	if startHour < 0 || startHour > 23 || endHour < 0 || endHour > 24 || startHour >= endHour {
		return nil, fmt.Errorf("%w: 时间窗口 [%d, %d) 非法", errs.ErrInvalidParameter, startHour, endHour)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Gate{startHour: startHour, endHour: endHour, loc: loc}, nil
}

// InHours t 是否处于窗口内
func (g *Gate) InHours(t time.Time) bool {
	h := t.In(g.loc).Hour()
	return h >= g.startHour && h < g.endHour
}

// NextInHours 返回不早于 t 的最近窗口内时刻。
// t 已在窗口内则原样返回。
func (g *Gate) NextInHours(t time.Time) time.Time {
	if g.InHours(t) {
		return t
	}
	lt := t.In(g.loc)
	next := time.Date(lt.Year(), lt.Month(), lt.Day(), g.startHour, 0, 0, 0, g.loc)
	if !next.After(lt) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
