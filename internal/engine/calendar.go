package engine

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-lunarcal/internal/config"
	"github.com/tartampluch/go-lunarcal/internal/i18n"
	"github.com/tartampluch/go-lunarcal/internal/julian"
	"github.com/tartampluch/go-lunarcal/internal/lunar"
)

// uidSpace is the UUID namespace of every event UID.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.UIDNamespace))

// Calendar renders a report as an iCalendar object: an all-day event on the
// query date carrying the lunar date, and one timed event for each bounding
// solar term. UIDs depend only on the dates, so re-renders replace events.
//
// Dates are proleptic Gregorian, as iCalendar requires, so queries read in
// the Julian calendar land on their Gregorian day. Years before 1 cannot be
// written and are rejected.
func (g *Generator) Calendar(rep Report, tr *i18n.Translator) ([]byte, error) {
	res := rep.Result
	date := julian.Time(res.JulianDay).In(ChinaStandardTime)
	for _, t := range []time.Time{date, res.SectionalTerm.Time(), res.MidTerm.Time()} {
		if t.Year() < 1 {
			return nil, fmt.Errorf("%s: %d", config.ErrICalYear, t.Year())
		}
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, tr.Msg(config.TKeyCalName, nil))
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(g.Clock.Now().UTC())

	day := ical.NewEvent()
	day.Props.SetText(config.PropUID, eventUID(fmt.Sprintf(config.FormatUIDDate, date.Year(), int(date.Month()), date.Day())))
	day.Props.SetText(config.PropSummary, tr.Msg(config.TKeyEvtLunarDate, map[string]any{
		"Year":  res.LunarYear.Name(),
		"Month": res.LunarMonth,
		"Day":   res.LunarDay,
	}))
	day.Props.SetText(config.PropDescription, tr.Msg(config.TKeyEvtLunarDesc, map[string]any{
		"Year":  res.YearGanZhi.Name(),
		"Month": res.MonthGanZhi.Name(),
		"Day":   res.DayGanZhi.Name(),
		"Hour":  res.HourGanZhi.Name(),
	}))
	day.Props.SetText(config.PropCategories, config.CategoryLunarDate)
	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC))
	day.Props.Set(dtStartProp)

	events := []*ical.Event{
		day,
		termEvent(res.SectionalTerm, tr),
		termEvent(res.MidTerm, tr),
	}
	for _, e := range events {
		e.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, e.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

func termEvent(term lunar.SolarTerm, tr *i18n.Translator) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, eventUID(fmt.Sprintf(config.FormatUIDTerm, term.Name, term.Year, term.Month, term.Day)))
	event.Props.SetText(config.PropSummary, tr.Msg(config.TKeyEvtSolarTerm, map[string]any{"Name": term.Name}))
	event.Props.SetText(config.PropCategories, config.CategorySolarTerm)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDateTime(term.Time().Truncate(time.Second))
	event.Props.Set(dtStartProp)
	return event
}

func eventUID(name string) string {
	return uuid.NewSHA1(uidSpace, []byte(name)).String()
}
