package lunar

import (
	"math"

	"github.com/tartampluch/go-lunarcal/internal/ganzhi"
	"github.com/tartampluch/go-lunarcal/internal/rootfind"
)

const (
	// yearEpoch is a 甲子 year.
	yearEpoch = 1864

	// majorSnowLongitude is 大雪, the first 节 of the 子 month.
	majorSnowLongitude = 255.0
)

// yearLabel names year; the stem-branch year is counted from yearEpoch.
func yearLabel(year int) ganzhi.GanZhi {
	return ganzhi.JiaZi.Offset(year - yearEpoch)
}

// solarMonthIndex is the number of whole 30° steps since 大雪, in [0, 12).
func solarMonthIndex(sunLongitude float64) int {
	idx := int(math.Floor(rootfind.Norm360(sunLongitude-majorSnowLongitude) / 30))
	if idx > 11 {
		idx = 11
	}
	return idx
}

// fiveTigers gives the stem of the 寅 month for a year stem.
func fiveTigers(yearStem ganzhi.Stem) ganzhi.Stem {
	switch yearStem {
	case ganzhi.Jia, ganzhi.Ji:
		return ganzhi.Bing
	case ganzhi.Yi, ganzhi.Geng:
		return ganzhi.Wu
	case ganzhi.Bing, ganzhi.Xin:
		return ganzhi.Geng
	case ganzhi.Ding, ganzhi.Ren:
		return ganzhi.Ren
	default:
		return ganzhi.Jia
	}
}

func monthLabel(yearStem ganzhi.Stem, monthIndex int) ganzhi.GanZhi {
	branch := ganzhi.Rat.Offset(monthIndex)
	stem := fiveTigers(yearStem).Offset(branch.Difference(ganzhi.Tiger))
	return ganzhi.MustNew(stem, branch)
}

// fiveRats gives the 子 hour pair for a day stem.
func fiveRats(dayStem ganzhi.Stem) ganzhi.GanZhi {
	switch dayStem {
	case ganzhi.Jia, ganzhi.Ji:
		return ganzhi.JiaZi
	case ganzhi.Yi, ganzhi.Geng:
		return ganzhi.JiaZi.Offset(12)
	case ganzhi.Bing, ganzhi.Xin:
		return ganzhi.JiaZi.Offset(24)
	case ganzhi.Ding, ganzhi.Ren:
		return ganzhi.JiaZi.Offset(36)
	default:
		return ganzhi.JiaZi.Offset(48)
	}
}

// hourLabel keeps 23:00 at block 12, one full branch cycle past 00:00.
func hourLabel(dayStem ganzhi.Stem, hour int) ganzhi.GanZhi {
	return fiveRats(dayStem).Offset((hour + 1) / 2)
}

// dayLabelEpoch is the label of the day starting 2017-04-07 00:00 at UTC+8.
var dayLabelEpoch = ganzhi.JiaZi
