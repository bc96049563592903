package lunar

// MonthNames are the lunar month names without the trailing 月, indexed by number-1.
var MonthNames = [12]string{"正", "二", "三", "四", "五", "六", "七", "八", "九", "十", "冬", "腊"}

// DayNames are the lunar day ordinals, indexed by day-1.
var DayNames = [30]string{
	"初一", "初二", "初三", "初四", "初五", "初六", "初七", "初八", "初九", "初十",
	"十一", "十二", "十三", "十四", "十五", "十六", "十七", "十八", "十九", "二十",
	"廿一", "廿二", "廿三", "廿四", "廿五", "廿六", "廿七", "廿八", "廿九", "三十",
}

// SolarTermNames are the 24 solar terms starting at 大雪 (solar longitude
// 255°). Even indexes are 节, odd indexes are 中气.
var SolarTermNames = [24]string{
	"大雪", "冬至", "小寒", "大寒", "立春", "雨水",
	"惊蛰", "春分", "清明", "谷雨", "立夏", "小满",
	"芒种", "夏至", "小暑", "大暑", "立秋", "处暑",
	"白露", "秋分", "寒露", "霜降", "立冬", "小雪",
}

// MonthName renders a month number with its leap marker, e.g. "闰四月".
func MonthName(number int, leap bool) string {
	name := MonthNames[number-1] + "月"
	if leap {
		return "闰" + name
	}
	return name
}
