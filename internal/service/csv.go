package service

import (
	"strings"
	"time"
)

// 扩展格式的列顺序，与导出文件严格一致
const (
	colSessionDate = iota
	colSessionNotes
	colTemperature
	colWeatherCondition
	colWeatherDescription
	colHumidity
	colFeelsLike
	colWindSpeed
	colWindDirection
	colWindDirectionText
	colLocationName
	colLocationType
	colLatitude
	colLongitude
	colDrillName
	colDrillDescription
	colCategory
	colMaxScore
	colActualScore
	colSuccessRate
	colDrillNotes
	colCompletedAt
	columnCount
)

// 旧版导出格式只有 10 列（无天气和位置字段）
const legacyColumnCount = 10

var csvColumns = []string{
	"Session Date",
	"Session Notes",
	"Temperature",
	"Weather Condition",
	"Weather Description",
	"Humidity",
	"Feels Like",
	"Wind Speed",
	"Wind Direction",
	"Wind Direction Text",
	"Location Name",
	"Location Type",
	"Location Latitude",
	"Location Longitude",
	"Drill Name",
	"Drill Description",
	"Category",
	"Max Score",
	"Actual Score",
	"Success Rate",
	"Drill Notes",
	"Completed At",
}

// parseCSVLine 拆分单行 CSV。引号内的逗号不算分隔符，"" 还原为一个引号，
// 引号不配对时尽力而为，不报错（与导入整体的宽容策略一致）
func parseCSVLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// quoteField 导出时所有值都加引号，内部引号翻倍转义
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// normalizeRow 把一行字段映射到规范的 22 列布局。
// 字段数达到 22 按扩展格式处理，10~21 按旧版 10 列格式处理，再少则丢弃（返回 nil）
func normalizeRow(fields []string) []string {
	switch {
	case len(fields) >= columnCount:
		return fields[:columnCount]
	case len(fields) >= legacyColumnCount:
		row := make([]string, columnCount)
		row[colSessionDate] = fields[0]
		row[colSessionNotes] = fields[1]
		row[colDrillName] = fields[2]
		row[colDrillDescription] = fields[3]
		row[colCategory] = fields[4]
		row[colMaxScore] = fields[5]
		row[colActualScore] = fields[6]
		row[colSuccessRate] = fields[7]
		row[colDrillNotes] = fields[8]
		row[colCompletedAt] = fields[9]
		return row
	}
	return nil
}

// exportDateLayout 中等日期+短时间格式，导入端必须能原样解析（往返要求）
const exportDateLayout = "Jan 2, 2006 at 3:04 PM"

// importDateLayouts 依次尝试，首个成功者生效。顺序不能调整：
// 形如 "2024-01-15" 的串可被多个格式解析
var importDateLayouts = []string{
	exportDateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
}

func formatExportDate(t time.Time) string {
	return t.Format(exportDateLayout)
}

func parseFlexibleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
