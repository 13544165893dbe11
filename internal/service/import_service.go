package service

import (
	"strings"
	"time"

	"golf_practice_backend/internal/model"
	"golf_practice_backend/internal/util"
)

// SessionStore 导入流水线依赖的存取接口，由用户作用域的仓储适配器实现，
// 测试中用内存假实现替换
type SessionStore interface {
	ListAll() ([]model.PracticeSession, error)
	Add(*model.PracticeSession) error
}

// ImportService 解析 CSV 导出文件并合并进存储。行级错误累积进结果，
// 只有空文件和无法识别的表头会让整个调用失败。
// 同一存储上不可并发执行两次导入：查重依赖导入前的一致性快照
type ImportService struct{}

func NewImportService() *ImportService {
	return &ImportService{}
}

type groupKey struct {
	dateText string
	notes    string
}

func (s *ImportService) Import(store SessionStore, data []byte) (*model.ImportResult, error) {
	lines := splitNonBlankLines(string(data))
	if len(lines) == 0 {
		return nil, model.NewImportError(model.ImportErrEmptyFile, "file contains no data")
	}

	// 宽松的表头校验：大小写不敏感地包含关键列名即可，
	// 这样旧版 10 列和扩展 22 列两种格式都能通过
	header := strings.ToLower(lines[0])
	if !strings.Contains(header, "session date") ||
		!strings.Contains(header, "drill name") ||
		!strings.Contains(header, "category") {
		return nil, model.NewImportError(model.ImportErrInvalidHeader, "unrecognized header line: %q", lines[0])
	}

	// 按（原始日期文本，备注文本）分组，同组行还原为同一场次
	groups := make(map[groupKey][][]string)
	var order []groupKey
	for _, line := range lines[1:] {
		row := normalizeRow(parseCSVLine(line))
		if row == nil {
			// 字段太少的行按约定直接丢弃，不记错误
			continue
		}
		key := groupKey{dateText: row[colSessionDate], notes: row[colSessionNotes]}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	// 查重快照在处理任何分组之前取一次
	existing, err := store.ListAll()
	if err != nil {
		return nil, err
	}

	result := &model.ImportResult{}
	var pending []*model.PracticeSession

	for _, key := range order {
		rows := groups[key]

		date, ok := parseFlexibleDate(key.dateText)
		if !ok {
			result.Errors = append(result.Errors,
				*model.NewImportError(model.ImportErrInvalidDateFormat, "unparseable session date %q", key.dateText))
			continue
		}

		if hasDuplicate(existing, date, key.notes) {
			result.DuplicatesSkipped++
			continue
		}

		session := buildSession(date, key.notes, rows[0])
		for _, row := range rows {
			if row[colDrillName] == "" {
				continue
			}
			drill, ierr := buildDrill(row)
			if ierr != nil {
				result.Errors = append(result.Errors, *ierr)
				continue
			}
			session.Drills = append(session.Drills, *drill)
			result.DrillsImported++
		}

		// 训练记录全部失败时场次本身仍然保留
		pending = append(pending, session)
		result.SessionsImported++
	}

	for _, session := range pending {
		if err := store.Add(session); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func splitNonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// hasDuplicate 查重规则刻意粗粒度：同一自然日（不比对具体时刻）且备注完全相同
// 即视为重复，训练内容不参与比较
func hasDuplicate(existing []model.PracticeSession, date time.Time, notes string) bool {
	for i := range existing {
		if sameCalendarDay(existing[i].Date, date) && existing[i].Notes == notes {
			return true
		}
	}
	return false
}

func sameCalendarDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// buildSession 天气和位置字段只取分组首行，后续行的差异值静默忽略
func buildSession(date time.Time, notes string, first []string) *model.PracticeSession {
	return &model.PracticeSession{
		Date:               date,
		Notes:              notes,
		Temperature:        util.ParseFloatField(first[colTemperature]),
		WeatherCondition:   util.StringField(first[colWeatherCondition]),
		WeatherDescription: util.StringField(first[colWeatherDescription]),
		Humidity:           util.ParseFloatField(first[colHumidity]),
		FeelsLike:          util.ParseFloatField(first[colFeelsLike]),
		WindSpeed:          util.ParseFloatField(first[colWindSpeed]),
		WindDirection:      util.ParseFloatField(first[colWindDirection]),
		WindDirectionText:  util.StringField(first[colWindDirectionText]),
		LocationName:       util.StringField(first[colLocationName]),
		CourseType:         util.StringField(first[colLocationType]),
		Latitude:           util.ParseFloatField(first[colLatitude]),
		Longitude:          util.ParseFloatField(first[colLongitude]),
	}
}

func buildDrill(row []string) (*model.Drill, *model.ImportError) {
	category, ok := model.CategoryFromDisplayName(row[colCategory])
	if !ok {
		return nil, model.NewImportError(model.ImportErrUnknownCategory,
			"unknown drill category %q for drill %q", row[colCategory], row[colDrillName])
	}

	drill := &model.Drill{
		Name:     row[colDrillName],
		Category: category,
		Notes:    util.StringField(row[colDrillNotes]),
	}

	drill.Description = row[colDrillDescription]
	if drill.Description == "" {
		drill.Description = drill.Name
	}

	// 计分方式按列内容推断：分数列能解析出整数就是计分制，否则按完成制处理
	maxScore := util.ParseIntField(strings.TrimSpace(row[colMaxScore]))
	actualScore := util.ParseIntField(strings.TrimSpace(row[colActualScore]))
	if maxScore != nil || actualScore != nil {
		drill.ScoringType = model.ScoringScored
		drill.MaxScore = maxScore
		drill.ActualScore = actualScore
	} else {
		drill.ScoringType = model.ScoringCompletion
		sr := strings.TrimSpace(row[colSuccessRate])
		completed := sr != "" && sr != "0%"
		drill.IsCompleted = &completed
	}

	if t, ok := parseFlexibleDate(row[colCompletedAt]); ok {
		drill.CompletedAt = t
	} else {
		drill.CompletedAt = time.Now()
	}

	return drill, nil
}
