package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golf_practice_backend/internal/model"
	"golf_practice_backend/internal/util"
)

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ExportService 把练习场次序列化为 CSV 或 JSON。无共享状态，可并发调用
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

func (s *ExportService) Export(sessions []model.PracticeSession, format ExportFormat) ([]byte, error) {
	switch format {
	case FormatCSV:
		return s.exportCSV(sessions), nil
	case FormatJSON:
		return s.exportJSON(sessions)
	}
	return nil, util.ErrUnsupportedFormat
}

// Filename 形如 golf_practice_data_2024-01-15_09-30.csv，同一分钟内不保证唯一
func (s *ExportService) Filename(format ExportFormat) string {
	return fmt.Sprintf("golf_practice_data_%s.%s", time.Now().Format("2006-01-02_15-04"), format)
}

func (s *ExportService) ContentType(format ExportFormat) string {
	if format == FormatJSON {
		return util.MimeJSON
	}
	return util.MimeCSV
}

func (s *ExportService) exportCSV(sessions []model.PracticeSession) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(csvColumns, ","))
	b.WriteString("\n")

	for i := range sessions {
		session := &sessions[i]
		base := sessionFields(session)

		if len(session.Drills) == 0 {
			// 没有训练记录的场次也导出一行，训练字段留空
			writeCSVRow(&b, append(base, make([]string, columnCount-colDrillName)...))
			continue
		}

		for j := range session.Drills {
			writeCSVRow(&b, append(base, drillFields(&session.Drills[j])...))
		}
	}

	return []byte(b.String())
}

func writeCSVRow(b *strings.Builder, fields []string) {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quoteField(f)
	}
	b.WriteString(strings.Join(quoted, ","))
	b.WriteString("\n")
}

// sessionFields 场次级别的前 14 列，每行训练记录上重复
func sessionFields(s *model.PracticeSession) []string {
	return []string{
		formatExportDate(s.Date),
		s.Notes,
		floatField(s.Temperature),
		strField(s.WeatherCondition),
		strField(s.WeatherDescription),
		floatField(s.Humidity),
		floatField(s.FeelsLike),
		floatField(s.WindSpeed),
		floatField(s.WindDirection),
		strField(s.WindDirectionText),
		strField(s.LocationName),
		strField(s.CourseType),
		floatField(s.Latitude),
		floatField(s.Longitude),
	}
}

func drillFields(d *model.Drill) []string {
	return []string{
		d.Name,
		d.Description,
		d.Category.DisplayName(),
		intField(d.MaxScore),
		intField(d.ActualScore),
		successRateField(d),
		strField(d.Notes),
		formatExportDate(d.CompletedAt),
	}
}

// successRateField 计分制输出 "80.0%" 形式，完成制输出 "100%"/"0%"，无法判定则留空
func successRateField(d *model.Drill) string {
	switch d.ScoringType {
	case model.ScoringScored:
		if d.MaxScore != nil && *d.MaxScore > 0 && d.ActualScore != nil {
			return fmt.Sprintf("%.1f%%", d.SuccessRate()*100)
		}
	case model.ScoringCompletion:
		if d.IsCompleted == nil {
			return ""
		}
		if *d.IsCompleted {
			return "100%"
		}
		return "0%"
	}
	return ""
}

func floatField(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func intField(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func strField(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// JSON 导出的载体类型。字段按 json key 字母序声明，保证输出键序稳定可比对
type exportDrill struct {
	ActualScore *int      `json:"actualScore"`
	Category    string    `json:"category"`
	CompletedAt time.Time `json:"completedAt"`
	Description *string   `json:"description"`
	ID          string    `json:"id"`
	IsCompleted *bool     `json:"isCompleted"`
	MaxScore    *int      `json:"maxScore"`
	Name        string    `json:"name"`
	Notes       *string   `json:"notes"`
}

type exportSession struct {
	CourseName           *string       `json:"courseName"`
	CourseType           *string       `json:"courseType"`
	Date                 time.Time     `json:"date"`
	DistanceToCourse     *float64      `json:"distanceToCourse"`
	Drills               []exportDrill `json:"drills"`
	FeelsLikeTemperature *float64      `json:"feelsLikeTemperature"`
	Humidity             *float64      `json:"humidity"`
	ID                   string        `json:"id"`
	Latitude             *float64      `json:"latitude"`
	LocationName         *string       `json:"locationName"`
	Longitude            *float64      `json:"longitude"`
	Notes                *string       `json:"notes"`
	Temperature          *float64      `json:"temperature"`
	WeatherCondition     *string       `json:"weatherCondition"`
	WeatherDescription   *string       `json:"weatherDescription"`
	WindDirectionDegrees *float64      `json:"windDirectionDegrees"`
	WindDirectionText    *string       `json:"windDirectionText"`
	WindSpeed            *float64      `json:"windSpeed"`
}

type exportContainer struct {
	ExportDate    time.Time       `json:"exportDate"`
	Sessions      []exportSession `json:"sessions"`
	TotalDrills   int             `json:"totalDrills"`
	TotalSessions int             `json:"totalSessions"`
	Version       string          `json:"version"`
}

func (s *ExportService) exportJSON(sessions []model.PracticeSession) ([]byte, error) {
	out := exportContainer{
		ExportDate:    time.Now(),
		Sessions:      make([]exportSession, 0, len(sessions)),
		TotalSessions: len(sessions),
		Version:       "1.0",
	}

	for i := range sessions {
		session := &sessions[i]
		es := exportSession{
			CourseName:           session.CourseName,
			CourseType:           session.CourseType,
			Date:                 session.Date,
			DistanceToCourse:     session.DistanceToCourse,
			Drills:               make([]exportDrill, 0, len(session.Drills)),
			FeelsLikeTemperature: session.FeelsLike,
			Humidity:             session.Humidity,
			ID:                   session.ID,
			Latitude:             session.Latitude,
			LocationName:         session.LocationName,
			Longitude:            session.Longitude,
			Notes:                util.StringField(session.Notes),
			Temperature:          session.Temperature,
			WeatherCondition:     session.WeatherCondition,
			WeatherDescription:   session.WeatherDescription,
			WindDirectionDegrees: session.WindDirection,
			WindDirectionText:    session.WindDirectionText,
			WindSpeed:            session.WindSpeed,
		}

		for j := range session.Drills {
			d := &session.Drills[j]
			es.Drills = append(es.Drills, exportDrill{
				ActualScore: d.ActualScore,
				Category:    string(d.Category),
				CompletedAt: d.CompletedAt,
				Description: util.StringField(d.Description),
				ID:          d.ID,
				IsCompleted: d.IsCompleted,
				MaxScore:    d.MaxScore,
				Name:        d.Name,
				Notes:       d.Notes,
			})
			out.TotalDrills++
		}

		out.Sessions = append(out.Sessions, es)
	}

	return json.MarshalIndent(out, "", "  ")
}
