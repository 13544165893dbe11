package model

import (
	"strings"
	"time"
)

type DrillCategory string

const (
	CategoryPutting  DrillCategory = "putting"
	CategoryChipping DrillCategory = "chipping"
	CategoryPitching DrillCategory = "pitching"
	CategoryIrons    DrillCategory = "irons"
	CategoryDriver   DrillCategory = "driver"
)

// DisplayName 导出/导入时使用的展示名
func (c DrillCategory) DisplayName() string {
	switch c {
	case CategoryPutting:
		return "Putting"
	case CategoryChipping:
		return "Chipping"
	case CategoryPitching:
		return "Pitching"
	case CategoryIrons:
		return "Irons"
	case CategoryDriver:
		return "Driver"
	}
	return string(c)
}

var categoryByDisplayName = map[string]DrillCategory{
	"putting":  CategoryPutting,
	"chipping": CategoryChipping,
	"pitching": CategoryPitching,
	"irons":    CategoryIrons,
	"driver":   CategoryDriver,
}

// CategoryFromDisplayName 按展示名查找类别，大小写不敏感
func CategoryFromDisplayName(name string) (DrillCategory, bool) {
	c, ok := categoryByDisplayName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

type ScoringType string

const (
	ScoringScored     ScoringType = "scored"
	ScoringCompletion ScoringType = "completion"
)

// Drill 场次内的一条训练记录，计分制和完成制二选一
// swagger:model Drill
type Drill struct {
	UUIDBase
	SessionID   string        `gorm:"index;type:varchar(36)" json:"-"`
	Name        string        `gorm:"size:100;not null" json:"name"`
	Description string        `gorm:"size:255" json:"description"`
	Category    DrillCategory `gorm:"type:enum('putting','chipping','pitching','irons','driver')" json:"category"`
	ScoringType ScoringType   `gorm:"type:enum('scored','completion');default:'scored'" json:"scoringType"`
	MaxScore    *int          `json:"maxScore"`    // 仅计分制
	ActualScore *int          `json:"actualScore"` // 仅计分制
	IsCompleted *bool         `json:"isCompleted"` // 仅完成制
	Notes       *string       `gorm:"type:text" json:"notes"`
	CompletedAt time.Time     `json:"completedAt"`
}

func (Drill) TableName() string {
	return "drills"
}

// SuccessRate 成功率 [0,1]：计分制取 actual/max 并截断，完成制取 0/1
func (d *Drill) SuccessRate() float64 {
	switch d.ScoringType {
	case ScoringScored:
		if d.MaxScore != nil && *d.MaxScore > 0 && d.ActualScore != nil {
			rate := float64(*d.ActualScore) / float64(*d.MaxScore)
			if rate < 0 {
				return 0
			}
			if rate > 1 {
				return 1
			}
			return rate
		}
	case ScoringCompletion:
		if d.IsCompleted != nil && *d.IsCompleted {
			return 1
		}
	}
	return 0
}
