package model

import (
	"time"
)

// PracticeSession 一次练习场次，包含若干训练记录和当时的环境快照
// swagger:model PracticeSession
type PracticeSession struct {
	UUIDBase
	UserID uint      `gorm:"index;type:bigint unsigned" json:"-"`
	Date   time.Time `gorm:"index;not null" json:"date"`
	Notes  string    `gorm:"type:text" json:"notes"`

	// 天气快照（记录时抓取，可全部为空）
	Temperature        *float64 `json:"temperature"`
	WeatherCondition   *string  `gorm:"size:50" json:"weatherCondition"`
	WeatherDescription *string  `gorm:"size:100" json:"weatherDescription"`
	Humidity           *float64 `json:"humidity"`
	FeelsLike          *float64 `json:"feelsLikeTemperature"`
	WindSpeed          *float64 `json:"windSpeed"`
	WindDirection      *float64 `json:"windDirectionDegrees"`
	WindDirectionText  *string  `gorm:"size:20" json:"windDirectionText"`

	// 位置快照
	LocationName     *string  `gorm:"size:100" json:"locationName"`
	CourseType       *string  `gorm:"size:50" json:"courseType"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	CourseName       *string  `gorm:"size:100" json:"courseName"`
	DistanceToCourse *float64 `json:"distanceToCourse"`

	// 训练记录归属于唯一的场次
	Drills []Drill `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"drills"`
}

func (PracticeSession) TableName() string {
	return "practice_sessions"
}
