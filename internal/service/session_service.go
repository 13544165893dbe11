package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golf_practice_backend/internal/model"
	"golf_practice_backend/internal/repository"

	"github.com/go-redis/redis/v8"
)

const statsCacheTTL = 5 * time.Minute

type SessionService struct {
	Sessions *repository.SessionRepository
	Redis    *redis.Client
}

func NewSessionService(sessions *repository.SessionRepository, rdb *redis.Client) *SessionService {
	return &SessionService{Sessions: sessions, Redis: rdb}
}

type CreateDrillReq struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category" binding:"required"`
	MaxScore    *int       `json:"maxScore"`
	ActualScore *int       `json:"actualScore"`
	IsCompleted *bool      `json:"isCompleted"`
	Notes       *string    `json:"notes"`
	CompletedAt *time.Time `json:"completedAt"`
}

type CreateSessionReq struct {
	Date  time.Time `json:"date" binding:"required"`
	Notes string    `json:"notes"`

	Temperature        *float64 `json:"temperature"`
	WeatherCondition   *string  `json:"weatherCondition"`
	WeatherDescription *string  `json:"weatherDescription"`
	Humidity           *float64 `json:"humidity"`
	FeelsLike          *float64 `json:"feelsLikeTemperature"`
	WindSpeed          *float64 `json:"windSpeed"`
	WindDirection      *float64 `json:"windDirectionDegrees"`
	WindDirectionText  *string  `json:"windDirectionText"`
	LocationName       *string  `json:"locationName"`
	CourseType         *string  `json:"courseType"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	CourseName         *string  `json:"courseName"`
	DistanceToCourse   *float64 `json:"distanceToCourse"`

	Drills []CreateDrillReq `json:"drills"`
}

func (s *SessionService) Create(userID uint, req CreateSessionReq) (*model.PracticeSession, error) {
	session := &model.PracticeSession{
		UserID:             userID,
		Date:               req.Date,
		Notes:              req.Notes,
		Temperature:        req.Temperature,
		WeatherCondition:   req.WeatherCondition,
		WeatherDescription: req.WeatherDescription,
		Humidity:           req.Humidity,
		FeelsLike:          req.FeelsLike,
		WindSpeed:          req.WindSpeed,
		WindDirection:      req.WindDirection,
		WindDirectionText:  req.WindDirectionText,
		LocationName:       req.LocationName,
		CourseType:         req.CourseType,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		CourseName:         req.CourseName,
		DistanceToCourse:   req.DistanceToCourse,
	}

	for _, dReq := range req.Drills {
		category, ok := model.CategoryFromDisplayName(dReq.Category)
		if !ok {
			return nil, errors.New("unknown drill category: " + dReq.Category)
		}

		drill := model.Drill{
			Name:        dReq.Name,
			Description: dReq.Description,
			Category:    category,
			MaxScore:    dReq.MaxScore,
			ActualScore: dReq.ActualScore,
			IsCompleted: dReq.IsCompleted,
			Notes:       dReq.Notes,
		}
		if drill.Description == "" {
			drill.Description = drill.Name
		}
		if dReq.MaxScore != nil || dReq.ActualScore != nil {
			drill.ScoringType = model.ScoringScored
		} else {
			drill.ScoringType = model.ScoringCompletion
		}
		if dReq.CompletedAt != nil {
			drill.CompletedAt = *dReq.CompletedAt
		} else {
			drill.CompletedAt = req.Date
		}

		session.Drills = append(session.Drills, drill)
	}

	if err := s.Sessions.Create(session); err != nil {
		return nil, err
	}

	s.InvalidateStats(context.Background(), userID)
	return session, nil
}

func (s *SessionService) List(userID uint, page, limit int) ([]model.PracticeSession, int64, error) {
	return s.Sessions.ListPage(userID, page, limit)
}

func (s *SessionService) Get(userID uint, id string) (*model.PracticeSession, error) {
	return s.Sessions.FindByID(userID, id)
}

func (s *SessionService) Delete(userID uint, id string) error {
	if err := s.Sessions.Delete(userID, id); err != nil {
		return err
	}
	s.InvalidateStats(context.Background(), userID)
	return nil
}

type CategoryStats struct {
	Drills             int     `json:"drills"`
	AverageSuccessRate float64 `json:"averageSuccessRate"`
}

type PracticeStats struct {
	TotalSessions      int                      `json:"totalSessions"`
	TotalDrills        int                      `json:"totalDrills"`
	AverageSuccessRate float64                  `json:"averageSuccessRate"`
	ByCategory         map[string]CategoryStats `json:"byCategory"`
}

func statsCacheKey(userID uint) string {
	return fmt.Sprintf("golf:stats:%d", userID)
}

// GetStats 汇总统计，redis 缓存 5 分钟，写操作和导入时失效
func (s *SessionService) GetStats(ctx context.Context, userID uint) (*PracticeStats, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, statsCacheKey(userID)).Result(); err == nil {
			var stats PracticeStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	sessions, err := s.Sessions.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &PracticeStats{
		TotalSessions: len(sessions),
		ByCategory:    make(map[string]CategoryStats),
	}

	var rateSum float64
	for i := range sessions {
		for j := range sessions[i].Drills {
			d := &sessions[i].Drills[j]
			rate := d.SuccessRate()
			rateSum += rate
			stats.TotalDrills++

			cs := stats.ByCategory[string(d.Category)]
			cs.AverageSuccessRate = (cs.AverageSuccessRate*float64(cs.Drills) + rate) / float64(cs.Drills+1)
			cs.Drills++
			stats.ByCategory[string(d.Category)] = cs
		}
	}
	if stats.TotalDrills > 0 {
		stats.AverageSuccessRate = rateSum / float64(stats.TotalDrills)
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.Redis.Set(ctx, statsCacheKey(userID), payload, statsCacheTTL)
		}
	}

	return stats, nil
}

func (s *SessionService) InvalidateStats(ctx context.Context, userID uint) {
	if s.Redis != nil {
		s.Redis.Del(ctx, statsCacheKey(userID))
	}
}
