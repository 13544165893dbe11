package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golf_practice_backend/internal/model"
)

// fakeStore 内存版 SessionStore，避免测试依赖数据库
type fakeStore struct {
	existing []model.PracticeSession
	added    []*model.PracticeSession
}

func (f *fakeStore) ListAll() ([]model.PracticeSession, error) {
	return f.existing, nil
}

func (f *fakeStore) Add(s *model.PracticeSession) error {
	f.added = append(f.added, s)
	return nil
}

const legacyHeader = "Session Date,Session Notes,Drill Name,Drill Description,Category,Max Score,Actual Score,Success Rate,Drill Notes,Completed At"

func importKind(t *testing.T, err error) model.ImportErrorKind {
	t.Helper()
	var ie *model.ImportError
	if !errors.As(err, &ie) {
		t.Fatalf("error %v is not an ImportError", err)
	}
	return ie.Kind
}

func TestImportEmptyFile(t *testing.T) {
	for _, data := range []string{"", "\n\n", "   \r\n"} {
		_, err := NewImportService().Import(&fakeStore{}, []byte(data))
		if err == nil {
			t.Fatalf("expected error for %q", data)
		}
		if kind := importKind(t, err); kind != model.ImportErrEmptyFile {
			t.Errorf("kind = %q, want empty file", kind)
		}
	}
}

func TestImportInvalidHeader(t *testing.T) {
	data := "Name,Email,Phone\nalice,a@b.c,123\n"
	_, err := NewImportService().Import(&fakeStore{}, []byte(data))
	if err == nil {
		t.Fatal("expected error")
	}
	if kind := importKind(t, err); kind != model.ImportErrInvalidHeader {
		t.Errorf("kind = %q, want invalid header", kind)
	}
}

func TestImportLegacyFormat(t *testing.T) {
	data := legacyHeader + "\n" +
		`"Jan 15, 2024 at 9:30 AM","Morning practice","Putting Drill","Short putts","Putting","10","8","80.0%","Good session","Jan 15, 2024 at 9:45 AM"` + "\n"

	store := &fakeStore{}
	result, err := NewImportService().Import(store, []byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if result.SessionsImported != 1 || result.DrillsImported != 1 {
		t.Fatalf("imported %d sessions / %d drills, want 1/1", result.SessionsImported, result.DrillsImported)
	}
	if result.DuplicatesSkipped != 0 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v", result)
	}
	if len(store.added) != 1 {
		t.Fatalf("store received %d sessions", len(store.added))
	}

	session := store.added[0]
	wantDate := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	if !session.Date.Equal(wantDate) {
		t.Errorf("date = %v, want %v", session.Date, wantDate)
	}
	if session.Notes != "Morning practice" {
		t.Errorf("notes = %q", session.Notes)
	}
	if session.Temperature != nil {
		t.Error("legacy format carries no weather data")
	}

	drill := session.Drills[0]
	if drill.Name != "Putting Drill" || drill.Category != model.CategoryPutting {
		t.Errorf("drill = %+v", drill)
	}
	if drill.ScoringType != model.ScoringScored {
		t.Errorf("scoring type = %q", drill.ScoringType)
	}
	if drill.MaxScore == nil || *drill.MaxScore != 10 || drill.ActualScore == nil || *drill.ActualScore != 8 {
		t.Errorf("scores = %v/%v", drill.MaxScore, drill.ActualScore)
	}
}

func TestImportGroupsRowsIntoOneSession(t *testing.T) {
	data := legacyHeader + "\n" +
		`"Jan 15, 2024 at 9:30 AM","Morning","Putting Drill","","Putting","10","8","80.0%","",""` + "\n" +
		`"Jan 15, 2024 at 9:30 AM","Morning","Chipping Drill","","Chipping","20","15","75.0%","",""` + "\n" +
		`"Jan 16, 2024 at 8:00 AM","Next day","Driver Drill","","Driver","5","4","80.0%","",""` + "\n"

	store := &fakeStore{}
	result, err := NewImportService().Import(store, []byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if result.SessionsImported != 2 || result.DrillsImported != 3 {
		t.Fatalf("imported %d sessions / %d drills, want 2/3", result.SessionsImported, result.DrillsImported)
	}
	if len(store.added) != 2 {
		t.Fatalf("store received %d sessions", len(store.added))
	}
	if len(store.added[0].Drills) != 2 {
		t.Errorf("first session has %d drills, want 2", len(store.added[0].Drills))
	}
	if len(store.added[1].Drills) != 1 {
		t.Errorf("second session has %d drills, want 1", len(store.added[1].Drills))
	}
}

func TestImportSkipsDuplicates(t *testing.T) {
	existing := model.PracticeSession{
		Date:  time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC), // 时刻不同，同一自然日
		Notes: "Morning",
	}
	data := legacyHeader + "\n" +
		`"Jan 15, 2024 at 9:30 AM","Morning","Putting Drill","","Putting","10","8","80.0%","",""` + "\n" +
		`"Jan 15, 2024 at 9:30 AM","Different notes","Putting Drill","","Putting","10","8","80.0%","",""` + "\n"

	store := &fakeStore{existing: []model.PracticeSession{existing}}
	result, err := NewImportService().Import(store, []byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if result.DuplicatesSkipped != 1 {
		t.Errorf("duplicates skipped = %d, want 1", result.DuplicatesSkipped)
	}
	if result.SessionsImported != 1 {
		t.Errorf("sessions imported = %d, want 1", result.SessionsImported)
	}
	if len(store.added) != 1 || store.added[0].Notes != "Different notes" {
		t.Fatalf("store contents wrong: %+v", store.added)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	data := legacyHeader + "\n" +
		`"Jan 15, 2024 at 9:30 AM","Morning","Putting Drill","","Putting","10","8","80.0%","",""` + "\n"

	store := &fakeStore{}
	if _, err := NewImportService().Import(store, []byte(data)); err != nil {
		t.Fatal(err)
	}

	// 第二轮导入把第一轮的结果当作已有数据
	for _, s := range store.added {
		store.existing = append(store.existing, *s)
	}
	store.added = nil

	result, err := NewImportService().Import(store, []byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if result.SessionsImported != 0 || result.DuplicatesSkipped != 1 {
		t.Errorf("result = %+v, want everything skipped", result)
	}
	if len(store.added) != 0 {
		t.Errorf("store received %d sessions on re-import", len(store.added))
	}
}

func TestImportUnknownCategoryKeepsSession(t *testing.T) {
	data := legacyHeader + "\n" +
		`"Jan 15, 2024 at 9:30 AM","Morning","Putting Drill","","Putting","10","8","80.0%","",""` + "\n" +
		`"Jan 15, 2024 at 9:30 AM","Morning","Mystery Drill","","Juggling","10","8","80.0%","",""` + "\n"

	store := &fakeStore{}
	result, err := NewImportService().Import(store, []byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if result.SessionsImported != 1 || result.DrillsImported != 1 {
		t.Fatalf("imported %d/%d, want 1 session 1 drill", result.SessionsImported, result.DrillsImported)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %+v", result.Errors)
	}
	if result.Errors[0].Kind != model.ImportErrUnknownCategory {
		t.Errorf("error kind = %q", result.Errors[0].Kind)
	}
	if !strings.Contains(result.Errors[0].Message, "Juggling") {
		t.Errorf("error message = %q", result.Errors[0].Message)
	}
	if len(store.added[0].Drills) != 1 {
		t.Errorf("session has %d drills, want 1", len(store.added[0].Drills))
	}
}

func TestImportBadDateSkipsGroupOnly(t *testing.T) {
	data := legacyHeader + "\n" +
		`"someday","Morning","Putting Drill","","Putting","10","8","80.0%","",""` + "\n" +
		`"Jan 16, 2024 at 8:00 AM","Next day","Driver Drill","","Driver","5","4","80.0%","",""` + "\n"

	store := &fakeStore{}
	result, err := NewImportService().Import(store, []byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if result.SessionsImported != 1 {
		t.Errorf("sessions imported = %d, want 1", result.SessionsImported)
	}
	if len(result.Errors) != 1 || result.Errors[0].Kind != model.ImportErrInvalidDateFormat {
		t.Errorf("errors = %+v", result.Errors)
	}
}

func TestImportSessionKeptWhenAllDrillsFail(t *testing.T) {
	data := legacyHeader + "\n" +
		`"Jan 15, 2024 at 9:30 AM","Morning","Mystery Drill","","Juggling","10","8","80.0%","",""` + "\n"

	store := &fakeStore{}
	result, err := NewImportService().Import(store, []byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if result.SessionsImported != 1 || result.DrillsImported != 0 {
		t.Errorf("result = %+v, want 1 session 0 drills", result)
	}
	if len(store.added) != 1 || len(store.added[0].Drills) != 0 {
		t.Errorf("store contents wrong: %+v", store.added)
	}
}

func TestImportCompletionDrill(t *testing.T) {
	tests := []struct {
		name        string
		successRate string
		completed   bool
	}{
		{"completed", "100%", true},
		{"not completed", "0%", false},
		{"blank rate means not completed", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := legacyHeader + "\n" +
				`"Jan 15, 2024 at 9:30 AM","Morning","Routine Drill","","Putting","","","` + tt.successRate + `","",""` + "\n"

			store := &fakeStore{}
			result, err := NewImportService().Import(store, []byte(data))
			if err != nil {
				t.Fatal(err)
			}
			if result.DrillsImported != 1 {
				t.Fatalf("result = %+v", result)
			}

			drill := store.added[0].Drills[0]
			if drill.ScoringType != model.ScoringCompletion {
				t.Fatalf("scoring type = %q", drill.ScoringType)
			}
			if drill.IsCompleted == nil || *drill.IsCompleted != tt.completed {
				t.Errorf("isCompleted = %v, want %v", drill.IsCompleted, tt.completed)
			}
		})
	}
}

func TestImportDescriptionDefaultsToName(t *testing.T) {
	data := legacyHeader + "\n" +
		`"Jan 15, 2024 at 9:30 AM","Morning","Lag Putts","","Putting","10","8","80.0%","",""` + "\n"

	store := &fakeStore{}
	if _, err := NewImportService().Import(store, []byte(data)); err != nil {
		t.Fatal(err)
	}
	if got := store.added[0].Drills[0].Description; got != "Lag Putts" {
		t.Errorf("description = %q, want drill name", got)
	}
}

func TestImportMissingCompletedAtFallsBackToNow(t *testing.T) {
	data := legacyHeader + "\n" +
		`"Jan 15, 2024 at 9:30 AM","Morning","Lag Putts","","Putting","10","8","80.0%","",""` + "\n"

	before := time.Now()
	store := &fakeStore{}
	if _, err := NewImportService().Import(store, []byte(data)); err != nil {
		t.Fatal(err)
	}
	completedAt := store.added[0].Drills[0].CompletedAt
	if completedAt.Before(before) || completedAt.After(time.Now()) {
		t.Errorf("completedAt = %v, expected current time", completedAt)
	}
}

func TestImportSkipsShortRows(t *testing.T) {
	data := legacyHeader + "\n" +
		"too,few,fields\n" +
		`"Jan 15, 2024 at 9:30 AM","Morning","Lag Putts","","Putting","10","8","80.0%","",""` + "\n"

	store := &fakeStore{}
	result, err := NewImportService().Import(store, []byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if result.SessionsImported != 1 || len(result.Errors) != 0 {
		t.Errorf("result = %+v, short row should be dropped silently", result)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	session := sampleSession()
	session.Drills = append(session.Drills, model.Drill{
		UUIDBase:    model.UUIDBase{ID: "d-2"},
		Name:        "Pre-shot Routine",
		Description: "Full routine on every ball",
		Category:    model.CategoryDriver,
		ScoringType: model.ScoringCompletion,
		IsCompleted: boolPtr(true),
		CompletedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	})

	out, err := NewExportService().Export([]model.PracticeSession{session}, FormatCSV)
	if err != nil {
		t.Fatal(err)
	}

	store := &fakeStore{}
	result, err := NewImportService().Import(store, out)
	if err != nil {
		t.Fatal(err)
	}

	if result.SessionsImported != 1 || result.DrillsImported != 2 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v", result)
	}

	got := store.added[0]
	if !got.Date.Equal(session.Date) {
		t.Errorf("date = %v, want %v", got.Date, session.Date)
	}
	if got.Notes != session.Notes {
		t.Errorf("notes = %q, want %q", got.Notes, session.Notes)
	}
	if got.Temperature == nil || *got.Temperature != *session.Temperature {
		t.Errorf("temperature = %v", got.Temperature)
	}

	scored := got.Drills[0]
	if scored.Name != "Putting Drill" || scored.ScoringType != model.ScoringScored {
		t.Errorf("scored drill = %+v", scored)
	}
	if scored.MaxScore == nil || *scored.MaxScore != 10 || scored.ActualScore == nil || *scored.ActualScore != 8 {
		t.Errorf("scored values = %v/%v", scored.MaxScore, scored.ActualScore)
	}

	completion := got.Drills[1]
	if completion.ScoringType != model.ScoringCompletion {
		t.Fatalf("completion drill = %+v", completion)
	}
	if completion.IsCompleted == nil || !*completion.IsCompleted {
		t.Errorf("isCompleted = %v, want true", completion.IsCompleted)
	}
	if completion.Description != "Full routine on every ball" {
		t.Errorf("description = %q", completion.Description)
	}
}
