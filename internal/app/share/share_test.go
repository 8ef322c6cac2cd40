package share

import (
	"errors"
	"testing"
	"time"

	"github.com/dailycheck-app/dailycheck/internal/domain"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.Local)
	logs := []domain.ActivityLog{
		{Date: "2025-03-18", Counts: map[domain.ActivityType]int{domain.ActContacts: 7}},
		{Date: "2025-02-10", Counts: map[domain.ActivityType]int{domain.ActContacts: 3}},
	}
	status := domain.CareerStatus{Level: "Consulente Junior"}
	unlocked := []domain.AchievementDef{{ID: "first_contact", Name: "Breaking the Ice", Icon: "🤝"}}

	summary := Build(logs, status, 4, unlocked, now, 16)
	if summary.MonthContacts != 7 {
		t.Fatalf("MonthContacts = %d, want 7 (older month excluded)", summary.MonthContacts)
	}
	if summary.Totals["contacts"] != 10 {
		t.Fatalf("total contacts = %d, want 10", summary.Totals["contacts"])
	}

	code, err := Encode(summary)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Level != "Consulente Junior" || got.CurrentStreak != 4 {
		t.Errorf("decoded = %+v", got)
	}
	if len(got.Achievements) != 1 || got.Achievements[0].ID != "first_contact" {
		t.Errorf("achievements = %+v", got.Achievements)
	}
}

func TestDecodeBadCode(t *testing.T) {
	cases := []struct {
		name string
		code string
	}{
		{"not base64", "!!not base64!!"},
		{"base64 of non-JSON", "bm90IGpzb24="},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.code)
			if !errors.Is(err, domain.ErrBadShareCode) {
				t.Fatalf("err = %v, want ErrBadShareCode", err)
			}
		})
	}
}
