package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dailycheck-app/dailycheck/internal/app/career"
	"github.com/dailycheck-app/dailycheck/internal/app/engagement"
	"github.com/dailycheck-app/dailycheck/internal/app/period"
	"github.com/dailycheck-app/dailycheck/internal/app/share"
	"github.com/dailycheck-app/dailycheck/internal/app/tracker"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

// ─── Logs ───────────────────────────────────────────────────────────────────

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"logs": s.deps.Tracker.Logs(),
	})
}

func (s *Server) handleDayLog(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	log, err := s.deps.Tracker.DayLog(date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

type applyRequest struct {
	Updates []tracker.CountUpdate `json:"updates"`
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.deps.Tracker.Apply(r.Context(), req.Updates, chi.URLParam(r, "date"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDeleteRange(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, "start and end query parameters are required")
		return
	}

	removed, err := s.deps.Tracker.DeleteRange(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// ─── Progress & goals ───────────────────────────────────────────────────────

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	activity, err := domain.ParseActivity(chi.URLParam(r, "activity"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	progress := s.deps.Tracker.Progress(activity)
	goals := s.deps.Tracker.Goals()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activity": activity,
		"progress": progress,
		"targets": map[string]int{
			"daily":   goals.Target(domain.PeriodDaily, activity),
			"weekly":  goals.Target(domain.PeriodWeekly, activity),
			"monthly": goals.Target(domain.PeriodMonthly, activity),
		},
	})
}

func (s *Server) handleGetGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Tracker.Goals())
}

func (s *Server) handlePutGoals(w http.ResponseWriter, r *http.Request) {
	var goals domain.Goals
	if err := json.NewDecoder(r.Body).Decode(&goals); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.deps.Tracker.SetGoals(goals)
	if s.deps.SaveGoals != nil {
		if err := s.deps.SaveGoals(goals); err != nil {
			writeError(w, http.StatusInternalServerError, "goals applied but not persisted")
			return
		}
	}
	writeJSON(w, http.StatusOK, goals)
}

// ─── Achievements, career, earnings ─────────────────────────────────────────

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	unlocked, err := s.deps.Achievements.ListUnlocked()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	unlockedSet := make(map[string]domain.UnlockedAchievement, len(unlocked))
	for _, u := range unlocked {
		unlockedSet[u.ID] = u
	}

	type badge struct {
		domain.AchievementDef
		Unlocked   bool       `json:"unlocked"`
		UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	}
	out := make([]badge, 0, s.deps.Achievements.TotalCount())
	for _, def := range s.deps.Achievements.Definitions() {
		b := badge{AchievementDef: def}
		if u, ok := unlockedSet[def.ID]; ok {
			b.Unlocked = true
			at := u.UnlockedAt
			b.UnlockedAt = &at
		}
		out = append(out, b)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": out,
		"unlocked":     len(unlocked),
		"total":        s.deps.Achievements.TotalCount(),
	})
}

func (s *Server) handleCareer(w http.ResponseWriter, r *http.Request) {
	status := career.Status(s.deps.Tracker.Logs(), s.deps.QualificationOverride)
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleEarnings(w http.ResponseWriter, r *http.Request) {
	logs := s.deps.Tracker.Logs()
	now := time.Now()
	span := r.URL.Query().Get("period")
	if span == "" {
		span = "commercial_month"
	}

	pred, ok := s.periodPredicate(span, now)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown period: "+span)
		return
	}

	total := career.Earnings(logs, pred, s.deps.CommissionStatus, s.rates)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"period":            span,
		"commission_status": s.deps.CommissionStatus,
		"total_eur":         total.StringFixed(2),
	})
}

func (s *Server) periodPredicate(span string, now time.Time) (func(time.Time) bool, bool) {
	startDay := s.deps.Tracker.StartDay()
	switch span {
	case "day":
		today := domain.FormatDateKey(now)
		return func(d time.Time) bool { return domain.FormatDateKey(d) == today }, true
	case "week":
		return func(d time.Time) bool { return period.WeekID(d) == period.WeekID(now) }, true
	case "month":
		return func(d time.Time) bool { return period.MonthID(d) == period.MonthID(now) }, true
	case "commercial_month":
		return func(d time.Time) bool { return period.InCommercialMonth(d, now, startDay) }, true
	case "all":
		return func(time.Time) bool { return true }, true
	}
	return nil, false
}

// ─── Report ─────────────────────────────────────────────────────────────────

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	logs := s.deps.Tracker.Logs()
	goals := s.deps.Tracker.Goals()
	now := time.Now()
	startDay := s.deps.Tracker.StartDay()

	activities := make(map[string]interface{}, len(domain.AllActivities()))
	for _, a := range domain.AllActivities() {
		activities[string(a)] = tracker.ProgressForActivity(logs, a, now, startDay)
	}

	current, longest := engagement.StreakStats(logs, now)
	cmStart, cmEnd := period.CommercialMonthRange(now, startDay)
	earnings := career.Earnings(logs, func(d time.Time) bool {
		return period.InCommercialMonth(d, now, startDay)
	}, s.deps.CommissionStatus, s.rates)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":       domain.FormatDateKey(now),
		"activities": activities,
		"goals":      goals,
		"streak": map[string]int{
			"current": current,
			"longest": longest,
		},
		"career": career.Status(logs, s.deps.QualificationOverride),
		"commercial_month": map[string]interface{}{
			"start":          domain.FormatDateKey(cmStart),
			"end":            domain.FormatDateKey(cmEnd),
			"days_remaining": period.DaysUntilCommercialMonthEnd(now, startDay),
			"progress_pct":   period.CommercialMonthProgress(now, startDay),
			"earnings_eur":   earnings.StringFixed(2),
		},
	})
}

// ─── Leads ──────────────────────────────────────────────────────────────────

type captureLeadRequest struct {
	Date     string `json:"date"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Note     string `json:"note,omitempty"`
	Activity string `json:"activity"`
}

func (s *Server) handleCaptureLead(w http.ResponseWriter, r *http.Request) {
	var req captureLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "lead name is required")
		return
	}

	activity := domain.ActContacts
	if req.Activity != "" {
		a, err := domain.ParseActivity(req.Activity)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		activity = a
	}
	date := req.Date
	if date == "" {
		date = domain.FormatDateKey(time.Now())
	}

	result, err := s.deps.Tracker.CaptureLead(r.Context(), date, domain.Lead{
		Name:     req.Name,
		Phone:    req.Phone,
		Note:     req.Note,
		Activity: activity,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

type updateLeadRequest struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

func (s *Server) handleUpdateLead(w http.ResponseWriter, r *http.Request) {
	var req updateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := s.deps.Tracker.UpdateLeadStatus(r.Context(), req.Date, chi.URLParam(r, "id"), domain.LeadStatus(req.Status))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ─── Notifications ──────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	pending, err := s.deps.Notifications.Pending(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": pending,
	})
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.deps.Notifications.MarkShown(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "shown"})
}

// ─── Share codes ────────────────────────────────────────────────────────────

func (s *Server) handleShareExport(w http.ResponseWriter, r *http.Request) {
	logs := s.deps.Tracker.Logs()
	now := time.Now()

	unlocked, err := s.deps.Achievements.ListUnlocked()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defs := make(map[string]domain.AchievementDef)
	for _, def := range s.deps.Achievements.Definitions() {
		defs[def.ID] = def
	}
	var earned []domain.AchievementDef
	for _, u := range unlocked {
		if def, ok := defs[u.ID]; ok {
			earned = append(earned, def)
		}
	}

	current, _ := engagement.StreakStats(logs, now)
	status := career.Status(logs, s.deps.QualificationOverride)
	summary := share.Build(logs, status, current, earned, now, s.deps.Tracker.StartDay())

	code, err := share.Encode(summary)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

type shareDecodeRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleShareDecode(w http.ResponseWriter, r *http.Request) {
	var req shareDecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	summary, err := share.Decode(req.Code)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ─── Error mapping ──────────────────────────────────────────────────────────

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrLogNotFound), errors.Is(err, domain.ErrLeadNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrBadDateKey),
		errors.Is(err, domain.ErrEmptyUpdates),
		errors.Is(err, domain.ErrUnknownActivity),
		errors.Is(err, domain.ErrUnknownLeadStatus),
		errors.Is(err, domain.ErrBadShareCode):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
