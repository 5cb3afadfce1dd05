package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/chatscope/pkg/digest"
	"github.com/umputun/chatscope/pkg/domain"
	"github.com/umputun/chatscope/pkg/repository"
)

// profileRec is the API representation of a stored profile
type profileRec struct {
	ID        int64               `json:"id,omitempty"`
	Name      string              `json:"name"`
	Level     domain.ProfileLevel `json:"level"`
	SourceID  *int64              `json:"source_id,omitempty"`
	SenderID  *int64              `json:"sender_id,omitempty"`
	Priority  int                 `json:"priority"`
	Enabled   bool                `json:"enabled"`
	Rules     domain.Rules        `json:"rules"`
	CreatedAt time.Time           `json:"created_at,omitempty"`
	UpdatedAt time.Time           `json:"updated_at,omitempty"`
}

func toProfileRec(p *domain.Profile) profileRec {
	return profileRec{
		ID:        p.ID,
		Name:      p.Name,
		Level:     p.Level,
		SourceID:  p.SourceID,
		SenderID:  p.SenderID,
		Priority:  p.Priority,
		Enabled:   p.Enabled,
		Rules:     p.Rules,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (rec *profileRec) toDomain() domain.Profile {
	return domain.Profile{
		ID:       rec.ID,
		Name:     rec.Name,
		Level:    rec.Level,
		SourceID: rec.SourceID,
		SenderID: rec.SenderID,
		Priority: rec.Priority,
		Enabled:  rec.Enabled,
		Rules:    rec.Rules,
	}
}

func (rec *profileRec) validate() error {
	if rec.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	switch rec.Level {
	case domain.LevelChannel:
		if rec.SourceID == nil {
			return fmt.Errorf("channel profile requires source_id")
		}
	case domain.LevelUser:
		if rec.SenderID == nil {
			return fmt.Errorf("user profile requires sender_id")
		}
	case domain.LevelProfile, domain.LevelGlobal:
	default:
		return fmt.Errorf("unknown profile level %q", rec.Level)
	}
	for _, sched := range rec.Rules.Digests {
		if !sched.Type.Valid() {
			return fmt.Errorf("unknown digest schedule %q", sched.Type)
		}
	}
	return nil
}

// statusHandler returns server status with degradation flags
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	if s.dedup != nil {
		status["dedup_degraded"] = s.dedup.Degraded()
	}
	if s.recompute != nil {
		status["feedback_degraded"] = s.recompute.Degraded()
	}
	renderJSON(w, r, http.StatusOK, status)
}

// listProfilesHandler returns all profiles, ?enabled=true filters
func (s *Server) listProfilesHandler(w http.ResponseWriter, r *http.Request) {
	enabledOnly := r.URL.Query().Get("enabled") == "true"

	profiles, err := s.profiles.GetProfiles(r.Context(), enabledOnly)
	if err != nil {
		lgr.Printf("[ERROR] failed to list profiles: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	recs := make([]profileRec, 0, len(profiles))
	for _, p := range profiles {
		recs = append(recs, toProfileRec(p))
	}
	renderJSON(w, r, http.StatusOK, recs)
}

// createProfileHandler stores a new profile
func (s *Server) createProfileHandler(w http.ResponseWriter, r *http.Request) {
	var rec profileRec
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		renderError(w, r, fmt.Errorf("invalid profile body"), http.StatusBadRequest)
		return
	}
	if err := rec.validate(); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	profile := rec.toDomain()
	if err := s.profiles.CreateProfile(r.Context(), &profile); err != nil {
		lgr.Printf("[ERROR] failed to create profile: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	// a new profile can change resolution for any context
	s.resolver.InvalidateAll()

	lgr.Printf("[INFO] created profile %d (%s, %s)", profile.ID, profile.Name, profile.Level)
	renderJSON(w, r, http.StatusCreated, toProfileRec(&profile))
}

// getProfileHandler returns one profile by id
func (s *Server) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid profile ID"), http.StatusBadRequest)
		return
	}

	profile, err := s.profiles.GetProfile(r.Context(), id)
	if errors.Is(err, repository.ErrProfileNotFound) {
		renderError(w, r, err, http.StatusNotFound)
		return
	}
	if err != nil {
		lgr.Printf("[ERROR] failed to get profile %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, toProfileRec(profile))
}

// updateProfileHandler replaces a profile's mutable fields
func (s *Server) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid profile ID"), http.StatusBadRequest)
		return
	}

	var rec profileRec
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		renderError(w, r, fmt.Errorf("invalid profile body"), http.StatusBadRequest)
		return
	}
	if err := rec.validate(); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	profile := rec.toDomain()
	profile.ID = id
	err = s.profiles.UpdateProfile(r.Context(), &profile)
	if errors.Is(err, repository.ErrProfileNotFound) {
		renderError(w, r, err, http.StatusNotFound)
		return
	}
	if err != nil {
		lgr.Printf("[ERROR] failed to update profile %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	s.resolver.Invalidate(id)
	lgr.Printf("[INFO] updated profile %d", id)
	renderJSON(w, r, http.StatusOK, toProfileRec(&profile))
}

// deleteProfileHandler removes a profile and drops its cached resolutions
func (s *Server) deleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid profile ID"), http.StatusBadRequest)
		return
	}

	err = s.profiles.DeleteProfile(r.Context(), id)
	if errors.Is(err, repository.ErrProfileNotFound) {
		renderError(w, r, err, http.StatusNotFound)
		return
	}
	if err != nil {
		lgr.Printf("[ERROR] failed to delete profile %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	s.resolver.Invalidate(id)
	lgr.Printf("[INFO] deleted profile %d", id)
	w.WriteHeader(http.StatusNoContent)
}

// effectiveProfileHandler resolves a (source, sender) context
func (s *Server) effectiveProfileHandler(w http.ResponseWriter, r *http.Request) {
	sourceID, err := strconv.ParseInt(r.URL.Query().Get("source"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid source"), http.StatusBadRequest)
		return
	}
	senderID, err := strconv.ParseInt(r.URL.Query().Get("sender"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid sender"), http.StatusBadRequest)
		return
	}

	profile := s.resolver.Resolve(r.Context(), sourceID, senderID)
	renderJSON(w, r, http.StatusOK, effectiveRec(profile))
}

// effectiveRec flattens the resolved profile for the API
func effectiveRec(p domain.EffectiveProfile) map[string]interface{} {
	vips := make([]int64, 0, len(p.VIPSenders))
	for id := range p.VIPSenders {
		vips = append(vips, id)
	}
	excluded := make([]int64, 0, len(p.ExcludedSenders))
	for id := range p.ExcludedSenders {
		excluded = append(excluded, id)
	}

	return map[string]interface{}{
		"keywords":            p.Keywords,
		"vip_senders":         vips,
		"excluded_senders":    excluded,
		"weights":             p.Weights,
		"min_score":           p.MinScore,
		"rate_limit_per_hour": p.RateLimitPerHour,
		"interests":           p.Interests,
		"notify_dm":           p.NotifyDM,
		"notify_channel":      p.NotifyChannel,
		"webhooks":            p.Webhooks,
		"digests":             p.Digests,
		"matched_profile_ids": p.MatchedProfileIDs,
		"warning_tags":        p.WarningTags,
	}
}

// messageRec is a normalized message submitted over the API
type messageRec struct {
	SourceID      int64     `json:"source_id"`
	MessageID     int64     `json:"message_id"`
	SenderID      int64     `json:"sender_id"`
	Text          string    `json:"text"`
	Timestamp     time.Time `json:"timestamp"`
	ReplyCount    int       `json:"reply_count"`
	ReactionCount int       `json:"reaction_count"`
	IsPinned      bool      `json:"is_pinned"`
	IsAdminPost   bool      `json:"is_admin_post"`
	HasLink       bool      `json:"has_link"`
	HasCodeBlock  bool      `json:"has_code_block"`
	HasDocument   bool      `json:"has_document"`
	HasPoll       bool      `json:"has_poll"`
}

func (rec *messageRec) toDomain() domain.Message {
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return domain.Message{
		SourceID:      rec.SourceID,
		MessageID:     rec.MessageID,
		SenderID:      rec.SenderID,
		Text:          rec.Text,
		Timestamp:     ts,
		ReplyCount:    rec.ReplyCount,
		ReactionCount: rec.ReactionCount,
		IsPinned:      rec.IsPinned,
		IsAdminPost:   rec.IsAdminPost,
		HasLink:       rec.HasLink,
		HasCodeBlock:  rec.HasCodeBlock,
		HasDocument:   rec.HasDocument,
		HasPoll:       rec.HasPoll,
	}
}

// ingestHandler accepts a message into the evaluation pipeline
func (s *Server) ingestHandler(w http.ResponseWriter, r *http.Request) {
	var rec messageRec
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		renderError(w, r, fmt.Errorf("invalid message body"), http.StatusBadRequest)
		return
	}
	if rec.SourceID == 0 || rec.MessageID == 0 {
		renderError(w, r, fmt.Errorf("source_id and message_id are required"), http.StatusBadRequest)
		return
	}

	if err := s.ingestor.Submit(r.Context(), rec.toDomain()); err != nil {
		lgr.Printf("[WARN] message %d:%d rejected: %v", rec.SourceID, rec.MessageID, err)
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// evaluateHandler scores a message without admission or delivery
func (s *Server) evaluateHandler(w http.ResponseWriter, r *http.Request) {
	var rec messageRec
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		renderError(w, r, fmt.Errorf("invalid message body"), http.StatusBadRequest)
		return
	}

	result := s.evaluator.Evaluate(r.Context(), rec.toDomain())

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"heuristic_score":     result.HeuristicScore,
		"semantic_score":      result.SemanticScore,
		"combined_score":      result.CombinedScore,
		"suppressed":          result.Suppressed(),
		"tags":                result.Tags,
		"matched_profile_ids": result.MatchedProfileIDs,
		"matched_interests":   result.MatchedInterests,
	})
}

// digestRec describes one digest schedule and its window state
type digestRec struct {
	Key       string    `json:"key"`
	ProfileID int64     `json:"profile_id"`
	Type      string    `json:"type"`
	LastRun   time.Time `json:"last_run,omitempty"`
	NextFire  time.Time `json:"next_fire"`
	Due       bool      `json:"due"`
}

// digestsDueHandler lists enabled digest schedules with window state
func (s *Server) digestsDueHandler(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profiles.GetProfiles(r.Context(), true)
	if err != nil {
		lgr.Printf("[ERROR] failed to get profiles for digest state: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	lastRuns, err := s.schedules.GetAllLastRuns(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get digest last runs: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	recs := []digestRec{}
	for _, p := range profiles {
		for _, sched := range p.Rules.Digests {
			if !sched.Enabled {
				continue
			}
			sched.ProfileID = p.ID
			key := sched.Key()
			recs = append(recs, digestRec{
				Key:       key,
				ProfileID: p.ID,
				Type:      string(sched.Type),
				LastRun:   lastRuns[key],
				NextFire:  digest.NextFire(sched, now),
				Due:       digest.IsDue(sched, lastRuns[key], now),
			})
		}
	}
	renderJSON(w, r, http.StatusOK, recs)
}

// deliveriesHandler returns recent delivery attempts, optionally scoped
// to one profile
func (s *Server) deliveriesHandler(w http.ResponseWriter, r *http.Request) {
	var profileID int64 // zero means all profiles
	if v := r.URL.Query().Get("profile"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			renderError(w, r, fmt.Errorf("invalid profile"), http.StatusBadRequest)
			return
		}
		profileID = id
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
			limit = v
		}
	}

	attempts, err := s.delivered.Recent(r.Context(), profileID, limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to get deliveries for profile %d: %v", profileID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, attempts)
}

// feedbackRequest is a user reaction to a delivered alert
type feedbackRequest struct {
	ProfileID int64  `json:"profile_id"`
	SourceID  int64  `json:"source_id"`
	MessageID int64  `json:"message_id"`
	Type      string `json:"type"`
	Text      string `json:"text"`
}

// feedbackHandler records feedback and schedules a profile recompute
func (s *Server) feedbackHandler(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid feedback body"), http.StatusBadRequest)
		return
	}

	fbType := domain.FeedbackType(req.Type)
	if !fbType.Valid() {
		renderError(w, r, fmt.Errorf("invalid feedback type %q", req.Type), http.StatusBadRequest)
		return
	}
	if req.ProfileID == 0 {
		renderError(w, r, fmt.Errorf("profile_id is required"), http.StatusBadRequest)
		return
	}

	fb := domain.Feedback{
		ProfileID: req.ProfileID,
		SourceID:  req.SourceID,
		MessageID: req.MessageID,
		Type:      fbType,
		Text:      req.Text,
	}
	if err := s.feedback.AddFeedback(r.Context(), &fb); err != nil {
		lgr.Printf("[ERROR] failed to store feedback: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	s.recompute.ScheduleRecompute(r.Context(), req.ProfileID)
	renderJSON(w, r, http.StatusCreated, map[string]interface{}{"id": fb.ID, "status": "accepted"})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
