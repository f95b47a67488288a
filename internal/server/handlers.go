package server

import (
	"encoding/json"
	"net/http"

	"github.com/quartetlab/quartet/internal/application"
	"github.com/quartetlab/quartet/internal/domain"
)

// scoreRequest is the questionnaire submission payload. Answers accept
// either a JSON array or a stringified array, because the survey tool
// sends embedded data as strings.
type scoreRequest struct {
	ParticipantID string          `json:"participantId"`
	Answers       json.RawMessage `json:"answers"`
}

func (req scoreRequest) answerVector() ([]int, error) {
	var answers []int
	if err := json.Unmarshal(req.Answers, &answers); err == nil {
		return answers, nil
	}

	var embedded string
	if err := json.Unmarshal(req.Answers, &embedded); err == nil {
		if err := json.Unmarshal([]byte(embedded), &answers); err == nil {
			return answers, nil
		}
	}

	ve := domain.NewValidationError("score request")
	ve.AddError("answers must be an array of integers or a stringified array")
	return nil, ve
}

func (s *Server) handleScoreBig5(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	answers, err := req.answerVector()
	if err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := s.study.ScoreQuestionnaire(r.Context(), req.ParticipantID, answers)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Long-form keys for direct embedded-data mapping in the survey.
	writeJSON(w, http.StatusOK, map[string]any{
		"traits": map[string]int{
			"trait_openness":          profile.Openness,
			"trait_conscientiousness": profile.Conscientiousness,
			"trait_extraversion":      profile.Extraversion,
			"trait_agreeableness":     profile.Agreeableness,
			"trait_neuroticism":       profile.Neuroticism,
		},
	})
}

// generateTaskRequest triggers the four-condition fan-out. Trait fields
// are optional: when all five are present they override the stored
// profile for this request.
type generateTaskRequest struct {
	ParticipantID string `json:"participantId"`
	TaskID        string `json:"taskId"`
	Style         string `json:"style"`
	TaskPrompt    string `json:"taskPrompt"`

	Openness          *int `json:"trait_openness"`
	Conscientiousness *int `json:"trait_conscientiousness"`
	Extraversion      *int `json:"trait_extraversion"`
	Agreeableness     *int `json:"trait_agreeableness"`
	Neuroticism       *int `json:"trait_neuroticism"`
}

func (req generateTaskRequest) inlineProfile() *domain.TraitProfile {
	if req.Openness == nil || req.Conscientiousness == nil || req.Extraversion == nil ||
		req.Agreeableness == nil || req.Neuroticism == nil {
		return nil
	}
	return &domain.TraitProfile{
		Openness:          *req.Openness,
		Conscientiousness: *req.Conscientiousness,
		Extraversion:      *req.Extraversion,
		Agreeableness:     *req.Agreeableness,
		Neuroticism:       *req.Neuroticism,
	}
}

func (s *Server) handleGenerateTask(w http.ResponseWriter, r *http.Request) {
	var req generateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	results, err := s.engine.GenerateFour(r.Context(), application.GenerateRequest{
		ParticipantID: req.ParticipantID,
		TaskID:        req.TaskID,
		Style:         req.Style,
		TaskPrompt:    req.TaskPrompt,
		Profile:       req.inlineProfile(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.study.RecordGenerations(r.Context(), req.ParticipantID, req.TaskID, req.TaskPrompt, results[:]); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"responses": results[:]})
}

// slotRating is one rating as submitted by the survey.
type slotRating struct {
	Condition        domain.Condition `json:"condition"`
	ResponseID       string           `json:"responseId"`
	Usefulness       int              `json:"usefulness"`
	Novelty          int              `json:"novelty"`
	Slot             int              `json:"slot"`
	GenerationTimeMs int64            `json:"generationTimeMs"`
}

type submitRatingsRequest struct {
	ParticipantID  string       `json:"participantId"`
	TaskID         string       `json:"taskId"`
	TaskIdxInBlock int          `json:"taskIdxInBlock"`
	Ratings        []slotRating `json:"ratings"`
}

func (s *Server) handleSubmitRatings(w http.ResponseWriter, r *http.Request) {
	var req submitRatingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	batch := make([]domain.Rating, 0, len(req.Ratings))
	for _, sr := range req.Ratings {
		batch = append(batch, domain.Rating{
			ParticipantID: req.ParticipantID,
			TaskID:        req.TaskID,
			Condition:     sr.Condition,
			ResponseID:    sr.ResponseID,
			Usefulness:    sr.Usefulness,
			Novelty:       sr.Novelty,
			Slot:          sr.Slot,
		})
	}

	ordered, err := s.study.SubmitRatings(r.Context(), batch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Echo back in slot order, shaped for embedded-data capture.
	genMs := make(map[string]int64, len(req.Ratings))
	for _, sr := range req.Ratings {
		genMs[sr.ResponseID] = sr.GenerationTimeMs
	}
	conditions := make([]domain.Condition, len(ordered))
	respIDs := make([]string, len(ordered))
	usefulness := make([]int, len(ordered))
	novelty := make([]int, len(ordered))
	latencies := make([]int64, len(ordered))
	for i, rating := range ordered {
		conditions[i] = rating.Condition
		respIDs[i] = rating.ResponseID
		usefulness[i] = rating.Usefulness
		novelty[i] = rating.Novelty
		latencies[i] = genMs[rating.ResponseID]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"participantId":  req.ParticipantID,
		"taskId":         req.TaskID,
		"taskIdxInBlock": req.TaskIdxInBlock,
		"ConditionSlot":  conditions,
		"RespId":         respIDs,
		"Usefulness":     usefulness,
		"Novelty":        novelty,
		"GenMs":          latencies,
	})
}
