package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	seaterrors "github.com/tablewright/seatplan/pkg/errors"
	"github.com/tablewright/seatplan/pkg/pipeline"
	"github.com/tablewright/seatplan/pkg/plan"
	"github.com/tablewright/seatplan/pkg/planfile"
	"github.com/tablewright/seatplan/pkg/store"
)

// createPlanRequest creates a session from a TOML configuration.
type createPlanRequest struct {
	Config string `json:"config"`
	Name   string `json:"name,omitempty"`
}

type planResponse struct {
	ID       string            `json:"id"`
	Document planfile.Document `json:"document"`
	Result   *plan.Result      `json:"result,omitempty"`
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, seaterrors.Wrap(seaterrors.ErrCodeConfigInvalid, err, "decode request"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		ConfigData: []byte(req.Config),
		PlanName:   req.Name,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	id := s.addSession(&session{
		plan:   result.Plan,
		guests: result.Document.Guests,
		name:   result.Document.Name,
	})
	s.logger.Info("created plan session", "id", id, "tables", result.Stats.TableCount)
	writeJSON(w, http.StatusCreated, planResponse{ID: id, Document: result.Document})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "planID"))
	if !ok {
		writeError(w, http.StatusNotFound, errPlanNotFound(chi.URLParam(r, "planID")))
		return
	}
	writeJSON(w, http.StatusOK, planResponse{
		ID:       chi.URLParam(r, "planID"),
		Document: planfile.FromPlan(sess.plan, sess.guests, sess.name),
	})
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "planID")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, errPlanNotFound(id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleViolations(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "planID"))
	if !ok {
		writeError(w, http.StatusNotFound, errPlanNotFound(chi.URLParam(r, "planID")))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"violations": sess.plan.Violations(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "planID"))
	if !ok {
		writeError(w, http.StatusNotFound, errPlanNotFound(chi.URLParam(r, "planID")))
		return
	}
	writeJSON(w, http.StatusOK, sess.plan.Stats())
}

// assignRequest seats, moves, or clears a guest. Simulate computes the
// violation report the assignment would produce without committing it.
type assignRequest struct {
	TableID  string `json:"table_id"`
	SeatID   string `json:"seat_id"`
	GuestID  string `json:"guest_id"`
	Simulate bool   `json:"simulate,omitempty"`
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "planID"))
	if !ok {
		writeError(w, http.StatusNotFound, errPlanNotFound(chi.URLParam(r, "planID")))
		return
	}
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, seaterrors.Wrap(seaterrors.ErrCodeConfigInvalid, err, "decode request"))
		return
	}

	if req.Simulate {
		violations, err := sess.plan.DetectViolationsAfterAssign(req.TableID, req.SeatID, req.GuestID)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"violations": violations})
		return
	}

	res := sess.plan.Assign(req.TableID, req.SeatID, req.GuestID)
	writeResult(w, res, sess.plan)
}

// swapRequest exchanges the occupants of two seats.
type swapRequest struct {
	TableA   string `json:"table_a"`
	SeatA    string `json:"seat_a"`
	TableB   string `json:"table_b"`
	SeatB    string `json:"seat_b"`
	Simulate bool   `json:"simulate,omitempty"`
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "planID"))
	if !ok {
		writeError(w, http.StatusNotFound, errPlanNotFound(chi.URLParam(r, "planID")))
		return
	}
	var req swapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, seaterrors.Wrap(seaterrors.ErrCodeConfigInvalid, err, "decode request"))
		return
	}

	if req.Simulate {
		violations, err := sess.plan.DetectViolationsAfterSwap(req.TableA, req.SeatA, req.TableB, req.SeatB)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"violations": violations})
		return
	}

	res := sess.plan.Swap(req.TableA, req.SeatA, req.TableB, req.SeatB)
	writeResult(w, res, sess.plan)
}

// lockRequest locks or unlocks one seat, or a whole table when SeatID is
// empty.
type lockRequest struct {
	TableID string `json:"table_id"`
	SeatID  string `json:"seat_id,omitempty"`
	Locked  bool   `json:"locked"`
}

func (s *Server) handleLock(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "planID"))
	if !ok {
		writeError(w, http.StatusNotFound, errPlanNotFound(chi.URLParam(r, "planID")))
		return
	}
	var req lockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, seaterrors.Wrap(seaterrors.ErrCodeConfigInvalid, err, "decode request"))
		return
	}

	var res plan.Result
	switch {
	case req.SeatID != "":
		res = sess.plan.SetLocked(req.TableID, req.SeatID, req.Locked)
	case req.Locked:
		res = sess.plan.LockAll(req.TableID)
	default:
		res = sess.plan.UnlockAll(req.TableID)
	}
	writeResult(w, res, sess.plan)
}

func (s *Server) handleAdjacent(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "planID"))
	if !ok {
		writeError(w, http.StatusNotFound, errPlanNotFound(chi.URLParam(r, "planID")))
		return
	}
	ids, err := sess.plan.AdjacentSeatIDs(chi.URLParam(r, "tableID"), chi.URLParam(r, "seatID"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"seat_ids": ids})
}

// saveRequest snapshots a session under a name in the plan store.
type saveRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented,
			seaterrors.New(seaterrors.ErrCodeUnsupported, "no plan store configured"))
		return
	}
	sess, ok := s.session(chi.URLParam(r, "planID"))
	if !ok {
		writeError(w, http.StatusNotFound, errPlanNotFound(chi.URLParam(r, "planID")))
		return
	}
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, seaterrors.Wrap(seaterrors.ErrCodeConfigInvalid, err, "decode request"))
		return
	}

	rec := &store.Record{
		Name:     req.Name,
		Document: planfile.FromPlan(sess.plan, sess.guests, req.Name),
		SavedAt:  time.Now().UTC(),
	}
	if err := s.store.Set(r.Context(), rec); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	s.logger.Info("saved plan", "name", req.Name)
	writeJSON(w, http.StatusOK, map[string]string{"name": req.Name})
}

func (s *Server) handleListSaved(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented,
			seaterrors.New(seaterrors.ErrCodeUnsupported, "no plan store configured"))
		return
	}
	names, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"names": names})
}

func (s *Server) handleLoadSaved(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented,
			seaterrors.New(seaterrors.ErrCodeUnsupported, "no plan store configured"))
		return
	}
	name := chi.URLParam(r, "name")
	rec, err := s.store.Get(r.Context(), name)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound,
			seaterrors.New(seaterrors.ErrCodePlanNotFound, "plan %s not saved", name))
		return
	}

	p, err := planfile.ToPlan(rec.Document)
	if err != nil {
		writeError(w, http.StatusInternalServerError,
			seaterrors.Wrap(seaterrors.ErrCodeStorage, err, "restore plan %s", name))
		return
	}
	id := s.addSession(&session{plan: p, guests: rec.Document.Guests, name: rec.Document.Name})
	s.logger.Info("loaded plan", "name", name, "id", id)
	writeJSON(w, http.StatusCreated, planResponse{ID: id, Document: rec.Document})
}

// writeResult maps a mutation result to 200 or 422 with the reasons. The
// current violation report rides along on success so clients can refresh
// without a second call.
func writeResult(w http.ResponseWriter, res plan.Result, p *plan.Plan) {
	if !res.OK {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"ok":      false,
			"reasons": res.Reasons,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"reasons":    res.Reasons,
		"violations": p.Violations(),
	})
}

func errPlanNotFound(id string) error {
	return seaterrors.New(seaterrors.ErrCodePlanNotFound, "plan session %s not found", id)
}
