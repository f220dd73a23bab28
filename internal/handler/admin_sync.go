package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/logger"
	"github.com/wilsonmoraes/starships-backend/internal/worker"
)

// SyncQueue accepts sync jobs without blocking
type SyncQueue interface {
	TryEnqueue(job worker.Job) bool
}

// StatusStore reads the checkpoint and catalog sizes
type StatusStore interface {
	GetCheckpoint(ctx context.Context, entityType string) (*domain.SyncCheckpoint, error)
	CountStarships(ctx context.Context) (int64, error)
	CountLinks(ctx context.Context) (int64, error)
}

// TriggerSyncRequest is the body of POST /admin/sync
type TriggerSyncRequest struct {
	EntityType string `json:"entity_type" validate:"required,entity_type"`
}

// SyncStatusResponse describes the checkpoint and the mirror's size
type SyncStatusResponse struct {
	EntityType  string     `json:"entity_type"`
	Running     bool       `json:"running"`
	LastSynced  *time.Time `json:"last_synced,omitempty"`
	NeverSynced bool       `json:"never_synced"`
	Starships   int64      `json:"starships"`
	Links       int64      `json:"manufacturer_links"`
}

// AdminSyncHandler exposes the manual trigger and the checkpoint status
type AdminSyncHandler struct {
	queue  SyncQueue
	syncer worker.Syncer
	store  StatusStore
}

// NewAdminSyncHandler creates a new AdminSyncHandler
func NewAdminSyncHandler(queue SyncQueue, syncer worker.Syncer, store StatusStore) *AdminSyncHandler {
	return &AdminSyncHandler{queue: queue, syncer: syncer, store: store}
}

// HandleTriggerSync queues a reconciliation run, or runs it inline with ?wait=true
// POST /api/v1/admin/sync
// @Summary Trigger a sync
// @Description Queues a reconciliation of the remote catalog. The run happens in the background; its outcome is only logged. With wait=true the run happens inside the request and its result is returned.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body TriggerSyncRequest false "Entity type (defaults to starships)"
// @Param wait query bool false "Run synchronously"
// @Success 200 {object} reconcile.Result
// @Success 202 {object} SuccessResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/sync [post]
func (h *AdminSyncHandler) HandleTriggerSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	req := TriggerSyncRequest{EntityType: domain.EntityTypeStarships}
	if err := DecodeAndValidateRequest(r, w, &req, "Trigger sync"); err != nil {
		return
	}

	if r.URL.Query().Get("wait") == "true" {
		h.runInline(w, r)
		return
	}

	if !h.queue.TryEnqueue(worker.NewSyncJob(h.syncer, worker.TriggerAdmin)) {
		log.Info("Manual sync rejected: queue full", "entity_type", req.EntityType)
		respondError(w, http.StatusConflict, ErrMsgSyncAlreadyQueued)
		return
	}

	log.Info("Manual sync queued", "entity_type", req.EntityType)
	respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgSyncQueued})
}

func (h *AdminSyncHandler) runInline(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Info("Manual sync running inline")

	// A disconnecting client must not abort a run mid-flight
	res, err := h.syncer.Sync(context.WithoutCancel(r.Context()))
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		log.Warn("Manual sync failed", "error", err, "status", status)
		respondError(w, status, msg)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleSyncStatus returns the checkpoint row and catalog counts
// GET /api/v1/admin/sync/status
// @Summary Sync status
// @Description Returns the sync checkpoint for starships and the size of the local mirror
// @Tags admin
// @Produce json
// @Success 200 {object} SyncStatusResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/sync/status [get]
func (h *AdminSyncHandler) HandleSyncStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	cp, err := h.store.GetCheckpoint(ctx, domain.EntityTypeStarships)
	if err != nil {
		log.Error("Failed to get sync checkpoint", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGetStatusFailed)
		return
	}
	ships, err := h.store.CountStarships(ctx)
	if err != nil {
		log.Error("Failed to count starships", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGetStatusFailed)
		return
	}
	links, err := h.store.CountLinks(ctx)
	if err != nil {
		log.Error("Failed to count manufacturer links", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGetStatusFailed)
		return
	}

	resp := SyncStatusResponse{
		EntityType:  domain.EntityTypeStarships,
		NeverSynced: cp == nil || cp.LastSynced == nil,
		Starships:   ships,
		Links:       links,
	}
	if cp != nil {
		resp.Running = cp.Running
		resp.LastSynced = cp.LastSynced
	}
	respondJSON(w, http.StatusOK, resp)
}
