package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gatmbarz123/ec2-manager/internal/allowlist"
	"github.com/gatmbarz123/ec2-manager/internal/monitor"
	"github.com/gatmbarz123/ec2-manager/internal/override"
	"github.com/gatmbarz123/ec2-manager/internal/provider/awsec2"
	"github.com/gatmbarz123/ec2-manager/internal/types"
)

// Provider is the instance-control surface the handlers need. Implemented
// by *awsec2.Client; tests inject fakes.
type Provider interface {
	DescribeFleet(ctx context.Context, ids []string) ([]awsec2.Observation, error)
	Start(ctx context.Context, id string) error
	Stop(ctx context.Context, id string) error
	SetOverride(ctx context.Context, id, until string) error
	ClearOverride(ctx context.Context, id string) error
}

// Handlers composes the allow-list and the shared provider client. It holds
// no mutable per-request state.
type Handlers struct {
	allow    *allowlist.List
	provider Provider
	metrics  *Metrics
	now      func() time.Time
}

// NewHandlers wires the request handlers. provider may be nil when AWS
// configuration failed at startup; the list endpoint then degrades to
// simulated data and start/stop report a generic server error.
func NewHandlers(allow *allowlist.List, provider Provider) *Handlers {
	return &Handlers{
		allow:    allow,
		provider: provider,
		metrics:  NewMetrics(),
		now:      time.Now,
	}
}

func (h *Handlers) Metrics() *Metrics {
	return h.metrics
}

// RequestIDMiddleware tags every request so server-side log lines can be
// correlated with a client-reported failure.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (h *Handlers) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.metrics.RecordRequest()
		c.Next()

		if c.Writer.Status() >= 400 {
			h.metrics.RecordError()
		} else {
			h.metrics.RecordSuccess()
		}
	}
}

func (h *Handlers) writeError(c *gin.Context, appErr *AppError) {
	if appErr.Err != nil {
		log.Printf("[%s] %v", c.GetString("request_id"), appErr)
	}

	c.Header("X-Error-Code", strconv.Itoa(int(appErr.Code)))
	c.JSON(appErr.HTTPStatus, gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}

// ListInstances reports the whole allow-list. Provider failures never reach
// the client: the fleet is reported as stopped instead.
func (h *Handlers) ListInstances(c *gin.Context) {
	realIDs := h.allow.RealIDs()
	results := make([]types.InstanceStatus, 0, len(h.allow.Entries()))

	observed := false
	if h.provider != nil && len(realIDs) > 0 {
		obs, err := h.provider.DescribeFleet(c.Request.Context(), realIDs)
		if err != nil {
			log.Printf("[%s] AWS error, serving simulated fleet state: %v", c.GetString("request_id"), err)
			h.metrics.RecordListDegraded()
		} else {
			observed = true
			for _, o := range obs {
				entry := h.allow.Lookup(o.ID)
				name := entry.Name
				if tagName, ok := o.Tags["Name"]; ok {
					name = tagName
				}
				var ov *string
				if v, ok := o.Tags[override.TagKey]; ok {
					ov = &v
				}
				results = append(results, types.InstanceStatus{
					ID:       o.ID,
					Name:     name,
					Country:  entry.Country,
					State:    o.State,
					Override: ov,
				})
			}
		}
	}

	if !observed {
		for _, id := range realIDs {
			entry := h.allow.Lookup(id)
			results = append(results, types.InstanceStatus{
				ID:      id,
				Name:    entry.Name,
				Country: entry.Country,
				State:   types.StateStopped,
			})
		}
	}

	// Simulated entries are never sent to the provider.
	for _, entry := range h.allow.Entries() {
		if entry.Simulated {
			results = append(results, types.InstanceStatus{
				ID:      entry.ID,
				Name:    entry.Name,
				Country: entry.Country,
				State:   types.StateStopped,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return h.allow.Rank(results[i].ID) < h.allow.Rank(results[j].ID)
	})

	c.JSON(200, types.ListResponse{Instances: results})
}

// StartInstance starts an allow-listed instance and writes the
// scheduler-override tag. Validation errors surface as-is; anything the
// provider throws afterwards becomes a generic 500.
func (h *Handlers) StartInstance(c *gin.Context) {
	id := c.Param("id")
	if err := h.allow.Validate(id); err != nil {
		h.writeError(c, ErrNotAllowed(id))
		return
	}

	var req types.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(c, ErrInvalidJSON(err))
		return
	}

	hours := override.DefaultHours
	if req.Hours != nil {
		hours = *req.Hours
	}
	if err := override.ValidateHours(hours); err != nil {
		h.writeError(c, ErrInvalidHours(err.Error()))
		return
	}

	if h.provider == nil {
		h.writeError(c, ErrStartFailed(errors.New("provider client not configured")))
		return
	}

	ctx := c.Request.Context()
	if err := h.provider.Start(ctx, id); err != nil {
		h.writeError(c, ErrStartFailed(err))
		return
	}

	until := override.Expiry(h.now(), hours)
	if err := h.provider.SetOverride(ctx, id, until); err != nil {
		h.writeError(c, ErrStartFailed(err))
		return
	}

	h.metrics.RecordStart()
	c.JSON(200, types.ActionResponse{
		Status:        "success",
		Message:       fmt.Sprintf("Started %s with %dh override (until %s UTC)", id, hours, until),
		InstanceID:    id,
		OverrideUntil: until,
	})
}

// StopInstance stops an allow-listed instance and clears the
// scheduler-override tag. The tag delete is by key; a missing tag is fine.
func (h *Handlers) StopInstance(c *gin.Context) {
	id := c.Param("id")
	if err := h.allow.Validate(id); err != nil {
		h.writeError(c, ErrNotAllowed(id))
		return
	}

	if h.provider == nil {
		h.writeError(c, ErrStopFailed(errors.New("provider client not configured")))
		return
	}

	ctx := c.Request.Context()
	if err := h.provider.Stop(ctx, id); err != nil {
		h.writeError(c, ErrStopFailed(err))
		return
	}
	if err := h.provider.ClearOverride(ctx, id); err != nil {
		h.writeError(c, ErrStopFailed(err))
		return
	}

	h.metrics.RecordStop()
	c.JSON(200, types.ActionResponse{
		Status:     "success",
		Message:    fmt.Sprintf("Stopped %s and removed override tag", id),
		InstanceID: id,
	})
}

func (h *Handlers) GetHealth(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if stats, err := monitor.GetHostStats(); err == nil {
		resp["host"] = stats
	} else {
		log.Printf("host stats unavailable: %v", err)
	}
	c.JSON(200, resp)
}

func (h *Handlers) GetMetrics(c *gin.Context) {
	c.JSON(200, h.metrics.Snapshot())
}
