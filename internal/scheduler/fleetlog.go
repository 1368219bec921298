// Package scheduler runs the periodic fleet status logger. It is strictly
// read-only: the override tag is enforced by an external scheduler, never
// from this process.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gatmbarz123/ec2-manager/internal/allowlist"
	"github.com/gatmbarz123/ec2-manager/internal/override"
	"github.com/gatmbarz123/ec2-manager/internal/provider/awsec2"
)

// Fleet is the describe-only slice of the provider client.
type Fleet interface {
	DescribeFleet(ctx context.Context, ids []string) ([]awsec2.Observation, error)
}

type FleetLogger struct {
	cron  *cron.Cron
	allow *allowlist.List
	fleet Fleet
}

func NewFleetLogger(allow *allowlist.List, fleet Fleet) *FleetLogger {
	return &FleetLogger{
		cron:  cron.New(),
		allow: allow,
		fleet: fleet,
	}
}

// Schedule registers the periodic snapshot job. spec uses the cron package's
// syntax, e.g. "@every 15m".
func (f *FleetLogger) Schedule(spec string) error {
	_, err := f.cron.AddFunc(spec, f.logOnce)
	return err
}

func (f *FleetLogger) Start() {
	f.cron.Start()
}

func (f *FleetLogger) Stop() {
	f.cron.Stop()
}

func (f *FleetLogger) logOnce() {
	ids := f.allow.RealIDs()
	if len(ids) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	obs, err := f.fleet.DescribeFleet(ctx, ids)
	if err != nil {
		log.Printf("[FleetLog] describe failed: %v", err)
		return
	}

	for _, o := range obs {
		if until, ok := o.Tags[override.TagKey]; ok {
			log.Printf("[FleetLog] %s state=%s override-until=%s", o.ID, o.State, until)
		} else {
			log.Printf("[FleetLog] %s state=%s", o.ID, o.State)
		}
	}
}
