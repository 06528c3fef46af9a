package analysis

import (
	"context"
	"fmt"
	"image"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hexlab/tacboard/internal/database"
	"github.com/hexlab/tacboard/internal/events"
	"github.com/hexlab/tacboard/internal/logging"
)

// FrameFunc produces the latest composited board image, or nil when no
// frame is available yet.
type FrameFunc func() image.Image

// Exporter periodically submits snapshots for analysis, publishes the
// resulting alerts on the event bus, and records them for the session.
type Exporter struct {
	client    *Client
	frame     FrameFunc
	bus       *events.Bus
	db        *database.DB
	sessionID int64
	interval  time.Duration
	log       *logging.Logger
}

// NewExporter wires an exporter; db may be nil when persistence is off.
func NewExporter(client *Client, frame FrameFunc, bus *events.Bus, db *database.DB, sessionID int64, interval time.Duration) *Exporter {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Exporter{
		client:    client,
		frame:     frame,
		bus:       bus,
		db:        db,
		sessionID: sessionID,
		interval:  interval,
		log:       logging.New("analysis"),
	}
}

// Run drives the pipeline until the context is cancelled. A producer
// goroutine samples frames on a ticker; a consumer submits them and fans
// results out to the bus and the database.
func (e *Exporter) Run(ctx context.Context) error {
	frames := make(chan image.Image, 1)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(frames)
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				img := e.frame()
				if img == nil {
					continue
				}
				select {
				case frames <- img:
				default:
					// Previous frame still in flight, skip this round.
				}
			}
		}
	})

	g.Go(func() error {
		for img := range frames {
			if err := e.submit(ctx, img); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				e.log.Warnf("analysis round failed: %v", err)
			}
		}
		return nil
	})

	err := g.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}

func (e *Exporter) submit(ctx context.Context, img image.Image) error {
	result, err := e.client.Analyze(ctx, img)
	if err != nil {
		return err
	}

	for _, a := range result.Alerts {
		e.bus.Publish(events.Event{
			Type:     events.TypeAlert,
			Message:  a.Message,
			Severity: a.Severity,
		})
		if e.db != nil {
			if err := e.db.RecordAnalysis(e.sessionID, a.Severity, a.Message); err != nil {
				e.log.Errorf("failed to record alert: %v", err)
			}
		}
	}

	e.bus.Publish(events.Event{
		Type:    events.TypeAnalysisDone,
		Message: fmt.Sprintf("%d alerts", len(result.Alerts)),
	})
	return nil
}
