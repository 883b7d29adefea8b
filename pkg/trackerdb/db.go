// Package trackerdb builds the canonical vulnerability database from a raw
// security tracker dump.
package trackerdb

import (
	"encoding/json"
	"io"
	"time"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"
	pb "gopkg.in/cheggaaa/pb.v1"
	"k8s.io/utils/clock"

	"github.com/ackama/tracker-db/pkg/db"
	"github.com/ackama/tracker-db/pkg/log"
	"github.com/ackama/tracker-db/pkg/metadata"
	"github.com/ackama/tracker-db/pkg/tracker"
)

// Builder converts one tracker dump into canonical records and persists them
// in a single batch, then stamps the DB metadata.
type Builder struct {
	dbc            db.Operation
	metadata       metadata.Client
	updateInterval time.Duration
	clock          clock.Clock
	logger         *log.Logger
	progress       bool
}

type Option func(*Builder)

func WithClock(c clock.Clock) Option {
	return func(b *Builder) {
		b.clock = c
	}
}

func WithDB(dbc db.Operation) Option {
	return func(b *Builder) {
		b.dbc = dbc
	}
}

func WithProgress(show bool) Option {
	return func(b *Builder) {
		b.progress = show
	}
}

func New(dbDir string, updateInterval time.Duration, opts ...Option) *Builder {
	b := &Builder{
		dbc:            db.Config{},
		metadata:       metadata.NewClient(dbDir),
		updateInterval: updateInterval,
		clock:          clock.RealClock{},
		logger:         log.WithPrefix("tracker-db"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build decodes a raw tracker dump from r, normalizes it and stores every
// canonical record. Field-level faults degrade in place and structural
// faults are skipped by the loader; only an unreadable dump or a storage
// failure aborts the build.
func (b *Builder) Build(r io.Reader) (tracker.Stats, error) {
	var doc tracker.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return tracker.Stats{}, xerrors.Errorf("failed to decode tracker dump: %w", err)
	}

	b.logger.Info("Normalizing tracker entries...", log.Int("packages", len(doc)))

	records, stats := doc.Records()

	var bar *pb.ProgressBar
	if b.progress {
		bar = pb.StartNew(len(records))
	}
	err := b.dbc.BatchUpdate(func(tx *bolt.Tx) error {
		for _, record := range records {
			if err := b.dbc.PutVulnerabilityRecord(tx, record); err != nil {
				return xerrors.Errorf("failed to save %s/%s: %w", record.Package, record.ID, err)
			}
			if bar != nil {
				bar.Increment()
			}
		}
		return nil
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return stats, xerrors.Errorf("batch update error: %w", err)
	}

	if err := b.setMetadata(); err != nil {
		return stats, err
	}

	b.logger.Info("Build complete",
		log.Int("records", stats.Records),
		log.Int("skipped", len(stats.Skipped)),
		log.Int("low_confidence", stats.LowConfidence))

	return stats, nil
}

func (b *Builder) setMetadata() error {
	now := b.clock.Now().UTC()
	if err := b.dbc.SetMetadata(db.Metadata{
		Version:    db.SchemaVersion,
		NextUpdate: now.Add(b.updateInterval),
		UpdatedAt:  now,
	}); err != nil {
		return xerrors.Errorf("failed to save metadata: %w", err)
	}

	// the same metadata lands next to the DB file for consumers that do not
	// open bolt
	if err := b.metadata.Update(metadata.Metadata{
		Version:    db.SchemaVersion,
		NextUpdate: now.Add(b.updateInterval),
		UpdatedAt:  now,
	}); err != nil {
		return xerrors.Errorf("failed to store metadata: %w", err)
	}
	return nil
}
