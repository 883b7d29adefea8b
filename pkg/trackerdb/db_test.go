package trackerdb_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/ackama/tracker-db/pkg/db"
	"github.com/ackama/tracker-db/pkg/dbtest"
	"github.com/ackama/tracker-db/pkg/metadata"
	"github.com/ackama/tracker-db/pkg/trackerdb"
	"github.com/ackama/tracker-db/pkg/types"
)

func TestBuilder_Build(t *testing.T) {
	fixedTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	cacheDir := t.TempDir()
	require.NoError(t, db.Init(cacheDir))

	f, err := os.Open(filepath.Join("testdata", "tracker.json"))
	require.NoError(t, err)
	defer f.Close()

	b := trackerdb.New(db.Dir(cacheDir), 24*time.Hour,
		trackerdb.WithClock(clocktesting.NewFakeClock(fixedTime)))

	stats, err := b.Build(f)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Records)
	assert.Len(t, stats.Skipped, 1)
	assert.Equal(t, "openssl", stats.Skipped[0].Package)

	gotMeta, err := db.GetMetadata()
	require.NoError(t, err)
	assert.Equal(t, db.Metadata{
		Version:    db.SchemaVersion,
		NextUpdate: fixedTime.Add(24 * time.Hour),
		UpdatedAt:  fixedTime,
	}, gotMeta)

	require.NoError(t, db.Close())

	dbtest.JSONEq(t, db.Path(cacheDir),
		[]string{"vulnerability-record", "apparmor", "CVE-2017-6507"},
		types.VulnerabilityRecord{
			ID:          "CVE-2017-6507",
			Package:     "apparmor",
			Description: "An issue was discovered in AppArmor before 2.12. Incorrect handling of unknown AppArmor profiles in AppArmor init scripts, upstart jobs, and/or systemd unit files allows an attacker to possibly have increased attack surfaces of processes that were intended to be confined by AppArmor.",
			Scope:       "local",
			DebianBug:   858768,
			Affected: []types.AffectedRange{
				{
					Ecosystem:  "debian bookworm",
					Introduced: "0",
					Fixed:      "2.11.0-3",
					Urgency:    "unimportant",
				},
				{
					Ecosystem:  "debian sid",
					Introduced: "0",
					Fixed:      "2.11.0-3",
					Urgency:    "unimportant",
				},
			},
		})

	dbtest.JSONEq(t, db.Path(cacheDir),
		[]string{"vulnerability-record", "busybox", "CVE-2022-28391"},
		types.VulnerabilityRecord{
			ID:          "CVE-2022-28391",
			Package:     "busybox",
			Description: "BusyBox through 1.35.0 allows remote attackers to execute arbitrary code if netstat is used to print a DNS PTR record's value to a VT compatible terminal.",
			Scope:       "remote",
			Affected: []types.AffectedRange{
				{
					Ecosystem: "debian bookworm",
					Empty:     true,
					Urgency:   "unimportant",
				},
			},
		})

	// the sidecar metadata file mirrors the DB metadata
	gotFileMeta, err := metadata.NewClient(db.Dir(cacheDir)).Get()
	require.NoError(t, err)
	assert.Equal(t, metadata.Metadata{
		Version:    db.SchemaVersion,
		NextUpdate: fixedTime.Add(24 * time.Hour),
		UpdatedAt:  fixedTime,
	}, gotFileMeta)
}

func TestBuilder_Build_brokenDump(t *testing.T) {
	b := trackerdb.New(t.TempDir(), time.Hour,
		trackerdb.WithDB(new(db.MockOperation)))

	_, err := b.Build(strings.NewReader(`{"busybox": [1, 2]}`))
	assert.ErrorContains(t, err, "failed to decode tracker dump")
}

func TestBuilder_Build_saveError(t *testing.T) {
	mockDB := new(db.MockOperation)
	mockDB.On("BatchUpdate", mock.Anything).Return(nil)
	mockDB.ApplyPutVulnerabilityRecordExpectation(db.PutVulnerabilityRecordExpectation{
		Args: db.PutVulnerabilityRecordArgs{
			TxAnything:     true,
			RecordAnything: true,
		},
		Returns: db.PutVulnerabilityRecordReturns{
			Err: errors.New("disk full"),
		},
	})

	f, err := os.Open(filepath.Join("testdata", "tracker.json"))
	require.NoError(t, err)
	defer f.Close()

	b := trackerdb.New(t.TempDir(), time.Hour, trackerdb.WithDB(mockDB))

	_, err = b.Build(f)
	assert.ErrorContains(t, err, "batch update error")
	mockDB.AssertExpectations(t)
}
