package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/ackama/tracker-db/pkg/db"
	"github.com/ackama/tracker-db/pkg/dbtest"
	"github.com/ackama/tracker-db/pkg/types"
)

func TestConfig_PutVulnerabilityRecord(t *testing.T) {
	record := types.VulnerabilityRecord{
		ID:      "CVE-2017-6507",
		Package: "apparmor",
		Scope:   "local",
		Affected: []types.AffectedRange{
			{
				Ecosystem:  "debian bookworm",
				Introduced: "0",
				Fixed:      "2.11.0-3",
				Urgency:    "unimportant",
			},
		},
	}

	cacheDir := t.TempDir()
	require.NoError(t, db.Init(cacheDir))

	dbc := db.Config{}
	err := dbc.BatchUpdate(func(tx *bolt.Tx) error {
		return dbc.PutVulnerabilityRecord(tx, record)
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	dbtest.JSONEq(t, db.Path(cacheDir),
		[]string{"vulnerability-record", "apparmor", "CVE-2017-6507"}, record)
}

func TestConfig_GetVulnerabilityRecords(t *testing.T) {
	tests := []struct {
		name    string
		pkgName string
		want    []types.VulnerabilityRecord
	}{
		{
			name:    "multiple records in key order",
			pkgName: "busybox",
			want: []types.VulnerabilityRecord{
				{
					ID:          "CVE-2018-1000500",
					Package:     "busybox",
					Description: "Missing SSL certificate validation in the wget applet",
					Scope:       "remote",
					Affected: []types.AffectedRange{
						{
							Ecosystem:  "debian bookworm",
							Introduced: "0",
							Fixed:      "unbounded",
							Urgency:    "not yet assigned",
						},
					},
				},
				{
					ID:      "CVE-2022-28391",
					Package: "busybox",
					Scope:   "remote",
					Affected: []types.AffectedRange{
						{
							Ecosystem: "debian bookworm",
							Empty:     true,
							Urgency:   "unimportant",
						},
					},
				},
			},
		},
		{
			name:    "unknown package",
			pkgName: "no-such-package",
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = dbtest.InitDB(t, []string{"testdata/fixtures/happy.yaml"})
			defer db.Close()

			got, err := db.Config{}.GetVulnerabilityRecords(tt.pkgName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_Metadata(t *testing.T) {
	cacheDir := t.TempDir()
	require.NoError(t, db.Init(cacheDir))
	defer db.Close()

	want := db.Metadata{
		Version: db.SchemaVersion,
	}
	require.NoError(t, db.Config{}.SetMetadata(want))

	got, err := db.GetMetadata()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
