package tracker

import (
	"sort"

	"github.com/samber/lo"
	"golang.org/x/xerrors"

	"github.com/ackama/tracker-db/pkg/log"
	"github.com/ackama/tracker-db/pkg/types"
)

// Stats summarizes one conversion pass.
type Stats struct {
	// Records is the number of canonical records emitted.
	Records int

	// LowConfidence counts emitted ranges flagged low-confidence.
	LowConfidence int

	// Skipped lists CVE entries dropped for structural malformation.
	// Field-level faults never end up here; they degrade in place.
	Skipped []StructuralError
}

// Walk converts the document into canonical records, one per package+CVE
// pair, and hands each to fn. Iteration is in byte order of package then CVE
// ID, so repeated walks over the same document are byte-identical.
//
// A CVE entry with no releases map at all is skipped, logged and counted;
// the walk continues with the remaining entries. An error from fn stops the
// walk early and is returned together with the stats so far. The document is
// not consumed: walking it again restarts from the beginning.
func (doc Document) Walk(fn func(types.VulnerabilityRecord) error) (Stats, error) {
	var stats Stats

	pkgNames := lo.Keys(doc)
	sort.Strings(pkgNames)

	for _, pkgName := range pkgNames {
		cves := doc[pkgName]
		cveIDs := lo.Keys(cves)
		sort.Strings(cveIDs)

		for _, cveID := range cveIDs {
			entry := cves[cveID]
			if entry.Releases == nil {
				serr := StructuralError{
					Package: pkgName,
					ID:      cveID,
					Reason:  "no releases",
				}
				log.Warn("Skipping malformed tracker entry",
					log.String("package", pkgName), log.String("id", cveID), log.Err(serr))
				stats.Skipped = append(stats.Skipped, serr)
				continue
			}

			record := newRecord(pkgName, cveID, entry)
			for _, r := range record.Affected {
				if r.LowConfidence {
					stats.LowConfidence++
				}
			}

			if err := fn(record); err != nil {
				return stats, xerrors.Errorf("walk error at %s/%s: %w", pkgName, cveID, err)
			}
			stats.Records++
		}
	}

	return stats, nil
}

// Records materializes the whole document at once.
func (doc Document) Records() ([]types.VulnerabilityRecord, Stats) {
	var records []types.VulnerabilityRecord
	stats, _ := doc.Walk(func(record types.VulnerabilityRecord) error {
		records = append(records, record)
		return nil
	})
	return records, stats
}

func newRecord(pkgName, cveID string, entry CveEntry) types.VulnerabilityRecord {
	perRelease := make(map[string]types.AffectedRange, len(entry.Releases))
	for release, raw := range entry.Releases {
		perRelease[release] = Resolve(ParseStatus(raw))
	}

	return types.VulnerabilityRecord{
		ID:          cveID,
		Package:     pkgName,
		Description: entry.Description,
		Scope:       entry.Scope,
		DebianBug:   entry.DebianBug,
		Affected:    Reconcile(perRelease),
	}
}
