package pkg

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/ackama/tracker-db/pkg/db"
	"github.com/ackama/tracker-db/pkg/trackerdb"
)

func build(c *cli.Context) error {
	cacheDir := c.String("cache-dir")
	if err := db.Init(cacheDir); err != nil {
		return xerrors.Errorf("db initialize error: %w", err)
	}
	defer db.Close()

	f, err := os.Open(c.String("input"))
	if err != nil {
		return xerrors.Errorf("failed to open tracker dump: %w", err)
	}
	defer f.Close()

	builder := trackerdb.New(db.Dir(cacheDir), c.Duration("update-interval"),
		trackerdb.WithProgress(!c.Bool("quiet")))

	stats, err := builder.Build(f)
	if err != nil {
		return xerrors.Errorf("build error: %w", err)
	}

	fmt.Printf("%d records written to %s\n", stats.Records, db.Path(cacheDir))
	if stats.LowConfidence > 0 {
		yellow := color.New(color.FgYellow).SprintfFunc()
		fmt.Println(yellow("%d ranges flagged low-confidence", stats.LowConfidence))
	}
	if len(stats.Skipped) > 0 {
		red := color.New(color.FgRed).SprintfFunc()
		fmt.Println(red("%d malformed entries skipped", len(stats.Skipped)))
	}

	return nil
}
