package pkg

import (
	"time"

	"github.com/urfave/cli"

	"github.com/ackama/tracker-db/pkg/utils"
)

func NewApp(version string) *cli.App {
	app := cli.NewApp()
	app.Name = "tracker-db"
	app.Version = version

	app.Usage = "Debian security tracker normalizer"

	app.Commands = []cli.Command{
		{
			Name:   "build",
			Usage:  "build vulnerability database from a tracker dump",
			Action: build,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "input",
					Usage: "path to the security tracker JSON dump",
					Value: "tracker.json",
				},
				cli.StringFlag{
					Name:  "cache-dir",
					Usage: "cache directory path",
					Value: utils.CacheDir(),
				},
				cli.DurationFlag{
					Name:  "update-interval",
					Usage: "freshness window recorded in the DB metadata",
					Value: 24 * time.Hour,
				},
				cli.BoolFlag{
					Name:  "quiet",
					Usage: "suppress the progress bar",
				},
			},
		},
	}

	return app
}
