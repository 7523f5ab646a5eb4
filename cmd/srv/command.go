package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "streamdraw"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action: s.startMigrate,
			Name:   "migrate",
			Usage:  "Migrate the database schema",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Usage: "run the data migrator of this release version",
				},
			},
			Category:    "Database",
			Description: `Auto-migrates all tables and optionally runs a versioned data migrator.`,
		},
		{
			Action: s.startDraw,
			Name:   "draw",
			Usage:  "Draw a winner of a giveaway",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "giveaway",
					Usage:    "the giveaway id to draw",
					Required: true,
				},
			},
			Category:    "Draw",
			Description: `Performs one verifiable draw and prints the audit payload. A draw on a giveaway with a winner performs a repick.`,
		},
		{
			Action: s.startEntries,
			Name:   "entries",
			Usage:  "List the entry ledger of a giveaway",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "giveaway",
					Usage:    "the giveaway id to list",
					Required: true,
				},
			},
			Category:    "Ledger",
			Description: `Prints every entry in the canonical draw order together with the ticket total.`,
		},
		{
			Action: s.startHistory,
			Name:   "history",
			Usage:  "Show the draw history of a giveaway",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "giveaway",
					Usage:    "the giveaway id to inspect",
					Required: true,
				},
			},
			Category:    "Draw",
			Description: `Prints every draw record with its partition snapshot and oracle proof.`,
		},
		{
			Action: s.startReset,
			Name:   "reset",
			Usage:  "Wipe the entry ledger of a giveaway",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "giveaway",
					Usage:    "the giveaway id to reset",
					Required: true,
				},
			},
			Category:    "Ledger",
			Description: `Deletes all entries and winner records of a giveaway before a collaborator re-sync.`,
		},
	}

	s.app = app
}
