// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// workspaceCommand handles workspace operations
func workspaceCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "workspace",
		Aliases: []string{"ws"},
		Usage:   "Workspace operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List workspaces visible to the current user",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.WorkspaceList,
			},
			{
				Name:  "create",
				Usage: "Create a workspace",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Action: r.WorkspaceCreate,
			},
		},
	}
}

// datasetCommand handles dataset operations
func datasetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dataset",
		Aliases: []string{"ds"},
		Usage:   "Dataset operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List datasets in a workspace",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "workspace",
						Aliases:  []string{"w"},
						Usage:    "Workspace name",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.DatasetList,
			},
			{
				Name:  "create",
				Usage: "Create and publish a dataset with a text classification schema",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "workspace",
						Aliases:  []string{"w"},
						Usage:    "Workspace name (created if missing)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Dataset name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "guidelines",
						Aliases: []string{"g"},
						Usage:   "Annotation guidelines",
					},
					&cli.StringSliceFlag{
						Name:    "label",
						Aliases: []string{"l"},
						Usage:   "Label option (repeatable)",
					},
				},
				Action: r.DatasetCreate,
			},
			{
				Name:  "clone",
				Usage: "Clone a dataset with its settings and records",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "workspace",
						Aliases:  []string{"w"},
						Usage:    "Source workspace name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Source dataset name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "target",
						Aliases:  []string{"t"},
						Usage:    "Name for the cloned dataset",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "target-workspace",
						Usage: "Workspace for the clone (defaults to the source workspace)",
					},
				},
				Action: r.DatasetClone,
			},
			{
				Name:  "delete",
				Usage: "Delete a dataset and its records",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "workspace",
						Aliases:  []string{"w"},
						Usage:    "Workspace name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Dataset name",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Skip the confirmation prompt",
					},
				},
				Action: r.DatasetDelete,
			},
			{
				Name:  "update",
				Usage: "Update a dataset's settings in place or as a new version",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "workspace",
						Aliases:  []string{"w"},
						Usage:    "Workspace name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Dataset name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "guidelines",
						Aliases: []string{"g"},
						Usage:   "New annotation guidelines",
					},
					&cli.StringSliceFlag{
						Name:    "label",
						Aliases: []string{"l"},
						Usage:   "Label option (repeatable, only applied to new versions)",
					},
					&cli.BoolFlag{
						Name:  "extra-metadata",
						Usage: "Allow extra metadata on records",
					},
					&cli.BoolFlag{
						Name:  "new-version",
						Usage: "Create a timestamped copy instead of patching in place",
					},
				},
				Action: r.DatasetUpdate,
			},
			{
				Name:  "export",
				Usage: "Export every dataset in a workspace to files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "workspace",
						Aliases:  []string{"w"},
						Usage:    "Workspace name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
				},
				Action: r.DatasetExport,
			},
		},
	}
}

// migrateCommand handles record migrations between datasets
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Copy records between datasets",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a batched record migration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "source-workspace",
						Usage:    "Source workspace name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "source-dataset",
						Usage:    "Source dataset name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "target-workspace",
						Usage:    "Target workspace name (created if missing)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "target-dataset",
						Usage:    "Target dataset name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "guidelines",
						Aliases: []string{"g"},
						Usage:   "Guidelines for the target dataset",
					},
					&cli.StringSliceFlag{
						Name:    "label",
						Aliases: []string{"l"},
						Usage:   "Label option for the target schema (repeatable)",
					},
					&cli.IntFlag{
						Name:    "batch-size",
						Aliases: []string{"b"},
						Usage:   "Records copied per request",
						Value:   100,
					},
					&cli.StringFlag{
						Name:  "tag",
						Usage: "Metadata key=value stamped on every migrated record",
					},
				},
				Action: r.MigrateRun,
			},
			{
				Name:  "history",
				Usage: "List past migration jobs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "status",
						Aliases: []string{"s"},
						Usage:   "Filter by status: pending, running, completed, failed",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MigrateHistory,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the Argilla server",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with a JSON payload",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "JSON request body",
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse workspaces and clone datasets interactively",
		Action: r.TUI,
	}
}
