package config

import "github.com/urfave/cli/v2"

// Flag names shared by the stage commands
const (
	FlagDatabase  = "database"
	FlagFeedDir   = "feed-dir"
	FlagOutputDir = "output-dir"
	FlagTopN      = "top-n"
)

// DatabaseFlag overrides DatabasePath
func (c *Config) DatabaseFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    FlagDatabase,
		Aliases: []string{"db"},
		Usage:   "Path to the SQLite database file",
		Value:   c.DatabasePath,
	}
}

// FeedDirFlag overrides FeedDir
func (c *Config) FeedDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  FlagFeedDir,
		Usage: "Directory containing the GTFS text files",
		Value: c.FeedDir,
	}
}

// OutputDirFlag overrides OutputDir
func (c *Config) OutputDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  FlagOutputDir,
		Usage: "Directory the cleaned CSV files are written to and read from",
		Value: c.OutputDir,
	}
}

// TopNFlag overrides TopN
func (c *Config) TopNFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  FlagTopN,
		Usage: "Rows kept in the busiest routes and most active stops tables",
		Value: c.TopN,
	}
}
