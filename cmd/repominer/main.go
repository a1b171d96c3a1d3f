package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/Lucineia/RepositoryMiner/lib/consoles"
	"github.com/Lucineia/RepositoryMiner/lib/workspace"
)

var cli struct {
	DB      string          `help:"Database to store data: :memory:, a .sqlite file or mysql://<dsn>. Default is ./.repominer/repominer.sqlite or ~/.repominer/repominer.sqlite if that does not exist."`
	Config  kong.ConfigFlag `help:"JSON file with default values for the flags."`
	Verbose bool            `short:"v" help:"Show debug messages."`
	LogJSON bool            `name:"log-json" help:"Write log messages as JSON."`

	Refs     RefsCmd     `cmd:"" help:"List the branches and tags of a repository."`
	Commits  CommitsCmd  `cmd:"" help:"List the commits of a repository, with their churn."`
	Checkout CheckoutCmd `cmd:"" help:"Check out a commit, discarding local changes."`
	Mine     MineCmd     `cmd:"" help:"Analyze the history of a repository and store the results."`
	Show     ShowCmd     `cmd:"" help:"Show the stored analysis of a commit."`

	ConfigCmd struct {
		Set ConfigSetCmd `cmd:"" help:"Set a workspace default."`
	} `cmd:"" name:"config" help:"Workspace defaults."`
}

type context struct {
	console consoles.Console
	ws      *workspace.Workspace
}

func (c *context) workspace() (*workspace.Workspace, error) {
	if c.ws != nil {
		return c.ws, nil
	}

	ws, err := workspace.NewWorkspace(c.console, cli.DB)
	if err != nil {
		return nil, err
	}

	c.ws = ws
	return ws, nil
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("repominer"),
		kong.Description("Mines the history of git repositories for churn, metrics and code smells."),
		kong.ShortUsageOnError(),
		kong.Configuration(kong.JSON),
	)

	c := &context{
		console: consoles.NewConsole(consoles.Options{
			JSON:    cli.LogJSON,
			Verbose: cli.Verbose,
			Output:  os.Stderr,
		}),
	}

	err := c.run(func(c *context) error { return ctx.Run(c) })
	ctx.FatalIfErrorf(err)
}

// run executes a command and closes the workspace it opened, also when the command fails.
func (c *context) run(cmd func(c *context) error) error {
	err := cmd(c)

	if c.ws != nil {
		closeErr := c.ws.Close()
		c.ws = nil

		if err == nil {
			err = closeErr
		}
	}

	return err
}
