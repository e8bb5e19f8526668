package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/vaultsync/cmd/vaultsync/commands"
	verrors "git.home.luguber.info/inful/vaultsync/internal/errors"
	"git.home.luguber.info/inful/vaultsync/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("vaultsync"),
		kong.Description("Publish shared Obsidian notes as Hugo posts."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	global := &commands.Global{Logger: slog.Default()}
	if err := parser.Run(global, cli); err != nil {
		verrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
