package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"rollcall/internal/di"
	"rollcall/internal/structures"
	"syscall"

	"github.com/spf13/pflag"
)

func parseFlags(args []string) (*structures.CliFlags, error) {
	flags := &structures.CliFlags{Command: structures.CommandServe}
	if len(args) > 0 && args[0] == structures.CommandScan {
		flags.Command = structures.CommandScan
		args = args[1:]
	}

	fs := pflag.NewFlagSet("rollcall "+flags.Command, pflag.ContinueOnError)
	fs.StringVarP(&flags.ConfigPath, "config", "c", "./configs/config.yaml", "path to the YAML config file")
	fs.BoolVarP(&flags.DebugMode, "debug", "d", false, "also log to the console")
	if flags.Command == structures.CommandScan {
		fs.StringVarP(&flags.Track, "track", "t", "", "track name, e.g. \"AI/ML Bootcamp\"")
		fs.IntVar(&flags.Day, "day", 0, "day number")
		fs.BoolVar(&flags.DryRun, "dry-run", false, "collect codes but do not send them")
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	switch flags.Command {
	case structures.CommandScan:
		console, err := di.InitScanConsole(flags)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		err = console.Run(ctx, os.Stdin, os.Stdout)
		stop()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		app, err := di.InitApp(flags)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := app.Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
