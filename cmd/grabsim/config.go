package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"vr-grab/internal/commands"
	"vr-grab/internal/config"

	"gopkg.in/yaml.v3"
)

func registerConfig(reg *commands.Registry) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	path := fs.String("path", config.DefaultPath, "grab prefs file (YAML)")
	write := fs.Bool("write", false, "write default prefs to -path if it does not exist")

	reg.Register("config", "print the effective grab prefs", fs, func(context.Context) error {
		if *write {
			if _, err := os.Stat(*path); os.IsNotExist(err) {
				if err := config.Save(*path, config.Default()); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "wrote %s\n", *path)
			}
		}
		p, err := config.Resolve(*path)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(p)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	})
}
