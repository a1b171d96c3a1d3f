package main

import (
	"fmt"
)

type ConfigSetCmd struct {
	Config string `arg:"" help:"Configuration name to change."`
	Value  string `arg:"" help:"Configuration value to set."`
}

func (c *ConfigSetCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	changed, err := ws.SetConfig(c.Config, c.Value)
	if err != nil {
		return err
	}

	if changed {
		fmt.Printf("Set '%v' = '%v'\n", c.Config, c.Value)
	} else {
		fmt.Printf("'%v' was already '%v'\n", c.Config, c.Value)
	}

	return nil
}
