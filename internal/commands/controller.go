// Package commands contains the CLI commands for the application
package commands

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type Flags struct {
	LogLevel string
}

type Controller struct {
	Flags  *Flags
	Out    io.Writer
	Logger zerolog.Logger
}

func (c *Controller) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}
