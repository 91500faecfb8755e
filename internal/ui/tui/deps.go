package tui

import (
	"io"
	"log/slog"
)

type Deps struct {
	Logger *slog.Logger

	// Input and Output default to the terminal. Output should not be stdout
	// when results are printed there.
	Input  io.Reader
	Output io.Writer
}
