/*
	Copyright 2023 Loophole Labs

	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at

		   http://www.apache.org/licenses/LICENSE-2.0

	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package logging configures the zerolog loggers used across the module.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level   zerolog.Level
	Format  string // "json" or "console"
	Output  io.Writer
	NoColor bool
}

// DefaultConfig logs warnings and errors to stderr in console format.
func DefaultConfig() *Config {
	return &Config{
		Level:  zerolog.WarnLevel,
		Format: "console",
		Output: os.Stderr,
	}
}

// New builds a zerolog.Logger from the given config. A nil config uses
// DefaultConfig.
func New(config *Config) zerolog.Logger {
	if config == nil {
		config = DefaultConfig()
	}
	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	if config.Format != "json" {
		output = zerolog.ConsoleWriter{Out: output, NoColor: config.NoColor}
	}
	return zerolog.New(output).With().Timestamp().Logger().Level(config.Level)
}
