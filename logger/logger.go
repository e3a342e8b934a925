/*
 * logger.go, part of topological-excitons.
 *
 * Copyright 2024 The topological-excitons Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package logger builds the structured loggers used by the parser and the
//band solver. Library code never logs unless it is handed a logger, so
//the default everywhere is Nop.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

//Option configures a Logger created with New.
type Option func(*config)

type config struct {
	level     log.Level
	writers   []io.Writer
	prefix    string
	json      bool
	timestamp bool
}

//WithDebug sets the log level to Debug when true, Info otherwise.
func WithDebug(debug bool) Option {
	return func(c *config) {
		if debug {
			c.level = log.DebugLevel
		} else {
			c.level = log.InfoLevel
		}
	}
}

//WithWriter overrides the output writer. Defaults to os.Stderr.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.writers = []io.Writer{w}
	}
}

//WithWriters sets multiple output writers (combined via io.MultiWriter).
func WithWriters(w ...io.Writer) Option {
	return func(c *config) {
		c.writers = w
	}
}

//WithPrefix sets the prefix printed before every message.
func WithPrefix(p string) Option {
	return func(c *config) {
		c.prefix = p
	}
}

//WithJSON switches to JSON lines instead of the human readable text.
func WithJSON(json bool) Option {
	return func(c *config) {
		c.json = json
	}
}

//WithTimestamp adds the time to each line.
func WithTimestamp(ts bool) Option {
	return func(c *config) {
		c.timestamp = ts
	}
}

//New returns a logger configured with the given options.
func New(opts ...Option) *log.Logger {
	c := &config{level: log.InfoLevel}
	for _, o := range opts {
		o(c)
	}
	var w io.Writer
	switch len(c.writers) {
	case 0:
		w = os.Stderr
	case 1:
		w = c.writers[0]
	default:
		w = io.MultiWriter(c.writers...)
	}
	lo := log.Options{
		Level:           c.level,
		Prefix:          c.prefix,
		ReportTimestamp: c.timestamp,
	}
	if c.json {
		lo.Formatter = log.JSONFormatter
	}
	return log.NewWithOptions(w, lo)
}

//Nop returns a logger that discards everything.
func Nop() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

//OrNop returns l, or a Nop logger if l is nil.
func OrNop(l *log.Logger) *log.Logger {
	if l == nil {
		return Nop()
	}
	return l
}
