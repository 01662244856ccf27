package logger

import "context"

// Logger is the structured logger used across the store, the sandbox server and the CLI.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, fields map[string]interface{})

	// WithField returns a logger that adds key=value to every entry.
	WithField(key string, value interface{}) Logger

	// WithFields returns a logger that adds all fields to every entry.
	WithFields(fields map[string]interface{}) Logger
}

type nop struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }

func (nop) Debug(context.Context, string, map[string]interface{}) {}
func (nop) Info(context.Context, string, map[string]interface{})  {}
func (nop) Warn(context.Context, string, map[string]interface{})  {}
func (nop) Error(context.Context, string, map[string]interface{}) {}

func (n nop) WithField(string, interface{}) Logger     { return n }
func (n nop) WithFields(map[string]interface{}) Logger { return n }
