package options_test

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/specialistvlad/optschema/internal/options"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// User is the canonical owning type used across tests.
type User struct {
	options.Holder
	name  string
	admin bool
}

func (u *User) Name() string { return u.name }
func (u *User) Admin() bool  { return u.admin }

func newUserSchema() *options.Schema {
	return options.NewSchema("User", options.WithLogger(quietLogger())).
		Option("name",
			options.WithType(options.Is[string]()),
			options.Reader(func(u *User, v string) { u.name = v })).
		Option("admin",
			options.WithAllow(true, false),
			options.WithDefault(false),
			options.Reader(func(u *User, v bool) { u.admin = v }))
}

// Admin embeds User and is constructed from a schema extended from User's.
type Admin struct {
	User
	level int
}
