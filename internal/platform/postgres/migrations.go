package postgres

import "embed"

// MigrationsDir is the directory inside Migrations holding the goose SQL files.
const MigrationsDir = "migrations"

// Migrations holds the schema migrations, applied with goose.
//
//go:embed migrations/*.sql
var Migrations embed.FS
