package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/platform/config"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/platform/logging"
)

const usage = `usage: migrate [-config path] [-dir path] <command> [arg]

commands:
  up          apply every pending staffing schema migration
  down        roll back every migration
  steps N     apply N migrations, or roll back when N is negative
  force V     mark version V as applied and clear the dirty flag
  version     print the applied version
`

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	migrationsDir := flag.String("dir", "assets/migrations", "directory containing staffing schema migrations")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(configPathOrDefault(*configPath))
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		logrus.Fatalf("failed to configure logging: %v", err)
	}

	cmd, err := parseCommand(flag.Args())
	if err != nil {
		flag.Usage()
		logger.Fatalf("invalid command: %v", err)
	}

	entry := logger.WithFields(logrus.Fields{"command": cmd.name, "dir": *migrationsDir})
	if err := cmd.run(*migrationsDir, cfg.Database.DSN(), entry); err != nil {
		entry.WithError(err).Fatal("migration failed")
	}
	entry.Info("migration completed")
}

func configPathOrDefault(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}

type command struct {
	name string
	arg  int
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{name: "up"}, nil
	}

	cmd := command{name: args[0]}
	switch cmd.name {
	case "up", "down", "version":
		if len(args) != 1 {
			return command{}, fmt.Errorf("%s takes no argument", cmd.name)
		}
	case "steps", "force":
		if len(args) != 2 {
			return command{}, fmt.Errorf("%s requires one integer argument", cmd.name)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return command{}, fmt.Errorf("%s: %w", cmd.name, err)
		}
		if cmd.name == "steps" && n == 0 {
			return command{}, errors.New("steps: N must not be zero")
		}
		cmd.arg = n
	default:
		return command{}, fmt.Errorf("unsupported command %q", cmd.name)
	}
	return cmd, nil
}

func (c command) run(dir, dsn string, log *logrus.Entry) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve path for %s: %w", dir, err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), dsn)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch c.name {
	case "up":
		return ignoreNoChange(m.Up())
	case "down":
		return ignoreNoChange(m.Down())
	case "steps":
		return ignoreNoChange(m.Steps(c.arg))
	case "force":
		return m.Force(c.arg)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info("no staffing migration applied")
			return nil
		}
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("staffing schema version")
		return nil
	}
	return fmt.Errorf("unsupported command %q", c.name)
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
