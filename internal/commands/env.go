package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/reign/calleditor/internal/config"
	"github.com/reign/calleditor/internal/daemon"
	"github.com/reign/calleditor/internal/db"
	"github.com/reign/calleditor/internal/logging"
	"github.com/reign/calleditor/internal/permission"
	"github.com/reign/calleditor/internal/repository"
	"github.com/reign/calleditor/internal/service"
	"github.com/rs/zerolog"
)

// store is what a command reads and writes: the local database or a
// daemon connection.
type store interface {
	repository.Provider
	permission.GrantStore
	io.Closer
}

// env is the per-invocation wiring shared by the commands.
type env struct {
	conf     *config.Config
	log      zerolog.Logger
	store    store
	repo     *repository.Repository
	svc      *service.Service
	registry *prometheus.Registry

	closers []io.Closer
}

type envOptions struct {
	// logToFile sends logs to logger.file; the TUI owns stderr.
	logToFile bool
	// localOnly refuses daemon.remote, for the daemon itself.
	localOnly bool
	// metrics registers repository collectors on env.registry.
	metrics bool
}

func loadEnv(g *globalOptions, opts envOptions) (*env, error) {
	conf, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}

	e := &env{conf: conf}
	if opts.logToFile {
		log, closer, err := logging.NewFile(conf.Logger.File, conf.Logger.Level)
		if err != nil {
			return nil, err
		}
		e.log = log
		e.closers = append(e.closers, closer)
	} else {
		e.log = logging.NewConsole(os.Stderr, conf.Logger.Level)
	}

	switch {
	case conf.Daemon.Remote && opts.localOnly:
		e.Close()
		return nil, errors.New("daemon.remote is set; serve must open the database directly")
	case conf.Daemon.Remote:
		client, err := daemon.Connect(conf.Daemon.Socket)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("%w (is `calleditor serve` running?)", err)
		}
		e.store = client
		e.log.Debug().Str("socket", conf.Daemon.Socket).Msg("using daemon")
	default:
		s, err := db.Open(conf.Database.Path)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.store = s
		e.log.Debug().Str("path", conf.Database.Path).Msg("opened database")
	}
	e.closers = append([]io.Closer{e.store}, e.closers...)

	loc, err := conf.TimeLocation()
	if err != nil {
		e.Close()
		return nil, err
	}

	repoOpts := []repository.Option{
		repository.WithLimit(conf.Fetch.Limit),
		repository.WithLocation(loc),
		repository.WithLogger(e.log),
	}
	if opts.metrics {
		e.registry = newRegistry()
		repoOpts = append(repoOpts, repository.WithMetrics(repository.NewMetrics(e.registry)))
	}
	e.repo = repository.New(e.store, repoOpts...)
	e.svc = service.New(e.repo, e.store)
	return e, nil
}

// Close releases the store and the log file.
func (e *env) Close() {
	for _, c := range e.closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			e.log.Debug().Err(err).Msg("close")
		}
	}
	e.closers = nil
}
