package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	fyyur "github.com/derWhity/fyyur/internal"
	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/migrate"
	"github.com/derWhity/fyyur/internal/repos"
	artistrepo "github.com/derWhity/fyyur/internal/repos/artist/sqlite"
	showrepo "github.com/derWhity/fyyur/internal/repos/show/sqlite"
	venuerepo "github.com/derWhity/fyyur/internal/repos/venue/sqlite"
	"github.com/jmoiron/sqlx"
	"github.com/kardianos/osext"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	appName    = "Fyyur"
	appVersion = "0.1.0"

	shutdownTimeout = 10 * time.Second
)

// ensureDir creates the directory including its parents if it is missing. A plain file in its place is fatal
func ensureDir(dir string, logger *logrus.Entry) {
	logger = logger.WithField(log.FldPath, dir)
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		logger.Info("Creating missing directory")
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			logger.WithError(err).Fatal("Failed to create directory")
		}
	case err != nil:
		logger.WithError(err).Fatal("Cannot access directory")
	case !info.IsDir():
		logger.Fatal("Path exists but is no directory")
	}
}

// openDatabase opens the SQLite database file and brings its schema up to date
func openDatabase(file string, logger *logrus.Entry) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", repos.SQLiteDSN(file))
	if err != nil {
		return nil, err
	}
	logger.WithField(log.FldFile, file).Info("Applying database migrations")
	if err = migrate.ExecuteMigrationsOnDb(db, logger); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// watchdogURL builds the URL of the alive check from the listen address
func watchdogURL(listenAddress string) string {
	port := listenAddress[strings.LastIndex(listenAddress, ":")+1:]
	return fmt.Sprintf("http://127.0.0.1:%s/alive", port)
}

// keepWatchdogAlive pings systemd's watchdog as long as the alive check answers. It returns at once when no
// watchdog is configured
func keepWatchdogAlive(ctx context.Context, url string, logger *logrus.Entry) {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil || interval == 0 {
		return
	}
	logger.WithField("interval", interval).Info("systemd watchdog enabled")
	ticker := time.NewTicker(interval / 3)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if res, err := http.Get(url); err == nil {
				res.Body.Close()
				daemon.SdNotify(false, "WATCHDOG=1")
			}
		}
	}
}

// waitForSignal blocks until SIGINT or SIGTERM arrives
func waitForSignal() os.Signal {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	return <-c
}

func main() {
	execDir, err := osext.ExecutableFolder()
	if err != nil {
		panic(err)
	}
	configFile := flag.String("config", filepath.Join(execDir, "config.json"), "Path of the JSON configuration file")
	flag.Parse()

	logger := logrus.WithField(log.FldVersion, appVersion)
	logger.Infof("Starting %s %s", appName, appVersion)
	ctx, cancel := context.WithCancel(ctxhelper.WithLogger(context.Background(), logger))
	defer cancel()

	cs := fyyur.NewConfigService(*configFile)
	if err := cs.Load(ctx); err != nil {
		logger.WithError(err).Warn("Configuration file not usable - continuing with defaults and environment")
	}
	conf := cs.GetConfig(ctx)
	logrus.SetLevel(cs.LogLevel(ctx))

	ensureDir(conf.DataDir, logger)
	db, err := openDatabase(filepath.Join(conf.DataDir, conf.Database), logger)
	if err != nil {
		logger.WithError(err).Fatal("Database is not usable")
	}
	defer db.Close()

	venues := venuerepo.New(db, logger)
	artists := artistrepo.New(db, logger)
	shows := showrepo.New(db, logger)

	httpLogger := logger.WithField(log.FldTransport, "HTTP")
	h, err := fyyur.MakeHTTPHandler(
		fyyur.NewVenueService(venues, shows, logger),
		fyyur.NewArtistService(artists, shows, logger),
		fyyur.NewShowService(shows, venues, artists, logger),
		httpLogger,
	)
	if err != nil {
		logger.WithError(err).Fatal("Failed to set up the HTTP handler")
	}

	srv := &http.Server{Addr: conf.ListenAddress, Handler: h}
	errs := make(chan error, 1)
	go func() {
		httpLogger.WithField("addr", conf.ListenAddress).Info("Listening")
		errs <- srv.ListenAndServe()
	}()
	go keepWatchdogAlive(ctx, watchdogURL(conf.ListenAddress), logger)
	daemon.SdNotify(false, "READY=1")

	sig := make(chan os.Signal, 1)
	go func() { sig <- waitForSignal() }()
	select {
	case err := <-errs:
		logger.WithError(err).Error("HTTP server stopped")
	case s := <-sig:
		logger.WithField("signal", s.String()).Info("Shutting down")
		daemon.SdNotify(false, "STOPPING=1")
		shutdownCtx, done := context.WithTimeout(ctx, shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Graceful shutdown failed")
		}
	}
	logger.Info("Shutdown complete")
}
