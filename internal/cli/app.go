package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rhammad/visitflow/internal/config"
	"github.com/rhammad/visitflow/internal/domain/contract"
	"github.com/rhammad/visitflow/internal/domain/document"
	"github.com/rhammad/visitflow/internal/domain/folder"
	"github.com/rhammad/visitflow/internal/domain/signature"
	"github.com/rhammad/visitflow/internal/domain/visit"
	"github.com/rhammad/visitflow/internal/render"
	"github.com/rhammad/visitflow/internal/sqlite"
	"github.com/rhammad/visitflow/internal/transport"
)

// app holds the wired application: configuration, database and services.
// Every command builds one, runs, and closes it.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sqlite.DB

	folders    *folder.Service
	contracts  *contract.Service
	visits     *visit.Service
	scheduler  *visit.Scheduler
	documents  *document.Service
	signatures *signature.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("preparing database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	folderRepo := sqlite.NewFolderRepository(db)
	contractRepo := sqlite.NewContractRepository(db)
	visitRepo := sqlite.NewVisitRepository(db)
	documentRepo := sqlite.NewDocumentRepository(db)
	signatureRepo := sqlite.NewSignatureRepository(db)
	sequenceRepo := sqlite.NewSequenceRepository(db)

	folderSvc := folder.NewService(folderRepo, logger)
	contractSvc := contract.NewService(contractRepo, folderSvc, logger)
	visitSvc := visit.NewService(visitRepo, contractSvc, folderSvc, sequenceRepo, visit.ClockFunc(time.Now), logger)
	documentSvc := document.NewService(documentRepo, folderSvc, visitRepo, render.NewPlaceholder(), logger)
	visitSvc.SetReportGenerator(documentSvc)
	signatureSvc := signature.NewService(signatureRepo, visitSvc, documentSvc, signature.NewLoggingClient(logger), logger)
	scheduler := visit.NewScheduler(contractSvc, folderRepo, visitSvc, logger)

	return &app{
		cfg:        cfg,
		logger:     logger,
		db:         db,
		folders:    folderSvc,
		contracts:  contractSvc,
		visits:     visitSvc,
		scheduler:  scheduler,
		documents:  documentSvc,
		signatures: signatureSvc,
	}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("closing database", "error", err)
	}
}

func (a *app) services() transport.Services {
	return transport.Services{
		Contracts:  a.contracts,
		Folders:    a.folders,
		Visits:     a.visits,
		Scheduler:  a.scheduler,
		Documents:  a.documents,
		Signatures: a.signatures,
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
