//go:generate mockgen -destination=./mocks/orchestrator.go . DatasetAPI,Extractor

// Package orchestrator runs the sync flow: confirm the dataset exists, warn about newer
// versions, fetch the requested files and optionally unpack archives.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/glorpus-work/dscache/internal/logger"
	"github.com/glorpus-work/dscache/pkg/auth"
	"github.com/glorpus-work/dscache/pkg/dataset"
	"github.com/glorpus-work/dscache/pkg/errors"
)

// ExtractSuffix is appended to an archive path to name its extraction directory.
const ExtractSuffix = ".d"

// DatasetAPI is the subset of the dataset client used by the orchestrator.
type DatasetAPI interface {
	ListByOwner(ctx context.Context, owner string) ([]dataset.Details, error)
	View(ctx context.Context, owner, slug string) (*dataset.Details, error)
}

// Fetcher downloads one file into the cache. download.Manager satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, ref dataset.FileRef, authn auth.Authenticator) (string, error)
}

// Extractor unpacks archives. archive.Manager satisfies it.
type Extractor interface {
	IsArchive(ctx context.Context, path string) (bool, error)
	ExtractAll(ctx context.Context, archivePath, destDir string) error
}

// Orchestrator ties the dataset API, the fetcher and the extractor together.
type Orchestrator struct {
	API       DatasetAPI
	DL        Fetcher
	Extractor Extractor
	Hooks     Hooks // Hooks for progress and event notifications
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // listing|checking|newer|downloading|extracting|done|error
	ID    string // file name, or version number for "newer"
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// SyncRequest names one dataset version and the files wanted from it.
type SyncRequest struct {
	Owner   string
	Dataset string
	Version int
	Files   []string
	Extract bool
}

// Handle returns "<owner>/<dataset>".
func (r SyncRequest) Handle() string {
	return r.Owner + "/" + r.Dataset
}

// Result is the outcome for one requested file.
type Result struct {
	File        string
	Path        string
	ExtractedTo string // empty unless the file was an archive and extraction was requested
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Sync fetches every file of req sequentially and stops at the first failure, returning
// the results gathered so far together with the error.
func (o *Orchestrator) Sync(ctx context.Context, req SyncRequest, authn auth.Authenticator) ([]Result, error) {
	if o.API == nil {
		return nil, fmt.Errorf("dataset API is not configured")
	}
	if o.DL == nil {
		return nil, fmt.Errorf("download manager is not configured")
	}
	if req.Extract && o.Extractor == nil {
		return nil, fmt.Errorf("extractor is not configured")
	}
	if len(req.Files) == 0 {
		return nil, fmt.Errorf("no files requested for %s", req.Handle())
	}

	if err := o.ensureExists(ctx, req); err != nil {
		emit(o.Hooks, Event{Phase: "error", Msg: err.Error()})
		return nil, err
	}

	if err := o.warnNewerVersions(ctx, req); err != nil {
		emit(o.Hooks, Event{Phase: "error", Msg: err.Error()})
		return nil, err
	}

	results := make([]Result, 0, len(req.Files))
	for _, name := range req.Files {
		res, err := o.syncFile(ctx, req, name, authn)
		if err != nil {
			emit(o.Hooks, Event{Phase: "error", ID: name, Msg: err.Error()})
			return results, err
		}
		results = append(results, res)
	}

	emit(o.Hooks, Event{Phase: "done", Msg: req.Handle()})
	return results, nil
}

// ensureExists checks that the owner publishes the requested dataset.
func (o *Orchestrator) ensureExists(ctx context.Context, req SyncRequest) error {
	emit(o.Hooks, Event{Phase: "listing", Msg: req.Owner})
	list, err := o.API.ListByOwner(ctx, req.Owner)
	if err != nil {
		return err
	}
	for _, d := range list {
		if strings.EqualFold(d.Ref, req.Handle()) {
			return nil
		}
	}
	return errors.Wrapf(errors.ErrDatasetNotFound, "%s", req.Handle())
}

// warnNewerVersions logs one warning per version newer than the requested one.
func (o *Orchestrator) warnNewerVersions(ctx context.Context, req SyncRequest) error {
	emit(o.Hooks, Event{Phase: "checking", Msg: req.Handle()})
	details, err := o.API.View(ctx, req.Owner, req.Dataset)
	if err != nil {
		return err
	}

	newer, err := details.NewerVersions(req.Version)
	if err != nil {
		return err
	}
	for _, v := range newer {
		logger.Warn("newer dataset version available", logger.Fields{
			"dataset":   req.Handle(),
			"requested": req.Version,
			"version":   v.VersionNumber,
			"notes":     v.Notes(),
		})
		emit(o.Hooks, Event{Phase: "newer", ID: fmt.Sprintf("%d", v.VersionNumber), Msg: v.Notes()})
	}
	return nil
}

func (o *Orchestrator) syncFile(ctx context.Context, req SyncRequest, name string, authn auth.Authenticator) (Result, error) {
	ref := dataset.FileRef{Owner: req.Owner, Dataset: req.Dataset, FileName: name, Version: req.Version}

	emit(o.Hooks, Event{Phase: "downloading", ID: name, Msg: ref.String()})
	path, err := o.DL.Fetch(ctx, ref, authn)
	if err != nil {
		return Result{}, errors.Wrapf(err, "failed to fetch %s", ref)
	}

	res := Result{File: name, Path: path}
	if !req.Extract {
		return res, nil
	}

	isArchive, err := o.Extractor.IsArchive(ctx, path)
	if err != nil {
		return res, errors.Wrapf(err, "failed to inspect %s", path)
	}
	if !isArchive {
		logger.Debug("not an archive, skipping extraction", logger.Fields{"path": path})
		return res, nil
	}

	dest := path + ExtractSuffix
	emit(o.Hooks, Event{Phase: "extracting", ID: name, Msg: dest})
	if err := o.Extractor.ExtractAll(ctx, path, dest); err != nil {
		return res, errors.Wrapf(err, "failed to extract %s", path)
	}
	res.ExtractedTo = dest
	return res, nil
}
