package download

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"napi/internal/archive"
	"napi/internal/config"
	"napi/internal/digest"
	"napi/internal/fileutil"
	"napi/internal/language"
	"napi/internal/logging"
	"napi/internal/services"
	"napi/internal/services/napiprojekt"
	"napi/internal/services/napisy24"
	"napi/internal/subtext"
)

// NapiprojektClient is the NAPI-PROJEKT surface the pipeline depends on.
type NapiprojektClient interface {
	Download(ctx context.Context, req napiprojekt.Request) (napiprojekt.Result, error)
}

// Napisy24Client is the NAPISY24 surface the pipeline depends on.
type Napisy24Client interface {
	Download(ctx context.Context, req napisy24.Request) (napisy24.Result, error)
}

// Options captures per-batch download behaviour.
type Options struct {
	// Language is a canonical 2-letter subtitle language code.
	Language string
	// DestDir relocates subtitles; empty keeps them next to the video.
	DestDir string
	// Update re-downloads subtitles that already exist on disk.
	Update bool
	// Backup keeps a "-bak" copy when an update replaces a subtitle.
	Backup bool
	// ConvertEncoding converts windows-1250 payloads to UTF-8.
	ConvertEncoding bool
}

// Downloader runs the per-input pipeline: resolve the lookup keys, query
// NAPI-PROJEKT, fall back to NAPISY24, and write the subtitle.
type Downloader struct {
	napiprojekt NapiprojektClient
	napisy24    Napisy24Client
	opts        Options
	logger      *slog.Logger
}

// New wires a Downloader from application configuration.
func New(cfg *config.Config, opts Options, logger *slog.Logger) (*Downloader, error) {
	npClient, err := napiprojekt.New(napiprojekt.Config{
		BaseURL:       cfg.Napiprojekt.BaseURL,
		Client:        cfg.Napiprojekt.Client,
		ClientVersion: cfg.Napiprojekt.ClientVersion,
		Timeout:       time.Duration(cfg.Napiprojekt.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "download", "napiprojekt client", "", err)
	}
	var n24Client Napisy24Client
	if cfg.Napisy24.Enabled {
		client, err := napisy24.New(napisy24.Config{
			BaseURL:   cfg.Napisy24.BaseURL,
			UserAgent: cfg.Napisy24.UserAgent,
			APIKey:    cfg.Napisy24.APIKey,
			Timeout:   time.Duration(cfg.Napisy24.TimeoutSeconds) * time.Second,
		})
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "download", "napisy24 client", "", err)
		}
		n24Client = client
	}
	return NewWithClients(npClient, n24Client, opts, logger), nil
}

// NewWithClients wires a Downloader around explicit service clients.
func NewWithClients(np NapiprojektClient, n24 Napisy24Client, opts Options, logger *slog.Logger) *Downloader {
	return &Downloader{
		napiprojekt: np,
		napisy24:    n24,
		opts:        opts,
		logger:      logging.NewComponentLogger(logger, "download"),
	}
}

// Fetch processes one input to its terminal state. Every error is captured in
// the result; Fetch itself never aborts the batch.
func (d *Downloader) Fetch(ctx context.Context, input string) Result {
	ctx = services.WithInput(ctx, input)
	result := Result{
		Input:  input,
		Target: TargetPath(input, d.opts.DestDir),
	}

	if fileutil.Exists(result.Target) && !d.opts.Update {
		d.logger.Debug("subtitle already present",
			logging.String(logging.FieldInput, input),
			logging.String("target", result.Target),
		)
		result.Outcome = OutcomeSkipped
		return result
	}

	data, service, err := d.lookup(ctx, input, &result)
	if err != nil {
		result.Outcome = OutcomeFailed
		if errors.Is(err, services.ErrNotFound) {
			result.Outcome = OutcomeNotFound
		}
		result.Err = err
		return result
	}

	if d.opts.ConvertEncoding {
		converted, err := subtext.Normalize(data)
		if err != nil {
			result.Outcome = OutcomeFailed
			result.Err = err
			return result
		}
		data = converted
	}

	if fileutil.Exists(result.Target) && d.opts.Backup {
		backupPath, err := fileutil.Backup(result.Target)
		if err != nil {
			result.Outcome = OutcomeFailed
			result.Err = err
			return result
		}
		d.logger.Info("existing subtitle backed up",
			logging.String(logging.FieldInput, input),
			logging.String("backup", backupPath),
		)
	}

	if err := fileutil.WriteFile(result.Target, data); err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	d.logger.Info("subtitle stored",
		logging.String(logging.FieldInput, input),
		logging.String(logging.FieldService, service),
		logging.String("target", result.Target),
		logging.Int("bytes", len(data)),
	)
	result.Outcome = OutcomeStored
	result.Service = service
	result.Bytes = len(data)
	return result
}

// lookup resolves the digest and queries the services in order. The NAPISY24
// fallback only applies to real files; a digest literal cannot be hashed.
func (d *Downloader) lookup(ctx context.Context, input string, result *Result) ([]byte, string, error) {
	var contentDigest string
	var err error
	isLiteral := digest.IsLiteral(input)
	if isLiteral {
		contentDigest, err = digest.ParseLiteral(input)
	} else {
		contentDigest, err = digest.FromFile(input)
	}
	if err != nil {
		return nil, "", err
	}

	npResult, npErr := d.napiprojekt.Download(ctx, napiprojekt.Request{
		Digest:   contentDigest,
		Language: language.NapiprojektToken(d.opts.Language),
	})
	if npErr == nil {
		return npResult.Data, ServiceNapiprojekt, nil
	}
	if isLiteral || d.napisy24 == nil || !services.Retriable(npErr) {
		return nil, "", npErr
	}

	d.logger.Debug("napiprojekt lookup failed; trying napisy24",
		logging.String(logging.FieldInput, input),
		logging.Error(npErr),
	)

	fileHash, fileSize, err := digest.Napisy24Hash(input)
	if err != nil {
		// The fallback is unusable for this file; the napiprojekt answer
		// stands as the lookup verdict.
		return nil, "", npErr
	}
	n24Result, n24Err := d.napisy24.Download(ctx, napisy24.Request{
		FileName: input,
		FileHash: fileHash,
		FileSize: fileSize,
		Digest:   contentDigest,
		Language: language.Napisy24Token(d.opts.Language),
	})
	if n24Err != nil {
		return nil, "", n24Err
	}
	data, err := archive.ExtractFirst(n24Result.Archive)
	if err != nil {
		return nil, "", err
	}
	return data, ServiceNapisy24, nil
}
