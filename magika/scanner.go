// Package magika is the Magika content-type identification engine's
// facade: it orchestrates catalog loading, model configuration,
// deterministic feature extraction, neural inference, and decision
// logic behind a small, synchronous API.
package magika

import (
	"io"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/go-magika/magika/catalog"
	"github.com/go-magika/magika/config"
	"github.com/go-magika/magika/decision"
	"github.com/go-magika/magika/errkind"
	"github.com/go-magika/magika/features"
	"github.com/go-magika/magika/inference"
	"github.com/go-magika/magika/obslog"
)

// ModuleVersion identifies this module's release, as distinct from the
// model a Scanner loads (see Scanner.ModelName).
const ModuleVersion = "0.1.0"

// Scanner is the loaded, immutable-after-construction Magika engine: a
// catalog, a model config, and an inference engine. It is safe for
// concurrent use from multiple goroutines -- each Identify* call reads
// only from this shared, read-only state and allocates its own
// transient feature/score buffers.
type Scanner struct {
	assetsDir string
	modelName string

	cat    *catalog.Catalog
	cfg    config.Config
	engine *inference.Engine

	fs  afero.Fs
	log zerolog.Logger
}

// Option configures a Scanner at construction time.
type Option func(*scannerOptions)

type scannerOptions struct {
	fs      afero.Fs
	log     zerolog.Logger
	backend inference.Backend // override, primarily for tests
}

// WithFilesystem overrides the afero.Fs used for path-backed
// identification. Defaults to afero.NewOsFs().
func WithFilesystem(fs afero.Fs) Option {
	return func(o *scannerOptions) { o.fs = fs }
}

// WithLogger overrides the zerolog.Logger used for construction and
// decision events. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *scannerOptions) { o.log = log }
}

// WithBackend overrides the inference.Backend instead of loading the
// ONNX graph from disk. Intended for tests and for embedders that
// manage their own model lifecycle.
func WithBackend(backend inference.Backend) Option {
	return func(o *scannerOptions) { o.backend = backend }
}

func newScanner(assetsDir, modelName string, opts ...Option) (*Scanner, error) {
	o := &scannerOptions{fs: afero.NewOsFs(), log: obslog.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	cat, err := catalog.Load(assetsDir)
	if err != nil {
		o.log.Error().Err(err).Str("assets_dir", assetsDir).Msg("load content types catalog failed")
		return nil, err
	}
	cfg, err := config.Read(assetsDir, modelName, cat)
	if err != nil {
		o.log.Error().Err(err).Str("assets_dir", assetsDir).Str("model", modelName).Msg("load model config failed")
		return nil, err
	}

	backend := o.backend
	if backend == nil {
		backend, err = newONNXBackend(config.ModelPath(assetsDir, modelName), len(cfg.TargetLabelsSpace))
		if err != nil {
			o.log.Error().Err(err).Str("model", modelName).Msg("load inference backend failed")
			return nil, err
		}
	}

	o.log.Info().
		Str("assets_dir", assetsDir).
		Str("model", modelName).
		Int("labels", cat.Len()).
		Msg("magika scanner loaded")

	return &Scanner{
		assetsDir: assetsDir,
		modelName: modelName,
		cat:       cat,
		cfg:       cfg,
		engine:    inference.NewEngine(backend, cfg.TargetLabelsSpace),
		fs:        o.fs,
		log:       o.log,
	}, nil
}

// ModelName returns the name of the loaded model.
func (s *Scanner) ModelName() string { return s.modelName }

// OutputContentTypes returns every label the facade can surface to
// callers: the model's target label space with each label rewritten
// through the overwrite map (so internal-only labels such as
// "randomtxt" appear only as their targets), plus the facade's own
// fallback labels (empty, directory, symlink, undefined, txt, unknown).
func (s *Scanner) OutputContentTypes() []catalog.Label {
	seen := make(map[catalog.Label]bool)
	out := make([]catalog.Label, 0, len(s.cfg.TargetLabelsSpace)+4)
	add := func(l catalog.Label) {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	for _, l := range s.cfg.TargetLabelsSpace {
		if to, ok := s.cfg.Overwrite(l); ok {
			add(to)
			continue
		}
		add(l)
	}
	add(catalog.Empty)
	add(catalog.Directory)
	add(catalog.Symlink)
	add(catalog.Undefined)
	add(catalog.Txt)
	add(catalog.Unknown)
	return out
}

// ModelContentTypes returns the model's raw target label space, in
// target-label-space order (index-stable, matching the model graph's
// output dimension).
func (s *Scanner) ModelContentTypes() []catalog.Label {
	out := make([]catalog.Label, len(s.cfg.TargetLabelsSpace))
	copy(out, s.cfg.TargetLabelsSpace)
	return out
}

// IdentifyBytes identifies the content type of an in-memory buffer.
func (s *Scanner) IdentifyBytes(b []byte) (Result, error) {
	res, err := s.identify(features.BytesSource(b), int64(len(b)))
	res.Path = ""
	return res, err
}

// IdentifyStream identifies the content type of a stream of the given
// length, without holding the full payload in memory (see spec.md
// §4.6's streaming optimization).
func (s *Scanner) IdentifyStream(r io.Reader, size int64) (Result, error) {
	if size == 0 {
		return s.emptyResult(""), nil
	}
	src, err := drainStream(r, size, s.cfg.BlockSize)
	if err != nil {
		return Result{}, errkind.Newf(errkind.IOError, err, "drain stream")
	}
	return s.identify(src, size)
}

// IdentifyPath identifies the content type at path, handling
// directories, symlinks (no-dereference), missing files, and
// permission errors per spec.md §4.6.
func (s *Scanner) IdentifyPath(path string) (Result, error) {
	info, err := s.lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Path: path, Status: StatusFileNotFound}, nil
		}
		if os.IsPermission(err) {
			return Result{Path: path, Status: StatusPermissionError}, nil
		}
		return Result{}, errkind.Newf(errkind.IOError, err, "stat %q", path)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		dl, _ := s.cat.Info(catalog.Undefined)
		out, _ := s.cat.Info(catalog.Symlink)
		return Result{Path: path, Status: StatusOK, Prediction: &Prediction{
			Dl: toWire(dl), Output: toWire(out), Score: 1.0, OverwriteReason: decision.None,
		}}, nil
	}
	if info.IsDir() {
		dl, _ := s.cat.Info(catalog.Undefined)
		out, _ := s.cat.Info(catalog.Directory)
		return Result{Path: path, Status: StatusOK, Prediction: &Prediction{
			Dl: toWire(dl), Output: toWire(out), Score: 1.0, OverwriteReason: decision.None,
		}}, nil
	}

	f, err := s.fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Path: path, Status: StatusFileNotFound}, nil
		}
		if os.IsPermission(err) {
			return Result{Path: path, Status: StatusPermissionError}, nil
		}
		return Result{}, errkind.Newf(errkind.IOError, err, "open %q", path)
	}
	defer f.Close()

	res, err := s.identify(fileSource{ra: f, size: info.Size()}, info.Size())
	res.Path = path
	return res, err
}

// IdentifyPaths identifies every path in paths, preserving input order.
// A failure on one path never aborts the batch: a path whose
// identification returns an error gets a Result with StatusUnknown.
func (s *Scanner) IdentifyPaths(paths []string) ([]Result, error) {
	out := make([]Result, len(paths))
	for i, p := range paths {
		res, err := s.IdentifyPath(p)
		if err != nil {
			res = Result{Path: p, Status: StatusUnknown}
		}
		out[i] = res
	}
	return out, nil
}

// lstat uses afero.Lstater when the underlying Fs supports it (so
// symlinks are reported without being dereferenced), falling back to a
// plain Stat otherwise.
func (s *Scanner) lstat(path string) (os.FileInfo, error) {
	if ls, ok := s.fs.(afero.Lstater); ok {
		info, _, err := ls.LstatIfPossible(path)
		return info, err
	}
	return s.fs.Stat(path)
}

func (s *Scanner) emptyResult(path string) Result {
	s.log.Debug().Msg("empty input short-circuit")
	dl, _ := s.cat.Info(catalog.Undefined)
	out, _ := s.cat.Info(catalog.Empty)
	return Result{Path: path, Status: StatusOK, Prediction: &Prediction{
		Dl: toWire(dl), Output: toWire(out), Score: 1.0, OverwriteReason: decision.None,
	}}
}

// identify runs the short-circuit ladder and, failing that, the full
// extract -> infer -> decide pipeline, per spec.md §4.6.
func (s *Scanner) identify(src features.ByteSource, size int64) (Result, error) {
	if size == 0 {
		return s.emptyResult(""), nil
	}

	if size < s.cfg.MinFileSizeForDl {
		buf := make([]byte, size)
		if _, err := src.ReadAt(buf, 0); err != nil {
			return Result{}, errkind.Newf(errkind.IOError, err, "read small input")
		}
		label := catalog.Unknown
		if utf8.Valid(buf) {
			label = catalog.Txt
		}
		dl, _ := s.cat.Info(catalog.Undefined)
		out, err := s.cat.Info(label)
		if err != nil {
			return Result{}, err
		}
		s.log.Debug().Int64("size", size).Str("label", string(label)).Msg("below min_file_size_for_dl short-circuit")
		return Result{Status: StatusOK, Prediction: &Prediction{
			Dl: toWire(dl), Output: toWire(out), Score: 1.0, OverwriteReason: decision.None,
		}}, nil
	}

	vec, err := features.Extract(s.cfg, src)
	if err != nil {
		return Result{}, err
	}
	pred, err := s.engine.Predict(vec.Flatten())
	if err != nil {
		return Result{}, err
	}
	outputLabel, reason, err := decision.Decide(pred, s.cfg, s.cat)
	if err != nil {
		return Result{}, err
	}

	dlInfo, err := s.cat.Info(pred.Label)
	if err != nil {
		return Result{}, err
	}
	outInfo, err := s.cat.Info(outputLabel)
	if err != nil {
		return Result{}, err
	}

	if reason != decision.None {
		s.log.Debug().Str("dl", string(pred.Label)).Str("output", string(outputLabel)).
			Str("reason", string(reason)).Msg("decision logic overrode model prediction")
	}

	scoresMap := make(map[catalog.Label]float32, len(pred.ScoresMap))
	for l, v := range pred.ScoresMap {
		scoresMap[l] = v
	}

	return Result{Status: StatusOK, Prediction: &Prediction{
		Dl:              toWire(dlInfo),
		Output:          toWire(outInfo),
		Score:           pred.Score,
		OverwriteReason: reason,
		ScoresMap:       scoresMap,
	}}, nil
}
