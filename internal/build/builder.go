package build

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitedata/internal/config"
	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/events"
	"git.home.luguber.info/inful/sitedata/internal/frontmatter"
	"git.home.luguber.info/inful/sitedata/internal/gitmeta"
	"git.home.luguber.info/inful/sitedata/internal/locales"
	"git.home.luguber.info/inful/sitedata/internal/logfields"
	"git.home.luguber.info/inful/sitedata/internal/markdown"
	"git.home.luguber.info/inful/sitedata/internal/metrics"
	"git.home.luguber.info/inful/sitedata/internal/records"
	"git.home.luguber.info/inful/sitedata/internal/state"
)

// Builder runs the scan → parse → validate → generate pipeline.
type Builder struct {
	cfg        *config.Config
	site       *records.Site
	translator *locales.Translator
	rec        metrics.Recorder
	store      *state.Store
	git        *gitmeta.Resolver
	announcer  *events.Announcer
}

// Option configures optional builder collaborators.
type Option func(*Builder)

// WithRecorder injects a metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(b *Builder) { b.rec = rec }
}

// WithStore injects the incremental-build state store.
func WithStore(store *state.Store) Option {
	return func(b *Builder) { b.store = store }
}

// WithGitResolver injects the git last-modified resolver.
func WithGitResolver(r *gitmeta.Resolver) Option {
	return func(b *Builder) { b.git = r }
}

// WithAnnouncer injects the NATS build announcer.
func WithAnnouncer(a *events.Announcer) Option {
	return func(b *Builder) { b.announcer = a }
}

// New constructs a builder from configuration.
func New(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg: cfg,
		site: &records.Site{
			BaseURL:  cfg.Site.BaseURL,
			Language: cfg.Site.Language,
			Name:     cfg.Site.Name,
		},
		translator: locales.New(cfg.Site.Language),
		rec:        metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Result summarizes one build run.
type Result struct {
	BuildID    string
	Outcome    string
	Pages      int
	Changed    int
	Artifacts  int
	Skipped    bool
	StartedAt  time.Time
	FinishedAt time.Time
	Errors     []error
}

// document is one scanned content file with its parsed metadata. Non-page
// documents (unparsable, drafts, non-Markdown) keep page nil but still
// contribute to navigation.
type document struct {
	file        *records.File
	meta        records.Metadata
	body        []byte
	page        *records.Page
	fingerprint string
	changed     bool
}

// Run executes one build. force bypasses the unchanged-content skip.
func (b *Builder) Run(ctx context.Context, force bool) (*Result, error) {
	started := time.Now()
	res := &Result{BuildID: uuid.NewString(), StartedAt: started}

	slog.Info("build started", logfields.BuildID(res.BuildID), logfields.Path(b.cfg.Content.Dir))

	files, err := Scan(b.cfg.Content.Dir, b.cfg.Content.Patterns)
	if err != nil {
		b.rec.IncBuildOutcome("failed")
		return nil, fmt.Errorf("scan content: %w", err)
	}
	b.rec.SetPagesScanned(len(files))

	docs := b.parse(files, res)
	res.Pages = countPages(docs)

	if skip, err := b.evaluateSkip(ctx, docs, force); err != nil {
		res.Errors = append(res.Errors, err)
	} else if skip {
		res.Skipped = true
		res.Outcome = "skipped"
		res.FinishedAt = time.Now()
		slog.Info("build skipped, content unchanged", logfields.BuildID(res.BuildID))
		return res, nil
	}

	b.resolveLastModified(ctx, docs)
	b.checkInternalLinks(docs)

	b.generate(docs, res)

	if err := b.persist(ctx, docs, res, started); err != nil {
		res.Errors = append(res.Errors, err)
	}

	res.FinishedAt = time.Now()
	res.Outcome = outcome(res)
	b.rec.ObserveBuildDuration(res.FinishedAt.Sub(started))
	b.rec.IncBuildOutcome(res.Outcome)

	if b.announcer != nil {
		if err := b.announcer.Announce(events.BuildCompleted{
			BuildID:    res.BuildID,
			Outcome:    res.Outcome,
			Pages:      res.Pages,
			Artifacts:  res.Artifacts,
			DurationMS: float64(res.FinishedAt.Sub(started).Milliseconds()),
		}); err != nil {
			slog.Warn("build announcement failed", logfields.Error(err))
		}
	}

	slog.Info("build finished",
		logfields.BuildID(res.BuildID),
		slog.String("outcome", res.Outcome),
		logfields.Count(res.Artifacts),
		logfields.DurationMS(float64(res.FinishedAt.Sub(started).Milliseconds())))
	return res, nil
}

// parse splits frontmatter and constructs page records. Parse and
// validation failures are isolated per document.
func (b *Builder) parse(files []*records.File, res *Result) []*document {
	docs := make([]*document, 0, len(files))
	for _, f := range files {
		doc := &document{file: f, meta: records.Metadata{}}
		docs = append(docs, doc)
		if f.Extension != "md" {
			doc.fingerprint = state.DocumentFingerprint("", f.Content)
			continue
		}

		fm, body, _, err := frontmatter.Split([]byte(f.Content))
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s: %w", f.Name, err))
			b.rec.IncValidationError(string(errors.KindStructural))
			continue
		}
		doc.body = body
		doc.fingerprint = state.DocumentFingerprint(string(fm), string(body))

		fields, err := frontmatter.Parse(fm)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s: %w", f.Name, err))
			b.rec.IncValidationError(string(errors.KindStructural))
			continue
		}
		doc.meta = frontmatter.Flatten(fields)

		if doc.meta.Get("draft") == "true" {
			slog.Debug("skipping draft", logfields.File(f.Name))
			continue
		}
		if doc.meta.Get("permalink") == "" {
			doc.meta["permalink"] = permalinkFor(f)
		}
		if doc.meta.Get("description") == "" && len(body) > 0 {
			doc.meta["description"] = markdown.Excerpt(body, records.MaxDescriptionLength)
		}

		page, err := records.NewPage(doc.meta, b.site)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s: %w", f.Name, err))
			b.rec.IncValidationError(string(errors.GetKind(err)))
			continue
		}
		if err := page.Validate(); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s: %w", f.Name, err))
			b.rec.IncValidationError(string(errors.GetKind(err)))
			continue
		}
		doc.page = page
	}
	return docs
}

// evaluateSkip reports whether nothing changed since the last recorded
// build. Without a store every build is full.
func (b *Builder) evaluateSkip(ctx context.Context, docs []*document, force bool) (bool, error) {
	if b.store == nil {
		return false, nil
	}
	changed := 0
	for _, doc := range docs {
		c, err := b.store.Changed(ctx, doc.file.Name, doc.fingerprint)
		if err != nil {
			return false, fmt.Errorf("state lookup: %w", err)
		}
		doc.changed = c
		if c {
			changed++
		}
	}
	if force {
		return false, nil
	}
	last, err := b.store.LastBuild(ctx)
	if err != nil {
		return false, fmt.Errorf("state lookup: %w", err)
	}
	return changed == 0 && last != nil, nil
}

// resolveLastModified fills missing page LastMod from git history.
func (b *Builder) resolveLastModified(ctx context.Context, docs []*document) {
	if b.git == nil {
		return
	}
	for _, doc := range docs {
		if doc.page == nil || !doc.page.LastMod.IsZero() {
			continue
		}
		when, err := b.git.LastModified(ctx, doc.file.Name)
		if err != nil {
			slog.Warn("git lastmod lookup failed", logfields.File(doc.file.Name), logfields.Error(err))
			continue
		}
		if !when.IsZero() {
			doc.page.LastMod = when
		}
	}
}

// checkInternalLinks warns about root-relative links that resolve to no
// known document stem. Warnings never fail the build.
func (b *Builder) checkInternalLinks(docs []*document) {
	stems := map[string]bool{"": true}
	for _, doc := range docs {
		stems[doc.file.Stem()] = true
	}
	for _, doc := range docs {
		if len(doc.body) == 0 {
			continue
		}
		for _, link := range markdown.ExtractLinks(doc.body) {
			if !strings.HasPrefix(link, "/") {
				continue
			}
			stem := strings.Trim(link, "/")
			if i := strings.IndexByte(stem, '/'); i >= 0 {
				stem = stem[:i]
			}
			if i := strings.IndexByte(stem, '#'); i >= 0 {
				stem = stem[:i]
			}
			if stem != "" && !stems[stem] && !strings.Contains(stem, ".") {
				slog.Warn("internal link target not found",
					logfields.File(doc.file.Name), logfields.URL(link))
			}
		}
	}
}

// persist records fingerprints and the build itself.
func (b *Builder) persist(ctx context.Context, docs []*document, res *Result, started time.Time) error {
	if b.store == nil {
		return nil
	}
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, doc.file.Name)
		if err := b.store.Upsert(ctx, doc.file.Name, doc.fingerprint, res.BuildID); err != nil {
			return err
		}
		if doc.changed {
			res.Changed++
		}
	}
	if err := b.store.Prune(ctx, names); err != nil {
		return err
	}
	return b.store.RecordBuild(ctx, state.BuildRecord{
		ID:         res.BuildID,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Outcome:    outcome(res),
		Pages:      res.Pages,
		Artifacts:  res.Artifacts,
	})
}

func countPages(docs []*document) int {
	n := 0
	for _, doc := range docs {
		if doc.page != nil {
			n++
		}
	}
	return n
}

func outcome(res *Result) string {
	switch {
	case len(res.Errors) == 0:
		return "success"
	case res.Artifacts > 0:
		return "partial"
	default:
		return "failed"
	}
}

// permalinkFor derives the default permalink from a file name:
// posts/hello.md becomes /posts/hello/ and index documents map to their
// directory.
func permalinkFor(f *records.File) string {
	name := strings.TrimSuffix(f.Name, "."+f.Extension)
	name = strings.TrimSuffix(name, "index")
	name = strings.Trim(name, "/")
	if name == "" {
		return "/"
	}
	return "/" + name + "/"
}

// sortPagesByDate orders documents newest-first; undated pages go last in
// name order.
func sortPagesByDate(docs []*document) []*document {
	pages := make([]*document, 0, len(docs))
	for _, doc := range docs {
		if doc.page != nil {
			pages = append(pages, doc)
		}
	}
	sort.SliceStable(pages, func(i, j int) bool {
		di, dj := pages[i].page.Date, pages[j].page.Date
		if di.IsZero() != dj.IsZero() {
			return !di.IsZero()
		}
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return pages[i].file.Name < pages[j].file.Name
	})
	return pages
}
