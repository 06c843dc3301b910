package build

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitedata/internal/config"
	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/gen"
	"git.home.luguber.info/inful/sitedata/internal/logfields"
	"git.home.luguber.info/inful/sitedata/internal/metrics"
	"git.home.luguber.info/inful/sitedata/internal/records"
)

// errSkipArtifact signals a producer that has nothing to generate; the
// artifact is counted as skipped, not failed.
var errSkipArtifact = fmt.Errorf("artifact skipped")

// generate runs every enabled artifact producer and writes the results.
func (b *Builder) generate(docs []*document, res *Result) {
	if b.cfg.Output.Clean {
		if err := os.RemoveAll(b.cfg.Output.Dir); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("clean output: %w", err))
			return
		}
	}

	siteMeta := b.siteMetadata(docs)
	arts := b.cfg.Artifacts

	type producer struct {
		enabled bool
		name    string
		relPath string
		produce func() (string, error)
	}
	producers := []producer{
		{config.Enabled(arts.Sitemap), "sitemap", "sitemap.xml", func() (string, error) {
			return b.produceSitemap(docs, res)
		}},
		{config.Enabled(arts.NewsSitemap), "news_sitemap", "news-sitemap.xml", func() (string, error) {
			return b.produceNewsSitemap(docs, res)
		}},
		{config.Enabled(arts.RSS), "rss", "rss.xml", func() (string, error) {
			return b.produceFeed(docs, siteMeta)
		}},
		{config.Enabled(arts.Manifest), "manifest", "manifest.json", func() (string, error) {
			return b.produceManifest(siteMeta)
		}},
		{config.Enabled(arts.SecurityTxt), "security_txt", ".well-known/security.txt", func() (string, error) {
			return b.produceSecurityTxt(siteMeta)
		}},
		{config.Enabled(arts.Robots), "robots", "robots.txt", func() (string, error) {
			return b.produceRobots(siteMeta)
		}},
		{config.Enabled(arts.Humans), "humans", "humans.txt", func() (string, error) {
			return b.produceHumans(siteMeta)
		}},
		{config.Enabled(arts.CNAME), "cname", "CNAME", func() (string, error) {
			return b.produceCNAME(siteMeta)
		}},
		{config.Enabled(arts.TagIndex), "tag_index", "tags/index.html", func() (string, error) {
			return b.produceTagIndex(docs)
		}},
		{config.Enabled(arts.Navigation), "navigation", "navigation.html", func() (string, error) {
			return b.produceNavigation(docs)
		}},
	}

	for _, p := range producers {
		if !p.enabled {
			continue
		}
		b.emit(p.name, p.relPath, res, p.produce)
	}

	if config.Enabled(arts.MetaTags) {
		b.emitMetaTags(docs, res)
	}
}

// emit runs one producer and writes its output. A producer returning
// errSkipArtifact is counted as skipped; every other error is isolated into
// the build result.
func (b *Builder) emit(name, relPath string, res *Result, produce func() (string, error)) {
	started := time.Now()
	out, err := produce()
	b.rec.ObserveArtifactDuration(name, time.Since(started))

	if err == errSkipArtifact {
		b.rec.IncArtifactResult(name, metrics.ResultSkipped)
		slog.Debug("artifact skipped", logfields.Artifact(name))
		return
	}
	if err != nil {
		b.rec.IncArtifactResult(name, metrics.ResultFailed)
		b.rec.IncValidationError(string(errors.GetKind(err)))
		res.Errors = append(res.Errors, fmt.Errorf("%s: %w", name, err))
		slog.Error("artifact generation failed", logfields.Artifact(name), logfields.Error(err))
		return
	}
	if err := writeArtifact(b.cfg.Output.Dir, relPath, out); err != nil {
		b.rec.IncArtifactResult(name, metrics.ResultFailed)
		res.Errors = append(res.Errors, fmt.Errorf("%s: %w", name, err))
		slog.Error("artifact write failed", logfields.Artifact(name), logfields.Error(err))
		return
	}
	res.Artifacts++
	b.rec.IncArtifactResult(name, metrics.ResultSuccess)
	slog.Debug("artifact written", logfields.Artifact(name), logfields.Path(relPath))
}

// siteMetadata returns the root index document's metadata; site-level
// artifacts (manifest, security.txt, robots, humans, CNAME) derive from it.
func (b *Builder) siteMetadata(docs []*document) records.Metadata {
	for _, doc := range docs {
		if doc.file.Name == "index.md" {
			return doc.meta
		}
	}
	return records.Metadata{}
}

func (b *Builder) produceSitemap(docs []*document, res *Result) (string, error) {
	var sm records.Sitemap
	for _, doc := range docs {
		if doc.page == nil {
			continue
		}
		entry, err := records.NewSitemapEntry(doc.meta, b.site)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s: %w", doc.file.Name, err))
			continue
		}
		if entry.LastMod.IsZero() {
			entry.LastMod = doc.page.LastMod
		}
		sm.Add(*entry)
	}
	if len(sm.Entries) == 0 {
		return "", errSkipArtifact
	}
	if err := sm.Validate(); err != nil {
		return "", err
	}
	return gen.Sitemap(&sm), nil
}

func (b *Builder) produceNewsSitemap(docs []*document, res *Result) (string, error) {
	var ns records.NewsSitemap
	for _, doc := range docs {
		if doc.page == nil || !doc.meta.Has("news_title") {
			continue
		}
		entry, err := records.NewNewsEntry(doc.meta, b.site)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s: %w", doc.file.Name, err))
			continue
		}
		ns.Add(*entry)
	}
	if len(ns.Entries) == 0 {
		return "", errSkipArtifact
	}
	if err := ns.Validate(); err != nil {
		return "", err
	}
	return gen.NewsSitemap(&ns), nil
}

func (b *Builder) produceFeed(docs []*document, siteMeta records.Metadata) (string, error) {
	title := b.cfg.Feed.Title
	if title == "" {
		title = b.site.Name
	}
	if title == "" || b.site.BaseURL == "" {
		return "", errSkipArtifact
	}

	description := b.cfg.Feed.Description
	if description == "" {
		description = siteMeta.Get("description")
	}
	// RSS 2.0 requires a channel description; fall back to the title.
	if description == "" {
		description = title
	}
	base := strings.TrimRight(b.site.BaseURL, "/")

	feed := &records.Feed{
		Title:       title,
		Link:        b.site.BaseURL,
		Description: description,
		Language:    b.translator.Language(),
		Copyright:   b.cfg.Feed.Copyright,
		Generator:   "sitedata",
		TTL:         b.cfg.Feed.TTL,
		AtomLink:    base + "/rss.xml",
	}

	pages := sortPagesByDate(docs)
	max := b.cfg.Feed.MaxItems
	if max <= 0 || max > len(pages) {
		max = len(pages)
	}
	for _, doc := range pages[:max] {
		feed.AddItem(records.FeedItem{
			Title:       doc.page.Title,
			Link:        doc.page.Permalink,
			Description: doc.page.Description,
			GUID:        doc.page.Permalink,
			Author:      doc.meta.Get("author"),
			PubDate:     doc.page.Date,
		})
	}
	if len(feed.Items) > 0 {
		feed.LastBuildDate = feed.Items[0].PubDate
	}
	if err := feed.Validate(); err != nil {
		return "", err
	}
	return gen.Feed(feed), nil
}

func (b *Builder) produceManifest(siteMeta records.Metadata) (string, error) {
	m, err := records.NewManifest(siteMeta, b.site)
	if errors.IsKind(err, errors.KindMissingField) {
		return "", errSkipArtifact
	}
	if err != nil {
		return "", err
	}
	if err := m.Validate(); err != nil {
		return "", err
	}
	return gen.Manifest(m)
}

func (b *Builder) produceSecurityTxt(siteMeta records.Metadata) (string, error) {
	if !siteMeta.Has("security_contact") {
		return "", errSkipArtifact
	}
	s, err := records.NewSecurityPolicy(siteMeta, b.site)
	if err != nil {
		return "", err
	}
	if err := s.Validate(); err != nil {
		return "", err
	}
	return gen.SecurityTxt(s), nil
}

func (b *Builder) produceRobots(siteMeta records.Metadata) (string, error) {
	r, err := records.NewRobots(siteMeta, b.site)
	if err != nil {
		return "", err
	}
	if err := r.Validate(); err != nil {
		return "", err
	}
	return gen.Robots(r), nil
}

func (b *Builder) produceHumans(siteMeta records.Metadata) (string, error) {
	h, err := records.NewHumans(siteMeta, b.site)
	if err != nil {
		return "", err
	}
	if err := h.Validate(); err != nil {
		return "", err
	}
	out := gen.Humans(h)
	if out == "" {
		return "", errSkipArtifact
	}
	return out, nil
}

func (b *Builder) produceCNAME(siteMeta records.Metadata) (string, error) {
	if !siteMeta.Has("cname") {
		return "", errSkipArtifact
	}
	c, err := records.NewCNAME(siteMeta, b.site)
	if err != nil {
		return "", err
	}
	if err := c.Validate(); err != nil {
		return "", err
	}
	return gen.CNAME(c), nil
}

func (b *Builder) produceTagIndex(docs []*document) (string, error) {
	ti := records.NewTagIndex()
	for _, doc := range docs {
		if doc.page != nil {
			ti.CollectPage(doc.meta, doc.page)
		}
	}
	if ti.TotalPages() == 0 {
		return "", errSkipArtifact
	}
	return gen.TagIndexWithHeading(ti, b.translator.Lookup("featured_tags"))
}

// produceNavigation prefers pages that opt in with nav: true (ordered by
// nav_weight, depth from directory nesting); without any it derives the
// flat menu from file stems. Drafts and failed documents stay out either
// way.
func (b *Builder) produceNavigation(docs []*document) (string, error) {
	type navDoc struct {
		doc    *document
		weight int
	}
	var opted []navDoc
	var navFiles []*records.File
	for _, doc := range docs {
		if doc.file.Extension != "md" || doc.page != nil {
			navFiles = append(navFiles, doc.file)
		}
		if doc.page == nil || doc.meta.Get("nav") != "true" {
			continue
		}
		weight, _ := strconv.Atoi(doc.meta.GetDefault("nav_weight", "0"))
		opted = append(opted, navDoc{doc: doc, weight: weight})
	}
	if len(opted) == 0 {
		return gen.NavigationFromFiles(navFiles), nil
	}

	sort.SliceStable(opted, func(i, j int) bool {
		if opted[i].weight != opted[j].weight {
			return opted[i].weight < opted[j].weight
		}
		return opted[i].doc.file.Name < opted[j].doc.file.Name
	})

	nav := &records.Navigation{}
	prev := -1
	for _, nd := range opted {
		depth := strings.Count(path.Dir(nd.doc.file.Name), "/")
		if path.Dir(nd.doc.file.Name) == "." {
			depth = 0
		} else {
			depth++
		}
		// Depth may grow by at most one per item.
		if depth > prev+1 {
			depth = prev + 1
		}
		title := nd.doc.meta.GetDefault("nav_title", nd.doc.page.Title)
		nav.Add(records.NavItem{Title: title, Permalink: nd.doc.page.Permalink, Depth: depth})
		prev = depth
	}
	if err := nav.Validate(); err != nil {
		return "", err
	}
	return gen.Navigation(nav)
}

// emitMetaTags writes one meta-tag block per page under metatags/.
func (b *Builder) emitMetaTags(docs []*document, res *Result) {
	for _, doc := range docs {
		if doc.page == nil {
			continue
		}
		rel := "metatags/" + strings.TrimSuffix(doc.file.Name, "."+doc.file.Extension) + ".html"
		b.emit("meta_tags", rel, res, func() (string, error) {
			g, err := records.NewMetaTagGroups(doc.meta, b.site)
			if err != nil {
				return "", err
			}
			if err := g.Validate(); err != nil {
				return "", err
			}
			out := gen.MetaTags(g)
			if out == "" {
				return "", errSkipArtifact
			}
			return out, nil
		})
	}
}
