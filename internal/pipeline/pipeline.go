// Package pipeline runs the Load -> Render -> Write sequence over the
// configured templates. Each method re-reads the templates and re-evaluates
// the clock; nothing is cached between runs.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"
	"github.com/jonboulle/clockwork"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
	"git.home.luguber.info/inful/pagebuilder/internal/metrics"
	"git.home.luguber.info/inful/pagebuilder/internal/templates"
)

// Pipeline binds configuration to the template engine.
type Pipeline struct {
	cfg      *config.Config
	engine   *templates.Engine
	clock    clockwork.Clock
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock currentDate is read from.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a Pipeline for cfg.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		engine:   templates.NewEngine(),
		clock:    clockwork.NewRealClock(),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Document is a rendered page.
type Document struct {
	HTML        string
	Fingerprint string
	Data        templates.PageData
}

// Render loads both templates and composes the final document without writing it.
func (p *Pipeline) Render() (*Document, error) {
	report := p.newReport()
	doc, err := p.render(report)
	p.finish(report, err)
	return doc, err
}

// Build renders the document and writes it to the output path.
func (p *Pipeline) Build() (*BuildReport, error) {
	report := p.newReport()
	doc, err := p.render(report)
	if err == nil {
		err = p.stage(report, StageWrite, func() error {
			path, werr := templates.WriteOutput(p.cfg.Output.Directory, p.cfg.Output.File, doc.HTML)
			report.OutputPath = path
			return werr
		})
	}
	p.finish(report, err)
	if err != nil {
		return report, err
	}
	p.logger.Info("Page written",
		logfields.BuildID(report.ID),
		logfields.Output(report.OutputPath),
		logfields.Fingerprint(report.Fingerprint),
		slog.Int("bytes", report.Bytes))
	return report, nil
}

// Module renders the document and wraps it as an ES module.
func (p *Pipeline) Module() (string, error) {
	doc, err := p.Render()
	if err != nil {
		return "", err
	}
	return templates.VirtualModule(doc.HTML)
}

func (p *Pipeline) render(report *BuildReport) (*Document, error) {
	var layout, index templates.Resource
	if err := p.stage(report, StageLoad, func() error {
		var err error
		layout, index, err = templates.LoadResources(p.cfg.Templates.Directory, p.cfg.Templates.Layout, p.cfg.Templates.Index)
		return err
	}); err != nil {
		return nil, err
	}

	doc := &Document{}
	if err := p.stage(report, StageRender, func() error {
		data, err := templates.NewPageData(p.cfg.Site.Title, p.clock, p.cfg.Site.Locale)
		if err != nil {
			return err
		}
		html, err := p.engine.ComposeResources(layout, index, data)
		if err != nil {
			return err
		}
		doc.HTML = html
		doc.Data = data
		doc.Fingerprint = mdfp.CalculateFingerprintFromParts("", html)
		return nil
	}); err != nil {
		return nil, err
	}

	report.Fingerprint = doc.Fingerprint
	report.Bytes = len(doc.HTML)
	return doc, nil
}

func (p *Pipeline) stage(report *BuildReport, name StageName, fn func() error) error {
	start := p.clock.Now()
	err := fn()
	d := p.clock.Since(start)
	report.StageDurations[name] = d
	p.recorder.ObserveStageDuration(string(name), d)

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailed
	}
	p.recorder.IncStageResult(string(name), result)
	p.logger.Debug("Stage finished",
		logfields.BuildID(report.ID),
		logfields.Stage(string(name)),
		logfields.Duration(d),
		logfields.Error(err))
	return err
}

func (p *Pipeline) newReport() *BuildReport {
	return &BuildReport{
		ID:             uuid.NewString(),
		Start:          p.clock.Now(),
		StageDurations: make(map[StageName]time.Duration, 3),
	}
}

func (p *Pipeline) finish(report *BuildReport, err error) {
	report.End = p.clock.Now()
	report.Err = err
	p.recorder.ObserveBuildDuration(report.Duration())
	if err != nil {
		p.recorder.IncBuildOutcome(metrics.BuildFailed)
		return
	}
	p.recorder.IncBuildOutcome(metrics.BuildSuccess)
}
