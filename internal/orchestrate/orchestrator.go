// SPDX-License-Identifier: MPL-2.0

package orchestrate

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"stevedore-cli/internal/compose"
	"stevedore-cli/internal/discovery"
	"stevedore-cli/internal/engine"
	"stevedore-cli/internal/naming"
	"stevedore-cli/pkg/types"
)

type (
	// Orchestrator drives a run across every discovered project. Projects
	// are processed sequentially in discovery order; a failure in one
	// project is recorded and the run continues with the next.
	Orchestrator struct {
		registry   naming.RegistryName
		discoverer *discovery.Discoverer
		engine     engine.Engine
		logger     *log.Logger
		stdout     io.Writer
		stderr     io.Writer
		dryRun     bool
	}

	// Option configures an Orchestrator.
	Option func(*Orchestrator)

	// runMode selects which pipeline the per-project loop executes.
	runMode int
)

const (
	// modeTag rewrites compose files, pinning canonical image names.
	modeTag runMode = iota
	// modeBuild drives the engine's build and push; compose files are
	// not read or written.
	modeBuild
)

// WithDiscoverer replaces the default project discoverer.
func WithDiscoverer(d *discovery.Discoverer) Option {
	return func(o *Orchestrator) {
		o.discoverer = d
	}
}

// WithEngine sets the container engine used for build and push.
// Tag-only runs do not need one.
func WithEngine(eng engine.Engine) Option {
	return func(o *Orchestrator) {
		o.engine = eng
	}
}

// WithLogger sets the logger for progress and warnings.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithOutput redirects engine stdout/stderr, primarily for tests.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *Orchestrator) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// WithDryRun computes and reports image references without writing
// compose files or invoking the engine.
func WithDryRun(dryRun bool) Option {
	return func(o *Orchestrator) {
		o.dryRun = dryRun
	}
}

// New creates an orchestrator. The registry may be empty for build-push
// runs, which never mint image names; Tag rejects an empty registry.
func New(registry naming.RegistryName, opts ...Option) (*Orchestrator, error) {
	if registry != "" {
		if err := registry.Validate(); err != nil {
			return nil, err
		}
	}

	o := &Orchestrator{
		registry:   registry,
		discoverer: discovery.New(),
		logger:     log.Default(),
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Tag discovers every project under root and rewrites its compose file
// so each service is pinned to its canonical image reference.
func (o *Orchestrator) Tag(ctx context.Context, root string) (*Report, error) {
	if err := o.registry.Validate(); err != nil {
		return nil, err
	}
	return o.run(ctx, root, modeTag)
}

// BuildPush discovers every project under root and drives the engine's
// compose build then compose push for each. Compose files are taken as
// they are; pinning image names first is a separate Tag run.
func (o *Orchestrator) BuildPush(ctx context.Context, root string) (*Report, error) {
	if o.engine == nil {
		return nil, &engine.NotAvailableError{
			Engine: "any",
			Reason: "no engine configured for build and push",
		}
	}
	return o.run(ctx, root, modeBuild)
}

// run is the shared per-project loop. Discovery failures abort the run;
// everything after discovery is isolated per project. Every discovered
// project starts pending; a canceled context leaves the unprocessed
// tail in that state.
func (o *Orchestrator) run(ctx context.Context, root string, mode runMode) (*Report, error) {
	projects, err := o.discoverer.Discover(root)
	if err != nil {
		return nil, err
	}

	report := &Report{Projects: make([]ProjectReport, len(projects))}
	for i, project := range projects {
		report.Projects[i] = ProjectReport{Project: project, Status: StatusPending}
	}

	for i := range report.Projects {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		pr := &report.Projects[i]
		pr.Status = StatusProcessing

		var skipped bool
		pr.Images, skipped, pr.Err = o.processProject(ctx, pr.Project, mode)

		switch {
		case pr.Err != nil:
			pr.Status = StatusFailed
			o.logger.Error("project failed", "project", pr.Project.Name, "err", pr.Err)
		case skipped:
			pr.Status = StatusSkipped
			o.logger.Info("project skipped", "project", pr.Project.Name)
		default:
			pr.Status = StatusDone
			o.logger.Info("project done", "project", pr.Project.Name, "images", len(pr.Images))
		}
	}

	return report, nil
}

// processProject runs one project through the selected pipeline.
// The skipped return is true when the override file excludes the project.
func (o *Orchestrator) processProject(ctx context.Context, project discovery.Project, mode runMode) ([]naming.ImageReference, bool, error) {
	overrides, err := LoadOverrides(project.Dir)
	if err != nil {
		return nil, false, err
	}
	if overrides.Skip {
		return nil, true, nil
	}

	if mode == modeBuild {
		if o.dryRun {
			return nil, false, nil
		}
		opts := engine.ProjectOptions{
			ProjectDir: types.FilesystemPath(project.Dir),
			Stdout:     o.stdout,
			Stderr:     o.stderr,
		}
		return nil, false, buildAndPush(ctx, o.engine, project.Name, opts)
	}

	tag, err := overrides.EffectiveTag()
	if err != nil {
		return nil, false, err
	}

	images, err := o.tagProject(project, tag)
	if err != nil {
		return nil, false, err
	}
	return images, false, nil
}

// tagProject rewrites one compose file, pinning every service image.
// In dry-run mode the references are computed but nothing is written.
func (o *Orchestrator) tagProject(project discovery.Project, tag naming.ImageTag) ([]naming.ImageReference, error) {
	doc, err := compose.Load(project.File)
	if err != nil {
		return nil, err
	}

	services, err := doc.Services()
	if err != nil {
		return nil, err
	}

	images := make([]naming.ImageReference, 0, len(services))
	for _, service := range services {
		ref, err := naming.ResolveWithTag(o.registry, naming.ProjectID(project.Name), service, tag)
		if err != nil {
			return nil, err
		}
		if err := doc.SetImage(service, ref); err != nil {
			return nil, err
		}
		images = append(images, ref)
	}

	if o.dryRun {
		o.logger.Info("dry run, compose file unchanged", "path", doc.Path())
		return images, nil
	}

	if err := doc.Save(); err != nil {
		return nil, err
	}

	return images, nil
}
