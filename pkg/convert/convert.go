package convert

import (
	"time"

	"github.com/google/uuid"

	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/filesystem"
	"github.com/arthur-debert/packmapper/pkg/logging"
	"github.com/arthur-debert/packmapper/pkg/passes"
	"github.com/arthur-debert/packmapper/pkg/paths"
	"github.com/arthur-debert/packmapper/pkg/rules"
)

// Pipeline steps, as recorded in the "step" detail of a conversion error
const (
	StepValidate  = "validate"
	StepWorkspace = "workspace"
	StepAcquire   = "acquire"
	StepAssemble  = "assemble"
)

// RunResult describes a finished conversion
type RunResult struct {
	RunID             string           `json:"run_id"`
	Input             string           `json:"input"`
	Output            string           `json:"output"`
	OutputKind        OutputKind       `json:"output_kind"`
	OutputBytes       int64            `json:"output_bytes"`
	Duration          time.Duration    `json:"duration"`
	Reports           []*passes.Report `json:"reports"`
	RequiredNewAssets []string         `json:"required_new_assets"`
}

// Changed returns the number of items changed across all passes
func (r *RunResult) Changed() int {
	total := 0
	for _, report := range r.Reports {
		total += report.Changed()
	}
	return total
}

// Warnings returns the number of warnings across all passes
func (r *RunResult) Warnings() int {
	total := 0
	for _, report := range r.Reports {
		total += len(report.Warnings)
	}
	return total
}

// Converter converts packs with one rule set. It holds no per-run state
// and may run several conversions at once.
type Converter struct {
	// Rules drives the passes and the advisory
	Rules *rules.RuleSet

	// Layout names the files and directories of a pack
	Layout paths.Layout

	// Source reads the input; it should reject writes
	Source filesystem.FS

	// FS holds the workspaces and receives the output
	FS filesystem.FS

	// TempDir is the parent of the workspaces, the system temp dir when empty
	TempDir string

	// Passes overrides passes.Default(Rules) when set
	Passes []passes.Pass
}

// NewConverter returns a Converter working on the host filesystem
func NewConverter(rs *rules.RuleSet, layout paths.Layout) *Converter {
	return &Converter{
		Rules:  rs,
		Layout: layout,
		Source: filesystem.NewReadOnlyOS(),
		FS:     filesystem.NewOS(),
	}
}

// Convert converts the pack at input and writes it to output. Any
// failure is returned as an ErrConversion error wrapping its cause.
func (c *Converter) Convert(input, output string) (*RunResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := logging.ForRun("convert", runID)

	fail := func(step string, err error) (*RunResult, error) {
		logger.Error().Err(err).Str("step", step).Msg("Conversion failed")
		return nil, errors.Wrapf(err, errors.ErrConversion, "conversion failed at %s", step).
			WithDetails(map[string]interface{}{
				"input":  input,
				"output": output,
				"step":   step,
			})
	}

	if err := c.validate(input, output); err != nil {
		return fail(StepValidate, err)
	}

	ws, err := filesystem.NewWorkspace(c.FS, c.TempDir, runID)
	if err != nil {
		return fail(StepWorkspace, err)
	}
	defer func() {
		if err := ws.Remove(); err != nil {
			logger.Warn().Err(err).Str("path", ws.Root()).Msg("Cannot remove work directory")
		}
	}()

	logger.Info().Str("input", input).Str("output", output).Msg("Starting conversion")

	done := logging.StartStep(logger, StepAcquire)
	if err := Acquire(c.Source, input, ws, c.Layout); err != nil {
		return fail(StepAcquire, err)
	}
	done()

	tree := passes.Tree{FS: c.FS, Root: ws.Root(), Layout: c.Layout}
	pipeline := c.Passes
	if pipeline == nil {
		pipeline = passes.Default(c.Rules)
	}

	reports := make([]*passes.Report, 0, len(pipeline))
	for _, pass := range pipeline {
		done := logging.StartStep(logger, pass.Name())
		report, err := pass.Apply(tree)
		if err != nil {
			return fail(pass.Name(), err)
		}
		done()
		for _, w := range report.Warnings {
			logger.Warn().Str("pass", pass.Name()).Str("path", w.Path).Str("reason", w.Reason).Msg("File left untouched")
		}
		reports = append(reports, report)
	}

	done = logging.StartStep(logger, StepAssemble)
	written, err := Assemble(c.FS, ws.Root(), output, c.Layout)
	if err != nil {
		return fail(StepAssemble, err)
	}
	done()

	result := &RunResult{
		RunID:             runID,
		Input:             input,
		Output:            output,
		OutputKind:        KindOf(c.Layout, output),
		OutputBytes:       written,
		Duration:          time.Since(start),
		Reports:           reports,
		RequiredNewAssets: c.Rules.RequiredNewAssets(),
	}
	logger.Info().
		Int("changed", result.Changed()).
		Int("warnings", result.Warnings()).
		Int64("bytes", written).
		Dur("duration", result.Duration).
		Msg("Conversion complete")
	return result, nil
}

// validate rejects runs whose output overlaps their input
func (c *Converter) validate(input, output string) error {
	if input == "" || output == "" {
		return errors.New(errors.ErrInput, "input and output are both required")
	}
	// Archive output is refused inside a directory input too: the next run
	// would copy the previous archive into the pack it converts
	inside, err := paths.IsWithin(input, output)
	if err != nil {
		return errors.Wrap(err, errors.ErrInput, "cannot resolve input and output paths")
	}
	if inside {
		return errors.Newf(errors.ErrInput, "output %s is inside input %s", output, input).
			WithDetail("input", input).
			WithDetail("output", output)
	}

	if KindOf(c.Layout, output) == OutputDirectory {
		// Replacing the output directory would delete the input
		contains, err := paths.IsWithin(output, input)
		if err != nil {
			return errors.Wrap(err, errors.ErrInput, "cannot resolve input and output paths")
		}
		if contains {
			return errors.Newf(errors.ErrInput, "input %s is inside output directory %s", input, output).
				WithDetail("input", input).
				WithDetail("output", output)
		}
	}
	return nil
}
