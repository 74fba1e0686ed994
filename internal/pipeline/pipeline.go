// Package pipeline orchestrates the disassembly workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/avneradisasm/arch/cpu/avnera"
	"github.com/retroenv/avneradisasm/internal/disasm"
	"github.com/retroenv/avneradisasm/internal/loader"
	"github.com/retroenv/avneradisasm/internal/options"
	"github.com/retroenv/avneradisasm/internal/program"
	"github.com/retroenv/avneradisasm/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete disassembly workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new disassembly pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute runs the complete disassembly pipeline.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, disasmOpts options.Disassembler, writer io.Writer) (*program.Program, error) {
	data, err := p.loader.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading image: %w", err)
	}

	return p.ExecuteWithData(ctx, data, opts, disasmOpts, writer)
}

// ExecuteWithData runs the disassembly pipeline with a pre-loaded image.
// This is useful for testing and programmatic usage where the image is already in memory.
func (p *Pipeline) ExecuteWithData(ctx context.Context, data []byte, opts options.Program,
	disasmOpts options.Disassembler, output io.Writer) (*program.Program, error) {

	p.printInfo(opts, data, disasmOpts)

	dis, err := disasm.New(p.logger, data, disasmOpts)
	if err != nil {
		return nil, fmt.Errorf("creating disassembler: %w", err)
	}

	app, err := dis.Process(ctx)
	if err != nil {
		return nil, fmt.Errorf("disassembling: %w", err)
	}

	w := writer.New(app, output, writer.Options{
		OffsetComments: disasmOpts.OffsetComments,
		ZeroBytes:      disasmOpts.ZeroBytes,
	})
	if err := w.Write(); err != nil {
		return nil, fmt.Errorf("writing listing: %w", err)
	}

	return app, nil
}

// printInfo prints information about the image being processed.
func (p *Pipeline) printInfo(opts options.Program, data []byte, disasmOpts options.Disassembler) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing firmware image",
		log.String("file", opts.Input),
		log.String("arch", avnera.Avnera.Name),
		log.Int("size", len(data)),
		log.Hex("base", disasmOpts.BaseAddress),
	)
}
