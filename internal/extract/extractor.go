package extract

import (
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"RogueMon/internal/model"
	"RogueMon/internal/rogue"
	"RogueMon/internal/state"
)

// Options configures one extraction pass.
type Options struct {
	Channel  uint8
	TimePath string
	Sentinel string
	Fields   []model.Field

	// OnRecord, when set, is invoked for every record as it is
	// emitted; live consumers hook in here.
	OnRecord func(model.Record)
}

// FromConfig builds pass options from the loaded configuration.
func FromConfig(cfg *model.Config) Options {
	return Options{
		Channel:  uint8(cfg.Channel),
		TimePath: cfg.TimePath,
		Sentinel: cfg.Sentinel,
		Fields:   cfg.Fields,
	}
}

// Extractor runs the pipeline: frame reader, state merge, and
// change-triggered field extraction. Each Run owns its own state tree,
// so independent captures can be processed concurrently by independent
// extractors.
type Extractor struct {
	opts   Options
	cols   []column
	merger *Merger
	log    zerolog.Logger
}

// New compiles the configured field list and prepares a pass.
func New(opts Options) (*Extractor, error) {
	if opts.TimePath == "" {
		opts.TimePath = "Root.Time"
	}
	if opts.Sentinel == "" {
		opts.Sentinel = "N/A"
	}
	cols, err := compileFields(opts.Fields)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		opts:   opts,
		cols:   cols,
		merger: NewMerger(opts.TimePath),
		log:    log.With().Str("component", "extract").Logger(),
	}, nil
}

// Header returns the output column list, Timestamp first.
func (e *Extractor) Header() []string {
	h := make([]string, 0, len(e.cols)+1)
	h = append(h, "Timestamp")
	for _, c := range e.cols {
		h = append(h, c.name)
	}
	return h
}

// Result is the outcome of one pass. On a fatal stream error the
// records gathered up to that point are still populated.
type Result struct {
	RunID         uuid.UUID
	Records       []model.Record
	FramesScanned int
	FramesMatched int
	FramesSkipped int // matched frames dropped as undecodable
	BytesConsumed int64
	Elapsed       time.Duration
}

// Summary converts the result counters to their reporting form.
func (r *Result) Summary() model.Summary {
	return model.Summary{
		RunID:         r.RunID.String(),
		FramesScanned: r.FramesScanned,
		FramesMatched: r.FramesMatched,
		Records:       len(r.Records),
		BytesConsumed: r.BytesConsumed,
	}
}

// Run processes the stream to completion. The returned Result is
// always non-nil; the error is non-nil only for fatal stream-level
// failures, and carries the byte offset of the offending frame.
func (e *Extractor) Run(r io.Reader) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.New()}
	tree := state.NewMapping()
	fr := rogue.NewFrameReader(r, rogue.ReaderConfig{Channel: e.opts.Channel})

	var passErr error
	for {
		frame, err := fr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			passErr = err
			break
		}

		mres, err := e.merger.Apply(tree, frame.Payload)
		if err != nil {
			if errors.Is(err, ErrMalformedPayload) || errors.Is(err, ErrNotMapping) {
				res.FramesSkipped++
				e.log.Debug().Err(err).Int64("offset", fr.BytesConsumed()).Msg("skipping undecodable frame")
				continue
			}
			passErr = err
			break
		}
		if !mres.Advanced() {
			continue
		}

		rec := model.Record{
			Time:   model.FromSeconds(mres.NewTime),
			Values: make([]any, 0, len(e.cols)),
		}
		for _, c := range e.cols {
			rec.Values = append(rec.Values, c.value(tree, e.opts.Sentinel))
		}
		res.Records = append(res.Records, rec)
		if e.opts.OnRecord != nil {
			e.opts.OnRecord(rec)
		}
	}

	res.FramesScanned = fr.FramesScanned()
	res.FramesMatched = fr.FramesMatched()
	res.BytesConsumed = fr.BytesConsumed()
	res.Elapsed = time.Since(start)
	return res, passErr
}
